package postgres

// AcquiredConns reports how many pool connections are checked out.
func (s *Store) AcquiredConns() int32 { return s.pool.Stat().AcquiredConns() }
