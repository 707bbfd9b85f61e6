package domain

import "time"

// Client is an end-user account.
type Client struct {
	ID           string
	Name         string
	Email        string // normalised: trimmed, lower-case
	PasswordHash string // argon2id PHC, or bcrypt for legacy records
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SignupData is the input of a signup, before normalisation.
type SignupData struct {
	Name     string
	Email    string
	Password string
}

// Session is the result of a successful signin.
type Session struct {
	Client    Client
	Token     string
	ExpiresAt time.Time
}
