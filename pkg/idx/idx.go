// Package idx generates the identifiers assigned to stored records.
//
// IDs are ULIDs: 26 characters of Crockford base32, lexicographically sortable
// by creation time, which keeps insertion order stable in both the sqlite and
// postgres drivers without a sequence.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// Zero is the empty placeholder ID.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	once    sync.Once
	entropy *monotonic
)

// monotonic guards a ulid.MonotonicEntropy, which is not safe for concurrent use.
type monotonic struct {
	mu  sync.Mutex
	src *ulid.MonotonicEntropy
}

func (m *monotonic) at(t time.Time) ID {
	m.mu.Lock()
	defer m.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), m.src).String())
}

func initEntropy() {
	entropy = &monotonic{src: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a new ID stamped with the current UTC time.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt returns an ID stamped with t. IDs created within the same millisecond
// still sort in creation order.
func NewAt(t time.Time) ID {
	once.Do(initEntropy)
	return entropy.at(t)
}

// Parse validates s as a canonical ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}

	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}

	return ID(s), nil
}

// MustParse is Parse for hard-coded IDs in tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Time extracts the embedded timestamp, or the zero time for invalid IDs.
func (id ID) Time() time.Time {
	if id.IsZero() {
		return time.Time{}
	}

	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}

	return ulid.Time(u.Time())
}

// Compare reports the ordering of a and b: -1, 0 or +1.
func Compare(a, b ID) int {
	return strings.Compare(a.String(), b.String())
}
