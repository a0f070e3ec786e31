package deluge

import (
	"errors"
	"fmt"
)

// AuthLevel is the daemon's ordered privilege tier. The numeric values are
// the daemon's own: anything between two named tiers compares accordingly.
type AuthLevel int

const (
	AuthNobody   AuthLevel = 0
	AuthReadOnly AuthLevel = 1
	AuthNormal   AuthLevel = 5
	AuthAdmin    AuthLevel = 10
)

// Methods without an explicit declaration require the daemon's default tier.
const authDefault = AuthNormal

func (l AuthLevel) String() string {
	switch l {
	case AuthNobody:
		return "nobody"
	case AuthReadOnly:
		return "read-only"
	case AuthNormal:
		return "normal"
	case AuthAdmin:
		return "admin"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ErrInsufficientAuth marks calls refused locally because the session's
// authenticated level is below the method's declared minimum. It is raised
// before anything is sent, so it can never be mistaken for a daemon-side
// failure.
var ErrInsufficientAuth = errors.New("insufficient auth level")

func (s *Session) require(method string, level AuthLevel) error {
	current := s.AuthLevel()
	if current < level {
		return fmt.Errorf("%w: %s requires %s, session has %s", ErrInsufficientAuth, method, level, current)
	}
	return nil
}
