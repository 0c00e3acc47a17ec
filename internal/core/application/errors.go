package application

import (
	"errors"
	"fmt"
)

var ErrTooManySessions = errors.New("too many open sessions")

type errSessionNotFound struct {
	id string
}

func (e errSessionNotFound) Error() string {
	return fmt.Sprintf("session %s not found", e.id)
}

// IsSessionNotFound returns whether err reports an unknown session id.
func IsSessionNotFound(err error) bool {
	var target errSessionNotFound
	return errors.As(err, &target)
}
