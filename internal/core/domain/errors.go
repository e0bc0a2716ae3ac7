package domain

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned when the durable store holds no usable session
// for an id: missing, expired, or with only one of the two keys present.
var ErrNoSession = errors.New("no session")

// RemoteError is a failure reported by the canteen backend: a response was
// received but carried an error status. Message is the human-readable text
// from the backend's {"message": ...} envelope, when present.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: status %d", e.Status)
	}
	return fmt.Sprintf("remote api: status %d: %s", e.Status, e.Message)
}

// ErrorMessage normalizes any upstream failure into a displayable string:
// the server-supplied message when one exists, fallback otherwise. Network
// failures without a response always yield the fallback.
func ErrorMessage(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
