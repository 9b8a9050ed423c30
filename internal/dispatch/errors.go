package dispatch

import (
	"errors"
	"fmt"
)

// Kind classifies a failed dispatch.
type Kind int

const (
	// KindTransport covers network failures, unexpected statuses and
	// payloads the service could not decode.
	KindTransport Kind = iota
	// KindNotFound means the service affirmatively reported that the
	// queried entity does not exist.
	KindNotFound
	// KindBroadcastRejected means the network declined a submitted
	// transaction.
	KindBroadcastRejected
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not found"
	case KindBroadcastRejected:
		return "broadcast rejected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by Dispatch. Err is the service error, unmodified.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a dispatch error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
