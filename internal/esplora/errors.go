package esplora

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is returned by the lookups whose answer is optional (GetTx,
// GetTxidAtBlockIndex, GetMerkleProof, GetOutputStatus) when the server
// answers 404. Every other endpoint reports a 404 as a *StatusError.
var ErrNotFound = errors.New("not found")

// maxBodyLen bounds the response body echoed in errors.
const maxBodyLen = 256

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > maxBodyLen {
		body = body[:maxBodyLen] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Code, body)
}

// IsStatus checks whether err is a StatusError and returns it.
func IsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// optional turns a 404 into ErrNotFound for lookups that may legitimately
// have no answer.
func optional(err error) error {
	if se, ok := IsStatus(err); ok && se.Code == http.StatusNotFound {
		return fmt.Errorf("%s: %w", se.Path, ErrNotFound)
	}
	return err
}
