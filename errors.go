package thermo

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrInvalidInput indicates a malformed fluid spec, fraction list or
	// input-pair code. Callers should fix their request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates the backend cannot be used as deployed, e.g.
	// its data root is missing or its library cannot be loaded.
	ErrConfiguration = errors.New("configuration error")

	// ErrSessionClosed indicates a call on a session that was already closed.
	ErrSessionClosed = errors.New("session closed")
)

// FatalCode is the highest library status code still treated as success.
// Codes above it are fatal; codes at or below it are warnings.
const FatalCode = 100

// BackendError is a fatal condition reported by the equation-of-state
// library. Code and Message are passed through verbatim.
type BackendError struct {
	Code    int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (ierr=%d): %s", e.Code, e.Message)
}

// checkReply converts a fatal reply status into a *BackendError.
func checkReply(r Reply) error {
	if r.Code > FatalCode {
		return &BackendError{Code: r.Code, Message: r.Message}
	}
	return nil
}
