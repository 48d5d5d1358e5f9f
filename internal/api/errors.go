package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned after the global 401 policy has run (stored
// credentials purged, unauthorized hook fired). Callers normally do not
// handle it per-call.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response surfaced to the caller. There is no automatic
// retry; user-initiated actions surface these as visible failures.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("api: unexpected status %d: %s", e.Status, e.Body)
}

// IsStatus reports whether err is an API error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
