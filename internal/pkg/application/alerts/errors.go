package alerts

import (
	"errors"
	"fmt"

	"github.com/diwise/alert-console/pkg/types"
)

var (
	ErrMissingAlertID    = errors.New("alert id is missing")
	ErrAlertNotFound     = errors.New("alert not found")
	ErrNotAuthenticated  = errors.New("no authenticated user")
	ErrNotPermitted      = errors.New("action is not permitted for role")
	ErrTerminalState     = errors.New("alert is in a terminal state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrActionInFlight    = errors.New("an action is already in flight for this alert")
	ErrNoMorePages       = errors.New("no more pages to load")
)

// IsValidation reports whether err was raised before any remote or storage
// call was attempted.
func IsValidation(err error) bool {
	for _, e := range []error{ErrMissingAlertID, ErrAlertNotFound, ErrNotAuthenticated, ErrNotPermitted, ErrTerminalState, ErrInvalidTransition} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// RemoteError is returned when the alert source rejects or fails a mutation.
type RemoteError struct {
	AlertID string
	Action  types.Action
	Err     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("failed to %s alert %s: %v", e.Action, e.AlertID, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
