package alerts

import (
	"fmt"

	"github.com/diwise/alert-console/pkg/types"
)

// Transition returns the status an alert ends up in when action is applied.
//
//	acknowledge: active               -> acknowledged
//	resolve:     active, acknowledged -> resolved
//	dismiss:     active, acknowledged -> dismissed
//
// Resolved and dismissed are terminal.
func Transition(from types.Status, action types.Action) (types.Status, error) {
	if from == "" {
		from = types.StatusActive
	}

	if from.IsTerminal() {
		return "", fmt.Errorf("%w: cannot %s an alert that is %s", ErrTerminalState, action, from)
	}

	switch action {
	case types.ActionAcknowledge:
		if from == types.StatusActive {
			return types.StatusAcknowledged, nil
		}
	case types.ActionResolve:
		if from == types.StatusActive || from == types.StatusAcknowledged {
			return types.StatusResolved, nil
		}
	case types.ActionDismiss:
		if from == types.StatusActive || from == types.StatusAcknowledged {
			return types.StatusDismissed, nil
		}
	}

	return "", fmt.Errorf("%w: cannot %s an alert that is %s", ErrInvalidTransition, action, from)
}
