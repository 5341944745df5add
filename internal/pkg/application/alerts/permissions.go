package alerts

import (
	"fmt"
	"strings"

	"github.com/diwise/alert-console/pkg/types"
)

type Role string

const (
	RoleUnknown         Role = ""
	RoleAdmin           Role = "ADMIN"
	RoleSecurityOfficer Role = "SECURITY_OFFICER"
	RoleOperator        Role = "OPERATOR"
	RoleViewer          Role = "VIEWER"
)

// ParseRole maps anything that is not a known role to RoleUnknown, which has
// no permissions.
func ParseRole(s string) Role {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleSecurityOfficer, RoleOperator, RoleViewer:
		return r
	default:
		return RoleUnknown
	}
}

func (r Role) Allows(action types.Action) bool {
	switch r {
	case RoleAdmin, RoleSecurityOfficer:
		switch action {
		case types.ActionAcknowledge, types.ActionResolve, types.ActionDismiss:
			return true
		}
		return false
	case RoleOperator:
		return action == types.ActionAcknowledge
	case RoleViewer:
		return false
	default:
		return false
	}
}

type User struct {
	ID   string
	Role Role
}

// Actor is the name recorded in local action history.
func (u *User) Actor() string {
	if u == nil || u.ID == "" {
		return "local"
	}
	return u.ID
}

// Authorize checks that user may apply action to an alert in the given status.
func Authorize(user *User, status types.Status, action types.Action) error {
	if user == nil {
		return ErrNotAuthenticated
	}

	if !user.Role.Allows(action) {
		return fmt.Errorf("%w: %s may not %s", ErrNotPermitted, roleName(user.Role), action)
	}

	_, err := Transition(status, action)
	return err
}

func CanPerform(user *User, status types.Status, action types.Action) bool {
	return Authorize(user, status, action) == nil
}

// AllowedActions lists the actions whose controls should be enabled.
func AllowedActions(user *User, status types.Status) []types.Action {
	allowed := []types.Action{}
	for _, a := range types.Actions {
		if CanPerform(user, status, a) {
			allowed = append(allowed, a)
		}
	}
	return allowed
}

func roleName(r Role) string {
	if r == RoleUnknown {
		return "unknown role"
	}
	return string(r)
}
