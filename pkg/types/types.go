package types

import (
	"encoding/json"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToUpper(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	}
	return "", false
}

type AlertType string

const (
	AlertTypeInactivity           AlertType = "INACTIVITY"
	AlertTypeSimultaneousActivity AlertType = "SIMULTANEOUS_ACTIVITY"
	AlertTypeAdminAccess          AlertType = "ADMIN_ACCESS"
	AlertTypeSuspiciousActivity   AlertType = "SUSPICIOUS_ACTIVITY"
)

// Label returns the display name of an alert type. Unknown types are returned verbatim.
func (t AlertType) Label() string {
	switch t {
	case AlertTypeInactivity:
		return "Inactivity Alert"
	case AlertTypeSimultaneousActivity:
		return "Simultaneous Activity"
	case AlertTypeAdminAccess:
		return "Students Not in College"
	case AlertTypeSuspiciousActivity:
		return "Suspicious Activity"
	default:
		return string(t)
	}
}

type Status string

const (
	StatusActive       Status = "active"
	StatusAcknowledged Status = "acknowledged"
	StatusResolved     Status = "resolved"
	StatusDismissed    Status = "dismissed"
)

func (s Status) IsTerminal() bool {
	switch s {
	case StatusResolved, StatusDismissed:
		return true
	default:
		return false
	}
}

func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusAcknowledged:
		return "Acknowledged"
	case StatusResolved:
		return "Resolved"
	case StatusDismissed:
		return "Dismissed"
	default:
		return string(s)
	}
}

type Action string

const (
	ActionAcknowledge Action = "acknowledge"
	ActionResolve     Action = "resolve"
	ActionDismiss     Action = "dismiss"
)

var Actions = []Action{ActionAcknowledge, ActionResolve, ActionDismiss}

func ParseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionAcknowledge, ActionResolve, ActionDismiss:
		return a, true
	}
	return "", false
}

type ActionRecord struct {
	Type      Action    `json:"type"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

// EntityRef is an opaque reference to the subject of an alert. The remote side
// sends it either as a plain value or as an embedded document.
type EntityRef string

func (r *EntityRef) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = EntityRef(CanonicalID(v))
	return nil
}

type Alert struct {
	ObjectID    string         `json:"_id,omitempty"`
	ID          string         `json:"id,omitempty"`
	EntityID    EntityRef      `json:"entityId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    Priority       `json:"priority"`
	Type        AlertType      `json:"type"`
	Timestamp   time.Time      `json:"timestamp"`
	Status      Status         `json:"status,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	Actions     []ActionRecord `json:"actions,omitempty"`
}

// Identity returns the canonical id of the alert, preferring the remote object id.
func (a Alert) Identity() string {
	if a.ObjectID != "" {
		return a.ObjectID
	}
	return a.ID
}

// CurrentStatus returns the alert status, defaulting to active when unset.
func (a Alert) CurrentStatus() Status {
	if a.Status == "" {
		return StatusActive
	}
	return a.Status
}

// OverlayEntry is the locally persisted status override for an alert.
type OverlayEntry struct {
	Status  *Status        `json:"status"`
	Actions []ActionRecord `json:"actions"`
}

type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

type Query struct {
	Page     int
	Limit    int
	Priority Priority
}

type QueryResult struct {
	Alerts     []Alert    `json:"alerts"`
	Summary    Summary    `json:"summary"`
	Pagination Pagination `json:"pagination"`
}

type QueryResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    QueryResult `json:"data"`
}
