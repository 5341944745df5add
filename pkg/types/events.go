package types

import (
	"encoding/json"
	"time"
)

type AlertStatusChanged struct {
	AlertID   string       `json:"alertID"`
	EntityID  EntityRef    `json:"entityId,omitempty"`
	Priority  Priority     `json:"priority,omitempty"`
	Status    Status       `json:"status"`
	Action    ActionRecord `json:"action"`
	Local     bool         `json:"local"`
	Timestamp time.Time    `json:"timestamp"`
}

func (a *AlertStatusChanged) ContentType() string {
	return "application/json"
}
func (a *AlertStatusChanged) TopicName() string {
	return "alerts.statusChanged"
}
func (a *AlertStatusChanged) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

type OverlayReset struct {
	Requester string    `json:"requester"`
	Timestamp time.Time `json:"timestamp"`
}

func (o *OverlayReset) ContentType() string {
	return "application/json"
}
func (o *OverlayReset) TopicName() string {
	return "alerts.overlayReset"
}
func (o *OverlayReset) Body() []byte {
	b, _ := json.Marshal(o)
	return b
}
