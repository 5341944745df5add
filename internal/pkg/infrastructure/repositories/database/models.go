package database

import (
	"time"
)

// OverlayEntry is the local status override for one alert, keyed by the
// canonical alert id. A nil status means only actions have been recorded.
type OverlayEntry struct {
	AlertID   string          `gorm:"primaryKey;column:alert_id"`
	Status    *string         `gorm:"column:status"`
	Actions   []OverlayAction `gorm:"foreignKey:AlertID;references:AlertID;constraint:OnDelete:CASCADE"`
	UpdatedAt time.Time       `gorm:"index"`
	CreatedAt time.Time
}

type OverlayAction struct {
	ID        uint   `gorm:"primaryKey"`
	ActionID  string `gorm:"uniqueIndex;column:action_id"`
	AlertID   string `gorm:"index;column:alert_id"`
	Type      string
	Actor     string
	Timestamp time.Time
}
