package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/alert-console/internal/pkg/application/alerts"
	"github.com/diwise/alert-console/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type overlayRepository struct {
	db *gorm.DB
}

// NewOverlayRepository connects and migrates the overlay tables.
func NewOverlayRepository(connect ConnectorFunc) (alerts.OverlayStore, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&OverlayEntry{}, &OverlayAction{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate overlay tables: %w", err)
	}

	return &overlayRepository{
		db: impl,
	}, nil
}

func (r *overlayRepository) Get(ctx context.Context, alertID string) (types.OverlayEntry, bool, error) {
	entry := OverlayEntry{}

	err := r.db.WithContext(ctx).
		Preload("Actions", orderedActions).
		Where(&OverlayEntry{AlertID: alertID}).
		First(&entry).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.OverlayEntry{}, false, nil
	}
	if err != nil {
		return types.OverlayEntry{}, false, err
	}

	return toOverlayEntry(entry), true, nil
}

// Upsert sets the status of an alert and appends record to its history in a
// single transaction.
func (r *overlayRepository) Upsert(ctx context.Context, alertID string, status types.Status, record types.ActionRecord) (types.OverlayEntry, error) {
	logger := logging.GetFromContext(ctx)

	if alertID == "" {
		return types.OverlayEntry{}, alerts.ErrMissingAlertID
	}

	s := string(status)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "alert_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&OverlayEntry{AlertID: alertID, Status: &s}).Error
		if err != nil {
			return err
		}

		return tx.Create(&OverlayAction{
			ActionID:  uuid.NewString(),
			AlertID:   alertID,
			Type:      string(record.Type),
			Actor:     record.Actor,
			Timestamp: record.Timestamp,
		}).Error
	})
	if err != nil {
		return types.OverlayEntry{}, err
	}

	logger.Debug().Str("alert_id", alertID).Str("status", s).Msg("overlay entry updated")

	entry, _, err := r.Get(ctx, alertID)
	return entry, err
}

func (r *overlayRepository) LoadAll(ctx context.Context) (map[string]types.OverlayEntry, error) {
	var entries []OverlayEntry

	err := r.db.WithContext(ctx).
		Preload("Actions", orderedActions).
		Find(&entries).
		Error
	if err != nil {
		return nil, err
	}

	return lo.Associate(entries, func(e OverlayEntry) (string, types.OverlayEntry) {
		return e.AlertID, toOverlayEntry(e)
	}), nil
}

func (r *overlayRepository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		if err := global.Delete(&OverlayAction{}).Error; err != nil {
			return err
		}

		return global.Delete(&OverlayEntry{}).Error
	})
}

// EvictOlderThan removes entries that have not been touched since cutoff and
// returns the number of removed entries.
func (r *overlayRepository) EvictOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var evicted int64
	cutoff = cutoff.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&OverlayEntry{}).Select("alert_id").Where("updated_at < ?", cutoff)

		err := tx.Where("alert_id IN (?)", stale).Delete(&OverlayAction{}).Error
		if err != nil {
			return err
		}

		result := tx.Where("updated_at < ?", cutoff).Delete(&OverlayEntry{})
		evicted = result.RowsAffected

		return result.Error
	})

	return evicted, err
}

func orderedActions(db *gorm.DB) *gorm.DB {
	return db.Order("overlay_actions.id")
}

func toOverlayEntry(e OverlayEntry) types.OverlayEntry {
	entry := types.OverlayEntry{
		Actions: lo.Map(e.Actions, func(a OverlayAction, _ int) types.ActionRecord {
			return types.ActionRecord{
				Type:      types.Action(a.Type),
				Actor:     a.Actor,
				Timestamp: a.Timestamp.UTC(),
			}
		}),
	}

	if e.Status != nil {
		s := types.Status(*e.Status)
		entry.Status = &s
	}

	return entry
}
