package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/diwise/alert-console/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// Dispatcher applies operator actions. At most one action per alert id is in
// flight at any time; actions on different alerts run concurrently.
type Dispatcher struct {
	source   AlertSource
	overlay  OverlayStore
	notifier Notifier
	now      func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewDispatcher(source AlertSource, overlay OverlayStore, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		source:   source,
		overlay:  overlay,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		inflight: map[string]struct{}{},
	}
}

// Dispatch validates and applies action to the alert with the given id in view.
// Durable alerts are mutated remotely, ephemeral alerts only in the overlay.
func (d *Dispatcher) Dispatch(ctx context.Context, view *View, user *User, alertID string, action types.Action) (types.Alert, error) {
	if alertID == "" {
		return types.Alert{}, ErrMissingAlertID
	}

	log := logging.GetFromContext(ctx).With().Str("alert_id", alertID).Str("action", string(action)).Logger()

	current, ok := view.Get(alertID)
	if !ok {
		return types.Alert{}, ErrAlertNotFound
	}

	if err := Authorize(user, current.Status(), action); err != nil {
		return types.Alert{}, err
	}

	if !d.acquire(alertID) {
		log.Debug().Msg("ignoring action, another one is already in flight")
		return types.Alert{}, ErrActionInFlight
	}
	defer d.release(alertID)

	// the alert may have changed while we were waiting for the marker
	current, ok = view.Get(alertID)
	if !ok {
		return types.Alert{}, ErrAlertNotFound
	}

	next, err := Transition(current.Status(), action)
	if err != nil {
		return types.Alert{}, err
	}

	record := types.ActionRecord{
		Type:      action,
		Actor:     user.Actor(),
		Timestamp: d.now(),
	}

	var updated Alert

	switch a := current.(type) {
	case RemoteBacked:
		if err := d.mutate(ctx, a.ID(), action); err != nil {
			log.Error().Err(err).Msg("remote mutation failed")
			return types.Alert{}, &RemoteError{AlertID: a.ID(), Action: action, Err: err}
		}

		updated = a.withStatus(next)
		view.replace(updated)

		if err := view.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("could not refresh alerts after remote mutation")
		}

	case LocalBacked:
		local := a.record(next, record)
		updated = local

		// persisted before the in-memory swap so that any load started after the
		// swap sees the new entry in its overlay snapshot
		if d.overlay != nil {
			_, err := d.overlay.Upsert(ctx, types.CanonicalID(local.Snapshot()), next, record)
			if err != nil {
				log.Error().Err(err).Msg("could not persist local action, it will not survive a reload")
			}
		}

		view.replace(updated)
	}

	log.Info().Str("status", string(next)).Msg("alert status changed")

	d.notify(ctx, updated, record)

	return updated.Snapshot(), nil
}

func (d *Dispatcher) mutate(ctx context.Context, alertID string, action types.Action) error {
	switch action {
	case types.ActionAcknowledge:
		return d.source.Acknowledge(ctx, alertID)
	case types.ActionResolve:
		return d.source.Resolve(ctx, alertID)
	case types.ActionDismiss:
		return d.source.Dismiss(ctx, alertID)
	}
	return ErrInvalidTransition
}

func (d *Dispatcher) notify(ctx context.Context, a Alert, record types.ActionRecord) {
	if d.notifier == nil {
		return
	}

	snapshot := a.Snapshot()
	_, local := a.(LocalBacked)

	err := d.notifier.StatusChanged(ctx, types.AlertStatusChanged{
		AlertID:   a.ID(),
		EntityID:  snapshot.EntityID,
		Priority:  snapshot.Priority,
		Status:    a.Status(),
		Action:    record,
		Local:     local,
		Timestamp: record.Timestamp,
	})
	if err != nil {
		log := logging.GetFromContext(ctx)
		log.Error().Err(err).Str("alert_id", a.ID()).Msg("could not publish status change")
	}
}

func (d *Dispatcher) acquire(alertID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, busy := d.inflight[alertID]; busy {
		return false
	}
	d.inflight[alertID] = struct{}{}

	return true
}

func (d *Dispatcher) release(alertID string) {
	d.mu.Lock()
	delete(d.inflight, alertID)
	d.mu.Unlock()
}

// InFlight reports whether an action for alertID is currently being applied.
func (d *Dispatcher) InFlight(alertID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, busy := d.inflight[alertID]
	return busy
}
