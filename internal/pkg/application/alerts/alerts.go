package alerts

import (
	"context"
	"regexp"
	"time"

	"github.com/diwise/alert-console/pkg/types"
)

//go:generate moq -rm -out alertsource_mock.go . AlertSource

// AlertSource is the remote authority that produces alerts and owns the
// durable ones.
type AlertSource interface {
	Query(ctx context.Context, q types.Query) (types.QueryResult, error)
	Acknowledge(ctx context.Context, alertID string) error
	Resolve(ctx context.Context, alertID string) error
	Dismiss(ctx context.Context, alertID string) error
}

//go:generate moq -rm -out overlaystore_mock.go . OverlayStore

// OverlayStore persists local status overrides keyed by canonical alert id.
// Read-modify-write sequences for different ids may interleave freely.
type OverlayStore interface {
	Get(ctx context.Context, alertID string) (types.OverlayEntry, bool, error)
	Upsert(ctx context.Context, alertID string, status types.Status, record types.ActionRecord) (types.OverlayEntry, error)
	LoadAll(ctx context.Context) (map[string]types.OverlayEntry, error)
	Reset(ctx context.Context) error
	EvictOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

//go:generate moq -rm -out notifier_mock.go . Notifier

type Notifier interface {
	StatusChanged(ctx context.Context, change types.AlertStatusChanged) error
}

type IdentityClass int

const (
	Ephemeral IdentityClass = iota
	Durable
)

func (c IdentityClass) String() string {
	switch c {
	case Durable:
		return "durable"
	default:
		return "ephemeral"
	}
}

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Classify tells whether an alert id is owned by the remote side (a 24 digit
// hexadecimal object id) or recomputed by the generator on every query.
func Classify(alertID string) IdentityClass {
	if objectIDPattern.MatchString(alertID) {
		return Durable
	}
	return Ephemeral
}

// Alert is an entry in the displayed list, either RemoteBacked or LocalBacked.
type Alert interface {
	ID() string
	Status() types.Status
	Snapshot() types.Alert
	withStatus(s types.Status) Alert
}

// RemoteBacked is an alert with a durable id. Its action history lives with
// the remote side and is never appended to locally.
type RemoteBacked struct {
	alert types.Alert
}

func (r RemoteBacked) ID() string {
	return types.CanonicalID(r.alert)
}

func (r RemoteBacked) Status() types.Status {
	return r.alert.CurrentStatus()
}

func (r RemoteBacked) Snapshot() types.Alert {
	a := r.alert
	a.Status = r.Status()
	return a
}

func (r RemoteBacked) withStatus(s types.Status) Alert {
	r.alert.Status = s
	return r
}

// LocalBacked is an alert with an ephemeral id whose status is owned by the
// overlay store.
type LocalBacked struct {
	alert   types.Alert
	history []types.ActionRecord
}

func (l LocalBacked) ID() string {
	return types.CanonicalID(l.alert)
}

func (l LocalBacked) Status() types.Status {
	return l.alert.CurrentStatus()
}

func (l LocalBacked) Actions() []types.ActionRecord {
	return append([]types.ActionRecord(nil), l.history...)
}

func (l LocalBacked) Snapshot() types.Alert {
	a := l.alert
	a.Status = l.Status()
	a.Actions = l.Actions()
	return a
}

func (l LocalBacked) withStatus(s types.Status) Alert {
	l.alert.Status = s
	return l
}

func (l LocalBacked) record(s types.Status, r types.ActionRecord) LocalBacked {
	history := make([]types.ActionRecord, 0, len(l.history)+1)
	history = append(history, l.history...)
	l.history = append(history, r)
	l.alert.Status = s
	return l
}

// Wrap tags a merged alert according to the class of its id.
func Wrap(a types.Alert) Alert {
	if Classify(types.CanonicalID(a)) == Durable {
		return RemoteBacked{alert: a}
	}

	history := a.Actions
	a.Actions = nil

	return LocalBacked{alert: a, history: append([]types.ActionRecord(nil), history...)}
}
