package alerts

import (
	"context"
	"errors"
	"testing"

	"github.com/diwise/alert-console/pkg/types"
)

func TestConsoleKeepsOneViewPerUser(t *testing.T) {
	is, _ := testSetup(t)

	c := New(sourceReturning(pageOf(summaryOf(0, 0, 0), false)), emptyOverlay(), nil, Config{})

	a := &User{ID: "a", Role: RoleAdmin}
	b := &User{ID: "b", Role: RoleViewer}

	is.True(c.View(a) == c.View(a))
	is.True(c.View(a) != c.View(b))
}

func TestConsoleSharesInFlightMarkersBetweenUsers(t *testing.T) {
	is, ctx := testSetup(t)

	const id = "507f1f77bcf86cd799439011"

	started := make(chan struct{})
	proceed := make(chan struct{})

	source := &AlertSourceMock{
		QueryFunc: func(ctx context.Context, q types.Query) (types.QueryResult, error) {
			a := alert("", types.PriorityHigh)
			a.ObjectID = id
			return pageOf(summaryOf(1, 0, 0), false, a), nil
		},
		DismissFunc: func(ctx context.Context, alertID string) error {
			close(started)
			<-proceed
			return nil
		},
	}

	c := New(source, emptyOverlay(), nil, Config{})

	a := &User{ID: "a", Role: RoleAdmin}
	b := &User{ID: "b", Role: RoleSecurityOfficer}
	is.NoErr(c.View(a).Refresh(ctx))
	is.NoErr(c.View(b).Refresh(ctx))

	done := make(chan error)
	go func() {
		_, err := c.Dispatch(ctx, a, id, types.ActionDismiss)
		done <- err
	}()

	<-started
	_, err := c.Dispatch(ctx, b, id, types.ActionDismiss)
	is.True(errors.Is(err, ErrActionInFlight))

	close(proceed)
	is.NoErr(<-done)
}

func TestOnlyAdminsMayResetOverlay(t *testing.T) {
	is, ctx := testSetup(t)

	overlay := emptyOverlay()
	overlay.ResetFunc = func(ctx context.Context) error { return nil }

	c := New(sourceReturning(pageOf(summaryOf(0, 0, 0), false)), overlay, nil, Config{})

	is.True(errors.Is(c.ResetOverlay(ctx, nil), ErrNotAuthenticated))
	is.True(errors.Is(c.ResetOverlay(ctx, &User{ID: "s", Role: RoleSecurityOfficer}), ErrNotPermitted))
	is.Equal(len(overlay.ResetCalls()), 0)

	is.NoErr(c.ResetOverlay(ctx, &User{ID: "a", Role: RoleAdmin}))
	is.Equal(len(overlay.ResetCalls()), 1)
}

func TestBroadcastReachesEveryNotifier(t *testing.T) {
	is, ctx := testSetup(t)

	ok := &NotifierMock{StatusChangedFunc: func(ctx context.Context, change types.AlertStatusChanged) error { return nil }}
	failing := &NotifierMock{StatusChangedFunc: func(ctx context.Context, change types.AlertStatusChanged) error { return errors.New("nope") }}

	n := Broadcast(ok, nil, failing)
	err := n.StatusChanged(ctx, types.AlertStatusChanged{AlertID: "a"})

	is.True(err != nil)
	is.Equal(len(ok.StatusChangedCalls()), 1)
	is.Equal(len(failing.StatusChangedCalls()), 1)
}
