package alerts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/diwise/alert-console/pkg/types"
)

func TestOperatorAcknowledgesEphemeralAlert(t *testing.T) {
	is, ctx := testSetup(t)

	source := sourceReturning(pageOf(summaryOf(1, 0, 0), false, alert("inactivity-stu-42", types.PriorityHigh)))
	overlay := emptyOverlay()
	overlay.UpsertFunc = func(ctx context.Context, alertID string, status types.Status, record types.ActionRecord) (types.OverlayEntry, error) {
		return types.OverlayEntry{Status: &status, Actions: []types.ActionRecord{record}}, nil
	}
	notifier := &NotifierMock{
		StatusChangedFunc: func(ctx context.Context, change types.AlertStatusChanged) error {
			return nil
		},
	}

	v := NewView(source, overlay, Config{})
	is.NoErr(v.Refresh(ctx))

	d := NewDispatcher(source, overlay, notifier)
	operator := &User{ID: "op-1", Role: RoleOperator}

	updated, err := d.Dispatch(ctx, v, operator, "inactivity-stu-42", types.ActionAcknowledge)
	is.NoErr(err)
	is.Equal(updated.Status, types.StatusAcknowledged)
	is.Equal(len(updated.Actions), 1)
	is.Equal(updated.Actions[0].Actor, "op-1")
	is.Equal(updated.Actions[0].Type, types.ActionAcknowledge)

	is.Equal(len(overlay.UpsertCalls()), 1)
	is.Equal(overlay.UpsertCalls()[0].AlertID, "inactivity-stu-42")
	is.Equal(overlay.UpsertCalls()[0].Status, types.StatusAcknowledged)
	is.Equal(overlay.UpsertCalls()[0].Record.Actor, "op-1")

	is.Equal(len(source.AcknowledgeCalls()), 0)

	is.Equal(len(notifier.StatusChangedCalls()), 1)
	is.True(notifier.StatusChangedCalls()[0].Change.Local)
	is.Equal(notifier.StatusChangedCalls()[0].Change.Status, types.StatusAcknowledged)

	shown, _ := v.Get("inactivity-stu-42")
	is.Equal(shown.Status(), types.StatusAcknowledged)

	_, err = d.Dispatch(ctx, v, operator, "inactivity-stu-42", types.ActionResolve)
	is.True(errors.Is(err, ErrNotPermitted))
	is.Equal(len(overlay.UpsertCalls()), 1)
}

func TestAdminDismissesDurableAlert(t *testing.T) {
	is, ctx := testSetup(t)

	const id = "507f1f77bcf86cd799439011"

	var mu sync.Mutex
	remoteStatus := types.StatusActive

	source := &AlertSourceMock{
		QueryFunc: func(ctx context.Context, q types.Query) (types.QueryResult, error) {
			mu.Lock()
			defer mu.Unlock()
			a := alert("", types.PriorityMedium)
			a.ObjectID = id
			a.Status = remoteStatus
			return pageOf(summaryOf(0, 1, 0), false, a), nil
		},
		DismissFunc: func(ctx context.Context, alertID string) error {
			mu.Lock()
			defer mu.Unlock()
			remoteStatus = types.StatusDismissed
			return nil
		},
	}
	overlay := emptyOverlay()

	v := NewView(source, overlay, Config{})
	is.NoErr(v.Refresh(ctx))

	d := NewDispatcher(source, overlay, nil)
	admin := &User{ID: "admin-1", Role: RoleAdmin}

	updated, err := d.Dispatch(ctx, v, admin, id, types.ActionDismiss)
	is.NoErr(err)
	is.Equal(updated.Status, types.StatusDismissed)
	is.Equal(len(updated.Actions), 0)

	is.Equal(len(source.DismissCalls()), 1)
	is.Equal(source.DismissCalls()[0].AlertID, id)
	is.Equal(len(overlay.UpsertCalls()), 0)

	// the list was refreshed from the remote side after the mutation
	is.Equal(len(source.QueryCalls()), 2)
	shown, ok := v.Get(id)
	is.True(ok)
	is.Equal(shown.Status(), types.StatusDismissed)

	_, err = d.Dispatch(ctx, v, admin, id, types.ActionAcknowledge)
	is.True(errors.Is(err, ErrTerminalState))
}

func TestConcurrentActionsOnSameDurableAlert(t *testing.T) {
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
		AcknowledgeFunc: func(ctx context.Context, alertID string) error {
			close(started)
			<-proceed
			return nil
		},
	}

	v := NewView(source, emptyOverlay(), Config{})
	is.NoErr(v.Refresh(ctx))

	d := NewDispatcher(source, nil, nil)
	admin := &User{ID: "admin-1", Role: RoleAdmin}

	var wg sync.WaitGroup
	var firstErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = d.Dispatch(ctx, v, admin, id, types.ActionAcknowledge)
	}()

	<-started
	is.True(d.InFlight(id))

	_, err := d.Dispatch(ctx, v, admin, id, types.ActionAcknowledge)
	is.True(errors.Is(err, ErrActionInFlight))

	close(proceed)
	wg.Wait()

	is.NoErr(firstErr)
	is.Equal(len(source.AcknowledgeCalls()), 1)
	is.True(!d.InFlight(id))
}

func TestConcurrentActionsOnSameEphemeralAlertRecordOnce(t *testing.T) {
	is, ctx := testSetup(t)

	started := make(chan struct{})
	proceed := make(chan struct{})

	source := sourceReturning(pageOf(summaryOf(1, 0, 0), false, alert("eph-7", types.PriorityHigh)))
	overlay := emptyOverlay()
	overlay.UpsertFunc = func(ctx context.Context, alertID string, status types.Status, record types.ActionRecord) (types.OverlayEntry, error) {
		close(started)
		<-proceed
		return types.OverlayEntry{}, nil
	}

	v := NewView(source, overlay, Config{})
	is.NoErr(v.Refresh(ctx))

	d := NewDispatcher(source, overlay, nil)
	officer := &User{ID: "sec-1", Role: RoleSecurityOfficer}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.Dispatch(ctx, v, officer, "eph-7", types.ActionAcknowledge)
	}()

	<-started
	_, err := d.Dispatch(ctx, v, officer, "eph-7", types.ActionAcknowledge)
	is.True(errors.Is(err, ErrActionInFlight))

	close(proceed)
	wg.Wait()

	shown, _ := v.Get("eph-7")
	is.Equal(len(shown.(LocalBacked).Actions()), 1)
	is.Equal(shown.Status(), types.StatusAcknowledged)

	_, err = d.Dispatch(ctx, v, officer, "eph-7", types.ActionAcknowledge)
	is.True(errors.Is(err, ErrInvalidTransition))
}

func TestRefreshInProgressDoesNotUndoLocalAction(t *testing.T) {
	is, ctx := testSetup(t)

	loading := make(chan struct{})
	proceed := make(chan struct{})

	var mu sync.Mutex
	loads := 0

	source := sourceReturning(pageOf(summaryOf(1, 0, 0), false, alert("E-17", types.PriorityHigh)))
	overlay := &OverlayStoreMock{
		LoadAllFunc: func(ctx context.Context) (map[string]types.OverlayEntry, error) {
			mu.Lock()
			loads++
			n := loads
			mu.Unlock()

			if n == 2 {
				close(loading)
				<-proceed
			}
			return map[string]types.OverlayEntry{}, nil
		},
		UpsertFunc: func(ctx context.Context, alertID string, status types.Status, record types.ActionRecord) (types.OverlayEntry, error) {
			return types.OverlayEntry{Status: &status, Actions: []types.ActionRecord{record}}, nil
		},
	}

	v := NewView(source, overlay, Config{})
	is.NoErr(v.Refresh(ctx))

	d := NewDispatcher(source, overlay, nil)
	operator := &User{ID: "op-1", Role: RoleOperator}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v.Refresh(ctx)
	}()

	<-loading
	_, err := d.Dispatch(ctx, v, operator, "E-17", types.ActionAcknowledge)
	is.NoErr(err)

	close(proceed)
	wg.Wait()

	shown, ok := v.Get("E-17")
	is.True(ok)
	is.Equal(shown.Status(), types.StatusAcknowledged)

	_, err = d.Dispatch(ctx, v, operator, "E-17", types.ActionAcknowledge)
	is.True(errors.Is(err, ErrInvalidTransition))
	is.Equal(len(overlay.UpsertCalls()), 1)
}

func TestRemoteFailureLeavesAlertUnchanged(t *testing.T) {
	is, ctx := testSetup(t)

	const id = "507f1f77bcf86cd799439011"

	source := &AlertSourceMock{
		QueryFunc: func(ctx context.Context, q types.Query) (types.QueryResult, error) {
			a := alert("", types.PriorityHigh)
			a.ObjectID = id
			return pageOf(summaryOf(1, 0, 0), false, a), nil
		},
		ResolveFunc: func(ctx context.Context, alertID string) error {
			return errors.New("remote said no")
		},
	}
	notifier := &NotifierMock{}

	v := NewView(source, emptyOverlay(), Config{})
	is.NoErr(v.Refresh(ctx))

	d := NewDispatcher(source, nil, notifier)

	_, err := d.Dispatch(ctx, v, &User{ID: "a", Role: RoleAdmin}, id, types.ActionResolve)

	var remoteErr *RemoteError
	is.True(errors.As(err, &remoteErr))
	is.Equal(remoteErr.AlertID, id)
	is.True(!IsValidation(err))

	shown, _ := v.Get(id)
	is.Equal(shown.Status(), types.StatusActive)
	is.True(!d.InFlight(id))
	is.Equal(len(notifier.StatusChangedCalls()), 0)
}

func TestOverlayWriteFailureStillAppliesInMemory(t *testing.T) {
	is, ctx := testSetup(t)

	source := sourceReturning(pageOf(summaryOf(1, 0, 0), false, alert("eph-9", types.PriorityHigh)))
	overlay := emptyOverlay()
	overlay.UpsertFunc = func(ctx context.Context, alertID string, status types.Status, record types.ActionRecord) (types.OverlayEntry, error) {
		return types.OverlayEntry{}, errors.New("read only filesystem")
	}

	v := NewView(source, overlay, Config{})
	is.NoErr(v.Refresh(ctx))

	d := NewDispatcher(source, overlay, nil)

	updated, err := d.Dispatch(ctx, v, &User{ID: "a", Role: RoleAdmin}, "eph-9", types.ActionDismiss)
	is.NoErr(err)
	is.Equal(updated.Status, types.StatusDismissed)

	shown, _ := v.Get("eph-9")
	is.Equal(shown.Status(), types.StatusDismissed)
	is.True(!d.InFlight("eph-9"))
}

func TestDispatchValidation(t *testing.T) {
	is, ctx := testSetup(t)

	source := sourceReturning(pageOf(summaryOf(1, 0, 0), false, alert("eph-1", types.PriorityHigh)))
	v := NewView(source, emptyOverlay(), Config{})
	is.NoErr(v.Refresh(ctx))

	d := NewDispatcher(source, nil, nil)
	admin := &User{ID: "a", Role: RoleAdmin}

	_, err := d.Dispatch(ctx, v, admin, "", types.ActionAcknowledge)
	is.True(errors.Is(err, ErrMissingAlertID))

	_, err = d.Dispatch(ctx, v, admin, "unknown", types.ActionAcknowledge)
	is.True(errors.Is(err, ErrAlertNotFound))

	_, err = d.Dispatch(ctx, v, nil, "eph-1", types.ActionAcknowledge)
	is.True(errors.Is(err, ErrNotAuthenticated))

	_, err = d.Dispatch(ctx, v, &User{ID: "v", Role: RoleViewer}, "eph-1", types.ActionAcknowledge)
	is.True(errors.Is(err, ErrNotPermitted))
	is.True(IsValidation(err))

	is.True(!d.InFlight("eph-1"))
}
