package alerts

import (
	"context"
	"fmt"
	"sync"

	"github.com/diwise/alert-console/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// Console is the entry point used by the presentation layer. Every operator
// gets a view of their own while the overlay and the in-flight markers are
// shared.
type Console interface {
	View(user *User) *View
	Dispatch(ctx context.Context, user *User, alertID string, action types.Action) (types.Alert, error)
	ResetOverlay(ctx context.Context, user *User) error
}

type console struct {
	source     AlertSource
	overlay    OverlayStore
	dispatcher *Dispatcher
	cfg        Config

	mu    sync.Mutex
	views map[string]*View
}

func New(source AlertSource, overlay OverlayStore, notifier Notifier, cfg Config) Console {
	return &console{
		source:     source,
		overlay:    overlay,
		dispatcher: NewDispatcher(source, overlay, notifier),
		cfg:        cfg,
		views:      map[string]*View{},
	}
}

func (c *console) View(user *User) *View {
	key := user.Actor()

	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.views[key]
	if !ok {
		v = NewView(c.source, c.overlay, c.cfg)
		c.views[key] = v
	}

	return v
}

func (c *console) Dispatch(ctx context.Context, user *User, alertID string, action types.Action) (types.Alert, error) {
	return c.dispatcher.Dispatch(ctx, c.View(user), user, alertID, action)
}

// ResetOverlay drops every local status override. Only administrators may do this.
func (c *console) ResetOverlay(ctx context.Context, user *User) error {
	if user == nil {
		return ErrNotAuthenticated
	}
	if user.Role != RoleAdmin {
		return fmt.Errorf("%w: only %s may reset the overlay", ErrNotPermitted, RoleAdmin)
	}

	err := c.overlay.Reset(ctx)
	if err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("user", user.Actor()).Msg("overlay reset")

	return nil
}
