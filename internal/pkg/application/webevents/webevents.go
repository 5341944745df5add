package webevents

import (
	"context"
	"encoding/json"
	"net/http"

	gosse "github.com/alexandrevicenzi/go-sse"
	"github.com/diwise/alert-console/pkg/types"
)

const StatusChangedEvent string = "alertStatusChanged"

// WebEvents pushes alert status changes to connected dashboards as server
// sent events. It doubles as an alerts.Notifier.
type WebEvents interface {
	http.Handler
	StatusChanged(ctx context.Context, change types.AlertStatusChanged) error
	Publish(event string, data any) error
	Shutdown()
}

type webEvents struct {
	s *gosse.Server
}

func New() WebEvents {
	return &webEvents{
		s: gosse.NewServer(&gosse.Options{
			// every dashboard listens on the same stream regardless of path
			ChannelNameFunc: func(*http.Request) string { return StatusChangedEvent },
		}),
	}
}

func (we *webEvents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	we.s.ServeHTTP(w, r)
}

func (we *webEvents) Shutdown() {
	we.s.Shutdown()
}

func (we *webEvents) StatusChanged(ctx context.Context, change types.AlertStatusChanged) error {
	return we.Publish(StatusChangedEvent, change)
}

func (we *webEvents) Publish(event string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}

	message := gosse.NewMessage("", string(b), event)
	we.s.SendMessage("", message)

	return nil
}
