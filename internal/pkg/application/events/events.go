package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/alert-console/internal/pkg/application/alerts"
	"github.com/diwise/alert-console/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"golang.org/x/sys/unix"
	yaml "gopkg.in/yaml.v2"
)

const (
	StatusChangedEventType string = "diwise.alertStatusChanged"
	eventSource            string = "github.com/diwise/alert-console"
)

// Publisher is the part of the messaging context used to publish status changes.
type Publisher interface {
	PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error
}

type notifier struct {
	publisher   Publisher
	subscribers map[string][]SubscriberConfig

	once   sync.Once
	client cloudevents.Client
	err    error
}

// New returns a notifier that publishes every status change on the message
// bus and forwards it as a cloud event to the configured webhook subscribers.
// Either of publisher and cfg may be nil.
func New(publisher Publisher, cfg *Config) alerts.Notifier {
	n := &notifier{
		publisher:   publisher,
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, s := range cfg.Notifications {
			n.subscribers[s.Type] = append(n.subscribers[s.Type], s.Subscribers...)
		}
	}

	return n
}

func (n *notifier) StatusChanged(ctx context.Context, change types.AlertStatusChanged) error {
	var errs []error

	if n.publisher != nil {
		if err := n.publisher.PublishOnTopic(ctx, &change); err != nil {
			errs = append(errs, fmt.Errorf("failed to publish %s: %w", change.TopicName(), err))
		}
	}

	if err := n.send(ctx, change); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (n *notifier) send(ctx context.Context, change types.AlertStatusChanged) error {
	subscribers := n.subscribers[StatusChangedEventType]
	if len(subscribers) == 0 {
		return nil
	}

	n.once.Do(func() {
		n.client, n.err = cloudevents.NewClientHTTP()
	})
	if n.err != nil {
		return n.err
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%s:%d", change.AlertID, change.Action.Type, change.Timestamp.UnixNano()))
	event.SetTime(change.Timestamp)
	event.SetSource(eventSource)
	event.SetType(StatusChangedEventType)

	err := event.SetData(cloudevents.ApplicationJSON, change)
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	for _, s := range subscribers {
		if !s.Matches(change.AlertID) {
			continue
		}

		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := n.client.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error().Err(result).Msgf("failed to send event to %s", s.Endpoint)
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}

type EntityInfo struct {
	IDPattern string `yaml:"idPattern"`
}

type RegistrationInfo struct {
	Entities []EntityInfo `yaml:"entities"`
}

type SubscriberConfig struct {
	Endpoint    string             `yaml:"endpoint"`
	Information []RegistrationInfo `yaml:"information"`
}

// Matches reports whether the subscriber wants events for alertID. A
// subscriber without any id patterns receives everything.
func (s SubscriberConfig) Matches(alertID string) bool {
	patterns := 0

	for _, info := range s.Information {
		for _, e := range info.Entities {
			if e.IDPattern == "" {
				continue
			}
			patterns++

			if ok, _ := regexp.MatchString(e.IDPattern, alertID); ok {
				return true
			}
		}
	}

	return patterns == 0
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every subscriber id pattern compiles.
func (c Config) Validate() error {
	for _, n := range c.Notifications {
		for _, s := range n.Subscribers {
			for _, info := range s.Information {
				for _, e := range info.Entities {
					if _, err := regexp.Compile(e.IDPattern); err != nil {
						return fmt.Errorf("notification %s: bad idPattern: %w", n.ID, err)
					}
				}
			}
		}
	}

	return nil
}
