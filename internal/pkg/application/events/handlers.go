package events

import (
	"context"
	"encoding/json"

	"github.com/diwise/alert-console/internal/pkg/application/alerts"
	"github.com/diwise/alert-console/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("alert-console/events")

// RegisterTopicMessageHandlers subscribes to the topics this service consumes.
func RegisterTopicMessageHandlers(messenger messaging.MsgContext, store alerts.OverlayStore) {
	messenger.RegisterTopicMessageHandler((&types.OverlayReset{}).TopicName(), NewOverlayResetHandler(store))
}

// NewOverlayResetHandler drops all local status overrides when another
// instance, or an operator tool, asks for it on the message bus.
func NewOverlayResetHandler(store alerts.OverlayStore) messaging.TopicMessageHandler {
	return func(ctx context.Context, msg amqp.Delivery, l zerolog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "overlay-reset")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		reset := types.OverlayReset{}

		err = json.Unmarshal(msg.Body, &reset)
		if err != nil {
			log.Error().Err(err).Msgf("failed to unmarshal message from %s", msg.RoutingKey)
			return
		}

		err = store.Reset(ctx)
		if err != nil {
			log.Error().Err(err).Msg("could not reset overlay")
			return
		}

		log.Info().Str("requester", reset.Requester).Msg("overlay reset on request")
	}
}
