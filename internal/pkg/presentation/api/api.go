package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/alert-console/internal/pkg/application/alerts"
	"github.com/diwise/alert-console/internal/pkg/presentation/api/auth"
	"github.com/diwise/alert-console/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("alert-console/api")

// RegisterHandlers mounts the dashboard api on router. Status changes are
// streamed from /api/v0/events when stream is not nil.
func RegisterHandlers(ctx context.Context, router *chi.Mux, authenticator auth.Authenticator, console alerts.Console, stream http.Handler) *chi.Mux {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	router.Route("/api/v0", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			// Handle valid / invalid tokens.
			r.Use(authenticator.RequireSession())

			r.Route("/alerts", func(r chi.Router) {
				r.Get("/", getAlertsHandler(log, console))
				r.Post("/refresh", refreshHandler(log, console))
				r.Post("/more", loadMoreHandler(log, console))
				r.Post("/filter", toggleFilterHandler(log, console))
				r.Delete("/filter", clearFilterHandler(log, console))
				r.Get("/{alertID}", getAlertHandler(log, console))
				r.Post("/{alertID}/{action}", dispatchHandler(log, console))
			})

			r.Delete("/overlay", resetOverlayHandler(log, console))

			if stream != nil {
				r.Get("/events", stream.ServeHTTP)
			}
		})
	})

	return router
}

func getAlertsHandler(log zerolog.Logger, console alerts.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alerts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		user := auth.UserFromContext(ctx)
		view := console.View(user)

		if !view.State().Loaded {
			err = view.Refresh(ctx)
			if err != nil {
				requestLogger.Error().Err(err).Msg("unable to load alerts")
				writeError(w, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, newStateView(view.State(), user))
	}
}

func refreshHandler(log zerolog.Logger, console alerts.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "refresh-alerts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		user := auth.UserFromContext(ctx)
		view := console.View(user)

		err = view.Refresh(ctx)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to refresh alerts")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newStateView(view.State(), user))
	}
}

func loadMoreHandler(log zerolog.Logger, console alerts.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "load-more-alerts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		user := auth.UserFromContext(ctx)
		view := console.View(user)

		err = view.LoadMore(ctx)
		if err != nil {
			requestLogger.Info().Err(err).Msg("unable to load more alerts")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newStateView(view.State(), user))
	}
}

func toggleFilterHandler(log zerolog.Logger, console alerts.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "toggle-filter")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to read body")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		req := filterRequest{}
		err = json.Unmarshal(body, &req)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to unmarshal body")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed filter request"})
			return
		}

		user := auth.UserFromContext(ctx)
		view := console.View(user)

		// an empty priority clears the filter
		if strings.TrimSpace(req.Priority) == "" {
			err = view.ClearFilter(ctx)
		} else {
			priority, ok := types.ParsePriority(req.Priority)
			if !ok {
				err = errors.New("unknown priority")
				requestLogger.Info().Str("priority", req.Priority).Msg("unknown priority in filter request")
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}

			err = view.ToggleFilter(ctx, priority)
		}
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to load filtered alerts")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newStateView(view.State(), user))
	}
}

func clearFilterHandler(log zerolog.Logger, console alerts.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "clear-filter")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		user := auth.UserFromContext(ctx)
		view := console.View(user)

		err = view.ClearFilter(ctx)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to load alerts")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newStateView(view.State(), user))
	}
}

func getAlertHandler(log zerolog.Logger, console alerts.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")
		user := auth.UserFromContext(ctx)

		a, ok := console.View(user).Get(alertID)
		if !ok {
			err = alerts.ErrAlertNotFound
			requestLogger.Debug().Str("alert_id", alertID).Msg("alert not found")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newAlertView(a, user))
	}
}

func dispatchHandler(log zerolog.Logger, console alerts.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "dispatch-action")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")
		action, ok := types.ParseAction(chi.URLParam(r, "action"))
		if !ok {
			err = errors.New("unknown action")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		user := auth.UserFromContext(ctx)

		_, err = console.Dispatch(ctx, user, alertID, action)
		if err != nil {
			requestLogger.Info().Err(err).Str("alert_id", alertID).Str("action", string(action)).Msg("action was not applied")
			writeError(w, err)
			return
		}

		a, ok := console.View(user).Get(alertID)
		if !ok {
			// the alert dropped out of the refreshed page
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeJSON(w, http.StatusOK, newAlertView(a, user))
	}
}

func resetOverlayHandler(log zerolog.Logger, console alerts.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "reset-overlay")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		err = console.ResetOverlay(ctx, auth.UserFromContext(ctx))
		if err != nil {
			requestLogger.Warn().Err(err).Msg("unable to reset overlay")
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, alerts.ErrMissingAlertID):
		return http.StatusBadRequest
	case errors.Is(err, alerts.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, alerts.ErrNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, alerts.ErrAlertNotFound):
		return http.StatusNotFound
	case errors.Is(err, alerts.ErrActionInFlight),
		errors.Is(err, alerts.ErrTerminalState),
		errors.Is(err, alerts.ErrInvalidTransition),
		errors.Is(err, alerts.ErrNoMorePages):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}
