package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/diwise/alert-console/internal/pkg/application/alerts"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/jwtauth/v5"
	"github.com/open-policy-agent/opa/rego"
	"go.opentelemetry.io/otel"
)

type userContextKey struct{ name string }

var userCtxKey = &userContextKey{"user"}

var tracer = otel.Tracer("alert-console/authz")

type Authenticator interface {
	// RequireSession verifies the bearer token of a request and stores the
	// resulting user in the request context.
	RequireSession() func(http.Handler) http.Handler
}

type impl struct {
	jwt   *jwtauth.JWTAuth
	query rego.PreparedEvalQuery
}

func (a *impl) RequireSession() func(http.Handler) http.Handler {
	verify := jwtauth.Verify(a.jwt, jwtauth.TokenFromHeader, jwtauth.TokenFromCookie)

	return func(next http.Handler) http.Handler {
		return verify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error

			ctx, span := tracer.Start(r.Context(), "check-auth")
			defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

			logger := logging.GetFromContext(ctx)

			_, claims, err := jwtauth.FromContext(ctx)
			if err != nil {
				logger.Info().Err(err).Msg("request without a valid token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			user, err := a.evaluate(ctx, claims)
			if err != nil {
				if errors.Is(err, errNoSession) {
					logger.Warn().Err(err).Msg("authorization failed")
					http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
					return
				}

				logger.Error().Err(err).Msg("opa error")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			// Token is authenticated, pass it through
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		}))
	}
}

var errNoSession = errors.New("token claims do not describe a session")

func (a *impl) evaluate(ctx context.Context, claims map[string]any) (*alerts.User, error) {
	results, err := a.query.Eval(ctx, rego.EvalInput(map[string]any{"claims": claims}))
	if err != nil {
		return nil, fmt.Errorf("opa eval failed: %w", err)
	}

	if len(results) == 0 {
		return nil, errors.New("opa query could not be satisfied")
	}

	binding := results[0].Bindings["x"]

	// If authz fails we will get back a single bool. Check for that first.
	if allowed, ok := binding.(bool); ok && !allowed {
		return nil, errNoSession
	}

	session, ok := binding.(map[string]any)
	if !ok {
		return nil, errors.New("unexpected result type")
	}

	id, _ := session["user"].(string)
	role, _ := session["role"].(string)

	if id == "" {
		return nil, errNoSession
	}

	return &alerts.User{ID: id, Role: alerts.ParseRole(role)}, nil
}

// NewAuthenticator verifies HS256 tokens signed with secret and maps their
// claims to a session using the rego policies.
func NewAuthenticator(ctx context.Context, secret string, policies io.Reader) (Authenticator, error) {
	if secret == "" {
		return nil, errors.New("a token secret is required")
	}

	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	query, err := rego.New(
		rego.Query("x = data.alertconsole.authz.allow"),
		rego.Module("authz.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return &impl{
		jwt:   jwtauth.New("HS256", []byte(secret), nil),
		query: query,
	}, nil
}

func WithUser(ctx context.Context, user *alerts.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext returns the authenticated user, or nil if there is none.
func UserFromContext(ctx context.Context) *alerts.User {
	user, ok := ctx.Value(userCtxKey).(*alerts.User)
	if !ok {
		return nil
	}
	return user
}
