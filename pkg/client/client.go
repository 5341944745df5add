package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/diwise/alert-console/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AlertSourceClient talks to the analytics service that owns the alerts.
type AlertSourceClient interface {
	Query(ctx context.Context, q types.Query) (types.QueryResult, error)
	Acknowledge(ctx context.Context, alertID string) error
	Resolve(ctx context.Context, alertID string) error
	Dismiss(ctx context.Context, alertID string) error
}

var ErrRequestFailed = errors.New("request failed")

var tracer = otel.Tracer("alert-source-client")

type alertSourceClient struct {
	url        string
	httpClient *http.Client
}

// New creates a client for the remote alert source. When oauthTokenURL is set
// every request carries a client credentials token.
func New(ctx context.Context, alertSourceURL, oauthTokenURL, oauthClientID, oauthClientSecret string) (AlertSourceClient, error) {
	if alertSourceURL == "" {
		return nil, fmt.Errorf("no alert source url configured")
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	if oauthTokenURL != "" {
		oauthConfig := &clientcredentials.Config{
			ClientID:     oauthClientID,
			ClientSecret: oauthClientSecret,
			TokenURL:     oauthTokenURL,
		}

		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		token, err := oauthConfig.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get client credentials from %s: %w", oauthTokenURL, err)
		}
		if !token.Valid() {
			return nil, fmt.Errorf("an invalid token was returned from %s", oauthTokenURL)
		}

		httpClient = oauthConfig.Client(ctx)
	}

	return &alertSourceClient{
		url:        strings.TrimSuffix(alertSourceURL, "/"),
		httpClient: httpClient,
	}, nil
}

func (c *alertSourceClient) Query(ctx context.Context, q types.Query) (types.QueryResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-alerts")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Priority != "" {
		params.Set("priority", string(q.Priority))
	}

	reqURL := c.url + "/alerts/advanced?" + params.Encode()

	log.Debug().Msgf("querying alerts: %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return types.QueryResult{}, err
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to retrieve alerts: %w", err)
		return types.QueryResult{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return types.QueryResult{}, err
	}

	response := types.QueryResponse{}
	if jsonErr := json.Unmarshal(respBody, &response); jsonErr != nil {
		if resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("%w: status code %d", ErrRequestFailed, resp.StatusCode)
			return types.QueryResult{}, err
		}
		err = fmt.Errorf("failed to unmarshal response body: %w", jsonErr)
		return types.QueryResult{}, err
	}

	if resp.StatusCode != http.StatusOK || !response.Success {
		err = requestFailed(resp.StatusCode, response.Message)
		return types.QueryResult{}, err
	}

	return response.Data, nil
}

func (c *alertSourceClient) Acknowledge(ctx context.Context, alertID string) error {
	return c.mutate(ctx, alertID, types.ActionAcknowledge)
}

func (c *alertSourceClient) Resolve(ctx context.Context, alertID string) error {
	return c.mutate(ctx, alertID, types.ActionResolve)
}

func (c *alertSourceClient) Dismiss(ctx context.Context, alertID string) error {
	return c.mutate(ctx, alertID, types.ActionDismiss)
}

func (c *alertSourceClient) mutate(ctx context.Context, alertID string, action types.Action) error {
	var err error
	ctx, span := tracer.Start(ctx, string(action)+"-alert")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	if alertID == "" {
		err = fmt.Errorf("no alert id given")
		return err
	}

	reqURL := fmt.Sprintf("%s/alerts/%s/%s", c.url, url.PathEscape(alertID), action)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqURL, nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return err
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to %s alert %s: %w", action, alertID, err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	result := struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}{}
	_ = json.Unmarshal(respBody, &result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (result.Success != nil && !*result.Success) {
		err = requestFailed(resp.StatusCode, result.Message)
		return err
	}

	log.Info().Str("alert_id", alertID).Str("action", string(action)).Msg("remote mutation completed")

	return nil
}

func requestFailed(code int, message string) error {
	if message == "" {
		return fmt.Errorf("%w: status code %d", ErrRequestFailed, code)
	}
	return fmt.Errorf("%w: %s", ErrRequestFailed, message)
}
