package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diwise/alert-console/pkg/types"
	"github.com/matryer/is"
)

func TestQueryWithPriorityFilter(t *testing.T) {
	is := is.New(t)

	var path, rawQuery string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		rawQuery = r.URL.RawQuery
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(queryResponse))
	}))
	defer s.Close()

	c, err := New(context.Background(), s.URL, "", "", "")
	is.NoErr(err)

	result, err := c.Query(context.Background(), types.Query{Page: 2, Limit: 20, Priority: types.PriorityHigh})
	is.NoErr(err)

	is.Equal(path, "/alerts/advanced")
	is.Equal(rawQuery, "limit=20&page=2&priority=HIGH")
	is.Equal(len(result.Alerts), 2)
	is.Equal(result.Alerts[0].Identity(), "507f1f77bcf86cd799439011")
	is.Equal(result.Alerts[1].Identity(), "E-17")
	is.Equal(string(result.Alerts[1].EntityID), "64b7f0c2a1e4d3b2c1a09f88")
	is.Equal(result.Summary.ByPriority.Total(), 7)
	is.True(result.Pagination.HasMore)
}

func TestQueryWithoutFilterOmitsPriority(t *testing.T) {
	is := is.New(t)

	var rawQuery string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(queryResponse))
	}))
	defer s.Close()

	c, _ := New(context.Background(), s.URL, "", "", "")
	_, err := c.Query(context.Background(), types.Query{Page: 1, Limit: 1})
	is.NoErr(err)
	is.Equal(rawQuery, "limit=1&page=1")
}

func TestQueryThatIsNotSuccessfulReturnsRemoteMessage(t *testing.T) {
	is := is.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":false,"message":"analytics unavailable"}`))
	}))
	defer s.Close()

	c, _ := New(context.Background(), s.URL, "", "", "")
	_, err := c.Query(context.Background(), types.Query{Page: 1, Limit: 20})

	is.True(errors.Is(err, ErrRequestFailed))
	is.Equal(err.Error(), "request failed: analytics unavailable")
}

func TestDismissCallsMutationEndpoint(t *testing.T) {
	is := is.New(t)

	var method, path string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer s.Close()

	c, _ := New(context.Background(), s.URL+"/", "", "", "")
	err := c.Dismiss(context.Background(), "507f1f77bcf86cd799439011")
	is.NoErr(err)

	is.Equal(method, http.MethodPatch)
	is.Equal(path, "/alerts/507f1f77bcf86cd799439011/dismiss")
}

func TestAcknowledgeFailsOnServerError(t *testing.T) {
	is := is.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer s.Close()

	c, _ := New(context.Background(), s.URL, "", "", "")
	err := c.Acknowledge(context.Background(), "507f1f77bcf86cd799439011")

	is.True(errors.Is(err, ErrRequestFailed))
}

func TestNewWithClientCredentials(t *testing.T) {
	is := is.New(t)

	var authorization string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token" {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(tokenResponse))
			return
		}
		authorization = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer s.Close()

	c, err := New(context.Background(), s.URL, s.URL+"/token", "client", "secret")
	is.NoErr(err)

	is.NoErr(c.Resolve(context.Background(), "507f1f77bcf86cd799439011"))
	is.Equal(authorization, "Bearer testtoken")
}

const tokenResponse string = `{"access_token":"testtoken","expires_in":300,"refresh_expires_in":0,"token_type":"Bearer","not-before-policy":0,"scope":"email profile"}`

const queryResponse string = `{
	"success": true,
	"data": {
		"alerts": [
			{"_id":"507f1f77bcf86cd799439011","entityId":"e-1","title":"Inactive","priority":"HIGH","type":"INACTIVITY","timestamp":"2024-03-01T10:00:00Z","status":"active"},
			{"id":"E-17","entityId":{"_id":"64b7f0c2a1e4d3b2c1a09f88"},"title":"Simultaneous","priority":"HIGH","type":"SIMULTANEOUS_ACTIVITY","timestamp":"2024-03-01T11:00:00Z","details":{"location":"Library"}}
		],
		"summary": {"byPriority":{"high":4,"medium":2,"low":1},"byType":{"inactivity":3}},
		"pagination": {"page":2,"limit":20,"total":7,"hasMore":true}
	}
}`
