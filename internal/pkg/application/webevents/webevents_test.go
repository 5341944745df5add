package webevents

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/alert-console/pkg/types"
	"github.com/matryer/is"
)

func TestPublishWithoutListeners(t *testing.T) {
	is := is.New(t)

	we := New()
	defer we.Shutdown()

	is.NoErr(we.StatusChanged(context.Background(), types.AlertStatusChanged{AlertID: "eph-1", Status: types.StatusAcknowledged}))
}

func TestStatusChangesReachListeners(t *testing.T) {
	is := is.New(t)

	we := New()
	defer we.Shutdown()

	server := httptest.NewServer(we)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v0/events")
	is.NoErr(err)
	defer resp.Body.Close()

	received := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "data:") {
				received <- line
				return
			}
		}
	}()

	// the listener is registered asynchronously, keep publishing until it shows up
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)

	for {
		select {
		case line := <-received:
			is.True(strings.Contains(line, `"alertID":"eph-1"`))
			return
		case <-ticker.C:
			we.StatusChanged(context.Background(), types.AlertStatusChanged{AlertID: "eph-1", Status: types.StatusAcknowledged})
		case <-timeout:
			t.Fatal("no event received")
		}
	}
}
