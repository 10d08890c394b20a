package tracking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/order-tracker/internal/core/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/api/tracking/"})
}

func TestClient_OrderURL(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost:8000/api/tracking/"})

	assert.Equal(t, "http://localhost:8000/api/tracking/orders/12345/", c.OrderURL("12345"))
	assert.Equal(t, "http://localhost:8000/api/tracking/orders/a%2Fb/", c.OrderURL("a/b"))
}

func TestClient_Fetch_Located(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tracking/orders/12345/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"en_camino","location":{"latitude":"-33.44","longitude":"-70.65","timestamp":"2024-01-01T10:00:00Z"}}`))
	})

	snap, err := c.Fetch(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInTransit, snap.Status)
	require.NotNil(t, snap.Location)
	assert.Equal(t, "-33.44", snap.Location.Latitude)
	assert.Equal(t, "-70.65", snap.Location.Longitude)
	assert.Equal(t, "2024-01-01T10:00:00Z", snap.Location.Timestamp)
}

func TestClient_Fetch_NoLocation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"pendiente","location":null}`))
	})

	snap, err := c.Fetch(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, snap.Status)
	assert.Nil(t, snap.Location)
}

func TestClient_Fetch_BadCoordinatesAreNotRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"en_camino","location":{"latitude":"abc","longitude":"-70.65"}}`))
	})

	snap, err := c.Fetch(context.Background(), "12345")
	require.NoError(t, err)
	require.NotNil(t, snap.Location)

	_, err = snap.Location.Point()
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

func TestClient_Fetch_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	})

	_, err := c.Fetch(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.ErrorIs(t, err, domain.ErrStatusUnavailable)
}

func TestClient_Fetch_ErrorWithoutJSONBodyKeepsStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := c.Fetch(context.Background(), "12345")
	require.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	assert.NotErrorIs(t, err, domain.ErrStatusUnavailable)
}

func TestClient_Fetch_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"database unavailable"}`))
	})

	_, err := c.Fetch(context.Background(), "12345")
	require.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	assert.ErrorIs(t, err, domain.ErrStatusUnavailable)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestClient_Fetch_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := c.Fetch(context.Background(), "12345")
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestClient_Fetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(Config{BaseURL: url}).Fetch(context.Background(), "12345")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := c.Fetch(context.Background(), "12345")
	require.Error(t, err)
}

func TestClient_Fetch_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"pendiente"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx, "12345")
	assert.ErrorIs(t, err, context.Canceled)
}
