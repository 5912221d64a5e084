package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, nopLogger{})
}

func TestClient_PickAvailableResponsable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/responsables/available", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 12, "first_name": "Anna", "open_requests": 3}`))
	})

	id, err := client.PickAvailableResponsable(context.Background())

	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(12), *id)
}

func TestClient_PickAvailableResponsable_NoneAvailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	id, err := client.PickAvailableResponsable(context.Background())

	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestClient_PickAvailableResponsable_Degraded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	id, err := client.PickAvailableResponsable(context.Background())

	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.Nil(t, id)
}

func TestClient_GetAvailableResponsable_BadPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"first_name": "no id"}`))
	})

	_, err := client.GetAvailableResponsable(context.Background())

	assert.ErrorIs(t, err, ErrInvalidResponse)
}
