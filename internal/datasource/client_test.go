package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartscreen/backend/internal/domain"
)

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	doc, err := NewClient().GetJSON(context.Background(), srv.URL, map[string]string{"count": "1"}, time.Second)
	require.NoError(t, err)
	assert.True(t, doc.Get("ok").Bool())
}

func TestGetJSON_EmptyURLIsConfigurationSkip(t *testing.T) {
	_, err := NewClient().GetJSON(context.Background(), "", nil, time.Second)
	assert.ErrorIs(t, err, domain.ErrConfigurationSkip)
}

func TestGetJSON_StatusErrorIsTransport(t *testing.T) {
	srv := jsonServer(t, http.StatusInternalServerError, `{}`)

	_, err := NewClient().GetJSON(context.Background(), srv.URL, nil, time.Second)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestGetJSON_InvalidJSONIsParse(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `invalid json {`)

	_, err := NewClient().GetJSON(context.Background(), srv.URL, nil, time.Second)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestGetJSON_TimeoutIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := NewClient().GetJSON(context.Background(), srv.URL, nil, 50*time.Millisecond)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGetJSON_RateLimited(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{}`)
	client := NewClient(WithRateLimit(1, 1))

	_, err := client.GetJSON(context.Background(), srv.URL, nil, time.Second)
	require.NoError(t, err)

	// The bucket is empty and the next token is a full second away.
	_, err = client.GetJSON(context.Background(), srv.URL, nil, 100*time.Millisecond)
	assert.ErrorIs(t, err, domain.ErrTransport)
}
