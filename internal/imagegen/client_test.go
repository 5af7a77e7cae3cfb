package imagegen

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 1200, 630, 0, srv.Client(), log.New(bytes.NewBuffer(nil), "", 0))
	return c, srv
}

func TestFetch_ReturnsBytesOn200(t *testing.T) {
	var gotURL string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		_, _ = w.Write([]byte("jpeg-bytes"))
	})

	data, ok := c.Fetch(context.Background(), "healthy woman doing yoga")

	require.True(t, ok)
	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Contains(t, gotURL, "/prompt/healthy%20woman%20doing%20yoga")
	assert.Contains(t, gotURL, "width=1200")
	assert.Contains(t, gotURL, "height=630")
	assert.Contains(t, gotURL, "nologo=true")
}

func TestFetch_NonOKStatusIsAbsence(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	data, ok := c.Fetch(context.Background(), "p")

	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestFetch_TransportErrorIsAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	c := NewClient(srv.URL, 1200, 630, 0, srv.Client(), log.New(bytes.NewBuffer(nil), "", 0))
	srv.Close() // connection refused from here on

	data, ok := c.Fetch(context.Background(), "p")

	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestFetch_CancelledContextIsAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	t.Cleanup(srv.Close)

	// non-zero delay so cancellation wins before the request goes out
	c := NewClient(srv.URL, 1200, 630, time.Minute, srv.Client(), log.New(bytes.NewBuffer(nil), "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := c.Fetch(ctx, "p")
	assert.False(t, ok)
}
