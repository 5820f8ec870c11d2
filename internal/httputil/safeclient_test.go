package httputil

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdocs/oaserrors"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		ip      string
		blocked bool
	}{
		{"127.0.0.1", true},
		{"10.0.0.1", true},
		{"192.168.1.1", true},
		{"169.254.1.1", true},
		{"::1", true},
		{"0.0.0.0", true},
		{"fd00::1", true},
		{"8.8.8.8", false},
		{"93.184.216.34", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip, "failed to parse IP: %s", tt.ip)
			assert.Equal(t, tt.blocked, isBlockedIP(ip))
		})
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(0)
	assert.Equal(t, 30*time.Second, client.Timeout)
	assert.NotNil(t, client.CheckRedirect)

	safe := NewSafeClient(5 * time.Second)
	assert.Equal(t, 5*time.Second, safe.Timeout)
	assert.NotNil(t, safe.Transport)
}

func TestSafeClient_BlocksLoopback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("swagger: '2.0'"))
	}))
	defer srv.Close()

	f := &Fetcher{Client: NewSafeClient(time.Second)}
	_, _, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked request")
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.yaml":
			assert.Equal(t, "oasdocs/test", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte("Pet:\n  type: object\n"))
		case "/big.yaml":
			_, _ = w.Write(make([]byte, 64))
		default:
			http.Error(w, "no such document", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client(), UserAgent: "oasdocs/test"}

	t.Run("success", func(t *testing.T) {
		data, contentType, err := f.Fetch(context.Background(), srv.URL+"/ok.yaml")
		require.NoError(t, err)
		assert.Equal(t, "application/yaml", contentType)
		assert.Contains(t, string(data), "Pet:")
	})

	t.Run("non-2xx keeps the body", func(t *testing.T) {
		_, _, err := f.Fetch(context.Background(), srv.URL+"/missing.yaml")
		var fetchErr *oaserrors.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
		assert.Contains(t, fetchErr.Body, "no such document")
	})

	t.Run("size limit", func(t *testing.T) {
		small := &Fetcher{Client: srv.Client(), MaxBodySize: 16}
		_, _, err := small.Fetch(context.Background(), srv.URL+"/big.yaml")
		assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
		assert.ErrorIs(t, err, oaserrors.ErrFetch)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := f.Fetch(ctx, srv.URL+"/ok.yaml")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
