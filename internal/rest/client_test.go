package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ramadhanarif/storefront-client/pkg/config"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct{ token string }

func (s *staticTokens) Token() string { return s.token }

type recordingInvalidator struct{ calls int }

func (r *recordingInvalidator) Invalidate(context.Context) { r.calls++ }

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func newTestClient(t *testing.T, serverURL, token string) (*Client, *recordingInvalidator) {
	t.Helper()
	invalidator := &recordingInvalidator{}
	client, err := NewClient(
		config.APIConfig{BaseURL: serverURL, Timeout: 2 * time.Second},
		testLogger(),
		&staticTokens{token: token},
		invalidator,
	)
	require.NoError(t, err)
	return client, invalidator
}

func TestGetAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "tok-abc")

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.Get(context.Background(), "/ping", &out))
	assert.True(t, out.OK)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestNoAuthorizationHeaderWhenLoggedOut(t *testing.T) {
	var sawHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, "")
	require.NoError(t, client.Get(context.Background(), "/product", nil))
	assert.False(t, sawHeader)
}

func TestUnauthorizedTriggersInvalidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, invalidator := newTestClient(t, server.URL, "stale")

	err := client.Get(context.Background(), "/cart", nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
	assert.Equal(t, "token expired", pkgerrors.UserMessage(err))
	assert.Equal(t, 1, invalidator.calls)
}

func TestServerMessageSurfacedOnRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"stok tidak mencukupi"}`))
	}))
	defer server.Close()

	client, invalidator := newTestClient(t, server.URL, "tok")

	err := client.Patch(context.Background(), "/cart/1/increase", nil, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRejected, pkgerrors.CodeOf(err))
	assert.Equal(t, "stok tidak mencukupi", pkgerrors.UserMessage(err))
	assert.Zero(t, invalidator.calls)
}

func TestStatusMapping(t *testing.T) {
	cases := map[int]pkgerrors.Code{
		http.StatusBadRequest: pkgerrors.CodeValidation,
		http.StatusForbidden:  pkgerrors.CodeForbidden,
		http.StatusNotFound:   pkgerrors.CodeNotFound,
		http.StatusConflict:   pkgerrors.CodeRejected,
		500:                   pkgerrors.CodeRejected,
	}
	for status, want := range cases {
		status, want := status, want
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		client, _ := newTestClient(t, server.URL, "tok")
		err := client.Get(context.Background(), "/x", nil)
		require.Error(t, err)
		assert.Equal(t, want, pkgerrors.CodeOf(err), "status %d", status)
		server.Close()
	}
}

func TestTimeoutMapsToTimeoutCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	invalidator := &recordingInvalidator{}
	client, err := NewClient(
		config.APIConfig{BaseURL: server.URL, Timeout: 20 * time.Millisecond},
		testLogger(),
		&staticTokens{},
		invalidator,
	)
	require.NoError(t, err)

	err = client.Get(context.Background(), "/slow", nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeTimeout, pkgerrors.CodeOf(err))
	assert.True(t, pkgerrors.MetadataFor(pkgerrors.CodeOf(err)).Transient)
}

func TestConnectionRefusedMapsToNetworkCode(t *testing.T) {
	client, _ := newTestClient(t, "http://127.0.0.1:1", "tok")

	err := client.Get(context.Background(), "/cart", nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNetwork, pkgerrors.CodeOf(err))
}

func TestResolveURL(t *testing.T) {
	client, _ := newTestClient(t, "https://api.example.test", "")

	assert.Equal(t, "https://api.example.test/uploads/a.png", client.ResolveURL("/uploads/a.png"))
	assert.Equal(t, "https://api.example.test/uploads/b.png", client.ResolveURL("uploads/b.png"))
	assert.Equal(t, "https://cdn.example.test/c.png", client.ResolveURL("https://cdn.example.test/c.png"))
	assert.Equal(t, "http://cdn.example.test/d.png", client.ResolveURL("http://cdn.example.test/d.png"))
	assert.Equal(t, "https://api.example.test/httpdocs/img.png", client.ResolveURL("httpdocs/img.png"),
		"an http-ish directory name is still relative")
	assert.Empty(t, client.ResolveURL(""))
}
