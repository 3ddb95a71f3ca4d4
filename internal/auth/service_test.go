package auth

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/ramadhanarif/storefront-client/internal/session"
	"github.com/ramadhanarif/storefront-client/pkg/enums"
	pkgerrors "github.com/ramadhanarif/storefront-client/pkg/errors"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPoster struct {
	paths []string
	body  any
	err   error
	resp  string
}

func (s *stubPoster) Post(ctx context.Context, path string, body, out any) error {
	s.paths = append(s.paths, path)
	s.body = body
	if s.err != nil {
		return s.err
	}
	if s.resp != "" && out != nil {
		return json.Unmarshal([]byte(s.resp), out)
	}
	return nil
}

func newTestService(t *testing.T, api *stubPoster) (*Service, *session.Manager) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	store, err := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	sessions, err := session.NewManager(store, logg)
	require.NoError(t, err)
	svc, err := NewService(api, sessions, logg)
	require.NoError(t, err)
	return svc, sessions
}

func TestLoginStoresSession(t *testing.T) {
	api := &stubPoster{resp: `{
		"token": "tok-123",
		"user": {"id": "u-1", "username": "budi", "email": "budi@example.com", "role": "customer"}
	}`}
	svc, sessions := newTestService(t, api)

	user, err := svc.Login(context.Background(), Credentials{Email: " Budi@Example.com ", Password: "rahasia123"})
	require.NoError(t, err)
	assert.Equal(t, "budi", user.Username)
	assert.Equal(t, []string{"/auth/login"}, api.paths)
	assert.True(t, sessions.IsLoggedIn())
	assert.Equal(t, "tok-123", sessions.Token())

	raw, err := json.Marshal(api.body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"budi@example.com","password":"rahasia123"}`, string(raw))
}

func TestLoginRejectsBadEmailLocally(t *testing.T) {
	api := &stubPoster{}
	svc, sessions := newTestService(t, api)

	_, err := svc.Login(context.Background(), Credentials{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Empty(t, api.paths)
	assert.False(t, sessions.IsLoggedIn())
}

func TestLoginSurfacesBackendMessage(t *testing.T) {
	api := &stubPoster{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	svc, sessions := newTestService(t, api)

	_, err := svc.Login(context.Background(), Credentials{Email: "budi@example.com", Password: "wrong-password"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", pkgerrors.UserMessage(err))
	assert.False(t, sessions.IsLoggedIn())
}

func TestRegisterDefaultsRoleToCustomer(t *testing.T) {
	api := &stubPoster{resp: `{
		"token": "tok-456",
		"user": {"id": "u-2", "username": "sari", "email": "sari@example.com", "role": "customer"}
	}`}
	svc, sessions := newTestService(t, api)

	user, err := svc.Register(context.Background(), Registration{
		Username: "sari",
		Email:    "sari@example.com",
		Password: "rahasia123",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleCustomer, user.Role)
	assert.True(t, sessions.IsLoggedIn())

	raw, err := json.Marshal(api.body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"username": "sari",
		"email": "sari@example.com",
		"password": "rahasia123",
		"role": "customer"
	}`, string(raw))
}

func TestRegisterShortPasswordBlocked(t *testing.T) {
	api := &stubPoster{}
	svc, _ := newTestService(t, api)

	_, err := svc.Register(context.Background(), Registration{
		Username: "sari",
		Email:    "sari@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Empty(t, api.paths)
}

func TestLogoutClearsSession(t *testing.T) {
	api := &stubPoster{resp: `{"token":"tok-789","user":{"id":"u-3","username":"adi","email":"adi@example.com","role":"admin"}}`}
	svc, sessions := newTestService(t, api)

	_, err := svc.Login(context.Background(), Credentials{Email: "adi@example.com", Password: "rahasia123"})
	require.NoError(t, err)
	require.True(t, sessions.IsAdmin())

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, sessions.IsLoggedIn())
	assert.Empty(t, sessions.Token())
}
