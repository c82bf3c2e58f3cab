package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/kitty/internal/auth"
	"github.com/mmynk/kitty/internal/ledger"
	"github.com/mmynk/kitty/internal/middleware"
	"github.com/mmynk/kitty/internal/storage/sqlite"
	"github.com/mmynk/kitty/pkg/api"
)

// testClients bundles typed clients for one test server.
type testClients struct {
	auth      api.AuthServiceClient
	group     api.GroupServiceClient
	inventory api.InventoryServiceClient
}

// setupTestServer starts all three services behind the real auth and
// logging interceptors on a fresh SQLite database.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"), sqlite.Options{MaxAttempts: 64})
	require.NoError(t, err)
	l := ledger.New(store)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(l).WithCost(bcrypt.MinCost)
	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, api.AuthServiceRegisterProcedure, api.AuthServiceLoginProcedure),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, l, slog.Default()), interceptors))
	mux.Handle(api.NewGroupServiceHandler(NewGroupService(l), interceptors))
	mux.Handle(api.NewInventoryServiceHandler(NewInventoryService(l), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		auth:      api.NewAuthServiceClient(http.DefaultClient, server.URL),
		group:     api.NewGroupServiceClient(http.DefaultClient, server.URL),
		inventory: api.NewInventoryServiceClient(http.DefaultClient, server.URL),
	}
}

// testUser is a registered user and their bearer token.
type testUser struct {
	id    string
	token string
}

func (c *testClients) register(t *testing.T, name string) testUser {
	t.Helper()
	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       name + "@example.com",
		DisplayName: name,
		Password:    "password-" + name,
	}))
	require.NoError(t, err)
	return testUser{id: resp.Msg.User.ID, token: resp.Msg.Token}
}

// as wraps msg in a request authenticated as u.
func as[T any](u testUser, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+u.token)
	return req
}

// requireCode asserts err is a Connect error with the given code and, when
// reason is set, the given ledger reason.
func requireCode(t *testing.T, err error, code connect.Code, reason ledger.Reason) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, connect.CodeOf(err), "error: %v", err)
	if reason != "" {
		require.Equal(t, string(reason), api.ErrorReason(err))
	}
}
