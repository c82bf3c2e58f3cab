package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/kitty/pkg/api"
)

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	alice := c.register(t, "alice")
	assert.NotEmpty(t, alice.id)
	assert.NotEmpty(t, alice.token)

	login, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "password-alice",
	}))
	require.NoError(t, err)
	assert.Equal(t, alice.id, login.Msg.User.ID)

	me, err := c.auth.GetCurrentUser(ctx, as(testUser{token: login.Msg.Token}, &api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, alice.id, me.Msg.User.ID)
	assert.Equal(t, "alice", me.Msg.User.DisplayName)
}

func TestAuthFailures(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	c.register(t, "alice")

	_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "alice@example.com", DisplayName: "Alice", Password: "another-password",
	}))
	requireCode(t, err, connect.CodeAlreadyExists, "")

	_, err = c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "bob@example.com", DisplayName: "Bob", Password: "short",
	}))
	requireCode(t, err, connect.CodeInvalidArgument, "")

	_, err = c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email: "alice@example.com", Password: "wrong-password",
	}))
	requireCode(t, err, connect.CodeUnauthenticated, "")

	_, err = c.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated, "")

	_, err = c.group.CreateGroup(ctx, as(testUser{token: "forged"}, &api.CreateGroupRequest{Name: "x"}))
	requireCode(t, err, connect.CodeUnauthenticated, "")
}
