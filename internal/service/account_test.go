package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chargectl/internal/api"
)

type fakeAccounts struct {
	result     api.LoginResult
	loginErr   error
	registered []string
}

func (f *fakeAccounts) Login(_ context.Context, _, _ string) (api.LoginResult, error) {
	return f.result, f.loginErr
}

func (f *fakeAccounts) Register(_ context.Context, username, _ string) error {
	f.registered = append(f.registered, username)
	return nil
}

type fakeSessions struct {
	token   string
	isAdmin bool
	sets    int
	clears  int
}

func (f *fakeSessions) Set(token string, isAdmin bool) {
	f.token = token
	f.isAdmin = isAdmin
	f.sets++
}

func (f *fakeSessions) Clear() {
	f.token = ""
	f.isAdmin = false
	f.clears++
}

func TestLoginStoresUserSession(t *testing.T) {
	accounts := &fakeAccounts{result: api.LoginResult{Token: "tok-1", IsAdmin: false}}
	sessions := &fakeSessions{}
	svc := NewAccountService(accounts, sessions, zap.NewNop())

	require.NoError(t, svc.Login(context.Background(), "alice", "pw"))
	assert.Equal(t, "tok-1", sessions.token)
	assert.Equal(t, 1, sessions.sets)
}

func TestLoginRejectsAdminWithoutTouchingStore(t *testing.T) {
	accounts := &fakeAccounts{result: api.LoginResult{Token: "tok-2", IsAdmin: true}}
	sessions := &fakeSessions{}
	svc := NewAccountService(accounts, sessions, zap.NewNop())

	err := svc.Login(context.Background(), "root", "pw")
	require.ErrorIs(t, err, ErrAdminAccount)
	assert.Equal(t, "请使用用户账号", err.Error())
	assert.Zero(t, sessions.sets)
	assert.Empty(t, sessions.token)
}

func TestLoginPropagatesAPIError(t *testing.T) {
	wrapped := api.NewApplicationError("密码错误")
	accounts := &fakeAccounts{loginErr: wrapped}
	sessions := &fakeSessions{}
	svc := NewAccountService(accounts, sessions, zap.NewNop())

	err := svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, wrapped)
	assert.Zero(t, sessions.sets)
}

func TestLoginAdminStoresSessionRegardlessOfRole(t *testing.T) {
	accounts := &fakeAccounts{result: api.LoginResult{Token: "tok-3", IsAdmin: true}}
	sessions := &fakeSessions{}
	svc := NewAccountService(accounts, sessions, zap.NewNop())

	require.NoError(t, svc.LoginAdmin(context.Background(), "root", "pw"))
	assert.Equal(t, "tok-3", sessions.token)
	assert.True(t, sessions.isAdmin)
}

func TestLogoutClearsSession(t *testing.T) {
	sessions := &fakeSessions{token: "tok"}
	svc := NewAccountService(&fakeAccounts{}, sessions, zap.NewNop())

	svc.Logout()
	assert.Equal(t, 1, sessions.clears)
	assert.Empty(t, sessions.token)
}
