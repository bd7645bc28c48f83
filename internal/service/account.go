package service

import (
	"context"

	"go.uber.org/zap"

	"chargectl/internal/api"
)

// ErrAdminAccount is returned when admin credentials are used against
// the user interface; the admin command group bypasses this check.
var ErrAdminAccount = api.NewApplicationError("请使用用户账号")

// Accounts is the login/register slice of the service API.
type Accounts interface {
	Login(ctx context.Context, username, password string) (api.LoginResult, error)
	Register(ctx context.Context, username, password string) error
}

// SessionWriter is the mutation surface of the session store.
type SessionWriter interface {
	Set(token string, isAdmin bool)
	Clear()
}

// AccountService owns the session lifecycle: it is the only writer of
// the session store.
type AccountService struct {
	accounts Accounts
	sessions SessionWriter
	logger   *zap.Logger
}

// NewAccountService builds AccountService.
func NewAccountService(accounts Accounts, sessions SessionWriter, logger *zap.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

// Login authenticates and stores the session. This interface is
// user-only: admin credentials are rejected without touching the store.
func (s *AccountService) Login(ctx context.Context, username, password string) error {
	result, err := s.accounts.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if result.IsAdmin {
		return ErrAdminAccount
	}
	s.sessions.Set(result.Token, result.IsAdmin)
	s.logger.Info("logged in", zap.String("username", username))
	return nil
}

// LoginAdmin authenticates without the user-only check, for the
// admin-scoped commands. The server still gates /admin/* by role.
func (s *AccountService) LoginAdmin(ctx context.Context, username, password string) error {
	result, err := s.accounts.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.sessions.Set(result.Token, result.IsAdmin)
	s.logger.Info("logged in", zap.String("username", username), zap.Bool("admin", result.IsAdmin))
	return nil
}

// Logout clears the session.
func (s *AccountService) Logout() {
	s.sessions.Clear()
	s.logger.Info("logged out")
}

// Register creates an account; no session is established.
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	return s.accounts.Register(ctx, username, password)
}
