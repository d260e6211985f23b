package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

const (
	KeyToken    = "auth_token"
	KeyUser     = "current_user"
	KeyRedirect = "redirect_after_login"

	DefaultRedirect = "dashboard"
)

var (
	ErrUnauthenticated = errors.New("session: not authenticated")
	ErrLoginFailed     = errors.New("session: login failed")
)

// Verification is the verify-auth response
type Verification struct {
	Success   bool   `json:"success"`
	User      string `json:"user,omitempty"`
	LoginTime int64  `json:"loginTime,omitempty"`
	Message   string `json:"message,omitempty"`
}

// LoginResult is the login response
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    string `json:"user,omitempty"`
}

// Authenticator talks to the login and verification functions. A returned
// error means the call itself failed; a rejection is a result with Success false.
type Authenticator interface {
	Verify(ctx context.Context, token string) (Verification, error)
	Login(ctx context.Context, userID, password string) (LoginResult, error)
}

// Store is the local key/value storage credentials live in
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Guard gates dashboard access on a verified token
type Guard struct {
	auth   Authenticator
	store  Store
	logger *logging.Logger
}

func NewGuard(auth Authenticator, store Store, logger *logging.Logger) *Guard {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Guard{auth: auth, store: store, logger: logger.Named("session")}
}

// RequireAuth verifies the stored token. Any failure records target as the
// post-login redirect and returns ErrUnauthenticated. Stored credentials are
// cleared only when the server rejects the token, not when it is unreachable.
func (g *Guard) RequireAuth(ctx context.Context, target string) (Verification, error) {
	token, ok, err := g.store.Get(ctx, KeyToken)
	if err != nil {
		return Verification{}, err
	}
	if !ok || token == "" {
		return Verification{}, g.deny(ctx, target, nil)
	}

	v, err := g.auth.Verify(ctx, token)
	if err != nil {
		g.logger.Warn("token verification failed", "err", err)
		return Verification{}, g.deny(ctx, target, err)
	}

	if !v.Success {
		g.logger.Info("stored token rejected", "message", v.Message)
		if err := g.store.Delete(ctx, KeyToken, KeyUser); err != nil {
			return Verification{}, err
		}
		return Verification{}, g.deny(ctx, target, nil)
	}

	return v, nil
}

func (g *Guard) deny(ctx context.Context, target string, cause error) error {
	if target == "" {
		target = DefaultRedirect
	}
	if err := g.store.Set(ctx, KeyRedirect, target); err != nil {
		g.logger.Warn("failed to remember redirect", "err", err)
	}
	if cause != nil {
		return fmt.Errorf("%w: %w", ErrUnauthenticated, cause)
	}
	return ErrUnauthenticated
}

// Login stores the issued token and user, then returns where to go next.
// The remembered redirect is consumed.
func (g *Guard) Login(ctx context.Context, userID, password string) (string, error) {
	res, err := g.auth.Login(ctx, userID, password)
	if err != nil {
		return "", err
	}
	if !res.Success || res.Token == "" {
		return "", fmt.Errorf("%w: %s", ErrLoginFailed, res.Message)
	}

	user := res.User
	if user == "" {
		user = userID
	}
	if err := g.store.Set(ctx, KeyToken, res.Token); err != nil {
		return "", err
	}
	if err := g.store.Set(ctx, KeyUser, user); err != nil {
		return "", err
	}

	g.logger.Info("logged in", "user", user)
	return g.redirectTarget(ctx)
}

func (g *Guard) redirectTarget(ctx context.Context) (string, error) {
	target, ok, err := g.store.Get(ctx, KeyRedirect)
	if err != nil {
		return "", err
	}
	if err := g.store.Delete(ctx, KeyRedirect); err != nil {
		return "", err
	}
	if !ok || target == "" {
		return DefaultRedirect, nil
	}
	return target, nil
}

func (g *Guard) Logout(ctx context.Context) error {
	return g.store.Delete(ctx, KeyToken, KeyUser)
}

// CurrentUser returns the locally stored user without contacting the server
func (g *Guard) CurrentUser(ctx context.Context) (string, bool, error) {
	return g.store.Get(ctx, KeyUser)
}
