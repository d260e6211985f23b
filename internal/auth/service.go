package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

// Login is a successful password login
type Login struct {
	Token string
	User  string
}

// Session is what a valid token asserts
type Session struct {
	User      string
	LoginTime int64
}

// Service implements password login and token verification
type Service struct {
	creds  Credentials
	issuer *Issuer
	logger *logging.Logger
}

func NewService(creds Credentials, issuer *Issuer, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{creds: creds, issuer: issuer, logger: logger.Named("auth")}
}

// Login compares password with the stored one after trimming surrounding
// whitespace from both
func (s *Service) Login(_ context.Context, userID, password string) (Login, error) {
	if userID == "" || password == "" {
		return Login{}, ErrMissingCredentials
	}

	expected, ok := s.creds.Password(userID)
	if !ok || expected == "" || !passwordsMatch(expected, password) {
		s.logger.Info("login rejected", "user", userID)
		return Login{}, ErrInvalidCredentials
	}

	token, _, err := s.issuer.Issue(userID)
	if err != nil {
		return Login{}, err
	}

	s.logger.Info("login succeeded", "user", userID)
	return Login{Token: token, User: userID}, nil
}

func (s *Service) Verify(_ context.Context, token string) (Session, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		s.logger.Debug("token rejected", "err", err)
		return Session{}, err
	}
	return Session{User: claims.UserID, LoginTime: claims.LoginTime}, nil
}

func passwordsMatch(expected, given string) bool {
	a := []byte(strings.TrimSpace(expected))
	b := []byte(strings.TrimSpace(given))
	return subtle.ConstantTimeCompare(a, b) == 1
}
