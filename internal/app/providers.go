package app

import (
	"net/http"

	"github.com/honeycarbs/recruit-dash/internal/auth"
	"github.com/honeycarbs/recruit-dash/internal/config"
	"github.com/honeycarbs/recruit-dash/internal/domain/applicant"
	kintoneProvider "github.com/honeycarbs/recruit-dash/internal/domain/applicant/providers/kintone"
	"github.com/honeycarbs/recruit-dash/internal/mcp"
	"github.com/honeycarbs/recruit-dash/internal/server"
	"github.com/honeycarbs/recruit-dash/pkg/kintone"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

// provideKintoneConfig extracts Kintone config from main config
func provideKintoneConfig(cfg config.Config) kintone.Config {
	return kintone.Config{
		Domain:     cfg.Kintone.Domain,
		AppID:      cfg.Kintone.AppID,
		APIToken:   cfg.Kintone.APIToken,
		MaxRecords: cfg.Kintone.MaxRecords,
	}
}

func provideKintoneProvider(client *kintone.Client) (applicant.Provider, error) {
	return kintoneProvider.NewProvider(client)
}

func provideServerConfig(cfg config.Config) server.Config {
	return server.Config{Host: cfg.Host, Port: cfg.Port}
}

func provideIssuer(cfg config.Config) (*auth.Issuer, error) {
	return auth.NewIssuer(cfg.Auth.JWTSecret, auth.WithTTL(cfg.Auth.TokenTTL))
}

func provideCredentials(cfg config.Config) (auth.Credentials, error) {
	keys, err := auth.ParseUserMapping(cfg.Auth.Users)
	if err != nil {
		return nil, err
	}
	return auth.NewEnvCredentials(keys), nil
}

func provideAuthService(creds auth.Credentials, issuer *auth.Issuer, logger *logging.Logger) *auth.Service {
	return auth.NewService(creds, issuer, logger)
}

func provideMCPHandler(s *mcp.Server) http.Handler {
	return s.Handler()
}
