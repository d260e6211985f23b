//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/honeycarbs/recruit-dash/internal/auth"
	"github.com/honeycarbs/recruit-dash/internal/config"
	"github.com/honeycarbs/recruit-dash/internal/domain/analysis"
	"github.com/honeycarbs/recruit-dash/internal/domain/applicant"
	"github.com/honeycarbs/recruit-dash/internal/mcp"
	"github.com/honeycarbs/recruit-dash/internal/mcp/tools"
	"github.com/honeycarbs/recruit-dash/internal/server"
	"github.com/honeycarbs/recruit-dash/pkg/kintone"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

// InitializeServer builds the functions server with every dependency wired up
func InitializeServer(cfg config.Config, logger *logging.Logger) (*server.Server, error) {
	wire.Build(
		// Infrastructure - Kintone
		provideKintoneConfig,
		kintone.NewClient,

		// Providers
		provideKintoneProvider,

		// Services
		applicant.NewServiceWithDeps,
		wire.Bind(new(server.ApplicantService), new(applicant.Service)),
		wire.Bind(new(tools.ApplicantLister), new(applicant.Service)),
		wire.Bind(new(analysis.Lister), new(applicant.Service)),
		analysis.NewService,
		wire.Bind(new(tools.SummaryService), new(*analysis.Service)),

		// Auth
		provideIssuer,
		provideCredentials,
		provideAuthService,
		wire.Bind(new(server.AuthService), new(*auth.Service)),

		// MCP
		mcp.NewServer,
		provideMCPHandler,

		provideServerConfig,
		server.New,
	)

	return &server.Server{}, nil
}
