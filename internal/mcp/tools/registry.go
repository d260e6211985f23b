package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	logger *logging.Logger
	names  []string
}

// WithLogger sets the logger handed to every tool registered after it
func WithLogger(l *logging.Logger) Option {
	return func(reg *registry) {
		if l != nil {
			reg.logger = l
		}
	}
}

// Register applies the provided tool options and returns the names of the
// tools it installed
func Register(server *sdkmcp.Server, opts ...Option) []string {
	reg := &registry{server: server, logger: logging.Nop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}

	reg.logger.Info("mcp tools registered", "tools", reg.names)
	return reg.names
}
