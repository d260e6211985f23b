package mcp

import (
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/recruit-dash/internal/mcp/tools"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

const (
	StreamPath = "/mcp/stream"

	serverName    = "recruit-dash"
	serverVersion = "0.1.0"
)

// Server exposes applicant tools over the MCP streamable HTTP transport
type Server struct {
	sdk     *sdkmcp.Server
	handler http.Handler
	tools   []string
}

// NewServer constructs the MCP server with the applicant tools registered
func NewServer(log *logging.Logger, applicants tools.ApplicantLister, summaries tools.SummaryService) *Server {
	impl := &sdkmcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}

	mcpServer := sdkmcp.NewServer(impl, nil)

	registered := tools.Register(mcpServer,
		tools.WithLogger(log.Named("mcp")),
		tools.WithFetchApplicants(applicants),
		tools.WithApplicantSummary(summaries),
	)

	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	return &Server{
		sdk:     mcpServer,
		handler: handler,
		tools:   registered,
	}
}

// Handler serves the streamable HTTP transport; mount it at StreamPath
func (s *Server) Handler() http.Handler {
	return s.handler
}

// SDK returns the underlying server, used to connect in-process transports
func (s *Server) SDK() *sdkmcp.Server {
	return s.sdk
}

// Tools lists registered tool names
func (s *Server) Tools() []string {
	return s.tools
}
