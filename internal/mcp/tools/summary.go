package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/recruit-dash/internal/dashboard"
	"github.com/honeycarbs/recruit-dash/internal/domain/analysis"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

// SummaryService aggregates the applicant set
type SummaryService interface {
	Summarize(ctx context.Context, g dashboard.TrendGranularity) (analysis.Summary, error)
}

// ApplicantSummaryParams defines the arguments for the applicant_summary tool
type ApplicantSummaryParams struct {
	Trend string `json:"trend,omitempty" jsonschema:"Trend buckets: weekly (default) or monthly"`
}

type applicantSummaryTool struct {
	service SummaryService
	logger  *logging.Logger
}

// WithApplicantSummary registers the applicant_summary tool
func WithApplicantSummary(service SummaryService) Option {
	return func(reg *registry) {
		handler := applicantSummaryTool{service: service, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "applicant_summary",
			Description: "KPIs, breakdowns by position, status, education and weekday, and the application trend over all applicants",
		}, handler.handle)
		reg.names = append(reg.names, "applicant_summary")
	}
}

func (t applicantSummaryTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params ApplicantSummaryParams) (*sdkmcp.CallToolResult, any, error) {
	if t.service == nil {
		return nil, nil, fmt.Errorf("analysis service not configured")
	}

	summary, err := t.service.Summarize(ctx, dashboard.TrendGranularity(strings.ToLower(params.Trend)))
	if err != nil {
		t.logger.Error("applicant_summary: summarize failed", "err", err)
		return nil, nil, fmt.Errorf("summarize applicants: %w", err)
	}

	t.logger.Info("applicant_summary completed",
		"total", summary.Analytics.TotalCount,
		"trend_view", summary.TrendView,
	)

	return textResult(formatSummary(summary)), summary, nil
}

func formatSummary(s analysis.Summary) string {
	a := s.Analytics
	var b strings.Builder
	fmt.Fprintf(&b, "[applicant_summary] %d applicant(s), %d this month, %+.1f%% vs previous 30 days\n",
		a.TotalCount, a.ThisMonthCount, a.TrendPercent)
	fmt.Fprintf(&b, "%d position(s), avg %d per position, %d education level(s)",
		a.UniquePositionCount, a.AvgPerPosition, a.UniqueEducationCount)

	for _, c := range s.Statuses {
		fmt.Fprintf(&b, "\n• %s: %d", c.Label, c.Count)
	}
	return b.String()
}
