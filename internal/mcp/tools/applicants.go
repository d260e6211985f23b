package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/recruit-dash/internal/domain"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

// ApplicantLister returns the full applicant set
type ApplicantLister interface {
	List(ctx context.Context) (domain.ApplicantSnapshot, error)
}

// FetchApplicantsParams defines the arguments for the fetch_applicants tool
type FetchApplicantsParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"Return at most this many records, newest first. 0 returns all"`
}

// FetchApplicantsResult is the structured response of fetch_applicants
type FetchApplicantsResult struct {
	Applicants []domain.Applicant `json:"applicants"`
	Total      int                `json:"total"`
	Source     string             `json:"source"`
	FetchedAt  time.Time          `json:"fetched_at"`
}

type fetchApplicantsTool struct {
	applicants ApplicantLister
	logger     *logging.Logger
}

// WithFetchApplicants registers the fetch_applicants tool
func WithFetchApplicants(applicants ApplicantLister) Option {
	return func(reg *registry) {
		handler := fetchApplicantsTool{applicants: applicants, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "fetch_applicants",
			Description: "Fetch normalized applicant records from the applicant tracking app, newest first",
		}, handler.handle)
		reg.names = append(reg.names, "fetch_applicants")
	}
}

func (t fetchApplicantsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params FetchApplicantsParams) (*sdkmcp.CallToolResult, any, error) {
	if t.applicants == nil {
		return nil, nil, fmt.Errorf("applicant service not configured")
	}
	if params.Limit < 0 {
		return nil, nil, fmt.Errorf("limit must not be negative")
	}

	snap, err := t.applicants.List(ctx)
	if err != nil {
		t.logger.Error("fetch_applicants: list failed", "err", err)
		return nil, nil, fmt.Errorf("fetch applicants: %w", err)
	}

	records := snap.Applicants
	if params.Limit > 0 && params.Limit < len(records) {
		records = records[:params.Limit]
	}

	result := FetchApplicantsResult{
		Applicants: records,
		Total:      len(snap.Applicants),
		Source:     snap.Source,
		FetchedAt:  snap.FetchedAt,
	}

	t.logger.Info("fetch_applicants completed", "returned", len(records), "total", result.Total)

	msg := fmt.Sprintf("[fetch_applicants] Returned %d of %d applicant(s)", len(records), result.Total)
	return textResult(msg), result, nil
}
