package kintone

import (
	"context"
	"fmt"

	"github.com/honeycarbs/recruit-dash/internal/domain"
	applicantdomain "github.com/honeycarbs/recruit-dash/internal/domain/applicant"
	"github.com/honeycarbs/recruit-dash/pkg/kintone"
)

// Field codes of the recruitment app
const (
	fieldFullName  = "Full_Name"
	fieldPosition  = "Position"
	fieldStatus    = "Status"
	fieldCreatedAt = "Created_datetime"
	fieldEmail     = "Email"
	fieldPhone     = "Phone"
	fieldEducation = "Education"
)

// recordsClient describes the subset of the Kintone client used by the provider.
type recordsClient interface {
	FetchRecords(ctx context.Context) ([]kintone.Record, error)
}

// Provider implements applicant.Provider using the Kintone REST API
type Provider struct {
	client recordsClient
}

// NewProvider builds a Kintone provider
func NewProvider(client recordsClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("kintone provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "kintone"
}

// Fetch queries Kintone and returns normalized applicants
func (p *Provider) Fetch(ctx context.Context) ([]domain.Applicant, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("kintone provider: client is nil")
	}

	records, err := p.client.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Applicant, 0, len(records))
	for _, r := range records {
		out = append(out, Normalize(r))
	}

	return out, nil
}

// Normalize flattens a raw record; absent or non-text fields become ""
func Normalize(r kintone.Record) domain.Applicant {
	return domain.Applicant{
		FullName:  r.String(fieldFullName),
		Position:  r.String(fieldPosition),
		Status:    r.String(fieldStatus),
		CreatedAt: r.String(fieldCreatedAt),
		Email:     r.String(fieldEmail),
		Phone:     r.String(fieldPhone),
		Education: r.String(fieldEducation),
	}
}

var _ applicantdomain.Provider = (*Provider)(nil)
