package applicant

import (
	"context"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

// Provider represents an external applicant-tracking system (Kintone, fixtures, etc.)
type Provider interface {
	Name() string

	// Fetch returns every applicant, normalized, in upstream order
	Fetch(ctx context.Context) ([]domain.Applicant, error)
}
