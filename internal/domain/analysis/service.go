package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/dashboard"
	"github.com/honeycarbs/recruit-dash/internal/domain"
)

// Lister returns the current applicant set
type Lister interface {
	List(ctx context.Context) (domain.ApplicantSnapshot, error)
}

// Summary is the unfiltered dashboard picture of every applicant
type Summary struct {
	Analytics   dashboard.Analytics    `json:"analytics"`
	Positions   []dashboard.Count      `json:"positions"`
	Statuses    []dashboard.Count      `json:"statuses"`
	Educations  []dashboard.Count      `json:"educations"`
	Weekdays    []dashboard.Count      `json:"weekdays"`
	TrendView   string                 `json:"trendView"`
	Trend       []dashboard.TrendPoint `json:"trend"`
	Source      string                 `json:"source"`
	FetchedAt   time.Time              `json:"fetchedAt"`
	GeneratedAt time.Time              `json:"generatedAt"`
}

// Service computes applicant summaries
type Service struct {
	applicants Lister
	clock      func() time.Time
}

// NewService creates an analysis service
func NewService(applicants Lister) *Service {
	return &Service{applicants: applicants, clock: time.Now}
}

// WithClock returns a copy of s reading time from clock
func (s *Service) WithClock(clock func() time.Time) *Service {
	cp := *s
	cp.clock = clock
	return &cp
}

// Summarize fetches every applicant and aggregates them. An empty
// granularity means weekly.
func (s *Service) Summarize(ctx context.Context, g dashboard.TrendGranularity) (Summary, error) {
	if g == "" {
		g = dashboard.Weekly
	}
	if _, err := dashboard.ParseTrendGranularity(string(g)); err != nil {
		return Summary{}, err
	}

	snap, err := s.applicants.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("analysis: list applicants: %w", err)
	}

	now := s.clock()
	records := snap.Applicants
	return Summary{
		Analytics:   dashboard.ComputeAnalytics(records, now),
		Positions:   nonNil(dashboard.CountBy(records, dashboard.FieldPosition)),
		Statuses:    nonNil(dashboard.CountBy(records, dashboard.FieldStatus)),
		Educations:  nonNil(dashboard.CountBy(records, dashboard.FieldEducation)),
		Weekdays:    dashboard.DayOfWeekCounts(records, now.Location()),
		TrendView:   string(g),
		Trend:       dashboard.TrendSeries(records, g, now.Location()),
		Source:      snap.Source,
		FetchedAt:   snap.FetchedAt,
		GeneratedAt: now,
	}, nil
}

func nonNil(c []dashboard.Count) []dashboard.Count {
	if c == nil {
		return []dashboard.Count{}
	}
	return c
}
