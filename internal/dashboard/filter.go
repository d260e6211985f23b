package dashboard

import (
	"strings"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

// ApplyFilters returns the records satisfying every active constraint of f,
// in input order. Predicates run time, status, position, then search, and
// stop at the first failure.
func ApplyFilters(records []domain.Applicant, f domain.FilterState, now time.Time) []domain.Applicant {
	m := newMatcher(f, now)

	out := make([]domain.Applicant, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

type matcher struct {
	cutoff    time.Time
	timed     bool
	loc       *time.Location
	status    string
	position  string
	search    string
	searching bool
}

func newMatcher(f domain.FilterState, now time.Time) matcher {
	m := matcher{
		loc:      now.Location(),
		status:   f.Status,
		position: f.Position,
	}
	if f.TimeRange > domain.AllTime {
		m.timed = true
		m.cutoff = now.AddDate(0, 0, -f.TimeRange.Days())
	}
	if f.Search != "" {
		m.searching = true
		m.search = strings.ToLower(f.Search)
	}
	return m
}

func (m matcher) match(r domain.Applicant) bool {
	if m.timed {
		t, ok := ParseDate(r.CreatedAt, m.loc)
		if !ok || t.Before(m.cutoff) {
			return false
		}
	}

	if m.status != "" && r.Status != m.status {
		return false
	}

	if m.position != "" && r.Position != m.position {
		return false
	}

	if m.searching {
		return containsFold(r.FullName, m.search) ||
			containsFold(r.Position, m.search) ||
			containsFold(r.Email, m.search) ||
			containsFold(r.Education, m.search)
	}

	return true
}

// containsFold expects needle already lower-cased
func containsFold(haystack, needle string) bool {
	return haystack != "" && strings.Contains(strings.ToLower(haystack), needle)
}
