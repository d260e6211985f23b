package dashboard

import (
	"sort"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

// FilterOptions lists the choices offered by the status and position pickers
type FilterOptions struct {
	Statuses  []string `json:"statuses"`
	Positions []string `json:"positions"`
}

// OptionsFor collects distinct non-empty statuses and positions, sorted.
// It runs over the unfiltered records so every choice stays reachable.
func OptionsFor(records []domain.Applicant) FilterOptions {
	return FilterOptions{
		Statuses:  distinctSorted(records, FieldStatus),
		Positions: distinctSorted(records, FieldPosition),
	}
}

func distinctSorted(records []domain.Applicant, field Field) []string {
	counts := CountBy(records, field)
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.Label)
	}
	sort.Strings(out)
	return out
}
