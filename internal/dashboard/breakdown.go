package dashboard

import (
	"time"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

// Field selects the categorical attribute a breakdown groups by
type Field int

const (
	FieldPosition Field = iota
	FieldStatus
	FieldEducation
)

func (f Field) value(r domain.Applicant) string {
	switch f {
	case FieldStatus:
		return r.Status
	case FieldEducation:
		return r.Education
	default:
		return r.Position
	}
}

// Count is one labelled bar or slice of a chart
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountBy counts non-empty values of field in order of first appearance
func CountBy(records []domain.Applicant, field Field) []Count {
	index := make(map[string]int)
	var out []Count

	for _, r := range records {
		v := field.value(r)
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, Count{Label: v, Count: 1})
	}

	return out
}

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// DayOfWeekCounts returns Monday through Sunday, always seven entries.
// Records whose date cannot be parsed are skipped.
func DayOfWeekCounts(records []domain.Applicant, loc *time.Location) []Count {
	var counts [7]int
	for _, r := range records {
		t, ok := ParseDate(r.CreatedAt, loc)
		if !ok {
			continue
		}
		counts[t.Weekday()]++
	}

	out := make([]Count, 0, len(weekOrder))
	for _, d := range weekOrder {
		out = append(out, Count{Label: d.String(), Count: counts[d]})
	}
	return out
}
