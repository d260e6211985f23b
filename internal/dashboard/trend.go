package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

// TrendGranularity selects weekly or monthly trend buckets
type TrendGranularity string

const (
	Weekly  TrendGranularity = "weekly"
	Monthly TrendGranularity = "monthly"

	maxTrendBuckets = 12
)

// ParseTrendGranularity accepts "weekly" or "monthly"
func ParseTrendGranularity(s string) (TrendGranularity, error) {
	switch g := TrendGranularity(s); g {
	case Weekly, Monthly:
		return g, nil
	default:
		return "", fmt.Errorf("invalid trend view %q: want weekly or monthly", s)
	}
}

// BucketKey identifies a trend bucket. Weekly keys carry the Sunday that
// starts the week; monthly keys leave Day at zero.
type BucketKey struct {
	Year  int
	Month time.Month
	Day   int
}

// Before orders keys chronologically
func (k BucketKey) Before(o BucketKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	if k.Month != o.Month {
		return k.Month < o.Month
	}
	return k.Day < o.Day
}

// Label formats the key for display; it is never parsed back
func (k BucketKey) Label() string {
	if k.Day == 0 {
		return fmt.Sprintf("%s %d", k.Month.String()[:3], k.Year)
	}
	return fmt.Sprintf("%s %d", k.Month.String()[:3], k.Day)
}

func bucketOf(t time.Time, g TrendGranularity) BucketKey {
	if g == Monthly {
		return BucketKey{Year: t.Year(), Month: t.Month()}
	}
	start := time.Date(t.Year(), t.Month(), t.Day()-int(t.Weekday()), 0, 0, 0, 0, t.Location())
	return BucketKey{Year: start.Year(), Month: start.Month(), Day: start.Day()}
}

// TrendPoint is one bucket of the applications-over-time series
type TrendPoint struct {
	Key   BucketKey `json:"-"`
	Label string    `json:"label"`
	Count int       `json:"count"`
}

// TrendSeries groups records into buckets, sorts them chronologically and
// keeps the latest 12. Records with unparsable dates are skipped.
func TrendSeries(records []domain.Applicant, g TrendGranularity, loc *time.Location) []TrendPoint {
	counts := make(map[BucketKey]int)
	for _, r := range records {
		t, ok := ParseDate(r.CreatedAt, loc)
		if !ok {
			continue
		}
		counts[bucketOf(t, g)]++
	}

	keys := make([]BucketKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	if len(keys) > maxTrendBuckets {
		keys = keys[len(keys)-maxTrendBuckets:]
	}

	out := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, TrendPoint{Key: k, Label: k.Label(), Count: counts[k]})
	}
	return out
}
