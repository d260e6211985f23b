package dashboard

import (
	"math"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

const trendWindowDays = 30

// Analytics are the KPI figures of a record set
type Analytics struct {
	TotalCount           int     `json:"totalCount"`
	UniquePositionCount  int     `json:"uniquePositionCount"`
	UniqueEducationCount int     `json:"uniqueEducationCount"`
	ThisMonthCount       int     `json:"thisMonthCount"`
	AvgPerPosition       int     `json:"avgPerPosition"`
	TrendPercent         float64 `json:"trendPercent"`
}

// ComputeAnalytics summarizes records relative to now. The 30/60 day trend
// window is fixed and independent of any filter applied to records.
func ComputeAnalytics(records []domain.Applicant, now time.Time) Analytics {
	loc := now.Location()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	recentStart := now.AddDate(0, 0, -trendWindowDays)
	previousStart := now.AddDate(0, 0, -2*trendWindowDays)

	positions := make(map[string]struct{})
	educations := make(map[string]struct{})

	var a Analytics
	var recent, previous int

	for _, r := range records {
		a.TotalCount++
		if r.Position != "" {
			positions[r.Position] = struct{}{}
		}
		if r.Education != "" {
			educations[r.Education] = struct{}{}
		}

		t, ok := ParseDate(r.CreatedAt, loc)
		if !ok {
			continue
		}
		if !t.Before(monthStart) {
			a.ThisMonthCount++
		}
		switch {
		case !t.Before(recentStart) && t.Before(now):
			recent++
		case !t.Before(previousStart) && t.Before(recentStart):
			previous++
		}
	}

	a.UniquePositionCount = len(positions)
	a.UniqueEducationCount = len(educations)

	if a.UniquePositionCount > 0 {
		a.AvgPerPosition = int(math.Round(float64(a.TotalCount) / float64(a.UniquePositionCount)))
	}

	if previous > 0 {
		a.TrendPercent = round1(float64(recent-previous) / float64(previous) * 100)
	}

	return a
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
