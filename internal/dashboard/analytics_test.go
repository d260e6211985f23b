package dashboard

import (
	"reflect"
	"testing"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

func TestComputeAnalyticsEmpty(t *testing.T) {
	got := ComputeAnalytics(nil, filterNow)
	if got != (Analytics{}) {
		t.Fatalf("expected all-zero analytics, got %+v", got)
	}
}

func TestComputeAnalyticsThisMonth(t *testing.T) {
	now := time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)
	dates := []string{
		"2025-03-01T00:00:00Z",
		"2025-03-05",
		"2025-03-20T09:00:00Z",
		"2025-02-28T23:59:59Z",
		"2025-02-10",
		"2025-01-15",
		"2024-12-31",
		"2024-11-02",
		"2024-03-10",
		"bogus",
	}
	records := make([]domain.Applicant, 0, len(dates))
	for _, d := range dates {
		records = append(records, domain.Applicant{CreatedAt: d})
	}

	got := ComputeAnalytics(records, now)
	if got.TotalCount != 10 {
		t.Fatalf("total = %d, want 10", got.TotalCount)
	}
	if got.ThisMonthCount != 3 {
		t.Fatalf("thisMonth = %d, want 3", got.ThisMonthCount)
	}
}

func TestComputeAnalyticsUniqueAndAverage(t *testing.T) {
	records := []domain.Applicant{
		{Position: "Nurse", Education: "Bachelor"},
		{Position: "Nurse", Education: "Master"},
		{Position: "Driver", Education: "Bachelor"},
		{Position: "Driver"},
		{},
	}

	got := ComputeAnalytics(records, filterNow)
	if got.UniquePositionCount != 2 {
		t.Fatalf("unique positions = %d, want 2", got.UniquePositionCount)
	}
	if got.UniqueEducationCount != 2 {
		t.Fatalf("unique educations = %d, want 2", got.UniqueEducationCount)
	}
	// 5 records over 2 positions rounds 2.5 up
	if got.AvgPerPosition != 3 {
		t.Fatalf("avg per position = %d, want 3", got.AvgPerPosition)
	}
}

func TestComputeAnalyticsNoPositions(t *testing.T) {
	got := ComputeAnalytics([]domain.Applicant{{FullName: "x"}}, filterNow)
	if got.AvgPerPosition != 0 || got.UniquePositionCount != 0 {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestComputeAnalyticsTrendPercent(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		dates []string
		want  float64
	}{
		{
			name:  "growth",
			dates: []string{"2025-03-05", "2025-03-10", "2025-03-20", "2025-02-10", "2025-02-20"},
			want:  50,
		},
		{
			name:  "decline",
			dates: []string{"2025-03-05", "2025-02-10", "2025-02-20", "2025-02-25"},
			want:  -66.7,
		},
		{
			name:  "no previous window",
			dates: []string{"2025-03-05", "2025-03-06"},
			want:  0,
		},
		{
			name:  "outside both windows",
			dates: []string{"2024-10-01", "2025-04-02T00:00:00Z"},
			want:  0,
		},
	}

	for _, tc := range cases {
		var records []domain.Applicant
		for _, d := range tc.dates {
			records = append(records, domain.Applicant{CreatedAt: d})
		}
		got := ComputeAnalytics(records, now)
		if got.TrendPercent != tc.want {
			t.Fatalf("%s: trend = %v, want %v", tc.name, got.TrendPercent, tc.want)
		}
	}
}

func TestCountByFirstAppearanceOrder(t *testing.T) {
	records := []domain.Applicant{
		{Status: "pending"},
		{Status: "hired"},
		{Status: ""},
		{Status: "pending"},
		{Status: "rejected"},
		{Status: "hired"},
		{Status: "pending"},
	}

	got := CountBy(records, FieldStatus)
	want := []Count{{"pending", 3}, {"hired", 2}, {"rejected", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCountByEmpty(t *testing.T) {
	if got := CountBy(nil, FieldEducation); len(got) != 0 {
		t.Fatalf("expected no counts, got %+v", got)
	}
}

func TestDayOfWeekCounts(t *testing.T) {
	records := []domain.Applicant{
		{CreatedAt: "2025-01-06"}, // Monday
		{CreatedAt: "2025-01-13"}, // Monday
		{CreatedAt: "2025-01-08"}, // Wednesday
		{CreatedAt: "2025-01-12"}, // Sunday
		{CreatedAt: "nope"},
	}

	got := DayOfWeekCounts(records, time.UTC)
	if len(got) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(got))
	}
	if got[0].Label != "Monday" || got[6].Label != "Sunday" {
		t.Fatalf("unexpected ordering %+v", got)
	}

	want := []int{2, 0, 1, 0, 0, 0, 1}
	for i, c := range got {
		if c.Count != want[i] {
			t.Fatalf("%s = %d, want %d", c.Label, c.Count, want[i])
		}
	}
}

func TestOptionsForSortedDistinct(t *testing.T) {
	records := []domain.Applicant{
		{Status: "pending", Position: "Nurse"},
		{Status: "hired", Position: "Driver"},
		{Status: "pending", Position: ""},
	}

	got := OptionsFor(records)
	if !reflect.DeepEqual(got.Statuses, []string{"hired", "pending"}) {
		t.Fatalf("statuses = %v", got.Statuses)
	}
	if !reflect.DeepEqual(got.Positions, []string{"Driver", "Nurse"}) {
		t.Fatalf("positions = %v", got.Positions)
	}
}
