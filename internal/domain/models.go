package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Applicant is the normalized view of one job application.
// Every field defaults to "" when the upstream record lacks it.
type Applicant struct {
	FullName  string `json:"fullName"`
	Position  string `json:"position"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Education string `json:"education"`
}

// TimeRange restricts records to the last N days; AllTime disables it
type TimeRange int

const AllTime TimeRange = 0

// ParseTimeRange accepts "all" or a positive number of days
func ParseTimeRange(s string) (TimeRange, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllTime, nil
	}

	days, err := strconv.Atoi(s)
	if err != nil || days <= 0 {
		return AllTime, fmt.Errorf("invalid time range %q: want \"all\" or a positive number of days", s)
	}
	return TimeRange(days), nil
}

func (r TimeRange) Days() int {
	return int(r)
}

func (r TimeRange) String() string {
	if r <= AllTime {
		return "all"
	}
	return strconv.Itoa(int(r))
}

// FilterState holds the user-chosen constraints. Zero values match everything.
type FilterState struct {
	TimeRange TimeRange
	Status    string
	Position  string
	Search    string
}

// IsEmpty reports whether no constraint is active
func (f FilterState) IsEmpty() bool {
	return f.TimeRange <= AllTime && f.Status == "" && f.Position == "" && f.Search == ""
}

// ApplicantSnapshot is one successful fetch of the full applicant set
type ApplicantSnapshot struct {
	Applicants []Applicant
	FetchedAt  time.Time
	Source     string
}
