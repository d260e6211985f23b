package dashboard

import (
	"fmt"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/domain"
)

const (
	DefaultPageSize = 10
	noticeTTL       = 4 * time.Second
)

// NoticeLevel colors a banner
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a dismissible banner; it stops rendering once expired
type Notice struct {
	Level     NoticeLevel
	Message   string
	ExpiresAt time.Time
}

// Active reports whether the notice should still be shown at now
func (n *Notice) Active(now time.Time) bool {
	return n != nil && now.Before(n.ExpiresAt)
}

// State is the whole dashboard. Treat it as a value: Reduce returns a new
// State and never mutates slices it was handed.
type State struct {
	Raw        []domain.Applicant
	Filtered   []domain.Applicant
	Filters    domain.FilterState
	Page       int
	PageSize   int
	Trend      TrendGranularity
	LastUpdate time.Time
	Loading    bool
	Notice     *Notice
}

// NewState returns an empty dashboard on page 1 with the weekly trend view
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		Raw:      []domain.Applicant{},
		Filtered: []domain.Applicant{},
		Page:     1,
		PageSize: pageSize,
		Trend:    Weekly,
	}
}

// TotalPages of the filtered view
func (s State) TotalPages() int {
	return TotalPages(len(s.Filtered), s.PageSize)
}

// ActionKind names a state transition
type ActionKind int

const (
	ActionFetchStarted ActionKind = iota
	ActionRecordsLoaded
	ActionFetchFailed
	ActionSetTimeRange
	ActionSetStatus
	ActionSetPosition
	ActionSetSearch
	ActionClearFilters
	ActionNextPage
	ActionPrevPage
	ActionSetTrend
	ActionNotify
)

func (k ActionKind) String() string {
	switch k {
	case ActionFetchStarted:
		return "fetch_started"
	case ActionRecordsLoaded:
		return "records_loaded"
	case ActionFetchFailed:
		return "fetch_failed"
	case ActionSetTimeRange:
		return "set_time_range"
	case ActionSetStatus:
		return "set_status"
	case ActionSetPosition:
		return "set_position"
	case ActionSetSearch:
		return "set_search"
	case ActionClearFilters:
		return "clear_filters"
	case ActionNextPage:
		return "next_page"
	case ActionPrevPage:
		return "prev_page"
	case ActionSetTrend:
		return "set_trend"
	case ActionNotify:
		return "notify"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is a request to change State. Only the fields relevant to Kind are read.
type Action struct {
	Kind      ActionKind
	Records   []domain.Applicant
	Text      string
	TimeRange domain.TimeRange
	Trend     TrendGranularity
	Level     NoticeLevel
	Err       error
}

func FetchStarted() Action { return Action{Kind: ActionFetchStarted} }

func RecordsLoaded(records []domain.Applicant) Action {
	return Action{Kind: ActionRecordsLoaded, Records: records}
}

func FetchFailed(err error) Action { return Action{Kind: ActionFetchFailed, Err: err} }

func SetTimeRange(r domain.TimeRange) Action {
	return Action{Kind: ActionSetTimeRange, TimeRange: r}
}

func SetStatus(status string) Action { return Action{Kind: ActionSetStatus, Text: status} }

func SetPosition(position string) Action { return Action{Kind: ActionSetPosition, Text: position} }

func SetSearch(text string) Action { return Action{Kind: ActionSetSearch, Text: text} }

func ClearFilters() Action { return Action{Kind: ActionClearFilters} }

func NextPage() Action { return Action{Kind: ActionNextPage} }

func PrevPage() Action { return Action{Kind: ActionPrevPage} }

func SetTrend(g TrendGranularity) Action { return Action{Kind: ActionSetTrend, Trend: g} }

func Notify(level NoticeLevel, msg string) Action {
	return Action{Kind: ActionNotify, Level: level, Text: msg}
}

type transition func(s State, a Action, now time.Time) State

var transitions = map[ActionKind]transition{
	ActionFetchStarted:  fetchStarted,
	ActionRecordsLoaded: recordsLoaded,
	ActionFetchFailed:   fetchFailed,
	ActionSetTimeRange: withFilters(func(f *domain.FilterState, a Action) {
		f.TimeRange = a.TimeRange
	}),
	ActionSetStatus: withFilters(func(f *domain.FilterState, a Action) {
		f.Status = a.Text
	}),
	ActionSetPosition: withFilters(func(f *domain.FilterState, a Action) {
		f.Position = a.Text
	}),
	ActionSetSearch: withFilters(func(f *domain.FilterState, a Action) {
		f.Search = a.Text
	}),
	ActionClearFilters: withFilters(func(f *domain.FilterState, _ Action) {
		*f = domain.FilterState{}
	}),
	ActionNextPage: nextPage,
	ActionPrevPage: prevPage,
	ActionSetTrend: setTrend,
	ActionNotify:   notify,
}

// Reduce is the single entry point for state changes. Filtered is
// recomputed whenever Raw or Filters change; unknown actions are ignored.
func Reduce(s State, a Action, now time.Time) State {
	t, ok := transitions[a.Kind]
	if !ok {
		return s
	}
	return t(s, a, now)
}

func fetchStarted(s State, _ Action, _ time.Time) State {
	s.Loading = true
	return s
}

func recordsLoaded(s State, a Action, now time.Time) State {
	raw := a.Records
	if raw == nil {
		raw = []domain.Applicant{}
	}
	s.Raw = raw
	s.Filtered = ApplyFilters(raw, s.Filters, now)
	s.Page = 1
	s.Loading = false
	s.LastUpdate = now
	s.Notice = newNotice(NoticeSuccess, fmt.Sprintf("Dashboard updated with %d records", len(raw)), now)
	return s
}

func fetchFailed(s State, a Action, now time.Time) State {
	s.Loading = false
	msg := "Failed to load dashboard data"
	if a.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, a.Err)
	}
	s.Notice = newNotice(NoticeError, msg, now)
	return s
}

func withFilters(update func(*domain.FilterState, Action)) transition {
	return func(s State, a Action, now time.Time) State {
		update(&s.Filters, a)
		s.Filtered = ApplyFilters(s.Raw, s.Filters, now)
		s.Page = 1
		return s
	}
}

func nextPage(s State, _ Action, _ time.Time) State {
	if s.Page < s.TotalPages() {
		s.Page++
	}
	return s
}

func prevPage(s State, _ Action, _ time.Time) State {
	if s.Page > 1 {
		s.Page--
	}
	return s
}

func setTrend(s State, a Action, _ time.Time) State {
	if a.Trend == Weekly || a.Trend == Monthly {
		s.Trend = a.Trend
	}
	return s
}

func notify(s State, a Action, now time.Time) State {
	s.Notice = newNotice(a.Level, a.Text, now)
	return s
}

func newNotice(level NoticeLevel, msg string, now time.Time) *Notice {
	return &Notice{Level: level, Message: msg, ExpiresAt: now.Add(noticeTTL)}
}
