package dashboard

import "time"

// View is everything the presentation layer needs for one frame
type View struct {
	Analytics  Analytics
	Positions  []Count
	Statuses   []Count
	Educations []Count
	Weekdays   []Count
	Trend      []TrendPoint
	TrendView  TrendGranularity
	Page       Page
	Options    FilterOptions
	Filters    FilterStateView
	LastUpdate time.Time
	Loading    bool
	Notice     *Notice
	// Location is the zone dates are bucketed and displayed in
	Location *time.Location
}

// FilterStateView is the filter bar as displayed
type FilterStateView struct {
	TimeRange string
	Status    string
	Position  string
	Search    string
}

// BuildView derives a View from s. Aggregates cover the filtered records,
// filter options cover the raw ones.
func BuildView(s State, now time.Time) View {
	loc := now.Location()

	page, err := Paginate(s.Filtered, s.Page, s.PageSize)
	if err != nil {
		page, _ = Paginate(s.Filtered, 1, max(s.PageSize, 1))
	}

	var notice *Notice
	if s.Notice.Active(now) {
		notice = s.Notice
	}

	return View{
		Analytics:  ComputeAnalytics(s.Filtered, now),
		Positions:  CountBy(s.Filtered, FieldPosition),
		Statuses:   CountBy(s.Filtered, FieldStatus),
		Educations: CountBy(s.Filtered, FieldEducation),
		Weekdays:   DayOfWeekCounts(s.Filtered, loc),
		Trend:      TrendSeries(s.Filtered, s.Trend, loc),
		TrendView:  s.Trend,
		Page:       page,
		Options:    OptionsFor(s.Raw),
		Filters: FilterStateView{
			TimeRange: s.Filters.TimeRange.String(),
			Status:    s.Filters.Status,
			Position:  s.Filters.Position,
			Search:    s.Filters.Search,
		},
		LastUpdate: s.LastUpdate,
		Loading:    s.Loading,
		Notice:     notice,
		Location:   loc,
	}
}
