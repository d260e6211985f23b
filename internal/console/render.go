package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/dashboard"
	"github.com/honeycarbs/recruit-dash/internal/report"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
	clearScreen = "\x1b[H\x1b[2J"

	barWidth = 30
	na       = "N/A"
)

var statusColors = map[string]string{
	"pending":              ansiYellow,
	"reviewing":            ansiBlue,
	"interviewed":          ansiMagenta,
	"hired":                ansiGreen,
	"rejected":             ansiRed,
	"application received": ansiBlue,
	"screening":            ansiCyan,
	"interview scheduled":  ansiMagenta,
	"offer extended":       ansiGreen,
}

var noticeColors = map[dashboard.NoticeLevel]string{
	dashboard.NoticeSuccess: ansiGreen,
	dashboard.NoticeWarning: ansiYellow,
	dashboard.NoticeError:   ansiRed,
}

// Renderer draws a dashboard.View as plain text
type Renderer struct {
	out   io.Writer
	color bool
	clear bool
}

// NewRenderer writes to out; color enables ANSI colors and screen clearing
func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color, clear: color}
}

func (r *Renderer) paint(code, s string) string {
	if !r.color || code == "" {
		return s
	}
	return code + s + ansiReset
}

// Render draws one frame
func (r *Renderer) Render(v dashboard.View, user string) error {
	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}

	r.header(&b, v, user)
	r.notice(&b, v.Notice)
	r.kpis(&b, v.Analytics)
	r.filters(&b, v)
	r.breakdown(&b, "Applications by position", v.Positions)
	r.breakdown(&b, "Status distribution", v.Statuses)
	r.breakdown(&b, "Education levels", v.Educations)
	r.breakdown(&b, "Applications by day of week", v.Weekdays)
	r.trend(&b, v)
	r.table(&b, v.Page, v.Location)

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Renderer) header(b *strings.Builder, v dashboard.View, user string) {
	b.WriteString(r.paint(ansiBold, "Recruitment Dashboard"))
	if user != "" {
		fmt.Fprintf(b, "  (%s)", user)
	}
	b.WriteByte('\n')

	switch {
	case v.Loading:
		b.WriteString("Loading...\n")
	case v.LastUpdate.IsZero():
		b.WriteString("Last updated: never\n")
	default:
		fmt.Fprintf(b, "Last updated: %s\n", v.LastUpdate.Format(time.Kitchen))
	}
}

func (r *Renderer) notice(b *strings.Builder, n *dashboard.Notice) {
	if n == nil {
		return
	}
	fmt.Fprintf(b, "%s\n", r.paint(noticeColors[n.Level], "["+string(n.Level)+"] "+n.Message))
}

func (r *Renderer) kpis(b *strings.Builder, a dashboard.Analytics) {
	trend := fmt.Sprintf("%+.1f%%", a.TrendPercent)
	switch {
	case a.TrendPercent > 0:
		trend = r.paint(ansiGreen, trend)
	case a.TrendPercent < 0:
		trend = r.paint(ansiRed, trend)
	}

	fmt.Fprintf(b, "\nTotal applicants: %d (%s vs previous 30 days)\n", a.TotalCount, trend)
	fmt.Fprintf(b, "Open positions:   %d (avg %d per position)\n", a.UniquePositionCount, a.AvgPerPosition)
	fmt.Fprintf(b, "Education levels: %d\n", a.UniqueEducationCount)
	fmt.Fprintf(b, "This month:       %d\n", a.ThisMonthCount)
}

func (r *Renderer) filters(b *strings.Builder, v dashboard.View) {
	f := v.Filters
	fmt.Fprintf(b, "\nFilters: range=%s status=%s position=%s search=%q\n",
		f.TimeRange, orAll(f.Status), orAll(f.Position), f.Search)
	if len(v.Options.Statuses) > 0 {
		fmt.Fprintf(b, "  statuses: %s\n", strings.Join(v.Options.Statuses, ", "))
	}
	if len(v.Options.Positions) > 0 {
		fmt.Fprintf(b, "  positions: %s\n", strings.Join(v.Options.Positions, ", "))
	}
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

func (r *Renderer) breakdown(b *strings.Builder, title string, counts []dashboard.Count) {
	fmt.Fprintf(b, "\n%s\n", r.paint(ansiBold, title))
	if len(counts) == 0 {
		b.WriteString("  (no data)\n")
		return
	}

	peak := 0
	for _, c := range counts {
		peak = max(peak, c.Count)
	}

	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", c.Label, c.Count, bar(c.Count, peak))
	}
	_ = tw.Flush()
}

func bar(n, peak int) string {
	if peak == 0 || n == 0 {
		return ""
	}
	return strings.Repeat("#", max(1, n*barWidth/peak))
}

func (r *Renderer) trend(b *strings.Builder, v dashboard.View) {
	counts := make([]dashboard.Count, 0, len(v.Trend))
	for _, p := range v.Trend {
		counts = append(counts, dashboard.Count{Label: p.Label, Count: p.Count})
	}
	r.breakdown(b, fmt.Sprintf("Applications over time (%s)", v.TrendView), counts)
}

func (r *Renderer) table(b *strings.Builder, p dashboard.Page, loc *time.Location) {
	fmt.Fprintf(b, "\n%s\n", r.paint(ansiBold, "Applicants"))

	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tPOSITION\tEDUCATION\tAPPLIED\tCONTACT\tSTATUS")
	for _, a := range p.Items {
		// status stays last so its color codes do not skew column widths
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			orNA(a.FullName),
			orNA(a.Position),
			orNA(a.Education),
			orNA(report.AppliedDate(a.CreatedAt, loc)),
			contact(a.Phone, a.Email),
			r.paint(statusColors[strings.ToLower(a.Status)], orNA(a.Status)),
		)
	}
	_ = tw.Flush()

	fmt.Fprintf(b, "Showing %d to %d of %d applicants  |  Page %d of %d",
		p.Range.From, p.Range.To, p.Range.Total, p.Number, p.TotalPages)
	var nav []string
	if p.HasPrev {
		nav = append(nav, "prev")
	}
	if p.HasNext {
		nav = append(nav, "next")
	}
	if len(nav) > 0 {
		fmt.Fprintf(b, "  [%s]", strings.Join(nav, " | "))
	}
	b.WriteString("\n")
}

func contact(phone, email string) string {
	if r := []rune(email); len(r) > 25 {
		email = string(r[:25]) + "..."
	}
	parts := make([]string, 0, 2)
	if phone != "" {
		parts = append(parts, phone)
	}
	if email != "" {
		parts = append(parts, email)
	}
	return strings.Join(parts, " ")
}

func orNA(s string) string {
	if s == "" {
		return na
	}
	return s
}

// Help lists commands
func (r *Renderer) Help(commands []Command) {
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nCommands:")
	for _, c := range commands {
		usage := c.Usage
		if usage == "" {
			usage = c.Name
		}
		fmt.Fprintf(tw, "  %s\t%s\n", usage, c.Help)
	}
	_ = tw.Flush()
}

// Prompt prints the input prompt
func (r *Renderer) Prompt() {
	_, _ = io.WriteString(r.out, "\n> ")
}
