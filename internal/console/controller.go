package console

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/dashboard"
	"github.com/honeycarbs/recruit-dash/internal/domain"
	"github.com/honeycarbs/recruit-dash/internal/report"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

const (
	DefaultRefreshInterval = 5 * time.Minute
	DefaultStaleAfter      = 10 * time.Minute
)

// Fetcher loads the full applicant set
type Fetcher interface {
	FetchApplicants(ctx context.Context) ([]domain.Applicant, error)
}

// Exporter writes reports of the filtered view
type Exporter interface {
	ExportCSV(ctx context.Context, records []domain.Applicant) (report.Result, error)
	ExportSheet(ctx context.Context, spreadsheetID, tab string, records []domain.Applicant) (int, error)
}

// Session is the part of the session guard the console needs
type Session interface {
	Logout(ctx context.Context) error
}

// Controller owns the dashboard state. Run is the only goroutine that
// touches it; workers report back through the actions channel.
type Controller struct {
	fetcher  Fetcher
	exporter Exporter
	session  Session
	renderer *Renderer
	router   *Router
	logger   *logging.Logger
	clock    func() time.Time

	refreshEvery time.Duration
	staleAfter   time.Duration
	tick         <-chan time.Time
	user         string

	ctx      context.Context
	state    dashboard.State
	inFlight bool
	showHelp bool
	actions  chan dashboard.Action
}

type Option func(*Controller)

func WithExporter(e Exporter) Option {
	return func(c *Controller) {
		c.exporter = e
	}
}

func WithSession(s Session, user string) Option {
	return func(c *Controller) {
		c.session = s
		c.user = user
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

func WithPageSize(n int) Option {
	return func(c *Controller) {
		c.state = dashboard.NewState(n)
	}
}

// WithRefresh sets the auto-refresh period and the age after which a
// resumed terminal triggers a refresh
func WithRefresh(every, staleAfter time.Duration) Option {
	return func(c *Controller) {
		if every > 0 {
			c.refreshEvery = every
		}
		if staleAfter > 0 {
			c.staleAfter = staleAfter
		}
	}
}

// WithTick replaces the refresh ticker, mainly for tests
func WithTick(tick <-chan time.Time) Option {
	return func(c *Controller) {
		c.tick = tick
	}
}

func NewController(fetcher Fetcher, renderer *Renderer, opts ...Option) *Controller {
	c := &Controller{
		fetcher:      fetcher,
		renderer:     renderer,
		router:       DefaultRouter(),
		logger:       logging.Nop(),
		clock:        time.Now,
		refreshEvery: DefaultRefreshInterval,
		staleAfter:   DefaultStaleAfter,
		ctx:          context.Background(),
		state:        dashboard.NewState(dashboard.DefaultPageSize),
		actions:      make(chan dashboard.Action, 8),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current dashboard state
func (c *Controller) State() dashboard.State {
	return c.state
}

// Run loads the dashboard and then serves input lines, refresh ticks,
// resume events and worker results until ctx ends, input closes or the
// user quits
func (c *Controller) Run(ctx context.Context, input <-chan string, resumed <-chan struct{}) error {
	c.ctx = ctx

	tick := c.tick
	if tick == nil {
		ticker := time.NewTicker(c.refreshEvery)
		defer ticker.Stop()
		tick = ticker.C
	}

	c.refresh("startup")
	c.render()

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-input:
			if !ok {
				return nil
			}
			if err := c.Execute(line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				c.dispatch(dashboard.Notify(dashboard.NoticeError, err.Error()))
			}

		case <-tick:
			c.refresh("interval")

		case <-resumed:
			c.resume()

		case a := <-c.actions:
			c.apply(a)
		}

		c.render()
	}
}

// Execute runs one command line
func (c *Controller) Execute(line string) error {
	if line == "" {
		return nil
	}
	cmd, rest, err := c.router.Resolve(line)
	if err != nil {
		return err
	}
	return cmd.Run(c, rest)
}

// refresh starts a fetch unless one is already running
func (c *Controller) refresh(reason string) bool {
	if c.inFlight {
		c.logger.Debug("refresh skipped, fetch in flight", "reason", reason)
		return false
	}
	c.inFlight = true
	c.dispatch(dashboard.FetchStarted())
	c.logger.Info("refreshing dashboard", "reason", reason)

	ctx := c.ctx
	go func() {
		records, err := c.fetcher.FetchApplicants(ctx)
		if err != nil {
			c.post(dashboard.FetchFailed(err))
			return
		}
		c.post(dashboard.RecordsLoaded(records))
	}()
	return true
}

// resume refreshes when the last successful update is older than staleAfter
func (c *Controller) resume() {
	if c.state.LastUpdate.IsZero() {
		return
	}
	if c.clock().Sub(c.state.LastUpdate) > c.staleAfter {
		c.refresh("resumed")
	}
}

func (c *Controller) post(a dashboard.Action) {
	select {
	case c.actions <- a:
	case <-c.ctx.Done():
	}
}

// apply handles an action coming back from a worker
func (c *Controller) apply(a dashboard.Action) {
	switch a.Kind {
	case dashboard.ActionRecordsLoaded:
		c.inFlight = false
		c.logger.Info("dashboard updated", "records", len(a.Records))
	case dashboard.ActionFetchFailed:
		c.inFlight = false
		c.logger.Error("dashboard fetch failed", "err", a.Err)
	}
	c.dispatch(a)
}

func (c *Controller) dispatch(a dashboard.Action) {
	c.state = dashboard.Reduce(c.state, a, c.clock())
}

func (c *Controller) render() {
	if c.renderer == nil {
		return
	}
	if err := c.renderer.Render(dashboard.BuildView(c.state, c.clock()), c.user); err != nil {
		c.logger.Warn("render failed", "err", err)
	}
	if c.showHelp {
		c.showHelp = false
		c.renderer.Help(c.router.List())
	}
	c.renderer.Prompt()
}

func (c *Controller) exportCSV() {
	records := c.state.Filtered
	if len(records) == 0 {
		c.dispatch(dashboard.Notify(dashboard.NoticeWarning, "No data to export"))
		return
	}
	if c.exporter == nil {
		c.dispatch(dashboard.Notify(dashboard.NoticeError, "Export is not configured"))
		return
	}

	ctx := c.ctx
	go func() {
		res, err := c.exporter.ExportCSV(ctx, records)
		switch {
		case err == nil:
			c.post(dashboard.Notify(dashboard.NoticeSuccess, fmt.Sprintf("Exported %d records to CSV", res.Count)))
		case res.Path != "":
			c.logger.Warn("report archive failed", "path", res.Path, "err", err)
			c.post(dashboard.Notify(dashboard.NoticeWarning,
				fmt.Sprintf("Exported %d records to %s, archive upload failed", res.Count, res.Path)))
		default:
			c.logger.Error("csv export failed", "err", err)
			c.post(dashboard.Notify(dashboard.NoticeError, "Failed to export data"))
		}
	}()
}

func (c *Controller) exportSheet(spreadsheetID, tab string) {
	records := c.state.Filtered
	if len(records) == 0 {
		c.dispatch(dashboard.Notify(dashboard.NoticeWarning, "No data to export"))
		return
	}
	if c.exporter == nil {
		c.dispatch(dashboard.Notify(dashboard.NoticeError, "Export is not configured"))
		return
	}

	ctx := c.ctx
	go func() {
		n, err := c.exporter.ExportSheet(ctx, spreadsheetID, tab, records)
		if err != nil {
			c.logger.Error("sheet export failed", "spreadsheet", spreadsheetID, "err", err)
			c.post(dashboard.Notify(dashboard.NoticeError, fmt.Sprintf("Failed to export data: %v", err)))
			return
		}
		c.post(dashboard.Notify(dashboard.NoticeSuccess, fmt.Sprintf("Exported %d records to Google Sheets", n)))
	}()
}

func (c *Controller) logout() error {
	if c.session == nil {
		return nil
	}
	if err := c.session.Logout(c.ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	c.logger.Info("logged out", "user", c.user)
	return nil
}
