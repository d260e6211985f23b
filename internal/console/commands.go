package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/honeycarbs/recruit-dash/internal/dashboard"
	"github.com/honeycarbs/recruit-dash/internal/domain"
)

// errQuit ends the event loop
var errQuit = errors.New("quit")

// DefaultRouter returns the dashboard command set
func DefaultRouter() *Router {
	r := NewRouter()
	for _, cmd := range defaultCommands() {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
	return r
}

func defaultCommands() []Command {
	return []Command{
		{
			Name: "refresh", Aliases: []string{"r"},
			Help: "reload applicants from the server",
			Run: func(c *Controller, _ string) error {
				c.refresh("manual")
				return nil
			},
		},
		{
			Name: "range", Usage: "range all|<days>",
			Help: "only show applicants from the last N days",
			Run: func(c *Controller, rest string) error {
				tr, err := domain.ParseTimeRange(rest)
				if err != nil {
					return err
				}
				c.dispatch(dashboard.SetTimeRange(tr))
				return nil
			},
		},
		{
			Name: "status", Usage: "status [value]",
			Help: "filter by exact status, no value clears",
			Run: func(c *Controller, rest string) error {
				c.dispatch(dashboard.SetStatus(rest))
				return nil
			},
		},
		{
			Name: "position", Usage: "position [value]",
			Help: "filter by exact position, no value clears",
			Run: func(c *Controller, rest string) error {
				c.dispatch(dashboard.SetPosition(rest))
				return nil
			},
		},
		{
			Name: "search", Aliases: []string{"/"}, Usage: "search [text]",
			Help: "match name, position, email or education",
			Run: func(c *Controller, rest string) error {
				c.dispatch(dashboard.SetSearch(rest))
				return nil
			},
		},
		{
			Name: "clear",
			Help: "reset every filter",
			Run: func(c *Controller, _ string) error {
				c.dispatch(dashboard.ClearFilters())
				return nil
			},
		},
		{
			Name: "next", Aliases: []string{"n"},
			Help: "next page",
			Run: func(c *Controller, _ string) error {
				c.dispatch(dashboard.NextPage())
				return nil
			},
		},
		{
			Name: "prev", Aliases: []string{"p"},
			Help: "previous page",
			Run: func(c *Controller, _ string) error {
				c.dispatch(dashboard.PrevPage())
				return nil
			},
		},
		{
			Name: "trend", Usage: "trend weekly|monthly",
			Help: "switch the applications-over-time buckets",
			Run: func(c *Controller, rest string) error {
				g, err := dashboard.ParseTrendGranularity(strings.ToLower(rest))
				if err != nil {
					return err
				}
				c.dispatch(dashboard.SetTrend(g))
				return nil
			},
		},
		{
			Name: "export", Aliases: []string{"e"},
			Help: "write the filtered applicants to a CSV report",
			Run: func(c *Controller, _ string) error {
				c.exportCSV()
				return nil
			},
		},
		{
			Name: "sheet", Usage: "sheet <spreadsheet-id> [tab]",
			Help: "write the filtered applicants to a Google Sheets tab",
			Run: func(c *Controller, rest string) error {
				fields := strings.Fields(rest)
				if len(fields) == 0 {
					return fmt.Errorf("usage: sheet <spreadsheet-id> [tab]")
				}
				tab := ""
				if len(fields) > 1 {
					tab = strings.Join(fields[1:], " ")
				}
				c.exportSheet(fields[0], tab)
				return nil
			},
		},
		{
			Name: "logout",
			Help: "forget the stored session and exit",
			Run: func(c *Controller, _ string) error {
				if err := c.logout(); err != nil {
					return err
				}
				return errQuit
			},
		},
		{
			Name: "help", Aliases: []string{"?"},
			Help: "list commands",
			Run: func(c *Controller, _ string) error {
				c.showHelp = true
				return nil
			},
		},
		{
			Name: "quit", Aliases: []string{"exit", "q"},
			Help: "leave the dashboard",
			Run: func(*Controller, string) error {
				return errQuit
			},
		},
	}
}
