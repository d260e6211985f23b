package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/honeycarbs/recruit-dash/internal/client"
	"github.com/honeycarbs/recruit-dash/internal/config"
	"github.com/honeycarbs/recruit-dash/internal/console"
	"github.com/honeycarbs/recruit-dash/internal/report"
	"github.com/honeycarbs/recruit-dash/internal/session"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
	"github.com/honeycarbs/recruit-dash/pkg/objectstore"
	"github.com/honeycarbs/recruit-dash/pkg/sheets"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatalf("failed to load %s: %v", *envFile, err)
	}

	cfg, err := config.LoadDashboard()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewConsole(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, !*noColor && isatty.IsTerminal(os.Stdout.Fd())); err != nil {
		logger.Error("dashboard exited with error", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Dashboard, logger *logging.Logger, color bool) error {
	store, err := session.OpenSQLite(ctx, cfg.SessionDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	api, err := client.New(cfg.APIURL, client.WithLogger(logger.Named("api")))
	if err != nil {
		return err
	}
	guard := session.NewGuard(api, store, logger)

	lines := readLines(ctx, os.Stdin)

	exporter, err := newExporter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	resumed := make(chan struct{}, 1)
	cont := make(chan os.Signal, 1)
	signal.Notify(cont, syscall.SIGCONT)
	defer signal.Stop(cont)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-cont:
				select {
				case resumed <- struct{}{}:
				default:
				}
			}
		}
	}()

	return console.Launch(ctx, guard, api, console.NewRenderer(os.Stdout, color), lines, resumed,
		console.WithExporter(exporter),
		console.WithLogger(logger.Named("console")),
		console.WithPageSize(cfg.PageSize),
		console.WithRefresh(cfg.RefreshInterval, cfg.StaleAfter),
	)
}

// readLines feeds trimmed input lines into a channel until r ends
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func newExporter(ctx context.Context, cfg config.Dashboard, logger *logging.Logger) (*report.Exporter, error) {
	opts := []report.Option{
		report.WithDir(cfg.ExportDir),
		report.WithLogger(logger.Named("report")),
	}

	if cfg.SheetsCredsPath != "" {
		sc, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.SheetsCredsPath})
		if err != nil {
			return nil, err
		}
		opts = append(opts, report.WithSheets(sc))
	}

	if cfg.Report.Bucket != "" {
		oc, err := objectstore.NewClient(ctx, objectstore.Config{
			Bucket:    cfg.Report.Bucket,
			Endpoint:  cfg.Report.Endpoint,
			Region:    cfg.Report.Region,
			AccessKey: cfg.Report.AccessKey,
			SecretKey: cfg.Report.SecretKey,
			Prefix:    "reports/",
			PathStyle: cfg.Report.Endpoint != "",
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, report.WithArchive(oc))
	}

	return report.NewExporter(opts...), nil
}
