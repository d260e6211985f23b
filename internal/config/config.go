package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime settings for the functions server
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080
	Kintone  struct {
		Domain     string
		AppID      string
		APIToken   string
		MaxRecords int
	}
	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
		Users     string // user:ENV_VAR pairs
	}
}

// Dashboard contains settings for the terminal dashboard client
type Dashboard struct {
	LogLevel        string
	APIURL          string
	SessionDB       string
	PageSize        int
	RefreshInterval time.Duration
	StaleAfter      time.Duration
	ExportDir       string
	SheetsCredsPath string
	Report          struct {
		Bucket    string
		Endpoint  string
		Region    string
		AccessKey string
		SecretKey string
	}
}

// LoadDotEnv seeds the environment from files (".env" when none given).
// Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load populates config from environment variables
func Load() (Config, error) {
	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.Kintone.MaxRecords = 500
	cfg.Auth.TokenTTL = 24 * time.Hour

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.Kintone.Domain = os.Getenv("KINTONE_DOMAIN")
	cfg.Kintone.AppID = os.Getenv("KINTONE_APP_ID")
	cfg.Kintone.APIToken = os.Getenv("KINTONE_API_TOKEN")

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.Auth.Users = os.Getenv("AUTH_USERS")

	var problems []string

	if err := intVar("KINTONE_MAX_RECORDS", &cfg.Kintone.MaxRecords); err != nil {
		problems = append(problems, err.Error())
	}
	if err := durationVar("TOKEN_TTL", &cfg.Auth.TokenTTL); err != nil {
		problems = append(problems, err.Error())
	}

	var missingVars []string

	if cfg.Kintone.Domain == "" {
		missingVars = append(missingVars, "KINTONE_DOMAIN")
	}

	if cfg.Kintone.AppID == "" {
		missingVars = append(missingVars, "KINTONE_APP_ID")
	}

	if cfg.Kintone.APIToken == "" {
		missingVars = append(missingVars, "KINTONE_API_TOKEN")
	}

	if cfg.Auth.JWTSecret == "" {
		missingVars = append(missingVars, "JWT_SECRET")
	}

	if len(missingVars) > 0 {
		problems = append(problems, fmt.Sprintf("missing required environment variables: %s", strings.Join(missingVars, ", ")))
	}

	if len(problems) > 0 {
		return cfg, errors.New(strings.Join(problems, "; "))
	}

	return cfg, nil
}

// LoadDashboard populates the dashboard client settings. Nothing is required.
func LoadDashboard() (Dashboard, error) {
	cfg := Dashboard{
		LogLevel:        "warn",
		APIURL:          "http://localhost:8080",
		SessionDB:       defaultSessionDB(),
		PageSize:        10,
		RefreshInterval: 5 * time.Minute,
		StaleAfter:      10 * time.Minute,
		ExportDir:       ".",
	}
	cfg.Report.Region = "auto"

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DASHBOARD_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("DASHBOARD_SESSION_DB"); v != "" {
		cfg.SessionDB = v
	}
	if v := os.Getenv("DASHBOARD_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}

	cfg.SheetsCredsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")
	cfg.Report.Bucket = os.Getenv("REPORT_BUCKET")
	cfg.Report.Endpoint = os.Getenv("REPORT_ENDPOINT")
	cfg.Report.AccessKey = os.Getenv("REPORT_ACCESS_KEY")
	cfg.Report.SecretKey = os.Getenv("REPORT_SECRET_KEY")
	if v := os.Getenv("REPORT_REGION"); v != "" {
		cfg.Report.Region = v
	}

	var problems []string
	if err := intVar("DASHBOARD_PAGE_SIZE", &cfg.PageSize); err != nil {
		problems = append(problems, err.Error())
	}
	if err := durationVar("DASHBOARD_REFRESH_INTERVAL", &cfg.RefreshInterval); err != nil {
		problems = append(problems, err.Error())
	}
	if err := durationVar("DASHBOARD_STALE_AFTER", &cfg.StaleAfter); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return cfg, errors.New(strings.Join(problems, "; "))
	}
	return cfg, nil
}

func defaultSessionDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "recruit-dash-session.db"
	}
	return dir + string(os.PathSeparator) + "recruit-dash-session.db"
}

func intVar(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %q", name, v)
	}
	*dst = n
	return nil
}

func durationVar(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("%s must be a positive duration, got %q", name, v)
	}
	*dst = d
	return nil
}
