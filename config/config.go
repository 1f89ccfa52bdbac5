package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds every environment-driven setting of the dispatch backend.
type Config struct {
	Port string

	SheetAPIURL          string
	DispatchSheet        string
	LoginSheet           string
	DropdownSheet        string
	DriveFolderID        string
	SheetTimeout         time.Duration
	SheetRetries         int
	SheetCredentialsPath string

	JWTSecret   string
	Location    *time.Location
	CORSOrigins []string
	LogLevel    string
	DropdownTTL time.Duration

	DB   DBConfig
	SMTP SMTPConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Enabled reports whether a postgres database was configured.
func (d DBConfig) Enabled() bool {
	return d.Host != ""
}

// DSN builds the gorm postgres connection string.
func (d DBConfig) DSN(tz string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, tz)
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	NotifyTo []string
}

// Enabled reports whether gate pass notifications can be mailed.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != "" && len(s.NotifyTo) > 0
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	tzName := getEnv("TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}

	sheetTimeout, err := time.ParseDuration(getEnv("SHEET_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHEET_TIMEOUT: %w", err)
	}
	dropdownTTL, err := time.ParseDuration(getEnv("DROPDOWN_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DROPDOWN_TTL: %w", err)
	}
	retries, err := strconv.Atoi(getEnv("SHEET_RETRIES", "2"))
	if err != nil || retries < 0 {
		return nil, fmt.Errorf("invalid SHEET_RETRIES %q", os.Getenv("SHEET_RETRIES"))
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "9000"),
		SheetAPIURL:          os.Getenv("SHEET_API_URL"),
		DispatchSheet:        getEnv("SHEET_DISPATCH", "Dispatch"),
		LoginSheet:           getEnv("SHEET_LOGIN", "Login"),
		DropdownSheet:        getEnv("SHEET_DROPDOWN", "Drop-Down"),
		DriveFolderID:        os.Getenv("DRIVE_FOLDER_ID"),
		SheetTimeout:         sheetTimeout,
		SheetRetries:         retries,
		SheetCredentialsPath: os.Getenv("SHEET_CREDENTIALS_PATH"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Location:             loc,
		CORSOrigins:          splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DropdownTTL:          dropdownTTL,
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			NotifyTo: splitList(os.Getenv("NOTIFY_TO")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.SheetAPIURL == "" {
		return fmt.Errorf("SHEET_API_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

// ConfigureLogging applies LOG_LEVEL to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
