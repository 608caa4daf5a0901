package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	SlackBotToken      string
	SlackSigningSecret string
	AdminUserID        string
	DatabasePath       string
	Port               string

	// Timezone is the IANA zone all calendar arithmetic happens in.
	Timezone string

	// Fire times, HH:MM wall clock in Timezone.
	DailyPromptTime   string // every day: planned-profit prompt
	DailyDigestTime   string // every day: admin digest
	FactRequestTime   string // last day of month: actual-profit prompt
	MonthlyReportTime string // first day of month: admin plan-vs-fact report

	// Retry policy for outbound sends.
	SendMaxRetries   int
	SendBaseDelay    time.Duration
	SendMaxDelay     time.Duration
	SendTotalTimeout time.Duration
}

func Load() *Config {
	return &Config{
		SlackBotToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		AdminUserID:        getEnv("ADMIN_USER_ID", ""),
		DatabasePath:       getEnv("DATABASE_PATH", "./planfact.db"),
		Port:               getEnv("PORT", "3000"),

		Timezone: getEnv("TIMEZONE", "Europe/Kyiv"),

		DailyPromptTime:   getEnv("DAILY_PROMPT_TIME", "18:50"),
		DailyDigestTime:   getEnv("DAILY_DIGEST_TIME", "19:30"),
		FactRequestTime:   getEnv("FACT_REQUEST_TIME", "19:00"),
		MonthlyReportTime: getEnv("MONTHLY_REPORT_TIME", "09:00"),

		SendMaxRetries:   getEnvInt("SEND_MAX_RETRIES", 3),
		SendBaseDelay:    getEnvDuration("SEND_BASE_DELAY", 2*time.Second),
		SendMaxDelay:     getEnvDuration("SEND_MAX_DELAY", 30*time.Second),
		SendTotalTimeout: getEnvDuration("SEND_TOTAL_TIMEOUT", 2*time.Minute),
	}
}

// Validate checks the parts of the configuration that would otherwise fail at
// the first scheduled fire, hours after startup.
func (c *Config) Validate() error {
	var problems []string

	if c.SlackBotToken == "" {
		problems = append(problems, "SLACK_BOT_TOKEN is required")
	}
	if c.SlackSigningSecret == "" {
		problems = append(problems, "SLACK_SIGNING_SECRET is required")
	}
	if c.AdminUserID == "" {
		problems = append(problems, "ADMIN_USER_ID is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid TIMEZONE %q", c.Timezone))
	}

	for name, value := range map[string]string{
		"DAILY_PROMPT_TIME":   c.DailyPromptTime,
		"DAILY_DIGEST_TIME":   c.DailyDigestTime,
		"FACT_REQUEST_TIME":   c.FactRequestTime,
		"MONTHLY_REPORT_TIME": c.MonthlyReportTime,
	} {
		if _, _, err := ParseClock(value); err != nil {
			problems = append(problems, fmt.Sprintf("invalid %s %q: must be HH:MM", name, value))
		}
	}

	if c.SendMaxRetries < 0 {
		problems = append(problems, "SEND_MAX_RETRIES must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location resolves the configured timezone. Call Validate first.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// ParseClock splits an HH:MM string into hour and minute.
func ParseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %s", value)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %s", value)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %s", value)
	}

	return hour, minute, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
