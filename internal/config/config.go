// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAdmin    = "admin"
	defaultPassword = "admin"
)

// Config is read from the environment. Missing Google credentials are not
// an error here; the row store reports them on use.
type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string
	SpreadsheetID      string
	RSVPRange          string
	ViewsRange         string

	AdminUser     string
	AdminPassword string
}

// Load reads an optional .env file in the working directory, then the
// environment. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		GoogleClientID:     strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_ID")),
		GoogleClientSecret: strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET")),
		GoogleRefreshToken: strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_REFRESH_TOKEN")),
		SpreadsheetID:      strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")),
		RSVPRange:          getEnv("GOOGLE_SHEETS_RANGE", "RSVPs!A:F"),
		ViewsRange:         getEnv("GOOGLE_SHEETS_VIEWS_RANGE", "PageViews!A:D"),
		AdminUser:          getEnv("PARTY_ADMIN", defaultAdmin),
		AdminPassword:      getEnv("PARTY_PASSWORD", defaultPassword),
	}
}

// DefaultAdminCredentials reports whether the admin area still uses the
// built-in user or password.
func (c Config) DefaultAdminCredentials() bool {
	return c.AdminUser == defaultAdmin || c.AdminPassword == defaultPassword
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}
