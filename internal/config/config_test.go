// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"GOOGLE_OAUTH_CLIENT_ID", "GOOGLE_OAUTH_CLIENT_SECRET", "GOOGLE_OAUTH_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_RANGE", "GOOGLE_SHEETS_VIEWS_RANGE",
		"PARTY_ADMIN", "PARTY_PASSWORD",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, Config{
		RSVPRange:     "RSVPs!A:F",
		ViewsRange:    "PageViews!A:D",
		AdminUser:     "admin",
		AdminPassword: "admin",
	}, cfg)
	assert.True(t, cfg.DefaultAdminCredentials())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "id")
	t.Setenv("GOOGLE_OAUTH_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_OAUTH_REFRESH_TOKEN", " token ")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet")
	t.Setenv("GOOGLE_SHEETS_RANGE", "Svar!A:F")
	t.Setenv("GOOGLE_SHEETS_VIEWS_RANGE", "Visninger!A:D")
	t.Setenv("PARTY_ADMIN", "host")
	t.Setenv("PARTY_PASSWORD", "pw")

	assert.Equal(t, Config{
		GoogleClientID:     "id",
		GoogleClientSecret: "secret",
		GoogleRefreshToken: "token",
		SpreadsheetID:      "sheet",
		RSVPRange:          "Svar!A:F",
		ViewsRange:         "Visninger!A:D",
		AdminUser:          "host",
		AdminPassword:      "pw",
	}, FromEnv())
	assert.False(t, FromEnv().DefaultAdminCredentials())
}

func TestDefaultAdminCredentials(t *testing.T) {
	tt := []struct {
		name     string
		user     string
		password string
		want     bool
	}{
		{name: "both default", user: "admin", password: "admin", want: true},
		{name: "default password", user: "host", password: "admin", want: true},
		{name: "default user", user: "admin", password: "s3cret", want: true},
		{name: "custom", user: "host", password: "s3cret", want: false},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{AdminUser: tc.user, AdminPassword: tc.password}
			assert.Equal(t, tc.want, cfg.DefaultAdminCredentials())
		})
	}
}
