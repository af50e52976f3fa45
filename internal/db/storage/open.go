// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package storage picks the row store behind a connection string.
package storage

import (
	"fmt"
	"net/url"

	bolt "go.etcd.io/bbolt"
	"google.golang.org/api/option"

	"github.com/quixsi/core/internal/config"
	"github.com/quixsi/core/internal/db"
	"github.com/quixsi/core/internal/db/kvdb"
	"github.com/quixsi/core/internal/db/sheets"
)

// Open returns the SheetStore addressed by dsn together with a close func.
//
//	sheets://            Google Sheets, credentials from cfg
//	kvdb://path/to.db    local bbolt file
func Open(dsn string, cfg config.Config, opts ...option.ClientOption) (db.SheetStore, func() error, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to parse db connection string: %w", err)
	}

	switch u.Scheme {
	case "sheets":
		store := sheets.NewSheetStore(sheets.Config{
			ClientID:      cfg.GoogleClientID,
			ClientSecret:  cfg.GoogleClientSecret,
			RefreshToken:  cfg.GoogleRefreshToken,
			SpreadsheetID: cfg.SpreadsheetID,
		}, opts...)
		return store, func() error { return nil }, nil
	case "kvdb":
		path := u.Host + u.Path
		if path == "" {
			return nil, nil, fmt.Errorf("kvdb connection string %q has no path", dsn)
		}
		bdb, err := bolt.Open(path, 0600, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open %s: %w", path, err)
		}
		return kvdb.NewSheetStore(bdb), bdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", u.Scheme)
	}
}
