// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/quixsi/core/internal/model"
)

// SheetStore is the tabular row store behind the RSVP and page-view
// records. Implementations do not retry; every failure is returned as a
// *model.GatewayError or, for missing settings, a *model.ConfigurationError.
type SheetStore interface {
	// AppendRows adds rows after the last row of rangeSpec, keeping their
	// order. A failure half way may leave some rows written.
	AppendRows(ctx context.Context, rangeSpec string, rows [][]string) (*model.AppendResult, error)
	// ReadRange returns every row currently inside rangeSpec.
	ReadRange(ctx context.Context, rangeSpec string) ([][]string, error)
	// Validate fails fast when the store is missing credentials or a target.
	Validate() error
}
