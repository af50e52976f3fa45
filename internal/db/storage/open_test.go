// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/core/internal/config"
	"github.com/quixsi/core/internal/db/kvdb"
	"github.com/quixsi/core/internal/db/sheets"
	"github.com/quixsi/core/internal/model"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.db")

	store, closeFn, err := Open("kvdb://"+path, config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &kvdb.SheetStore{}, store)

	_, err = store.AppendRows(context.Background(), "RSVPs!A:F", [][]string{{"a", "b"}})
	require.NoError(t, err)
	require.NoError(t, closeFn())

	store, closeFn, err = Open("kvdb://"+path, config.Config{})
	require.NoError(t, err)
	defer closeFn()
	rows, err := store.ReadRange(context.Background(), "RSVPs!A:F")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, rows)
}

func TestOpenSheets(t *testing.T) {
	store, closeFn, err := Open("sheets://", config.Config{SpreadsheetID: "sheet"})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &sheets.SheetStore{}, store)

	err = store.Validate()
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestOpenErrors(t *testing.T) {
	tt := []string{"", "kvdb://", "postgres://localhost/db", "::nope"}
	for _, dsn := range tt {
		t.Run(dsn, func(t *testing.T) {
			_, _, err := Open(dsn, config.Config{})
			assert.Error(t, err)
		})
	}
}
