// Copyright (C) 2024 the lets-party maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/quixsi/core/internal/config"
	"github.com/quixsi/core/internal/db"
	"github.com/quixsi/core/internal/db/storage"
)

func main() {
	var (
		from = flag.String("from", "kvdb://testdata/test.db", "source row store")
		to   = flag.String("to", "sheets://", "destination row store")
	)
	flag.Parse()

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{})
	logger := slog.New(jsonHandler)
	slog.SetDefault(logger)

	cfg := config.Load()

	src, closeSrc, err := storage.Open(*from, cfg)
	if err != nil {
		logger.Error("could not open source", "dsn", *from, "error", err)
		os.Exit(1)
	}
	defer closeSrc()

	dst, closeDst, err := storage.Open(*to, cfg)
	if err != nil {
		logger.Error("could not open destination", "dsn", *to, "error", err)
		os.Exit(1)
	}
	defer closeDst()

	logger.Info("start converting", "from", *from, "to", *to)
	for _, rangeSpec := range []string{cfg.RSVPRange, cfg.ViewsRange} {
		n, err := into(context.Background(), dst, src, rangeSpec)
		if err != nil {
			logger.Error("conversion failed", "range", rangeSpec, "error", err)
			os.Exit(1)
		}
		logger.Info("copied range", "range", rangeSpec, "rows", n)
	}
	logger.Info("finished converting")
}

// into copies every row of rangeSpec from src to dst and returns the row
// count. Rows already present in dst are not deduplicated.
func into(ctx context.Context, dst, src db.SheetStore, rangeSpec string) (int, error) {
	if err := src.Validate(); err != nil {
		return 0, fmt.Errorf("source: %w", err)
	}
	if err := dst.Validate(); err != nil {
		return 0, fmt.Errorf("destination: %w", err)
	}

	rows, err := src.ReadRange(ctx, rangeSpec)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if _, err := dst.AppendRows(ctx, rangeSpec, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
