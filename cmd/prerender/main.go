// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quixsi/core/internal/db"
	"github.com/quixsi/core/internal/db/jsondb"
	"github.com/quixsi/core/internal/server/templates"
)

func main() {
	var (
		invitesPath = flag.String("invites", "testdata/invites.json", "path to the invite directory")
		eventPath   = flag.String("event", "testdata/event.json", "path to the event description")
		outDir      = flag.String("out", "dist", "output directory")
	)
	flag.Parse()

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{})
	logger := slog.New(jsonHandler)
	slog.SetDefault(logger)

	invites, err := jsondb.NewInvitationStore(*invitesPath)
	if err != nil {
		logger.Error("could not load invite directory", "path", *invitesPath, "error", err)
		os.Exit(1)
	}
	events, err := jsondb.NewEventStore(*eventPath)
	if err != nil {
		logger.Error("could not load event", "path", *eventPath, "error", err)
		os.Exit(1)
	}

	n, err := prerender(context.Background(), invites, templates.NewInviteHandler(invites, events), *outDir)
	if err != nil {
		logger.Error("prerender failed", "error", err)
		os.Exit(1)
	}
	logger.Info("prerendered invitations", "count", n, "out", *outDir)
}

type renderer interface {
	Render(ctx context.Context, w io.Writer, code string) error
	Calendar(ctx context.Context, w io.Writer, code string) error
}

// prerender writes invite/<code>/index.html and calendar.ics below outDir
// for every code of the directory.
func prerender(ctx context.Context, invites db.InviteDirectory, r renderer, outDir string) (int, error) {
	codes := invites.AllCodes(ctx)
	for _, code := range codes {
		dir := filepath.Join(outDir, "invite", code)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}

		var page bytes.Buffer
		if err := r.Render(ctx, &page, code); err != nil {
			return 0, fmt.Errorf("render %s: %w", code, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "index.html"), page.Bytes(), 0o644); err != nil {
			return 0, err
		}

		var cal bytes.Buffer
		if err := r.Calendar(ctx, &cal, code); err != nil {
			return 0, fmt.Errorf("calendar %s: %w", code, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "calendar.ics"), cal.Bytes(), 0o644); err != nil {
			return 0, err
		}
	}
	return len(codes), nil
}
