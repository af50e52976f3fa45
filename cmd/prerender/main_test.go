// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/core/internal/db/jsondb"
	"github.com/quixsi/core/internal/server/templates"
)

func TestPrerender(t *testing.T) {
	invites, err := jsondb.NewInvitationStore("../../testdata/invites.json")
	require.NoError(t, err)
	events, err := jsondb.NewEventStore("../../testdata/event.json")
	require.NoError(t, err)

	out := t.TempDir()
	n, err := prerender(context.Background(), invites, templates.NewInviteHandler(invites, events), out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, code := range []string{"ABC123", "FAM42", "SOLO7"} {
		page, err := os.ReadFile(filepath.Join(out, "invite", code, "index.html"))
		require.NoError(t, err)
		assert.Contains(t, string(page), code)

		cal, err := os.ReadFile(filepath.Join(out, "invite", code, "calendar.ics"))
		require.NoError(t, err)
		assert.Contains(t, string(cal), "BEGIN:VCALENDAR")
	}
}
