// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStore(t *testing.T) {
	tt := []struct {
		name      string
		filename  string
		letter    bool
		venueName string
	}{
		{name: "from file", filename: "../../../testdata/event.json", letter: true, venueName: "Ølstedgaard Festlokaler"},
		{name: "missing file keeps demo", filename: filepath.Join(t.TempDir(), "none.json"), venueName: "Ølstedgaard Festlokaler"},
		{name: "no file", filename: ""},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewEventStore(tc.filename)
			require.NoError(t, err)
			ev, err := store.GetEvent(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Hjalte", ev.ConfirmandName)
			assert.True(t, ev.End.After(ev.Start))
			assert.Equal(t, tc.letter, ev.Letter != nil)
			if tc.venueName != "" {
				assert.Equal(t, tc.venueName, ev.Location.Name)
			}
		})
	}
}
