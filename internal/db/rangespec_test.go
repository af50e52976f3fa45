// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tt := []struct {
		name     string
		spec     string
		expected Range
		wantErr  bool
	}{
		{name: "rsvp default", spec: "RSVPs!A:F", expected: Range{Sheet: "RSVPs", StartCol: 0, EndCol: 5}},
		{name: "views default", spec: "PageViews!A:D", expected: Range{Sheet: "PageViews", StartCol: 0, EndCol: 3}},
		{name: "sheet only", spec: "RSVPs", expected: Range{Sheet: "RSVPs", EndCol: -1}},
		{name: "quoted sheet with rows", spec: "'My Sheet'!B2:AA10", expected: Range{Sheet: "My Sheet", StartCol: 1, EndCol: 26}},
		{name: "single column", spec: "Log!C", expected: Range{Sheet: "Log", StartCol: 2, EndCol: 2}},
		{name: "empty", spec: "", wantErr: true},
		{name: "no sheet", spec: "!A:B", wantErr: true},
		{name: "reversed", spec: "RSVPs!F:A", wantErr: true},
		{name: "garbage column", spec: "RSVPs!1:2", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRange(tc.spec)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestRangeClip(t *testing.T) {
	row := []string{"a", "b", "c", "d", "e"}

	r, err := ParseRange("S!B:C")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, r.Clip(row))

	r, err = ParseRange("S!A:Z")
	require.NoError(t, err)
	assert.Equal(t, row, r.Clip(row))

	r, err = ParseRange("S!G:H")
	require.NoError(t, err)
	assert.Empty(t, r.Clip(row))
}

func TestRangeA1(t *testing.T) {
	r, err := ParseRange("RSVPs!A:F")
	require.NoError(t, err)
	assert.Equal(t, "RSVPs!A3:F4", r.A1(3, 4, 6))

	r, err = ParseRange("RSVPs")
	require.NoError(t, err)
	assert.Equal(t, "RSVPs!A1:D1", r.A1(1, 1, 4))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", ColumnName(0))
	assert.Equal(t, "Z", ColumnName(25))
	assert.Equal(t, "AA", ColumnName(26))
	assert.Equal(t, "AZ", ColumnName(51))
}
