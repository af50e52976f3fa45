// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"fmt"
	"strings"
)

// Range is a parsed A1 range such as "RSVPs!A:F". Row numbers are accepted
// but ignored: ranges always cover whole columns.
type Range struct {
	Sheet    string
	StartCol int
	// EndCol is inclusive, -1 when the range has no column bound.
	EndCol int
}

func ParseRange(spec string) (Range, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Range{}, fmt.Errorf("empty range")
	}

	sheet, cells, found := strings.Cut(spec, "!")
	sheet = strings.Trim(sheet, "'")
	if sheet == "" {
		return Range{}, fmt.Errorf("range %q has no sheet name", spec)
	}
	r := Range{Sheet: sheet, EndCol: -1}
	if !found || cells == "" {
		return r, nil
	}

	from, to, hasTo := strings.Cut(cells, ":")
	start, err := parseColumn(from)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", spec, err)
	}
	r.StartCol = start
	r.EndCol = start
	if hasTo {
		end, err := parseColumn(to)
		if err != nil {
			return Range{}, fmt.Errorf("range %q: %w", spec, err)
		}
		if end < start {
			return Range{}, fmt.Errorf("range %q: end column before start column", spec)
		}
		r.EndCol = end
	}
	return r, nil
}

// Width is the number of columns covered, 0 when unbounded.
func (r Range) Width() int {
	if r.EndCol < 0 {
		return 0
	}
	return r.EndCol - r.StartCol + 1
}

// Clip cuts a stored row down to the columns of the range.
func (r Range) Clip(row []string) []string {
	if r.StartCol >= len(row) {
		return []string{}
	}
	end := len(row)
	if r.EndCol >= 0 && r.EndCol+1 < end {
		end = r.EndCol + 1
	}
	return row[r.StartCol:end]
}

// A1 formats the rows [first,last] (1-based) of the range.
func (r Range) A1(first, last int, width int) string {
	endCol := r.EndCol
	if endCol < 0 || width > 0 && r.StartCol+width-1 < endCol {
		endCol = r.StartCol + width - 1
	}
	if endCol < r.StartCol {
		endCol = r.StartCol
	}
	return fmt.Sprintf("%s!%s%d:%s%d", r.Sheet, ColumnName(r.StartCol), first, ColumnName(endCol), last)
}

// parseColumn turns "A", "F12" or "AA" into a zero-based column index.
func parseColumn(ref string) (int, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	letters := strings.TrimRight(ref, "0123456789")
	if letters == "" {
		return 0, fmt.Errorf("invalid column %q", ref)
	}
	col := 0
	for _, c := range letters {
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("invalid column %q", ref)
		}
		col = col*26 + int(c-'A'+1)
	}
	return col - 1, nil
}

func ColumnName(idx int) string {
	name := ""
	for idx >= 0 {
		name = string(rune('A'+idx%26)) + name
		idx = idx/26 - 1
	}
	return name
}
