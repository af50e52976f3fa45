// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"testing"
	"time"
)

func TestInviteGroup_DisplayName(t *testing.T) {
	tt := []struct {
		name     string
		group    InviteGroup
		expected string
	}{
		{
			name:     "explicit",
			group:    InviteGroup{GroupName: "Familien Jensen", Invitees: []Invitee{{ID: "1", Name: "Karen"}}},
			expected: "Familien Jensen",
		},
		{
			name:     "derived",
			group:    InviteGroup{Invitees: []Invitee{{ID: "1", Name: "Anna"}, {ID: "2", Name: "Bo"}}},
			expected: "Anna & Bo",
		},
		{
			name:     "single",
			group:    InviteGroup{Invitees: []Invitee{{ID: "1", Name: "Mads"}}},
			expected: "Mads",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.group.DisplayName(); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestInviteGroup_HasInvitee(t *testing.T) {
	g := InviteGroup{Invitees: []Invitee{{ID: "1", Name: "Anna"}, {ID: "2", Name: "Bo"}}}
	if !g.HasInvitee("2") {
		t.Fatal("expected invitee 2")
	}
	if g.HasInvitee("3") || g.HasInvitee("") {
		t.Fatal("unexpected invitee")
	}
}

func TestRows(t *testing.T) {
	ts := time.Date(2026, 5, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	rsvp := RsvpRecord{Timestamp: ts, InviteCode: "ABC123", InviteeID: "1", InviteeName: "Anna", Attending: true}.Row()
	expected := []string{"2026-05-01T08:00:00.000Z", "ABC123", "1", "Anna", "ja", ""}
	for i := range expected {
		if rsvp[i] != expected[i] {
			t.Fatalf("column %d: expected %q, got %q", i, expected[i], rsvp[i])
		}
	}

	group := &InviteGroup{Code: "ABC123", Invitees: []Invitee{{ID: "1", Name: "Anna"}, {ID: "2", Name: "Bo"}}}
	view := NewPageViewRecord(ts, group).Row()
	expected = []string{"2026-05-01T08:00:00.000Z", "ABC123", "Anna & Bo", "Anna, Bo"}
	for i := range expected {
		if view[i] != expected[i] {
			t.Fatalf("column %d: expected %q, got %q", i, expected[i], view[i])
		}
	}
}

func TestResponseFromRow(t *testing.T) {
	tt := []struct {
		name     string
		row      []string
		expected Response
	}{
		{name: "attending", row: []string{"ts", "C", "1", "Anna", "ja", "hi"}, expected: Response{ID: "1", Name: "Anna", Attending: true}},
		{name: "declined", row: []string{"ts", "C", "2", "Bo", "nej"}, expected: Response{ID: "2", Name: "Bo"}},
		{name: "other token", row: []string{"ts", "C", "2", "Bo", "yes"}, expected: Response{ID: "2", Name: "Bo"}},
		{name: "short row", row: []string{"ts", "C", "3"}, expected: Response{ID: "3"}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResponseFromRow(tc.row); got != tc.expected {
				t.Fatalf("expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}
