// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/core/internal/model"
)

func TestNewInvitationStore_File(t *testing.T) {
	store, err := NewInvitationStore("../../../testdata/invites.json")
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, []string{"ABC123", "FAM42", "SOLO7"}, store.AllCodes(ctx))

	for _, code := range store.AllCodes(ctx) {
		group, ok := store.Lookup(ctx, code)
		require.True(t, ok, code)
		ids := make(map[string]bool)
		for _, inv := range group.Invitees {
			assert.False(t, ids[inv.ID], "duplicate id %s in %s", inv.ID, code)
			ids[inv.ID] = true
		}
	}
}

func TestInvitationStore_Lookup(t *testing.T) {
	store, err := NewInvitationStoreFrom([]*model.InviteGroup{
		{Code: "ABC123", Invitees: []model.Invitee{{ID: "1", Name: "Anna"}, {ID: "2", Name: "Bo"}}},
	})
	require.NoError(t, err)
	ctx := context.Background()

	tt := []struct {
		name  string
		code  string
		found bool
	}{
		{name: "exact", code: "ABC123", found: true},
		{name: "lower case", code: "abc123", found: false},
		{name: "unknown", code: "XYZ", found: false},
		{name: "empty", code: "", found: false},
		{name: "padded", code: " ABC123", found: false},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			group, ok := store.Lookup(ctx, tc.code)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, "Anna & Bo", group.DisplayName())
			} else {
				assert.Nil(t, group)
			}
		})
	}
}

func TestInvitationStore_LookupReturnsCopy(t *testing.T) {
	store, err := NewInvitationStoreFrom([]*model.InviteGroup{
		{Code: "ABC123", Invitees: []model.Invitee{{ID: "1", Name: "Anna"}}},
	})
	require.NoError(t, err)
	ctx := context.Background()

	group, _ := store.Lookup(ctx, "ABC123")
	group.Invitees[0].Name = "Mallory"

	again, _ := store.Lookup(ctx, "ABC123")
	assert.Equal(t, "Anna", again.Invitees[0].Name)
}

func TestNewInvitationStoreFrom_Rejects(t *testing.T) {
	tt := []struct {
		name   string
		groups []*model.InviteGroup
	}{
		{
			name: "duplicate code",
			groups: []*model.InviteGroup{
				{Code: "A", Invitees: []model.Invitee{{ID: "1", Name: "x"}}},
				{Code: "A", Invitees: []model.Invitee{{ID: "1", Name: "y"}}},
			},
		},
		{
			name:   "duplicate invitee id",
			groups: []*model.InviteGroup{{Code: "A", Invitees: []model.Invitee{{ID: "1", Name: "x"}, {ID: "1", Name: "y"}}}},
		},
		{
			name:   "missing code",
			groups: []*model.InviteGroup{{Invitees: []model.Invitee{{ID: "1", Name: "x"}}}},
		},
		{
			name:   "no invitees",
			groups: []*model.InviteGroup{{Code: "A"}},
		},
		{
			name:   "empty invitee id",
			groups: []*model.InviteGroup{{Code: "A", Invitees: []model.Invitee{{Name: "x"}}}},
		},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInvitationStoreFrom(tc.groups)
			assert.Error(t, err)
		})
	}
}

func TestNewInvitationStore_Errors(t *testing.T) {
	_, err := NewInvitationStore(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o600))
	_, err = NewInvitationStore(broken)
	assert.Error(t, err)
}
