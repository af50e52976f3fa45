// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/core/internal/model"
)

type inviteFile struct {
	Invites []*model.InviteGroup `json:"invites"`
}

// NewInvitationStore loads the invite directory from filename. The store is
// never written after this returns.
func NewInvitationStore(filename string) (*InvitationStore, error) {
	fileData, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var f inviteFile
	if err := json.Unmarshal(fileData, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return NewInvitationStoreFrom(f.Invites)
}

// NewInvitationStoreFrom builds the directory from groups, rejecting
// duplicate codes and invitee ids repeated inside one group.
func NewInvitationStoreFrom(groups []*model.InviteGroup) (*InvitationStore, error) {
	store := &InvitationStore{
		invitations: make(map[string]*model.InviteGroup, len(groups)),
		codes:       make([]string, 0, len(groups)),
	}
	for _, g := range groups {
		if g == nil || g.Code == "" {
			return nil, fmt.Errorf("invite without code")
		}
		if _, ok := store.invitations[g.Code]; ok {
			return nil, fmt.Errorf("duplicate invite code: %s", g.Code)
		}
		if len(g.Invitees) == 0 {
			return nil, fmt.Errorf("invite %s has no invitees", g.Code)
		}
		seen := make(map[string]struct{}, len(g.Invitees))
		for _, inv := range g.Invitees {
			if inv.ID == "" {
				return nil, fmt.Errorf("invite %s has an invitee without id", g.Code)
			}
			if _, ok := seen[inv.ID]; ok {
				return nil, fmt.Errorf("invite %s: duplicate invitee id %s", g.Code, inv.ID)
			}
			seen[inv.ID] = struct{}{}
		}
		store.invitations[g.Code] = g.Clone()
		store.codes = append(store.codes, g.Code)
	}
	return store, nil
}

type InvitationStore struct {
	invitations map[string]*model.InviteGroup
	codes       []string
}

func (i *InvitationStore) Lookup(ctx context.Context, code string) (*model.InviteGroup, bool) {
	var span trace.Span
	_, span = tracer.Start(ctx, "Lookup")
	defer span.End()

	group, ok := i.invitations[code]
	span.SetAttributes(attribute.Bool("invite.found", ok))
	if !ok {
		return nil, false
	}
	return group.Clone(), true
}

func (i *InvitationStore) AllCodes(ctx context.Context) []string {
	var span trace.Span
	_, span = tracer.Start(ctx, "AllCodes")
	defer span.End()

	return append([]string(nil), i.codes...)
}
