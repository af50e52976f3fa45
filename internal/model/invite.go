// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import "strings"

type Invitee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InviteGroup is one invited party. The code is the only credential the
// group has for its page and its submissions.
type InviteGroup struct {
	Code      string    `json:"code"`
	Invitees  []Invitee `json:"invitees"`
	GroupName string    `json:"groupName,omitempty"`
}

// DisplayName returns the explicit group name or the invitee names joined
// with " & ".
func (g *InviteGroup) DisplayName() string {
	if g.GroupName != "" {
		return g.GroupName
	}
	return strings.Join(g.Names(), " & ")
}

func (g *InviteGroup) Names() []string {
	names := make([]string, len(g.Invitees))
	for i, inv := range g.Invitees {
		names[i] = inv.Name
	}
	return names
}

func (g *InviteGroup) HasInvitee(id string) bool {
	for _, inv := range g.Invitees {
		if inv.ID == id {
			return true
		}
	}
	return false
}

func (g *InviteGroup) Clone() *InviteGroup {
	c := *g
	c.Invitees = append([]Invitee(nil), g.Invitees...)
	return &c
}
