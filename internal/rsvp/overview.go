// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package rsvp

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/core/internal/model"
)

type GroupSummary struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Invitees     int    `json:"invitees"`
	HasSubmitted bool   `json:"hasSubmitted"`
	Attending    int    `json:"attending"`
	Declined     int    `json:"declined"`
}

type Overview struct {
	Total    int            `json:"total"`
	Pending  int            `json:"pending"`
	Accepted int            `json:"accepted"`
	Rejected int            `json:"rejected"`
	Groups   []GroupSummary `json:"groups"`
}

// Overview summarises the RSVP range per group. When an invitee answered
// more than once, the last row counts.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Service.Overview")
	defer span.End()

	if err := s.store.Validate(); err != nil {
		return nil, s.fail(ctx, span, err)
	}
	rows, err := s.store.ReadRange(ctx, s.settings.RSVPRange)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	// code -> invitee id -> attending
	latest := make(map[string]map[string]bool)
	for _, row := range rows {
		code := model.RowInviteCode(row)
		resp := model.ResponseFromRow(row)
		if latest[code] == nil {
			latest[code] = make(map[string]bool)
		}
		latest[code][resp.ID] = resp.Attending
	}

	out := &Overview{Groups: []GroupSummary{}}
	for _, code := range s.invites.AllCodes(ctx) {
		group, ok := s.invites.Lookup(ctx, code)
		if !ok {
			continue
		}
		answers := latest[code]
		sum := GroupSummary{
			Code:         code,
			Name:         group.DisplayName(),
			Invitees:     len(group.Invitees),
			HasSubmitted: len(answers) > 0,
		}
		for _, inv := range group.Invitees {
			out.Total++
			attending, answered := answers[inv.ID]
			switch {
			case !answered:
				out.Pending++
			case attending:
				sum.Attending++
				out.Accepted++
			default:
				sum.Declined++
				out.Rejected++
			}
		}
		out.Groups = append(out.Groups, sum)
	}
	return out, nil
}
