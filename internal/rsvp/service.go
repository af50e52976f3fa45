// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package rsvp

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/core/internal/db"
	"github.com/quixsi/core/internal/model"
)

const (
	DefaultRSVPRange  = "RSVPs!A:F"
	DefaultViewsRange = "PageViews!A:D"
)

type Settings struct {
	RSVPRange  string
	ViewsRange string
}

type Option func(*Service)

// WithClock replaces time.Now as the source of row timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService wires the invite directory to the row store. Each call is
// independent: the service holds no mutable state of its own.
func NewService(invites db.InviteDirectory, store db.SheetStore, settings Settings, opts ...Option) *Service {
	if settings.RSVPRange == "" {
		settings.RSVPRange = DefaultRSVPRange
	}
	if settings.ViewsRange == "" {
		settings.ViewsRange = DefaultViewsRange
	}
	s := &Service{
		invites:  invites,
		store:    store,
		settings: settings,
		validate: newValidator(),
		now:      time.Now,
		logger:   slog.Default().WithGroup("rsvp"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Service struct {
	invites  db.InviteDirectory
	store    db.SheetStore
	settings Settings
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger
}

type SubmitResult struct {
	// Updates is nil when nothing was written.
	Updates *model.AppendResult `json:"updates"`
}

// Submit records one row per invitee response. A filled honeypot field is
// answered with success without writing anything.
func (s *Service) Submit(ctx context.Context, body []byte) (*SubmitResult, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Service.Submit")
	defer span.End()

	if err := s.store.Validate(); err != nil {
		return nil, s.fail(ctx, span, err)
	}

	var sub model.RsvpSubmission
	if err := decodeStrict(body, &sub); err != nil {
		return nil, s.fail(ctx, span, err)
	}
	sub.Message = strings.TrimSpace(sub.Message)
	if err := s.validate.StructCtx(ctx, &sub); err != nil {
		return nil, s.fail(ctx, span, validationError(err))
	}

	if sub.IsBot() {
		span.AddEvent("honeypot filled, dropping submission")
		s.logger.InfoContext(ctx, "dropped bot submission", "invite_code", sub.InviteCode)
		return &SubmitResult{}, nil
	}

	span.SetAttributes(attribute.String("invite.code", sub.InviteCode))
	group, ok := s.invites.Lookup(ctx, sub.InviteCode)
	if !ok {
		return nil, s.fail(ctx, span, model.NewValidationError(model.ErrInvalidInviteCode))
	}
	for _, resp := range sub.Responses {
		if !group.HasInvitee(resp.ID) {
			return nil, s.fail(ctx, span, model.NewValidationError(model.ErrInvalidInviteeID))
		}
	}

	ts := s.now()
	rows := make([][]string, len(sub.Responses))
	for i, resp := range sub.Responses {
		rows[i] = model.RsvpRecord{
			Timestamp:   ts,
			InviteCode:  sub.InviteCode,
			InviteeID:   resp.ID,
			InviteeName: resp.Name,
			Attending:   *resp.Attending,
			Message:     sub.Message,
		}.Row()
	}

	span.AddEvent("append rows")
	updates, err := s.store.AppendRows(ctx, s.settings.RSVPRange, rows)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	s.logger.InfoContext(ctx, "rsvp recorded", "invite_code", sub.InviteCode, "responses", len(rows))
	return &SubmitResult{Updates: updates}, nil
}

// Status reports every stored response of the group. Earlier submissions
// are not hidden by later ones.
func (s *Service) Status(ctx context.Context, code string) (*model.StatusResult, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Service.Status")
	defer span.End()
	span.SetAttributes(attribute.String("invite.code", code))

	if code == "" {
		return nil, s.fail(ctx, span, model.NewValidationError(model.ErrMissingCode))
	}
	if _, ok := s.invites.Lookup(ctx, code); !ok {
		return nil, s.fail(ctx, span, model.NewValidationError(model.ErrInvalidInviteCode))
	}
	if err := s.store.Validate(); err != nil {
		return nil, s.fail(ctx, span, err)
	}

	rows, err := s.store.ReadRange(ctx, s.settings.RSVPRange)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	res := &model.StatusResult{Responses: []model.Response{}}
	for _, row := range rows {
		if model.RowInviteCode(row) != code {
			continue
		}
		res.Responses = append(res.Responses, model.ResponseFromRow(row))
	}
	res.HasSubmitted = len(res.Responses) > 0
	return res, nil
}

// TrackView appends one page-view row for the group behind the code.
func (s *Service) TrackView(ctx context.Context, body []byte) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Service.TrackView")
	defer span.End()

	var req model.TrackViewRequest
	if err := decodeStrict(body, &req); err != nil {
		return s.fail(ctx, span, err)
	}
	if err := s.validate.StructCtx(ctx, &req); err != nil {
		return s.fail(ctx, span, validationError(err))
	}

	span.SetAttributes(attribute.String("invite.code", req.InviteCode))
	group, ok := s.invites.Lookup(ctx, req.InviteCode)
	if !ok {
		return s.fail(ctx, span, model.NewValidationError(model.ErrInvalidInviteCode))
	}
	if err := s.store.Validate(); err != nil {
		return s.fail(ctx, span, err)
	}

	row := model.NewPageViewRecord(s.now(), group).Row()
	if _, err := s.store.AppendRows(ctx, s.settings.ViewsRange, [][]string{row}); err != nil {
		return s.fail(ctx, span, err)
	}
	return nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		s.logger.WarnContext(ctx, "rejected request", "error", err)
	} else {
		s.logger.ErrorContext(ctx, "request failed", "error", err)
	}
	return err
}
