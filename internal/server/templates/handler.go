// Copyright (C) 2024 the lets-party maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	txttemplate "text/template"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/core/internal/db"
	"github.com/quixsi/core/internal/model"
)

//go:embed invite.html calendar.ics
var templates embed.FS

const icsTime = "20060102T150405Z"

func NewInviteHandler(invites db.InviteDirectory, events db.EventStore) *InviteHandler {
	return &InviteHandler{
		tmplInvite:   template.Must(template.ParseFS(templates, "invite.html")),
		tmplCalendar: txttemplate.Must(txttemplate.ParseFS(templates, "calendar.ics")),
		invites:      invites,
		events:       events,
		now:          time.Now,
		logger:       slog.Default().WithGroup("http"),
	}
}

type InviteHandler struct {
	tmplInvite   *template.Template
	tmplCalendar *txttemplate.Template
	invites      db.InviteDirectory
	events       db.EventStore
	now          func() time.Time
	logger       *slog.Logger
}

type invitePage struct {
	Group            *model.InviteGroup
	Event            *model.Event
	LetterParagraphs []string
	CalendarURL      string
}

// Render writes the invitation page of code to w. It returns
// model.ErrInvalidInviteCode for unknown codes.
func (h *InviteHandler) Render(ctx context.Context, w io.Writer, code string) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "InviteHandler.Render")
	defer span.End()
	span.SetAttributes(attribute.String("invite.code", code))

	group, event, err := h.load(ctx, code)
	if err != nil {
		span.RecordError(err)
		return err
	}

	page := invitePage{
		Group:       group,
		Event:       event,
		CalendarURL: "/invite/" + code + "/calendar.ics",
	}
	if event.Letter != nil {
		for _, p := range strings.Split(event.Letter.Content, "\n\n") {
			if p = strings.TrimSpace(p); p != "" {
				page.LetterParagraphs = append(page.LetterParagraphs, p)
			}
		}
	}

	var buf bytes.Buffer
	if err := h.tmplInvite.ExecuteTemplate(&buf, "INVITE", page); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// Calendar writes an iCalendar file with the event of the invitation.
func (h *InviteHandler) Calendar(ctx context.Context, w io.Writer, code string) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "InviteHandler.Calendar")
	defer span.End()

	_, event, err := h.load(ctx, code)
	if err != nil {
		span.RecordError(err)
		return err
	}

	location := ""
	if event.Location != nil {
		location = strings.Join(append([]string{event.Location.Name}, event.Location.AddressLines...), ", ")
	}
	summary := event.Title
	if event.ConfirmandName != "" {
		summary = fmt.Sprintf("%s: %s", event.Title, event.ConfirmandName)
	}

	var buf bytes.Buffer
	err = h.tmplCalendar.ExecuteTemplate(&buf, "CALENDAR", map[string]string{
		"UID":      calendarUID(code, event),
		"Stamp":    h.now().UTC().Format(icsTime),
		"Start":    event.Start.UTC().Format(icsTime),
		"End":      event.End.UTC().Format(icsTime),
		"Summary":  icsEscape(summary),
		"Location": icsEscape(location),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = foldLine(line)
	}
	// RFC 5545 lines end with CRLF.
	_, err = io.WriteString(w, strings.Join(lines, "\r\n")+"\r\n")
	return err
}

// icsLineOctets is the longest content line RFC 5545 allows, CRLF excluded.
const icsLineOctets = 75

// foldLine splits line into chunks of at most icsLineOctets bytes. Each
// continuation starts with a space. UTF-8 sequences are never split.
func foldLine(line string) string {
	if len(line) <= icsLineOctets {
		return line
	}
	var b strings.Builder
	limit := icsLineOctets
	n := 0
	for _, r := range line {
		size := utf8.RuneLen(r)
		if n+size > limit {
			b.WriteString("\r\n ")
			limit = icsLineOctets - 1
			n = 0
		}
		b.WriteRune(r)
		n += size
	}
	return b.String()
}

func (h *InviteHandler) load(ctx context.Context, code string) (*model.InviteGroup, *model.Event, error) {
	group, ok := h.invites.Lookup(ctx, code)
	if !ok {
		return nil, nil, model.ErrInvalidInviteCode
	}
	event, err := h.events.GetEvent(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("could not find event: %w", err)
	}
	return group, event, nil
}

func (h *InviteHandler) RenderInvite(c *gin.Context) {
	ctx := c.Request.Context()
	var buf bytes.Buffer
	if err := h.Render(ctx, &buf, c.Param("code")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *InviteHandler) RenderCalendar(c *gin.Context) {
	ctx := c.Request.Context()
	var buf bytes.Buffer
	if err := h.Calendar(ctx, &buf, c.Param("code")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="invitation.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *InviteHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrInvalidInviteCode) {
		NotFound(c)
		return
	}
	h.logger.ErrorContext(c.Request.Context(), "could not render invitation", "error", err)
	c.String(http.StatusInternalServerError, "could not render invitation")
}

// NotFound answers unknown invitation pages.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Invitation ikke fundet")
}

// calendarUID is stable per invitation and event.
func calendarUID(code string, event *model.Event) string {
	name := fmt.Sprintf("%s/%s/%d", code, event.Title, event.Start.Unix())
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String() + "@invite"
}

var icsReplacer = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

func icsEscape(s string) string {
	return icsReplacer.Replace(s)
}
