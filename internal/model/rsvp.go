// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"strings"
	"time"
)

const (
	AttendingYes = "ja"
	AttendingNo  = "nej"
)

// TimestampFormat is the ISO-8601 layout written into every row.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

type InviteeResponse struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required,max=120"`
	Attending *bool  `json:"attending" validate:"required"`
}

type RsvpSubmission struct {
	InviteCode string            `json:"inviteCode" validate:"required,max=20"`
	Responses  []InviteeResponse `json:"responses" validate:"required,min=1,dive"`
	Message    string            `json:"message" validate:"max=500"`
	Company    string            `json:"company"`
}

// IsBot reports whether the hidden honeypot field was filled in.
func (s *RsvpSubmission) IsBot() bool {
	return strings.TrimSpace(s.Company) != ""
}

type TrackViewRequest struct {
	InviteCode string `json:"inviteCode" validate:"required,max=20"`
}

// RsvpRecord is the persisted form of one invitee response.
type RsvpRecord struct {
	Timestamp   time.Time
	InviteCode  string
	InviteeID   string
	InviteeName string
	Attending   bool
	Message     string
}

func (r RsvpRecord) Row() []string {
	attending := AttendingNo
	if r.Attending {
		attending = AttendingYes
	}
	return []string{
		r.Timestamp.UTC().Format(TimestampFormat),
		r.InviteCode,
		r.InviteeID,
		r.InviteeName,
		attending,
		r.Message,
	}
}

// Response is an invitee answer as reported by the status check.
type Response struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Attending bool   `json:"attending"`
}

// RowInviteCode returns the invite code column of a stored RSVP row.
func RowInviteCode(row []string) string {
	return column(row, 1)
}

// ResponseFromRow maps a stored RSVP row positionally. Missing trailing
// cells read as empty.
func ResponseFromRow(row []string) Response {
	return Response{
		ID:        column(row, 2),
		Name:      column(row, 3),
		Attending: column(row, 4) == AttendingYes,
	}
}

func column(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

type PageViewRecord struct {
	Timestamp  time.Time
	InviteCode string
	GroupName  string
	Names      []string
}

func NewPageViewRecord(ts time.Time, group *InviteGroup) PageViewRecord {
	return PageViewRecord{
		Timestamp:  ts,
		InviteCode: group.Code,
		GroupName:  group.DisplayName(),
		Names:      group.Names(),
	}
}

func (p PageViewRecord) Row() []string {
	return []string{
		p.Timestamp.UTC().Format(TimestampFormat),
		p.InviteCode,
		p.GroupName,
		strings.Join(p.Names, ", "),
	}
}

// AppendResult is the informational metadata a row store reports after an
// append.
type AppendResult struct {
	SpreadsheetID  string `json:"spreadsheetId,omitempty"`
	UpdatedRange   string `json:"updatedRange"`
	UpdatedRows    int64  `json:"updatedRows"`
	UpdatedColumns int64  `json:"updatedColumns"`
	UpdatedCells   int64  `json:"updatedCells"`
}

type StatusResult struct {
	HasSubmitted bool       `json:"hasSubmitted"`
	Responses    []Response `json:"responses"`
}
