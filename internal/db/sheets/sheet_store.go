// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package sheets

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/quixsi/core/internal/model"
)

const (
	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"
)

type Config struct {
	ClientID      string
	ClientSecret  string
	RefreshToken  string
	SpreadsheetID string
}

func (c Config) missing() []string {
	var m []string
	if c.ClientID == "" {
		m = append(m, "GOOGLE_OAUTH_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		m = append(m, "GOOGLE_OAUTH_CLIENT_SECRET")
	}
	if c.RefreshToken == "" {
		m = append(m, "GOOGLE_OAUTH_REFRESH_TOKEN")
	}
	if c.SpreadsheetID == "" {
		m = append(m, "GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	return m
}

// NewSheetStore returns a store for one spreadsheet. Credentials are only
// checked when the store is used so that a misconfigured server still
// starts and answers with configuration errors. opts are handed to the
// Sheets client, tests use them to point it at a fake endpoint.
func NewSheetStore(cfg Config, opts ...option.ClientOption) *SheetStore {
	return &SheetStore{cfg: cfg, opts: opts}
}

type SheetStore struct {
	cfg  Config
	opts []option.ClientOption
}

func (s *SheetStore) Validate() error {
	if m := s.cfg.missing(); len(m) > 0 {
		return &model.ConfigurationError{Missing: m}
	}
	return nil
}

// service builds a Sheets client whose token source exchanges the refresh
// token for an access token on first use.
func (s *SheetStore) service(ctx context.Context) (*gsheets.Service, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	oauth := &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gsheets.SpreadsheetsScope},
	}
	ts := oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: s.cfg.RefreshToken})
	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, s.opts...)
	return gsheets.NewService(ctx, opts...)
}

func (s *SheetStore) AppendRows(ctx context.Context, rangeSpec string, rows [][]string) (*model.AppendResult, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "AppendRows")
	defer span.End()
	span.SetAttributes(attribute.String("range", rangeSpec), attribute.Int("rows", len(rows)))

	srv, err := s.service(ctx)
	if err != nil {
		return nil, fail(span, "append", err)
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		values[i] = cells
	}

	resp, err := srv.Spreadsheets.Values.
		Append(s.cfg.SpreadsheetID, rangeSpec, &gsheets.ValueRange{Values: values}).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fail(span, "append", err)
	}

	res := &model.AppendResult{SpreadsheetID: resp.SpreadsheetId}
	if u := resp.Updates; u != nil {
		res.UpdatedRange = u.UpdatedRange
		res.UpdatedRows = u.UpdatedRows
		res.UpdatedColumns = u.UpdatedColumns
		res.UpdatedCells = u.UpdatedCells
	}
	return res, nil
}

func (s *SheetStore) ReadRange(ctx context.Context, rangeSpec string) ([][]string, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "ReadRange")
	defer span.End()
	span.SetAttributes(attribute.String("range", rangeSpec))

	srv, err := s.service(ctx)
	if err != nil {
		return nil, fail(span, "read", err)
	}

	resp, err := srv.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fail(span, "read", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, v := range resp.Values {
		row := make([]string, len(v))
		for j, c := range v {
			switch c := c.(type) {
			case string:
				row[j] = c
			case nil:
			default:
				row[j] = fmt.Sprint(c)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if _, ok := err.(*model.ConfigurationError); ok {
		return err
	}
	return &model.GatewayError{Op: "sheets " + op, Err: err}
}
