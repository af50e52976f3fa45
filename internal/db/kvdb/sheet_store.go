// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/core/internal/db"
	"github.com/quixsi/core/internal/model"
)

const bucketPrefix = "sheet_"

// NewSheetStore keeps rows in bbolt, one bucket per sheet name. Keys are the
// bucket sequence so iteration order is append order.
func NewSheetStore(bdb *bolt.DB) *SheetStore {
	return &SheetStore{db: bdb}
}

type SheetStore struct {
	db *bolt.DB
}

func (s *SheetStore) Validate() error {
	if s.db == nil {
		return &model.ConfigurationError{Missing: []string{"kvdb database"}}
	}
	return nil
}

func (s *SheetStore) AppendRows(ctx context.Context, rangeSpec string, rows [][]string) (*model.AppendResult, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "AppendRows")
	defer span.End()
	span.SetAttributes(attribute.String("range", rangeSpec), attribute.Int("rows", len(rows)))

	r, err := db.ParseRange(rangeSpec)
	if err != nil {
		return nil, s.fail(span, "append", err)
	}

	var first, last uint64
	width := 0
	span.AddEvent("Update bucket")
	err = s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName(r.Sheet))
		if err != nil {
			return err
		}
		for i, row := range rows {
			seq, err := bucket.NextSequence()
			if err != nil {
				return err
			}
			if i == 0 {
				first = seq
			}
			last = seq
			if len(row) > width {
				width = len(row)
			}
			// cells are stored at their absolute column
			j, err := json.Marshal(append(make([]string, r.StartCol), row...))
			if err != nil {
				return err
			}
			if err := bucket.Put(key(seq), j); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(span, "append", err)
	}

	res := &model.AppendResult{
		UpdatedRows:    int64(len(rows)),
		UpdatedColumns: int64(width),
	}
	for _, row := range rows {
		res.UpdatedCells += int64(len(row))
	}
	if len(rows) > 0 {
		res.UpdatedRange = r.A1(int(first), int(last), width)
	}
	return res, nil
}

func (s *SheetStore) ReadRange(ctx context.Context, rangeSpec string) ([][]string, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ReadRange")
	defer span.End()
	span.SetAttributes(attribute.String("range", rangeSpec))

	r, err := db.ParseRange(rangeSpec)
	if err != nil {
		return nil, s.fail(span, "read", err)
	}

	rows := [][]string{}
	span.AddEvent("View bucket")
	err = s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName(r.Sheet))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var row []string
			if err := json.Unmarshal(v, &row); err != nil {
				return err
			}
			rows = append(rows, r.Clip(row))
			return nil
		})
	})
	if err != nil {
		return nil, s.fail(span, "read", err)
	}
	return rows, nil
}

func (s *SheetStore) fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	var cfgErr *model.ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}
	return &model.GatewayError{Op: "kvdb " + op, Err: err}
}

func bucketName(sheet string) []byte {
	return []byte(bucketPrefix + sheet)
}

func key(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
