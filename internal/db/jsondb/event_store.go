// Copyright (C) 2024 the lets-party maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/core/internal/model"
)

// NewEventStore reads the event description from filename. A missing file
// leaves the demo event in place.
func NewEventStore(filename string) (*EventStore, error) {
	store := &EventStore{
		filename: filename,
		event:    createDemoEvent(),
	}
	if err := store.loadFromFile(); err != nil {
		return nil, err
	}
	return store, nil
}

type EventStore struct {
	filename string
	event    *model.Event
}

func (e *EventStore) GetEvent(ctx context.Context) (*model.Event, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetEvent")
	defer span.End()

	ev := *e.event
	return &ev, nil
}

func (e *EventStore) loadFromFile() error {
	if e.filename == "" {
		return nil
	}
	if _, err := os.Stat(e.filename); os.IsNotExist(err) {
		return nil
	}

	fileData, err := os.ReadFile(e.filename)
	if err != nil {
		return err
	}

	return json.Unmarshal(fileData, &e.event)
}

func createDemoEvent() *model.Event {
	cest := time.FixedZone("CEST", 2*60*60)
	return &model.Event{
		Title:          "Invitation",
		ConfirmandName: "Hjalte",
		Start:          time.Date(2026, 5, 14, 11, 30, 0, 0, cest),
		End:            time.Date(2026, 5, 14, 17, 30, 0, 0, cest),
		DateLabel:      "Torsdag d. 14. maj 2026",
		TimeLabel:      "kl. 11:30",
		Location: &model.Location{
			Name:         "Ølstedgaard Festlokaler",
			AddressLines: []string{"Nederholmsvej 12, 8723 Løsning"},
		},
		RSVPEnabled: true,
	}
}
