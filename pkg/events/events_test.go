package events

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestEncodeReservationCreated(t *testing.T) {
	at := time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)
	payload, err := Encode(ReservationCreatedEvent{
		ReservationID: "abc",
		PlaceID:       "42",
		Uname:         "alice",
		DateTime:      at,
		CreatedAt:     at,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s := string(payload)
	for _, want := range []string{`"reservation_id":"abc"`, `"placeid":"42"`, `"uname":"alice"`, `"datetime":"2025-05-04T12:00:00Z"`} {
		if !strings.Contains(s, want) {
			t.Errorf("payload %s missing %s", s, want)
		}
	}
}

func TestEncodeRejectsUnsupported(t *testing.T) {
	if _, err := Encode(make(chan int)); err == nil {
		t.Fatal("expected error for channel payload")
	}
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	if err := p.Publish(context.Background(), ReservationCanceled, ReservationCanceledEvent{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
