package events

import (
	"context"
	"fmt"
	"time"

	"github.com/diagnosis/place-reservations/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("place-reservations"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := Encode(data)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx).Str("subject", subject).RawJSON("data", payload).Msg("publishing event")
	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	return n.conn.Drain()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }

func Encode(data interface{}) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return payload, nil
}

const (
	ReservationCreated  = "reservation.created"
	ReservationCanceled = "reservation.canceled"
)

type ReservationCreatedEvent struct {
	ReservationID string    `json:"reservation_id"`
	PlaceID       string    `json:"placeid"`
	Uname         string    `json:"uname"`
	DateTime      time.Time `json:"datetime"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReservationCanceledEvent struct {
	ReservationID string    `json:"reservation_id"`
	CanceledBy    string    `json:"canceled_by"`
	CanceledAt    time.Time `json:"canceled_at"`
}
