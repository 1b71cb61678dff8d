package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Journal mutation event subjects
const (
	SubjectTradeCreated     = "journal.trades.created"
	SubjectTradeUpdated     = "journal.trades.updated"
	SubjectTradeDeleted     = "journal.trades.deleted"
	SubjectOptionsChanged   = "journal.options.changed"
	SubjectOptionsReordered = "journal.options.reordered"
)

// Event is the envelope published for every journal mutation
type Event struct {
	Subject   string    `json:"subject"`
	UserID    uuid.UUID `json:"user_id"`
	EntityID  string    `json:"entity_id,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits journal mutation events. Publishing is best effort: a
// failed publish is logged, never surfaced to the request that caused it.
type Publisher interface {
	Publish(event Event)
	Close()
}

// natsPublisher publishes events over a NATS connection
type natsPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to NATS and returns a publisher
func NewNATSPublisher(url string) (Publisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &natsPublisher{conn: conn}, nil
}

func (p *natsPublisher) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: failed to marshal event %s: %v", event.Subject, err)
		return
	}
	if err := p.conn.Publish(event.Subject, data); err != nil {
		log.Printf("events: failed to publish %s: %v", event.Subject, err)
	}
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}

// noopPublisher discards events. Used when NATS is not configured.
type noopPublisher struct{}

// NewNoopPublisher creates a publisher that drops every event
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(event Event) {}

func (noopPublisher) Close() {}
