package events

import (
	"time"

	"github.com/google/uuid"
)

// Type тип доменного события, используется как routing key
type Type string

const (
	RequestSubmitted Type = "request.submitted"
	RequestConfirmed Type = "request.confirmed"
	RequestRefused   Type = "request.refused"
	RequestCancelled Type = "request.cancelled"

	InterventionCreated    Type = "intervention.created"
	InterventionStarted    Type = "intervention.started"
	InterventionCompleted  Type = "intervention.completed"
	InterventionCancelled  Type = "intervention.cancelled"
	InterventionReassigned Type = "intervention.reassigned"

	StockLow Type = "stock.low"
)

// Event доменное событие, публикуемое после фиксации транзакции
type Event struct {
	ID            uuid.UUID   `json:"id"`
	Type          Type        `json:"type"`
	AggregateID   int64       `json:"aggregate_id"`
	OccurredAt    time.Time   `json:"occurred_at"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Payload       interface{} `json:"payload,omitempty"`
}

// New создает событие с новым идентификатором
func New(eventType Type, aggregateID int64, payload interface{}) Event {
	return Event{
		ID:          uuid.New(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}
