package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// ListingSubmitted — новая заявка создана и ждёт модерации.
type ListingSubmitted struct {
	eventID    uuid.UUID
	listingID  uuid.UUID
	title      string
	occurredAt time.Time
}

func NewListingSubmitted(listingID uuid.UUID, title string) *ListingSubmitted {
	return &ListingSubmitted{
		eventID:    uuid.New(),
		listingID:  listingID,
		title:      title,
		occurredAt: time.Now(),
	}
}

func (e *ListingSubmitted) EventID() uuid.UUID     { return e.eventID }
func (e *ListingSubmitted) EventType() string      { return "ListingSubmitted" }
func (e *ListingSubmitted) AggregateID() uuid.UUID { return e.listingID }
func (e *ListingSubmitted) OccurredAt() time.Time  { return e.occurredAt }

func (e *ListingSubmitted) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID    uuid.UUID `json:"event_id"`
		ListingID  uuid.UUID `json:"listing_id"`
		Title      string    `json:"title"`
		OccurredAt time.Time `json:"occurred_at"`
	}{
		EventID:    e.eventID,
		ListingID:  e.listingID,
		Title:      e.title,
		OccurredAt: e.occurredAt,
	})
}

// ListingModerated — оператор сменил статус заявки.
type ListingModerated struct {
	eventID    uuid.UUID
	listingID  uuid.UUID
	from       Status
	to         Status
	reason     *string
	occurredAt time.Time
}

func NewListingModerated(listingID uuid.UUID, from, to Status, reason *string) *ListingModerated {
	return &ListingModerated{
		eventID:    uuid.New(),
		listingID:  listingID,
		from:       from,
		to:         to,
		reason:     reason,
		occurredAt: time.Now(),
	}
}

func (e *ListingModerated) EventID() uuid.UUID     { return e.eventID }
func (e *ListingModerated) EventType() string      { return "ListingModerated" }
func (e *ListingModerated) AggregateID() uuid.UUID { return e.listingID }
func (e *ListingModerated) OccurredAt() time.Time  { return e.occurredAt }

func (e *ListingModerated) From() Status    { return e.from }
func (e *ListingModerated) To() Status      { return e.to }
func (e *ListingModerated) Reason() *string { return e.reason }

func (e *ListingModerated) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID    uuid.UUID `json:"event_id"`
		ListingID  uuid.UUID `json:"listing_id"`
		From       Status    `json:"from"`
		To         Status    `json:"to"`
		Reason     *string   `json:"reason,omitempty"`
		OccurredAt time.Time `json:"occurred_at"`
	}{
		EventID:    e.eventID,
		ListingID:  e.listingID,
		From:       e.from,
		To:         e.to,
		Reason:     e.reason,
		OccurredAt: e.occurredAt,
	})
}
