package entity

import "time"

// EventStatus is the lifecycle label of an event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

// Event is a school calendar entry.
type Event struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title" validate:"required,max=200"`
	Date        string      `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Description string      `json:"description" yaml:"description" validate:"max=5000"`
	Category    string      `json:"category" yaml:"category" validate:"required,max=100"`
	Status      EventStatus `json:"status" yaml:"status" validate:"required,oneof=upcoming ongoing completed"`
}

// RecordID returns the event identifier.
func (e Event) RecordID() string { return e.ID }

// Stamp assigns the identifier. The event date is chosen by the author and is
// kept as submitted.
func (e Event) Stamp(id string, _ time.Time) Event {
	e.ID = id
	return e
}
