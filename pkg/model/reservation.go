package model

import (
	"fmt"
	"time"
)

// Reservation is a confirmed (or about to be confirmed) booking of a meeting
// room for a single calendar day. Reservations are immutable once persisted;
// corrections are a delete followed by a new creation.
type Reservation struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Room      string    `json:"room_id" bson:"room_id" validate:"required,min=1,max=60"`
	Date      string    `json:"date" bson:"date" validate:"required"`
	StartTime string    `json:"start_time" bson:"start_time" validate:"required,clock"`
	EndTime   string    `json:"end_time" bson:"end_time" validate:"required,clock"`
	Area      string    `json:"area" bson:"area" validate:"required,min=1,max=100"`
	Attendees int       `json:"attendees" bson:"attendees" validate:"min=0,max=500"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// Conflict describes one existing reservation that blocks a candidate,
// shaped for end-user display.
type Conflict struct {
	ID        string `json:"id"`
	Area      string `json:"area"`
	TimeRange string `json:"time_range"`
}

// TimeRange renders the reservation's span as shown to users, e.g. "09:00 - 10:00".
func (r *Reservation) TimeRange() string {
	return fmt.Sprintf("%s - %s", r.StartTime, r.EndTime)
}
