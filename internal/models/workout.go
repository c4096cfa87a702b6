package models

import "time"

type Workout struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Instructor  string    `json:"instructor"`
	ScheduledOn time.Time `json:"scheduled_on"`
	StartTime   string    `json:"start_time"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkoutDetail is a workout plus its derived occupancy. AvailableSpots is
// always recomputed from capacity - attendee count, never stored.
type WorkoutDetail struct {
	Workout
	AttendeeCount  int     `json:"attendee_count"`
	AvailableSpots int     `json:"available_spots"`
	Attendees      []int64 `json:"attendees,omitempty"`
}
