package services

import (
	"context"
	"time"
)

// Mutation events pushed to connected clients so screens can refresh
// without polling.
const (
	EventWorkoutCreated      = "workout_created"
	EventWorkoutDeleted      = "workout_deleted"
	EventBookingChanged      = "booking_changed"
	EventAnnouncementCreated = "announcement_created"
	EventAnnouncementUpdated = "announcement_updated"
	EventAnnouncementDeleted = "announcement_deleted"
)

type Event struct {
	Type       string    `json:"type"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(event Event)
}

// withStorageTimeout bounds a storage round trip per the configured limit.
// A zero limit leaves the caller's context untouched.
func withStorageTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
