package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyBooked = errors.New("member is already booked for this workout")
	ErrWorkoutFull   = errors.New("workout is fully booked")
	ErrNotBooked     = errors.New("member is not booked for this workout")
)

type workoutStore interface {
	Create(ctx context.Context, input repository.CreateWorkoutInput) (*models.Workout, error)
	GetByID(ctx context.Context, workoutID int64) (*models.Workout, error)
	Delete(ctx context.Context, workoutID int64) (bool, error)
	ListWithOccupancy(ctx context.Context) ([]models.Workout, []int, error)
	ListByAttendee(ctx context.Context, memberID int64, day time.Time) ([]models.Workout, []int, error)
	ListAttendees(ctx context.Context, workoutID int64) ([]int64, error)
	RemoveAttendee(ctx context.Context, workoutID, memberID int64) (bool, error)
}

type BookingService struct {
	db          *pgxpool.Pool
	workoutRepo workoutStore
	events      EventPublisher
	timeout     time.Duration
}

func NewBookingService(
	db *pgxpool.Pool,
	workoutRepo *repository.WorkoutRepository,
	events EventPublisher,
	timeout time.Duration,
) *BookingService {
	return &BookingService{
		db:          db,
		workoutRepo: workoutRepo,
		events:      events,
		timeout:     timeout,
	}
}

type CreateWorkoutInput struct {
	Title       string
	Instructor  string
	ScheduledOn time.Time
	StartTime   string
	Capacity    int
}

func (s *BookingService) ListWorkouts(ctx context.Context) ([]models.WorkoutDetail, error) {
	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	workouts, counts, err := s.workoutRepo.ListWithOccupancy(ctx)
	if err != nil {
		return nil, err
	}
	return buildWorkoutDetails(workouts, counts), nil
}

func (s *BookingService) ListMemberBookings(ctx context.Context, memberID int64, day time.Time) ([]models.WorkoutDetail, error) {
	if memberID <= 0 {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	workouts, counts, err := s.workoutRepo.ListByAttendee(ctx, memberID, day)
	if err != nil {
		return nil, err
	}
	return buildWorkoutDetails(workouts, counts), nil
}

// Book seats memberID in the workout. The duplicate check, the capacity
// check and the append run inside one transaction under an advisory lock
// keyed by the workout id, so two near-simultaneous bookings of the last
// open seat cannot both succeed.
func (s *BookingService) Book(ctx context.Context, workoutID, memberID int64) (*models.WorkoutDetail, error) {
	if workoutID <= 0 || memberID <= 0 {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txWorkoutRepo := repository.NewWorkoutRepository(tx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", workoutID); err != nil {
		return nil, err
	}

	workout, err := txWorkoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	attending, err := txWorkoutRepo.IsAttending(ctx, workoutID, memberID)
	if err != nil {
		return nil, err
	}
	if attending {
		return nil, ErrAlreadyBooked
	}

	count, err := txWorkoutRepo.CountAttendees(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if count >= workout.Capacity {
		return nil, ErrWorkoutFull
	}

	if err := txWorkoutRepo.AddAttendee(ctx, workoutID, memberID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publish(EventBookingChanged, workoutID)
	return s.workoutDetail(ctx, workout)
}

func (s *BookingService) Cancel(ctx context.Context, workoutID, memberID int64) (*models.WorkoutDetail, error) {
	if workoutID <= 0 || memberID <= 0 {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	removed, err := s.workoutRepo.RemoveAttendee(ctx, workoutID, memberID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNotBooked
	}

	s.publish(EventBookingChanged, workoutID)
	return s.workoutDetail(ctx, workout)
}

func (s *BookingService) CreateWorkout(ctx context.Context, input CreateWorkoutInput) (*models.WorkoutDetail, error) {
	title := strings.TrimSpace(input.Title)
	instructor := strings.TrimSpace(input.Instructor)
	startTime := strings.TrimSpace(input.StartTime)
	if title == "" || instructor == "" || startTime == "" || input.ScheduledOn.IsZero() {
		return nil, ErrInvalidInput
	}
	if input.Capacity <= 0 {
		return nil, ErrInvalidInput
	}
	// Stored as zero-padded HH:MM so listings sort by the text column in
	// clock order.
	parsedStart, err := time.Parse("15:04", startTime)
	if err != nil {
		return nil, ErrInvalidInput
	}
	startTime = parsedStart.Format("15:04")

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	workout, err := s.workoutRepo.Create(ctx, repository.CreateWorkoutInput{
		Title:       title,
		Instructor:  instructor,
		ScheduledOn: input.ScheduledOn,
		StartTime:   startTime,
		Capacity:    input.Capacity,
	})
	if err != nil {
		return nil, err
	}

	s.publish(EventWorkoutCreated, workout.ID)
	return &models.WorkoutDetail{
		Workout:        *workout,
		AvailableSpots: workout.Capacity,
		Attendees:      []int64{},
	}, nil
}

func (s *BookingService) DeleteWorkout(ctx context.Context, workoutID int64) error {
	if workoutID <= 0 {
		return ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	deleted, err := s.workoutRepo.Delete(ctx, workoutID)
	if err != nil {
		return err
	}
	if !deleted {
		return pgx.ErrNoRows
	}

	s.publish(EventWorkoutDeleted, workoutID)
	return nil
}

func (s *BookingService) workoutDetail(ctx context.Context, workout *models.Workout) (*models.WorkoutDetail, error) {
	attendees, err := s.workoutRepo.ListAttendees(ctx, workout.ID)
	if err != nil {
		return nil, err
	}
	detail := &models.WorkoutDetail{
		Workout:        *workout,
		AttendeeCount:  len(attendees),
		AvailableSpots: availableSpots(workout.Capacity, len(attendees)),
		Attendees:      attendees,
	}
	return detail, nil
}

func (s *BookingService) publish(eventType string, entityID int64) {
	if s.events == nil {
		return
	}
	s.events.Publish(Event{Type: eventType, EntityID: entityID, OccurredAt: time.Now().UTC()})
}

func buildWorkoutDetails(workouts []models.Workout, counts []int) []models.WorkoutDetail {
	details := make([]models.WorkoutDetail, 0, len(workouts))
	for i, workout := range workouts {
		details = append(details, models.WorkoutDetail{
			Workout:        workout,
			AttendeeCount:  counts[i],
			AvailableSpots: availableSpots(workout.Capacity, counts[i]),
		})
	}
	return details
}

func availableSpots(capacity, attendeeCount int) int {
	spots := capacity - attendeeCount
	if spots < 0 {
		spots = 0
	}
	return spots
}
