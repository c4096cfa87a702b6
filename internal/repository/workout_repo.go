package repository

import (
	"context"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
)

type CreateWorkoutInput struct {
	Title       string
	Instructor  string
	ScheduledOn time.Time
	StartTime   string
	Capacity    int
}

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, input CreateWorkoutInput) (*models.Workout, error) {
	query := `
		INSERT INTO workouts (title, instructor, scheduled_on, start_time, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, instructor, scheduled_on, start_time, capacity, created_at, updated_at
	`

	var workout models.Workout
	err := r.db.QueryRow(
		ctx,
		query,
		input.Title,
		input.Instructor,
		input.ScheduledOn,
		input.StartTime,
		input.Capacity,
	).Scan(
		&workout.ID,
		&workout.Title,
		&workout.Instructor,
		&workout.ScheduledOn,
		&workout.StartTime,
		&workout.Capacity,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, workoutID int64) (*models.Workout, error) {
	query := `
		SELECT id, title, instructor, scheduled_on, start_time, capacity, created_at, updated_at
		FROM workouts
		WHERE id = $1
	`
	var workout models.Workout
	err := r.db.QueryRow(ctx, query, workoutID).Scan(
		&workout.ID,
		&workout.Title,
		&workout.Instructor,
		&workout.ScheduledOn,
		&workout.StartTime,
		&workout.Capacity,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, workoutID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, workoutID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListWithOccupancy returns every workout with its current attendee count,
// ordered ascending by calendar slot.
func (r *WorkoutRepository) ListWithOccupancy(ctx context.Context) ([]models.Workout, []int, error) {
	query := `
		SELECT w.id, w.title, w.instructor, w.scheduled_on, w.start_time, w.capacity, w.created_at, w.updated_at,
		       COUNT(a.member_id)
		FROM workouts w
		LEFT JOIN workout_attendees a ON a.workout_id = w.id
		GROUP BY w.id
		ORDER BY w.scheduled_on ASC, w.start_time ASC, w.id ASC
	`
	return r.scanOccupancyRows(ctx, query)
}

// ListByAttendee returns the workouts whose attendee set contains memberID.
// A non-zero day restricts results to that calendar day.
func (r *WorkoutRepository) ListByAttendee(ctx context.Context, memberID int64, day time.Time) ([]models.Workout, []int, error) {
	query := `
		SELECT w.id, w.title, w.instructor, w.scheduled_on, w.start_time, w.capacity, w.created_at, w.updated_at,
		       (SELECT COUNT(*) FROM workout_attendees o WHERE o.workout_id = w.id)
		FROM workouts w
		JOIN workout_attendees a ON a.workout_id = w.id AND a.member_id = $1
	`
	args := []any{memberID}
	if !day.IsZero() {
		query += ` WHERE w.scheduled_on >= $2 AND w.scheduled_on < $3`
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		args = append(args, dayStart, dayStart.AddDate(0, 0, 1))
	}
	query += ` ORDER BY w.scheduled_on ASC, w.start_time ASC, w.id ASC`

	return r.scanOccupancyRows(ctx, query, args...)
}

func (r *WorkoutRepository) scanOccupancyRows(ctx context.Context, query string, args ...any) ([]models.Workout, []int, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	counts := make([]int, 0)
	for rows.Next() {
		var workout models.Workout
		var count int
		if err := rows.Scan(
			&workout.ID,
			&workout.Title,
			&workout.Instructor,
			&workout.ScheduledOn,
			&workout.StartTime,
			&workout.Capacity,
			&workout.CreatedAt,
			&workout.UpdatedAt,
			&count,
		); err != nil {
			return nil, nil, err
		}
		workouts = append(workouts, workout)
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return workouts, counts, nil
}

func (r *WorkoutRepository) CountAttendees(ctx context.Context, workoutID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout_attendees WHERE workout_id = $1`,
		workoutID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *WorkoutRepository) IsAttending(ctx context.Context, workoutID, memberID int64) (bool, error) {
	var attending bool
	err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM workout_attendees WHERE workout_id = $1 AND member_id = $2)`,
		workoutID,
		memberID,
	).Scan(&attending)
	if err != nil {
		return false, err
	}
	return attending, nil
}

func (r *WorkoutRepository) ListAttendees(ctx context.Context, workoutID int64) ([]int64, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT member_id FROM workout_attendees WHERE workout_id = $1 ORDER BY booked_at ASC, member_id ASC`,
		workoutID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]int64, 0)
	for rows.Next() {
		var memberID int64
		if err := rows.Scan(&memberID); err != nil {
			return nil, err
		}
		attendees = append(attendees, memberID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attendees, nil
}

func (r *WorkoutRepository) AddAttendee(ctx context.Context, workoutID, memberID int64) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO workout_attendees (workout_id, member_id) VALUES ($1, $2)`,
		workoutID,
		memberID,
	)
	return err
}

func (r *WorkoutRepository) RemoveAttendee(ctx context.Context, workoutID, memberID int64) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_attendees WHERE workout_id = $1 AND member_id = $2`,
		workoutID,
		memberID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
