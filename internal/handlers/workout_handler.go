package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type WorkoutHandler struct {
	service bookingApplicationService
}

type bookingApplicationService interface {
	ListWorkouts(ctx context.Context) ([]models.WorkoutDetail, error)
	ListMemberBookings(ctx context.Context, memberID int64, day time.Time) ([]models.WorkoutDetail, error)
	Book(ctx context.Context, workoutID, memberID int64) (*models.WorkoutDetail, error)
	Cancel(ctx context.Context, workoutID, memberID int64) (*models.WorkoutDetail, error)
	CreateWorkout(ctx context.Context, input services.CreateWorkoutInput) (*models.WorkoutDetail, error)
	DeleteWorkout(ctx context.Context, workoutID int64) error
}

func NewWorkoutHandler(service *services.BookingService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

type createWorkoutRequest struct {
	Title      string `json:"title"`
	Instructor string `json:"instructor"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Capacity   int    `json:"capacity"`
}

func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	workouts, err := h.service.ListWorkouts(c.Context())
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *WorkoutHandler) CreateWorkout(c *fiber.Ctx) error {
	var req createWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	scheduledOn, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be a valid YYYY-MM-DD date"})
	}

	workout, err := h.service.CreateWorkout(c.Context(), services.CreateWorkoutInput{
		Title:       req.Title,
		Instructor:  req.Instructor,
		ScheduledOn: scheduledOn,
		StartTime:   req.Time,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) DeleteWorkout(c *fiber.Ctx) error {
	workoutID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	if err := h.service.DeleteWorkout(c.Context(), workoutID); err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Workout deleted"})
}

func (h *WorkoutHandler) Book(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	workout, err := h.service.Book(c.Context(), workoutID, memberID)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Successfully booked " + workout.Title,
		"workout": workout,
	})
}

func (h *WorkoutHandler) Cancel(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	workout, err := h.service.Cancel(c.Context(), workoutID, memberID)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Successfully cancelled booking for " + workout.Title,
		"workout": workout,
	})
}

func (h *WorkoutHandler) ListBookings(c *fiber.Ctx) error {
	memberID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var day time.Time
	if rawDate := strings.TrimSpace(c.Query("date")); rawDate != "" {
		day, err = time.Parse("2006-01-02", rawDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be a valid YYYY-MM-DD date"})
		}
	}

	bookings, err := h.service.ListMemberBookings(c.Context(), memberID, day)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

func mapBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrAlreadyBooked):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You are already booked for this workout"})
	case errors.Is(err, services.ErrWorkoutFull):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This workout is fully booked"})
	case errors.Is(err, services.ErrNotBooked):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You are not booked for this workout"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage is unavailable, try again shortly"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process workout request"})
	}
}
