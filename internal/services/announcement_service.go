package services

import (
	"context"
	"strings"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/repository"
	"github.com/jackc/pgx/v5"
)

type announcementStore interface {
	Create(ctx context.Context, message string) (*models.Announcement, error)
	GetByID(ctx context.Context, announcementID int64) (*models.Announcement, error)
	List(ctx context.Context, offset, limit int) ([]models.Announcement, int, error)
	Update(ctx context.Context, announcementID int64, message string) (*models.Announcement, error)
	Delete(ctx context.Context, announcementID int64) (bool, error)
}

type AnnouncementService struct {
	announcementRepo announcementStore
	events           EventPublisher
	timeout          time.Duration
}

func NewAnnouncementService(
	announcementRepo *repository.AnnouncementRepository,
	events EventPublisher,
	timeout time.Duration,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		events:           events,
		timeout:          timeout,
	}
}

func (s *AnnouncementService) Create(ctx context.Context, message string) (*models.Announcement, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	announcement, err := s.announcementRepo.Create(ctx, message)
	if err != nil {
		return nil, err
	}

	s.publish(EventAnnouncementCreated, announcement.ID)
	return announcement, nil
}

func (s *AnnouncementService) Get(ctx context.Context, announcementID int64) (*models.Announcement, error) {
	if announcementID <= 0 {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	return s.announcementRepo.GetByID(ctx, announcementID)
}

// List returns announcements newest-first.
func (s *AnnouncementService) List(ctx context.Context, offset, limit int) ([]models.Announcement, int, error) {
	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	return s.announcementRepo.List(ctx, offset, limit)
}

func (s *AnnouncementService) Update(ctx context.Context, announcementID int64, message string) (*models.Announcement, error) {
	message = strings.TrimSpace(message)
	if announcementID <= 0 || message == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	announcement, err := s.announcementRepo.Update(ctx, announcementID, message)
	if err != nil {
		return nil, err
	}

	s.publish(EventAnnouncementUpdated, announcement.ID)
	return announcement, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, announcementID int64) error {
	if announcementID <= 0 {
		return ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	deleted, err := s.announcementRepo.Delete(ctx, announcementID)
	if err != nil {
		return err
	}
	if !deleted {
		return pgx.ErrNoRows
	}

	s.publish(EventAnnouncementDeleted, announcementID)
	return nil
}

func (s *AnnouncementService) publish(eventType string, entityID int64) {
	if s.events == nil {
		return
	}
	s.events.Publish(Event{Type: eventType, EntityID: entityID, OccurredAt: time.Now().UTC()})
}
