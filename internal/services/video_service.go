package services

import (
	"context"
	"strings"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/elif-d/StudioFitBack/internal/repository"
	"github.com/jackc/pgx/v5"
)

type videoStore interface {
	Create(ctx context.Context, input repository.CreateVideoInput) (*models.Video, error)
	GetByID(ctx context.Context, videoID int64) (*models.Video, error)
	Delete(ctx context.Context, videoID int64) (bool, error)
	List(ctx context.Context, memberID int64) ([]models.VideoDetail, error)
	ListLovedBy(ctx context.Context, memberID int64) ([]models.VideoDetail, error)
	AddLove(ctx context.Context, videoID, memberID int64) (bool, error)
	RemoveLove(ctx context.Context, videoID, memberID int64) (bool, error)
	CountLoves(ctx context.Context, videoID int64) (int, error)
}

type VideoService struct {
	videoRepo videoStore
	timeout   time.Duration
}

func NewVideoService(videoRepo *repository.VideoRepository, timeout time.Duration) *VideoService {
	return &VideoService{videoRepo: videoRepo, timeout: timeout}
}

type CreateVideoInput struct {
	Title    string
	MediaRef string
}

func (s *VideoService) ListVideos(ctx context.Context, memberID int64) ([]models.VideoDetail, error) {
	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	return s.videoRepo.List(ctx, memberID)
}

func (s *VideoService) ListLoved(ctx context.Context, memberID int64) ([]models.VideoDetail, error) {
	if memberID <= 0 {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	return s.videoRepo.ListLovedBy(ctx, memberID)
}

func (s *VideoService) CreateVideo(ctx context.Context, input CreateVideoInput) (*models.Video, error) {
	title := strings.TrimSpace(input.Title)
	mediaRef := strings.TrimSpace(input.MediaRef)
	if title == "" || mediaRef == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	return s.videoRepo.Create(ctx, repository.CreateVideoInput{Title: title, MediaRef: mediaRef})
}

func (s *VideoService) DeleteVideo(ctx context.Context, videoID int64) error {
	if videoID <= 0 {
		return ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	deleted, err := s.videoRepo.Delete(ctx, videoID)
	if err != nil {
		return err
	}
	if !deleted {
		return pgx.ErrNoRows
	}
	return nil
}

// ToggleLove flips the member's loved mark: remove if present, add if
// absent. Each arm is a single conditional statement, so concurrent toggles
// cannot corrupt the loved set. Returns the resulting state. Retrying a
// timed-out toggle can invert state twice; clients that need idempotent
// retries should use SetLove instead.
func (s *VideoService) ToggleLove(ctx context.Context, videoID, memberID int64) (bool, int, error) {
	if videoID <= 0 || memberID <= 0 {
		return false, 0, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return false, 0, err
	}

	removed, err := s.videoRepo.RemoveLove(ctx, videoID, memberID)
	if err != nil {
		return false, 0, err
	}

	loved := false
	if !removed {
		if _, err := s.videoRepo.AddLove(ctx, videoID, memberID); err != nil {
			return false, 0, err
		}
		loved = true
	}

	count, err := s.videoRepo.CountLoves(ctx, videoID)
	if err != nil {
		return false, 0, err
	}
	return loved, count, nil
}

// SetLove writes the loved mark to an explicit value. Idempotent under
// retry.
func (s *VideoService) SetLove(ctx context.Context, videoID, memberID int64, loved bool) (bool, int, error) {
	if videoID <= 0 || memberID <= 0 {
		return false, 0, ErrInvalidInput
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return false, 0, err
	}

	if loved {
		if _, err := s.videoRepo.AddLove(ctx, videoID, memberID); err != nil {
			return false, 0, err
		}
	} else {
		if _, err := s.videoRepo.RemoveLove(ctx, videoID, memberID); err != nil {
			return false, 0, err
		}
	}

	count, err := s.videoRepo.CountLoves(ctx, videoID)
	if err != nil {
		return false, 0, err
	}
	return loved, count, nil
}
