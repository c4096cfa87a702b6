package repository

import (
	"context"

	"github.com/elif-d/StudioFitBack/internal/models"
)

type AnnouncementRepository struct {
	db DBTX
}

func NewAnnouncementRepository(db DBTX) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, message string) (*models.Announcement, error) {
	query := `
		INSERT INTO announcements (message)
		VALUES ($1)
		RETURNING id, message, created_at, updated_at
	`

	var announcement models.Announcement
	err := r.db.QueryRow(ctx, query, message).Scan(
		&announcement.ID,
		&announcement.Message,
		&announcement.CreatedAt,
		&announcement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, announcementID int64) (*models.Announcement, error) {
	query := `
		SELECT id, message, created_at, updated_at
		FROM announcements
		WHERE id = $1
	`
	var announcement models.Announcement
	err := r.db.QueryRow(ctx, query, announcementID).Scan(
		&announcement.ID,
		&announcement.Message,
		&announcement.CreatedAt,
		&announcement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

// List returns announcements newest-first.
func (r *AnnouncementRepository) List(ctx context.Context, offset, limit int) ([]models.Announcement, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM announcements`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, message, created_at, updated_at
		FROM announcements
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	announcements := make([]models.Announcement, 0)
	for rows.Next() {
		var announcement models.Announcement
		if err := rows.Scan(
			&announcement.ID,
			&announcement.Message,
			&announcement.CreatedAt,
			&announcement.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		announcements = append(announcements, announcement)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, announcementID int64, message string) (*models.Announcement, error) {
	query := `
		UPDATE announcements
		SET message = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, message, created_at, updated_at
	`
	var announcement models.Announcement
	err := r.db.QueryRow(ctx, query, announcementID, message).Scan(
		&announcement.ID,
		&announcement.Message,
		&announcement.CreatedAt,
		&announcement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, announcementID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, announcementID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
