package repository

import (
	"context"

	"github.com/elif-d/StudioFitBack/internal/models"
)

type CreateVideoInput struct {
	Title    string
	MediaRef string
}

type VideoRepository struct {
	db DBTX
}

func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, input CreateVideoInput) (*models.Video, error) {
	query := `
		INSERT INTO videos (title, media_ref)
		VALUES ($1, $2)
		RETURNING id, title, media_ref, created_at
	`

	var video models.Video
	err := r.db.QueryRow(ctx, query, input.Title, input.MediaRef).Scan(
		&video.ID,
		&video.Title,
		&video.MediaRef,
		&video.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) GetByID(ctx context.Context, videoID int64) (*models.Video, error) {
	query := `
		SELECT id, title, media_ref, created_at
		FROM videos
		WHERE id = $1
	`
	var video models.Video
	err := r.db.QueryRow(ctx, query, videoID).Scan(
		&video.ID,
		&video.Title,
		&video.MediaRef,
		&video.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) Delete(ctx context.Context, videoID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, videoID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List returns every video with its love count and whether memberID has
// loved it.
func (r *VideoRepository) List(ctx context.Context, memberID int64) ([]models.VideoDetail, error) {
	query := `
		SELECT v.id, v.title, v.media_ref, v.created_at,
		       COUNT(l.member_id),
		       BOOL_OR(l.member_id = $1) IS TRUE
		FROM videos v
		LEFT JOIN video_loves l ON l.video_id = v.id
		GROUP BY v.id
		ORDER BY v.created_at DESC, v.id DESC
	`
	return r.scanDetailRows(ctx, query, memberID)
}

func (r *VideoRepository) ListLovedBy(ctx context.Context, memberID int64) ([]models.VideoDetail, error) {
	query := `
		SELECT v.id, v.title, v.media_ref, v.created_at,
		       (SELECT COUNT(*) FROM video_loves o WHERE o.video_id = v.id),
		       TRUE
		FROM videos v
		JOIN video_loves l ON l.video_id = v.id AND l.member_id = $1
		ORDER BY v.created_at DESC, v.id DESC
	`
	return r.scanDetailRows(ctx, query, memberID)
}

func (r *VideoRepository) scanDetailRows(ctx context.Context, query string, args ...any) ([]models.VideoDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := make([]models.VideoDetail, 0)
	for rows.Next() {
		var detail models.VideoDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.Title,
			&detail.MediaRef,
			&detail.CreatedAt,
			&detail.LoveCount,
			&detail.Loved,
		); err != nil {
			return nil, err
		}
		videos = append(videos, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return videos, nil
}

// AddLove inserts the (video, member) mark only if absent. Returns whether a
// row was written, so callers can tell "now loved" from "was already loved"
// in one statement.
func (r *VideoRepository) AddLove(ctx context.Context, videoID, memberID int64) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`INSERT INTO video_loves (video_id, member_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		videoID,
		memberID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *VideoRepository) RemoveLove(ctx context.Context, videoID, memberID int64) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM video_loves WHERE video_id = $1 AND member_id = $2`,
		videoID,
		memberID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *VideoRepository) CountLoves(ctx context.Context, videoID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM video_loves WHERE video_id = $1`,
		videoID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
