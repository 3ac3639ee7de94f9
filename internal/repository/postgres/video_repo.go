package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/repository"
)

// videoRepository implements repository.VideoRepository for PostgreSQL.
type videoRepository struct {
	db *DB
}

// NewVideoRepository creates a new PostgreSQL video repository.
func NewVideoRepository(db *DB) repository.VideoRepository {
	return &videoRepository{db: db}
}

const videoColumns = `id, owner_id, title, description, credits, is_private, likes, uploaded_at`

func scanVideoRow(row pgx.Row) (*domain.Video, error) {
	video := &domain.Video{}
	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.Credits,
		&video.IsPrivate,
		&video.Likes,
		&video.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// Create creates a new video.
func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, title, description, credits, is_private, likes, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.Credits,
		video.IsPrivate,
		video.Likes,
		video.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by ID regardless of visibility.
func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	video, err := scanVideoRow(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}
	return video, nil
}

// ListVisible returns all public videos plus the viewer's own private ones.
func (r *videoRepository) ListVisible(ctx context.Context, viewerID int64, opts repository.ListOptions) ([]*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE is_private = FALSE`
	args := []any{}
	if viewerID != 0 {
		query = `SELECT ` + videoColumns + ` FROM videos WHERE is_private = FALSE OR owner_id = $1`
		args = append(args, viewerID)
	}
	query += orderClause(opts)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*domain.Video
	for rows.Next() {
		video, err := scanVideoRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}

	return videos, nil
}

// orderClause builds the ORDER BY clause from a whitelist of sort keys.
func orderClause(opts repository.ListOptions) string {
	var column string
	switch opts.SortBy {
	case repository.SortByLikes:
		column = "likes"
	case repository.SortByTitle:
		column = "title"
	default:
		return ""
	}
	direction := "ASC"
	if opts.Descending {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

// Update persists mutable video fields. Owner and like count are untouched.
func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	query := `
		UPDATE videos
		SET title = $1, description = $2, credits = $3, is_private = $4
		WHERE id = $5
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		video.Title,
		video.Description,
		video.Credits,
		video.IsPrivate,
		video.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete deletes a video by ID.
func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddLike atomically increments the like counter.
func (r *videoRepository) AddLike(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	query := `
		UPDATE videos SET likes = likes + 1
		WHERE id = $1
		RETURNING ` + videoColumns

	video, err := scanVideoRow(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to add like: %w", err)
	}
	return video, nil
}

// RemoveLike atomically decrements the like counter, never below zero.
func (r *videoRepository) RemoveLike(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	// GREATEST keeps the decrement and the floor in one atomic statement.
	query := `
		UPDATE videos SET likes = GREATEST(likes - 1, 0)
		WHERE id = $1
		RETURNING ` + videoColumns

	video, err := scanVideoRow(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to remove like: %w", err)
	}
	return video, nil
}
