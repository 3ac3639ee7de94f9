package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/repository"
)

// videoRepository implements repository.VideoRepository for SQLite.
type videoRepository struct {
	db *DB
}

// NewVideoRepository creates a new SQLite video repository.
func NewVideoRepository(db *DB) repository.VideoRepository {
	return &videoRepository{db: db}
}

const videoColumns = `id, owner_id, title, description, credits, is_private, likes, uploaded_at`

// scanVideo scans a video row from any single-row source.
func scanVideo(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Video, error) {
	video := &domain.Video{}
	var id string
	var credits sql.NullString
	var isPrivate int
	var uploadedAt string

	err := row.Scan(
		&id,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&credits,
		&isPrivate,
		&video.Likes,
		&uploadedAt,
	)
	if err != nil {
		return nil, err
	}

	video.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid video ID %q: %w", id, err)
	}
	if credits.Valid {
		video.Credits = &credits.String
	}
	video.IsPrivate = isPrivate != 0
	video.UploadedAt, err = time.Parse(time.RFC3339, uploadedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid uploaded_at %q: %w", uploadedAt, err)
	}

	return video, nil
}

// Create creates a new video.
func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, title, description, credits, is_private, likes, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var credits interface{}
	if video.Credits != nil {
		credits = *video.Credits
	}

	_, err := r.db.ExecContext(ctx, query,
		video.ID.String(),
		video.OwnerID,
		video.Title,
		video.Description,
		credits,
		boolToInt(video.IsPrivate),
		video.Likes,
		video.UploadedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by ID regardless of visibility.
func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = ?`

	video, err := scanVideo(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}
	return video, nil
}

// ListVisible returns all public videos plus the viewer's own private ones.
// A zero viewerID lists only public videos.
func (r *videoRepository) ListVisible(ctx context.Context, viewerID int64, opts repository.ListOptions) ([]*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE is_private = 0`
	args := []interface{}{}
	if viewerID != 0 {
		query = `SELECT ` + videoColumns + ` FROM videos WHERE is_private = 0 OR owner_id = ?`
		args = append(args, viewerID)
	}
	query += orderClause(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*domain.Video
	for rows.Next() {
		video, err := scanVideo(rows)
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
// Storage order (rowid) is kept when no sort key is given.
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
		SET title = ?, description = ?, credits = ?, is_private = ?
		WHERE id = ?
	`

	var credits interface{}
	if video.Credits != nil {
		credits = *video.Credits
	}

	result, err := r.db.ExecContext(ctx, query,
		video.Title,
		video.Description,
		credits,
		boolToInt(video.IsPrivate),
		video.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete deletes a video by ID.
func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddLike atomically increments the like counter.
func (r *videoRepository) AddLike(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE videos SET likes = likes + 1 WHERE id = ?`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to add like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, repository.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// RemoveLike atomically decrements the like counter, never below zero.
func (r *videoRepository) RemoveLike(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	// The likes > 0 guard keeps the decrement and the floor check in a
	// single atomic statement. Zero affected rows may mean either "not
	// found" or "already at zero", so existence is resolved by the fetch.
	_, err := r.db.ExecContext(ctx,
		`UPDATE videos SET likes = likes - 1 WHERE id = ? AND likes > 0`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to remove like: %w", err)
	}

	return r.GetByID(ctx, id)
}

// boolToInt converts a bool to a SQLite integer.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
