// Package repository defines data access interfaces for Clipstream.
// These interfaces abstract database operations, allowing for different
// implementations (SQLite, PostgreSQL, in-memory for testing) while keeping
// the service layer clean.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/prn-tf/clipstream/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user. The implementation must enforce the
	// username and email unique constraints.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// Delete deletes a user by ID.
	Delete(ctx context.Context, id int64) error

	// List returns all users in registration order.
	List(ctx context.Context) ([]*domain.User, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// =============================================================================
// Video Repository
// =============================================================================

// VideoRepository defines the interface for video metadata access.
type VideoRepository interface {
	// Create creates a new video.
	Create(ctx context.Context, video *domain.Video) error

	// GetByID retrieves a video by ID regardless of visibility.
	// Visibility decisions belong to the service layer.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)

	// ListVisible returns videos visible to the given viewer: all public
	// videos plus, when viewerID is non-zero, that viewer's private videos.
	ListVisible(ctx context.Context, viewerID int64, opts ListOptions) ([]*domain.Video, error)

	// Update persists mutable video fields (title, description, credits,
	// privacy). Owner and like count are not touched.
	Update(ctx context.Context, video *domain.Video) error

	// Delete deletes a video by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddLike atomically increments the like counter and returns the
	// updated video.
	AddLike(ctx context.Context, id uuid.UUID) (*domain.Video, error)

	// RemoveLike atomically decrements the like counter, never below zero,
	// and returns the updated video.
	RemoveLike(ctx context.Context, id uuid.UUID) (*domain.Video, error)
}

// =============================================================================
// Common Types
// =============================================================================

// SortField selects the video list sort key.
type SortField string

const (
	// SortNone preserves the storage's natural order.
	SortNone SortField = ""

	// SortByLikes orders by like count.
	SortByLikes SortField = "likes"

	// SortByTitle orders by title.
	SortByTitle SortField = "title"
)

// ParseSortField maps a client-supplied sort key to a SortField.
// Unknown keys fall back to the natural order.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByLikes:
		return SortByLikes
	case SortByTitle:
		return SortByTitle
	default:
		return SortNone
	}
}

// ListOptions contains the sorting options for video listings.
type ListOptions struct {
	// SortBy specifies the sort key. SortNone keeps storage order.
	SortBy SortField

	// Descending specifies descending order if true.
	Descending bool
}
