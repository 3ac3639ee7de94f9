// Package service provides business logic services for Clipstream.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/repository"
)

// VideoService handles video metadata operations: creation, listing with
// visibility rules, owner-only mutation and the like counter.
type VideoService struct {
	videoRepo repository.VideoRepository
	logger    zerolog.Logger
}

// NewVideoService creates a new VideoService.
func NewVideoService(videoRepo repository.VideoRepository, logger zerolog.Logger) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		logger:    logger.With().Str("service", "video").Logger(),
	}
}

// CreateVideoInput contains the data needed to register a video.
type CreateVideoInput struct {
	// OwnerID is the authenticated uploader. Must be non-zero.
	OwnerID int64

	Title       string
	Description string
	Credits     *string
	IsPrivate   bool
}

// Create registers new video metadata owned by the caller.
func (s *VideoService) Create(ctx context.Context, input CreateVideoInput) (*domain.Video, error) {
	if input.OwnerID == 0 {
		return nil, ErrNotAuthenticated
	}
	if err := domain.ValidateTitle(input.Title); err != nil {
		return nil, ErrInvalidTitle
	}

	video := domain.NewVideo(input.OwnerID, input.Title, input.Description)
	video.Credits = input.Credits
	video.IsPrivate = input.IsPrivate

	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", input.OwnerID).Msg("failed to create video")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("video_id", video.ID.String()).
		Int64("owner_id", video.OwnerID).
		Bool("is_private", video.IsPrivate).
		Msg("video created")

	return video, nil
}

// Get retrieves a single video for the given viewer. A private video that
// exists but belongs to someone else yields ErrForbidden, distinct from
// ErrVideoNotFound, so the owner of a URL can tell the two apart.
func (s *VideoService) Get(ctx context.Context, viewerID int64, id uuid.UUID) (*domain.Video, error) {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.VisibleTo(viewerID) {
		return nil, ErrForbidden
	}
	return video, nil
}

// List returns the videos visible to the viewer: every public video plus,
// for an authenticated viewer, their own private ones.
func (s *VideoService) List(ctx context.Context, viewerID int64, opts repository.ListOptions) ([]*domain.Video, error) {
	videos, err := s.videoRepo.ListVisible(ctx, viewerID, opts)
	if err != nil {
		s.logger.Error().Err(err).Int64("viewer_id", viewerID).Msg("failed to list videos")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return videos, nil
}

// UpdateVideoInput contains the mutable fields of a video. Nil pointers
// leave the corresponding field unchanged.
type UpdateVideoInput struct {
	ActorID int64
	ID      uuid.UUID

	Title       *string
	Description *string
	Credits     *string
	IsPrivate   *bool
}

// Update modifies video metadata. Only the owner may update; a non-owner
// with a valid identity gets ErrForbidden even for private videos, so the
// response does not leak whether the video exists beyond what Get reveals.
func (s *VideoService) Update(ctx context.Context, input UpdateVideoInput) (*domain.Video, error) {
	if input.ActorID == 0 {
		return nil, ErrNotAuthenticated
	}

	video, err := s.getVideo(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !domain.IsOwner(input.ActorID, video.OwnerID) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		if err := domain.ValidateTitle(*input.Title); err != nil {
			return nil, ErrInvalidTitle
		}
		video.Title = *input.Title
	}
	if input.Description != nil {
		video.Description = *input.Description
	}
	if input.Credits != nil {
		video.Credits = input.Credits
	}
	if input.IsPrivate != nil {
		video.IsPrivate = *input.IsPrivate
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		s.logger.Error().Err(err).Str("video_id", input.ID.String()).Msg("failed to update video")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("video_id", video.ID.String()).Msg("video updated")
	return video, nil
}

// Delete removes a video. Only the owner may delete.
func (s *VideoService) Delete(ctx context.Context, actorID int64, id uuid.UUID) error {
	if actorID == 0 {
		return ErrNotAuthenticated
	}

	video, err := s.getVideo(ctx, id)
	if err != nil {
		return err
	}
	if !domain.IsOwner(actorID, video.OwnerID) {
		return ErrForbidden
	}

	if err := s.videoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		s.logger.Error().Err(err).Str("video_id", id.String()).Msg("failed to delete video")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("video_id", id.String()).Msg("video deleted")
	return nil
}

// Like increments the like counter and returns the updated video.
// Likes are anonymous: no identity is required and repeat likes from the
// same caller all count.
func (s *VideoService) Like(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.AddLike(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		s.logger.Error().Err(err).Str("video_id", id.String()).Msg("failed to add like")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return video, nil
}

// Unlike decrements the like counter, never below zero, and returns the
// updated video.
func (s *VideoService) Unlike(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.RemoveLike(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		s.logger.Error().Err(err).Str("video_id", id.String()).Msg("failed to remove like")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return video, nil
}

// getVideo fetches a video, mapping the repository sentinel to the
// domain sentinel with the requested ID attached.
func (s *VideoService) getVideo(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewDomainError(domain.ErrVideoNotFound, "", id.String())
		}
		s.logger.Error().Err(err).Str("video_id", id.String()).Msg("failed to get video")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return video, nil
}
