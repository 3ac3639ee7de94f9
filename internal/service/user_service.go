// Package service provides business logic services for Clipstream.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/pkg/password"
	"github.com/prn-tf/clipstream/internal/repository"
)

// UserService handles account lookup and self-management operations.
type UserService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// List returns all registered users in registration order.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return users, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewDomainError(domain.ErrUserNotFound, "", strconv.FormatInt(id, 10))
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return user, nil
}

// ChangePasswordInput contains the data needed to change a password.
type ChangePasswordInput struct {
	// ActorID is the authenticated caller. Only the account owner may
	// change the password.
	ActorID int64

	// TargetID is the account whose password is being changed.
	TargetID int64

	NewPassword string
}

// ChangePassword replaces the password of an account. The caller must be
// the account owner; the new password must satisfy the account password
// policy, with every violated rule reported together.
func (s *UserService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if !domain.IsOwner(input.ActorID, input.TargetID) {
		return ErrForbidden
	}

	if problems := password.Validate(input.NewPassword); len(problems) > 0 {
		return &WeakPasswordError{Problems: problems}
	}

	newHash, err := password.Hash(input.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	if err := s.userRepo.UpdatePassword(ctx, input.TargetID, newHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error().Err(err).Int64("user_id", input.TargetID).Msg("failed to update password")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("user_id", input.TargetID).Msg("password updated")
	return nil
}

// Delete removes an account. The caller must be the account owner.
// Videos owned by the account are removed with it.
func (s *UserService) Delete(ctx context.Context, actorID, targetID int64) error {
	if !domain.IsOwner(actorID, targetID) {
		return ErrForbidden
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error().Err(err).Int64("user_id", targetID).Msg("failed to delete user")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("user_id", targetID).Msg("user deleted")
	return nil
}
