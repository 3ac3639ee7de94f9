// Package service provides business logic services for Clipstream.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/clipstream/internal/auth"
	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/lock"
	"github.com/prn-tf/clipstream/internal/pkg/password"
	"github.com/prn-tf/clipstream/internal/repository"
)

// Signup lock parameters. The lock narrows the check-then-insert window
// when multiple instances race on the same name; the database unique
// indexes remain the source of truth.
const (
	signupLockTTL        = 10 * time.Second
	signupLockMaxRetries = 3
	signupLockRetryDelay = 50 * time.Millisecond
)

// AuthService handles account registration and credential authentication.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	locker   lock.Locker
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, locker lock.Locker, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		locker:   locker,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// SignupInput contains the data needed to register a new account.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// SignupOutput contains the result of a successful registration.
type SignupOutput struct {
	User  *domain.User
	Token string
}

// Signup registers a new account and returns the user with a fresh token.
// Validation reports every problem it finds: all violated password rules
// together, and both username and email conflicts together.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	if err := s.validateSignupInput(input); err != nil {
		return nil, err
	}

	if problems := password.Validate(input.Password); len(problems) > 0 {
		return nil, &WeakPasswordError{Problems: problems}
	}

	// Serialize concurrent signups for the same username/email.
	usernameKey := lock.Keys.SignupUsername(input.Username)
	emailKey := lock.Keys.SignupEmail(input.Email)

	acquired, err := s.locker.AcquireWithRetry(ctx, usernameKey, signupLockTTL, signupLockMaxRetries, signupLockRetryDelay)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to acquire signup lock")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if !acquired {
		return nil, &DuplicateFieldError{Fields: []string{"username"}}
	}
	defer s.locker.Release(ctx, usernameKey)

	acquired, err = s.locker.AcquireWithRetry(ctx, emailKey, signupLockTTL, signupLockMaxRetries, signupLockRetryDelay)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to acquire signup lock")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if !acquired {
		return nil, &DuplicateFieldError{Fields: []string{"email"}}
	}
	defer s.locker.Release(ctx, emailKey)

	// Check both unique fields before reporting so the client sees every
	// conflict in one response.
	var taken []string

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to check username existence")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if exists {
		taken = append(taken, "username")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to check email existence")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if exists {
		taken = append(taken, "email")
	}

	if len(taken) > 0 {
		return nil, &DuplicateFieldError{Fields: taken}
	}

	passwordHash, err := password.Hash(input.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	user := domain.NewUser(input.Username, input.Email, passwordHash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A racing insert on another node can still slip past the checks.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &DuplicateFieldError{Fields: []string{"username or email"}}
		}
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user registered")

	return &SignupOutput{User: user, Token: token}, nil
}

// LoginInput contains credentials for authentication. Login accepts the
// account's email or username in the single Login field.
type LoginInput struct {
	Login    string
	Password string
}

// LoginOutput contains the result of a successful login.
type LoginOutput struct {
	User  *domain.User
	Token string
}

// Login authenticates a user by email or username plus password and
// returns the user with a fresh token. An unknown identifier and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := s.lookupByLogin(ctx, input.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Log but don't expose whether the account exists.
			s.logger.Debug().Str("login", input.Login).Msg("unknown account during authentication")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("login", input.Login).Msg("failed to look up account")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	ok, err := password.Verify(input.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to verify password")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if !ok {
		s.logger.Debug().Str("login", input.Login).Msg("invalid password during authentication")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user authenticated")

	return &LoginOutput{User: user, Token: token}, nil
}

// lookupByLogin resolves a login identifier to an account, trying the
// email index first and falling back to username.
func (s *AuthService) lookupByLogin(ctx context.Context, login string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, login)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.userRepo.GetByUsername(ctx, login)
}

// validateSignupInput validates the structural fields of a signup request.
func (s *AuthService) validateSignupInput(input SignupInput) error {
	if len(input.Username) < 3 || len(input.Username) > 255 {
		return ErrInvalidUsername
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}
