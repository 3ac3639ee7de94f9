package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/clipstream/internal/auth"
	"github.com/prn-tf/clipstream/internal/lock"
	"github.com/prn-tf/clipstream/internal/pkg/password"
)

func newAuthService(t *testing.T, repo *MockUserRepository) *AuthService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret", 2*time.Hour)
	require.NoError(t, err)
	return NewAuthService(repo, tokens, lock.NewNoOpLocker(), zerolog.Nop())
}

func TestAuthServiceSignup(t *testing.T) {
	repo := NewMockUserRepository()
	svc := newAuthService(t, repo)

	output, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Wonderland1",
	})
	require.NoError(t, err)
	require.NotZero(t, output.User.ID)
	require.NotEmpty(t, output.Token)
	require.NotEqual(t, "Wonderland1", output.User.PasswordHash)
}

func TestAuthServiceSignupWeakPassword(t *testing.T) {
	repo := NewMockUserRepository()
	svc := newAuthService(t, repo)

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrWeakPassword)

	// Every violated rule is reported, not just the first.
	var weak *WeakPasswordError
	require.ErrorAs(t, err, &weak)
	require.Len(t, weak.Problems, 3) // length, digit, uppercase
}

func TestAuthServiceSignupDuplicates(t *testing.T) {
	repo := NewMockUserRepository()
	svc := newAuthService(t, repo)

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Wonderland1",
	})
	require.NoError(t, err)

	// Same username and email: both conflicts reported together.
	_, err = svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Wonderland1",
	})
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	var dup *DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, []string{"username", "email"}, dup.Fields)

	// Only the email collides.
	_, err = svc.Signup(context.Background(), SignupInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "Wonderland1",
	})
	require.ErrorAs(t, err, &dup)
	require.Equal(t, []string{"email"}, dup.Fields)
}

func TestAuthServiceSignupInvalidInput(t *testing.T) {
	repo := NewMockUserRepository()
	svc := newAuthService(t, repo)

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "al",
		Email:    "alice@example.com",
		Password: "Wonderland1",
	})
	require.ErrorIs(t, err, ErrInvalidUsername)

	_, err = svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "not-an-email",
		Password: "Wonderland1",
	})
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestAuthServiceLogin(t *testing.T) {
	repo := NewMockUserRepository()
	svc := newAuthService(t, repo)

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Wonderland1",
	})
	require.NoError(t, err)

	// By username.
	output, err := svc.Login(context.Background(), LoginInput{Login: "alice", Password: "Wonderland1"})
	require.NoError(t, err)
	require.Equal(t, "alice", output.User.Username)
	require.NotEmpty(t, output.Token)

	// By email.
	output, err = svc.Login(context.Background(), LoginInput{Login: "alice@example.com", Password: "Wonderland1"})
	require.NoError(t, err)
	require.Equal(t, "alice", output.User.Username)
}

func TestAuthServiceLoginFailuresIndistinguishable(t *testing.T) {
	repo := NewMockUserRepository()
	svc := newAuthService(t, repo)

	hash, err := password.Hash("Wonderland1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), newTestUser("alice", "alice@example.com", hash)))

	// Unknown account and wrong password yield the identical error.
	_, errUnknown := svc.Login(context.Background(), LoginInput{Login: "nobody", Password: "Wonderland1"})
	_, errWrongPw := svc.Login(context.Background(), LoginInput{Login: "alice", Password: "Nope12345"})

	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestAuthServiceLoginEmailBeatsUsername(t *testing.T) {
	repo := NewMockUserRepository()
	svc := newAuthService(t, repo)

	// alice owns the string as her email; bob registered it as his username.
	aliceHash, err := password.Hash("Wonderland1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), newTestUser("alice", "shared@example.com", aliceHash)))

	bobHash, err := password.Hash("Builder99x")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), newTestUser("shared@example.com", "bob@example.com", bobHash)))

	// The email match wins, so alice's password logs in as alice.
	output, err := svc.Login(context.Background(), LoginInput{Login: "shared@example.com", Password: "Wonderland1"})
	require.NoError(t, err)
	require.Equal(t, "alice", output.User.Username)

	// bob's password is checked against alice's record and fails.
	_, err = svc.Login(context.Background(), LoginInput{Login: "shared@example.com", Password: "Builder99x"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
