package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAccountAndVideoLifecycle walks one user through signup, a failed
// login, and private-video visibility, end to end across the services.
func TestAccountAndVideoLifecycle(t *testing.T) {
	ctx := context.Background()
	userRepo := NewMockUserRepository()
	videoRepo := NewMockVideoRepository()

	authSvc := newAuthService(t, userRepo)
	videoSvc := newVideoService(videoRepo)

	// Signup yields a token and never stores the plaintext.
	signup, err := authSvc.Signup(ctx, SignupInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "Abcdef12",
	})
	require.NoError(t, err)
	require.NotEmpty(t, signup.Token)
	require.NotEqual(t, "Abcdef12", signup.User.PasswordHash)

	// A second signup reusing the email is rejected.
	_, err = authSvc.Signup(ctx, SignupInput{
		Username: "alice2",
		Email:    "a@x.com",
		Password: "Abcdef12",
	})
	var dup *DuplicateFieldError
	require.ErrorAs(t, err, &dup)

	// A wrong password fails like an unknown account would.
	_, err = authSvc.Login(ctx, LoginInput{Login: "alice", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Alice uploads a private video.
	video, err := videoSvc.Create(ctx, CreateVideoInput{
		OwnerID:   signup.User.ID,
		Title:     "home movie",
		IsPrivate: true,
	})
	require.NoError(t, err)

	// Unauthenticated fetch is refused; alice sees it.
	_, err = videoSvc.Get(ctx, 0, video.ID)
	require.ErrorIs(t, err, ErrForbidden)

	got, err := videoSvc.Get(ctx, signup.User.ID, video.ID)
	require.NoError(t, err)
	require.Equal(t, "home movie", got.Title)
}
