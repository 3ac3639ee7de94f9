package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/pkg/password"
)

func seedUser(t *testing.T, repo *MockUserRepository, username, email, plaintext string) int64 {
	t.Helper()
	hash, err := password.Hash(plaintext)
	require.NoError(t, err)
	user := newTestUser(username, email, hash)
	require.NoError(t, repo.Create(context.Background(), user))
	return user.ID
}

func TestUserServiceListAndGet(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zerolog.Nop())

	aliceID := seedUser(t, repo, "alice", "alice@example.com", "Wonderland1")
	seedUser(t, repo, "bob", "bob@example.com", "Builder99x")

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	user, err := svc.GetByID(context.Background(), aliceID)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	_, err = svc.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "999", de.Resource)
}

func TestUserServiceChangePassword(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zerolog.Nop())

	aliceID := seedUser(t, repo, "alice", "alice@example.com", "Wonderland1")
	oldHash := repo.users[aliceID].PasswordHash

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		ActorID:     aliceID,
		TargetID:    aliceID,
		NewPassword: "NewSecret99",
	})
	require.NoError(t, err)
	require.NotEqual(t, oldHash, repo.users[aliceID].PasswordHash)

	ok, err := password.Verify("NewSecret99", repo.users[aliceID].PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUserServiceChangePasswordGuards(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zerolog.Nop())

	aliceID := seedUser(t, repo, "alice", "alice@example.com", "Wonderland1")
	bobID := seedUser(t, repo, "bob", "bob@example.com", "Builder99x")

	// Another user may not change alice's password.
	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		ActorID:     bobID,
		TargetID:    aliceID,
		NewPassword: "NewSecret99",
	})
	require.ErrorIs(t, err, ErrForbidden)

	// Neither may an anonymous caller.
	err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		ActorID:     0,
		TargetID:    aliceID,
		NewPassword: "NewSecret99",
	})
	require.ErrorIs(t, err, ErrForbidden)

	// The new password still has to satisfy the policy.
	err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		ActorID:     aliceID,
		TargetID:    aliceID,
		NewPassword: "weak",
	})
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestUserServiceDelete(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zerolog.Nop())

	aliceID := seedUser(t, repo, "alice", "alice@example.com", "Wonderland1")
	bobID := seedUser(t, repo, "bob", "bob@example.com", "Builder99x")

	require.ErrorIs(t, svc.Delete(context.Background(), bobID, aliceID), ErrForbidden)
	require.ErrorIs(t, svc.Delete(context.Background(), 0, aliceID), ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), aliceID, aliceID))
	_, err := svc.GetByID(context.Background(), aliceID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
