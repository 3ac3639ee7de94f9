package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/clipstream/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	db, err := NewDB(ctx, DefaultConfig(":memory:"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := domain.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
	require.WithinDuration(t, user.RegisteredAt, got.RegisteredAt, time.Second)
}

func TestUserRepositoryCorruptTimestampFailsScan(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, registered_at)
		VALUES ('mallory', 'mallory@example.com', 'hash', 'not-a-timestamp')
	`)
	require.NoError(t, err)

	// A row with a garbage timestamp must surface an error, not a user
	// with a zero RegisteredAt.
	_, err = repo.GetByUsername(ctx, "mallory")
	require.Error(t, err)
	require.Contains(t, err.Error(), "registered_at")
}

func TestVideoRepositoryCorruptTimestampFailsScan(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	userRepo := NewUserRepository(db)
	owner := domain.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, userRepo.Create(ctx, owner))

	id := uuid.New()
	_, err := db.ExecContext(ctx, `
		INSERT INTO videos (id, owner_id, title, description, is_private, likes, uploaded_at)
		VALUES (?, ?, 'clip', '', 0, 0, 'not-a-timestamp')
	`, id.String(), owner.ID)
	require.NoError(t, err)

	_, err = NewVideoRepository(db).GetByID(ctx, id)
	require.Error(t, err)
	require.Contains(t, err.Error(), "uploaded_at")
}
