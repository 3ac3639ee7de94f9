package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/repository"
)

func newVideoService(repo *MockVideoRepository) *VideoService {
	return NewVideoService(repo, zerolog.Nop())
}

func seedVideo(t *testing.T, repo *MockVideoRepository, ownerID int64, title string, private bool) *domain.Video {
	t.Helper()
	v := domain.NewVideo(ownerID, title, "desc")
	v.IsPrivate = private
	require.NoError(t, repo.Create(context.Background(), v))
	return v
}

func TestVideoServiceCreate(t *testing.T) {
	repo := NewMockVideoRepository()
	svc := newVideoService(repo)

	video, err := svc.Create(context.Background(), CreateVideoInput{
		OwnerID:     1,
		Title:       "My first video",
		Description: "hello",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), video.OwnerID)
	require.False(t, video.IsPrivate)
	require.Zero(t, video.Likes)

	_, err = svc.Create(context.Background(), CreateVideoInput{OwnerID: 0, Title: "anon"})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Create(context.Background(), CreateVideoInput{OwnerID: 1, Title: ""})
	require.ErrorIs(t, err, ErrInvalidTitle)
}

func TestVideoServiceGetVisibility(t *testing.T) {
	repo := NewMockVideoRepository()
	svc := newVideoService(repo)

	public := seedVideo(t, repo, 1, "public", false)
	private := seedVideo(t, repo, 1, "private", true)

	// Anyone can read a public video.
	_, err := svc.Get(context.Background(), 0, public.ID)
	require.NoError(t, err)

	// The owner can read their private video.
	_, err = svc.Get(context.Background(), 1, private.ID)
	require.NoError(t, err)

	// Others get a distinct forbidden, not a not-found.
	_, err = svc.Get(context.Background(), 2, private.ID)
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = svc.Get(context.Background(), 0, private.ID)
	require.ErrorIs(t, err, ErrForbidden)

	// A missing video is a not-found carrying the requested ID.
	missing := uuid.New()
	_, err = svc.Get(context.Background(), 1, missing)
	require.ErrorIs(t, err, ErrVideoNotFound)
	require.ErrorIs(t, err, domain.ErrVideoNotFound)

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	require.Equal(t, missing.String(), de.Resource)
}

func TestVideoServiceListVisibility(t *testing.T) {
	repo := NewMockVideoRepository()
	svc := newVideoService(repo)

	seedVideo(t, repo, 1, "alice public", false)
	seedVideo(t, repo, 1, "alice private", true)
	seedVideo(t, repo, 2, "bob public", false)
	seedVideo(t, repo, 2, "bob private", true)

	// Anonymous viewers see only public videos.
	videos, err := svc.List(context.Background(), 0, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, videos, 2)

	// Alice sees public videos plus her own private one, not bob's.
	videos, err = svc.List(context.Background(), 1, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, videos, 3)
	for _, v := range videos {
		if v.IsPrivate {
			require.Equal(t, int64(1), v.OwnerID)
		}
	}
}

func TestVideoServiceListSorting(t *testing.T) {
	repo := NewMockVideoRepository()
	svc := newVideoService(repo)

	a := seedVideo(t, repo, 1, "banana", false)
	b := seedVideo(t, repo, 1, "apple", false)
	a.Likes = 5
	b.Likes = 10

	videos, err := svc.List(context.Background(), 0, repository.ListOptions{
		SortBy: repository.SortByTitle,
	})
	require.NoError(t, err)
	require.Equal(t, "apple", videos[0].Title)

	videos, err = svc.List(context.Background(), 0, repository.ListOptions{
		SortBy:     repository.SortByLikes,
		Descending: true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(10), videos[0].Likes)
}

func TestVideoServiceUpdate(t *testing.T) {
	repo := NewMockVideoRepository()
	svc := newVideoService(repo)

	video := seedVideo(t, repo, 1, "original", false)

	newTitle := "renamed"
	private := true
	updated, err := svc.Update(context.Background(), UpdateVideoInput{
		ActorID:   1,
		ID:        video.ID,
		Title:     &newTitle,
		IsPrivate: &private,
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)
	require.True(t, updated.IsPrivate)
	// Untouched fields survive.
	require.Equal(t, "desc", updated.Description)

	empty := ""
	_, err = svc.Update(context.Background(), UpdateVideoInput{
		ActorID: 1,
		ID:      video.ID,
		Title:   &empty,
	})
	require.ErrorIs(t, err, ErrInvalidTitle)
}

func TestVideoServiceUpdateGuards(t *testing.T) {
	repo := NewMockVideoRepository()
	svc := newVideoService(repo)

	video := seedVideo(t, repo, 1, "original", false)
	newTitle := "hijacked"

	_, err := svc.Update(context.Background(), UpdateVideoInput{ActorID: 2, ID: video.ID, Title: &newTitle})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(context.Background(), UpdateVideoInput{ActorID: 0, ID: video.ID, Title: &newTitle})
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Update(context.Background(), UpdateVideoInput{ActorID: 1, ID: uuid.New(), Title: &newTitle})
	require.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVideoServiceDelete(t *testing.T) {
	repo := NewMockVideoRepository()
	svc := newVideoService(repo)

	video := seedVideo(t, repo, 1, "doomed", false)

	require.ErrorIs(t, svc.Delete(context.Background(), 2, video.ID), ErrForbidden)
	require.ErrorIs(t, svc.Delete(context.Background(), 0, video.ID), ErrNotAuthenticated)
	require.NoError(t, svc.Delete(context.Background(), 1, video.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), 1, video.ID), ErrVideoNotFound)
}

func TestVideoServiceLikes(t *testing.T) {
	repo := NewMockVideoRepository()
	svc := newVideoService(repo)

	video := seedVideo(t, repo, 1, "likeable", false)

	// Likes need no identity and every call counts.
	v, err := svc.Like(context.Background(), video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), v.Likes)

	v, err = svc.Like(context.Background(), video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), v.Likes)

	v, err = svc.Unlike(context.Background(), video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), v.Likes)

	// The counter floors at zero.
	_, err = svc.Unlike(context.Background(), video.ID)
	require.NoError(t, err)
	v, err = svc.Unlike(context.Background(), video.ID)
	require.NoError(t, err)
	require.Zero(t, v.Likes)

	_, err = svc.Like(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrVideoNotFound)
}
