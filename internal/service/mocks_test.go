package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/repository"
)

// MockUserRepository is a map-backed implementation of repository.UserRepository.
type MockUserRepository struct {
	users  map[int64]*domain.User
	nextID int64

	createErr error
	getErr    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// newTestUser builds a user the way signup would, without going through
// the service.
func newTestUser(username, email, passwordHash string) *domain.User {
	return domain.NewUser(username, email, passwordHash)
}

// MockVideoRepository is a map-backed implementation of repository.VideoRepository.
type MockVideoRepository struct {
	videos map[uuid.UUID]*domain.Video

	createErr error
	getErr    error
}

func NewMockVideoRepository() *MockVideoRepository {
	return &MockVideoRepository{
		videos: make(map[uuid.UUID]*domain.Video),
	}
}

func (m *MockVideoRepository) Create(ctx context.Context, video *domain.Video) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.videos[video.ID] = video
	return nil
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if v, ok := m.videos[id]; ok {
		return v, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockVideoRepository) ListVisible(ctx context.Context, viewerID int64, opts repository.ListOptions) ([]*domain.Video, error) {
	var result []*domain.Video
	for _, v := range m.videos {
		if v.VisibleTo(viewerID) {
			result = append(result, v)
		}
	}

	less := func(i, j int) bool { return result[i].UploadedAt.Before(result[j].UploadedAt) }
	switch opts.SortBy {
	case repository.SortByLikes:
		less = func(i, j int) bool { return result[i].Likes < result[j].Likes }
	case repository.SortByTitle:
		less = func(i, j int) bool { return strings.Compare(result[i].Title, result[j].Title) < 0 }
	}
	if opts.Descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(result, less)
	return result, nil
}

func (m *MockVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	if _, ok := m.videos[video.ID]; !ok {
		return repository.ErrNotFound
	}
	m.videos[video.ID] = video
	return nil
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.videos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.videos, id)
	return nil
}

func (m *MockVideoRepository) AddLike(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v.Likes++
	return v, nil
}

func (m *MockVideoRepository) RemoveLike(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if v.Likes > 0 {
		v.Likes--
	}
	return v, nil
}
