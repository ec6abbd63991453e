package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okoshkin/tasklist/internal/apperr"
	"github.com/okoshkin/tasklist/internal/models"
	"github.com/okoshkin/tasklist/internal/security"
)

type fakeUserRepo struct {
	existing *models.User

	created *models.User
	updated *models.User

	updateErr error
	deletedID int64
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	f.created = user
	user.ID = 1
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.existing != nil && f.existing.ID == id {
		return f.existing, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	if f.existing != nil && (f.existing.Username == username || f.existing.Email == email) {
		return f.existing, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	if f.existing == nil {
		return nil, nil
	}
	return []models.User{*f.existing}, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = user
	return user, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	f.deletedID = id
	return nil
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "testtest")
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "testtest", repo.created.PasswordHash, "plaintext must never reach the repository")
	assert.True(t, security.CheckPassword("testtest", repo.created.PasswordHash))
}

func TestRegister_UsernameConflictTakesPriority(t *testing.T) {
	// The same existing row collides on both fields; username wins.
	repo := &fakeUserRepo{existing: &models.User{
		ID: 1, Username: "alice", Email: "alice@example.com",
	}}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "x")
	ce, ok := apperr.IsConflict(err)
	require.True(t, ok, "expected ConflictError, got %v", err)
	assert.Equal(t, "Username", ce.Field)
}

func TestRegister_EmailConflict(t *testing.T) {
	repo := &fakeUserRepo{existing: &models.User{
		ID: 1, Username: "alice", Email: "alice@example.com",
	}}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), "bob", "alice@example.com", "x")
	ce, ok := apperr.IsConflict(err)
	require.True(t, ok, "expected ConflictError, got %v", err)
	assert.Equal(t, "Email", ce.Field)
}

func TestUpdate_OwnAccountRehashesPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	current := &models.User{ID: 1, Username: "alice", Email: "alice@example.com"}

	user, err := svc.Update(context.Background(), current, 1, "alice2", "alice2@example.com", "newpass")
	require.NoError(t, err)

	assert.Equal(t, "alice2", user.Username)
	assert.Equal(t, "alice2@example.com", user.Email)
	assert.True(t, security.CheckPassword("newpass", repo.updated.PasswordHash))
}

func TestUpdate_OtherAccountIsForbidden(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	current := &models.User{ID: 2}

	_, err := svc.Update(context.Background(), current, 1, "x", "x@example.com", "x")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Nil(t, repo.updated, "repository must not be touched")
}

func TestUpdate_CommitTimeConflictIsFieldAgnostic(t *testing.T) {
	repo := &fakeUserRepo{updateErr: &apperr.ConflictError{}}
	svc := NewUserService(repo)
	current := &models.User{ID: 1}

	_, err := svc.Update(context.Background(), current, 1, "taken", "taken@example.com", "x")
	ce, ok := apperr.IsConflict(err)
	require.True(t, ok, "expected ConflictError, got %v", err)
	assert.Empty(t, ce.Field)
}

func TestDelete_OwnAccount(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	current := &models.User{ID: 1}

	require.NoError(t, svc.Delete(context.Background(), current, 1))
	assert.Equal(t, int64(1), repo.deletedID)
}

func TestDelete_OtherAccountIsForbidden(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	current := &models.User{ID: 2}

	err := svc.Delete(context.Background(), current, 1)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Zero(t, repo.deletedID)
}
