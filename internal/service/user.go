package service

import (
	"context"
	"errors"

	"github.com/okoshkin/tasklist/internal/apperr"
	"github.com/okoshkin/tasklist/internal/models"
	"github.com/okoshkin/tasklist/internal/security"
)

// UserRepository defines the persistence operations required by the
// user self-service operations.
type UserRepository interface {
	// Create inserts a new user and returns it with ID and timestamps set.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByID returns the user with the given id, or apperr.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByUsernameOrEmail returns the first user matching either field,
	// or apperr.ErrNotFound.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	// List returns users ordered by id with offset/limit applied.
	List(ctx context.Context, offset, limit int) ([]models.User, error)
	// Update replaces username, email and password hash of an existing user.
	Update(ctx context.Context, user *models.User) (*models.User, error)
	// Delete removes the user row.
	Delete(ctx context.Context, id int64) error
}

// UserService implements registration and user self-service.
type UserService struct {
	// repo performs the data-layer operations.
	repo UserRepository
}

// NewUserService constructs a UserService with the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new user with a hashed password. A single combined
// lookup checks both unique fields first; when the matched row collides on
// username that field is reported, otherwise email. The plaintext password
// never reaches the repository.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	existing, err := s.repo.GetByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrInternal
	}
	if existing != nil {
		if existing.Username == username {
			return nil, &apperr.ConflictError{Field: "Username"}
		}
		return nil, &apperr.ConflictError{Field: "Email"}
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, apperr.ErrInternal
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	return s.repo.Create(ctx, user)
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns users ordered by id with offset/limit applied.
func (s *UserService) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	return s.repo.List(ctx, offset, limit)
}

// Update replaces username, email and password of the caller's own account.
// Updating any other account fails with apperr.ErrForbidden. The new password
// is re-hashed. A uniqueness violation surfaces from the repository as a
// field-agnostic conflict, unlike the registration pre-check which can name
// the colliding field.
func (s *UserService) Update(ctx context.Context, current *models.User, id int64, username, email, password string) (*models.User, error) {
	if current.ID != id {
		return nil, apperr.ErrForbidden
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, apperr.ErrInternal
	}

	user := &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	return s.repo.Update(ctx, user)
}

// Delete removes the caller's own account. Deleting any other account fails
// with apperr.ErrForbidden. Todos owned by the user are orphaned, not
// cascade-deleted; ownership scoping keeps them unreachable by anyone else.
func (s *UserService) Delete(ctx context.Context, current *models.User, id int64) error {
	if current.ID != id {
		return apperr.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
