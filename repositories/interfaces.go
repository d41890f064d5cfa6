package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/upb/cafe-directory/models"
)

// CafeRepository handles cafe data operations. Lookups return (nil, nil)
// when no row matches; Delete reports the number of rows removed so the
// caller can treat missing ids as a no-op.
type CafeRepository interface {
	// Create inserts a new cafe
	Create(ctx context.Context, cafe *models.Cafe) error

	// GetByID retrieves a cafe by id
	GetByID(ctx context.Context, id uint) (*models.Cafe, error)

	// GetByName retrieves a cafe by its stored (normalized) name
	GetByName(ctx context.Context, name string) (*models.Cafe, error)

	// List retrieves all cafes ordered by name
	List(ctx context.Context) ([]*models.Cafe, error)

	// Update persists changes to an existing cafe
	Update(ctx context.Context, cafe *models.Cafe) error

	// Delete removes a cafe and returns the number of rows affected
	Delete(ctx context.Context, id uint) (int64, error)
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves all users ordered by email
	List(ctx context.Context) ([]*models.User, error)

	// UpdateRole changes a user's role and returns the number of rows affected
	UpdateRole(ctx context.Context, id uuid.UUID, role models.UserRole) (int64, error)

	// Delete removes a user and returns the number of rows affected
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// MessageRepository handles contact-message data operations
type MessageRepository interface {
	// Create inserts a new message
	Create(ctx context.Context, msg *models.Message) error

	// List retrieves all messages, newest first
	List(ctx context.Context) ([]*models.Message, error)

	// Delete removes a message and returns the number of rows affected
	Delete(ctx context.Context, id uint) (int64, error)
}

// SessionRepository handles login-session data operations
type SessionRepository interface {
	// Create inserts a new session
	Create(ctx context.Context, session *models.Session) error

	// GetByID retrieves a session by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)

	// Delete removes a session; deleting a missing session is not an error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID removes all sessions belonging to a user
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
