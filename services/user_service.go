package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/repositories"
	"go.uber.org/zap"
)

// UserService implements the admin-side user moderation operations
type UserService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{users: users, sessions: sessions, logger: logger}
}

// List returns all users ordered by email
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// ChangeRole sets a user's role. The new role takes effect on the user's
// next request because capabilities are recomputed from the stored role
// each time; no session invalidation is needed.
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, role models.UserRole) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	rows, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	s.logger.Info("user role changed", zap.String("id", id.String()), zap.String("role", string(role)))
	return nil
}

// Delete removes a user and revokes their sessions. Deleting a missing
// id is a no-op.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		s.logger.Debug("delete of missing user ignored", zap.String("id", id.String()))
		return nil
	}
	if err := s.sessions.DeleteByUserID(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("id", id.String()))
	return nil
}
