package services

import (
	"context"

	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/repositories"
	"go.uber.org/zap"
)

// MessageInput carries the validated contact-form values
type MessageInput struct {
	Name  string
	Email string
	Phone string
	Body  string
}

// MessageService implements the contact-message inbox
type MessageService struct {
	messages repositories.MessageRepository
	logger   *zap.Logger
}

// NewMessageService creates a new message service
func NewMessageService(messages repositories.MessageRepository, logger *zap.Logger) *MessageService {
	return &MessageService{messages: messages, logger: logger}
}

// Create stores a contact submission with a server-assigned timestamp
func (s *MessageService) Create(ctx context.Context, in MessageInput) (*models.Message, error) {
	msg := &models.Message{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Body:  in.Body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.logger.Info("contact message received", zap.Uint("id", msg.ID))
	return msg, nil
}

// List returns all messages, newest first
func (s *MessageService) List(ctx context.Context) ([]*models.Message, error) {
	return s.messages.List(ctx)
}

// Delete removes a message. Deleting a missing id is a no-op.
func (s *MessageService) Delete(ctx context.Context, id uint) error {
	rows, err := s.messages.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		s.logger.Debug("delete of missing message ignored", zap.Uint("id", id))
	}
	return nil
}
