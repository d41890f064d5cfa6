package sqlite

import (
	"context"
	"fmt"

	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageRepository implements the repositories.MessageRepository interface
type MessageRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB, logger *zap.Logger) repositories.MessageRepository {
	return &MessageRepository{db: db, logger: logger}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	r.logger.Debug("message created", zap.Uint("id", msg.ID), zap.String("from", msg.Email))
	return nil
}

// List retrieves all messages, newest first
func (r *MessageRepository) List(ctx context.Context) ([]*models.Message, error) {
	var msgs []*models.Message
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// Delete removes a message and returns the number of rows affected
func (r *MessageRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Message{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete message: %w", res.Error)
	}
	return res.RowsAffected, nil
}
