package postgres

import (
	"context"

	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/domain/repository"
	"lifelink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// chatRepository implements the domain's ChatRepository interface using GORM.
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository is the constructor for chatRepository.
func NewChatRepository(db *gorm.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

// Create persists a new chat message.
func (repo *chatRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	messageM := &model.ChatMessageModel{
		ID:         message.ID,
		RequestID:  message.RequestID,
		SenderID:   message.SenderID,
		SenderName: message.SenderName,
		Body:       message.Body,
	}

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create chat message")
	}

	message.ID = messageM.ID
	message.CreatedAt = messageM.CreatedAt

	return nil
}

// ListByRequest retrieves the message history of a request's room, oldest first.
func (repo *chatRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.ChatMessage, error) {
	var messageMs []model.ChatMessageModel
	if err := repo.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&messageMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list chat messages")
	}

	messages := make([]*entity.ChatMessage, 0, len(messageMs))
	for i := range messageMs {
		m := messageMs[i]
		messages = append(messages, &entity.ChatMessage{
			ID:         m.ID,
			RequestID:  m.RequestID,
			SenderID:   m.SenderID,
			SenderName: m.SenderName,
			Body:       m.Body,
			CreatedAt:  m.CreatedAt,
		})
	}

	return messages, nil
}
