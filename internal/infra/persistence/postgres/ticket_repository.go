package postgres

import (
	"context"

	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/domain/repository"
	"lifelink/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ticketRepository implements the domain's TicketRepository interface using GORM.
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository is the constructor for ticketRepository.
func NewTicketRepository(db *gorm.DB) repository.TicketRepository {
	return &ticketRepository{db: db}
}

// Create persists a new support ticket.
func (repo *ticketRepository) Create(ctx context.Context, ticket *entity.SupportTicket) error {
	ticketM := &model.SupportTicketModel{
		ID:      ticket.ID,
		UserID:  ticket.UserID,
		Subject: ticket.Subject,
		Message: ticket.Message,
	}

	if err := repo.db.WithContext(ctx).Create(ticketM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create support ticket")
	}

	ticket.ID = ticketM.ID
	ticket.CreatedAt = ticketM.CreatedAt

	return nil
}

// ListAll retrieves every support ticket, newest first.
func (repo *ticketRepository) ListAll(ctx context.Context) ([]*entity.SupportTicket, error) {
	var ticketMs []model.SupportTicketModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ticketMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list support tickets")
	}

	tickets := make([]*entity.SupportTicket, 0, len(ticketMs))
	for i := range ticketMs {
		t := ticketMs[i]
		tickets = append(tickets, &entity.SupportTicket{
			ID:        t.ID,
			UserID:    t.UserID,
			Subject:   t.Subject,
			Message:   t.Message,
			CreatedAt: t.CreatedAt,
		})
	}

	return tickets, nil
}
