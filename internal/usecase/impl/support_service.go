package impl

import (
	"context"
	"log/slog"

	deliverycontext "lifelink/internal/delivery/context"
	"lifelink/internal/domain/entity"
	"lifelink/internal/domain/repository"
	"lifelink/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// supportService implements the SupportUsecase interface.
type supportService struct {
	ticketRepo repository.TicketRepository
	logger     *slog.Logger
}

// SupportServiceParams holds dependencies for supportService, injected by Fx.
type SupportServiceParams struct {
	fx.In

	TicketRepo repository.TicketRepository
	Logger     *slog.Logger
}

// NewSupportService is the constructor for supportService.
func NewSupportService(params SupportServiceParams) usecase.SupportUsecase {
	return &supportService{
		ticketRepo: params.TicketRepo,
		logger:     params.Logger,
	}
}

func (srv *supportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Submit files a ticket for administrator review.
func (srv *supportService) Submit(ctx context.Context, input usecase.SubmitTicketInput) (*entity.SupportTicket, error) {
	ticket := &entity.SupportTicket{
		UserID:  input.UserID,
		Subject: input.Subject,
		Message: input.Message,
	}

	if err := srv.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, errors.Wrap(err, "failed to create support ticket")
	}

	srv.log(ctx).Info("Support ticket filed",
		slog.Any("ticketID", ticket.ID),
		slog.String("subject", ticket.Subject),
	)

	return ticket, nil
}

// List returns every filed ticket, newest first.
func (srv *supportService) List(ctx context.Context) ([]*entity.SupportTicket, error) {
	tickets, err := srv.ticketRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list support tickets")
	}

	return tickets, nil
}
