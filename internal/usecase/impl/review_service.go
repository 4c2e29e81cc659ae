package impl

import (
	"context"
	"log/slog"

	deliverycontext "lifelink/internal/delivery/context"
	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/domain/repository"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for reviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Submit records the requester's rating of the provider and finalizes the
// request. Review and status change commit together or not at all.
func (srv *reviewService) Submit(ctx context.Context, input usecase.SubmitReviewInput) (*entity.Review, error) {
	if input.Stars < 1 || input.Stars > 5 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "stars must be between 1 and 5")
	}

	var created *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		requestRepo := repoFactory.NewRequestRepository()
		reviewRepo := repoFactory.NewReviewRepository()

		request, err := requestRepo.FindByID(ctx, input.RequestID)
		if err != nil {
			if errors.Is(err, repository.ErrRequestNotFound) {
				return errors.Wrap(domainerrors.ErrRequestNotFound, "review rejected")
			}

			return errors.Wrap(err, "failed to find request")
		}

		// Only the requester evaluates the delivery.
		if request.RequesterID != input.ReviewerID {
			return errors.Wrap(domainerrors.ErrForbidden, "only the requester can review")
		}
		if request.Status == entity.RequestCoordinating {
			return errors.Wrap(domainerrors.ErrReviewRequiresCompletion, "delivery has not started")
		}
		if request.Listing == nil {
			return errors.Wrap(domainerrors.ErrInternalError, "request listing not loaded")
		}

		review := &entity.Review{
			RequestID:  input.RequestID,
			ReviewerID: input.ReviewerID,
			ReviewedID: request.Listing.ProviderID,
			Stars:      input.Stars,
			Comment:    input.Comment,
		}
		if err := reviewRepo.Create(ctx, review); err != nil {
			return errors.Wrap(err, "failed to create review")
		}

		if request.Status != entity.RequestCompleted {
			if err := requestRepo.UpdateStatus(ctx, request.ID, entity.RequestCompleted); err != nil {
				return errors.Wrap(err, "failed to finalize request")
			}
		}

		created = review

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Review rejected", slog.Any("requestID", input.RequestID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Review submitted",
		slog.Any("requestID", input.RequestID),
		slog.Int("stars", input.Stars),
	)

	return created, nil
}

// ProviderRating returns a provider's average rating. A provider without
// reviews starts at the default rating.
func (srv *reviewService) ProviderRating(ctx context.Context, providerID uuid.UUID) (*usecase.ProviderRating, error) {
	average, count, err := srv.reviewRepo.AverageForReviewed(ctx, providerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate provider rating")
	}

	if count == 0 {
		average = entity.DefaultProviderRating
	}

	return &usecase.ProviderRating{Average: average, Count: count}, nil
}

// ListForProvider returns the reviews written about a provider.
func (srv *reviewService) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.ListByReviewed(ctx, providerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list provider reviews")
	}

	return reviews, nil
}
