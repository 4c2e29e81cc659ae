package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "lifelink/internal/delivery/context"
	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/domain/repository"
	"lifelink/internal/domain/service"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// requestService implements the RequestUsecase interface.
type requestService struct {
	txManager   repository.TransactionManager
	requestRepo repository.RequestRepository
	qrService   service.QRCodeService
	logger      *slog.Logger
}

// RequestServiceParams holds dependencies for requestService, injected by Fx.
type RequestServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	RequestRepo repository.RequestRepository
	QRService   service.QRCodeService
	Logger      *slog.Logger
}

// NewRequestService is the constructor for requestService.
func NewRequestService(params RequestServiceParams) usecase.RequestUsecase {
	return &requestService{
		txManager:   params.TxManager,
		requestRepo: params.RequestRepo,
		qrService:   params.QRService,
		logger:      params.Logger,
	}
}

func (srv *requestService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create opens a supply request against a verified listing.
//
// The whole operation runs in one transaction. For donation listings the
// conditional reserve serializes concurrent requesters: whoever commits first
// wins, everyone else gets a conflict.
func (srv *requestService) Create(ctx context.Context, input usecase.CreateRequestInput) (*entity.SupplyRequest, error) {
	srv.log(ctx).Info("Creating supply request",
		slog.Any("requesterID", input.RequesterID),
		slog.Any("listingID", input.ListingID),
	)

	var created *entity.SupplyRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.NewListingRepository()
		requestRepo := repoFactory.NewRequestRepository()

		listing, err := listingRepo.FindByID(ctx, input.ListingID)
		if err != nil {
			if errors.Is(err, repository.ErrListingNotFound) {
				return errors.Wrap(domainerrors.ErrListingNotFound, "request rejected")
			}

			return errors.Wrap(err, "failed to find listing")
		}

		if listing.ProviderID == input.RequesterID {
			return errors.Wrap(domainerrors.ErrForbidden, "cannot request an own listing")
		}
		if listing.Status != entity.ListingVerified {
			return errors.Wrap(domainerrors.ErrListingNotAvailable, "listing is not open to requests")
		}
		if listing.Expired(time.Now()) {
			return errors.Wrap(domainerrors.ErrListingNotAvailable, "listing stock expired")
		}

		if listing.Mode == entity.ModeDonation {
			if err := listingRepo.Reserve(ctx, listing.ID); err != nil {
				if errors.Is(err, repository.ErrListingNotReservable) {
					return errors.Wrap(domainerrors.ErrListingAlreadyReserved, "donation already committed")
				}

				return errors.Wrap(err, "failed to reserve donation listing")
			}
		}

		request := &entity.SupplyRequest{
			RequesterID: input.RequesterID,
			ListingID:   input.ListingID,
			Hospital:    input.Hospital,
			Status:      entity.RequestCoordinating,
		}
		if err := requestRepo.Create(ctx, request); err != nil {
			return errors.Wrap(err, "failed to create supply request")
		}

		request.Listing = listing
		created = request

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Supply request rejected", slog.Any("listingID", input.ListingID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Supply request created", slog.Any("requestID", created.ID))

	return created, nil
}

// ListSent returns the requests a user has opened.
func (srv *requestService) ListSent(ctx context.Context, userID uuid.UUID) ([]*entity.SupplyRequest, error) {
	requests, err := srv.requestRepo.FindByRequester(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sent requests")
	}

	return requests, nil
}

// ListReceived returns the requests received against a provider's listings.
func (srv *requestService) ListReceived(ctx context.Context, providerID uuid.UUID) ([]*entity.SupplyRequest, error) {
	requests, err := srv.requestRepo.FindByProvider(ctx, providerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list received requests")
	}

	return requests, nil
}

// Advance moves a request to its next coordination status.
func (srv *requestService) Advance(ctx context.Context, userID, requestID uuid.UUID) (*entity.SupplyRequest, error) {
	request, err := srv.loadParticipantRequest(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	next, ok := request.Status.Next()
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrRequestAlreadyCompleted, "request is already final")
	}

	if err := srv.requestRepo.UpdateStatus(ctx, requestID, next); err != nil {
		return nil, errors.Wrap(err, "failed to advance request")
	}
	request.Status = next

	srv.log(ctx).Info("Request advanced",
		slog.Any("requestID", requestID),
		slog.String("status", next.String()),
	)

	return request, nil
}

// HandoffQR renders the QR code a participant shows to confirm handoff.
func (srv *requestService) HandoffQR(ctx context.Context, userID, requestID uuid.UUID) ([]byte, error) {
	if _, err := srv.loadParticipantRequest(ctx, userID, requestID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateHandoffQR(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate handoff QR")
	}

	return png, nil
}

// loadParticipantRequest loads a request and checks the caller participates in it.
func (srv *requestService) loadParticipantRequest(ctx context.Context, userID, requestID uuid.UUID) (*entity.SupplyRequest, error) {
	request, err := srv.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRequestNotFound, "request lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find request")
	}

	if !request.IsParticipant(userID) {
		return nil, errors.Wrap(domainerrors.ErrNotParticipant, "caller is not part of this request")
	}

	return request, nil
}
