package impl

import (
	"context"
	"log/slog"

	deliverycontext "lifelink/internal/delivery/context"
	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/domain/repository"
	"lifelink/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	listingRepo repository.ListingRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	ListingRepo repository.ListingRepository
	RequestRepo repository.RequestRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		listingRepo: params.ListingRepo,
		requestRepo: params.RequestRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PendingListings returns the review queue, oldest first.
func (srv *adminService) PendingListings(ctx context.Context) ([]*entity.Listing, error) {
	listings, err := srv.listingRepo.FindPending(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pending listings")
	}

	return listings, nil
}

// VerifyListing applies an administrator's verdict on a pending listing.
// Approval moves it into the public catalog; rejection removes it.
func (srv *adminService) VerifyListing(ctx context.Context, input usecase.VerifyListingInput) error {
	listing, err := srv.listingRepo.FindByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return errors.Wrap(domainerrors.ErrListingNotFound, "verification failed")
		}

		return errors.Wrap(err, "failed to find listing")
	}

	if listing.Status != entity.ListingPending {
		return errors.Wrap(domainerrors.ErrListingNotAvailable, "listing is not pending review")
	}

	if input.Approve {
		if err := srv.listingRepo.UpdateStatus(ctx, input.ListingID, entity.ListingVerified); err != nil {
			return errors.Wrap(err, "failed to approve listing")
		}
		srv.log(ctx).Info("Listing approved", slog.Any("listingID", input.ListingID))

		return nil
	}

	if err := srv.listingRepo.Delete(ctx, input.ListingID); err != nil {
		return errors.Wrap(err, "failed to reject listing")
	}
	srv.log(ctx).Info("Listing rejected", slog.Any("listingID", input.ListingID))

	return nil
}

// Stats returns the network activity summary for the admin panel.
func (srv *adminService) Stats(ctx context.Context) (*usecase.AdminStats, error) {
	users, err := srv.userRepo.CountAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	listings, err := srv.listingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count listings")
	}

	requests, err := srv.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count requests")
	}

	return &usecase.AdminStats{
		Users:    users,
		Listings: listings,
		Requests: requests,
	}, nil
}
