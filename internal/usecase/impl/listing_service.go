package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"time"

	"lifelink/config"
	deliverycontext "lifelink/internal/delivery/context"
	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/domain/policy"
	"lifelink/internal/domain/repository"
	"lifelink/internal/domain/service"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// listingService implements the ListingUsecase interface.
type listingService struct {
	listingRepo      repository.ListingRepository
	userRepo         repository.UserRepository
	media            service.MediaStorage
	geocoder         service.Geocoder
	fallbackImageURL string
	logger           *slog.Logger
}

// ListingServiceParams holds dependencies for listingService, injected by Fx.
type ListingServiceParams struct {
	fx.In

	ListingRepo repository.ListingRepository
	UserRepo    repository.UserRepository
	Media       service.MediaStorage
	Geocoder    service.Geocoder
	Config      *config.Config
	Logger      *slog.Logger
}

// NewListingService is the constructor for listingService.
func NewListingService(params ListingServiceParams) usecase.ListingUsecase {
	fallback := ""
	if params.Config != nil && params.Config.Media != nil {
		fallback = params.Config.Media.FallbackImageURL
	}

	return &listingService{
		listingRepo:      params.ListingRepo,
		userRepo:         params.UserRepo,
		media:            params.Media,
		geocoder:         params.Geocoder,
		fallbackImageURL: fallback,
		logger:           params.Logger,
	}
}

func (srv *listingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Publish runs the publication rules over a draft, stores its files, resolves
// its address and persists the listing.
func (srv *listingService) Publish(ctx context.Context, input usecase.PublishListingInput) (*usecase.PublishListingOutput, error) {
	srv.log(ctx).Info("Publishing listing",
		slog.Any("providerID", input.ProviderID),
		slog.String("category", input.Category.String()),
	)

	draft := policy.ListingDraft{
		Name:      input.Name,
		Category:  input.Category,
		Mode:      input.Mode,
		Price:     input.Price,
		ExpiresAt: input.ExpiresAt,
		Urgent:    input.Urgent,
	}
	if input.Prescription != nil {
		// The rules only need to know a prescription accompanies the draft;
		// the real URL is known after upload.
		draft.PrescriptionURL = input.Prescription.Filename
	}

	verdict, err := policy.EvaluateListing(draft, time.Now())
	if err != nil {
		return nil, err
	}

	imageURL := srv.storeUpload(ctx, "listings", input.Image, srv.fallbackImageURL)

	prescriptionURL := ""
	if input.Prescription != nil {
		prescriptionURL = srv.storeUpload(ctx, "prescriptions", input.Prescription, "")
		if prescriptionURL == "" {
			// A medicine listing without a readable prescription cannot be
			// audited, so the upload failure is fatal here.
			return nil, errors.Wrap(domainerrors.ErrUpstreamFailed, "failed to store prescription")
		}
	}

	address := input.Address
	if address == "" {
		resolved, geoErr := srv.geocoder.ReverseGeocode(ctx, input.Latitude, input.Longitude)
		if geoErr != nil {
			srv.log(ctx).Warn("Reverse geocoding failed, storing raw coordinates", slog.Any("error", geoErr))
			resolved = fmt.Sprintf("%.5f, %.5f", input.Latitude, input.Longitude)
		}
		address = resolved
	}

	listing := &entity.Listing{
		ProviderID:      input.ProviderID,
		Name:            input.Name,
		Category:        input.Category,
		Mode:            verdict.Mode,
		Price:           verdict.Price,
		ImageURL:        imageURL,
		PrescriptionURL: prescriptionURL,
		ExpiresAt:       input.ExpiresAt,
		Address:         address,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		Urgent:          verdict.Urgent,
		Status:          verdict.Status,
	}

	if err := srv.listingRepo.Create(ctx, listing); err != nil {
		return nil, errors.Wrap(err, "failed to persist listing")
	}

	srv.log(ctx).Debug("Listing published",
		slog.Any("listingID", listing.ID),
		slog.String("status", listing.Status.String()),
	)

	return &usecase.PublishListingOutput{Listing: listing, Notes: verdict.Notes}, nil
}

// storeUpload saves an optional upload and returns its public URL, or the
// fallback when the upload is missing or fails.
func (srv *listingService) storeUpload(ctx context.Context, prefix string, upload *usecase.Upload, fallback string) string {
	if upload == nil {
		return fallback
	}

	key := prefix + "/" + uuid.New().String() + path.Ext(upload.Filename)
	url, err := srv.media.Save(ctx, key, upload.ContentType, upload.Content)
	if err != nil {
		srv.log(ctx).Warn("Media upload failed", slog.String("key", key), slog.Any("error", err))

		return fallback
	}

	return url
}

// Search returns the public catalog: verified, unexpired listings with the
// urgent ones first. Callers that share their position get the distance to
// each listing and results ordered nearest first.
func (srv *listingService) Search(ctx context.Context, input usecase.SearchListingsInput) ([]*usecase.ListingWithDistance, error) {
	listings, err := srv.listingRepo.SearchVerified(ctx, repository.ListingFilter{
		Category: input.Category,
		Query:    input.Query,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search listings")
	}

	var origin *orb.Point
	if input.Latitude != nil && input.Longitude != nil {
		origin = &orb.Point{*input.Longitude, *input.Latitude}
	}

	results := make([]*usecase.ListingWithDistance, 0, len(listings))
	for _, listing := range listings {
		item := &usecase.ListingWithDistance{Listing: listing}
		if origin != nil {
			km := geo.Distance(*origin, orb.Point{listing.Longitude, listing.Latitude}) / 1000
			item.DistanceKM = &km
		}
		results = append(results, item)
	}

	// With an origin, nearest first within each urgency group. Without one the
	// repository's urgent-first, newest-first order stands.
	if origin != nil {
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Listing.Urgent != results[j].Listing.Urgent {
				return results[i].Listing.Urgent
			}

			return *results[i].DistanceKM < *results[j].DistanceKM
		})
	}

	return results, nil
}

// Get returns a single listing.
func (srv *listingService) Get(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	listing, err := srv.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, errors.Wrap(domainerrors.ErrListingNotFound, "listing lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find listing")
	}

	return listing, nil
}

// ListByProvider returns a provider's own listings.
func (srv *listingService) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Listing, error) {
	listings, err := srv.listingRepo.FindByProvider(ctx, providerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list provider listings")
	}

	return listings, nil
}

// Delete removes a listing. Only its provider or an administrator may do it.
func (srv *listingService) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	listing, err := srv.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return errors.Wrap(domainerrors.ErrListingNotFound, "listing lookup failed")
		}

		return errors.Wrap(err, "failed to find listing")
	}

	if listing.ProviderID != userID {
		user, err := srv.userRepo.FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to find user for delete check")
		}
		if !user.IsAdmin() {
			return errors.Wrap(domainerrors.ErrForbidden, "only the provider or an admin can delete a listing")
		}
	}

	if err := srv.listingRepo.Delete(ctx, listingID); err != nil {
		return errors.Wrap(err, "failed to delete listing")
	}

	srv.log(ctx).Info("Listing deleted", slog.Any("listingID", listingID), slog.Any("by", userID))

	return nil
}

// Checkout returns the listing a requester is about to commit to, with the
// ABO/Rh compatibility advisory when the listing is blood and the requester
// declared a blood type. The advisory never blocks the request.
func (srv *listingService) Checkout(ctx context.Context, userID, listingID uuid.UUID) (*usecase.CheckoutOutput, error) {
	listing, err := srv.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}

	output := &usecase.CheckoutOutput{Listing: listing}

	donorType, ok := listing.BloodTypeFromName()
	if !ok {
		return output, nil
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user for compatibility check")
	}
	if user.BloodType == nil {
		return output, nil
	}

	advice := &usecase.CompatibilityAdvice{
		DonorType:     donorType,
		RecipientType: *user.BloodType,
		Compatible:    donorType.CanDonateTo(*user.BloodType),
	}
	if advice.Compatible {
		advice.Message = fmt.Sprintf("La sangre %s es compatible con tu tipo %s.", donorType, *user.BloodType)
	} else {
		advice.Message = fmt.Sprintf("Atención: la sangre %s no es compatible con tu tipo %s.", donorType, *user.BloodType)
	}
	output.Compatibility = advice

	return output, nil
}
