package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"lifelink/config"
	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingTestDeps struct {
	listingRepo *fakeListingRepo
	userRepo    *fakeUserRepo
	media       *fakeMedia
	geocoder    *fakeGeocoder
}

func newListingServiceForTest() (usecase.ListingUsecase, *listingTestDeps) {
	deps := &listingTestDeps{
		listingRepo: newFakeListingRepo(),
		userRepo:    newFakeUserRepo(),
		media:       &fakeMedia{},
		geocoder:    &fakeGeocoder{address: "Av. Reforma 123, CDMX"},
	}

	cfg := &config.Config{}
	cfg.Media = &config.MediaConfig{FallbackImageURL: "https://media.test/fallback.png"}

	svc := NewListingService(ListingServiceParams{
		ListingRepo: deps.listingRepo,
		UserRepo:    deps.userRepo,
		Media:       deps.media,
		Geocoder:    deps.geocoder,
		Config:      cfg,
		Logger:      testLogger(),
	})

	return svc, deps
}

func TestListingService_PublishBloodCoercion(t *testing.T) {
	svc, deps := newListingServiceForTest()
	providerID := uuid.New()

	out, err := svc.Publish(context.Background(), usecase.PublishListingInput{
		ProviderID: providerID,
		Name:       "Bolsa de Sangre O- 450ml",
		Category:   entity.CategoryBlood,
		Mode:       entity.ModeSale,
		Price:      1500,
		Latitude:   19.4326,
		Longitude:  -99.1332,
	})
	require.NoError(t, err)

	// Blood is never sold: the published listing is a free urgent donation
	// awaiting verification.
	assert.Equal(t, entity.ModeDonation, out.Listing.Mode)
	assert.Zero(t, out.Listing.Price)
	assert.True(t, out.Listing.Urgent)
	assert.Equal(t, entity.ListingPending, out.Listing.Status)
	assert.NotEmpty(t, out.Notes)

	stored, err := deps.listingRepo.FindByID(context.Background(), out.Listing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ModeDonation, stored.Mode)
	assert.Zero(t, stored.Price)
}

func TestListingService_PublishMedicineWithoutPrescription(t *testing.T) {
	svc, _ := newListingServiceForTest()

	_, err := svc.Publish(context.Background(), usecase.PublishListingInput{
		ProviderID: uuid.New(),
		Name:       "Insulina Glargina",
		Category:   entity.CategoryMedicine,
		Mode:       entity.ModeSale,
		Price:      300,
	})
	assert.ErrorIs(t, err, domainerrors.ErrPrescriptionRequired)
}

func TestListingService_PublishPrescriptionUploadFailureIsFatal(t *testing.T) {
	svc, deps := newListingServiceForTest()
	deps.media.failing = true

	_, err := svc.Publish(context.Background(), usecase.PublishListingInput{
		ProviderID: uuid.New(),
		Name:       "Insulina Glargina",
		Category:   entity.CategoryMedicine,
		Mode:       entity.ModeSale,
		Price:      300,
		Prescription: &usecase.Upload{
			Filename:    "receta.pdf",
			ContentType: "application/pdf",
			Content:     strings.NewReader("%PDF-1.4"),
		},
	})
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailed)
}

func TestListingService_PublishImageUploadFailureFallsBack(t *testing.T) {
	svc, deps := newListingServiceForTest()
	deps.media.failing = true

	out, err := svc.Publish(context.Background(), usecase.PublishListingInput{
		ProviderID: uuid.New(),
		Name:       "Silla de ruedas plegable",
		Category:   entity.CategoryOrthopedic,
		Mode:       entity.ModeSale,
		Price:      2000,
		Image: &usecase.Upload{
			Filename:    "silla.jpg",
			ContentType: "image/jpeg",
			Content:     strings.NewReader("jpeg-bytes"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://media.test/fallback.png", out.Listing.ImageURL)
}

func TestListingService_PublishStoresUploads(t *testing.T) {
	svc, deps := newListingServiceForTest()

	out, err := svc.Publish(context.Background(), usecase.PublishListingInput{
		ProviderID: uuid.New(),
		Name:       "Insulina Glargina",
		Category:   entity.CategoryMedicine,
		Mode:       entity.ModeDonation,
		Image: &usecase.Upload{
			Filename:    "caja.png",
			ContentType: "image/png",
			Content:     strings.NewReader("png-bytes"),
		},
		Prescription: &usecase.Upload{
			Filename:    "receta.pdf",
			ContentType: "application/pdf",
			Content:     strings.NewReader("%PDF-1.4"),
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Listing.ImageURL, "https://media.test/listings/"))
	assert.True(t, strings.HasSuffix(out.Listing.ImageURL, ".png"))
	assert.True(t, strings.HasPrefix(out.Listing.PrescriptionURL, "https://media.test/prescriptions/"))
	assert.Len(t, deps.media.saved, 2)
}

func TestListingService_PublishGeocodeFallback(t *testing.T) {
	svc, deps := newListingServiceForTest()
	deps.geocoder.err = context.DeadlineExceeded
	deps.geocoder.address = ""

	out, err := svc.Publish(context.Background(), usecase.PublishListingInput{
		ProviderID: uuid.New(),
		Name:       "Muletas de aluminio",
		Category:   entity.CategoryEquipment,
		Mode:       entity.ModeDonation,
		Latitude:   19.4326,
		Longitude:  -99.1332,
	})
	require.NoError(t, err)
	assert.Equal(t, "19.43260, -99.13320", out.Listing.Address)
}

func TestListingService_PublishExpiredStock(t *testing.T) {
	svc, _ := newListingServiceForTest()
	yesterday := time.Now().AddDate(0, 0, -1)

	_, err := svc.Publish(context.Background(), usecase.PublishListingInput{
		ProviderID: uuid.New(),
		Name:       "Paracetamol 500mg",
		Category:   entity.CategoryMedicine,
		Mode:       entity.ModeDonation,
		ExpiresAt:  &yesterday,
		Prescription: &usecase.Upload{
			Filename:    "receta.pdf",
			ContentType: "application/pdf",
			Content:     strings.NewReader("%PDF-1.4"),
		},
	})
	assert.ErrorIs(t, err, domainerrors.ErrListingExpired)
}

func seedVerifiedListing(t *testing.T, repo *fakeListingRepo, name string, lat, lon float64) *entity.Listing {
	t.Helper()

	listing := &entity.Listing{
		ProviderID: uuid.New(),
		Name:       name,
		Category:   entity.CategoryEquipment,
		Mode:       entity.ModeDonation,
		Latitude:   lat,
		Longitude:  lon,
		Status:     entity.ListingVerified,
	}
	require.NoError(t, repo.Create(context.Background(), listing))

	return listing
}

func TestListingService_SearchWithDistance(t *testing.T) {
	svc, deps := newListingServiceForTest()
	seedVerifiedListing(t, deps.listingRepo, "Tanque de oxígeno", 19.4326, -99.1332)

	lat, lon := 19.4326, -99.1432

	results, err := svc.Search(context.Background(), usecase.SearchListingsInput{
		Latitude:  &lat,
		Longitude: &lon,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].DistanceKM)
	// Roughly one hundredth of a degree of longitude at CDMX latitude.
	assert.InDelta(t, 1.05, *results[0].DistanceKM, 0.2)
}

func TestListingService_SearchOrdersByDistance(t *testing.T) {
	svc, deps := newListingServiceForTest()

	// Monterrey is roughly 700 km from CDMX. The farther listing is created
	// last, so creation order alone would put it first.
	near := seedVerifiedListing(t, deps.listingRepo, "Silla de ruedas", 19.4326, -99.1332)
	far := seedVerifiedListing(t, deps.listingRepo, "Tanque de oxígeno", 25.6866, -100.3161)

	lat, lon := 19.4326, -99.1332

	results, err := svc.Search(context.Background(), usecase.SearchListingsInput{
		Latitude:  &lat,
		Longitude: &lon,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, near.ID, results[0].Listing.ID)
	assert.Equal(t, far.ID, results[1].Listing.ID)
	assert.Less(t, *results[0].DistanceKM, *results[1].DistanceKM)

	// Urgency still outranks proximity.
	urgent := seedVerifiedListing(t, deps.listingRepo, "Desfibrilador portátil", 25.6866, -100.3161)
	urgent.Urgent = true
	require.NoError(t, deps.listingRepo.Create(context.Background(), urgent))

	results, err = svc.Search(context.Background(), usecase.SearchListingsInput{
		Latitude:  &lat,
		Longitude: &lon,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, urgent.ID, results[0].Listing.ID)
	assert.Equal(t, near.ID, results[1].Listing.ID)
	assert.Equal(t, far.ID, results[2].Listing.ID)
}

func TestListingService_SearchExcludesExpiredAndFiltersByName(t *testing.T) {
	svc, deps := newListingServiceForTest()

	fresh := seedVerifiedListing(t, deps.listingRepo, "Tanque de oxígeno", 0, 0)
	stale := seedVerifiedListing(t, deps.listingRepo, "Oxímetro de pulso", 0, 0)
	yesterday := time.Now().AddDate(0, 0, -1)
	stale.ExpiresAt = &yesterday
	require.NoError(t, deps.listingRepo.Create(context.Background(), stale))
	seedVerifiedListing(t, deps.listingRepo, "Muletas de aluminio", 0, 0)

	results, err := svc.Search(context.Background(), usecase.SearchListingsInput{Query: "oxígeno"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, fresh.ID, results[0].Listing.ID)

	// The name match is case-insensitive.
	results, err = svc.Search(context.Background(), usecase.SearchListingsInput{Query: "OXÍGENO"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestListingService_SearchWithoutPosition(t *testing.T) {
	svc, deps := newListingServiceForTest()
	seedVerifiedListing(t, deps.listingRepo, "Tanque de oxígeno", 19.4326, -99.1332)

	results, err := svc.Search(context.Background(), usecase.SearchListingsInput{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].DistanceKM)
}

func TestListingService_Delete(t *testing.T) {
	svc, deps := newListingServiceForTest()
	listing := seedVerifiedListing(t, deps.listingRepo, "Andadera", 0, 0)

	admin := &entity.User{Email: "admin@lifelink.mx", Name: "Admin", Role: entity.RoleAdmin}
	require.NoError(t, deps.userRepo.Create(context.Background(), admin))
	stranger := &entity.User{Email: "otro@example.com", Name: "Otro", Role: entity.RoleUser}
	require.NoError(t, deps.userRepo.Create(context.Background(), stranger))

	err := svc.Delete(context.Background(), stranger.ID, listing.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), listing.ProviderID, listing.ID))

	other := seedVerifiedListing(t, deps.listingRepo, "Bastón", 0, 0)
	require.NoError(t, svc.Delete(context.Background(), admin.ID, other.ID))
}

func TestListingService_CheckoutCompatibility(t *testing.T) {
	svc, deps := newListingServiceForTest()

	recipientType := entity.BloodAPos
	recipient := &entity.User{Email: "ana@example.com", Name: "Ana", BloodType: &recipientType, Role: entity.RoleUser}
	require.NoError(t, deps.userRepo.Create(context.Background(), recipient))

	compatible := seedVerifiedListing(t, deps.listingRepo, "Bolsa de Sangre O- 450ml", 0, 0)
	compatible.Category = entity.CategoryBlood
	require.NoError(t, deps.listingRepo.Create(context.Background(), compatible))

	out, err := svc.Checkout(context.Background(), recipient.ID, compatible.ID)
	require.NoError(t, err)
	require.NotNil(t, out.Compatibility)
	assert.True(t, out.Compatibility.Compatible)
	assert.Equal(t, entity.BloodONeg, out.Compatibility.DonorType)
	assert.Contains(t, out.Compatibility.Message, "compatible")

	incompatible := seedVerifiedListing(t, deps.listingRepo, "Bolsa de Sangre AB+ 450ml", 0, 0)
	incompatible.Category = entity.CategoryBlood
	require.NoError(t, deps.listingRepo.Create(context.Background(), incompatible))

	out, err = svc.Checkout(context.Background(), recipient.ID, incompatible.ID)
	require.NoError(t, err)
	require.NotNil(t, out.Compatibility)
	assert.False(t, out.Compatibility.Compatible)
	assert.Contains(t, out.Compatibility.Message, "Atención")
}

func TestListingService_CheckoutWithoutAdvice(t *testing.T) {
	svc, deps := newListingServiceForTest()

	user := &entity.User{Email: "ana@example.com", Name: "Ana", Role: entity.RoleUser}
	require.NoError(t, deps.userRepo.Create(context.Background(), user))

	equipment := seedVerifiedListing(t, deps.listingRepo, "Nebulizador", 0, 0)

	out, err := svc.Checkout(context.Background(), user.ID, equipment.ID)
	require.NoError(t, err)
	assert.Nil(t, out.Compatibility)
}
