package postgres

import (
	"context"
	"time"

	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/domain/repository"
	"lifelink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// listingRepository implements the domain's ListingRepository interface using GORM.
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository is the constructor for listingRepository.
func NewListingRepository(db *gorm.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

// Create persists a new listing.
func (repo *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	listingM := fromListingDomain(listing)

	if err := repo.db.WithContext(ctx).Create(listingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("provider does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create listing")
	}

	listing.ID = listingM.ID
	listing.CreatedAt = listingM.CreatedAt
	listing.UpdatedAt = listingM.UpdatedAt

	return nil
}

// FindByID retrieves a single listing by its unique ID.
func (repo *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	var listingM model.ListingModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&listingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to find listing by id")
	}

	return toListingDomain(&listingM), nil
}

// FindByProvider retrieves every listing a provider has published, newest first.
func (repo *listingRepository) FindByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Listing, error) {
	var listingMs []model.ListingModel
	if err := repo.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&listingMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find listings by provider")
	}

	return toListingDomainSlice(listingMs), nil
}

// SearchVerified retrieves verified, unexpired listings matching the filter.
// Urgent listings come first, newest first within each group. Expiry is
// compared against the start of the current day so same-day stock stays
// visible.
func (repo *listingRepository) SearchVerified(ctx context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	query := repo.db.WithContext(ctx).
		Where("status = ?", entity.ListingVerified.String()).
		Where("expires_at IS NULL OR expires_at >= ?", dayStart)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.Query != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Query+"%")
	}

	var listingMs []model.ListingModel
	if err := query.
		Order("urgent DESC, created_at DESC").
		Find(&listingMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search listings")
	}

	return toListingDomainSlice(listingMs), nil
}

// FindPending retrieves listings awaiting administrator review, oldest first.
func (repo *listingRepository) FindPending(ctx context.Context) ([]*entity.Listing, error) {
	var listingMs []model.ListingModel
	if err := repo.db.WithContext(ctx).
		Where("status = ?", entity.ListingPending.String()).
		Order("created_at ASC").
		Find(&listingMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find pending listings")
	}

	return toListingDomainSlice(listingMs), nil
}

// UpdateStatus sets a listing's review status.
func (repo *listingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update listing status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// Reserve atomically moves a verified listing to the reserved status.
// The conditional UPDATE serializes concurrent donation requests: only the
// first one matches a row, later ones get ErrListingNotReservable.
func (repo *listingRepository) Reserve(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("id = ? AND status = ?", id, entity.ListingVerified.String()).
		Update("status", entity.ListingReserved.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to reserve listing")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListingNotReservable
	}

	return nil
}

// Delete removes a listing.
func (repo *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ListingModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete listing")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// CountByStatus returns per-status listing counts.
func (repo *listingRepository) CountByStatus(ctx context.Context) (map[entity.ListingStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	if err := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count listings by status")
	}

	counts := make(map[entity.ListingStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.ListingStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// --- Mapper Functions ---

// toListingDomain converts a GORM ListingModel to a domain Listing entity.
func toListingDomain(data *model.ListingModel) *entity.Listing {
	if data == nil {
		return nil
	}

	return &entity.Listing{
		ID:              data.ID,
		ProviderID:      data.ProviderID,
		Name:            data.Name,
		Category:        entity.Category(data.Category),
		Mode:            entity.PublishMode(data.Mode),
		Price:           data.Price,
		ImageURL:        data.ImageURL,
		PrescriptionURL: data.PrescriptionURL,
		ExpiresAt:       data.ExpiresAt,
		Address:         data.Address,
		Latitude:        data.Latitude,
		Longitude:       data.Longitude,
		Urgent:          data.Urgent,
		Status:          entity.ListingStatus(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromListingDomain converts a domain Listing entity to a GORM ListingModel.
func fromListingDomain(data *entity.Listing) *model.ListingModel {
	if data == nil {
		return nil
	}

	return &model.ListingModel{
		ID:              data.ID,
		ProviderID:      data.ProviderID,
		Name:            data.Name,
		Category:        data.Category.String(),
		Mode:            data.Mode.String(),
		Price:           data.Price,
		ImageURL:        data.ImageURL,
		PrescriptionURL: data.PrescriptionURL,
		ExpiresAt:       data.ExpiresAt,
		Address:         data.Address,
		Latitude:        data.Latitude,
		Longitude:       data.Longitude,
		Urgent:          data.Urgent,
		Status:          data.Status.String(),
	}
}

func toListingDomainSlice(models []model.ListingModel) []*entity.Listing {
	listings := make([]*entity.Listing, 0, len(models))
	for i := range models {
		listings = append(listings, toListingDomain(&models[i]))
	}

	return listings
}
