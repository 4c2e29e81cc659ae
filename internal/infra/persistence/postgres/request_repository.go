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

// requestRepository implements the domain's RequestRepository interface using GORM.
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository is the constructor for requestRepository.
func NewRequestRepository(db *gorm.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

// Create persists a new supply request.
func (repo *requestRepository) Create(ctx context.Context, request *entity.SupplyRequest) error {
	requestM := fromRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrListingNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create supply request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// FindByID retrieves a request by ID with its listing preloaded.
func (repo *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SupplyRequest, error) {
	var requestM model.SupplyRequestModel
	if err := repo.db.WithContext(ctx).
		Preload("Listing").
		Where("id = ?", id).
		First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find supply request by id")
	}

	return toRequestDomain(&requestM), nil
}

// FindByRequester retrieves the requests a user has sent, newest first.
func (repo *requestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*entity.SupplyRequest, error) {
	var requestMs []model.SupplyRequestModel
	if err := repo.db.WithContext(ctx).
		Preload("Listing").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requestMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find requests by requester")
	}

	return toRequestDomainSlice(requestMs), nil
}

// FindByProvider retrieves the requests received against a provider's listings,
// newest first.
func (repo *requestRepository) FindByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.SupplyRequest, error) {
	var requestMs []model.SupplyRequestModel
	if err := repo.db.WithContext(ctx).
		Preload("Listing").
		Joins("JOIN listings ON listings.id = supply_requests.listing_id").
		Where("listings.provider_id = ?", providerID).
		Order("supply_requests.created_at DESC").
		Find(&requestMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find requests by provider")
	}

	return toRequestDomainSlice(requestMs), nil
}

// UpdateStatus sets a request's coordination status.
func (repo *requestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SupplyRequestModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update request status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRequestNotFound
	}

	return nil
}

// CountByStatus returns per-status request counts.
func (repo *requestRepository) CountByStatus(ctx context.Context) (map[entity.RequestStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	if err := repo.db.WithContext(ctx).
		Model(&model.SupplyRequestModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count requests by status")
	}

	counts := make(map[entity.RequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.RequestStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// --- Mapper Functions ---

// toRequestDomain converts a GORM SupplyRequestModel to a domain SupplyRequest entity.
func toRequestDomain(data *model.SupplyRequestModel) *entity.SupplyRequest {
	if data == nil {
		return nil
	}

	return &entity.SupplyRequest{
		ID:          data.ID,
		RequesterID: data.RequesterID,
		ListingID:   data.ListingID,
		Hospital:    data.Hospital,
		Status:      entity.RequestStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
		Listing:     toListingDomain(data.Listing),
	}
}

// fromRequestDomain converts a domain SupplyRequest entity to a GORM SupplyRequestModel.
func fromRequestDomain(data *entity.SupplyRequest) *model.SupplyRequestModel {
	if data == nil {
		return nil
	}

	return &model.SupplyRequestModel{
		ID:          data.ID,
		RequesterID: data.RequesterID,
		ListingID:   data.ListingID,
		Hospital:    data.Hospital,
		Status:      data.Status.String(),
	}
}

func toRequestDomainSlice(models []model.SupplyRequestModel) []*entity.SupplyRequest {
	requests := make([]*entity.SupplyRequest, 0, len(models))
	for i := range models {
		requests = append(requests, toRequestDomain(&models[i]))
	}

	return requests
}
