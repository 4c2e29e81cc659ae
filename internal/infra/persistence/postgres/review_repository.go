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

// reviewRepository implements the domain's ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a new review. The unique index on request_id makes a second
// review for the same request a constraint violation.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAlreadyReviewed.WrapMessage("request already reviewed")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

// FindByRequestID retrieves the review attached to a request, if any.
func (repo *reviewRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	if err := repo.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&reviewM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by request id")
	}

	return toReviewDomain(&reviewM), nil
}

// ListByReviewed retrieves the reviews written about a provider, newest first.
func (repo *reviewRepository) ListByReviewed(ctx context.Context, reviewedID uuid.UUID) ([]*entity.Review, error) {
	var reviewMs []model.ReviewModel
	if err := repo.db.WithContext(ctx).
		Where("reviewed_id = ?", reviewedID).
		Order("created_at DESC").
		Find(&reviewMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(reviewMs))
	for i := range reviewMs {
		reviews = append(reviews, toReviewDomain(&reviewMs[i]))
	}

	return reviews, nil
}

// AverageForReviewed returns the average star rating and review count for a provider.
func (repo *reviewRepository) AverageForReviewed(ctx context.Context, reviewedID uuid.UUID) (float64, int64, error) {
	type aggregate struct {
		Avg   float64
		Count int64
	}

	var agg aggregate
	if err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select("COALESCE(AVG(stars), 0) as avg, COUNT(*) as count").
		Where("reviewed_id = ?", reviewedID).
		Scan(&agg).Error; err != nil {
		return 0, 0, errors.Wrap(err, "failed to aggregate reviews")
	}

	return agg.Avg, agg.Count, nil
}

// --- Mapper Functions ---

// toReviewDomain converts a GORM ReviewModel to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:         data.ID,
		RequestID:  data.RequestID,
		ReviewerID: data.ReviewerID,
		ReviewedID: data.ReviewedID,
		Stars:      data.Stars,
		Comment:    data.Comment,
		CreatedAt:  data.CreatedAt,
	}
}

// fromReviewDomain converts a domain Review entity to a GORM ReviewModel.
func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:         data.ID,
		RequestID:  data.RequestID,
		ReviewerID: data.ReviewerID,
		ReviewedID: data.ReviewedID,
		Stars:      data.Stars,
		Comment:    data.Comment,
	}
}
