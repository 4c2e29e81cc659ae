package policy

import (
	"testing"
	"time"

	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func TestEvaluateListing_BloodCoercedToFreeDonation(t *testing.T) {
	res, err := EvaluateListing(ListingDraft{
		Name:     "Bolsa de Sangre O- 450ml",
		Category: entity.CategoryBlood,
		Mode:     entity.ModeSale,
		Price:    500,
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, entity.ModeDonation, res.Mode)
	assert.Equal(t, 0.0, res.Price)
	assert.True(t, res.Urgent, "blood is always treated as critical")
	assert.Equal(t, entity.ListingPending, res.Status)
	assert.NotEmpty(t, res.Notes, "coercion must be advised to the submitter")
}

func TestEvaluateListing_BloodAlreadyCompliantHasNoNotes(t *testing.T) {
	res, err := EvaluateListing(ListingDraft{
		Category: entity.CategoryBlood,
		Mode:     entity.ModeDonation,
		Price:    0,
	}, testNow)

	require.NoError(t, err)
	assert.Empty(t, res.Notes)
	assert.True(t, res.Urgent)
}

func TestEvaluateListing_MedicineRequiresPrescription(t *testing.T) {
	_, err := EvaluateListing(ListingDraft{
		Category: entity.CategoryMedicine,
		Mode:     entity.ModeSale,
		Price:    120,
	}, testNow)

	assert.ErrorIs(t, err, domainerrors.ErrPrescriptionRequired)
}

func TestEvaluateListing_MedicineWithPrescriptionIsPending(t *testing.T) {
	res, err := EvaluateListing(ListingDraft{
		Category:        entity.CategoryMedicine,
		Mode:            entity.ModeSale,
		Price:           120,
		PrescriptionURL: "https://media.example/receta.pdf",
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, entity.ListingPending, res.Status)
	assert.Equal(t, 120.0, res.Price)
}

func TestEvaluateListing_OrthopedicUrgencyCleared(t *testing.T) {
	res, err := EvaluateListing(ListingDraft{
		Category: entity.CategoryOrthopedic,
		Mode:     entity.ModeDonation,
		Urgent:   true,
	}, testNow)

	require.NoError(t, err)
	assert.False(t, res.Urgent)
	assert.NotEmpty(t, res.Notes)
	assert.Equal(t, entity.ListingVerified, res.Status)
}

func TestEvaluateListing_EquipmentVerifiedImmediately(t *testing.T) {
	res, err := EvaluateListing(ListingDraft{
		Category: entity.CategoryEquipment,
		Mode:     entity.ModeSale,
		Price:    80,
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, entity.ListingVerified, res.Status)
	assert.Empty(t, res.Notes)
}

func TestEvaluateListing_DonationPriceZeroed(t *testing.T) {
	res, err := EvaluateListing(ListingDraft{
		Category: entity.CategoryEquipment,
		Mode:     entity.ModeDonation,
		Price:    999,
	}, testNow)

	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Price)
}

func TestEvaluateListing_PastExpirationRejected(t *testing.T) {
	expired := testNow.AddDate(0, 0, -1)
	_, err := EvaluateListing(ListingDraft{
		Category:  entity.CategoryEquipment,
		Mode:      entity.ModeSale,
		ExpiresAt: &expired,
	}, testNow)

	assert.ErrorIs(t, err, domainerrors.ErrListingExpired)
}

func TestEvaluateListing_SameDayExpirationAccepted(t *testing.T) {
	sameDay := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err := EvaluateListing(ListingDraft{
		Category:  entity.CategoryEquipment,
		Mode:      entity.ModeSale,
		ExpiresAt: &sameDay,
	}, testNow)

	assert.NoError(t, err)
}

func TestEvaluateListing_InvalidInputs(t *testing.T) {
	_, err := EvaluateListing(ListingDraft{Category: "Juguetes", Mode: entity.ModeSale}, testNow)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCategory)

	_, err = EvaluateListing(ListingDraft{Category: entity.CategoryEquipment, Mode: "Prestamo"}, testNow)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPublishMode)

	_, err = EvaluateListing(ListingDraft{Category: entity.CategoryEquipment, Mode: entity.ModeSale, Price: -5}, testNow)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPrice)
}
