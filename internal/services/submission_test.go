package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/entities"
	"carbon-register/pkg/apperrors"
)

func activeFactor() entities.EmissionFactor {
	return entities.EmissionFactor{
		ID: 100, Name: "電力", Category: "購入電力", Scope: entities.Scope2,
		Unit: "kWh", Value: 0.000495, IsActive: true,
	}
}

func batchRow(date string, amount float64) dto.CreateDataEntryDTO {
	return dto.CreateDataEntryDTO{
		EntryDate:        date,
		LocationID:       1,
		DepartmentID:     10,
		EmissionFactorID: 100,
		ActivityAmount:   amount,
	}
}

func TestSubmitBatchPersistsEveryRow(t *testing.T) {
	entryRepo := newFakeDataEntryRepo()
	factorRepo := newFakeEmissionFactorRepo(activeFactor())
	svc := NewSubmissionService(entryRepo, factorRepo, zap.NewNop())

	rows := []dto.CreateDataEntryDTO{
		batchRow("2024-01-01", 1000),
		batchRow("2024-01-02", 500),
		batchRow("2024-01-03", 250),
	}

	result, err := svc.SubmitBatch(ctxWithUser(7), rows)
	require.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 3, result.Completed)
	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.EntryIDs, 3)

	first, err := entryRepo.FindDataEntry(context.Background(), result.EntryIDs[0])
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPending, first.Status)
	assert.Equal(t, uint64(7), first.SubmitterID)
	assert.Equal(t, 0.000495, first.FactorValue)
	assert.InDelta(t, 0.495, first.Emission, 1e-12)
	assert.Equal(t, "電力", first.ActivityType)
}

func TestSubmitBatchPartialFailureKeepsEarlierRows(t *testing.T) {
	entryRepo := newFakeDataEntryRepo()
	entryRepo.failOnCreate = 3
	factorRepo := newFakeEmissionFactorRepo(activeFactor())
	svc := NewSubmissionService(entryRepo, factorRepo, zap.NewNop())

	rows := []dto.CreateDataEntryDTO{
		batchRow("2024-01-01", 1000),
		batchRow("2024-01-02", 500),
		batchRow("2024-01-03", 250),
		batchRow("2024-01-04", 100),
	}

	result, err := svc.SubmitBatch(ctxWithUser(7), rows)

	var storeErr *apperrors.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, 2, storeErr.Completed)
	assert.Equal(t, 4, storeErr.Total)

	// The first two rows stay persisted; nothing is rolled back.
	require.NotNil(t, result)
	assert.Len(t, result.EntryIDs, 2)
	for _, id := range result.EntryIDs {
		_, findErr := entryRepo.FindDataEntry(context.Background(), id)
		assert.NoError(t, findErr)
	}
}

func TestSubmitBatchRequiresAuthenticatedSubmitter(t *testing.T) {
	svc := NewSubmissionService(newFakeDataEntryRepo(), newFakeEmissionFactorRepo(activeFactor()), zap.NewNop())

	_, err := svc.SubmitBatch(context.Background(), []dto.CreateDataEntryDTO{batchRow("2024-01-01", 1)})
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
}

func TestSubmitEntryCapturesFactorValueAtSubmission(t *testing.T) {
	entryRepo := newFakeDataEntryRepo()
	factorRepo := newFakeEmissionFactorRepo(activeFactor())
	svc := NewSubmissionService(entryRepo, factorRepo, zap.NewNop())

	created, err := svc.SubmitEntry(ctxWithUser(7), batchRow("2024-06-15", 200))
	require.NoError(t, err)

	// Change the master factor after submission; the entry keeps the
	// captured value.
	updated := activeFactor()
	updated.Value = 0.00099
	factorRepo.factors[updated.ID] = updated

	stored, err := entryRepo.FindDataEntry(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.000495, stored.FactorValue)
	assert.InDelta(t, 200*0.000495, stored.Emission, 1e-12)
}

func TestSubmitEntryRejectsInactiveFactor(t *testing.T) {
	inactive := activeFactor()
	inactive.IsActive = false
	svc := NewSubmissionService(newFakeDataEntryRepo(), newFakeEmissionFactorRepo(inactive), zap.NewNop())

	_, err := svc.SubmitEntry(ctxWithUser(7), batchRow("2024-01-01", 100))

	var invalidErr *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestSubmitEntryRejectsUnknownFactor(t *testing.T) {
	svc := NewSubmissionService(newFakeDataEntryRepo(), newFakeEmissionFactorRepo(), zap.NewNop())

	_, err := svc.SubmitEntry(ctxWithUser(7), batchRow("2024-01-01", 100))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubmitEntryRejectsNonFiniteAmount(t *testing.T) {
	entryRepo := newFakeDataEntryRepo()
	svc := NewSubmissionService(entryRepo, newFakeEmissionFactorRepo(activeFactor()), zap.NewNop())

	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -5} {
		_, err := svc.SubmitEntry(ctxWithUser(7), batchRow("2024-01-01", amount))

		var invalidErr *apperrors.InvalidInputError
		require.ErrorAs(t, err, &invalidErr)
	}
	assert.Zero(t, entryRepo.createCalls, "nothing may reach the store")
}

func TestSubmitEntryRejectsBadDate(t *testing.T) {
	svc := NewSubmissionService(newFakeDataEntryRepo(), newFakeEmissionFactorRepo(activeFactor()), zap.NewNop())

	_, err := svc.SubmitEntry(ctxWithUser(7), batchRow("2024/01/01", 100))

	var invalidErr *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidErr)
}
