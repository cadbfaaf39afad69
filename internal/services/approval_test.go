package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-register/internal/entities"
	"carbon-register/pkg/apperrors"
)

func seedPendingEntry(t *testing.T, repo *fakeDataEntryRepo) uint64 {
	t.Helper()
	entry, err := repo.CreateDataEntry(context.Background(), entities.DataEntry{
		EntryDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LocationID:       1,
		DepartmentID:     10,
		EmissionFactorID: 100,
		ActivityType:     "電力",
		ActivityAmount:   1000,
		FactorValue:      0.000495,
		Emission:         0.495,
		SubmitterID:      7,
	})
	require.NoError(t, err)
	return entry.ID
}

func TestApproveSetsApprovalFields(t *testing.T) {
	repo := newFakeDataEntryRepo()
	svc := NewApprovalService(repo, zap.NewNop())
	id := seedPendingEntry(t, repo)

	approved, err := svc.Approve(ctxWithUser(42), id)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, uint64(42), *approved.ApprovedBy)
	assert.NotEmpty(t, approved.ApprovedAt)
}

func TestApproveNonPendingEntryIsConflict(t *testing.T) {
	repo := newFakeDataEntryRepo()
	svc := NewApprovalService(repo, zap.NewNop())
	id := seedPendingEntry(t, repo)

	_, err := svc.Approve(ctxWithUser(42), id)
	require.NoError(t, err)

	// A second reviewer acting on the same entry loses the race.
	_, err = svc.Approve(ctxWithUser(43), id)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Reject(ctxWithUser(43), id, "duplicate record")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestApproveMissingEntryIsNotFound(t *testing.T) {
	svc := NewApprovalService(newFakeDataEntryRepo(), zap.NewNop())

	_, err := svc.Approve(ctxWithUser(42), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRejectStoresReason(t *testing.T) {
	repo := newFakeDataEntryRepo()
	svc := NewApprovalService(repo, zap.NewNop())
	id := seedPendingEntry(t, repo)

	rejected, err := svc.Reject(ctxWithUser(42), id, "amount looks implausible")
	require.NoError(t, err)

	assert.Equal(t, entities.StatusRejected, rejected.Status)
	assert.Equal(t, "amount looks implausible", rejected.RejectionReason)
}

func TestRejectEmptyReasonNeverReachesStore(t *testing.T) {
	repo := newFakeDataEntryRepo()
	svc := NewApprovalService(repo, zap.NewNop())
	id := seedPendingEntry(t, repo)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := svc.Reject(ctxWithUser(42), id, reason)

		var invalidErr *apperrors.InvalidInputError
		require.ErrorAs(t, err, &invalidErr)
	}

	// The entry is untouched and still reviewable.
	stored, err := repo.FindDataEntry(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPending, stored.Status)
}

func TestApprovalRequiresAuthenticatedReviewer(t *testing.T) {
	repo := newFakeDataEntryRepo()
	svc := NewApprovalService(repo, zap.NewNop())
	id := seedPendingEntry(t, repo)

	_, err := svc.Approve(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)

	_, err = svc.Reject(context.Background(), id, "reason")
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
}
