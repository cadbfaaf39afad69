package services

import (
	"context"
	"math"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/entities"
	"carbon-register/internal/repositories"
	"carbon-register/pkg/apperrors"
	"carbon-register/pkg/utils"
)

type SubmissionServiceInterface interface {
	SubmitBatch(ctx context.Context, rows []dto.CreateDataEntryDTO) (*dto.BatchSubmitResultDTO, error)
	SubmitEntry(ctx context.Context, row dto.CreateDataEntryDTO) (*dto.DataEntryDTO, error)
}

// SubmissionService turns validated rows into pending data entries. The
// batch path and the manual single-entry path share the same calculation
// and persistence contract; they differ only in row count.
type SubmissionService struct {
	entryRepo  repositories.DataEntryRepositoryInterface
	factorRepo repositories.EmissionFactorRepositoryInterface
	logger     *zap.Logger
}

func NewSubmissionService(
	entryRepo repositories.DataEntryRepositoryInterface,
	factorRepo repositories.EmissionFactorRepositoryInterface,
	logger *zap.Logger,
) SubmissionServiceInterface {
	return &SubmissionService{
		entryRepo:  entryRepo,
		factorRepo: factorRepo,
		logger:     logger,
	}
}

// SubmitBatch persists rows sequentially, one store write per row, logging
// progress as completed/total after each write. The first write failure
// aborts the batch immediately; rows already persisted stay persisted,
// there is no cross-row transaction.
func (s *SubmissionService) SubmitBatch(ctx context.Context, rows []dto.CreateDataEntryDTO) (*dto.BatchSubmitResultDTO, error) {
	submitterID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	total := len(rows)
	result := &dto.BatchSubmitResultDTO{
		BatchID:  batchID,
		Total:    total,
		EntryIDs: make([]uint64, 0, total),
	}

	for i, row := range rows {
		created, err := s.submitOne(ctx, row, submitterID)
		if err != nil {
			s.logger.Error("batch submission interrupted",
				zap.String("batch_id", batchID),
				zap.Int("completed", i),
				zap.Int("total", total),
				zap.Error(err),
			)
			return result, &apperrors.StoreError{Completed: i, Total: total, Err: err}
		}
		result.EntryIDs = append(result.EntryIDs, created.ID)
		result.Completed = i + 1
		s.logger.Info("batch progress",
			zap.String("batch_id", batchID),
			zap.Int("completed", result.Completed),
			zap.Int("total", total),
		)
	}

	return result, nil
}

// SubmitEntry is the manual single-record path.
func (s *SubmissionService) SubmitEntry(ctx context.Context, row dto.CreateDataEntryDTO) (*dto.DataEntryDTO, error) {
	submitterID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	created, err := s.submitOne(ctx, row, submitterID)
	if err != nil {
		return nil, err
	}
	return MapDataEntryToDTO(created), nil
}

// submitOne captures the factor's current value, computes the emission and
// writes one pending entry. The captured value is what the entry keeps even
// if the master factor changes afterwards.
func (s *SubmissionService) submitOne(ctx context.Context, row dto.CreateDataEntryDTO, submitterID uint64) (*entities.DataEntry, error) {
	factor, err := s.factorRepo.FindEmissionFactor(ctx, row.EmissionFactorID)
	if err != nil {
		return nil, err
	}
	if !factor.IsActive {
		return nil, apperrors.NewInvalidInputError("emission factor %q is no longer active", factor.Name)
	}

	entryDate, err := time.Parse("2006-01-02", row.EntryDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("entry_date must be YYYY-MM-DD")
	}
	if math.IsNaN(row.ActivityAmount) || math.IsInf(row.ActivityAmount, 0) || row.ActivityAmount < 0 {
		return nil, apperrors.NewInvalidInputError("activity_amount must be a non-negative number")
	}

	entry := entities.DataEntry{
		EntryDate:        entryDate,
		LocationID:       row.LocationID,
		DepartmentID:     row.DepartmentID,
		EmissionFactorID: factor.ID,
		ActivityType:     factor.Name,
		ActivityAmount:   row.ActivityAmount,
		FactorValue:      factor.Value,
		Emission:         CalculateEmission(row.ActivityAmount, factor.Value),
		SubmitterID:      submitterID,
		Notes:            null.NewString(row.Notes, row.Notes != ""),
	}

	return s.entryRepo.CreateDataEntry(ctx, entry)
}
