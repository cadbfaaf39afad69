package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/repositories"
	"carbon-register/pkg/apperrors"
	"carbon-register/pkg/utils"
)

type ApprovalServiceInterface interface {
	Approve(ctx context.Context, entryID uint64) (*dto.DataEntryDTO, error)
	Reject(ctx context.Context, entryID uint64, reason string) (*dto.DataEntryDTO, error)
}

// ApprovalService drives the pending -> approved|rejected state machine.
// Both transitions run as guarded conditional updates in the repository, so
// a reviewer acting on stale state gets ErrConflict instead of silently
// overwriting a terminal entry.
type ApprovalService struct {
	entryRepo repositories.DataEntryRepositoryInterface
	logger    *zap.Logger
}

func NewApprovalService(entryRepo repositories.DataEntryRepositoryInterface, logger *zap.Logger) ApprovalServiceInterface {
	return &ApprovalService{entryRepo: entryRepo, logger: logger}
}

func (s *ApprovalService) Approve(ctx context.Context, entryID uint64) (*dto.DataEntryDTO, error) {
	approverID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.ApproveDataEntry(ctx, entryID, approverID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("entry approved",
		zap.Uint64("entry_id", entryID),
		zap.Uint64("approved_by", approverID),
	)
	return MapDataEntryToDTO(entry), nil
}

func (s *ApprovalService) Reject(ctx context.Context, entryID uint64, reason string) (*dto.DataEntryDTO, error) {
	if _, err := utils.GetUserIDFromCtx(ctx); err != nil {
		return nil, err
	}

	// An empty reason never reaches the store.
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewInvalidInputError("rejection reason is required")
	}

	entry, err := s.entryRepo.RejectDataEntry(ctx, entryID, reason)
	if err != nil {
		return nil, err
	}

	s.logger.Info("entry rejected",
		zap.Uint64("entry_id", entryID),
		zap.String("reason", reason),
	)
	return MapDataEntryToDTO(entry), nil
}
