package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/entities"
	"carbon-register/internal/repositories"
	"carbon-register/pkg/apperrors"
	"carbon-register/pkg/types"
)

type EmissionFactorServiceInterface interface {
	GetEmissionFactors(ctx context.Context, filter types.Filter) ([]dto.EmissionFactorDTO, uint64, error)
	FindEmissionFactor(ctx context.Context, id uint64) (*dto.EmissionFactorDTO, error)
	CreateEmissionFactor(ctx context.Context, payload dto.CreateEmissionFactorDTO) (*dto.EmissionFactorDTO, error)
	UpdateEmissionFactor(ctx context.Context, id uint64, payload dto.UpdateEmissionFactorDTO) (*dto.EmissionFactorDTO, error)
	DeactivateEmissionFactor(ctx context.Context, id uint64) error
}

type EmissionFactorService struct {
	factorRepo repositories.EmissionFactorRepositoryInterface
	masterData MasterDataServiceInterface
	logger     *zap.Logger
}

func NewEmissionFactorService(
	factorRepo repositories.EmissionFactorRepositoryInterface,
	masterData MasterDataServiceInterface,
	logger *zap.Logger,
) EmissionFactorServiceInterface {
	return &EmissionFactorService{factorRepo: factorRepo, masterData: masterData, logger: logger}
}

func mapEmissionFactorToDTO(f *entities.EmissionFactor) *dto.EmissionFactorDTO {
	out := &dto.EmissionFactorDTO{
		ID:        f.ID,
		Name:      f.Name,
		Category:  f.Category,
		Scope:     f.Scope,
		Unit:      f.Unit,
		Value:     f.Value,
		ValidFrom: f.ValidFrom.Format("2006-01-02"),
		IsActive:  f.IsActive,
	}
	if f.ValidUntil.Valid {
		out.ValidUntil = f.ValidUntil.Time.Format("2006-01-02")
	}
	return out
}

func (s *EmissionFactorService) GetEmissionFactors(ctx context.Context, filter types.Filter) ([]dto.EmissionFactorDTO, uint64, error) {
	factors, total, err := s.factorRepo.GetEmissionFactors(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.EmissionFactorDTO, 0, len(factors))
	for i := range factors {
		result = append(result, *mapEmissionFactorToDTO(&factors[i]))
	}
	return result, total, nil
}

func (s *EmissionFactorService) FindEmissionFactor(ctx context.Context, id uint64) (*dto.EmissionFactorDTO, error) {
	factor, err := s.factorRepo.FindEmissionFactor(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapEmissionFactorToDTO(factor), nil
}

func (s *EmissionFactorService) CreateEmissionFactor(ctx context.Context, payload dto.CreateEmissionFactorDTO) (*dto.EmissionFactorDTO, error) {
	validFrom, err := time.Parse("2006-01-02", payload.ValidFrom)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("valid_from must be YYYY-MM-DD")
	}

	created, err := s.factorRepo.CreateEmissionFactor(ctx, entities.EmissionFactor{
		Name:      payload.Name,
		Category:  payload.Category,
		Scope:     payload.Scope,
		Unit:      payload.Unit,
		Value:     payload.Value,
		ValidFrom: validFrom,
	})
	if err != nil {
		s.logger.Error("failed to create emission factor", zap.Error(err))
		return nil, err
	}
	s.masterData.InvalidateSnapshot(ctx)
	return mapEmissionFactorToDTO(created), nil
}

func (s *EmissionFactorService) UpdateEmissionFactor(ctx context.Context, id uint64, payload dto.UpdateEmissionFactorDTO) (*dto.EmissionFactorDTO, error) {
	updated, err := s.factorRepo.UpdateEmissionFactor(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.masterData.InvalidateSnapshot(ctx)
	return mapEmissionFactorToDTO(updated), nil
}

func (s *EmissionFactorService) DeactivateEmissionFactor(ctx context.Context, id uint64) error {
	if err := s.factorRepo.DeactivateEmissionFactor(ctx, id); err != nil {
		return err
	}
	s.masterData.InvalidateSnapshot(ctx)
	return nil
}
