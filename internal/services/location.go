package services

import (
	"context"

	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/entities"
	"carbon-register/internal/repositories"
	"carbon-register/pkg/types"
)

type LocationServiceInterface interface {
	GetLocations(ctx context.Context, filter types.Filter) ([]dto.LocationDTO, uint64, error)
	FindLocation(ctx context.Context, id uint64) (*dto.LocationDTO, error)
	CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationDTO, error)
	UpdateLocation(ctx context.Context, id uint64, payload dto.UpdateLocationDTO) (*dto.LocationDTO, error)
	DeleteLocation(ctx context.Context, id uint64) error
}

type LocationService struct {
	locationRepo repositories.LocationRepositoryInterface
	masterData   MasterDataServiceInterface
	logger       *zap.Logger
}

func NewLocationService(
	locationRepo repositories.LocationRepositoryInterface,
	masterData MasterDataServiceInterface,
	logger *zap.Logger,
) LocationServiceInterface {
	return &LocationService{locationRepo: locationRepo, masterData: masterData, logger: logger}
}

func mapLocationToDTO(l *entities.Location) *dto.LocationDTO {
	out := &dto.LocationDTO{ID: l.ID, Code: l.Code, Name: l.Name}
	if l.CreatedAt != nil {
		out.CreatedAt = l.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if l.UpdatedAt != nil {
		out.UpdatedAt = l.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return out
}

func (s *LocationService) GetLocations(ctx context.Context, filter types.Filter) ([]dto.LocationDTO, uint64, error) {
	locations, total, err := s.locationRepo.GetLocations(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.LocationDTO, 0, len(locations))
	for i := range locations {
		result = append(result, *mapLocationToDTO(&locations[i]))
	}
	return result, total, nil
}

func (s *LocationService) FindLocation(ctx context.Context, id uint64) (*dto.LocationDTO, error) {
	location, err := s.locationRepo.FindLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapLocationToDTO(location), nil
}

func (s *LocationService) CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationDTO, error) {
	created, err := s.locationRepo.CreateLocation(ctx, entities.Location{Code: payload.Code, Name: payload.Name})
	if err != nil {
		s.logger.Error("failed to create location", zap.Error(err))
		return nil, err
	}
	s.masterData.InvalidateSnapshot(ctx)
	return mapLocationToDTO(created), nil
}

func (s *LocationService) UpdateLocation(ctx context.Context, id uint64, payload dto.UpdateLocationDTO) (*dto.LocationDTO, error) {
	updated, err := s.locationRepo.UpdateLocation(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.masterData.InvalidateSnapshot(ctx)
	return mapLocationToDTO(updated), nil
}

func (s *LocationService) DeleteLocation(ctx context.Context, id uint64) error {
	if err := s.locationRepo.DeleteLocation(ctx, id); err != nil {
		return err
	}
	s.masterData.InvalidateSnapshot(ctx)
	return nil
}
