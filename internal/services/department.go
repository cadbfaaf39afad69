package services

import (
	"context"

	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/entities"
	"carbon-register/internal/repositories"
	"carbon-register/pkg/types"
)

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]dto.DepartmentDTO, uint64, error)
	FindDepartment(ctx context.Context, id uint64) (*dto.DepartmentDTO, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*dto.DepartmentDTO, error)
	UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) (*dto.DepartmentDTO, error)
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentService struct {
	departmentRepo repositories.DepartmentRepositoryInterface
	locationRepo   repositories.LocationRepositoryInterface
	masterData     MasterDataServiceInterface
	logger         *zap.Logger
}

func NewDepartmentService(
	departmentRepo repositories.DepartmentRepositoryInterface,
	locationRepo repositories.LocationRepositoryInterface,
	masterData MasterDataServiceInterface,
	logger *zap.Logger,
) DepartmentServiceInterface {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		locationRepo:   locationRepo,
		masterData:     masterData,
		logger:         logger,
	}
}

func mapDepartmentToDTO(d *entities.Department) *dto.DepartmentDTO {
	out := &dto.DepartmentDTO{ID: d.ID, Code: d.Code, Name: d.Name, LocationID: d.LocationID}
	if d.CreatedAt != nil {
		out.CreatedAt = d.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if d.UpdatedAt != nil {
		out.UpdatedAt = d.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return out
}

func (s *DepartmentService) GetDepartments(ctx context.Context, filter types.Filter) ([]dto.DepartmentDTO, uint64, error) {
	departments, total, err := s.departmentRepo.GetDepartments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.DepartmentDTO, 0, len(departments))
	for i := range departments {
		result = append(result, *mapDepartmentToDTO(&departments[i]))
	}
	return result, total, nil
}

func (s *DepartmentService) FindDepartment(ctx context.Context, id uint64) (*dto.DepartmentDTO, error) {
	department, err := s.departmentRepo.FindDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapDepartmentToDTO(department), nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*dto.DepartmentDTO, error) {
	// The parent location must exist; a department cannot dangle.
	if _, err := s.locationRepo.FindLocation(ctx, payload.LocationID); err != nil {
		return nil, err
	}

	created, err := s.departmentRepo.CreateDepartment(ctx, entities.Department{
		Code:       payload.Code,
		Name:       payload.Name,
		LocationID: payload.LocationID,
	})
	if err != nil {
		s.logger.Error("failed to create department", zap.Error(err))
		return nil, err
	}
	s.masterData.InvalidateSnapshot(ctx)
	return mapDepartmentToDTO(created), nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) (*dto.DepartmentDTO, error) {
	if payload.LocationID != nil {
		if _, err := s.locationRepo.FindLocation(ctx, *payload.LocationID); err != nil {
			return nil, err
		}
	}
	updated, err := s.departmentRepo.UpdateDepartment(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.masterData.InvalidateSnapshot(ctx)
	return mapDepartmentToDTO(updated), nil
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uint64) error {
	if err := s.departmentRepo.DeleteDepartment(ctx, id); err != nil {
		return err
	}
	s.masterData.InvalidateSnapshot(ctx)
	return nil
}
