package dto

type CreateDepartmentDTO struct {
	Code       string `json:"code" validate:"required,min=1,max=64"`
	Name       string `json:"name" validate:"required,min=1,max=255"`
	LocationID uint64 `json:"location_id" validate:"required,gt=0"`
}

type UpdateDepartmentDTO struct {
	Code       *string `json:"code,omitempty" validate:"omitempty,min=1,max=64"`
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	LocationID *uint64 `json:"location_id,omitempty" validate:"omitempty,gt=0"`
}

type DepartmentDTO struct {
	ID           uint64 `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	LocationID   uint64 `json:"location_id"`
	LocationName string `json:"location_name,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}
