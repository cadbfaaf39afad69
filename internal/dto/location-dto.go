package dto

// CreateLocationDTO: payload for creating a location through master-data
// management.
type CreateLocationDTO struct {
	Code string `json:"code" validate:"required,min=1,max=64"`
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type UpdateLocationDTO struct {
	Code *string `json:"code,omitempty" validate:"omitempty,min=1,max=64"`
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
}

type LocationDTO struct {
	ID        uint64 `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
