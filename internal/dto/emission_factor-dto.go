package dto

type CreateEmissionFactorDTO struct {
	Name      string  `json:"name" validate:"required,min=1,max=255"`
	Category  string  `json:"category" validate:"required"`
	Scope     string  `json:"scope" validate:"required,ghg_scope"`
	Unit      string  `json:"unit" validate:"required"`
	Value     float64 `json:"value" validate:"required,gt=0"`
	ValidFrom string  `json:"valid_from" validate:"required,entry_date"`
}

type UpdateEmissionFactorDTO struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Category   *string  `json:"category,omitempty"`
	Scope      *string  `json:"scope,omitempty" validate:"omitempty,ghg_scope"`
	Unit       *string  `json:"unit,omitempty"`
	Value      *float64 `json:"value,omitempty" validate:"omitempty,gt=0"`
	ValidUntil *string  `json:"valid_until,omitempty" validate:"omitempty,entry_date"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

type EmissionFactorDTO struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Scope      string  `json:"scope"`
	Unit       string  `json:"unit"`
	Value      float64 `json:"value"`
	ValidFrom  string  `json:"valid_from"`
	ValidUntil string  `json:"valid_until,omitempty"`
	IsActive   bool    `json:"is_active"`
}
