package entities

import "carbon-register/pkg/types"

// Department belongs to exactly one Location. Lookups by name are always
// scoped to a location id; the same name under another location is a
// different department.
type Department struct {
	ID         uint64 `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	LocationID uint64 `json:"location_id"`

	types.BaseEntity
}
