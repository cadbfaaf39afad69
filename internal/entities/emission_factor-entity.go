package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"carbon-register/pkg/types"
)

// GHG protocol scopes used to classify emission factors.
const (
	Scope1 = "scope1"
	Scope2 = "scope2"
	Scope3 = "scope3"
)

// EmissionFactor converts an activity amount into an emission quantity.
// Name doubles as the activity type shown in search results. Only factors
// with IsActive are eligible for new entries.
type EmissionFactor struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Scope      string    `json:"scope"`
	Unit       string    `json:"unit"`
	Value      float64   `json:"value"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil null.Time `json:"valid_until"`
	IsActive   bool      `json:"is_active"`

	types.BaseEntity
}
