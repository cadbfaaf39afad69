package entities

import "carbon-register/pkg/types"

// Location is immutable reference data: ingestion never creates or edits it,
// only master-data management does.
type Location struct {
	ID   uint64 `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`

	types.BaseEntity
}
