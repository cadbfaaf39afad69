package dto

// CreateDataEntryDTO is the manual single-entry path. The batch path uses
// the same field set per row; both run through the submission coordinator.
type CreateDataEntryDTO struct {
	EntryDate        string  `json:"entry_date" validate:"required,entry_date"`
	LocationID       uint64  `json:"location_id" validate:"required,gt=0"`
	DepartmentID     uint64  `json:"department_id" validate:"required,gt=0"`
	EmissionFactorID uint64  `json:"emission_factor_id" validate:"required,gt=0"`
	ActivityAmount   float64 `json:"activity_amount" validate:"gte=0"`
	Notes            string  `json:"notes,omitempty"`
}

// BatchSubmitDTO carries the valid rows of a previously validated upload.
type BatchSubmitDTO struct {
	Rows []CreateDataEntryDTO `json:"rows" validate:"required,min=1,dive"`
}

// BatchSubmitResultDTO reports how far a batch got. Completed equals
// len(Rows) on full success; on a store failure it is the number of rows
// already persisted (those are not rolled back).
type BatchSubmitResultDTO struct {
	BatchID   string   `json:"batch_id"`
	Completed int      `json:"completed"`
	Total     int      `json:"total"`
	EntryIDs  []uint64 `json:"entry_ids"`
}

type RejectDataEntryDTO struct {
	Reason string `json:"reason" validate:"required"`
}

type DataEntryDTO struct {
	ID               uint64  `json:"id"`
	EntryDate        string  `json:"entry_date"`
	LocationID       uint64  `json:"location_id"`
	LocationName     string  `json:"location_name,omitempty"`
	DepartmentID     uint64  `json:"department_id"`
	DepartmentName   string  `json:"department_name,omitempty"`
	EmissionFactorID uint64  `json:"emission_factor_id"`
	ActivityType     string  `json:"activity_type"`
	ActivityAmount   float64 `json:"activity_amount"`
	FactorValue      float64 `json:"factor_value"`
	Emission         float64 `json:"emission"`
	Status           string  `json:"status"`
	SubmitterID      uint64  `json:"submitter_id"`
	SubmitterName    string  `json:"submitter_name,omitempty"`
	SubmittedAt      string  `json:"submitted_at"`
	Notes            string  `json:"notes,omitempty"`
	ApprovedBy       *uint64 `json:"approved_by,omitempty"`
	ApprovedAt       string  `json:"approved_at,omitempty"`
	RejectionReason  string  `json:"rejection_reason,omitempty"`
}

// EntrySearchFilter carries the conjunctive facets of the search surface.
// Zero values mean "facet not applied".
type EntrySearchFilter struct {
	Keyword      string `query:"keyword"`
	LocationID   uint64 `query:"location_id"`
	DepartmentID uint64 `query:"department_id"`
	Status       string `query:"status"`
	ActivityType string `query:"activity_type"`
	StartDate    string `query:"start_date"`
	EndDate      string `query:"end_date"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}
