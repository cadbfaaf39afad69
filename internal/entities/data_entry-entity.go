package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"carbon-register/pkg/types"
)

// Data entry lifecycle. Pending is the only non-terminal state; there is no
// transition out of approved or rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DataEntry is one persisted activity record. FactorValue is the emission
// factor's value captured at submission time; Emission is derived from it
// once and never recomputed, even if the master factor changes later.
type DataEntry struct {
	ID               uint64      `json:"id"`
	EntryDate        time.Time   `json:"entry_date"`
	LocationID       uint64      `json:"location_id"`
	DepartmentID     uint64      `json:"department_id"`
	EmissionFactorID uint64      `json:"emission_factor_id"`
	ActivityType     string      `json:"activity_type"`
	ActivityAmount   float64     `json:"activity_amount"`
	FactorValue      float64     `json:"factor_value"`
	Emission         float64     `json:"emission"`
	Status           string      `json:"status"`
	SubmitterID      uint64      `json:"submitter_id"`
	SubmittedAt      time.Time   `json:"submitted_at"`
	Notes            null.String `json:"notes"`
	ApprovedBy       null.Uint64 `json:"approved_by"`
	ApprovedAt       null.Time   `json:"approved_at"`
	RejectionReason  null.String `json:"rejection_reason"`

	// Joined reference names, populated by list/search queries.
	LocationName   string `json:"location_name,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	SubmitterName  string `json:"submitter_name,omitempty"`

	types.BaseEntity
}

// IsTerminal reports whether the entry has left the review queue.
func (e *DataEntry) IsTerminal() bool {
	return e.Status == StatusApproved || e.Status == StatusRejected
}
