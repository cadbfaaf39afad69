package dto

import "time"

// Row classification produced by the CSV validator.
const (
	CsvRowValid   = "valid"
	CsvRowInvalid = "invalid"
)

// RawCsvRow keeps the unparsed field values of one uploaded line, for
// echoing back to the client next to a per-row error.
type RawCsvRow struct {
	Line               int    `json:"line"`
	LocationName       string `json:"location_name"`
	DepartmentName     string `json:"department_name"`
	EmissionFactorName string `json:"emission_factor_name"`
	ActivityDate       string `json:"activity_date"`
	ActivityData       string `json:"activity_data"`
	Notes              string `json:"notes,omitempty"`
}

// ResolvedCsvRow is a row that passed every check, with master-data foreign
// keys already resolved.
type ResolvedCsvRow struct {
	Raw              RawCsvRow `json:"raw"`
	LocationID       uint64    `json:"location_id"`
	DepartmentID     uint64    `json:"department_id"`
	EmissionFactorID uint64    `json:"emission_factor_id"`
	ActivityType     string    `json:"activity_type"`
	EntryDate        time.Time `json:"entry_date"`
	ActivityAmount   float64   `json:"activity_amount"`
}

// InvalidCsvRow is a row that failed a check, with the first error found.
type InvalidCsvRow struct {
	Raw    RawCsvRow `json:"raw"`
	Reason string    `json:"reason"`
}

// CsvRowResult is a tagged variant: exactly one of Valid or Invalid is set,
// matching Status. Rows are never half-resolved.
type CsvRowResult struct {
	Status  string          `json:"status"`
	Valid   *ResolvedCsvRow `json:"valid,omitempty"`
	Invalid *InvalidCsvRow  `json:"invalid,omitempty"`
}

// CsvValidationResult is the classified output of one upload session. It is
// ephemeral: nothing here has touched the store yet.
type CsvValidationResult struct {
	Rows         []CsvRowResult `json:"rows"`
	ValidCount   int            `json:"valid_count"`
	InvalidCount int            `json:"invalid_count"`
}
