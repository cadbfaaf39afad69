package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/pkg/apperrors"
)

// Row-level error messages rendered inline next to the offending row.
const (
	errLocationNotFound = "location not found"
	errDeptNotFound     = "department not found"
	errFactorNotFound   = "emission factor not found"
	errInvalidDate      = "invalid date format"
	errInvalidAmount    = "invalid activity amount"
)

var requiredCsvHeaders = []string{
	"location_name",
	"department_name",
	"emission_factor_name",
	"activity_date",
	"activity_data",
}

// entryDatePattern pins the column widths so ambiguous forms like
// 2024/01/01 or 2024-1-1 are rejected before the calendar check.
var entryDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type CsvValidationServiceInterface interface {
	ValidateCSV(ctx context.Context, r io.Reader) (*dto.CsvValidationResult, error)
}

type CsvValidationService struct {
	masterData MasterDataServiceInterface
	logger     *zap.Logger
}

func NewCsvValidationService(masterData MasterDataServiceInterface, logger *zap.Logger) CsvValidationServiceInterface {
	return &CsvValidationService{masterData: masterData, logger: logger}
}

// ValidateCSV classifies every row of the upload without touching the
// store. Rows are validated independently: one bad row never affects the
// next. Only two things abort the whole pass: an unusable header row and a
// master-data load failure.
func (s *CsvValidationService) ValidateCSV(ctx context.Context, r io.Reader) (*dto.CsvValidationResult, error) {
	snapshot, err := s.masterData.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewFormatError("file is empty or its header row is unreadable")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	var missing []string
	for _, required := range requiredCsvHeaders {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewFormatError("missing required headers: %s", strings.Join(missing, ", "))
	}

	result := &dto.CsvValidationResult{Rows: make([]dto.CsvRowResult, 0)}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.NewFormatError("line %d is not parseable as CSV", line)
		}
		if isBlankRecord(record) {
			continue
		}

		raw := dto.RawCsvRow{
			Line:               line,
			LocationName:       fieldAt(record, columns, "location_name"),
			DepartmentName:     fieldAt(record, columns, "department_name"),
			EmissionFactorName: fieldAt(record, columns, "emission_factor_name"),
			ActivityDate:       fieldAt(record, columns, "activity_date"),
			ActivityData:       fieldAt(record, columns, "activity_data"),
			Notes:              fieldAt(record, columns, "notes"),
		}

		result.Rows = append(result.Rows, s.validateRow(raw, snapshot))
	}

	for _, row := range result.Rows {
		if row.Status == dto.CsvRowValid {
			result.ValidCount++
		} else {
			result.InvalidCount++
		}
	}

	s.logger.Info("csv validation finished",
		zap.Int("valid", result.ValidCount),
		zap.Int("invalid", result.InvalidCount),
	)
	return result, nil
}

// validateRow runs the checks in their fixed order and stops at the first
// failure, so each invalid row carries exactly one reason.
func (s *CsvValidationService) validateRow(raw dto.RawCsvRow, snapshot *MasterDataSnapshot) dto.CsvRowResult {
	invalid := func(reason string) dto.CsvRowResult {
		return dto.CsvRowResult{
			Status:  dto.CsvRowInvalid,
			Invalid: &dto.InvalidCsvRow{Raw: raw, Reason: reason},
		}
	}

	location, ok := snapshot.ResolveLocation(raw.LocationName)
	if !ok {
		return invalid(errLocationNotFound)
	}

	department, ok := snapshot.ResolveDepartment(raw.DepartmentName, location.ID)
	if !ok {
		return invalid(errDeptNotFound)
	}

	factor, ok := snapshot.ResolveEmissionFactor(raw.EmissionFactorName)
	if !ok {
		return invalid(errFactorNotFound)
	}

	entryDate, err := parseEntryDate(raw.ActivityDate)
	if err != nil {
		return invalid(errInvalidDate)
	}

	// ParseFloat also accepts NaN and Inf spellings; neither is a usable
	// measurement, and NaN would slip past the < 0 check.
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw.ActivityData), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return invalid(errInvalidAmount)
	}

	return dto.CsvRowResult{
		Status: dto.CsvRowValid,
		Valid: &dto.ResolvedCsvRow{
			Raw:              raw,
			LocationID:       location.ID,
			DepartmentID:     department.ID,
			EmissionFactorID: factor.ID,
			ActivityType:     factor.Name,
			EntryDate:        entryDate,
			ActivityAmount:   amount,
		},
	}
}

func parseEntryDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if !entryDatePattern.MatchString(value) {
		return time.Time{}, errors.New(errInvalidDate)
	}
	return time.Parse("2006-01-02", value)
}

func fieldAt(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
