package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/entities"
	"carbon-register/internal/repositories"
	"carbon-register/pkg/apperrors"
)

type DataEntryServiceInterface interface {
	Search(ctx context.Context, filter dto.EntrySearchFilter) ([]dto.DataEntryDTO, error)
	Find(ctx context.Context, id uint64) (*dto.DataEntryDTO, error)
}

// DataEntryService is the query/filter surface shared by the approval queue
// and the record-search views.
type DataEntryService struct {
	entryRepo repositories.DataEntryRepositoryInterface
	logger    *zap.Logger
}

func NewDataEntryService(entryRepo repositories.DataEntryRepositoryInterface, logger *zap.Logger) DataEntryServiceInterface {
	return &DataEntryService{entryRepo: entryRepo, logger: logger}
}

// Search applies the facets conjunctively. Column-mapped facets (location,
// department, status, date range) run in SQL; keyword and activity type are
// filtered here after retrieval.
func (s *DataEntryService) Search(ctx context.Context, filter dto.EntrySearchFilter) ([]dto.DataEntryDTO, error) {
	storeFilter := repositories.EntryStoreFilter{
		LocationID:   filter.LocationID,
		DepartmentID: filter.DepartmentID,
		Status:       filter.Status,
	}

	// Post-retrieval facets and pagination do not mix: the limit is applied
	// in SQL only when every facet is pushed down.
	if filter.Keyword == "" && filter.ActivityType == "" {
		storeFilter.Limit = filter.Limit
		storeFilter.Offset = filter.Offset
	}

	if filter.StartDate != "" {
		start, err := time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("start_date must be YYYY-MM-DD")
		}
		storeFilter.StartDate = &start
	}
	if filter.EndDate != "" {
		end, err := time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("end_date must be YYYY-MM-DD")
		}
		storeFilter.EndDate = &end
	}

	entries, err := s.entryRepo.SearchDataEntries(ctx, storeFilter)
	if err != nil {
		return nil, err
	}

	result := make([]dto.DataEntryDTO, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		if filter.ActivityType != "" && !strings.EqualFold(entry.ActivityType, filter.ActivityType) {
			continue
		}
		if filter.Keyword != "" && !matchesKeyword(entry, filter.Keyword) {
			continue
		}
		result = append(result, *MapDataEntryToDTO(entry))
	}
	return result, nil
}

func (s *DataEntryService) Find(ctx context.Context, id uint64) (*dto.DataEntryDTO, error) {
	entry, err := s.entryRepo.FindDataEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	return MapDataEntryToDTO(entry), nil
}

// matchesKeyword does a case-insensitive substring match over id, location
// name, department name, activity type, submitter name and notes.
func matchesKeyword(entry *entities.DataEntry, keyword string) bool {
	needle := strings.ToLower(keyword)
	haystacks := []string{
		strconv.FormatUint(entry.ID, 10),
		entry.LocationName,
		entry.DepartmentName,
		entry.ActivityType,
		entry.SubmitterName,
		entry.Notes.String,
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// MapDataEntryToDTO renders an entry for the API. Dates use the same
// unambiguous form the CSV contract requires.
func MapDataEntryToDTO(entry *entities.DataEntry) *dto.DataEntryDTO {
	out := &dto.DataEntryDTO{
		ID:               entry.ID,
		EntryDate:        entry.EntryDate.Format("2006-01-02"),
		LocationID:       entry.LocationID,
		LocationName:     entry.LocationName,
		DepartmentID:     entry.DepartmentID,
		DepartmentName:   entry.DepartmentName,
		EmissionFactorID: entry.EmissionFactorID,
		ActivityType:     entry.ActivityType,
		ActivityAmount:   entry.ActivityAmount,
		FactorValue:      entry.FactorValue,
		Emission:         entry.Emission,
		Status:           entry.Status,
		SubmitterID:      entry.SubmitterID,
		SubmitterName:    entry.SubmitterName,
		SubmittedAt:      entry.SubmittedAt.Format(time.RFC3339),
		Notes:            entry.Notes.String,
		RejectionReason:  entry.RejectionReason.String,
	}
	if entry.ApprovedBy.Valid {
		approvedBy := entry.ApprovedBy.Uint64
		out.ApprovedBy = &approvedBy
	}
	if entry.ApprovedAt.Valid {
		out.ApprovedAt = entry.ApprovedAt.Time.Format(time.RFC3339)
	}
	return out
}
