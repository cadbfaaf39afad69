package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/entities"
	"carbon-register/pkg/apperrors"
)

func seedSearchEntries(t *testing.T, repo *fakeDataEntryRepo) {
	t.Helper()
	seed := []entities.DataEntry{
		{
			EntryDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			LocationID: 1, DepartmentID: 10, EmissionFactorID: 100,
			ActivityType: "電力", ActivityAmount: 1000, FactorValue: 0.000495, Emission: 0.495,
			SubmitterID: 7, LocationName: "本社", DepartmentName: "総務部", SubmitterName: "田中",
			Notes: null.StringFrom("1月分の電気使用量"),
		},
		{
			EntryDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			LocationID: 2, DepartmentID: 11, EmissionFactorID: 101,
			ActivityType: "都市ガス", ActivityAmount: 300, FactorValue: 0.00224, Emission: 0.672,
			SubmitterID: 8, LocationName: "大阪支社", DepartmentName: "営業部", SubmitterName: "佐藤",
		},
		{
			EntryDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			LocationID: 1, DepartmentID: 10, EmissionFactorID: 100,
			ActivityType: "電力", ActivityAmount: 800, FactorValue: 0.000495, Emission: 0.396,
			SubmitterID: 7, LocationName: "本社", DepartmentName: "総務部", SubmitterName: "田中",
		},
	}
	for _, entry := range seed {
		_, err := repo.CreateDataEntry(context.Background(), entry)
		require.NoError(t, err)
	}
}

func TestSearchReturnsNewestFirst(t *testing.T) {
	repo := newFakeDataEntryRepo()
	seedSearchEntries(t, repo)
	svc := NewDataEntryService(repo, zap.NewNop())

	entries, err := svc.Search(context.Background(), dto.EntrySearchFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// entry_date DESC, id DESC: the two 2024-02-05 entries first, higher
	// id leading.
	assert.Equal(t, "2024-02-05", entries[0].EntryDate)
	assert.Equal(t, "2024-02-05", entries[1].EntryDate)
	assert.Greater(t, entries[0].ID, entries[1].ID)
	assert.Equal(t, "2024-01-10", entries[2].EntryDate)
}

func TestSearchFacetsAreConjunctive(t *testing.T) {
	repo := newFakeDataEntryRepo()
	seedSearchEntries(t, repo)
	svc := NewDataEntryService(repo, zap.NewNop())

	entries, err := svc.Search(context.Background(), dto.EntrySearchFilter{
		LocationID: 1,
		Status:     entities.StatusPending,
		StartDate:  "2024-02-01",
	})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, float64(800), entries[0].ActivityAmount)
}

func TestSearchByActivityTypeIsCaseInsensitive(t *testing.T) {
	repo := newFakeDataEntryRepo()
	seedSearchEntries(t, repo)
	svc := NewDataEntryService(repo, zap.NewNop())

	entries, err := svc.Search(context.Background(), dto.EntrySearchFilter{ActivityType: "電力"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = svc.Search(context.Background(), dto.EntrySearchFilter{ActivityType: "都市ガス"})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSearchKeywordMatchesAcrossFields(t *testing.T) {
	repo := newFakeDataEntryRepo()
	seedSearchEntries(t, repo)
	svc := NewDataEntryService(repo, zap.NewNop())

	byLocation, err := svc.Search(context.Background(), dto.EntrySearchFilter{Keyword: "大阪"})
	require.NoError(t, err)
	assert.Len(t, byLocation, 1)

	bySubmitter, err := svc.Search(context.Background(), dto.EntrySearchFilter{Keyword: "田中"})
	require.NoError(t, err)
	assert.Len(t, bySubmitter, 2)

	byNotes, err := svc.Search(context.Background(), dto.EntrySearchFilter{Keyword: "電気使用量"})
	require.NoError(t, err)
	assert.Len(t, byNotes, 1)

	none, err := svc.Search(context.Background(), dto.EntrySearchFilter{Keyword: "該当なし"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchKeywordCombinesWithColumnFacets(t *testing.T) {
	repo := newFakeDataEntryRepo()
	seedSearchEntries(t, repo)
	svc := NewDataEntryService(repo, zap.NewNop())

	entries, err := svc.Search(context.Background(), dto.EntrySearchFilter{
		Keyword:    "田中",
		LocationID: 1,
		EndDate:    "2024-01-31",
	})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "2024-01-10", entries[0].EntryDate)
}

func TestSearchRejectsMalformedDateFacets(t *testing.T) {
	svc := NewDataEntryService(newFakeDataEntryRepo(), zap.NewNop())

	_, err := svc.Search(context.Background(), dto.EntrySearchFilter{StartDate: "2024/01/01"})
	var invalidErr *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidErr)

	_, err = svc.Search(context.Background(), dto.EntrySearchFilter{EndDate: "01-01-2024"})
	assert.ErrorAs(t, err, &invalidErr)
}

func TestSearchAppliesPaginationWhenAllFacetsAreColumnMapped(t *testing.T) {
	repo := newFakeDataEntryRepo()
	seedSearchEntries(t, repo)
	svc := NewDataEntryService(repo, zap.NewNop())

	page, err := svc.Search(context.Background(), dto.EntrySearchFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := svc.Search(context.Background(), dto.EntrySearchFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestFindMissingEntryIsNotFound(t *testing.T) {
	svc := NewDataEntryService(newFakeDataEntryRepo(), zap.NewNop())

	_, err := svc.Find(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
