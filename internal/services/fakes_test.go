package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aarondl/null/v8"

	"carbon-register/internal/dto"
	"carbon-register/internal/entities"
	"carbon-register/internal/repositories"
	"carbon-register/pkg/apperrors"
	"carbon-register/pkg/contextkeys"
	"carbon-register/pkg/types"
)

func ctxWithUser(id uint64) context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, id)
}

// fakeDataEntryRepo is an in-memory stand-in for the pgx repository. It
// mirrors the guarded-update semantics of the real one: approve and reject
// only succeed while the entry is still pending.
type fakeDataEntryRepo struct {
	mu      sync.Mutex
	entries map[uint64]*entities.DataEntry
	nextID  uint64

	// failOnCreate makes the Nth CreateDataEntry call fail (1-based).
	// Zero disables the failure.
	failOnCreate int
	createCalls  int
}

func newFakeDataEntryRepo() *fakeDataEntryRepo {
	return &fakeDataEntryRepo{entries: make(map[uint64]*entities.DataEntry)}
}

func (r *fakeDataEntryRepo) CreateDataEntry(_ context.Context, entry entities.DataEntry) (*entities.DataEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	if r.failOnCreate > 0 && r.createCalls == r.failOnCreate {
		return nil, apperrors.ErrBadRequest
	}

	r.nextID++
	entry.ID = r.nextID
	entry.Status = entities.StatusPending
	entry.SubmittedAt = time.Now()
	r.entries[entry.ID] = &entry

	stored := entry
	return &stored, nil
}

func (r *fakeDataEntryRepo) FindDataEntry(_ context.Context, id uint64) (*entities.DataEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	found := *entry
	return &found, nil
}

func (r *fakeDataEntryRepo) SearchDataEntries(_ context.Context, filter repositories.EntryStoreFilter) ([]entities.DataEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]entities.DataEntry, 0)
	for _, entry := range r.entries {
		if filter.LocationID != 0 && entry.LocationID != filter.LocationID {
			continue
		}
		if filter.DepartmentID != 0 && entry.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		if filter.StartDate != nil && entry.EntryDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && entry.EntryDate.After(*filter.EndDate) {
			continue
		}
		result = append(result, *entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].EntryDate.Equal(result[j].EntryDate) {
			return result[i].EntryDate.After(result[j].EntryDate)
		}
		return result[i].ID > result[j].ID
	})

	if filter.Limit > 0 {
		if filter.Offset >= len(result) {
			return []entities.DataEntry{}, nil
		}
		end := filter.Offset + filter.Limit
		if end > len(result) {
			end = len(result)
		}
		result = result[filter.Offset:end]
	}
	return result, nil
}

func (r *fakeDataEntryRepo) ApproveDataEntry(_ context.Context, id uint64, approverID uint64) (*entities.DataEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if entry.IsTerminal() {
		return nil, apperrors.ErrConflict
	}
	entry.Status = entities.StatusApproved
	entry.ApprovedBy = null.Uint64From(approverID)
	entry.ApprovedAt = null.TimeFrom(time.Now())

	updated := *entry
	return &updated, nil
}

func (r *fakeDataEntryRepo) RejectDataEntry(_ context.Context, id uint64, reason string) (*entities.DataEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if entry.IsTerminal() {
		return nil, apperrors.ErrConflict
	}
	entry.Status = entities.StatusRejected
	entry.RejectionReason = null.StringFrom(reason)

	updated := *entry
	return &updated, nil
}

type fakeEmissionFactorRepo struct {
	factors map[uint64]entities.EmissionFactor
}

func newFakeEmissionFactorRepo(factors ...entities.EmissionFactor) *fakeEmissionFactorRepo {
	r := &fakeEmissionFactorRepo{factors: make(map[uint64]entities.EmissionFactor)}
	for _, f := range factors {
		r.factors[f.ID] = f
	}
	return r
}

func (r *fakeEmissionFactorRepo) GetEmissionFactors(context.Context, types.Filter) ([]entities.EmissionFactor, uint64, error) {
	return nil, 0, nil
}

func (r *fakeEmissionFactorRepo) GetActiveEmissionFactors(context.Context) ([]entities.EmissionFactor, error) {
	result := make([]entities.EmissionFactor, 0)
	for _, f := range r.factors {
		if f.IsActive {
			result = append(result, f)
		}
	}
	return result, nil
}

func (r *fakeEmissionFactorRepo) FindEmissionFactor(_ context.Context, id uint64) (*entities.EmissionFactor, error) {
	f, ok := r.factors[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &f, nil
}

func (r *fakeEmissionFactorRepo) CreateEmissionFactor(_ context.Context, factor entities.EmissionFactor) (*entities.EmissionFactor, error) {
	r.factors[factor.ID] = factor
	return &factor, nil
}

func (r *fakeEmissionFactorRepo) UpdateEmissionFactor(context.Context, uint64, dto.UpdateEmissionFactorDTO) (*entities.EmissionFactor, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeEmissionFactorRepo) DeactivateEmissionFactor(_ context.Context, id uint64) error {
	f, ok := r.factors[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	f.IsActive = false
	r.factors[id] = f
	return nil
}

type fakeLocationRepo struct {
	locations []entities.Location
}

func (r *fakeLocationRepo) GetLocations(context.Context, types.Filter) ([]entities.Location, uint64, error) {
	return r.locations, uint64(len(r.locations)), nil
}

func (r *fakeLocationRepo) GetAllLocations(context.Context) ([]entities.Location, error) {
	return r.locations, nil
}

func (r *fakeLocationRepo) FindLocation(_ context.Context, id uint64) (*entities.Location, error) {
	for i := range r.locations {
		if r.locations[i].ID == id {
			return &r.locations[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeLocationRepo) CreateLocation(_ context.Context, location entities.Location) (*entities.Location, error) {
	r.locations = append(r.locations, location)
	return &location, nil
}

func (r *fakeLocationRepo) UpdateLocation(context.Context, uint64, dto.UpdateLocationDTO) (*entities.Location, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeLocationRepo) DeleteLocation(context.Context, uint64) error {
	return nil
}

type fakeDepartmentRepo struct {
	departments []entities.Department
}

func (r *fakeDepartmentRepo) GetDepartments(context.Context, types.Filter) ([]entities.Department, uint64, error) {
	return r.departments, uint64(len(r.departments)), nil
}

func (r *fakeDepartmentRepo) GetAllDepartments(context.Context) ([]entities.Department, error) {
	return r.departments, nil
}

func (r *fakeDepartmentRepo) FindDepartment(_ context.Context, id uint64) (*entities.Department, error) {
	for i := range r.departments {
		if r.departments[i].ID == id {
			return &r.departments[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeDepartmentRepo) CreateDepartment(_ context.Context, department entities.Department) (*entities.Department, error) {
	r.departments = append(r.departments, department)
	return &department, nil
}

func (r *fakeDepartmentRepo) UpdateDepartment(context.Context, uint64, dto.UpdateDepartmentDTO) (*entities.Department, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeDepartmentRepo) DeleteDepartment(context.Context, uint64) error {
	return nil
}

// fakeCache is an in-memory CacheRepositoryInterface. Expirations are
// ignored; tests drive invalidation explicitly.
type fakeCache struct {
	mu    sync.Mutex
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch v := value.(type) {
	case string:
		c.store[key] = v
	case []byte:
		c.store[key] = string(v)
	}
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.store[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.store, key)
	}
	return nil
}

// stubMasterData hands out a fixed snapshot, or fails when err is set.
type stubMasterData struct {
	snapshot *MasterDataSnapshot
	err      error
}

func (s *stubMasterData) LoadSnapshot(context.Context) (*MasterDataSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

func (s *stubMasterData) InvalidateSnapshot(context.Context) {}

// testSnapshot builds the reference data most tests share: one location
// with one department, plus an active and an inactive factor.
func testSnapshot() *MasterDataSnapshot {
	snapshot := &MasterDataSnapshot{
		Locations: []entities.Location{
			{ID: 1, Code: "HQ", Name: "本社"},
			{ID: 2, Code: "OSA", Name: "大阪支社"},
		},
		Departments: []entities.Department{
			{ID: 10, Code: "GA", Name: "総務部", LocationID: 1},
			{ID: 11, Code: "SALES", Name: "営業部", LocationID: 2},
		},
		EmissionFactors: []entities.EmissionFactor{
			{ID: 100, Name: "電力", Category: "購入電力", Scope: entities.Scope2, Unit: "kWh", Value: 0.000495, IsActive: true},
			{ID: 101, Name: "重油", Category: "燃料", Scope: entities.Scope1, Unit: "L", Value: 0.00271, IsActive: false},
		},
	}
	snapshot.buildIndexes()
	return snapshot
}
