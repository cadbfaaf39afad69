package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"carbon-register/internal/entities"
	"carbon-register/internal/repositories"
)

const masterDataCacheKey = "masterdata:snapshot"

// MasterDataSnapshot is the reference data loaded once per validation pass.
// All lookups are pure and in-memory; a snapshot is never mutated after
// Load returns it.
type MasterDataSnapshot struct {
	Locations       []entities.Location       `json:"locations"`
	Departments     []entities.Department     `json:"departments"`
	EmissionFactors []entities.EmissionFactor `json:"emission_factors"`

	locationsByName   map[string]*entities.Location
	departmentsByKey  map[departmentKey]*entities.Department
	factorsByName     map[string]*entities.EmissionFactor
}

type departmentKey struct {
	name       string
	locationID uint64
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

func (s *MasterDataSnapshot) buildIndexes() {
	s.locationsByName = make(map[string]*entities.Location, len(s.Locations))
	for i := range s.Locations {
		s.locationsByName[normalizeName(s.Locations[i].Name)] = &s.Locations[i]
	}

	s.departmentsByKey = make(map[departmentKey]*entities.Department, len(s.Departments))
	for i := range s.Departments {
		d := &s.Departments[i]
		s.departmentsByKey[departmentKey{normalizeName(d.Name), d.LocationID}] = d
	}

	s.factorsByName = make(map[string]*entities.EmissionFactor, len(s.EmissionFactors))
	for i := range s.EmissionFactors {
		f := &s.EmissionFactors[i]
		if f.IsActive {
			s.factorsByName[normalizeName(f.Name)] = f
		}
	}
}

// ResolveLocation resolves a location by its human-readable name.
func (s *MasterDataSnapshot) ResolveLocation(name string) (*entities.Location, bool) {
	l, ok := s.locationsByName[normalizeName(name)]
	return l, ok
}

// ResolveDepartment resolves a department by name scoped to the already
// resolved location. A department with the right name under another
// location does not match.
func (s *MasterDataSnapshot) ResolveDepartment(name string, locationID uint64) (*entities.Department, bool) {
	d, ok := s.departmentsByKey[departmentKey{normalizeName(name), locationID}]
	return d, ok
}

// ResolveEmissionFactor resolves an active factor by name. Inactive factors
// are excluded at index-build time and never resolve.
func (s *MasterDataSnapshot) ResolveEmissionFactor(name string) (*entities.EmissionFactor, bool) {
	f, ok := s.factorsByName[normalizeName(name)]
	return f, ok
}

type MasterDataServiceInterface interface {
	LoadSnapshot(ctx context.Context) (*MasterDataSnapshot, error)
	InvalidateSnapshot(ctx context.Context)
}

type MasterDataService struct {
	locationRepo   repositories.LocationRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	factorRepo     repositories.EmissionFactorRepositoryInterface
	cache          repositories.CacheRepositoryInterface
	cacheTTL       time.Duration
	logger         *zap.Logger
}

func NewMasterDataService(
	locationRepo repositories.LocationRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	factorRepo repositories.EmissionFactorRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) MasterDataServiceInterface {
	return &MasterDataService{
		locationRepo:   locationRepo,
		departmentRepo: departmentRepo,
		factorRepo:     factorRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

// LoadSnapshot returns the current master-data snapshot, via the Redis
// cache when present. A load failure here is fatal for the caller's whole
// validation pass: no row is validated against partial reference data.
func (s *MasterDataService) LoadSnapshot(ctx context.Context) (*MasterDataSnapshot, error) {
	if cached, err := s.cache.Get(ctx, masterDataCacheKey); err == nil && cached != "" {
		var snapshot MasterDataSnapshot
		if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
			snapshot.buildIndexes()
			return &snapshot, nil
		}
		s.logger.Warn("discarding unreadable master-data cache entry")
	}

	locations, err := s.locationRepo.GetAllLocations(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.departmentRepo.GetAllDepartments(ctx)
	if err != nil {
		return nil, err
	}
	factors, err := s.factorRepo.GetActiveEmissionFactors(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &MasterDataSnapshot{
		Locations:       locations,
		Departments:     departments,
		EmissionFactors: factors,
	}
	snapshot.buildIndexes()

	if payload, err := json.Marshal(snapshot); err == nil {
		if err := s.cache.Set(ctx, masterDataCacheKey, payload, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache master-data snapshot", zap.Error(err))
		}
	}

	return snapshot, nil
}

// InvalidateSnapshot drops the cached snapshot. Master-data CRUD calls this
// so the next validation pass sees fresh reference data.
func (s *MasterDataService) InvalidateSnapshot(ctx context.Context) {
	if err := s.cache.Del(ctx, masterDataCacheKey); err != nil {
		s.logger.Warn("failed to invalidate master-data cache", zap.Error(err))
	}
}
