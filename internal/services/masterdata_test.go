package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-register/internal/entities"
)

func TestSnapshotResolveLocation(t *testing.T) {
	snapshot := testSnapshot()

	location, ok := snapshot.ResolveLocation("本社")
	require.True(t, ok)
	assert.Equal(t, uint64(1), location.ID)

	_, ok = snapshot.ResolveLocation("存在しない拠点")
	assert.False(t, ok)
}

func TestSnapshotResolveLocationTrimsWhitespace(t *testing.T) {
	snapshot := testSnapshot()

	location, ok := snapshot.ResolveLocation("  本社  ")
	require.True(t, ok)
	assert.Equal(t, uint64(1), location.ID)
}

func TestSnapshotResolveDepartmentIsLocationScoped(t *testing.T) {
	snapshot := testSnapshot()

	department, ok := snapshot.ResolveDepartment("総務部", 1)
	require.True(t, ok)
	assert.Equal(t, uint64(10), department.ID)

	// Same name under another location does not match.
	_, ok = snapshot.ResolveDepartment("総務部", 2)
	assert.False(t, ok)
}

func TestSnapshotResolveEmissionFactorExcludesInactive(t *testing.T) {
	snapshot := testSnapshot()

	factor, ok := snapshot.ResolveEmissionFactor("電力")
	require.True(t, ok)
	assert.Equal(t, uint64(100), factor.ID)

	_, ok = snapshot.ResolveEmissionFactor("重油")
	assert.False(t, ok)
}

func TestMasterDataServiceLoadSnapshotCachesResult(t *testing.T) {
	locationRepo := &fakeLocationRepo{locations: []entities.Location{{ID: 1, Code: "HQ", Name: "本社"}}}
	departmentRepo := &fakeDepartmentRepo{departments: []entities.Department{{ID: 10, Name: "総務部", LocationID: 1}}}
	factorRepo := newFakeEmissionFactorRepo(entities.EmissionFactor{ID: 100, Name: "電力", Value: 0.000495, IsActive: true})
	cache := newFakeCache()

	svc := NewMasterDataService(locationRepo, departmentRepo, factorRepo, cache, time.Minute, zap.NewNop())

	snapshot, err := svc.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Locations, 1)

	_, err = cache.Get(context.Background(), masterDataCacheKey)
	assert.NoError(t, err, "snapshot should be cached after the first load")

	// A second load is served from the cache and still resolves.
	snapshot, err = svc.LoadSnapshot(context.Background())
	require.NoError(t, err)
	_, ok := snapshot.ResolveLocation("本社")
	assert.True(t, ok)
}

func TestMasterDataServiceInvalidateSnapshot(t *testing.T) {
	locationRepo := &fakeLocationRepo{}
	departmentRepo := &fakeDepartmentRepo{}
	factorRepo := newFakeEmissionFactorRepo()
	cache := newFakeCache()

	svc := NewMasterDataService(locationRepo, departmentRepo, factorRepo, cache, time.Minute, zap.NewNop())

	_, err := svc.LoadSnapshot(context.Background())
	require.NoError(t, err)

	svc.InvalidateSnapshot(context.Background())
	_, err = cache.Get(context.Background(), masterDataCacheKey)
	assert.Error(t, err, "cache entry should be gone after invalidation")
}
