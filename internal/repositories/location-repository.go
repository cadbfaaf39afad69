package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/entities"
	"carbon-register/pkg/apperrors"
	"carbon-register/pkg/types"
)

const locationTable = "locations"

type LocationRepositoryInterface interface {
	GetLocations(ctx context.Context, filter types.Filter) ([]entities.Location, uint64, error)
	GetAllLocations(ctx context.Context) ([]entities.Location, error)
	FindLocation(ctx context.Context, id uint64) (*entities.Location, error)
	CreateLocation(ctx context.Context, location entities.Location) (*entities.Location, error)
	UpdateLocation(ctx context.Context, id uint64, dto dto.UpdateLocationDTO) (*entities.Location, error)
	DeleteLocation(ctx context.Context, id uint64) error
}

type LocationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewLocationRepository(storage *pgxpool.Pool, logger *zap.Logger) LocationRepositoryInterface {
	return &LocationRepository{storage: storage, logger: logger}
}

func scanLocation(row pgx.Row) (*entities.Location, error) {
	var l entities.Location
	err := row.Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepository) GetLocations(ctx context.Context, filter types.Filter) ([]entities.Location, uint64, error) {
	countQuery := sq.Select("COUNT(*)").From(locationTable).PlaceholderFormat(sq.Dollar)
	listQuery := sq.Select("id", "code", "name", "created_at", "updated_at").
		From(locationTable).
		PlaceholderFormat(sq.Dollar).
		OrderBy("id")

	if filter.Search != "" {
		like := sq.ILike{"name": "%" + filter.Search + "%"}
		countQuery = countQuery.Where(like)
		listQuery = listQuery.Where(like)
	}

	query, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Location{}, 0, nil
	}

	if filter.WithPagination {
		listQuery = listQuery.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}
	query, args, err = listQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	locations := make([]entities.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, 0, err
		}
		locations = append(locations, *l)
	}
	return locations, total, rows.Err()
}

// GetAllLocations loads the full set for the master-data resolver snapshot.
func (r *LocationRepository) GetAllLocations(ctx context.Context) ([]entities.Location, error) {
	query := `SELECT id, code, name, created_at, updated_at FROM locations ORDER BY id`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]entities.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) FindLocation(ctx context.Context, id uint64) (*entities.Location, error) {
	query := `SELECT id, code, name, created_at, updated_at FROM locations WHERE id = $1`
	return scanLocation(r.storage.QueryRow(ctx, query, id))
}

func (r *LocationRepository) CreateLocation(ctx context.Context, location entities.Location) (*entities.Location, error) {
	query := `INSERT INTO locations (code, name) VALUES ($1, $2)
		RETURNING id, code, name, created_at, updated_at`
	return scanLocation(r.storage.QueryRow(ctx, query, location.Code, location.Name))
}

func (r *LocationRepository) UpdateLocation(ctx context.Context, id uint64, dto dto.UpdateLocationDTO) (*entities.Location, error) {
	updateBuilder := sq.Update(locationTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if dto.Code != nil {
		updateBuilder = updateBuilder.Set("code", *dto.Code)
		hasChanges = true
	}
	if dto.Name != nil {
		updateBuilder = updateBuilder.Set("name", *dto.Name)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindLocation(ctx, id)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING id, code, name, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanLocation(r.storage.QueryRow(ctx, query, args...))
}

func (r *LocationRepository) DeleteLocation(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
