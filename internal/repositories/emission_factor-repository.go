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

const emissionFactorTable = "emission_factors"

const emissionFactorColumns = `id, name, category, scope, unit, value, valid_from, valid_until, is_active, created_at, updated_at`

type EmissionFactorRepositoryInterface interface {
	GetEmissionFactors(ctx context.Context, filter types.Filter) ([]entities.EmissionFactor, uint64, error)
	GetActiveEmissionFactors(ctx context.Context) ([]entities.EmissionFactor, error)
	FindEmissionFactor(ctx context.Context, id uint64) (*entities.EmissionFactor, error)
	CreateEmissionFactor(ctx context.Context, factor entities.EmissionFactor) (*entities.EmissionFactor, error)
	UpdateEmissionFactor(ctx context.Context, id uint64, dto dto.UpdateEmissionFactorDTO) (*entities.EmissionFactor, error)
	DeactivateEmissionFactor(ctx context.Context, id uint64) error
}

type EmissionFactorRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEmissionFactorRepository(storage *pgxpool.Pool, logger *zap.Logger) EmissionFactorRepositoryInterface {
	return &EmissionFactorRepository{storage: storage, logger: logger}
}

func scanEmissionFactor(row pgx.Row) (*entities.EmissionFactor, error) {
	var f entities.EmissionFactor
	err := row.Scan(
		&f.ID, &f.Name, &f.Category, &f.Scope, &f.Unit, &f.Value,
		&f.ValidFrom, &f.ValidUntil, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning emission factor: %w", err)
	}
	return &f, nil
}

func (r *EmissionFactorRepository) GetEmissionFactors(ctx context.Context, filter types.Filter) ([]entities.EmissionFactor, uint64, error) {
	countQuery := sq.Select("COUNT(*)").From(emissionFactorTable).PlaceholderFormat(sq.Dollar)
	listQuery := sq.Select(emissionFactorColumns).
		From(emissionFactorTable).
		PlaceholderFormat(sq.Dollar).
		OrderBy("id")

	if filter.Search != "" {
		like := sq.Or{
			sq.ILike{"name": "%" + filter.Search + "%"},
			sq.ILike{"category": "%" + filter.Search + "%"},
		}
		countQuery = countQuery.Where(like)
		listQuery = listQuery.Where(like)
	}
	if raw, ok := filter.Filter["is_active"]; ok {
		countQuery = countQuery.Where(sq.Eq{"is_active": raw})
		listQuery = listQuery.Where(sq.Eq{"is_active": raw})
	}
	if raw, ok := filter.Filter["scope"]; ok {
		countQuery = countQuery.Where(sq.Eq{"scope": raw})
		listQuery = listQuery.Where(sq.Eq{"scope": raw})
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
		return []entities.EmissionFactor{}, 0, nil
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

	factors := make([]entities.EmissionFactor, 0)
	for rows.Next() {
		f, err := scanEmissionFactor(rows)
		if err != nil {
			return nil, 0, err
		}
		factors = append(factors, *f)
	}
	return factors, total, rows.Err()
}

// GetActiveEmissionFactors loads the factors eligible for new entries; the
// resolver snapshot uses this so inactive factors never resolve.
func (r *EmissionFactorRepository) GetActiveEmissionFactors(ctx context.Context) ([]entities.EmissionFactor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE is_active = TRUE ORDER BY id`, emissionFactorColumns, emissionFactorTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	factors := make([]entities.EmissionFactor, 0)
	for rows.Next() {
		f, err := scanEmissionFactor(rows)
		if err != nil {
			return nil, err
		}
		factors = append(factors, *f)
	}
	return factors, rows.Err()
}

func (r *EmissionFactorRepository) FindEmissionFactor(ctx context.Context, id uint64) (*entities.EmissionFactor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, emissionFactorColumns, emissionFactorTable)
	return scanEmissionFactor(r.storage.QueryRow(ctx, query, id))
}

func (r *EmissionFactorRepository) CreateEmissionFactor(ctx context.Context, factor entities.EmissionFactor) (*entities.EmissionFactor, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, category, scope, unit, value, valid_from, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING %s`, emissionFactorTable, emissionFactorColumns)
	return scanEmissionFactor(r.storage.QueryRow(ctx, query,
		factor.Name, factor.Category, factor.Scope, factor.Unit, factor.Value, factor.ValidFrom))
}

func (r *EmissionFactorRepository) UpdateEmissionFactor(ctx context.Context, id uint64, dto dto.UpdateEmissionFactorDTO) (*entities.EmissionFactor, error) {
	updateBuilder := sq.Update(emissionFactorTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if dto.Name != nil {
		updateBuilder = updateBuilder.Set("name", *dto.Name)
		hasChanges = true
	}
	if dto.Category != nil {
		updateBuilder = updateBuilder.Set("category", *dto.Category)
		hasChanges = true
	}
	if dto.Scope != nil {
		updateBuilder = updateBuilder.Set("scope", *dto.Scope)
		hasChanges = true
	}
	if dto.Unit != nil {
		updateBuilder = updateBuilder.Set("unit", *dto.Unit)
		hasChanges = true
	}
	if dto.Value != nil {
		updateBuilder = updateBuilder.Set("value", *dto.Value)
		hasChanges = true
	}
	if dto.ValidUntil != nil {
		updateBuilder = updateBuilder.Set("valid_until", *dto.ValidUntil)
		hasChanges = true
	}
	if dto.IsActive != nil {
		updateBuilder = updateBuilder.Set("is_active", *dto.IsActive)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindEmissionFactor(ctx, id)
	}

	query, args, err := updateBuilder.
		Suffix(fmt.Sprintf("RETURNING %s", emissionFactorColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanEmissionFactor(r.storage.QueryRow(ctx, query, args...))
}

// DeactivateEmissionFactor retires a factor instead of deleting it: existing
// entries keep their captured factor value and foreign key.
func (r *EmissionFactorRepository) DeactivateEmissionFactor(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE emission_factors SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
