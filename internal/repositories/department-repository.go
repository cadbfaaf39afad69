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

const departmentTable = "departments"

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error)
	GetAllDepartments(ctx context.Context) ([]entities.Department, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, department entities.Department) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id uint64, dto dto.UpdateDepartmentDTO) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDepartmentRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage, logger: logger}
}

func scanDepartment(row pgx.Row) (*entities.Department, error) {
	var d entities.Department
	err := row.Scan(&d.ID, &d.Code, &d.Name, &d.LocationID, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning department: %w", err)
	}
	return &d, nil
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error) {
	countQuery := sq.Select("COUNT(*)").From(departmentTable).PlaceholderFormat(sq.Dollar)
	listQuery := sq.Select("id", "code", "name", "location_id", "created_at", "updated_at").
		From(departmentTable).
		PlaceholderFormat(sq.Dollar).
		OrderBy("id")

	if filter.Search != "" {
		like := sq.ILike{"name": "%" + filter.Search + "%"}
		countQuery = countQuery.Where(like)
		listQuery = listQuery.Where(like)
	}
	if raw, ok := filter.Filter["location_id"]; ok {
		countQuery = countQuery.Where(sq.Eq{"location_id": raw})
		listQuery = listQuery.Where(sq.Eq{"location_id": raw})
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
		return []entities.Department{}, 0, nil
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

	departments := make([]entities.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		departments = append(departments, *d)
	}
	return departments, total, rows.Err()
}

// GetAllDepartments loads the full set for the master-data resolver snapshot.
func (r *DepartmentRepository) GetAllDepartments(ctx context.Context) ([]entities.Department, error) {
	query := `SELECT id, code, name, location_id, created_at, updated_at FROM departments ORDER BY id`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]entities.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, *d)
	}
	return departments, rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	query := `SELECT id, code, name, location_id, created_at, updated_at FROM departments WHERE id = $1`
	return scanDepartment(r.storage.QueryRow(ctx, query, id))
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, department entities.Department) (*entities.Department, error) {
	query := `INSERT INTO departments (code, name, location_id) VALUES ($1, $2, $3)
		RETURNING id, code, name, location_id, created_at, updated_at`
	return scanDepartment(r.storage.QueryRow(ctx, query, department.Code, department.Name, department.LocationID))
}

func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, id uint64, dto dto.UpdateDepartmentDTO) (*entities.Department, error) {
	updateBuilder := sq.Update(departmentTable).
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
	if dto.LocationID != nil {
		updateBuilder = updateBuilder.Set("location_id", *dto.LocationID)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindDepartment(ctx, id)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING id, code, name, location_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanDepartment(r.storage.QueryRow(ctx, query, args...))
}

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
