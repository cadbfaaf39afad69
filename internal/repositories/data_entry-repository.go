package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"carbon-register/internal/entities"
	"carbon-register/pkg/apperrors"
)

const dataEntryTable = "data_entries"

// EntryStoreFilter is the column-mapped subset of the search facets. The
// free-text keyword and activity-type facets are applied by the service
// after retrieval.
type EntryStoreFilter struct {
	LocationID   uint64
	DepartmentID uint64
	Status       string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

type DataEntryRepositoryInterface interface {
	CreateDataEntry(ctx context.Context, entry entities.DataEntry) (*entities.DataEntry, error)
	FindDataEntry(ctx context.Context, id uint64) (*entities.DataEntry, error)
	SearchDataEntries(ctx context.Context, filter EntryStoreFilter) ([]entities.DataEntry, error)
	ApproveDataEntry(ctx context.Context, id uint64, approverID uint64) (*entities.DataEntry, error)
	RejectDataEntry(ctx context.Context, id uint64, reason string) (*entities.DataEntry, error)
}

type DataEntryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDataEntryRepository(storage *pgxpool.Pool, logger *zap.Logger) DataEntryRepositoryInterface {
	return &DataEntryRepository{storage: storage, logger: logger}
}

const dataEntrySelect = `
	SELECT e.id, e.entry_date, e.location_id, e.department_id, e.emission_factor_id,
	       e.activity_type, e.activity_amount, e.factor_value, e.emission, e.status,
	       e.submitter_id, e.submitted_at, e.notes, e.approved_by, e.approved_at,
	       e.rejection_reason, e.created_at, e.updated_at,
	       l.name AS location_name, d.name AS department_name, u.full_name AS submitter_name
	FROM data_entries e
	JOIN locations l ON l.id = e.location_id
	JOIN departments d ON d.id = e.department_id
	JOIN users u ON u.id = e.submitter_id`

func scanDataEntry(row pgx.Row) (*entities.DataEntry, error) {
	var e entities.DataEntry
	err := row.Scan(
		&e.ID, &e.EntryDate, &e.LocationID, &e.DepartmentID, &e.EmissionFactorID,
		&e.ActivityType, &e.ActivityAmount, &e.FactorValue, &e.Emission, &e.Status,
		&e.SubmitterID, &e.SubmittedAt, &e.Notes, &e.ApprovedBy, &e.ApprovedAt,
		&e.RejectionReason, &e.CreatedAt, &e.UpdatedAt,
		&e.LocationName, &e.DepartmentName, &e.SubmitterName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning data entry: %w", err)
	}
	return &e, nil
}

func (r *DataEntryRepository) CreateDataEntry(ctx context.Context, entry entities.DataEntry) (*entities.DataEntry, error) {
	query := `
		INSERT INTO data_entries
			(entry_date, location_id, department_id, emission_factor_id, activity_type,
			 activity_amount, factor_value, emission, status, submitter_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		entry.EntryDate, entry.LocationID, entry.DepartmentID, entry.EmissionFactorID,
		entry.ActivityType, entry.ActivityAmount, entry.FactorValue, entry.Emission,
		entities.StatusPending, entry.SubmitterID, entry.Notes,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("inserting data entry: %w", err)
	}
	return r.FindDataEntry(ctx, id)
}

func (r *DataEntryRepository) FindDataEntry(ctx context.Context, id uint64) (*entities.DataEntry, error) {
	return scanDataEntry(r.storage.QueryRow(ctx, dataEntrySelect+` WHERE e.id = $1`, id))
}

func (r *DataEntryRepository) buildSearchWhere(filter EntryStoreFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argCounter := 1

	addCondition := func(expr string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(expr, argCounter))
		args = append(args, value)
		argCounter++
	}

	if filter.LocationID != 0 {
		addCondition("e.location_id = $%d", filter.LocationID)
	}
	if filter.DepartmentID != 0 {
		addCondition("e.department_id = $%d", filter.DepartmentID)
	}
	if filter.Status != "" {
		addCondition("e.status = $%d", filter.Status)
	}
	if filter.StartDate != nil {
		addCondition("e.entry_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("e.entry_date <= $%d", *filter.EndDate)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// SearchDataEntries pushes the column-mapped facets into SQL. Results come
// back newest first: entry_date DESC, id DESC.
func (r *DataEntryRepository) SearchDataEntries(ctx context.Context, filter EntryStoreFilter) ([]entities.DataEntry, error) {
	whereClause, args := r.buildSearchWhere(filter)

	query := dataEntrySelect + whereClause + " ORDER BY e.entry_date DESC, e.id DESC"
	if filter.Limit > 0 {
		argCounter := len(args) + 1
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.DataEntry, 0)
	for rows.Next() {
		e, err := scanDataEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

// ApproveDataEntry performs the guarded transition pending -> approved as a
// single conditional UPDATE. Two reviewers racing on the same entry cannot
// both win: the second UPDATE matches zero rows and maps to ErrConflict.
func (r *DataEntryRepository) ApproveDataEntry(ctx context.Context, id uint64, approverID uint64) (*entities.DataEntry, error) {
	query := `
		UPDATE data_entries
		SET status = $1, approved_by = $2, approved_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING id`
	var updatedID uint64
	err := r.storage.QueryRow(ctx, query,
		entities.StatusApproved, approverID, id, entities.StatusPending,
	).Scan(&updatedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.resolveGuardFailure(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("approving data entry: %w", err)
	}
	return r.FindDataEntry(ctx, updatedID)
}

// RejectDataEntry performs the guarded transition pending -> rejected.
// Reason emptiness is validated by the service before this is called.
func (r *DataEntryRepository) RejectDataEntry(ctx context.Context, id uint64, reason string) (*entities.DataEntry, error) {
	query := `
		UPDATE data_entries
		SET status = $1, rejection_reason = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING id`
	var updatedID uint64
	err := r.storage.QueryRow(ctx, query,
		entities.StatusRejected, reason, id, entities.StatusPending,
	).Scan(&updatedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.resolveGuardFailure(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("rejecting data entry: %w", err)
	}
	return r.FindDataEntry(ctx, updatedID)
}

// resolveGuardFailure distinguishes "entry does not exist" from "entry
// exists but is no longer pending" after a guarded UPDATE matched no rows.
func (r *DataEntryRepository) resolveGuardFailure(ctx context.Context, id uint64) error {
	var status string
	err := r.storage.QueryRow(ctx, `SELECT status FROM data_entries WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}
	r.logger.Warn("approval raced against a terminal entry",
		zap.Uint64("entry_id", id),
		zap.String("current_status", status),
	)
	return apperrors.ErrConflict
}
