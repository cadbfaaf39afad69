package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedMasterData fills locations, departments and emission factors.
// Existing rows are kept as-is so the seeder is safe to re-run.
func SeedMasterData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding master data...")

	if err := seedLocations(ctx, db); err != nil {
		log.Fatalf("failed to seed locations: %v", err)
	}
	if err := seedDepartments(ctx, db); err != nil {
		log.Fatalf("failed to seed departments: %v", err)
	}
	if err := seedEmissionFactors(ctx, db); err != nil {
		log.Fatalf("failed to seed emission factors: %v", err)
	}

	log.Println("master data seeded")
}

func seedLocations(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - locations...")
	query := `INSERT INTO locations (code, name) VALUES ($1, $2)
			  ON CONFLICT (name) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, l := range locationsData {
		if _, err := tx.Exec(ctx, query, l.Code, l.Name); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedDepartments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - departments...")
	query := `INSERT INTO departments (code, name, location_id)
			  SELECT $1, $2, id FROM locations WHERE name = $3
			  ON CONFLICT (location_id, name) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, d := range departmentsData {
		if _, err := tx.Exec(ctx, query, d.Code, d.Name, d.LocationName); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedEmissionFactors(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - emission factors...")
	query := `INSERT INTO emission_factors (name, category, scope, unit, value, valid_from, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			  ON CONFLICT (name) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, f := range emissionFactorsData {
		if _, err := tx.Exec(ctx, query, f.Name, f.Category, f.Scope, f.Unit, f.Value, f.ValidFrom); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
