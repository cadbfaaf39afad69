package seeders

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdminUser creates the initial administrator account. Credentials come
// from ADMIN_EMAIL and ADMIN_PASSWORD, with development defaults.
func SeedAdminUser(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding admin user...")

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
		log.Println("  - ADMIN_PASSWORD not set, using the development default")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	query := `INSERT INTO users (full_name, email, password_hash)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (email) DO NOTHING;`
	if _, err := db.Exec(ctx, query, "Administrator", email, string(hash)); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	log.Println("admin user seeded")
}
