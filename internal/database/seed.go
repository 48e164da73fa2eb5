package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates a development database with a default admin account and
// sample content. The admin will be prompted to set up 2FA on first login
// (totp_enabled = false). The system account for unattended AI runs is
// created by migration, not here.
func Seed(db *sql.DB) error {
	// The migration-created system account always exists, so key the
	// idempotence check on an admin being present.
	var haveAdmin bool
	if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM users WHERE role = 'admin')").Scan(&haveAdmin); err != nil {
		return fmt.Errorf("seed check admin: %w", err)
	}
	if haveAdmin {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled; they must set it up
	// on first login.
	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, "admin@heritageiron.example", string(hash), "Admin", "admin", false).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Sample content so the site isn't empty on a fresh checkout.
	_, err = db.Exec(`
		INSERT INTO posts (title, slug, content, format, excerpt, status, author_id, published_at)
		VALUES ($1, $2, $3, 'markdown', $4, 'published', $5, NOW())
	`,
		"Welcome to the Heritage Iron Shop Blog",
		"welcome-to-the-heritage-iron-shop-blog",
		"## The shop is open\n\nWe restore vintage and antique tractors: Farmall, "+
			"Ford N-series, John Deere two-cylinders, and anything else with good "+
			"bones. This blog covers what comes through the shop, what we learn "+
			"taking it apart, and what it takes to put it back right.\n",
		"We restore vintage and antique tractors. This blog covers what comes through the shop.",
		adminID,
	)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	var projectID string
	err = db.QueryRow(`
		INSERT INTO projects (title, description, status, featured, author_id)
		VALUES ($1, $2, 'in-progress', TRUE, $3)
		RETURNING id
	`,
		"1949 Farmall Cub",
		"Frame-off restoration of a 1949 Farmall Cub: full engine rebuild, new wiring harness, and correct Federal Yellow wheels.",
		adminID,
	).Scan(&projectID)
	if err != nil {
		return fmt.Errorf("seed insert project: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO project_images (project_id, url, alt, position)
		VALUES ($1, $2, $3, 0)
	`, projectID, "https://placehold.co/1200x800", "Farmall Cub as received, before teardown")
	if err != nil {
		return fmt.Errorf("seed insert project image: %w", err)
	}

	slog.Info("database seeded with default admin user and sample content",
		"email", "admin@heritageiron.example",
		"password", "admin",
	)

	return nil
}
