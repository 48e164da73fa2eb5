// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"heritageiron/internal/models"
)

// ContactStore handles contact form submission database operations.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore with the given database connection.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Create inserts a new submission with status "new".
func (s *ContactStore) Create(c *models.ContactSubmission) (*models.ContactSubmission, error) {
	created := &models.ContactSubmission{}
	err := s.db.QueryRow(`
		INSERT INTO contact_submissions (name, email, phone, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, 'new')
		RETURNING id, name, email, phone, subject, message, status, created_at
	`, c.Name, c.Email, c.Phone, c.Subject, c.Message).Scan(
		&created.ID, &created.Name, &created.Email, &created.Phone,
		&created.Subject, &created.Message, &created.Status, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return created, nil
}

// List returns all submissions, newest first. If status is non-empty, only
// submissions in that state are returned.
func (s *ContactStore) List(status models.SubmissionStatus) ([]models.ContactSubmission, error) {
	query := `
		SELECT id, name, email, phone, subject, message, status, created_at
		FROM contact_submissions`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	var items []models.ContactSubmission
	for rows.Next() {
		var c models.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone,
			&c.Subject, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountNew returns how many submissions are awaiting triage.
// Shown as a badge on the admin dashboard.
func (s *ContactStore) CountNew() (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM contact_submissions WHERE status = 'new'
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count new submissions: %w", err)
	}
	return count, nil
}

// UpdateStatus moves a submission to a new triage state.
func (s *ContactStore) UpdateStatus(id uuid.UUID, status models.SubmissionStatus) error {
	res, err := s.db.Exec(`
		UPDATE contact_submissions SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a submission by ID.
func (s *ContactStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact submission: %w", err)
	}
	return nil
}
