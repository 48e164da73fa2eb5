// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"heritageiron/internal/models"
)

// ProjectStore handles gallery project database operations, including the
// per-project image lists.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// List returns all projects with their images, newest first.
func (s *ProjectStore) List() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, status, featured, author_id, created_at, updated_at
		FROM projects ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	if err != nil {
		return nil, err
	}
	return s.attachImages(projects)
}

// ListFeatured returns up to limit featured projects with their images.
// Used by the homepage gallery strip.
func (s *ProjectStore) ListFeatured(limit int) ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, status, featured, author_id, created_at, updated_at
		FROM projects WHERE featured = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured projects: %w", err)
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	if err != nil {
		return nil, err
	}
	return s.attachImages(projects)
}

// FindByID retrieves a project with its images. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	p := &models.Project{}
	err := s.db.QueryRow(`
		SELECT id, title, description, status, featured, author_id, created_at, updated_at
		FROM projects WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.Featured,
		&p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}

	images, err := s.imagesFor(p.ID)
	if err != nil {
		return nil, err
	}
	p.Images = images
	return p, nil
}

// Create inserts a project and its images in one transaction.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create project: begin: %w", err)
	}
	defer tx.Rollback()

	created := &models.Project{}
	err = tx.QueryRow(`
		INSERT INTO projects (title, description, status, featured, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, status, featured, author_id, created_at, updated_at
	`, p.Title, p.Description, p.Status, p.Featured, p.AuthorID).Scan(
		&created.ID, &created.Title, &created.Description, &created.Status,
		&created.Featured, &created.AuthorID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if err := insertImages(tx, created.ID, p.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create project: commit: %w", err)
	}

	return s.FindByID(created.ID)
}

// Update modifies a project and replaces its entire image set. Images are
// deleted and re-inserted, matching how the admin form submits the full list.
func (s *ProjectStore) Update(p *models.Project) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update project: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE projects SET title = $1, description = $2, status = $3,
		       featured = $4, updated_at = NOW()
		WHERE id = $5
	`, p.Title, p.Description, p.Status, p.Featured, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM project_images WHERE project_id = $1`, p.ID); err != nil {
		return fmt.Errorf("update project: clear images: %w", err)
	}

	if err := insertImages(tx, p.ID, p.Images); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update project: commit: %w", err)
	}
	return nil
}

// Delete removes a project. Its images go with it via ON DELETE CASCADE.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Count returns the total number of projects. Used by the admin dashboard.
func (s *ProjectStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

func collectProjects(rows *sql.Rows) ([]models.Project, error) {
	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status,
			&p.Featured, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// attachImages loads images for each project in display order.
func (s *ProjectStore) attachImages(projects []models.Project) ([]models.Project, error) {
	for i := range projects {
		images, err := s.imagesFor(projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Images = images
	}
	return projects, nil
}

func (s *ProjectStore) imagesFor(projectID uuid.UUID) ([]models.ProjectImage, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, url, alt, position, created_at
		FROM project_images WHERE project_id = $1
		ORDER BY position ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project images: %w", err)
	}
	defer rows.Close()

	var images []models.ProjectImage
	for rows.Next() {
		var img models.ProjectImage
		if err := rows.Scan(&img.ID, &img.ProjectID, &img.URL, &img.Alt,
			&img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func insertImages(tx *sql.Tx, projectID uuid.UUID, images []models.ProjectImage) error {
	for _, img := range images {
		_, err := tx.Exec(`
			INSERT INTO project_images (project_id, url, alt, position)
			VALUES ($1, $2, $3, $4)
		`, projectID, img.URL, img.Alt, img.Position)
		if err != nil {
			return fmt.Errorf("insert project image: %w", err)
		}
	}
	return nil
}
