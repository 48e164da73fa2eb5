// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus tracks where a restoration project stands.
type ProjectStatus string

const (
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusPlanned    ProjectStatus = "planned"
)

// Project represents a restoration project shown in the public gallery.
type Project struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      ProjectStatus  `json:"status"`
	Featured    bool           `json:"featured"`
	AuthorID    uuid.UUID      `json:"author_id"`
	Images      []ProjectImage `json:"images"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProjectImage is one gallery photo attached to a project, displayed in
// Position order.
type ProjectImage struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	URL       string    `json:"url"`
	Alt       *string   `json:"alt,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
