// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"heritageiron/internal/models"
)

func TestProjectStoreCreateWithImages(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	authorID := testAuthorID(t, db)

	title := "Test Project " + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, title) })

	alt := "front view"
	created, err := s.Create(&models.Project{
		Title:       title,
		Description: "A 1952 Farmall brought back to life.",
		Status:      models.ProjectStatusInProgress,
		Featured:    true,
		AuthorID:    authorID,
		Images: []models.ProjectImage{
			{URL: "https://cdn.example.com/p/1.webp", Alt: &alt, Position: 0},
			{URL: "https://cdn.example.com/p/2.webp", Position: 1},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil project UUID")
	}
	if len(created.Images) != 2 {
		t.Fatalf("images: got %d, want 2", len(created.Images))
	}
	if created.Images[0].Position != 0 || created.Images[1].Position != 1 {
		t.Errorf("images out of order: %+v", created.Images)
	}
}

func TestProjectStoreUpdateReplacesImages(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	authorID := testAuthorID(t, db)

	title := "Test Replace " + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, title) })

	created, err := s.Create(&models.Project{
		Title: title, Description: "d", Status: models.ProjectStatusPlanned,
		AuthorID: authorID,
		Images: []models.ProjectImage{
			{URL: "https://cdn.example.com/old.webp", Position: 0},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Status = models.ProjectStatusCompleted
	created.Images = []models.ProjectImage{
		{URL: "https://cdn.example.com/new1.webp", Position: 0},
		{URL: "https://cdn.example.com/new2.webp", Position: 1},
	}
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Status != models.ProjectStatusCompleted {
		t.Errorf("status: got %q, want completed", found.Status)
	}
	if len(found.Images) != 2 {
		t.Fatalf("images after update: got %d, want 2", len(found.Images))
	}
	if found.Images[0].URL != "https://cdn.example.com/new1.webp" {
		t.Errorf("old images not replaced: %+v", found.Images)
	}
}

func TestProjectStoreDeleteCascadesImages(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	authorID := testAuthorID(t, db)

	title := "Test Delete " + uuid.NewString()[:8]

	created, err := s.Create(&models.Project{
		Title: title, Description: "d", Status: models.ProjectStatusPlanned,
		AuthorID: authorID,
		Images: []models.ProjectImage{
			{URL: "https://cdn.example.com/x.webp", Position: 0},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var n int
	db.QueryRow("SELECT COUNT(*) FROM project_images WHERE project_id = $1", created.ID).Scan(&n)
	if n != 0 {
		t.Errorf("expected 0 orphan images, got %d", n)
	}
}

func TestProjectStoreListFeatured(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	authorID := testAuthorID(t, db)

	title := "Test Featured " + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, title) })

	if _, err := s.Create(&models.Project{
		Title: title, Description: "d", Status: models.ProjectStatusCompleted,
		Featured: true, AuthorID: authorID,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	featured, err := s.ListFeatured(6)
	if err != nil {
		t.Fatalf("ListFeatured: %v", err)
	}
	for _, p := range featured {
		if !p.Featured {
			t.Errorf("non-featured project %q in featured list", p.Title)
		}
	}
}
