// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"heritageiron/internal/models"
)

// SiteSettingsStore manages the single site settings row.
type SiteSettingsStore struct {
	db *sql.DB
}

// NewSiteSettingsStore creates a new SiteSettingsStore with the given
// database connection.
func NewSiteSettingsStore(db *sql.DB) *SiteSettingsStore {
	return &SiteSettingsStore{db: db}
}

// Get returns the current settings, creating the default row if none exists.
func (s *SiteSettingsStore) Get() (*models.SiteSettings, error) {
	settings := &models.SiteSettings{}
	err := s.db.QueryRow(`
		SELECT id, registration_enabled, sign_in_enabled, updated_by, updated_at
		FROM site_settings LIMIT 1
	`).Scan(&settings.ID, &settings.RegistrationEnabled, &settings.SignInEnabled,
		&settings.UpdatedBy, &settings.UpdatedAt)
	if err == sql.ErrNoRows {
		return s.initialize()
	}
	if err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}
	return settings, nil
}

// Update sets the toggles and records who changed them.
func (s *SiteSettingsStore) Update(registrationEnabled, signInEnabled bool, updatedBy uuid.UUID) (*models.SiteSettings, error) {
	// Make sure the row exists before updating it.
	if _, err := s.Get(); err != nil {
		return nil, err
	}

	settings := &models.SiteSettings{}
	err := s.db.QueryRow(`
		UPDATE site_settings SET
			registration_enabled = $1, sign_in_enabled = $2,
			updated_by = $3, updated_at = NOW()
		WHERE id = (SELECT id FROM site_settings LIMIT 1)
		RETURNING id, registration_enabled, sign_in_enabled, updated_by, updated_at
	`, registrationEnabled, signInEnabled, updatedBy).Scan(
		&settings.ID, &settings.RegistrationEnabled, &settings.SignInEnabled,
		&settings.UpdatedBy, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update site settings: %w", err)
	}
	return settings, nil
}

// initialize inserts the default settings row.
func (s *SiteSettingsStore) initialize() (*models.SiteSettings, error) {
	settings := &models.SiteSettings{}
	err := s.db.QueryRow(`
		INSERT INTO site_settings (registration_enabled, sign_in_enabled)
		VALUES (TRUE, TRUE)
		RETURNING id, registration_enabled, sign_in_enabled, updated_by, updated_at
	`).Scan(&settings.ID, &settings.RegistrationEnabled, &settings.SignInEnabled,
		&settings.UpdatedBy, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("initialize site settings: %w", err)
	}
	return settings, nil
}
