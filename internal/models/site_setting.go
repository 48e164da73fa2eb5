// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteSettings holds the site-wide toggles managed from the admin dashboard.
// There is exactly one row; the store creates it on first read.
type SiteSettings struct {
	ID                  uuid.UUID  `json:"id"`
	RegistrationEnabled bool       `json:"registration_enabled"`
	SignInEnabled       bool       `json:"sign_in_enabled"`
	UpdatedBy           *uuid.UUID `json:"updated_by,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
