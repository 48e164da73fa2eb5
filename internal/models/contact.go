// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the triage state of a contact form submission.
type SubmissionStatus string

const (
	SubmissionStatusNew       SubmissionStatus = "new"
	SubmissionStatusRead      SubmissionStatus = "read"
	SubmissionStatusResponded SubmissionStatus = "responded"
)

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Phone     *string          `json:"phone,omitempty"`
	Subject   string           `json:"subject"`
	Message   string           `json:"message"`
	Status    SubmissionStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
