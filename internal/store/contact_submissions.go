// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Submission statuses.
const (
	SubmissionPending   = "pending"
	SubmissionDelivered = "delivered"
	SubmissionFailed    = "failed"
	SubmissionDemo      = "demo"
)

// ContactSubmission is one contact form entry in the outbox.
type ContactSubmission struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Company     string       `json:"company"`
	Message     string       `json:"message"`
	Language    string       `json:"language"`
	Status      string       `json:"status"`
	Attempts    int64        `json:"attempts"`
	LastError   string       `json:"last_error"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	DeliveredAt sql.NullTime `json:"delivered_at"`
}

const submissionColumns = `id, name, email, company, message, language, status, attempts, last_error, created_at, updated_at, delivered_at`

func scanSubmission(row interface{ Scan(...any) error }) (ContactSubmission, error) {
	var s ContactSubmission
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Company, &s.Message, &s.Language,
		&s.Status, &s.Attempts, &s.LastError, &s.CreatedAt, &s.UpdatedAt, &s.DeliveredAt)
	return s, err
}

type CreateContactSubmissionParams struct {
	ID        string
	Name      string
	Email     string
	Company   string
	Message   string
	Language  string
	Status    string
	CreatedAt time.Time
}

const createContactSubmission = `
INSERT INTO contact_submissions (id, name, email, company, message, language, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (ContactSubmission, error) {
	if _, err := q.db.ExecContext(ctx, createContactSubmission,
		arg.ID, arg.Name, arg.Email, arg.Company, arg.Message, arg.Language, arg.Status,
		arg.CreatedAt, arg.CreatedAt); err != nil {
		return ContactSubmission{}, err
	}
	return q.GetContactSubmission(ctx, arg.ID)
}

const getContactSubmission = `SELECT ` + submissionColumns + ` FROM contact_submissions WHERE id = ?`

func (q *Queries) GetContactSubmission(ctx context.Context, id string) (ContactSubmission, error) {
	return scanSubmission(q.db.QueryRowContext(ctx, getContactSubmission, id))
}

const markContactDelivered = `
UPDATE contact_submissions
SET status = 'delivered', attempts = attempts + 1, last_error = '', updated_at = ?, delivered_at = ?
WHERE id = ?`

func (q *Queries) MarkContactDelivered(ctx context.Context, id string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, markContactDelivered, at, at, id)
	return err
}

const markContactFailed = `
UPDATE contact_submissions
SET status = 'failed', attempts = attempts + 1, last_error = ?, updated_at = ?
WHERE id = ?`

func (q *Queries) MarkContactFailed(ctx context.Context, id, lastError string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, markContactFailed, lastError, at, id)
	return err
}

const markContactDemo = `
UPDATE contact_submissions
SET status = 'demo', updated_at = ?
WHERE id = ?`

// MarkContactDemo records that no content endpoint was configured to
// receive the submission.
func (q *Queries) MarkContactDemo(ctx context.Context, id string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, markContactDemo, at, id)
	return err
}

const listRetryableSubmissions = `
SELECT ` + submissionColumns + `
FROM contact_submissions
WHERE status IN ('pending', 'failed') AND attempts < ? AND updated_at <= ?
ORDER BY created_at ASC
LIMIT ?`

// ListRetryableSubmissions returns pending or failed submissions with fewer
// than maxAttempts attempts that were last touched no later than before,
// oldest first.
func (q *Queries) ListRetryableSubmissions(ctx context.Context, maxAttempts int64, before time.Time, limit int64) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listRetryableSubmissions, maxAttempts, before, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []ContactSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const countContactSubmissionsByStatus = `SELECT COUNT(*) FROM contact_submissions WHERE status = ?`

func (q *Queries) CountContactSubmissionsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countContactSubmissionsByStatus, status).Scan(&n)
	return n, err
}
