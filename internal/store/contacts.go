package store

import (
	"context"
	"database/sql"
	"time"
)

const createContact = `
INSERT INTO contacts (name, email, subject, message, ip_address, user_agent, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, 'new', ?, ?)
RETURNING id, name, email, subject, message, ip_address, user_agent, status, replied_at, created_at, updated_at
`

// CreateContactParams holds parameters for CreateContact.
type CreateContactParams struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateContact inserts a contact message with status "new".
func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (Contact, error) {
	row := q.db.QueryRowContext(ctx, createContact,
		arg.Name,
		arg.Email,
		arg.Subject,
		arg.Message,
		arg.IPAddress,
		arg.UserAgent,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanContact(row)
}

const getContactByID = `
SELECT id, name, email, subject, message, ip_address, user_agent, status, replied_at, created_at, updated_at
FROM contacts WHERE id = ?
`

// GetContactByID fetches a single contact message.
func (q *Queries) GetContactByID(ctx context.Context, id int64) (Contact, error) {
	return scanContact(q.db.QueryRowContext(ctx, getContactByID, id))
}

const listContacts = `
SELECT id, name, email, subject, message, ip_address, user_agent, status, replied_at, created_at, updated_at
FROM contacts
WHERE (? = '' OR status = ?)
ORDER BY created_at DESC
LIMIT ? OFFSET ?
`

// ListContactsParams holds parameters for ListContacts.
type ListContactsParams struct {
	Status string // empty matches all statuses
	Limit  int64
	Offset int64
}

// ListContacts returns contact messages newest first, optionally filtered by status.
func (q *Queries) ListContacts(ctx context.Context, arg ListContactsParams) ([]Contact, error) {
	rows, err := q.db.QueryContext(ctx, listContacts, arg.Status, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message,
			&c.IPAddress, &c.UserAgent, &c.Status, &c.RepliedAt,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

const countContacts = `
SELECT COUNT(*) FROM contacts WHERE (? = '' OR status = ?)
`

// CountContacts counts contact messages, optionally filtered by status.
func (q *Queries) CountContacts(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countContacts, status, status).Scan(&count)
	return count, err
}

const updateContactStatus = `
UPDATE contacts SET status = ?, replied_at = ?, updated_at = ?
WHERE id = ?
RETURNING id, name, email, subject, message, ip_address, user_agent, status, replied_at, created_at, updated_at
`

// UpdateContactStatusParams holds parameters for UpdateContactStatus.
type UpdateContactStatusParams struct {
	ID        int64
	Status    string
	RepliedAt sql.NullTime
	UpdatedAt time.Time
}

// UpdateContactStatus updates a contact's status and reply timestamp.
func (q *Queries) UpdateContactStatus(ctx context.Context, arg UpdateContactStatusParams) (Contact, error) {
	row := q.db.QueryRowContext(ctx, updateContactStatus, arg.Status, arg.RepliedAt, arg.UpdatedAt, arg.ID)
	return scanContact(row)
}

func scanContact(row *sql.Row) (Contact, error) {
	var c Contact
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message,
		&c.IPAddress, &c.UserAgent, &c.Status, &c.RepliedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}
