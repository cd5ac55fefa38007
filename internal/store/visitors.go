package store

import (
	"context"
	"fmt"
	"time"
)

const createVisitor = `
INSERT INTO visitors (ip_address, user_agent, referrer, page, session_id, country_code, browser, os, device_type, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, ip_address, user_agent, referrer, page, session_id, country_code, browser, os, device_type, created_at
`

// CreateVisitorParams holds parameters for CreateVisitor.
type CreateVisitorParams struct {
	IPAddress   string
	UserAgent   string
	Referrer    string
	Page        string
	SessionID   string
	CountryCode string
	Browser     string
	OS          string
	DeviceType  string
	CreatedAt   time.Time
}

// CreateVisitor inserts a visit record.
func (q *Queries) CreateVisitor(ctx context.Context, arg CreateVisitorParams) (Visitor, error) {
	row := q.db.QueryRowContext(ctx, createVisitor,
		arg.IPAddress,
		arg.UserAgent,
		arg.Referrer,
		arg.Page,
		arg.SessionID,
		arg.CountryCode,
		arg.Browser,
		arg.OS,
		arg.DeviceType,
		arg.CreatedAt,
	)
	var v Visitor
	err := row.Scan(
		&v.ID,
		&v.IPAddress,
		&v.UserAgent,
		&v.Referrer,
		&v.Page,
		&v.SessionID,
		&v.CountryCode,
		&v.Browser,
		&v.OS,
		&v.DeviceType,
		&v.CreatedAt,
	)
	return v, err
}

const countVisitorsBySessionSince = `
SELECT COUNT(*) FROM visitors WHERE session_id = ? AND created_at >= ?
`

// CountVisitorsBySessionSinceParams holds parameters for CountVisitorsBySessionSince.
type CountVisitorsBySessionSinceParams struct {
	SessionID string
	Since     time.Time
}

// CountVisitorsBySessionSince counts visits by a session at or after the given time.
func (q *Queries) CountVisitorsBySessionSince(ctx context.Context, arg CountVisitorsBySessionSinceParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countVisitorsBySessionSince, arg.SessionID, arg.Since).Scan(&count)
	return count, err
}

const countVisitors = `
SELECT COUNT(*) FROM visitors
`

// CountVisitors counts all recorded visits.
func (q *Queries) CountVisitors(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countVisitors).Scan(&count)
	return count, err
}

const countVisitorsSince = `
SELECT COUNT(*) FROM visitors WHERE created_at >= ?
`

// CountVisitorsSince counts visits at or after the given time.
func (q *Queries) CountVisitorsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countVisitorsSince, since).Scan(&count)
	return count, err
}

const countVisitorsBetween = `
SELECT COUNT(*) FROM visitors WHERE created_at >= ? AND created_at < ?
`

// CountVisitorsBetweenParams holds parameters for CountVisitorsBetween.
type CountVisitorsBetweenParams struct {
	Start time.Time
	End   time.Time
}

// CountVisitorsBetween counts visits in the half-open interval [Start, End).
func (q *Queries) CountVisitorsBetween(ctx context.Context, arg CountVisitorsBetweenParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countVisitorsBetween, arg.Start, arg.End).Scan(&count)
	return count, err
}

const countDistinctIPsSince = `
SELECT COUNT(DISTINCT ip_address) FROM visitors WHERE created_at >= ?
`

// CountDistinctIPsSince counts distinct visitor IPs at or after the given time.
func (q *Queries) CountDistinctIPsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countDistinctIPsSince, since).Scan(&count)
	return count, err
}

const deleteVisitorsBefore = `
DELETE FROM visitors WHERE created_at < ?
`

// DeleteVisitorsBefore removes visit records older than the given time.
// Used by the retention job.
func (q *Queries) DeleteVisitorsBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteVisitorsBefore, before)
	if err != nil {
		return 0, fmt.Errorf("deleting old visitors: %w", err)
	}
	return res.RowsAffected()
}
