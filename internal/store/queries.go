package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the interface shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New creates a new Queries instance.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries provides typed access to the database.
type Queries struct {
	db DBTX
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Visitor is a single recorded page visit.
type Visitor struct {
	ID          int64
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

// Contact is a message submitted through the contact form.
type Contact struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	IPAddress string
	UserAgent string
	Status    string
	RepliedAt sql.NullTime
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Project is a portfolio project entry.
type Project struct {
	ID              int64
	Title           string
	Description     string
	LongDescription string
	Technologies    string // JSON array of strings
	Category        string
	GithubURL       string
	LiveURL         string
	ImageURL        string
	Featured        bool
	DisplayOrder    int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Post is a blog post.
type Post struct {
	ID          int64
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	Author      string
	Category    string
	Tags        string // JSON array of strings
	ReadTime    int64
	ImageURL    string
	Published   bool
	PublishedAt sql.NullTime
	Views       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
