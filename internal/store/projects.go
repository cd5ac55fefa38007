package store

import (
	"context"
	"database/sql"
	"time"
)

const projectColumns = `id, title, description, long_description, technologies, category, github_url, live_url, image_url, featured, display_order, status, created_at, updated_at`

const listActiveProjects = `
SELECT ` + projectColumns + `
FROM projects
WHERE status = 'active'
  AND (? = '' OR category = ?)
  AND (? = 0 OR featured = 1)
ORDER BY featured DESC, display_order ASC, created_at DESC
`

// ListActiveProjectsParams holds parameters for ListActiveProjects.
type ListActiveProjectsParams struct {
	Category     string // empty matches all categories
	FeaturedOnly bool
}

// ListActiveProjects returns active projects ordered featured first, then by
// display order, then newest first.
func (q *Queries) ListActiveProjects(ctx context.Context, arg ListActiveProjectsParams) ([]Project, error) {
	featured := 0
	if arg.FeaturedOnly {
		featured = 1
	}
	rows, err := q.db.QueryContext(ctx, listActiveProjects, arg.Category, arg.Category, featured)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

const getProjectByID = `
SELECT ` + projectColumns + `
FROM projects WHERE id = ?
`

// GetProjectByID fetches a single project.
func (q *Queries) GetProjectByID(ctx context.Context, id int64) (Project, error) {
	row := q.db.QueryRowContext(ctx, getProjectByID, id)
	var p Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.LongDescription, &p.Technologies,
		&p.Category, &p.GithubURL, &p.LiveURL, &p.ImageURL,
		&p.Featured, &p.DisplayOrder, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

const createProject = `
INSERT INTO projects (title, description, long_description, technologies, category, github_url, live_url, image_url, featured, display_order, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + projectColumns

// CreateProjectParams holds parameters for CreateProject.
type CreateProjectParams struct {
	Title           string
	Description     string
	LongDescription string
	Technologies    string
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

// CreateProject inserts a project.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRowContext(ctx, createProject,
		arg.Title, arg.Description, arg.LongDescription, arg.Technologies,
		arg.Category, arg.GithubURL, arg.LiveURL, arg.ImageURL,
		arg.Featured, arg.DisplayOrder, arg.Status, arg.CreatedAt, arg.UpdatedAt,
	)
	var p Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.LongDescription, &p.Technologies,
		&p.Category, &p.GithubURL, &p.LiveURL, &p.ImageURL,
		&p.Featured, &p.DisplayOrder, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

const countProjects = `
SELECT COUNT(*) FROM projects
`

// CountProjects counts all projects.
func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countProjects).Scan(&count)
	return count, err
}

func scanProject(rows *sql.Rows) (Project, error) {
	var p Project
	err := rows.Scan(
		&p.ID, &p.Title, &p.Description, &p.LongDescription, &p.Technologies,
		&p.Category, &p.GithubURL, &p.LiveURL, &p.ImageURL,
		&p.Featured, &p.DisplayOrder, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
