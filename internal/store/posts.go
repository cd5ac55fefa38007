package store

import (
	"context"
	"database/sql"
	"time"
)

const postColumns = `id, title, slug, excerpt, content, author, category, tags, read_time, image_url, published, published_at, views, created_at, updated_at`

const listPublishedPosts = `
SELECT ` + postColumns + `
FROM posts
WHERE published = 1
  AND (? = '' OR category = ?)
ORDER BY published_at DESC
LIMIT ? OFFSET ?
`

// ListPublishedPostsParams holds parameters for ListPublishedPosts.
type ListPublishedPostsParams struct {
	Category string // empty matches all categories
	Limit    int64
	Offset   int64
}

// ListPublishedPosts returns published posts newest first.
func (q *Queries) ListPublishedPosts(ctx context.Context, arg ListPublishedPostsParams) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedPosts, arg.Category, arg.Category, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := scanPost(rows, &p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const countPublishedPosts = `
SELECT COUNT(*) FROM posts WHERE published = 1 AND (? = '' OR category = ?)
`

// CountPublishedPosts counts published posts, optionally filtered by category.
func (q *Queries) CountPublishedPosts(ctx context.Context, category string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPublishedPosts, category, category).Scan(&count)
	return count, err
}

const getPublishedPostBySlug = `
SELECT ` + postColumns + `
FROM posts WHERE published = 1 AND slug = ?
`

// GetPublishedPostBySlug fetches a published post by exact slug.
func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug string) (Post, error) {
	row := q.db.QueryRowContext(ctx, getPublishedPostBySlug, slug)
	var p Post
	err := scanPostRow(row, &p)
	return p, err
}

const getPublishedPostBySlugFold = `
SELECT ` + postColumns + `
FROM posts WHERE published = 1 AND slug = ? COLLATE NOCASE
`

// GetPublishedPostBySlugFold fetches a published post by slug, case-insensitively.
func (q *Queries) GetPublishedPostBySlugFold(ctx context.Context, slug string) (Post, error) {
	row := q.db.QueryRowContext(ctx, getPublishedPostBySlugFold, slug)
	var p Post
	err := scanPostRow(row, &p)
	return p, err
}

const listPublishedSlugs = `
SELECT slug FROM posts WHERE published = 1 ORDER BY published_at DESC
`

// ListPublishedSlugs returns the slugs of all published posts.
func (q *Queries) ListPublishedSlugs(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedSlugs)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

const incrementPostViews = `
UPDATE posts SET views = views + 1 WHERE id = ?
`

// IncrementPostViews bumps the view counter for a post.
func (q *Queries) IncrementPostViews(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, incrementPostViews, id)
	return err
}

const createPost = `
INSERT INTO posts (title, slug, excerpt, content, author, category, tags, read_time, image_url, published, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + postColumns

// CreatePostParams holds parameters for CreatePost.
type CreatePostParams struct {
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	Author      string
	Category    string
	Tags        string
	ReadTime    int64
	ImageURL    string
	Published   bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePost inserts a blog post.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.Author,
		arg.Category, arg.Tags, arg.ReadTime, arg.ImageURL,
		arg.Published, arg.PublishedAt, arg.CreatedAt, arg.UpdatedAt,
	)
	var p Post
	err := scanPostRow(row, &p)
	return p, err
}

const countPosts = `
SELECT COUNT(*) FROM posts
`

// CountPosts counts all posts.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPosts).Scan(&count)
	return count, err
}

func scanPost(rows *sql.Rows, p *Post) error {
	return rows.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Author,
		&p.Category, &p.Tags, &p.ReadTime, &p.ImageURL,
		&p.Published, &p.PublishedAt, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	)
}

func scanPostRow(row *sql.Row, p *Post) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Author,
		&p.Category, &p.Tags, &p.ReadTime, &p.ImageURL,
		&p.Published, &p.PublishedAt, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	)
}
