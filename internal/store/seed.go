package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/util"
)

// Seed creates starter content when seeding is enabled and the tables are empty.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	if !doSeed {
		return nil
	}

	queries := New(db)

	if err := seedProjects(ctx, queries); err != nil {
		return fmt.Errorf("seeding projects: %w", err)
	}
	if err := seedPosts(ctx, queries); err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}

	return nil
}

func seedProjects(ctx context.Context, queries *Queries) error {
	count, err := queries.CountProjects(ctx)
	if err != nil {
		return fmt.Errorf("counting projects: %w", err)
	}
	if count > 0 {
		slog.Info("projects already exist, skipping seed", "count", count)
		return nil
	}

	now := time.Now().UTC()
	seeds := []CreateProjectParams{
		{
			Title:           "Portfolio Website",
			Description:     "Personal portfolio with live visitor analytics and an AI assistant.",
			LongDescription: "Full-stack portfolio site with real-time visitor tracking over websockets, a contact inbox with email notifications, and AI-powered chat grounded in my background.",
			Technologies:    `["Go","SQLite","WebSocket","Next.js"]`,
			Category:        "Full Stack",
			GithubURL:       "https://github.com/olegiv/folio-go",
			Featured:        true,
			DisplayOrder:    1,
			Status:          "active",
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			Title:           "Task Manager API",
			Description:     "REST API for team task management with role-based access.",
			LongDescription: "Backend service exposing projects, boards and tasks with JWT authentication, activity feeds and scheduled reminders.",
			Technologies:    `["Go","PostgreSQL","Docker"]`,
			Category:        "Backend",
			Featured:        true,
			DisplayOrder:    2,
			Status:          "active",
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			Title:           "Weather Dashboard",
			Description:     "Responsive dashboard aggregating multiple weather providers.",
			Technologies:    `["React","TypeScript","Tailwind"]`,
			Category:        "Frontend",
			DisplayOrder:    3,
			Status:          "active",
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}

	for _, p := range seeds {
		created, err := queries.CreateProject(ctx, p)
		if err != nil {
			return fmt.Errorf("creating project %q: %w", p.Title, err)
		}
		slog.Info("seeded project", "id", created.ID, "title", created.Title)
	}

	return nil
}

func seedPosts(ctx context.Context, queries *Queries) error {
	count, err := queries.CountPosts(ctx)
	if err != nil {
		return fmt.Errorf("counting posts: %w", err)
	}
	if count > 0 {
		slog.Info("posts already exist, skipping seed", "count", count)
		return nil
	}

	now := time.Now().UTC()
	title := "Hello, World"
	content := "Welcome to my blog. This is where I write about Go, web development, and whatever I am building at the moment."
	post, err := queries.CreatePost(ctx, CreatePostParams{
		Title:       title,
		Slug:        util.Slugify(title),
		Excerpt:     "First post on the new site.",
		Content:     content,
		Author:      "Oleg",
		Category:    "General",
		Tags:        `["meta"]`,
		ReadTime:    int64(model.EstimateReadTime(content)),
		Published:   true,
		PublishedAt: sql.NullTime{Time: now, Valid: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("creating post: %w", err)
	}
	slog.Info("seeded post", "id", post.ID, "slug", post.Slug)

	return nil
}
