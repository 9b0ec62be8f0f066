package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// ProjectRepo defines the persistence operations for Projects.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type ProjectRepo interface {
	// GetAll returns every project ordered by order_index ascending, then
	// created_at descending. An empty table yields an empty slice.
	GetAll(ctx context.Context) ([]domain.Project, error)

	// GetByID retrieves a single project by id.
	// Returns domain.ErrNotFound if no project with that id exists.
	GetByID(ctx context.Context, id string) (domain.Project, error)

	// GetFeatured returns projects with featured = true, in listing order.
	GetFeatured(ctx context.Context) ([]domain.Project, error)

	// Create inserts a project with the caller-supplied id and returns the
	// persisted record with created_at and updated_at set by the database.
	// Returns domain.ErrDuplicateKey if the id is taken.
	Create(ctx context.Context, p domain.Project) (domain.Project, error)

	// Update writes only the non-nil fields of patch. updated_at is written
	// only when the caller supplies it. Returns domain.ErrEmptyUpdate for an
	// empty patch and domain.ErrNotFound if no project has that id.
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error)

	// Delete removes a project and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// pgProjectRepo is the Postgres implementation of ProjectRepo.
type pgProjectRepo struct {
	db db
}

// NewProjectRepo constructs a ProjectRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewProjectRepo(db db) ProjectRepo {
	return &pgProjectRepo{db: db}
}

const projectColumnList = `id, title, description, technologies, image, demo_url, github_url,
		       featured, order_index, created_at, updated_at`

// projectPatchColumns is the display-field → column table for partial updates.
var projectPatchColumns = []column[domain.ProjectPatch]{
	field("title", func(p domain.ProjectPatch) *string { return p.Title }),
	field("description", func(p domain.ProjectPatch) *string { return p.Description }),
	listField("technologies", func(p domain.ProjectPatch) *[]string { return p.Technologies }),
	field("image", func(p domain.ProjectPatch) *string { return p.Image }),
	field("demo_url", func(p domain.ProjectPatch) *string { return p.DemoURL }),
	field("github_url", func(p domain.ProjectPatch) *string { return p.GithubURL }),
	field("featured", func(p domain.ProjectPatch) *bool { return p.Featured }),
	field("order_index", func(p domain.ProjectPatch) *int { return p.Order }),
	updatedAtField(func(p domain.ProjectPatch) *time.Time { return p.UpdatedAt }),
}

// GetAll returns all projects in listing order.
func (r *pgProjectRepo) GetAll(ctx context.Context) ([]domain.Project, error) {
	const q = `
		SELECT ` + projectColumnList + `
		FROM projects
		ORDER BY order_index ASC, created_at DESC`

	projects, err := r.list(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ProjectRepo.GetAll: %w", err)
	}
	return projects, nil
}

// GetFeatured returns featured projects in listing order.
func (r *pgProjectRepo) GetFeatured(ctx context.Context) ([]domain.Project, error) {
	const q = `
		SELECT ` + projectColumnList + `
		FROM projects
		WHERE featured = true
		ORDER BY order_index ASC, created_at DESC`

	projects, err := r.list(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ProjectRepo.GetFeatured: %w", err)
	}
	return projects, nil
}

// GetByID retrieves a project by primary key.
func (r *pgProjectRepo) GetByID(ctx context.Context, id string) (domain.Project, error) {
	const q = `
		SELECT ` + projectColumnList + `
		FROM projects
		WHERE id = @id`

	result, err := scanProject(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.GetByID: %w", err)
	}
	return result, nil
}

// Create inserts a new project row and returns the full persisted record.
func (r *pgProjectRepo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	const q = `
		INSERT INTO projects (id, title, description, technologies, image, demo_url,
		                      github_url, featured, order_index)
		VALUES (@id, @title, @description, @technologies, @image, @demo_url,
		        @github_url, @featured, @order_index)
		RETURNING ` + projectColumnList

	args := pgx.NamedArgs{
		"id":           p.ID,
		"title":        p.Title,
		"description":  p.Description,
		"technologies": nonNil(p.Technologies),
		"image":        p.Image,
		"demo_url":     p.DemoURL,
		"github_url":   p.GithubURL,
		"featured":     p.Featured,
		"order_index":  p.Order,
	}

	result, err := scanProject(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Create: %w", mapWriteError(err))
	}
	return result, nil
}

// Update applies a partial update and returns the updated record.
func (r *pgProjectRepo) Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	if patch.IsEmpty() {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Update: %w", domain.ErrEmptyUpdate)
	}

	q, args, err := buildUpdate("projects", projectPatchColumns, patch, id, projectColumnList)
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Update: %w", err)
	}

	result, err := scanProject(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Update: %w", mapWriteError(err))
	}
	return result, nil
}

// Delete removes a project by primary key.
func (r *pgProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM projects WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, fmt.Errorf("repo.ProjectRepo.Delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgProjectRepo) list(ctx context.Context, q string) ([]domain.Project, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return projects, nil
}

// scanProject maps a single database row into a domain.Project.
func scanProject(s scanner) (domain.Project, error) {
	var p domain.Project
	err := s.Scan(&p.ID, &p.Title, &p.Description, &p.Technologies, &p.Image,
		&p.DemoURL, &p.GithubURL, &p.Featured, &p.Order, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, err
	}
	p.Technologies = nonNil(p.Technologies)
	return p, nil
}
