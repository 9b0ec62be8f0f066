// Package service contains the business rules for the portfolio content API.
// Services validate inputs, fill server-assigned defaults and orchestrate repo
// calls. No SQL lives here: services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/cyberfolio/internal/domain"
	"github.com/pkordes/cyberfolio/internal/repo"
)

// ProjectService implements business logic for Project operations.
type ProjectService struct {
	repo repo.ProjectRepo
	now  func() time.Time
}

// NewProjectService constructs a ProjectService backed by the provided ProjectRepo.
func NewProjectService(r repo.ProjectRepo) *ProjectService {
	return &ProjectService{repo: r, now: time.Now}
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProjectService) ListFeatured(ctx context.Context) ([]domain.Project, error) {
	return s.repo.GetFeatured(ctx)
}

// GetByID returns a single project. Returns domain.ErrNotFound when absent.
func (s *ProjectService) GetByID(ctx context.Context, id string) (domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and persists a new project. A missing id is generated.
func (s *ProjectService) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.Project{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.repo.Create(ctx, p)
}

// Update validates patch and applies it, stamping updatedAt with the current time.
// An empty patch is rejected before anything is stamped or written.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	if patch.IsEmpty() {
		return domain.Project{}, domain.ErrEmptyUpdate
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.Project{}, fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
		}
		patch.Title = &title
	}
	now := s.now().UTC()
	patch.UpdatedAt = &now
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a project. Returns domain.ErrNotFound if nothing was removed.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}
