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

// BlogPostService implements business logic for BlogPost operations.
type BlogPostService struct {
	repo repo.BlogPostRepo
	now  func() time.Time
}

// NewBlogPostService constructs a BlogPostService backed by the provided BlogPostRepo.
func NewBlogPostService(r repo.BlogPostRepo) *BlogPostService {
	return &BlogPostService{repo: r, now: time.Now}
}

func (s *BlogPostService) List(ctx context.Context) ([]domain.BlogPost, error) {
	return s.repo.GetAll(ctx)
}

// ListPublished returns published posts. A non-empty tag narrows the result
// to posts carrying exactly that tag.
func (s *BlogPostService) ListPublished(ctx context.Context, tag string) ([]domain.BlogPost, error) {
	if tag != "" {
		return s.repo.GetPublishedByTag(ctx, tag)
	}
	return s.repo.GetPublished(ctx)
}

func (s *BlogPostService) ListFeatured(ctx context.Context) ([]domain.BlogPost, error) {
	return s.repo.GetFeatured(ctx)
}

func (s *BlogPostService) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	return s.repo.ListTags(ctx)
}

func (s *BlogPostService) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BlogPostService) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Create validates and persists a new post. A missing id is generated, a
// missing slug is derived from the title and a zero date becomes now.
func (s *BlogPostService) Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.BlogPost{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Title)
	}
	if !domain.ValidSlug(p.Slug) {
		return domain.BlogPost{}, fmt.Errorf("%w: slug %q must be lowercase letters, digits and single hyphens", domain.ErrValidation, p.Slug)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}
	return s.repo.Create(ctx, p)
}

// Update validates patch and applies it, stamping updatedAt with the current time.
func (s *BlogPostService) Update(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error) {
	if patch.IsEmpty() {
		return domain.BlogPost{}, domain.ErrEmptyUpdate
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.BlogPost{}, fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
		}
		patch.Title = &title
	}
	if patch.Slug != nil && !domain.ValidSlug(*patch.Slug) {
		return domain.BlogPost{}, fmt.Errorf("%w: slug %q must be lowercase letters, digits and single hyphens", domain.ErrValidation, *patch.Slug)
	}
	now := s.now().UTC()
	patch.UpdatedAt = &now
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a post. Returns domain.ErrNotFound if nothing was removed.
func (s *BlogPostService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}
