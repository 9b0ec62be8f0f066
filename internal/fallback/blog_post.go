package fallback

import (
	"context"
	"log/slog"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// BlogPostRemote is the remote blog API. *client.BlogPostAPI satisfies it.
type BlogPostRemote interface {
	GetAll(ctx context.Context) ([]domain.BlogPost, error)
	GetByID(ctx context.Context, id string) (domain.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error)
	GetFeatured(ctx context.Context) ([]domain.BlogPost, error)
	GetPublished(ctx context.Context) ([]domain.BlogPost, error)
	GetPublishedByTag(ctx context.Context, tag string) ([]domain.BlogPost, error)
	ListTags(ctx context.Context) ([]domain.TagCount, error)
	Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error)
	Update(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

const postEntity = "blog post"

// BlogPostService reads posts with cache fallback and writes them through the
// remote only.
type BlogPostService struct {
	remote BlogPostRemote
	loader
}

func NewBlogPostService(remote BlogPostRemote, snap SnapshotReader, log *slog.Logger) *BlogPostService {
	return &BlogPostService{remote: remote, loader: newLoader(snap, log)}
}

// GetAll returns every post, drafts included.
func (s *BlogPostService) GetAll(ctx context.Context) ([]domain.BlogPost, Source) {
	posts, err := s.remote.GetAll(ctx)
	if err == nil {
		return nonNil(posts), SourceRemote
	}
	s.warn(ctx, "blogPosts.getAll", err)
	return domain.SortBlogPosts(nonNil(s.load(ctx).BlogPosts)), SourceCache
}

func (s *BlogPostService) GetPublished(ctx context.Context) ([]domain.BlogPost, Source) {
	posts, err := s.remote.GetPublished(ctx)
	if err == nil {
		return nonNil(posts), SourceRemote
	}
	s.warn(ctx, "blogPosts.getPublished", err)
	return s.cached(ctx, domain.PostIsPublished), SourceCache
}

// GetPublishedByTag returns published posts carrying exactly tag.
func (s *BlogPostService) GetPublishedByTag(ctx context.Context, tag string) ([]domain.BlogPost, Source) {
	posts, err := s.remote.GetPublishedByTag(ctx, tag)
	if err == nil {
		return nonNil(posts), SourceRemote
	}
	s.warn(ctx, "blogPosts.getPublishedByTag", err)
	return s.cached(ctx, domain.PostHasTag(tag)), SourceCache
}

// GetFeatured returns posts that are featured and published.
func (s *BlogPostService) GetFeatured(ctx context.Context) ([]domain.BlogPost, Source) {
	posts, err := s.remote.GetFeatured(ctx)
	if err == nil {
		return nonNil(posts), SourceRemote
	}
	s.warn(ctx, "blogPosts.getFeatured", err)
	return s.cached(ctx, domain.PostIsFeatured), SourceCache
}

// ListTags counts tags over published posts.
func (s *BlogPostService) ListTags(ctx context.Context) ([]domain.TagCount, Source) {
	tags, err := s.remote.ListTags(ctx)
	if err == nil {
		return nonNil(tags), SourceRemote
	}
	s.warn(ctx, "blogPosts.listTags", err)
	return domain.CountTags(s.load(ctx).BlogPosts), SourceCache
}

// GetByID returns the post or nil when it does not exist.
func (s *BlogPostService) GetByID(ctx context.Context, id string) (*domain.BlogPost, Source) {
	p, err := s.remote.GetByID(ctx, id)
	if err == nil {
		return &p, SourceRemote
	}
	s.warn(ctx, "blogPosts.getById", err)
	return s.find(ctx, func(p domain.BlogPost) bool { return p.ID == id }), SourceCache
}

// GetBySlug returns the post or nil when it does not exist.
func (s *BlogPostService) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, Source) {
	p, err := s.remote.GetBySlug(ctx, slug)
	if err == nil {
		return &p, SourceRemote
	}
	s.warn(ctx, "blogPosts.getBySlug", err)
	return s.find(ctx, func(p domain.BlogPost) bool { return p.Slug == slug }), SourceCache
}

func (s *BlogPostService) Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error) {
	created, err := s.remote.Create(ctx, p)
	if err != nil {
		return domain.BlogPost{}, s.writeFailed(ctx, postEntity, "create", err)
	}
	return created, nil
}

func (s *BlogPostService) Update(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error) {
	updated, err := s.remote.Update(ctx, id, patch)
	if err != nil {
		return domain.BlogPost{}, s.writeFailed(ctx, postEntity, "update", err)
	}
	return updated, nil
}

func (s *BlogPostService) Delete(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		return s.writeFailed(ctx, postEntity, "delete", err)
	}
	return nil
}

func (s *BlogPostService) cached(ctx context.Context, keep func(domain.BlogPost) bool) []domain.BlogPost {
	return domain.SortBlogPosts(domain.FilterBlogPosts(s.load(ctx).BlogPosts, keep))
}

func (s *BlogPostService) find(ctx context.Context, match func(domain.BlogPost) bool) *domain.BlogPost {
	for _, p := range s.load(ctx).BlogPosts {
		if match(p) {
			return &p
		}
	}
	return nil
}
