package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// BlogPostAPI covers /blog-posts.
type BlogPostAPI struct{ c *Client }

// GetAll lists every post, drafts included.
func (a *BlogPostAPI) GetAll(ctx context.Context) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := a.c.do(ctx, http.MethodGet, "/blog-posts", nil, &out)
	return out, err
}

// GetPublished lists published posts.
func (a *BlogPostAPI) GetPublished(ctx context.Context) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := a.c.do(ctx, http.MethodGet, "/blog-posts/published", nil, &out)
	return out, err
}

// GetPublishedByTag lists published posts carrying exactly tag.
func (a *BlogPostAPI) GetPublishedByTag(ctx context.Context, tag string) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	q := url.Values{"tag": {tag}}
	err := a.c.do(ctx, http.MethodGet, "/blog-posts/published?"+q.Encode(), nil, &out)
	return out, err
}

// GetFeatured lists posts that are featured and published.
func (a *BlogPostAPI) GetFeatured(ctx context.Context) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := a.c.do(ctx, http.MethodGet, "/blog-posts/featured", nil, &out)
	return out, err
}

// ListTags returns each tag of the published posts with its post count.
func (a *BlogPostAPI) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	var out []domain.TagCount
	err := a.c.do(ctx, http.MethodGet, "/blog-posts/tags", nil, &out)
	return out, err
}

// GetByID fetches one post. A missing post is an *APIError with status 404.
func (a *BlogPostAPI) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	var out domain.BlogPost
	err := a.c.do(ctx, http.MethodGet, "/blog-posts/"+escape(id), nil, &out)
	return out, err
}

// GetBySlug fetches one post by its URL slug.
func (a *BlogPostAPI) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	var out domain.BlogPost
	err := a.c.do(ctx, http.MethodGet, "/blog-posts/slug/"+escape(slug), nil, &out)
	return out, err
}

// Create posts p and returns the stored post.
func (a *BlogPostAPI) Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error) {
	var out domain.BlogPost
	err := a.c.do(ctx, http.MethodPost, "/blog-posts", p, &out)
	return out, err
}

// Update sends only the non-nil fields of patch.
func (a *BlogPostAPI) Update(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error) {
	var out domain.BlogPost
	err := a.c.do(ctx, http.MethodPut, "/blog-posts/"+escape(id), patch, &out)
	return out, err
}

// Delete removes a post.
func (a *BlogPostAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/blog-posts/"+escape(id), nil, nil)
}
