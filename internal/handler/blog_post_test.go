package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/cyberfolio/internal/domain"
)

func postFixture() domain.BlogPost {
	ts := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	return domain.BlogPost{
		ID:        "b1",
		Title:     "Jacking In",
		Excerpt:   "Notes from the grid",
		Content:   "# Hello",
		Date:      ts,
		ReadTime:  "5 min",
		Tags:      []string{"Go", "cyberpunk"},
		Published: true,
		Author:    "Case",
		Slug:      "jacking-in",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestListBlogPosts_wire(t *testing.T) {
	svc := &mockBlogPostServicer{list: func(context.Context) ([]domain.BlogPost, error) {
		return []domain.BlogPost{postFixture()}, nil
	}}
	h, _ := newHTTPHandler(nil, svc)

	rec := do(t, h, http.MethodGet, "/blog-posts", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var raw []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "5 min", raw[0]["readTime"])
	assert.Equal(t, "jacking-in", raw[0]["slug"])
	assert.NotContains(t, raw[0], "read_time")
}

func TestListPublishedBlogPosts_tagQuery(t *testing.T) {
	tests := []struct {
		name, target, wantTag string
	}{
		{"no tag", "/blog-posts/published", ""},
		{"tag", "/blog-posts/published?tag=Go", "Go"},
		{"escaped tag", "/blog-posts/published?tag=C%2B%2B", "C++"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotTag := "unset"
			svc := &mockBlogPostServicer{listPublished: func(_ context.Context, tag string) ([]domain.BlogPost, error) {
				gotTag = tag
				return nil, nil
			}}
			h, _ := newHTTPHandler(nil, svc)

			rec := do(t, h, http.MethodGet, tc.target, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.wantTag, gotTag)
			assert.JSONEq(t, `[]`, rec.Body.String())
		})
	}
}

func TestListFeaturedBlogPosts_500(t *testing.T) {
	svc := &mockBlogPostServicer{listFeatured: func(context.Context) ([]domain.BlogPost, error) {
		return nil, errors.New("connection refused")
	}}
	h, _ := newHTTPHandler(nil, svc)

	rec := do(t, h, http.MethodGet, "/blog-posts/featured", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestListBlogTags(t *testing.T) {
	svc := &mockBlogPostServicer{listTags: func(context.Context) ([]domain.TagCount, error) {
		return []domain.TagCount{{Tag: "Go", Count: 2}, {Tag: "cyberpunk", Count: 1}}, nil
	}}
	h, _ := newHTTPHandler(nil, svc)

	rec := do(t, h, http.MethodGet, "/blog-posts/tags", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"tag":"Go","count":2},{"tag":"cyberpunk","count":1}]`, rec.Body.String())
}

func TestGetBlogPostBySlug(t *testing.T) {
	t.Run("200", func(t *testing.T) {
		var gotSlug string
		svc := &mockBlogPostServicer{getBySlug: func(_ context.Context, slug string) (domain.BlogPost, error) {
			gotSlug = slug
			return postFixture(), nil
		}}
		h, _ := newHTTPHandler(nil, svc)

		rec := do(t, h, http.MethodGet, "/blog-posts/slug/jacking-in", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "jacking-in", gotSlug)
	})

	t.Run("404", func(t *testing.T) {
		svc := &mockBlogPostServicer{getBySlug: func(context.Context, string) (domain.BlogPost, error) {
			return domain.BlogPost{}, domain.ErrNotFound
		}}
		h, _ := newHTTPHandler(nil, svc)

		rec := do(t, h, http.MethodGet, "/blog-posts/slug/nope", nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "blog post not found", decodeError(t, rec).Message)
	})
}

func TestGetBlogPost_404(t *testing.T) {
	svc := &mockBlogPostServicer{getByID: func(context.Context, string) (domain.BlogPost, error) {
		return domain.BlogPost{}, domain.ErrNotFound
	}}
	h, _ := newHTTPHandler(nil, svc)

	rec := do(t, h, http.MethodGet, "/blog-posts/b9", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBlogPost_duplicateSlug(t *testing.T) {
	svc := &mockBlogPostServicer{create: func(context.Context, domain.BlogPost) (domain.BlogPost, error) {
		return domain.BlogPost{}, fmt.Errorf("repo.BlogPostRepo.Create: %w: blog_posts_slug_key", domain.ErrDuplicateKey)
	}}
	h, _ := newHTTPHandler(nil, svc)

	rec := do(t, h, http.MethodPost, "/blog-posts", jsonBody(t, map[string]any{"title": "Jacking In", "slug": "jacking-in"}))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "a blog post with this slug already exists", decodeError(t, rec).Message)
}

func TestCreateBlogPost_201(t *testing.T) {
	var got domain.BlogPost
	svc := &mockBlogPostServicer{create: func(_ context.Context, p domain.BlogPost) (domain.BlogPost, error) {
		got = p
		return postFixture(), nil
	}}
	h, _ := newHTTPHandler(nil, svc)

	rec := do(t, h, http.MethodPost, "/blog-posts", jsonBody(t, map[string]any{
		"title": "Jacking In", "readTime": "5 min", "tags": []string{"Go"}, "published": true,
		"date": "2025-02-03T04:05:06Z",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "5 min", got.ReadTime)
	assert.Equal(t, []string{"Go"}, got.Tags)
	assert.True(t, got.Published)
	assert.Equal(t, time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC), got.Date.UTC())
}

func TestUpdateBlogPost(t *testing.T) {
	t.Run("200", func(t *testing.T) {
		var got domain.BlogPostPatch
		svc := &mockBlogPostServicer{update: func(_ context.Context, _ string, patch domain.BlogPostPatch) (domain.BlogPost, error) {
			got = patch
			return patch.Apply(postFixture()), nil
		}}
		h, _ := newHTTPHandler(nil, svc)

		rec := do(t, h, http.MethodPut, "/blog-posts/b1", strings.NewReader(`{"readTime":"12 min","tags":[]}`))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.ReadTime)
		assert.Equal(t, "12 min", *got.ReadTime)
		require.NotNil(t, got.Tags)
		assert.Empty(t, *got.Tags)
		assert.Nil(t, got.Title)
	})

	t.Run("409 slug collision", func(t *testing.T) {
		svc := &mockBlogPostServicer{update: func(context.Context, string, domain.BlogPostPatch) (domain.BlogPost, error) {
			return domain.BlogPost{}, fmt.Errorf("%w: blog_posts_slug_key", domain.ErrDuplicateKey)
		}}
		h, _ := newHTTPHandler(nil, svc)

		rec := do(t, h, http.MethodPut, "/blog-posts/b2", strings.NewReader(`{"slug":"jacking-in"}`))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestDeleteBlogPost(t *testing.T) {
	calls := 0
	svc := &mockBlogPostServicer{delete: func(context.Context, string) error {
		calls++
		if calls > 1 {
			return domain.ErrNotFound
		}
		return nil
	}}
	h, _ := newHTTPHandler(nil, svc)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/blog-posts/b1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/blog-posts/b1", nil).Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newHTTPHandler(nil, &mockBlogPostServicer{})

	rec := do(t, h, http.MethodPatch, "/blog-posts/b1", strings.NewReader(`{}`))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
