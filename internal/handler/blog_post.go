package handler

import (
	"net/http"

	"github.com/pkordes/cyberfolio/internal/domain"
)

const postNotFound = "blog post not found"

// ListBlogPosts handles GET /blog-posts. Drafts are included.
func (s *Server) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context())
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to fetch blog posts")
		return
	}
	writeJSON(w, http.StatusOK, nonNilPosts(posts))
}

// ListPublishedBlogPosts handles GET /blog-posts/published?tag=.
func (s *Server) ListPublishedBlogPosts(w http.ResponseWriter, r *http.Request) {
	tag, err := queryParam(r, "tag")
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to fetch published blog posts")
		return
	}
	posts, err := s.posts.ListPublished(r.Context(), tag)
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to fetch published blog posts")
		return
	}
	writeJSON(w, http.StatusOK, nonNilPosts(posts))
}

// ListFeaturedBlogPosts handles GET /blog-posts/featured.
func (s *Server) ListFeaturedBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.ListFeatured(r.Context())
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to fetch featured blog posts")
		return
	}
	writeJSON(w, http.StatusOK, nonNilPosts(posts))
}

// ListBlogTags handles GET /blog-posts/tags.
func (s *Server) ListBlogTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.posts.ListTags(r.Context())
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to fetch blog tags")
		return
	}
	if tags == nil {
		tags = []domain.TagCount{}
	}
	writeJSON(w, http.StatusOK, tags)
}

// GetBlogPost handles GET /blog-posts/{id}.
func (s *Server) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to fetch blog post")
		return
	}
	post, err := s.posts.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to fetch blog post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetBlogPostBySlug handles GET /blog-posts/slug/{slug}.
func (s *Server) GetBlogPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug, err := pathParam(r, "slug")
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to fetch blog post")
		return
	}
	post, err := s.posts.GetBySlug(r.Context(), slug)
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to fetch blog post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// CreateBlogPost handles POST /blog-posts.
func (s *Server) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var body domain.BlogPost
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, r, err, postNotFound, "failed to create blog post")
		return
	}
	created, err := s.posts.Create(r.Context(), body)
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to create blog post")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateBlogPost handles PUT /blog-posts/{id}.
func (s *Server) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to update blog post")
		return
	}
	var patch domain.BlogPostPatch
	if err := decodeBody(r, &patch); err != nil {
		s.fail(w, r, err, postNotFound, "failed to update blog post")
		return
	}
	updated, err := s.posts.Update(r.Context(), id, patch)
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to update blog post")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteBlogPost handles DELETE /blog-posts/{id}.
func (s *Server) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.fail(w, r, err, postNotFound, "failed to delete blog post")
		return
	}
	if err := s.posts.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, postNotFound, "failed to delete blog post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func nonNilPosts(p []domain.BlogPost) []domain.BlogPost {
	if p == nil {
		return []domain.BlogPost{}
	}
	return p
}
