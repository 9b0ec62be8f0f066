// Package handler implements the REST API for portfolio content.
// All handlers are methods on Server; routes are registered in Routes and the
// result is mounted under /api by cmd/api. Methods are split into
// resource-specific files (project.go, blog_post.go, health.go) but share the
// same Server struct.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/cyberfolio/internal/domain"
	"github.com/pkordes/cyberfolio/spec"
)

// ProjectServicer defines the business operations the project routes depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type ProjectServicer interface {
	List(ctx context.Context) ([]domain.Project, error)
	ListFeatured(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (domain.Project, error)
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// BlogPostServicer defines the business operations the blog routes depend on.
type BlogPostServicer interface {
	List(ctx context.Context) ([]domain.BlogPost, error)
	ListPublished(ctx context.Context, tag string) ([]domain.BlogPost, error)
	ListFeatured(ctx context.Context) ([]domain.BlogPost, error)
	ListTags(ctx context.Context) ([]domain.TagCount, error)
	GetByID(ctx context.Context, id string) (domain.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error)
	Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error)
	Update(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

// Server holds the dependencies shared by every route.
type Server struct {
	projects ProjectServicer
	posts    BlogPostServicer
	log      *slog.Logger
	now      func() time.Time
}

// NewServer constructs the Server with all its dependencies. A nil log uses
// slog.Default().
func NewServer(projects ProjectServicer, posts BlogPostServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{projects: projects, posts: posts, log: log, now: time.Now}
}

// Routes returns the API router. Paths are relative to the /api mount point.
// Static segments such as /featured are matched before /{id} by chi.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", s.ListProjects)
		r.Post("/", s.CreateProject)
		r.Get("/featured", s.ListFeaturedProjects)
		r.Get("/{id}", s.GetProject)
		r.Put("/{id}", s.UpdateProject)
		r.Delete("/{id}", s.DeleteProject)
	})

	r.Route("/blog-posts", func(r chi.Router) {
		r.Get("/", s.ListBlogPosts)
		r.Post("/", s.CreateBlogPost)
		r.Get("/published", s.ListPublishedBlogPosts)
		r.Get("/featured", s.ListFeaturedBlogPosts)
		r.Get("/tags", s.ListBlogTags)
		r.Get("/slug/{slug}", s.GetBlogPostBySlug)
		r.Get("/{id}", s.GetBlogPost)
		r.Put("/{id}", s.UpdateBlogPost)
		r.Delete("/{id}", s.DeleteBlogPost)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
