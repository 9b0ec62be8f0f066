package client

import (
	"context"
	"net/http"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// ProjectAPI covers /projects.
type ProjectAPI struct{ c *Client }

// GetAll lists every project in listing order.
func (a *ProjectAPI) GetAll(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	err := a.c.do(ctx, http.MethodGet, "/projects", nil, &out)
	return out, err
}

// GetFeatured lists featured projects.
func (a *ProjectAPI) GetFeatured(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	err := a.c.do(ctx, http.MethodGet, "/projects/featured", nil, &out)
	return out, err
}

// GetByID fetches one project. A missing project is an *APIError with status 404.
func (a *ProjectAPI) GetByID(ctx context.Context, id string) (domain.Project, error) {
	var out domain.Project
	err := a.c.do(ctx, http.MethodGet, "/projects/"+escape(id), nil, &out)
	return out, err
}

// Create posts p and returns the stored project.
func (a *ProjectAPI) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	var out domain.Project
	err := a.c.do(ctx, http.MethodPost, "/projects", p, &out)
	return out, err
}

// Update sends only the non-nil fields of patch.
func (a *ProjectAPI) Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	var out domain.Project
	err := a.c.do(ctx, http.MethodPut, "/projects/"+escape(id), patch, &out)
	return out, err
}

// Delete removes a project. A missing one is an *APIError with status 404.
func (a *ProjectAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/projects/"+escape(id), nil, nil)
}
