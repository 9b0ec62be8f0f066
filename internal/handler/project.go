package handler

import (
	"net/http"

	"github.com/pkordes/cyberfolio/internal/domain"
)

const projectNotFound = "project not found"

// ListProjects handles GET /projects.
func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List(r.Context())
	if err != nil {
		s.fail(w, r, err, projectNotFound, "failed to fetch projects")
		return
	}
	writeJSON(w, http.StatusOK, nonNilProjects(projects))
}

// ListFeaturedProjects handles GET /projects/featured.
func (s *Server) ListFeaturedProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.ListFeatured(r.Context())
	if err != nil {
		s.fail(w, r, err, projectNotFound, "failed to fetch featured projects")
		return
	}
	writeJSON(w, http.StatusOK, nonNilProjects(projects))
}

// GetProject handles GET /projects/{id}.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.fail(w, r, err, projectNotFound, "failed to fetch project")
		return
	}
	project, err := s.projects.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, projectNotFound, "failed to fetch project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// CreateProject handles POST /projects.
func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	var body domain.Project
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, r, err, projectNotFound, "failed to create project")
		return
	}
	created, err := s.projects.Create(r.Context(), body)
	if err != nil {
		s.fail(w, r, err, projectNotFound, "failed to create project")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateProject handles PUT /projects/{id}. Only the fields present in the
// body are changed.
func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.fail(w, r, err, projectNotFound, "failed to update project")
		return
	}
	var patch domain.ProjectPatch
	if err := decodeBody(r, &patch); err != nil {
		s.fail(w, r, err, projectNotFound, "failed to update project")
		return
	}
	updated, err := s.projects.Update(r.Context(), id, patch)
	if err != nil {
		s.fail(w, r, err, projectNotFound, "failed to update project")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteProject handles DELETE /projects/{id}.
func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.fail(w, r, err, projectNotFound, "failed to delete project")
		return
	}
	if err := s.projects.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, projectNotFound, "failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// nonNilProjects keeps empty lists encoding as [] rather than null.
func nonNilProjects(p []domain.Project) []domain.Project {
	if p == nil {
		return []domain.Project{}
	}
	return p
}
