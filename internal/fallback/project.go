package fallback

import (
	"context"
	"log/slog"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// ProjectRemote is the remote project API. *client.ProjectAPI satisfies it.
type ProjectRemote interface {
	GetAll(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (domain.Project, error)
	GetFeatured(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error)
	Delete(ctx context.Context, id string) error
}

const projectEntity = "project"

// ProjectService reads projects with cache fallback and writes them through
// the remote only.
type ProjectService struct {
	remote ProjectRemote
	loader
}

func NewProjectService(remote ProjectRemote, snap SnapshotReader, log *slog.Logger) *ProjectService {
	return &ProjectService{remote: remote, loader: newLoader(snap, log)}
}

// GetAll returns every project. On fallback every cached project is returned.
func (s *ProjectService) GetAll(ctx context.Context) ([]domain.Project, Source) {
	projects, err := s.remote.GetAll(ctx)
	if err == nil {
		return nonNil(projects), SourceRemote
	}
	s.warn(ctx, "projects.getAll", err)
	return domain.SortProjects(nonNil(s.load(ctx).Projects)), SourceCache
}

// GetFeatured returns featured projects.
func (s *ProjectService) GetFeatured(ctx context.Context) ([]domain.Project, Source) {
	projects, err := s.remote.GetFeatured(ctx)
	if err == nil {
		return nonNil(projects), SourceRemote
	}
	s.warn(ctx, "projects.getFeatured", err)
	cached := domain.FilterProjects(s.load(ctx).Projects, domain.ProjectIsFeatured)
	return domain.SortProjects(cached), SourceCache
}

// GetByID returns the project or nil when it does not exist. A remote 404 is
// also resolved against the snapshot, like any other failure.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.Project, Source) {
	p, err := s.remote.GetByID(ctx, id)
	if err == nil {
		return &p, SourceRemote
	}
	s.warn(ctx, "projects.getById", err)
	for _, cached := range s.load(ctx).Projects {
		if cached.ID == id {
			return &cached, SourceCache
		}
	}
	return nil, SourceCache
}

func (s *ProjectService) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	created, err := s.remote.Create(ctx, p)
	if err != nil {
		return domain.Project{}, s.writeFailed(ctx, projectEntity, "create", err)
	}
	return created, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	updated, err := s.remote.Update(ctx, id, patch)
	if err != nil {
		return domain.Project{}, s.writeFailed(ctx, projectEntity, "update", err)
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		return s.writeFailed(ctx, projectEntity, "delete", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
