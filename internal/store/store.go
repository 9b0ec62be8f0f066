package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/cyberfolio/internal/domain"
	"github.com/pkordes/cyberfolio/internal/fallback"
)

// ProjectService is the project side of the fallback layer.
type ProjectService interface {
	GetAll(ctx context.Context) ([]domain.Project, fallback.Source)
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// BlogPostService is the blog side of the fallback layer.
type BlogPostService interface {
	GetAll(ctx context.Context) ([]domain.BlogPost, fallback.Source)
	Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error)
	Update(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

// Persister is the durable cache behind the store. *cache.Cache satisfies it.
type Persister interface {
	Snapshot(ctx context.Context) (domain.ContentSnapshot, bool, error)
	SaveSnapshot(ctx context.Context, s domain.ContentSnapshot) error
	Session(ctx context.Context) (*domain.AdminUser, error)
	SaveSession(ctx context.Context, u domain.AdminUser) error
	ClearSession(ctx context.Context) error
}

// Messages recorded in State.Error.
const (
	MsgServedFromCache = "API unavailable, showing cached content"
	msgAddProject      = "failed to add project"
	msgUpdateProject   = "failed to update project"
	msgDeleteProject   = "failed to delete project"
	msgAddBlogPost     = "failed to add blog post"
	msgUpdateBlogPost  = "failed to update blog post"
	msgDeleteBlogPost  = "failed to delete blog post"
)

// Store holds State and serialises every transition through Dispatch.
type Store struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int

	projects ProjectService
	posts    BlogPostService
	cache    Persister
	log      *slog.Logger
	now      func() time.Time
}

// New builds a Store and restores what the cache holds: the session user,
// both collections and the about/contact content. A write made before Load
// therefore extends the cached snapshot instead of replacing it. Nothing is
// written to the cache during construction.
func New(ctx context.Context, projects ProjectService, posts BlogPostService, cache Persister, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		projects: projects,
		posts:    posts,
		cache:    cache,
		log:      log,
		now:      time.Now,
		subs:     map[int]func(State){},
	}
	s.state = InitialState(s.now().UTC())
	s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) {
	if s.cache == nil {
		return
	}
	user, err := s.cache.Session(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "saved session unreadable", slog.String("error", err.Error()))
	} else if user != nil {
		s.state = Reduce(s.state, SetUser{User: user})
	}

	snap, ok, err := s.cache.Snapshot(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "saved content unreadable", slog.String("error", err.Error()))
		return
	}
	if ok {
		s.state = Reduce(s.state, SetContent{Projects: snap.Projects, BlogPosts: snap.BlogPosts})
		if !snap.AboutContent.UpdatedAt.IsZero() {
			s.state = Reduce(s.state, SetAboutContent{AboutContent: snap.AboutContent})
		}
		if !snap.ContactInfo.UpdatedAt.IsZero() {
			s.state = Reduce(s.state, SetContactInfo{ContactInfo: snap.ContactInfo})
		}
	}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with the new state after every
// dispatch. It returns a function that removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Dispatch applies a and runs its side effects: content transitions overwrite
// the cached snapshot, session transitions save or clear the session. Cache
// failures are logged, not returned; the cache is a backup.
func (s *Store) Dispatch(ctx context.Context, a Action) State {
	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	if s.cache != nil {
		if touchesContent(a) {
			if err := s.cache.SaveSnapshot(ctx, next.Snapshot()); err != nil {
				s.log.WarnContext(ctx, "content backup failed", slog.String("error", err.Error()))
			}
		}
		if touchesSession(a) {
			s.persistSession(ctx, next.User)
		}
	}
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

func (s *Store) persistSession(ctx context.Context, u *domain.AdminUser) {
	var err error
	if u != nil {
		err = s.cache.SaveSession(ctx, *u)
	} else {
		err = s.cache.ClearSession(ctx)
	}
	if err != nil {
		s.log.WarnContext(ctx, "session backup failed", slog.String("error", err.Error()))
	}
}

// LoadResult says where each collection came from.
type LoadResult struct {
	Projects  fallback.Source
	BlogPosts fallback.Source
}

// FromCache reports whether either collection was served from the cache.
func (r LoadResult) FromCache() bool {
	return r.Projects == fallback.SourceCache || r.BlogPosts == fallback.SourceCache
}

// Load fetches projects and blog posts in parallel. Reads never fail; when
// either came from the cache the state's Error records it for the UI.
func (s *Store) Load(ctx context.Context) LoadResult {
	s.Dispatch(ctx, SetLoading{Loading: true})
	s.Dispatch(ctx, SetError{})

	var (
		res      LoadResult
		projects []domain.Project
		posts    []domain.BlogPost
	)
	// Reads never fail, so the group only joins the two calls and carries
	// ctx cancellation into both.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, res.Projects = s.projects.GetAll(gctx)
		return nil
	})
	g.Go(func() error {
		posts, res.BlogPosts = s.posts.GetAll(gctx)
		return nil
	})
	_ = g.Wait()

	// One transition, so the snapshot is written once with both collections.
	s.Dispatch(ctx, SetContent{Projects: projects, BlogPosts: posts})
	if res.FromCache() {
		s.Dispatch(ctx, SetError{Message: MsgServedFromCache})
	}
	s.Dispatch(ctx, SetLoading{Loading: false})
	return res
}

func (s *Store) writeFailed(ctx context.Context, msg string, err error) error {
	s.log.ErrorContext(ctx, msg, slog.String("error", err.Error()))
	s.Dispatch(ctx, SetError{Message: msg})
	return err
}

// AddProject creates p remotely and adds the stored result.
func (s *Store) AddProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	created, err := s.projects.Create(ctx, p)
	if err != nil {
		return domain.Project{}, s.writeFailed(ctx, msgAddProject, err)
	}
	s.Dispatch(ctx, AddProject{Project: created})
	return created, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	updated, err := s.projects.Update(ctx, id, patch)
	if err != nil {
		return domain.Project{}, s.writeFailed(ctx, msgUpdateProject, err)
	}
	s.Dispatch(ctx, UpdateProject{Project: updated})
	return updated, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return s.writeFailed(ctx, msgDeleteProject, err)
	}
	s.Dispatch(ctx, DeleteProject{ID: id})
	return nil
}

func (s *Store) AddBlogPost(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error) {
	created, err := s.posts.Create(ctx, p)
	if err != nil {
		return domain.BlogPost{}, s.writeFailed(ctx, msgAddBlogPost, err)
	}
	s.Dispatch(ctx, AddBlogPost{BlogPost: created})
	return created, nil
}

func (s *Store) UpdateBlogPost(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error) {
	updated, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		return domain.BlogPost{}, s.writeFailed(ctx, msgUpdateBlogPost, err)
	}
	s.Dispatch(ctx, UpdateBlogPost{BlogPost: updated})
	return updated, nil
}

func (s *Store) DeleteBlogPost(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return s.writeFailed(ctx, msgDeleteBlogPost, err)
	}
	s.Dispatch(ctx, DeleteBlogPost{ID: id})
	return nil
}

// SetAboutContent replaces the about content, stamping UpdatedAt.
func (s *Store) SetAboutContent(ctx context.Context, about domain.AboutContent) {
	about.UpdatedAt = s.now().UTC()
	s.Dispatch(ctx, SetAboutContent{AboutContent: about})
}

// SetContactInfo replaces the contact info, stamping UpdatedAt.
func (s *Store) SetContactInfo(ctx context.Context, info domain.ContactInfo) {
	info.UpdatedAt = s.now().UTC()
	s.Dispatch(ctx, SetContactInfo{ContactInfo: info})
}

// Login starts a local session. There is no credential check: the API has no
// authentication, the session only gates the CLI's write commands.
func (s *Store) Login(ctx context.Context, email, name string, role domain.Role) (domain.AdminUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.AdminUser{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if role == "" {
		role = domain.RoleAdmin
	}
	if role != domain.RoleAdmin && role != domain.RoleEditor {
		return domain.AdminUser{}, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	u := domain.AdminUser{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      role,
		LastLogin: s.now().UTC(),
	}
	s.Dispatch(ctx, SetUser{User: &u})
	return u, nil
}

// Logout ends the session and clears it from the cache. Content stays.
func (s *Store) Logout(ctx context.Context) {
	s.Dispatch(ctx, Logout{})
}
