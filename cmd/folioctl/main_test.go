package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/cyberfolio/internal/cache"
	"github.com/pkordes/cyberfolio/internal/domain"
	"github.com/pkordes/cyberfolio/internal/handler"
	"github.com/pkordes/cyberfolio/internal/store"
)

// memProjects is an in-memory handler.ProjectServicer.
type memProjects struct {
	mu    sync.Mutex
	items []domain.Project
}

var _ handler.ProjectServicer = (*memProjects)(nil)

func (m *memProjects) List(context.Context) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items), nil
}

func (m *memProjects) ListFeatured(ctx context.Context) ([]domain.Project, error) {
	all, _ := m.List(ctx)
	return domain.FilterProjects(all, domain.ProjectIsFeatured), nil
}

func (m *memProjects) GetByID(_ context.Context, id string) (domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, domain.ErrNotFound
}

func (m *memProjects) Create(_ context.Context, p domain.Project) (domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	m.items = append(m.items, p)
	return p, nil
}

func (m *memProjects) Update(_ context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.items {
		if p.ID == id {
			m.items[i] = patch.Apply(p)
			return m.items[i], nil
		}
	}
	return domain.Project{}, domain.ErrNotFound
}

func (m *memProjects) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.items)
	m.items = slices.DeleteFunc(m.items, func(p domain.Project) bool { return p.ID == id })
	if len(m.items) == n {
		return domain.ErrNotFound
	}
	return nil
}

// memPosts is an in-memory handler.BlogPostServicer.
type memPosts struct {
	mu    sync.Mutex
	items []domain.BlogPost
}

var _ handler.BlogPostServicer = (*memPosts)(nil)

func (m *memPosts) List(context.Context) ([]domain.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items), nil
}

func (m *memPosts) ListPublished(ctx context.Context, tag string) ([]domain.BlogPost, error) {
	all, _ := m.List(ctx)
	out := domain.FilterBlogPosts(all, domain.PostIsPublished)
	if tag != "" {
		out = domain.FilterBlogPosts(out, domain.PostHasTag(tag))
	}
	return out, nil
}

func (m *memPosts) ListFeatured(ctx context.Context) ([]domain.BlogPost, error) {
	all, _ := m.List(ctx)
	return domain.FilterBlogPosts(all, domain.PostIsFeatured), nil
}

func (m *memPosts) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	all, _ := m.List(ctx)
	return domain.CountTags(all), nil
}

func (m *memPosts) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	return m.find(func(p domain.BlogPost) bool { return p.ID == id })
}

func (m *memPosts) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	return m.find(func(p domain.BlogPost) bool { return p.Slug == slug })
}

func (m *memPosts) find(match func(domain.BlogPost) bool) (domain.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if match(p) {
			return p, nil
		}
	}
	return domain.BlogPost{}, domain.ErrNotFound
}

func (m *memPosts) Create(_ context.Context, p domain.BlogPost) (domain.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, p)
	return p, nil
}

func (m *memPosts) Update(_ context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.items {
		if p.ID == id {
			m.items[i] = patch.Apply(p)
			return m.items[i], nil
		}
	}
	return domain.BlogPost{}, domain.ErrNotFound
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = slices.DeleteFunc(m.items, func(p domain.BlogPost) bool { return p.ID == id })
	return nil
}

type harness struct {
	t         *testing.T
	srv       *httptest.Server
	projects  *memProjects
	posts     *memPosts
	cachePath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, k := range []string{"FOLIO_CONFIG", "API_BASE_URL", "API_TIMEOUT", "FOLIO_CACHE_PATH", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	h := &harness{
		t:         t,
		projects:  &memProjects{},
		posts:     &memPosts{},
		cachePath: filepath.Join(t.TempDir(), "cache.db"),
	}
	r := chi.NewRouter()
	r.Mount("/api", handler.NewServer(h.projects, h.posts, nil).Routes())
	h.srv = httptest.NewServer(r)
	t.Cleanup(h.srv.Close)
	return h
}

// run executes folioctl against the harness API and cache.
func (h *harness) run(args ...string) (stdout, stderr string, err error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--api", h.srv.URL + "/api", "--cache", h.cachePath, "--timeout", "2s"}, args...)
	err = run(context.Background(), full, &out, &errOut)
	return out.String(), errOut.String(), err
}

func (h *harness) login() {
	h.t.Helper()
	_, _, err := h.run("session", "login", "--email", "admin@example.com", "--name", "Admin")
	require.NoError(h.t, err)
}

func (h *harness) snapshot() domain.ContentSnapshot {
	h.t.Helper()
	c, err := cache.Open(h.cachePath)
	require.NoError(h.t, err)
	defer c.Close()
	snap, _, err := c.Snapshot(context.Background())
	require.NoError(h.t, err)
	return snap
}

func TestWriteRequiresSession(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("projects", "create", "--title", "Neon")

	require.ErrorIs(t, err, errNotSignedIn)
	assert.Empty(t, h.projects.items)
}

func TestCreateProject_UpdatesAPIAndCache(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, _, err := h.run("projects", "create", "--title", "Neon Grid", "--tech", "Go,SQL", "--featured")
	require.NoError(t, err)

	require.Len(t, h.projects.items, 1)
	assert.Equal(t, "Neon Grid", h.projects.items[0].Title)
	assert.Equal(t, []string{"Go", "SQL"}, h.projects.items[0].Technologies)

	snap := h.snapshot()
	require.Len(t, snap.Projects, 1)
	assert.Equal(t, h.projects.items[0].ID, snap.Projects[0].ID)

	out, _, err := h.run("--json", "projects", "featured")
	require.NoError(t, err)
	var listed []domain.Project
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Neon Grid", listed[0].Title)
}

func TestUpdateProject_SendsOnlyChangedFields(t *testing.T) {
	h := newHarness(t)
	h.projects.items = []domain.Project{{ID: "p1", Title: "Old", Description: "keep", Order: 3}}
	h.login()

	_, _, err := h.run("projects", "update", "p1", "--title", "New")
	require.NoError(t, err)

	got := h.projects.items[0]
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "keep", got.Description)
	assert.Equal(t, 3, got.Order)

	_, _, err = h.run("projects", "update", "p1")
	require.ErrorIs(t, err, domain.ErrEmptyUpdate)
}

func TestReadsFallBackToCacheWhenAPIDown(t *testing.T) {
	h := newHarness(t)
	h.projects.items = []domain.Project{{ID: "p1", Title: "Cached"}}
	h.posts.items = []domain.BlogPost{{ID: "b1", Slug: "draft", Title: "Draft"}}

	_, _, err := h.run("sync")
	require.NoError(t, err)
	h.srv.Close()

	out, stderr, err := h.run("--json", "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, stderr, "API unavailable")
	var listed []domain.Project
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Cached", listed[0].Title)

	out, _, err = h.run("posts", "slug", "draft")
	require.NoError(t, err)
	assert.Contains(t, out, "Draft")
}

func TestWriteFailsWhenAPIDown(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.srv.Close()

	_, _, err := h.run("projects", "create", "--title", "Offline")

	require.Error(t, err)
	assert.Equal(t, "unable to create project: API unavailable", err.Error())
}

func TestCreatePost_DerivesSlug(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, _, err := h.run("posts", "create", "--title", "Hello, World!", "--tags", "go", "--published", "--date", "2025-01-02")
	require.NoError(t, err)

	require.Len(t, h.posts.items, 1)
	p := h.posts.items[0]
	assert.Equal(t, "hello-world", p.Slug)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), p.Date)

	out, _, err := h.run("posts", "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "go")

	out, _, err = h.run("posts", "search", "HELLO")
	require.NoError(t, err)
	assert.Contains(t, out, "hello-world")
}

func TestLogoutKeepsCachedContent(t *testing.T) {
	h := newHarness(t)
	h.projects.items = []domain.Project{{ID: "p1", Title: "Kept"}}
	h.login()
	_, _, err := h.run("sync")
	require.NoError(t, err)

	_, _, err = h.run("session", "logout")
	require.NoError(t, err)

	out, _, err := h.run("session", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "not signed in")
	assert.Len(t, h.snapshot().Projects, 1)
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.projects.items = []domain.Project{{ID: "p1", Title: "Exported"}}

	out, _, err := h.run("export")
	require.NoError(t, err)
	var exp store.Export
	require.NoError(t, json.Unmarshal([]byte(out), &exp))
	require.Len(t, exp.Projects, 1)
	assert.False(t, exp.ExportedAt.IsZero())

	path := filepath.Join(t.TempDir(), "projects.csv")
	_, _, err = h.run("export", "--format", "csv", "--out", path)
	require.NoError(t, err)

	_, _, err = h.run("export", "--format", "xml")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatus(t *testing.T) {
	h := newHarness(t)
	h.posts.items = []domain.BlogPost{{ID: "b1", Slug: "a", Published: true}, {ID: "b2", Slug: "b"}}

	out, _, err := h.run("status")
	require.NoError(t, err)

	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "signed out")
	assert.True(t, strings.Contains(out, "1 published"), out)
}
