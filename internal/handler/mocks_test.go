package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/cyberfolio/internal/domain"
	"github.com/pkordes/cyberfolio/internal/handler"
)

// mockProjectServicer is a test double for handler.ProjectServicer.
// Set only the method fields your test needs.
type mockProjectServicer struct {
	list         func(ctx context.Context) ([]domain.Project, error)
	listFeatured func(ctx context.Context) ([]domain.Project, error)
	getByID      func(ctx context.Context, id string) (domain.Project, error)
	create       func(ctx context.Context, p domain.Project) (domain.Project, error)
	update       func(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error)
	delete       func(ctx context.Context, id string) error
}

func (m *mockProjectServicer) List(ctx context.Context) ([]domain.Project, error) {
	return m.list(ctx)
}
func (m *mockProjectServicer) ListFeatured(ctx context.Context) ([]domain.Project, error) {
	return m.listFeatured(ctx)
}
func (m *mockProjectServicer) GetByID(ctx context.Context, id string) (domain.Project, error) {
	return m.getByID(ctx, id)
}
func (m *mockProjectServicer) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	return m.create(ctx, p)
}
func (m *mockProjectServicer) Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	return m.update(ctx, id, patch)
}
func (m *mockProjectServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

// compile-time check: mockProjectServicer must satisfy handler.ProjectServicer.
var _ handler.ProjectServicer = (*mockProjectServicer)(nil)

// mockBlogPostServicer is a test double for handler.BlogPostServicer.
type mockBlogPostServicer struct {
	list          func(ctx context.Context) ([]domain.BlogPost, error)
	listPublished func(ctx context.Context, tag string) ([]domain.BlogPost, error)
	listFeatured  func(ctx context.Context) ([]domain.BlogPost, error)
	listTags      func(ctx context.Context) ([]domain.TagCount, error)
	getByID       func(ctx context.Context, id string) (domain.BlogPost, error)
	getBySlug     func(ctx context.Context, slug string) (domain.BlogPost, error)
	create        func(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error)
	update        func(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error)
	delete        func(ctx context.Context, id string) error
}

func (m *mockBlogPostServicer) List(ctx context.Context) ([]domain.BlogPost, error) {
	return m.list(ctx)
}
func (m *mockBlogPostServicer) ListPublished(ctx context.Context, tag string) ([]domain.BlogPost, error) {
	return m.listPublished(ctx, tag)
}
func (m *mockBlogPostServicer) ListFeatured(ctx context.Context) ([]domain.BlogPost, error) {
	return m.listFeatured(ctx)
}
func (m *mockBlogPostServicer) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	return m.listTags(ctx)
}
func (m *mockBlogPostServicer) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	return m.getByID(ctx, id)
}
func (m *mockBlogPostServicer) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockBlogPostServicer) Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error) {
	return m.create(ctx, p)
}
func (m *mockBlogPostServicer) Update(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error) {
	return m.update(ctx, id, patch)
}
func (m *mockBlogPostServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

var _ handler.BlogPostServicer = (*mockBlogPostServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks the same way main.go
// does, minus the /api prefix. Logs go to the returned buffer.
func newHTTPHandler(projects handler.ProjectServicer, posts handler.BlogPostServicer) (http.Handler, *bytes.Buffer) {
	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	return handler.NewServer(projects, posts, log).Routes(), &logs
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}
