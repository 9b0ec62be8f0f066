package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/cyberfolio/internal/domain"
	"github.com/pkordes/cyberfolio/internal/repo"
	"github.com/pkordes/cyberfolio/testutil"
)

func newBlogPostTx(t *testing.T) pgx.Tx {
	t.Helper()
	tx := testutil.NewTx(t, "blog_posts")
	return tx
}

func newBlogPostRepo(t *testing.T) repo.BlogPostRepo {
	t.Helper()
	return repo.NewBlogPostRepo(newBlogPostTx(t))
}

var postDate = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func postFixture(id string) domain.BlogPost {
	return domain.BlogPost{
		ID:        id,
		Title:     "Jacking Into Go",
		Excerpt:   "Concurrency for netrunners",
		Content:   "# Heading\n\nBody.",
		Image:     "https://img.example/go.png",
		Date:      postDate,
		ReadTime:  "5 min",
		Tags:      []string{"go", "concurrency"},
		Featured:  false,
		Published: true,
		Author:    "Admin User",
		Slug:      "jacking-into-go-" + id,
	}
}

func postIDs(ps []domain.BlogPost) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func createPosts(t *testing.T, r repo.BlogPostRepo, posts ...domain.BlogPost) {
	t.Helper()
	for _, p := range posts {
		_, err := r.Create(context.Background(), p)
		require.NoError(t, err)
	}
}

func TestBlogPostRepo_CreateThenGet(t *testing.T) {
	r := newBlogPostRepo(t)
	ctx := context.Background()

	input := postFixture("b1")
	_, err := r.Create(ctx, input)
	require.NoError(t, err)

	byID, err := r.GetByID(ctx, "b1")
	require.NoError(t, err)
	bySlug, err := r.GetBySlug(ctx, input.Slug)
	require.NoError(t, err)

	assert.Equal(t, byID, bySlug)
	assert.Equal(t, input.Title, byID.Title)
	assert.Equal(t, input.ReadTime, byID.ReadTime)
	assert.Equal(t, input.Tags, byID.Tags)
	assert.True(t, byID.Date.Equal(input.Date))
	assert.False(t, byID.CreatedAt.IsZero())
}

func TestBlogPostRepo_GetBySlug_NotFound(t *testing.T) {
	r := newBlogPostRepo(t)

	_, err := r.GetBySlug(context.Background(), "no-such-post")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestBlogPostRepo_FeaturedAndPublished covers the A/B/C visibility matrix.
func TestBlogPostRepo_FeaturedAndPublished(t *testing.T) {
	r := newBlogPostRepo(t)
	ctx := context.Background()

	a := postFixture("A")
	a.Featured, a.Published = true, false
	b := postFixture("B")
	b.Featured, b.Published = true, true
	b.Date = postDate.Add(time.Hour)
	c := postFixture("C")
	c.Featured, c.Published = false, true
	createPosts(t, r, a, b, c)

	featured, err := r.GetFeatured(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, postIDs(featured))

	published, err := r.GetPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, postIDs(published))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBlogPostRepo_GetAll_ListingOrder(t *testing.T) {
	r := newBlogPostRepo(t)

	old := postFixture("old")
	old.Date = postDate.AddDate(0, -1, 0)
	mid := postFixture("mid")
	recent := postFixture("recent")
	recent.Date = postDate.AddDate(0, 1, 0)
	createPosts(t, r, mid, old, recent)

	got, err := r.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"recent", "mid", "old"}, postIDs(got))
}

func TestBlogPostRepo_Create_DuplicateSlug(t *testing.T) {
	tx := newBlogPostTx(t)
	r := repo.NewBlogPostRepo(tx)
	ctx := context.Background()

	first := postFixture("b1")
	first.Slug = "taken"
	createPosts(t, r, first)

	// A failed statement aborts the enclosing transaction, so the colliding
	// insert runs inside a savepoint.
	sp, err := tx.Begin(ctx)
	require.NoError(t, err)
	second := postFixture("b2")
	second.Slug = "taken"
	second.Title = "Impostor"
	_, err = repo.NewBlogPostRepo(sp).Create(ctx, second)
	require.ErrorIs(t, err, domain.ErrDuplicateKey)
	require.NoError(t, sp.Rollback(ctx))

	got, err := r.GetBySlug(ctx, "taken")
	require.NoError(t, err)
	assert.Equal(t, "b1", got.ID, "first post unchanged")
	assert.Equal(t, first.Title, got.Title)
}

func TestBlogPostRepo_Update_SlugCollision(t *testing.T) {
	r := newBlogPostRepo(t)

	one := postFixture("b1")
	one.Slug = "one"
	two := postFixture("b2")
	two.Slug = "two"
	createPosts(t, r, one, two)

	_, err := r.Update(context.Background(), "b2", domain.BlogPostPatch{Slug: ptr("one")})

	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestBlogPostRepo_Update_OnlyTouchesPatchedField(t *testing.T) {
	r := newBlogPostRepo(t)
	ctx := context.Background()

	before, err := r.Create(ctx, postFixture("b1"))
	require.NoError(t, err)

	after, err := r.Update(ctx, "b1", domain.BlogPostPatch{ReadTime: ptr("12 min")})

	require.NoError(t, err)
	want := before
	want.ReadTime = "12 min"
	assert.Equal(t, want, after)
}

func TestBlogPostRepo_Update_Empty(t *testing.T) {
	r := newBlogPostRepo(t)

	now := time.Now()
	_, err := r.Update(context.Background(), "b1", domain.BlogPostPatch{UpdatedAt: &now})

	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)
}

func TestBlogPostRepo_TagsAndFilter(t *testing.T) {
	r := newBlogPostRepo(t)
	ctx := context.Background()

	p1 := postFixture("p1")
	p1.Tags = []string{"go", "web"}
	p2 := postFixture("p2")
	p2.Tags = []string{"Go", "web"}
	draft := postFixture("draft")
	draft.Published = false
	draft.Tags = []string{"go", "secret"}
	createPosts(t, r, p1, p2, draft)

	tags, err := r.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagCount{
		{Tag: "Go", Count: 1},
		{Tag: "go", Count: 1},
		{Tag: "web", Count: 2},
	}, tags)

	tagged, err := r.GetPublishedByTag(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, postIDs(tagged), "exact, case-sensitive, published only")
}

func TestBlogPostRepo_Delete(t *testing.T) {
	r := newBlogPostRepo(t)
	ctx := context.Background()
	createPosts(t, r, postFixture("b1"))

	removed, err := r.Delete(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.Delete(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, removed)
}
