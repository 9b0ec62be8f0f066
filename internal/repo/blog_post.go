package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// BlogPostRepo defines the persistence operations for BlogPosts.
type BlogPostRepo interface {
	// GetAll returns every post, drafts included, ordered by date descending
	// then created_at descending.
	GetAll(ctx context.Context) ([]domain.BlogPost, error)

	// GetByID retrieves a single post by id.
	// Returns domain.ErrNotFound if no post with that id exists.
	GetByID(ctx context.Context, id string) (domain.BlogPost, error)

	// GetBySlug retrieves a single post by its unique slug.
	// Returns domain.ErrNotFound if no post has that slug.
	GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error)

	// GetFeatured returns posts that are both featured and published.
	GetFeatured(ctx context.Context) ([]domain.BlogPost, error)

	// GetPublished returns published posts.
	GetPublished(ctx context.Context) ([]domain.BlogPost, error)

	// GetPublishedByTag returns published posts carrying tag (exact match).
	GetPublishedByTag(ctx context.Context, tag string) ([]domain.BlogPost, error)

	// ListTags returns every tag used by a published post with the number of
	// published posts carrying it, ordered by tag.
	ListTags(ctx context.Context) ([]domain.TagCount, error)

	// Create inserts a post with the caller-supplied id and slug.
	// Returns domain.ErrDuplicateKey if the id or slug is taken.
	Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error)

	// Update writes only the non-nil fields of patch. Returns
	// domain.ErrEmptyUpdate, domain.ErrNotFound, or domain.ErrDuplicateKey
	// (slug collision).
	Update(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error)

	// Delete removes a post and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// pgBlogPostRepo is the Postgres implementation of BlogPostRepo.
type pgBlogPostRepo struct {
	db db
}

// NewBlogPostRepo constructs a BlogPostRepo backed by the provided db connection.
func NewBlogPostRepo(db db) BlogPostRepo {
	return &pgBlogPostRepo{db: db}
}

const blogPostColumnList = `id, title, excerpt, content, image, date, read_time, tags,
		       featured, published, author, slug, created_at, updated_at`

var blogPostPatchColumns = []column[domain.BlogPostPatch]{
	field("title", func(p domain.BlogPostPatch) *string { return p.Title }),
	field("excerpt", func(p domain.BlogPostPatch) *string { return p.Excerpt }),
	field("content", func(p domain.BlogPostPatch) *string { return p.Content }),
	field("image", func(p domain.BlogPostPatch) *string { return p.Image }),
	field("date", func(p domain.BlogPostPatch) *time.Time { return p.Date }),
	field("read_time", func(p domain.BlogPostPatch) *string { return p.ReadTime }),
	listField("tags", func(p domain.BlogPostPatch) *[]string { return p.Tags }),
	field("featured", func(p domain.BlogPostPatch) *bool { return p.Featured }),
	field("published", func(p domain.BlogPostPatch) *bool { return p.Published }),
	field("author", func(p domain.BlogPostPatch) *string { return p.Author }),
	field("slug", func(p domain.BlogPostPatch) *string { return p.Slug }),
	updatedAtField(func(p domain.BlogPostPatch) *time.Time { return p.UpdatedAt }),
}

// GetAll returns all posts in listing order.
func (r *pgBlogPostRepo) GetAll(ctx context.Context) ([]domain.BlogPost, error) {
	const q = `
		SELECT ` + blogPostColumnList + `
		FROM blog_posts
		ORDER BY date DESC, created_at DESC`

	posts, err := r.list(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.BlogPostRepo.GetAll: %w", err)
	}
	return posts, nil
}

// GetPublished returns published posts in listing order.
func (r *pgBlogPostRepo) GetPublished(ctx context.Context) ([]domain.BlogPost, error) {
	const q = `
		SELECT ` + blogPostColumnList + `
		FROM blog_posts
		WHERE published = true
		ORDER BY date DESC, created_at DESC`

	posts, err := r.list(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.BlogPostRepo.GetPublished: %w", err)
	}
	return posts, nil
}

// GetFeatured returns featured, published posts in listing order.
func (r *pgBlogPostRepo) GetFeatured(ctx context.Context) ([]domain.BlogPost, error) {
	const q = `
		SELECT ` + blogPostColumnList + `
		FROM blog_posts
		WHERE featured = true AND published = true
		ORDER BY date DESC, created_at DESC`

	posts, err := r.list(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.BlogPostRepo.GetFeatured: %w", err)
	}
	return posts, nil
}

// GetPublishedByTag returns published posts whose tags array contains tag.
func (r *pgBlogPostRepo) GetPublishedByTag(ctx context.Context, tag string) ([]domain.BlogPost, error) {
	const q = `
		SELECT ` + blogPostColumnList + `
		FROM blog_posts
		WHERE published = true AND @tag = ANY(tags)
		ORDER BY date DESC, created_at DESC`

	posts, err := r.list(ctx, q, pgx.NamedArgs{"tag": tag})
	if err != nil {
		return nil, fmt.Errorf("repo.BlogPostRepo.GetPublishedByTag: %w", err)
	}
	return posts, nil
}

// ListTags counts published posts per tag.
func (r *pgBlogPostRepo) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	const q = `
		SELECT tag, COUNT(DISTINCT id)
		FROM blog_posts, unnest(tags) AS tag
		WHERE published = true
		GROUP BY tag
		ORDER BY tag COLLATE "C"`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BlogPostRepo.ListTags: %w", err)
	}
	defer rows.Close()

	tags := []domain.TagCount{}
	for rows.Next() {
		var tc domain.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("repo.BlogPostRepo.ListTags: scan: %w", err)
		}
		tags = append(tags, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BlogPostRepo.ListTags: rows: %w", err)
	}
	return tags, nil
}

// GetByID retrieves a post by primary key.
func (r *pgBlogPostRepo) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	const q = `
		SELECT ` + blogPostColumnList + `
		FROM blog_posts
		WHERE id = @id`

	result, err := scanBlogPost(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("repo.BlogPostRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetBySlug retrieves a post by slug.
func (r *pgBlogPostRepo) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	const q = `
		SELECT ` + blogPostColumnList + `
		FROM blog_posts
		WHERE slug = @slug`

	result, err := scanBlogPost(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("repo.BlogPostRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// Create inserts a new post row and returns the full persisted record.
func (r *pgBlogPostRepo) Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error) {
	const q = `
		INSERT INTO blog_posts (id, title, excerpt, content, image, date, read_time,
		                        tags, featured, published, author, slug)
		VALUES (@id, @title, @excerpt, @content, @image, @date, @read_time,
		        @tags, @featured, @published, @author, @slug)
		RETURNING ` + blogPostColumnList

	args := pgx.NamedArgs{
		"id":        p.ID,
		"title":     p.Title,
		"excerpt":   p.Excerpt,
		"content":   p.Content,
		"image":     p.Image,
		"date":      p.Date,
		"read_time": p.ReadTime,
		"tags":      nonNil(p.Tags),
		"featured":  p.Featured,
		"published": p.Published,
		"author":    p.Author,
		"slug":      p.Slug,
	}

	result, err := scanBlogPost(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("repo.BlogPostRepo.Create: %w", mapWriteError(err))
	}
	return result, nil
}

// Update applies a partial update and returns the updated record.
func (r *pgBlogPostRepo) Update(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, error) {
	if patch.IsEmpty() {
		return domain.BlogPost{}, fmt.Errorf("repo.BlogPostRepo.Update: %w", domain.ErrEmptyUpdate)
	}

	q, args, err := buildUpdate("blog_posts", blogPostPatchColumns, patch, id, blogPostColumnList)
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("repo.BlogPostRepo.Update: %w", err)
	}

	result, err := scanBlogPost(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("repo.BlogPostRepo.Update: %w", mapWriteError(err))
	}
	return result, nil
}

// Delete removes a post by primary key.
func (r *pgBlogPostRepo) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM blog_posts WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, fmt.Errorf("repo.BlogPostRepo.Delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgBlogPostRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.BlogPost, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args != nil {
		rows, err = r.db.Query(ctx, q, args)
	} else {
		rows, err = r.db.Query(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return posts, nil
}

// scanBlogPost maps a single database row into a domain.BlogPost.
func scanBlogPost(s scanner) (domain.BlogPost, error) {
	var p domain.BlogPost
	err := s.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Image, &p.Date,
		&p.ReadTime, &p.Tags, &p.Featured, &p.Published, &p.Author, &p.Slug,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BlogPost{}, domain.ErrNotFound
		}
		return domain.BlogPost{}, err
	}
	p.Tags = nonNil(p.Tags)
	return p, nil
}
