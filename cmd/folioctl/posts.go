package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pkordes/cyberfolio/internal/domain"
)

type postFlags struct {
	title       string
	slug        string
	excerpt     string
	content     string
	contentFile string
	image       string
	date        string
	readTime    string
	tags        []string
	featured    bool
	published   bool
	author      string
}

func (f *postFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "post title")
	fs.StringVar(&f.slug, "slug", "", "URL slug (derived from the title when omitted)")
	fs.StringVar(&f.excerpt, "excerpt", "", "one-paragraph summary")
	fs.StringVar(&f.content, "content", "", "markdown body")
	fs.StringVar(&f.contentFile, "content-file", "", "read the markdown body from a file")
	fs.StringVar(&f.image, "image", "", "cover image URL")
	fs.StringVar(&f.date, "date", "", "publication date, YYYY-MM-DD or RFC 3339")
	fs.StringVar(&f.readTime, "read-time", "", `reading time, e.g. "5 min read"`)
	fs.StringSliceVar(&f.tags, "tags", nil, "tags, comma separated")
	fs.BoolVar(&f.featured, "featured", false, "promote among published posts")
	fs.BoolVar(&f.published, "published", false, "make the post publicly visible")
	fs.StringVar(&f.author, "author", "", "author name")
}

// body resolves --content / --content-file. ok is false when neither was set.
func (f *postFlags) body(fs *pflag.FlagSet) (body string, ok bool, err error) {
	switch {
	case fs.Changed("content-file"):
		data, err := os.ReadFile(f.contentFile)
		if err != nil {
			return "", false, fmt.Errorf("read content file: %w", err)
		}
		return string(data), true, nil
	case fs.Changed("content"):
		return f.content, true, nil
	}
	return "", false, nil
}

func (f *postFlags) patch(fs *pflag.FlagSet) (domain.BlogPostPatch, error) {
	var p domain.BlogPostPatch
	if fs.Changed("title") {
		p.Title = &f.title
	}
	if fs.Changed("slug") {
		if !domain.ValidSlug(f.slug) {
			return p, fmt.Errorf("%w: invalid slug %q", domain.ErrValidation, f.slug)
		}
		p.Slug = &f.slug
	}
	if fs.Changed("excerpt") {
		p.Excerpt = &f.excerpt
	}
	body, ok, err := f.body(fs)
	if err != nil {
		return p, err
	}
	if ok {
		p.Content = &body
	}
	if fs.Changed("image") {
		p.Image = &f.image
	}
	if fs.Changed("date") {
		d, err := parseDate(f.date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	if fs.Changed("read-time") {
		p.ReadTime = &f.readTime
	}
	if fs.Changed("tags") {
		p.Tags = &f.tags
	}
	if fs.Changed("featured") {
		p.Featured = &f.featured
	}
	if fs.Changed("published") {
		p.Published = &f.published
	}
	if fs.Changed("author") {
		p.Author = &f.author
	}
	return p, nil
}

// post builds a new post from the flags, deriving the slug from the title
// and defaulting the date to now.
func (f *postFlags) post(fs *pflag.FlagSet, now time.Time) (domain.BlogPost, error) {
	title := strings.TrimSpace(f.title)
	if title == "" {
		return domain.BlogPost{}, fmt.Errorf("%w: --title is required", domain.ErrValidation)
	}
	slug := f.slug
	if slug == "" {
		slug = domain.Slugify(title)
	}
	if !domain.ValidSlug(slug) {
		return domain.BlogPost{}, fmt.Errorf("%w: invalid slug %q", domain.ErrValidation, slug)
	}
	date := now.UTC()
	if f.date != "" {
		d, err := parseDate(f.date)
		if err != nil {
			return domain.BlogPost{}, err
		}
		date = d
	}
	body, _, err := f.body(fs)
	if err != nil {
		return domain.BlogPost{}, err
	}
	return domain.BlogPost{
		ID:        uuid.NewString(),
		Title:     title,
		Slug:      slug,
		Excerpt:   f.excerpt,
		Content:   body,
		Image:     f.image,
		Date:      date,
		ReadTime:  f.readTime,
		Tags:      f.tags,
		Featured:  f.featured,
		Published: f.published,
		Author:    f.author,
	}, nil
}

func newPostsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post", "blog"},
		Short:   "List and edit blog posts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every post, drafts included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, src := a.posts.GetAll(cmd.Context())
			a.notice(cmd, src)
			return a.printBlogPosts(posts)
		},
	}

	var tag string
	published := &cobra.Command{
		Use:   "published",
		Short: "List published posts, optionally with one tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, src := a.posts.GetPublished(cmd.Context())
			if tag != "" {
				posts, src = a.posts.GetPublishedByTag(cmd.Context(), tag)
			}
			a.notice(cmd, src)
			return a.printBlogPosts(posts)
		},
	}
	published.Flags().StringVar(&tag, "tag", "", "only posts carrying this exact tag")

	featured := &cobra.Command{
		Use:   "featured",
		Short: "List featured published posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, src := a.posts.GetFeatured(cmd.Context())
			a.notice(cmd, src)
			return a.printBlogPosts(posts)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one post by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, src := a.posts.GetByID(cmd.Context(), args[0])
			a.notice(cmd, src)
			if p == nil {
				return fmt.Errorf("blog post %s: %w", args[0], domain.ErrNotFound)
			}
			return a.printBlogPost(*p)
		},
	}

	slug := &cobra.Command{
		Use:   "slug <slug>",
		Short: "Show one post by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, src := a.posts.GetBySlug(cmd.Context(), args[0])
			a.notice(cmd, src)
			if p == nil {
				return fmt.Errorf("blog post %q: %w", args[0], domain.ErrNotFound)
			}
			return a.printBlogPost(*p)
		},
	}

	tags := &cobra.Command{
		Use:   "tags",
		Short: "List tags of published posts with their counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counts, src := a.posts.ListTags(cmd.Context())
			a.notice(cmd, src)
			return a.printTags(counts)
		},
	}

	search := &cobra.Command{
		Use:   "search <term>",
		Short: "Find published posts by title, excerpt or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, src := a.posts.GetPublished(cmd.Context())
			a.notice(cmd, src)
			return a.printBlogPosts(domain.FilterBlogPosts(posts, func(p domain.BlogPost) bool {
				return domain.MatchesSearch(p, args[0])
			}))
		},
	}

	var createFlags postFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			post, err := createFlags.post(cmd.Flags(), a.now())
			if err != nil {
				return err
			}
			a.store.Load(cmd.Context())
			created, err := a.store.AddBlogPost(cmd.Context(), post)
			if err != nil {
				return err
			}
			return a.printBlogPost(created)
		},
	}
	createFlags.register(create.Flags())
	create.MarkFlagsMutuallyExclusive("content", "content-file")

	var updateFlags postFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			patch, err := updateFlags.patch(cmd.Flags())
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return domain.ErrEmptyUpdate
			}
			a.store.Load(cmd.Context())
			updated, err := a.store.UpdateBlogPost(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return a.printBlogPost(updated)
		},
	}
	updateFlags.register(update.Flags())
	update.MarkFlagsMutuallyExclusive("content", "content-file")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			a.store.Load(cmd.Context())
			if err := a.store.DeleteBlogPost(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted blog post %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, published, featured, get, slug, tags, search, create, update, del)
	return cmd
}
