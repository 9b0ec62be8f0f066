package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkordes/cyberfolio/internal/domain"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func (a *app) printProjects(projects []domain.Project) error {
	if a.opts.json {
		return printJSON(a.out, projects)
	}
	tw := newTable(a.out, "ID", "TITLE", "FEATURED", "ORDER", "TECHNOLOGIES")
	for _, p := range projects {
		row(tw, p.ID, p.Title, yesNo(p.Featured), strconv.Itoa(p.Order), strings.Join(p.Technologies, ", "))
	}
	return tw.Flush()
}

func (a *app) printProject(p domain.Project) error {
	if a.opts.json {
		return printJSON(a.out, p)
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	row(tw, "id:", p.ID)
	row(tw, "title:", p.Title)
	row(tw, "description:", p.Description)
	row(tw, "technologies:", strings.Join(p.Technologies, ", "))
	row(tw, "image:", p.Image)
	row(tw, "demo:", p.DemoURL)
	row(tw, "github:", p.GithubURL)
	row(tw, "featured:", yesNo(p.Featured))
	row(tw, "order:", strconv.Itoa(p.Order))
	row(tw, "updated:", formatTime(p.UpdatedAt))
	return tw.Flush()
}

func (a *app) printBlogPosts(posts []domain.BlogPost) error {
	if a.opts.json {
		return printJSON(a.out, posts)
	}
	tw := newTable(a.out, "ID", "SLUG", "TITLE", "DATE", "PUBLISHED", "FEATURED", "TAGS")
	for _, p := range posts {
		row(tw, p.ID, p.Slug, p.Title, p.Date.UTC().Format(time.DateOnly),
			yesNo(p.Published), yesNo(p.Featured), strings.Join(p.Tags, ", "))
	}
	return tw.Flush()
}

func (a *app) printBlogPost(p domain.BlogPost) error {
	if a.opts.json {
		return printJSON(a.out, p)
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	row(tw, "id:", p.ID)
	row(tw, "slug:", p.Slug)
	row(tw, "title:", p.Title)
	row(tw, "author:", p.Author)
	row(tw, "date:", p.Date.UTC().Format(time.DateOnly))
	row(tw, "read time:", p.ReadTime)
	row(tw, "tags:", strings.Join(p.Tags, ", "))
	row(tw, "published:", yesNo(p.Published))
	row(tw, "featured:", yesNo(p.Featured))
	row(tw, "excerpt:", p.Excerpt)
	if err := tw.Flush(); err != nil {
		return err
	}
	if p.Content != "" {
		_, err := fmt.Fprintf(a.out, "\n%s\n", p.Content)
		return err
	}
	return nil
}

func (a *app) printTags(tags []domain.TagCount) error {
	if a.opts.json {
		return printJSON(a.out, tags)
	}
	tw := newTable(a.out, "TAG", "POSTS")
	for _, t := range tags {
		row(tw, t.Tag, strconv.Itoa(t.Count))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

// parseDate accepts RFC 3339 or a bare YYYY-MM-DD (midnight UTC).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC 3339, got %q", domain.ErrValidation, s)
	}
	return t, nil
}
