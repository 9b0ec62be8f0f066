package store

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// Export is a full dump of the loaded content.
type Export struct {
	Projects     []domain.Project    `json:"projects"`
	BlogPosts    []domain.BlogPost   `json:"blogPosts"`
	AboutContent domain.AboutContent `json:"aboutContent"`
	ContactInfo  domain.ContactInfo  `json:"contactInfo"`
	ExportedAt   time.Time           `json:"exportedAt"`
}

// Export returns the current content stamped with now.
func (s *Store) Export(now time.Time) Export {
	st := s.State()
	return Export{
		Projects:     st.Projects,
		BlogPosts:    st.BlogPosts,
		AboutContent: st.AboutContent,
		ContactInfo:  st.ContactInfo,
		ExportedAt:   now.UTC(),
	}
}

// Stats are the dashboard counts.
type Stats struct {
	Projects         int `json:"projects"`
	FeaturedProjects int `json:"featuredProjects"`
	BlogPosts        int `json:"blogPosts"`
	PublishedPosts   int `json:"publishedPosts"`
	FeaturedPosts    int `json:"featuredPosts"`
	Drafts           int `json:"drafts"`
}

func (s *Store) Stats() Stats {
	st := s.State()
	out := Stats{Projects: len(st.Projects), BlogPosts: len(st.BlogPosts)}
	for _, p := range st.Projects {
		if domain.ProjectIsFeatured(p) {
			out.FeaturedProjects++
		}
	}
	for _, p := range st.BlogPosts {
		switch {
		case domain.PostIsFeatured(p):
			out.FeaturedPosts++
			out.PublishedPosts++
		case domain.PostIsPublished(p):
			out.PublishedPosts++
		default:
			out.Drafts++
		}
	}
	return out
}

// WriteProjectsCSV writes one row per project, lists joined with ";".
func WriteProjectsCSV(w io.Writer, projects []domain.Project) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "title", "description", "technologies", "image", "demoUrl", "githubUrl", "featured", "order", "createdAt", "updatedAt"})
	for _, p := range projects {
		_ = cw.Write([]string{
			p.ID, p.Title, p.Description, strings.Join(p.Technologies, ";"), p.Image, p.DemoURL, p.GithubURL,
			strconv.FormatBool(p.Featured), strconv.Itoa(p.Order),
			p.CreatedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
	return cw.Error()
}

// WriteBlogPostsCSV writes one row per post without the markdown body.
func WriteBlogPostsCSV(w io.Writer, posts []domain.BlogPost) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "slug", "title", "excerpt", "date", "readTime", "tags", "featured", "published", "author", "createdAt", "updatedAt"})
	for _, p := range posts {
		_ = cw.Write([]string{
			p.ID, p.Slug, p.Title, p.Excerpt, p.Date.UTC().Format(time.RFC3339), p.ReadTime,
			strings.Join(p.Tags, ";"), strconv.FormatBool(p.Featured), strconv.FormatBool(p.Published), p.Author,
			p.CreatedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
	return cw.Error()
}
