package domain

import (
	"cmp"
	"slices"
)

// CompareProjects orders projects by Order ascending, then CreatedAt
// descending. It matches the ORDER BY used by the projects repository.
func CompareProjects(a, b Project) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

// CompareBlogPosts orders posts by Date descending, then CreatedAt descending.
func CompareBlogPosts(a, b BlogPost) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

// SortProjects returns a listing-ordered copy of projects.
func SortProjects(projects []Project) []Project {
	out := slices.Clone(projects)
	slices.SortStableFunc(out, CompareProjects)
	return out
}

// SortBlogPosts returns a listing-ordered copy of posts.
func SortBlogPosts(posts []BlogPost) []BlogPost {
	out := slices.Clone(posts)
	slices.SortStableFunc(out, CompareBlogPosts)
	return out
}

// FilterProjects returns the projects for which keep reports true, preserving
// order. The result is never nil.
func FilterProjects(projects []Project, keep func(Project) bool) []Project {
	out := []Project{}
	for _, p := range projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilterBlogPosts returns the posts for which keep reports true, preserving
// order. The result is never nil.
func FilterBlogPosts(posts []BlogPost, keep func(BlogPost) bool) []BlogPost {
	out := []BlogPost{}
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// The predicates below are the in-memory counterparts of the repository
// WHERE clauses.

// ProjectIsFeatured matches WHERE featured = true.
func ProjectIsFeatured(p Project) bool { return p.Featured }

// PostIsPublished matches WHERE published = true.
func PostIsPublished(p BlogPost) bool { return p.Published }

// PostIsFeatured matches WHERE featured = true AND published = true.
func PostIsFeatured(p BlogPost) bool { return p.Featured && p.Published }

// PostHasTag returns a predicate matching published posts carrying tag
// exactly (case-sensitive).
func PostHasTag(tag string) func(BlogPost) bool {
	return func(p BlogPost) bool {
		return p.Published && slices.Contains(p.Tags, tag)
	}
}
