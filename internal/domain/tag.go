package domain

import (
	"slices"
	"strings"
)

// TagCount is one entry of the unique-tag listing over published posts.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CountTags tallies the tags of published posts, sorted by tag.
// A tag repeated within one post counts once for that post.
func CountTags(posts []BlogPost) []TagCount {
	counts := map[string]int{}
	for _, p := range posts {
		if !p.Published {
			continue
		}
		seen := map[string]bool{}
		for _, t := range p.Tags {
			if seen[t] {
				continue
			}
			seen[t] = true
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TagCount{Tag: t, Count: n})
	}
	slices.SortFunc(out, func(a, b TagCount) int { return strings.Compare(a.Tag, b.Tag) })
	return out
}

// MatchesSearch reports whether term appears, case-insensitively, in the
// post's title, excerpt, or any of its tags. An empty term matches everything.
func MatchesSearch(p BlogPost, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Excerpt), term) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}
