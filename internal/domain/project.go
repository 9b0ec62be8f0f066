// Package domain contains the core data types for the portfolio content API
// and its client. This package has no infrastructure dependencies and is
// imported by every other internal package.
package domain

import "time"

// Project is a portfolio showcase entry.
// Listing order is Order ascending, then CreatedAt descending.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Image        string    `json:"image"`
	DemoURL      string    `json:"demoUrl"`
	GithubURL    string    `json:"githubUrl"`
	Featured     bool      `json:"featured"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProjectPatch is a partial update for a Project. A nil field is left
// untouched; a non-nil field is written as-is. ID and CreatedAt are immutable
// and therefore absent.
type ProjectPatch struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Technologies *[]string  `json:"technologies,omitempty"`
	Image        *string    `json:"image,omitempty"`
	DemoURL      *string    `json:"demoUrl,omitempty"`
	GithubURL    *string    `json:"githubUrl,omitempty"`
	Featured     *bool      `json:"featured,omitempty"`
	Order        *int       `json:"order,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// IsEmpty reports whether the patch carries no content fields.
// UpdatedAt alone does not count: it is bookkeeping, not an edit.
func (p ProjectPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Technologies == nil &&
		p.Image == nil && p.DemoURL == nil && p.GithubURL == nil &&
		p.Featured == nil && p.Order == nil
}

// Apply returns a copy of proj with every non-nil patch field written over it.
func (p ProjectPatch) Apply(proj Project) Project {
	if p.Title != nil {
		proj.Title = *p.Title
	}
	if p.Description != nil {
		proj.Description = *p.Description
	}
	if p.Technologies != nil {
		proj.Technologies = append([]string(nil), (*p.Technologies)...)
	}
	if p.Image != nil {
		proj.Image = *p.Image
	}
	if p.DemoURL != nil {
		proj.DemoURL = *p.DemoURL
	}
	if p.GithubURL != nil {
		proj.GithubURL = *p.GithubURL
	}
	if p.Featured != nil {
		proj.Featured = *p.Featured
	}
	if p.Order != nil {
		proj.Order = *p.Order
	}
	if p.UpdatedAt != nil {
		proj.UpdatedAt = *p.UpdatedAt
	}
	return proj
}
