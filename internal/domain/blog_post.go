package domain

import "time"

// BlogPost is a markdown article. A post is publicly visible only when
// Published is true; Featured promotes it among published posts.
// Listing order is Date descending, then CreatedAt descending.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Date      time.Time `json:"date"`
	ReadTime  string    `json:"readTime"`
	Tags      []string  `json:"tags"`
	Featured  bool      `json:"featured"`
	Published bool      `json:"published"`
	Author    string    `json:"author"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogPostPatch is a partial update for a BlogPost. Nil fields are left
// untouched.
type BlogPostPatch struct {
	Title     *string    `json:"title,omitempty"`
	Excerpt   *string    `json:"excerpt,omitempty"`
	Content   *string    `json:"content,omitempty"`
	Image     *string    `json:"image,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	ReadTime  *string    `json:"readTime,omitempty"`
	Tags      *[]string  `json:"tags,omitempty"`
	Featured  *bool      `json:"featured,omitempty"`
	Published *bool      `json:"published,omitempty"`
	Author    *string    `json:"author,omitempty"`
	Slug      *string    `json:"slug,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// IsEmpty reports whether the patch carries no content fields.
func (p BlogPostPatch) IsEmpty() bool {
	return p.Title == nil && p.Excerpt == nil && p.Content == nil &&
		p.Image == nil && p.Date == nil && p.ReadTime == nil &&
		p.Tags == nil && p.Featured == nil && p.Published == nil &&
		p.Author == nil && p.Slug == nil
}

// Apply returns a copy of post with every non-nil patch field written over it.
func (p BlogPostPatch) Apply(post BlogPost) BlogPost {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Excerpt != nil {
		post.Excerpt = *p.Excerpt
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Image != nil {
		post.Image = *p.Image
	}
	if p.Date != nil {
		post.Date = *p.Date
	}
	if p.ReadTime != nil {
		post.ReadTime = *p.ReadTime
	}
	if p.Tags != nil {
		post.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Featured != nil {
		post.Featured = *p.Featured
	}
	if p.Published != nil {
		post.Published = *p.Published
	}
	if p.Author != nil {
		post.Author = *p.Author
	}
	if p.Slug != nil {
		post.Slug = *p.Slug
	}
	if p.UpdatedAt != nil {
		post.UpdatedAt = *p.UpdatedAt
	}
	return post
}
