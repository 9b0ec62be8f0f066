// Package store is the client's single in-memory source of truth for loaded
// content. Every change is a named Action folded into State by the pure
// Reduce function; Store applies actions and then runs the side effects
// (mirroring content to the local cache, saving or clearing the session).
package store

import (
	"slices"
	"time"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// State is the full client state. Values handed out by Store share slices
// with its internal state; treat them as read-only.
type State struct {
	User            *domain.AdminUser
	IsAuthenticated bool
	Projects        []domain.Project
	BlogPosts       []domain.BlogPost
	AboutContent    domain.AboutContent
	ContactInfo     domain.ContactInfo
	Loading         bool
	// Error is the last user-facing error message, "" when there is none.
	Error string
}

// InitialState is the state before anything is loaded or restored.
func InitialState(now time.Time) State {
	return State{
		Projects:     []domain.Project{},
		BlogPosts:    []domain.BlogPost{},
		AboutContent: domain.DefaultAboutContent(now),
		ContactInfo:  domain.DefaultContactInfo(now),
	}
}

// Snapshot is the content part of s, as persisted to the cache.
func (s State) Snapshot() domain.ContentSnapshot {
	return domain.ContentSnapshot{
		Projects:     s.Projects,
		BlogPosts:    s.BlogPosts,
		AboutContent: s.AboutContent,
		ContactInfo:  s.ContactInfo,
	}
}

// Action is one named state transition.
type Action interface {
	action()
}

type (
	// SetUser signs a user in, or out when User is nil.
	SetUser struct{ User *domain.AdminUser }
	// UpdateUser merges the non-nil fields into the signed-in user. It is a
	// no-op when nobody is signed in.
	UpdateUser struct {
		Email     *string
		Name      *string
		Role      *domain.Role
		LastLogin *time.Time
	}

	SetProjects   struct{ Projects []domain.Project }
	AddProject    struct{ Project domain.Project }
	UpdateProject struct{ Project domain.Project }
	DeleteProject struct{ ID string }

	SetBlogPosts   struct{ BlogPosts []domain.BlogPost }
	AddBlogPost    struct{ BlogPost domain.BlogPost }
	UpdateBlogPost struct{ BlogPost domain.BlogPost }
	DeleteBlogPost struct{ ID string }

	// SetContent replaces both collections in one transition.
	SetContent struct {
		Projects  []domain.Project
		BlogPosts []domain.BlogPost
	}

	SetAboutContent struct{ AboutContent domain.AboutContent }
	SetContactInfo  struct{ ContactInfo domain.ContactInfo }

	SetLoading struct{ Loading bool }
	SetError   struct{ Message string }

	// Logout ends the session. Loaded content is kept.
	Logout struct{}
)

func (SetUser) action()         {}
func (UpdateUser) action()      {}
func (SetProjects) action()     {}
func (AddProject) action()      {}
func (UpdateProject) action()   {}
func (DeleteProject) action()   {}
func (SetBlogPosts) action()    {}
func (SetContent) action()      {}
func (AddBlogPost) action()     {}
func (UpdateBlogPost) action()  {}
func (DeleteBlogPost) action()  {}
func (SetAboutContent) action() {}
func (SetContactInfo) action()  {}
func (SetLoading) action()      {}
func (SetError) action()        {}
func (Logout) action()          {}

// Reduce returns the state that results from applying a to s. It never
// modifies s or any slice reachable from it.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetUser:
		s.User = cloneUser(a.User)
		s.IsAuthenticated = a.User != nil
	case UpdateUser:
		if s.User == nil {
			return s
		}
		u := *s.User
		if a.Email != nil {
			u.Email = *a.Email
		}
		if a.Name != nil {
			u.Name = *a.Name
		}
		if a.Role != nil {
			u.Role = *a.Role
		}
		if a.LastLogin != nil {
			u.LastLogin = *a.LastLogin
		}
		s.User = &u
	case SetProjects:
		s.Projects = cloneOrEmpty(a.Projects)
	case AddProject:
		s.Projects = append(slices.Clip(s.Projects), a.Project)
	case UpdateProject:
		s.Projects = replaceByID(s.Projects, a.Project, func(p domain.Project) string { return p.ID })
	case DeleteProject:
		s.Projects = domain.FilterProjects(s.Projects, func(p domain.Project) bool { return p.ID != a.ID })
	case SetBlogPosts:
		s.BlogPosts = cloneOrEmpty(a.BlogPosts)
	case SetContent:
		s.Projects = cloneOrEmpty(a.Projects)
		s.BlogPosts = cloneOrEmpty(a.BlogPosts)
	case AddBlogPost:
		s.BlogPosts = append(slices.Clip(s.BlogPosts), a.BlogPost)
	case UpdateBlogPost:
		s.BlogPosts = replaceByID(s.BlogPosts, a.BlogPost, func(p domain.BlogPost) string { return p.ID })
	case DeleteBlogPost:
		s.BlogPosts = domain.FilterBlogPosts(s.BlogPosts, func(p domain.BlogPost) bool { return p.ID != a.ID })
	case SetAboutContent:
		s.AboutContent = a.AboutContent
	case SetContactInfo:
		s.ContactInfo = a.ContactInfo
	case SetLoading:
		s.Loading = a.Loading
	case SetError:
		s.Error = a.Message
	case Logout:
		s.User = nil
		s.IsAuthenticated = false
	}
	return s
}

// touchesContent reports whether a changes the persisted content snapshot.
func touchesContent(a Action) bool {
	switch a.(type) {
	case SetProjects, AddProject, UpdateProject, DeleteProject,
		SetBlogPosts, AddBlogPost, UpdateBlogPost, DeleteBlogPost,
		SetContent, SetAboutContent, SetContactInfo:
		return true
	}
	return false
}

func touchesSession(a Action) bool {
	switch a.(type) {
	case SetUser, UpdateUser, Logout:
		return true
	}
	return false
}

func replaceByID[T any](items []T, item T, id func(T) string) []T {
	out := slices.Clone(items)
	for i := range out {
		if id(out[i]) == id(item) {
			out[i] = item
		}
	}
	return out
}

func cloneOrEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return slices.Clone(items)
}

func cloneUser(u *domain.AdminUser) *domain.AdminUser {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
