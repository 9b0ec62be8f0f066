package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/cyberfolio/internal/domain"
	"github.com/pkordes/cyberfolio/internal/store"
)

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Load all content and refresh the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := a.store.Load(cmd.Context())
			st := a.store.State()
			if a.opts.json {
				return printJSON(a.out, map[string]any{
					"projects":        len(st.Projects),
					"blogPosts":       len(st.BlogPosts),
					"projectsSource":  res.Projects.String(),
					"blogPostsSource": res.BlogPosts.String(),
				})
			}
			fmt.Fprintf(a.out, "projects: %d (%s)\nblog posts: %d (%s)\n",
				len(st.Projects), res.Projects, len(st.BlogPosts), res.BlogPosts)
			if res.FromCache() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", st.Error)
			}
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show API reachability, session and content counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apiStatus := "not configured"
			if a.client.Configured() {
				if h, err := a.client.Health(cmd.Context()); err != nil {
					apiStatus = "unreachable: " + err.Error()
				} else {
					apiStatus = h.Status
				}
			}
			a.store.Load(cmd.Context())
			stats := a.store.Stats()
			st := a.store.State()

			if a.opts.json {
				return printJSON(a.out, map[string]any{
					"api":           apiStatus,
					"authenticated": st.IsAuthenticated,
					"stats":         stats,
				})
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			row(tw, "api:", apiStatus)
			session := "signed out"
			if st.User != nil {
				session = st.User.Email
			}
			row(tw, "session:", session)
			row(tw, "projects:", fmt.Sprintf("%d (%d featured)", stats.Projects, stats.FeaturedProjects))
			row(tw, "blog posts:", fmt.Sprintf("%d (%d published, %d featured, %d drafts)",
				stats.BlogPosts, stats.PublishedPosts, stats.FeaturedPosts, stats.Drafts))
			return tw.Flush()
		},
	}
}

func newContentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Show or replace the about and contact page content",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show about and contact content",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			st := a.store.State()
			if a.opts.json {
				return printJSON(a.out, map[string]any{
					"aboutContent": st.AboutContent,
					"contactInfo":  st.ContactInfo,
				})
			}
			return printPages(a.out, st.AboutContent, st.ContactInfo)
		},
	}

	var aboutFile string
	setAbout := &cobra.Command{
		Use:   "set-about",
		Short: "Replace the about content from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			var about domain.AboutContent
			if err := readJSONFile(aboutFile, &about); err != nil {
				return err
			}
			if strings.TrimSpace(about.Title) == "" {
				return fmt.Errorf("%w: about title is required", domain.ErrValidation)
			}
			a.store.Load(cmd.Context())
			a.store.SetAboutContent(cmd.Context(), about)
			fmt.Fprintln(a.out, "about content updated")
			return nil
		},
	}
	setAbout.Flags().StringVar(&aboutFile, "file", "", "JSON file with the about content")
	_ = setAbout.MarkFlagRequired("file")

	var contactFile string
	setContact := &cobra.Command{
		Use:   "set-contact",
		Short: "Replace the contact info from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			var info domain.ContactInfo
			if err := readJSONFile(contactFile, &info); err != nil {
				return err
			}
			if strings.TrimSpace(info.Email) == "" {
				return fmt.Errorf("%w: contact email is required", domain.ErrValidation)
			}
			a.store.Load(cmd.Context())
			a.store.SetContactInfo(cmd.Context(), info)
			fmt.Fprintln(a.out, "contact info updated")
			return nil
		},
	}
	setContact.Flags().StringVar(&contactFile, "file", "", "JSON file with the contact info")
	_ = setContact.MarkFlagRequired("file")

	cmd.AddCommand(show, setAbout, setContact)
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format, entity, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all content as JSON, or one collection as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			a.store.Load(cmd.Context())

			w := a.out
			if out != "" {
				f, ferr := os.Create(out)
				if ferr != nil {
					return fmt.Errorf("create export file: %w", ferr)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}

			switch format {
			case "json":
				return printJSON(w, a.store.Export(a.now()))
			case "csv":
				st := a.store.State()
				switch entity {
				case "projects":
					return store.WriteProjectsCSV(w, st.Projects)
				case "posts":
					return store.WriteBlogPostsCSV(w, st.BlogPosts)
				}
				return fmt.Errorf("%w: --entity must be projects or posts", domain.ErrValidation)
			}
			return fmt.Errorf("%w: --format must be json or csv", domain.ErrValidation)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or csv")
	cmd.Flags().StringVar(&entity, "entity", "projects", "collection to write as CSV: projects or posts")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func readJSONFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		var syntax *json.SyntaxError
		if errors.As(err, &syntax) {
			return fmt.Errorf("%w: %s is not valid JSON at offset %d", domain.ErrValidation, path, syntax.Offset)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrValidation, path, err)
	}
	return nil
}

func printPages(w io.Writer, about domain.AboutContent, contact domain.ContactInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "about:", about.Title)
	row(tw, "", about.Subtitle)
	row(tw, "stats:", fmt.Sprintf("%d projects, %d years, %d lines of code",
		about.Stats.Projects, about.Stats.Years, about.Stats.LinesOfCode))
	for _, s := range about.Skills {
		row(tw, s.Category+":", strings.Join(s.Technologies, ", "))
	}
	row(tw, "updated:", formatTime(about.UpdatedAt))
	row(tw, "", "")
	row(tw, "email:", contact.Email)
	row(tw, "phone:", contact.Phone)
	row(tw, "location:", contact.Location)
	row(tw, "discord:", contact.Discord)
	row(tw, "github:", contact.SocialLinks.Github)
	row(tw, "linkedin:", contact.SocialLinks.Linkedin)
	row(tw, "twitter:", contact.SocialLinks.Twitter)
	row(tw, "updated:", formatTime(contact.UpdatedAt))
	return tw.Flush()
}
