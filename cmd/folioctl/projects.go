package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// projectFlags are the settable fields shared by create and update.
type projectFlags struct {
	title        string
	description  string
	technologies []string
	image        string
	demoURL      string
	githubURL    string
	featured     bool
	order        int
}

func (f *projectFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "project title")
	fs.StringVar(&f.description, "description", "", "short description")
	fs.StringSliceVar(&f.technologies, "tech", nil, "technologies, comma separated")
	fs.StringVar(&f.image, "image", "", "image URL")
	fs.StringVar(&f.demoURL, "demo-url", "", "live demo URL")
	fs.StringVar(&f.githubURL, "github-url", "", "source repository URL")
	fs.BoolVar(&f.featured, "featured", false, "show on the home page")
	fs.IntVar(&f.order, "order", 0, "listing position, lowest first")
}

// patch holds only the flags the user actually set.
func (f *projectFlags) patch(fs *pflag.FlagSet) domain.ProjectPatch {
	var p domain.ProjectPatch
	if fs.Changed("title") {
		p.Title = &f.title
	}
	if fs.Changed("description") {
		p.Description = &f.description
	}
	if fs.Changed("tech") {
		p.Technologies = &f.technologies
	}
	if fs.Changed("image") {
		p.Image = &f.image
	}
	if fs.Changed("demo-url") {
		p.DemoURL = &f.demoURL
	}
	if fs.Changed("github-url") {
		p.GithubURL = &f.githubURL
	}
	if fs.Changed("featured") {
		p.Featured = &f.featured
	}
	if fs.Changed("order") {
		p.Order = &f.order
	}
	return p
}

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "List and edit portfolio projects",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, src := a.projects.GetAll(cmd.Context())
			a.notice(cmd, src)
			return a.printProjects(projects)
		},
	}

	featured := &cobra.Command{
		Use:   "featured",
		Short: "List featured projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, src := a.projects.GetFeatured(cmd.Context())
			a.notice(cmd, src)
			return a.printProjects(projects)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, src := a.projects.GetByID(cmd.Context(), args[0])
			a.notice(cmd, src)
			if p == nil {
				return fmt.Errorf("project %s: %w", args[0], domain.ErrNotFound)
			}
			return a.printProject(*p)
		},
	}

	var createFlags projectFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if strings.TrimSpace(createFlags.title) == "" {
				return fmt.Errorf("%w: --title is required", domain.ErrValidation)
			}
			a.store.Load(cmd.Context())
			created, err := a.store.AddProject(cmd.Context(), domain.Project{
				ID:           uuid.NewString(),
				Title:        createFlags.title,
				Description:  createFlags.description,
				Technologies: createFlags.technologies,
				Image:        createFlags.image,
				DemoURL:      createFlags.demoURL,
				GithubURL:    createFlags.githubURL,
				Featured:     createFlags.featured,
				Order:        createFlags.order,
			})
			if err != nil {
				return err
			}
			return a.printProject(created)
		},
	}
	createFlags.register(create.Flags())

	var updateFlags projectFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			patch := updateFlags.patch(cmd.Flags())
			if patch.IsEmpty() {
				return domain.ErrEmptyUpdate
			}
			a.store.Load(cmd.Context())
			updated, err := a.store.UpdateProject(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return a.printProject(updated)
		},
	}
	updateFlags.register(update.Flags())

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			a.store.Load(cmd.Context())
			if err := a.store.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted project %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, featured, get, create, update, del)
	return cmd
}
