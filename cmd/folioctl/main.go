// Command folioctl is the admin client for the portfolio content API. Every
// invocation builds the content store over the API client, with the local
// SQLite cache standing in for the API when it is unreachable.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/cyberfolio/internal/cache"
	"github.com/pkordes/cyberfolio/internal/client"
	"github.com/pkordes/cyberfolio/internal/config"
	"github.com/pkordes/cyberfolio/internal/fallback"
	"github.com/pkordes/cyberfolio/internal/store"
)

// errNotSignedIn is returned by write commands run without a session.
var errNotSignedIn = errors.New("not signed in: run 'folioctl session login' first")

// options are the global flags.
type options struct {
	configPath string
	apiURL     string
	cachePath  string
	timeout    time.Duration
	logLevel   string
	json       bool
}

// app is what every subcommand runs against. It is built in
// PersistentPreRunE and closed by run.
type app struct {
	opts     options
	out      io.Writer
	log      *slog.Logger
	cache    *cache.Cache
	client   *client.Client
	projects *fallback.ProjectService
	posts    *fallback.BlogPostService
	store    *store.Store
	now      func() time.Time
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes one folioctl invocation and always releases the cache.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, a := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{out: stdout, now: time.Now}

	root := &cobra.Command{
		Use:   "folioctl",
		Short: "Manage portfolio projects, blog posts and page content",
		Long: `folioctl talks to the portfolio content API.

Reads fall back to the last content saved in the local cache when the API
is unreachable. Writes always go to the API and fail when it is down.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	f := root.PersistentFlags()
	f.StringVar(&a.opts.configPath, "config", "", "YAML config file (default $FOLIO_CONFIG)")
	f.StringVar(&a.opts.apiURL, "api", "", "API base URL, e.g. http://localhost:3001/api")
	f.StringVar(&a.opts.cachePath, "cache", "", "path of the local cache database")
	f.DurationVar(&a.opts.timeout, "timeout", 0, "per-request API timeout")
	f.StringVar(&a.opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&a.opts.json, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newSyncCmd(a),
		newStatusCmd(a),
		newProjectsCmd(a),
		newPostsCmd(a),
		newSessionCmd(a),
		newContentCmd(a),
		newExportCmd(a),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command, stderr io.Writer) error {
	cfg, err := config.LoadClient(a.opts.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api") {
		cfg.API.BaseURL = a.opts.apiURL
	}
	if flags.Changed("cache") {
		cfg.Cache.Path = a.opts.cachePath
	}
	if flags.Changed("timeout") {
		if a.opts.timeout <= 0 {
			return fmt.Errorf("%w: --timeout must be positive", config.ErrConfiguration)
		}
		cfg.API.Timeout = a.opts.timeout
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelWarn
	}
	a.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	a.cache, err = cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	a.client = client.New(cfg.API.BaseURL, cfg.API.Timeout)
	a.projects = fallback.NewProjectService(a.client.Projects(), a.cache, a.log)
	a.posts = fallback.NewBlogPostService(a.client.BlogPosts(), a.cache, a.log)
	a.store = store.New(cmd.Context(), a.projects, a.posts, a.cache, a.log)
	a.log.Debug("folioctl ready", "api", cfg.API.BaseURL, "cache", cfg.Cache.Path)
	return nil
}

func (a *app) close() error {
	if a.cache == nil {
		return nil
	}
	err := a.cache.Close()
	a.cache = nil
	return err
}

// requireSession guards write commands.
func (a *app) requireSession() error {
	if !a.store.State().IsAuthenticated {
		return errNotSignedIn
	}
	return nil
}

// notice reports a cache-served read on stderr so --json output stays clean.
func (a *app) notice(cmd *cobra.Command, src fallback.Source) {
	if src == fallback.SourceCache {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: API unavailable, showing cached content")
	}
}
