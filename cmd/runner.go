package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/sablewood/rymx/internal/repositories"
	"github.com/sablewood/rymx/internal/services"
	"github.com/sablewood/rymx/internal/shared"
	"github.com/sablewood/rymx/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	catalog services.Catalog
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Catalog services.Catalog
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		catalog: opts.Catalog,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, pagesCommand, buildCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// newEngine builds a resolution engine from the runner's config.
//
// When caching is enabled the returned cleanup closes the backing database;
// cache setup failures degrade to an uncached engine with a warning.
func (r *Runner) newEngine() (*tasks.BuildEngine, func(), error) {
	if r.catalog == nil {
		return nil, nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	opts := tasks.BuildOpts{
		Threshold:   r.config.Matcher.Threshold,
		SearchLimit: r.config.Matcher.SearchLimit,
		Pacer:       tasks.NewPacer(r.config.Pacing),
	}

	cleanup := func() {}

	if r.config.Cache.Enabled {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			r.logger.Warn("cache disabled, failed to open database", "error", err)
		} else if err := shared.RunMigrations(db); err != nil {
			r.logger.Warn("cache disabled, failed to run migrations", "error", err)
			db.Close()
		} else {
			opts.Cache = repositories.NewResolutionCacheAdapter(repositories.NewResolutionRepository(db))
			cleanup = func() { db.Close() }
		}
	}

	return tasks.NewBuildEngine(r.catalog, opts), cleanup, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
