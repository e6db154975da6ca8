// Package cli implements the bloodline command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bloodline-tools/bloodline/pkg/buildinfo"
	"github.com/bloodline-tools/bloodline/pkg/cache"
	"github.com/bloodline-tools/bloodline/pkg/pipeline"
	"github.com/bloodline-tools/bloodline/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "bloodline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Record source flags, shared by every command.
	csvPath   string
	tomlPath  string
	mongoURI  string
	mongoDB   string
	mongoColl string

	// Shared analysis flags.
	generations int
	noCache     bool
	redisAddr   string
	refresh     bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Bloodline renders and analyzes pedigrees",
		Long:         `Bloodline is a CLI tool for pedigree analysis: it expands ancestry trees from herd records, detects inbreeding, and renders tables, wheels, and graphs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.csvPath, "csv", "bloodline.csv", "path to the CSV record file")
	root.PersistentFlags().StringVar(&c.tomlPath, "toml", "", "path to a TOML herd file (overrides --csv)")
	root.PersistentFlags().StringVar(&c.mongoURI, "mongo", "", "MongoDB connection URI (overrides file sources)")
	root.PersistentFlags().StringVar(&c.mongoDB, "mongo-db", "bloodline", "MongoDB database name")
	root.PersistentFlags().StringVar(&c.mongoColl, "mongo-coll", "individuals", "MongoDB collection name")
	root.PersistentFlags().IntVarP(&c.generations, "gen", "g", 0, "generations including the subject (0 = default 5, clamped to recorded depth)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")
	root.PersistentFlags().StringVar(&c.redisAddr, "redis", "", "Redis address (host:port) for a shared artifact cache")
	root.PersistentFlags().BoolVar(&c.refresh, "refresh", false, "re-render even when a cached artifact exists")

	// Register all subcommands
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.wheelCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadRecords reads the record source selected by the global flags.
// Precedence: --mongo, then --toml, then --csv.
func (c *CLI) loadRecords(ctx context.Context) (store.Result, error) {
	switch {
	case c.mongoURI != "":
		c.Logger.Debug("loading records", "source", "mongodb", "db", c.mongoDB, "coll", c.mongoColl)
		return store.LoadMongo(ctx, c.mongoURI, c.mongoDB, c.mongoColl)
	case c.tomlPath != "":
		c.Logger.Debug("loading records", "source", c.tomlPath)
		return store.LoadTOML(c.tomlPath)
	default:
		c.Logger.Debug("loading records", "source", c.csvPath)
		return store.Load(c.csvPath)
	}
}

// newRunner loads the records and creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	records, err := c.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	artifactCache, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(records.Store, records.Fingerprint, artifactCache, c.Logger), nil
}

// newCache picks the artifact cache backend: Redis when --redis is set,
// otherwise the XDG file cache, with --no-cache trumping both.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		return cache.NewRedisCache(ctx, c.redisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/bloodline/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// writeArtifact writes rendered bytes to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// outputPath derives the output file from the flag, subject, and format.
func outputPath(flag, subject, format string) string {
	if flag != "" {
		return flag
	}
	return subject + "." + format
}

// artifactPaths resolves the output file for each requested format. An
// explicit output path only makes sense for a single format; with several
// formats every artifact gets the default <subject>.<format> name and the
// second return value reports that the explicit path was dropped.
func artifactPaths(flag, subject string, formats []string) ([]string, bool) {
	dropped := flag != "" && len(formats) > 1
	paths := make([]string, len(formats))
	for i, format := range formats {
		if dropped {
			paths[i] = outputPath("", subject, format)
		} else {
			paths[i] = outputPath(flag, subject, format)
		}
	}
	return paths, dropped
}
