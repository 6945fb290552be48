// Package cli implements the votecloud command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/votecloud/votecloud/pkg/buildinfo"
	"github.com/votecloud/votecloud/pkg/cache"
	"github.com/votecloud/votecloud/pkg/config"
	"github.com/votecloud/votecloud/pkg/pipeline"
	"github.com/votecloud/votecloud/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "votecloud"

	// defaultConfigFile is read from the working directory when --config is
	// not given. A missing file means built-in defaults.
	defaultConfigFile = "votecloud.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
// Logs are written to the logger's writer; command results go to Out.
type CLI struct {
	Logger     *log.Logger
	Out        io.Writer
	configPath string
}

// New creates a new CLI instance logging to w. Results go to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Out: os.Stdout}
}

func (c *CLI) ui() printer {
	return printer{w: c.Out}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Votecloud runs an employee vote and draws the results as a word cloud",
		Long:         `Votecloud collects one vote per employee and renders the standings as a radial word cloud: the winner large in the centre, everyone else spiralling outward by score.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", defaultConfigFile, "config file (TOML)")
	root.MarkPersistentFlagFilename("config", "toml")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.leaderboardCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the --config file.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// newRunner opens the configured store and cache and wraps them in a
// pipeline runner. The caller must Close the runner.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, error) {
	s, err := newStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	ch, err := newCache(ctx, cfg.Cache)
	if err != nil {
		s.Close()
		return nil, err
	}
	r := pipeline.NewRunner(s, ch, c.Logger)
	r.Seed = cfg.Render.Seed
	return r, nil
}

func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.StoreMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	default:
		return store.NewFileStore(cfg.Dir)
	}
}

func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	var inner cache.Cache
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		inner = rc
	default:
		fc, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		inner = fc
	}
	return cache.NewScoped(inner, cfg.Prefix), nil
}
