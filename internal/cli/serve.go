package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/votecloud/votecloud/pkg/buildinfo"
	"github.com/votecloud/votecloud/pkg/config"
	"github.com/votecloud/votecloud/pkg/server"
)

// serveOpts holds flags that override the config file.
type serveOpts struct {
	addr      string
	dataDir   string
	noCache   bool
	seed      uint64
	seedIsSet bool
}

// serveCommand creates the serve command that runs the voting API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the voting API and the live leaderboard",
		Long: `Serve the voting API over HTTP.

The leaderboard image is regenerated after every import, vote and reset and
served at /leaderboard.png. Storage and caching backends come from the config
file; flags override it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedIsSet = cmd.Flags().Changed("seed")
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "listen address (default from config, :8000)")
	cmd.Flags().StringVarP(&opts.dataDir, "data", "d", "", "data directory for the file store")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render on every leaderboard request")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "fixed random seed for every render (0 = random)")
	cmd.MarkFlagDirname("data")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.dataDir != "" {
		cfg.Store.Dir = opts.dataDir
	}
	if opts.noCache {
		cfg.Cache.Backend = config.CacheNone
	}
	if opts.seedIsSet {
		cfg.Render.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	registerLogHooks(c.Logger)

	if _, err := runner.Regenerate(ctx); err != nil {
		return err
	}

	ui := c.ui()
	ui.success("Serving votecloud")
	ui.keyValue("Version", buildinfo.Short())
	ui.keyValue("Address", cfg.Server.Addr)
	ui.keyValue("Store", cfg.Store.Backend)
	ui.keyValue("Cache", cfg.Cache.Backend)
	ui.nextStep("Watch the standings", appName+" leaderboard --url "+localURL(cfg.Server.Addr))

	err = server.New(runner, c.Logger).ListenAndServe(ctx, cfg.Server.Addr)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// localURL turns a listen address into a URL a local client can reach.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
