package cli

import (
	"github.com/spf13/cobra"

	"github.com/votecloud/votecloud/pkg/cache"
	"github.com/votecloud/votecloud/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached leaderboard artifacts",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. A running server
// regenerates on its next leaderboard request.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached leaderboard image and ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ui := c.ui()
			if cfg.Cache.Backend == config.CacheNone {
				ui.info("Caching is disabled")
				return nil
			}

			ch, err := newCache(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer ch.Close()

			keys := []string{cache.KeyLeaderboardPNG, cache.KeyRanking}
			for _, key := range keys {
				if err := ch.Delete(cmd.Context(), key); err != nil {
					return err
				}
			}
			ui.success("Cleared %d cached artifacts", len(keys))
			ui.detail("Backend: %s", cfg.Cache.Backend)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached artifacts are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ui := c.ui()
			switch cfg.Cache.Backend {
			case config.CacheRedis:
				ui.keyValue("Redis", cfg.Cache.RedisAddr)
				ui.keyValue("Prefix", cfg.Cache.Prefix)
			case config.CacheNone:
				ui.info("Caching is disabled")
			default:
				ui.keyValue("Directory", cfg.Cache.Dir)
			}
			return nil
		},
	}
}
