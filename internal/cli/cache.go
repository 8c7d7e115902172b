package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mermaid-filter/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered diagram cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all rendered diagrams",
		Long: `Delete all rendered diagrams from the cache directory.

Documents that still reference them must be converted again. Entries in a
shared redis tier are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.fileStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			count, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo(out, "Cache is empty")
				printDetail(out, "Directory: %s", store.Dir())
				return nil
			}

			printSuccess(out, "Cleared %d cached diagrams", count)
			printDetail(out, "Directory: %s", store.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.fileStore()
			if err != nil {
				return err
			}
			printPath(cmd.OutOrStdout(), store.Dir())
			return nil
		},
	}
}

// fileStore opens the local cache directory from config and flags.
func (c *CLI) fileStore() (*cache.FileStore, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return cache.NewFileStore(cfg.Cache.Dir), nil
}
