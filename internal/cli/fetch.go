package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/driverjars/pkg/config"
	"github.com/matzehuels/driverjars/pkg/descriptor"
)

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	dir     string // installation directory override
	keep    string // pre-clean policy: ask, always, never
	noCache bool   // bypass the metadata cache
}

// fetchCommand creates the fetch command, which downloads and unpacks
// driver archives for one engine or for all of them.
func (c *CLI) fetchCommand() *cobra.Command {
	opts := fetchOpts{keep: keepAsk}

	cmd := &cobra.Command{
		Use:   "fetch <dbms>|all",
		Short: "Download and unpack JDBC driver archives",
		Long: `Download versioned JDBC driver archives from the hosting site and
unpack them into the installation directory.

The installation directory is taken from --dir, the
DATABASECONNECTOR_JAR_FOLDER environment variable, or the config file,
in that order.

Examples:
  driverjars fetch postgresql
  driverjars fetch all --dir /opt/jdbc
  driverjars fetch redshift --keep always`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load("")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			confirm, err := confirmPolicy(opts.keep)
			if err != nil {
				return err
			}

			mgr, err := c.newManager(cfg, confirm, opts.noCache)
			if err != nil {
				return err
			}

			target := resolveInstallDir(opts.dir, cfg)

			var spinner *Spinner
			if logger.GetLevel() > LogDebug {
				spinner = newSpinner(cmd.Context(), fmt.Sprintf("Downloading %s drivers...", args[0]))
				spinner.Start()
			}

			prog := newProgress(logger)
			out, err := mgr.Fetch(cmd.Context(), args[0], target)
			if err != nil {
				if spinner != nil {
					spinner.StopWithError("Download failed")
				}
				return err
			}
			if spinner != nil {
				spinner.Stop()
			}
			prog.done(fmt.Sprintf("Fetched drivers for %q", args[0]))

			printSuccess("Drivers installed")
			printDetail("Directory: %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "installation directory (overrides env and config)")
	cmd.Flags().StringVar(&opts.keep, "keep", opts.keep, "what to do with pre-existing redshift drivers: ask, always (delete), never (keep)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the archive metadata cache")

	cmd.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		keys := append(descriptor.Keys(), descriptor.SelectorAll)
		return keys, cobra.ShellCompDirectiveNoFileComp
	}

	return cmd
}
