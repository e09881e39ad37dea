package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/driverjars/pkg/artifact"
	"github.com/matzehuels/driverjars/pkg/config"
	"github.com/matzehuels/driverjars/pkg/descriptor"
)

// jarsCommand creates the jars command, which locates installed driver
// jars in the installation directory.
func (c *CLI) jarsCommand() *cobra.Command {
	var dir string
	var pattern string

	cmd := &cobra.Command{
		Use:   "jars <dbms>",
		Short: "Locate installed driver jars",
		Long: `Locate the installed jar files for a database engine.

By default the engine's own jar name pattern is used; --pattern
substitutes an arbitrary case-insensitive substring match instead.

Examples:
  driverjars jars postgresql
  driverjars jars snowflake --dir /opt/jdbc
  driverjars jars postgresql --pattern jdbc42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			target := resolveInstallDir(dir, cfg)

			var jars []string
			if pattern != "" {
				jars, err = artifact.LocateJar(pattern, target)
			} else {
				jars, err = artifact.JarsForEngine(args[0], target)
			}
			if err != nil {
				return err
			}

			if len(jars) == 0 {
				printInfo("%s is embedded and needs no driver jar", descriptor.Normalize(args[0]))
				return nil
			}

			printSuccess("Found %d jar file(s)", len(jars))
			for _, jar := range jars {
				printFile(jar)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "installation directory (overrides env and config)")
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "match file names against this substring instead of the engine default")

	return cmd
}
