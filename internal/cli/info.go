package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/driverjars/pkg/config"
	"github.com/matzehuels/driverjars/pkg/descriptor"
)

// infoCommand creates the info command, which shows hosted archive
// metadata for an engine's driver.
func (c *CLI) infoCommand() *cobra.Command {
	var refresh bool
	var noCache bool

	cmd := &cobra.Command{
		Use:   "info <dbms>",
		Short: "Show hosted archive metadata for an engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := descriptor.Resolve(args[0])
			if err != nil {
				return err
			}
			if !d.RequiresDriver() {
				printInfo("%s is embedded and has no hosted archive", d.Key)
				return nil
			}

			cfg, err := config.Load("")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			host, err := c.newHost(cfg, noCache)
			if err != nil {
				return err
			}

			info, err := host.ArchiveInfo(cmd.Context(), d.ArchiveName, refresh)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(d.Key))
			printKeyValue("Version", d.Version)
			printKeyValue("Driver class", d.DriverClass)
			printKeyValue("Archive", info.Name)
			printKeyValue("URL", info.URL)
			if info.Size >= 0 {
				printKeyValue("Size", fmt.Sprintf("%.1f MB", float64(info.Size)/(1024*1024)))
			}
			if !info.LastModified.IsZero() {
				printKeyValue("Published", info.LastModified.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the metadata cache for this lookup")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the metadata cache entirely")

	return cmd
}
