package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PirateLibrary/PirateLibrary/internal/apconfig"
	"github.com/PirateLibrary/PirateLibrary/internal/settings"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the hostapd and dnsmasq configuration for the stored settings",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return readConfig()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := settings.Open(cfg.Settings)
		if err != nil {
			return err
		}

		s, err := store.Load()
		if err != nil {
			return err
		}

		r := apconfig.Render(s, apconfig.FromConfig(cfg.AccessPoint))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n%s\n", cfg.AccessPoint.HostapdConf, r.AP)
		fmt.Fprintf(out, "# %s\n%s", cfg.AccessPoint.DnsmasqConf, r.DHCP)

		return nil
	},
}
