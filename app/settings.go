package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PirateLibrary/PirateLibrary/internal/settings"
)

func init() { //nolint: gochecknoinits
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var (
	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Manage the stored network settings",
	}

	settingsResetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Drop the stored network settings, the default network is used after the next start",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return readConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := settings.Open(cfg.Settings)
			if err != nil {
				return err
			}

			if err = store.Reset(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "settings reset, %q is used after the next start\n", settings.DefaultNetworkName)

			return nil
		},
	}
)
