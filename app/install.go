package app

import (
	"github.com/spf13/cobra"

	"github.com/PirateLibrary/PirateLibrary/internal/orchestrator"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register and enable the systemd unit",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return readConfigWithLogger()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		unit, err := orchestrator.UnitFromConfig(cfg.Service, cfg.Title, absConfigPath())
		if err != nil {
			return err
		}

		o := orchestrator.New(orchestrator.ExecRunner{Sudo: cfg.AccessPoint.UseSudo}, cfg.AccessPoint)

		return o.Install(cmd.Context(), unit)
	},
}
