package app

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PirateLibrary/PirateLibrary/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().Bool(keyDev, false, "Enable dev mode")
	startCmd.Flags().Bool(keySkipAP, false, "Serve files without configuring the access point")
	startCmd.Flags().Bool(keyFastShutdown, false, "Stop without waiting ShutDownTime")

	_ = viper.BindPFlags(startCmd.Flags())

	rootCmd.AddCommand(startCmd)
}

const (
	keyDev          = "dev"
	keySkipAP       = "skip-ap"
	keyFastShutdown = "fast-shutdown"
)

var (
	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the file server and the access point",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfigWithLogger(); err != nil {
				return err
			}

			if viper.GetBool(keyDev) {
				cfg.DevMode = true
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			d, err := daemon.New(ctx, &cfg, daemon.Options{
				ConfigDir:    absConfigPath(),
				SkipAP:       viper.GetBool(keySkipAP),
				FastShutdown: viper.GetBool(keyFastShutdown) || cfg.DevMode,
			})
			if err != nil {
				return err
			}

			return d.Run(ctx)
		},
	}
)
