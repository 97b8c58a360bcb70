// Package app implements the main application commands.
package app

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PirateLibrary/PirateLibrary/internal/config"
	"github.com/PirateLibrary/PirateLibrary/internal/logger"
)

const (
	envPrefix = "PIRATELIBRARY"

	keyConfig  = "config"
	keyEnvFile = "env-file"
)

var (
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "piratelibrary",
		Short: "PirateLibrary is an offline file sharing access point",
		Long: `PirateLibrary turns a small Linux board into a Wi-Fi access point
that serves a shared directory: everyone on the network can browse,
download and upload files through a web page.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringP(keyConfig, "c", "./etc/", "Directory containing "+config.FileName)
	rootCmd.PersistentFlags().String(keyEnvFile, ".env", "Environment file loaded before the configuration")

	// every flag can also be set as PIRATELIBRARY_<FLAG>, e.g. PIRATELIBRARY_SKIP_AP=true
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	_ = viper.BindPFlags(rootCmd.PersistentFlags())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// readConfig loads the dotenv file, if any, and the configuration.
func readConfig() error {
	// a missing env file is fine, the environment may be set by systemd
	_ = godotenv.Load(viper.GetString(keyEnvFile))

	c, err := config.ReadConfig(viper.GetString(keyConfig))
	if err != nil {
		return err
	}

	cfg = c

	return nil
}

// readConfigWithLogger also initializes the global logger.
func readConfigWithLogger() error {
	if err := readConfig(); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}

// absConfigPath is handed to the autostart unit, which runs from another
// working directory.
func absConfigPath() string {
	configPath := viper.GetString(keyConfig)

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return configPath
	}

	return abs
}
