// Package cmd implements the digitpool command line interface.
package cmd

import (
	"strings"

	"github.com/jzx17/digitpool/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "digitpool",
	Short: "Concurrent digit-extraction computation of pi",
	Long: `Digitpool computes the first N digits of pi by dispatching one
independent digit-extraction task per position across a pool of workers,
then assembling the results in order.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./digitpool.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("digitpool")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/digitpool")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DIGITPOOL")
	// Replace dots with underscores for nested keys in env vars
	// e.g., DIGITPOOL_COMPUTE_WORKERS for compute.workers
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
