package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/proofscout/proofscout/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "proofscout",
	Short: "Find unresolved proof obligations in Lean projects and file issues for them",
	Long: `Proofscout scans a Lean 4 repository for declarations left unproven
with sorry, enriches each one with imported definitions and an optional
AI-generated analysis, and files one GitHub issue per obligation,
skipping obligations that already have an open issue.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.ConfigFile()))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/proofscout")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PROOFSCOUT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., PROOFSCOUT_SCAN_MODEL for scan.model
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
