// Package cli implements the mathplan command line tool.
package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yigit/mathplan/internal/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mathplan",
	Short: "First-year math course planner",
	Long: `mathplan computes the critical, recommended and typical first-year math
sequences for a student from their majors and prior work, and issues
advisor tokens for the planning API.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is configs/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log planner decisions to stderr")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func setDefaults() {
	viper.SetDefault("jwt.issuer", "mathplan")
	viper.SetDefault("jwt.access_token_expiration", "8h")
	viper.SetDefault("planning.max_majors", 4)
}

func initConfig() {
	setDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(filepath.Join(".", "configs"))
		viper.AddConfigPath(".")
	}

	// jwt.secret is read from JWT_SECRET, the same variable the API server uses
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()

	// Logs go to stderr so --json output stays machine-readable
	level := logger.WarnLevel
	if viper.GetBool("verbose") {
		level = logger.DebugLevel
	}
	logger.Configure(logger.Config{Level: level, Pretty: true, Output: os.Stderr})
}
