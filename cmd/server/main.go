package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/leondli/npsboard/internal/infrastructure/config"
)

var (
	configPath string
	jsonOutput bool
)

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return config.DefaultPath
}

var rootCmd = &cobra.Command{
	Use:          "npsboard",
	Short:        "NPS dashboard service",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	// .env must be read before flag defaults look at the environment
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "config file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(npsCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
