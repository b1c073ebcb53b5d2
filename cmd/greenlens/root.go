package main

import (
	"os"

	"github.com/greenlens/backend/internal/logger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "greenlens",
	Short: "Rate shopping pages by retailer sustainability.",
	Long: `greenlens classifies retailer URLs into green, yellow or red sustainability tiers,
detects single-product pages and previews the popup the browser extension shows.

Everything runs locally against the built-in retailer table and catalog.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries table and json output
		logger.SetOutput(cmd.ErrOrStderr())
		level, _ := cmd.Flags().GetString("loglevel")
		return logger.SetLevel(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("loglevel", "l", "warn", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table or json")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(popupCmd)
}
