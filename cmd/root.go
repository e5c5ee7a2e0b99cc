package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "qooa",
	Short: "Logistics control tower for cold-chain produce shipments",
	Long: `QOOA Control Tower tracks produce shipments from farm hubs to city
markets: live truck telemetry, crate quality status, vendor alerts and
order intake, served as a single dashboard.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".qooa.yml", "config file path")
}
