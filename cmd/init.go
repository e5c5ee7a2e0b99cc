package cmd

import (
	"github.com/Hitargot/Qooa-Frontend/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the dashboard configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the control tower and generates a .qooa.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
