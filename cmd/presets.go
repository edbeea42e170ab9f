package cmd

import (
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available tones and length presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		printPresetsTable(cmd.OutOrStdout(), appInstance.Config.Defaults.Tone, appInstance.Config.Defaults.Length)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
