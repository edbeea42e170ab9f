package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and that the model loads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}
		cfg := appInstance.Config
		out := cmd.OutOrStdout()

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Setting", "Value"})
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.Append([]string{"model.provider", cfg.Model.Provider})
		table.Append([]string{"model.name", cfg.Model.Name})
		table.Append([]string{"model.timeout", cfg.Model.Timeout.String()})
		table.Append([]string{"defaults.tone", cfg.Defaults.Tone})
		table.Append([]string{"defaults.length", cfg.Defaults.Length})
		table.Append([]string{"log.level", cfg.Log.Level})
		table.Render()

		fmt.Fprintln(out, "Checking configuration...")
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(out, "%s %v\n", color.RedString("Configuration invalid:"), err)
			return err
		}
		fmt.Fprintln(out, color.GreenString("Configuration OK."))

		appInstance.Models.OnStatusChange(statusPrinter(out))
		start := time.Now()
		if _, err := appInstance.Models.GetModel(cmd.Context()); err != nil {
			printError(out, err)
			return err
		}
		fmt.Fprintf(out, "Model %s/%s ready in %s.\n", cfg.Model.Provider, cfg.Model.Name, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
