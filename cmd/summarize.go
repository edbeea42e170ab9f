package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"precis/internal/clix"
	"precis/internal/models"
	"precis/internal/services"
)

var summarizeNoStats bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize [input]",
	Short: "Summarize a file, URL, stdin (-) or text",
	Long: `Summarize text in one shot. The input is a path to a text or HTML file,
an http(s) URL, "-" to read standard input, or the text itself.

Examples:
  precis summarize article.txt --tone bullets --length brief
  precis summarize https://example.com/post -o post-summary
  cat notes.md | precis summarize - -t casual`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}

		params, err := clix.ParseSummaryParams(cmd.Flags(), appInstance.Config.Defaults.Tone, appInstance.Config.Defaults.Length)
		if err != nil {
			return err
		}
		outputPath := clix.OutputPath(cmd.Flags())

		input, err := appInstance.InputProcessor.Process(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		log.Debugf("Input from %s: %d bytes", input.Source, len(input.Body))

		out := cmd.OutOrStdout()
		appInstance.Models.OnStatusChange(statusPrinter(cmd.ErrOrStderr()))

		reqID := uuid.New()
		req := models.NewSummarizationRequest(input.Body, params.Tone, params.Length)
		res, err := appInstance.SummaryService.Process(services.WithRequestID(ctx, reqID), req)
		if err != nil {
			return err
		}

		printSummary(out, res, params.Tone, params.Length)
		if !summarizeNoStats {
			printStatsTable(out, res)
		}

		if outputPath != "" {
			if err := writeSummaryFile(outputPath, res.FormattedSummary); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.GreenString("Saved summary to"), outputPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	clix.AddSummaryFlags(summarizeCmd.Flags())
	summarizeCmd.Flags().StringP("output", "o", "", "Write the formatted summary to this file (.txt added if missing)")
	summarizeCmd.Flags().BoolVar(&summarizeNoStats, "no-stats", false, "Do not print the statistics table")
}
