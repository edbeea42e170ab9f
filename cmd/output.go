package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"precis/internal/costtracker"
	"precis/internal/models"
	"precis/internal/services"
)

// statusPrinter returns a ModelProvider observer that prints the loading phase.
func statusPrinter(w io.Writer) func(services.ModelStatus) {
	return func(s services.ModelStatus) {
		switch s {
		case services.ModelStatusLoading:
			fmt.Fprintln(w, color.YellowString("Loading model..."))
		case services.ModelStatusReady:
			fmt.Fprintln(w, color.GreenString("Model loaded successfully!"))
		case services.ModelStatusFailed:
			fmt.Fprintln(w, color.RedString("Model failed to load."))
		}
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", color.RedString("Error:"), err.Error())
}

func printSummary(w io.Writer, res *models.SummarizationResult, tone models.Tone, length models.Length) {
	fmt.Fprintf(w, "\n%s\n\n", color.CyanString("Summary (%s, %s)", tone.Label(), length.Label()))
	fmt.Fprintln(w, res.FormattedSummary)
	fmt.Fprintln(w)
}

func printStatsTable(w io.Writer, res *models.SummarizationResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Original Length", "Summary Length", "Reduction"})
	table.SetBorder(true)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{
		strconv.Itoa(res.OriginalLength) + " chars",
		strconv.Itoa(res.FormattedLength) + " chars",
		strconv.Itoa(res.ReductionPercent) + "%",
	})
	table.Render()
}

func printPresetsTable(w io.Writer, defaultTone, defaultLength string) {
	toneTable := tablewriter.NewWriter(w)
	toneTable.SetHeader([]string{"Tone", "Name", "Default"})
	toneTable.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	toneTable.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, t := range models.Tones {
		toneTable.Append([]string{t.Label(), t.String(), defaultMark(t.String() == defaultTone)})
	}
	toneTable.Render()

	lengthTable := tablewriter.NewWriter(w)
	lengthTable.SetHeader([]string{"Length", "Name", "Min Tokens", "Max Tokens", "Default"})
	lengthTable.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	lengthTable.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, l := range models.Lengths {
		p := services.ResolveLength(l)
		lengthTable.Append([]string{l.Label(), l.String(), strconv.Itoa(p.MinTokens), strconv.Itoa(p.MaxTokens), defaultMark(l.String() == defaultLength)})
	}
	lengthTable.Render()
}

func defaultMark(b bool) string {
	if b {
		return "*"
	}
	return ""
}

func printUsageTable(w io.Writer, logs []models.AIUsageLog, totals costtracker.Totals) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No model usage recorded in this session.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Time", "Provider", "Model", "In Tokens", "Out Tokens", "Cost"})
	table.SetBorder(true)
	for _, l := range logs {
		table.Append([]string{
			strconv.FormatInt(l.ID, 10),
			l.Timestamp.Format("15:04:05"),
			l.ProviderName,
			l.ModelName,
			strconv.Itoa(l.InputTokens),
			strconv.Itoa(l.OutputTokens),
			fmt.Sprintf("$%.6f", l.Cost),
		})
	}
	table.SetFooter([]string{"", "", "", "Total", strconv.Itoa(totals.InputTokens), strconv.Itoa(totals.OutputTokens), fmt.Sprintf("$%.6f", totals.Cost)})
	table.Render()
}

// writeSummaryFile writes the formatted summary, creating or replacing path.
func writeSummaryFile(path, summary string) error {
	if err := os.WriteFile(path, []byte(summary+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write summary to %s: %w", path, err)
	}
	return nil
}
