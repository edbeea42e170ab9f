package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"precis/internal/app"
	"precis/internal/clix"
	"precis/internal/models"
	"precis/internal/services"
)

// endOfText terminates a text block in the interactive session.
const endOfText = "."

const defaultSaveFile = "summary.txt"

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "repl"},
	Short:   "Start an interactive summarization session",
	Long: `Loads the model once, then summarizes each block of text you enter.
Finish a block with a line containing only ".". Type :help for commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		params, err := clix.ParseSummaryParams(cmd.Flags(), appInstance.Config.Defaults.Tone, appInstance.Config.Defaults.Length)
		if err != nil {
			return err
		}

		s := newSession(appInstance, cmd.InOrStdin(), cmd.OutOrStdout(), params)
		return s.run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	clix.AddSummaryFlags(interactiveCmd.Flags())
}

// session is one interactive run. It is single-threaded: one request at a time.
type session struct {
	app    *app.App
	in     *bufio.Scanner
	out    io.Writer
	params clix.SummaryParams
	last   *models.SummarizationResult
}

func newSession(a *app.App, in io.Reader, out io.Writer, params clix.SummaryParams) *session {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &session{app: a, in: scanner, out: out, params: params}
}

func (s *session) run(ctx context.Context) error {
	fmt.Fprintln(s.out, color.New(color.Bold).Sprint("Precis interactive summarizer"))

	s.app.Models.OnStatusChange(statusPrinter(s.out))
	if _, err := s.app.Models.GetModel(ctx); err != nil {
		printError(s.out, err)
		return err
	}

	s.printSettings()
	fmt.Fprintf(s.out, "Enter text and finish with a line containing only %q. Type :help for commands.\n", endOfText)

	for {
		s.prompt()
		text, quit, eof := s.readBlock()
		if quit {
			fmt.Fprintln(s.out, "Bye.")
			return nil
		}
		if text != "" || !eof {
			s.summarize(ctx, text)
		}
		if eof {
			return nil
		}
	}
}

func (s *session) prompt() {
	fmt.Fprintf(s.out, "\n%s ", color.CyanString("[%s | %s] >", s.params.Tone.Label(), s.params.Length.Label()))
}

// readBlock collects lines until the terminator or EOF. A command typed on the first line
// runs immediately and reading continues. quit reports :quit, eof reports end of input.
func (s *session) readBlock() (text string, quit, eof bool) {
	var lines []string
	for {
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				printError(s.out, err)
			}
			return strings.Join(lines, "\n"), false, true
		}
		line := s.in.Text()

		if len(lines) == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			if s.command(strings.TrimSpace(line)) {
				return "", true, false
			}
			s.prompt()
			continue
		}
		if strings.TrimSpace(line) == endOfText {
			return strings.Join(lines, "\n"), false, false
		}
		lines = append(lines, line)
	}
}

func (s *session) summarize(ctx context.Context, text string) {
	fmt.Fprintf(s.out, "Characters: %d\n", utf8.RuneCountInString(text))

	req := models.NewSummarizationRequest(text, s.params.Tone, s.params.Length)
	res, err := s.app.SummaryService.Process(services.WithRequestID(ctx, uuid.New()), req)
	switch {
	case errors.Is(err, models.ErrEmptyInput):
		fmt.Fprintln(s.out, color.YellowString("Please enter some text to summarize."))
		return
	case err != nil:
		printError(s.out, err)
		return
	}

	s.last = res
	printSummary(s.out, res, s.params.Tone, s.params.Length)
	printStatsTable(s.out, res)
}

// command runs a ":" command and reports whether the session should end.
func (s *session) command(line string) bool {
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch name {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		s.printHelp()
	case ":tone", ":t":
		if arg == "" {
			s.printSettings()
			return false
		}
		tone, err := models.ParseTone(arg)
		if err != nil {
			printError(s.out, err)
			return false
		}
		s.params.Tone = tone
		fmt.Fprintf(s.out, "Tone set to %s.\n", tone.Label())
	case ":length", ":l":
		if arg == "" {
			s.printSettings()
			return false
		}
		length, err := models.ParseLength(arg)
		if err != nil {
			printError(s.out, err)
			return false
		}
		s.params.Length = length
		fmt.Fprintf(s.out, "Length set to %s.\n", length.Label())
	case ":save", ":s":
		s.save(arg)
	case ":usage", ":u":
		s.printUsage()
	default:
		fmt.Fprintf(s.out, "Unknown command %s. Type :help for commands.\n", fields[0])
	}
	return false
}

func (s *session) save(name string) {
	if s.last == nil {
		fmt.Fprintln(s.out, "Nothing to save yet.")
		return
	}
	if name == "" {
		name = defaultSaveFile
	}
	path := clix.EnsureTxtExt(name)
	if err := writeSummaryFile(path, s.last.FormattedSummary); err != nil {
		printError(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "%s %s\n", color.GreenString("Saved summary to"), path)
}

func (s *session) printUsage() {
	logs, err := s.app.CostTracker.ListUsage(context.Background())
	if err != nil {
		printError(s.out, err)
		return
	}
	totals, err := s.app.CostTracker.Summary(context.Background())
	if err != nil {
		printError(s.out, err)
		return
	}
	printUsageTable(s.out, logs, totals)
}

func (s *session) printSettings() {
	fmt.Fprintf(s.out, "Tone: %s (formal, casual, bullets)  Length: %s (brief, medium, detailed)\n",
		s.params.Tone.Label(), s.params.Length.Label())
}

func (s *session) printHelp() {
	fmt.Fprintf(s.out, `Commands:
  :tone <formal|casual|bullets>     set the tone
  :length <brief|medium|detailed>   set the length
  :save [file]                      save the last summary (.txt added, default %s)
  :usage                            show model usage for this session
  :help                             show this help
  :quit                             leave
End a text block with a line containing only %q.
`, defaultSaveFile, endOfText)
}
