package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRoot executes the root command with a local-provider config file.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("model:\n  provider: local\ndefaults:\n  tone: formal\n  length: medium\n"), 0o644))

	summarizeNoStats = false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(summarizeCmd.Flags())
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSummarizeCommand_RawText(t *testing.T) {
	text := "The council approved the new park on Tuesday. Construction starts in May."
	out, err := runRoot(t, "summarize", text)
	require.NoError(t, err)

	assert.Contains(t, out, "Loading model...")
	assert.Contains(t, out, "Model loaded successfully!")
	assert.Contains(t, out, "Summary (Formal, Medium)")
	assert.Contains(t, out, "The council approved the new park on Tuesday.")
	assert.Contains(t, out, "REDUCTION")
}

func TestSummarizeCommand_FileWithOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "article.txt")
	require.NoError(t, os.WriteFile(input, []byte("Rain fell all day. The river rose by a metre. Roads were closed."), 0o644))
	output := filepath.Join(dir, "result")

	out, err := runRoot(t, "summarize", input, "--tone", "bullets", "--length", "brief", "-o", output, "--no-stats")
	require.NoError(t, err)

	assert.Contains(t, out, "• Rain fell all day.")
	assert.NotContains(t, out, "REDUCTION")

	saved, err := os.ReadFile(output + ".txt")
	require.NoError(t, err)
	assert.Contains(t, string(saved), "• Rain fell all day.")
}

func TestSummarizeCommand_InvalidTone(t *testing.T) {
	_, err := runRoot(t, "summarize", "some text", "--tone", "sarcastic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tone")
}

func TestPresetsCommand(t *testing.T) {
	out, err := runRoot(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "Bullet Points")
	assert.Contains(t, out, "Detailed")
	assert.Contains(t, out, "250")
}

func TestDoctorCommand(t *testing.T) {
	out, err := runRoot(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration OK.")
	assert.Contains(t, out, "Model local/lead-extractive ready in")
}

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}
