package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precis/internal/app"
	"precis/internal/clix"
	"precis/internal/config"
	"precis/internal/models"
	"precis/internal/services"
)

type scriptedModel struct {
	summary string
	err     error
	texts   []string
}

func (m *scriptedModel) Summarize(_ context.Context, text string, _, _ int, _ bool) (string, error) {
	m.texts = append(m.texts, text)
	return m.summary, m.err
}
func (m *scriptedModel) Name() string      { return "scripted" }
func (m *scriptedModel) ModelName() string { return "scripted-1" }

func newTestSession(t *testing.T, load services.LoaderFunc, input string) (*session, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Model.Provider = config.ProviderLocal
	cfg.Model.Name = "lead-extractive"

	a, err := app.NewApp(cfg, app.WithLoader(load), app.WithFormatter(services.NewToneFormatter(nil)))
	require.NoError(t, err)

	var out bytes.Buffer
	params := clix.SummaryParams{Tone: models.ToneFormal, Length: models.LengthMedium}
	return newSession(a, strings.NewReader(input), &out, params), &out
}

func modelLoader(m services.Model) services.LoaderFunc {
	return func(context.Context) (services.Model, error) { return m, nil }
}

func TestSession_SummarizesBlocks(t *testing.T) {
	model := &scriptedModel{summary: "Short version."}
	s, out := newTestSession(t, modelLoader(model), "First line\nsecond line\n.\n:quit\n")

	require.NoError(t, s.run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Loading model...")
	assert.Contains(t, output, "Model loaded successfully!")
	assert.Contains(t, output, "Characters: 22")
	assert.Contains(t, output, "Short version.")
	assert.Contains(t, output, "Bye.")
	assert.Equal(t, []string{"First line\nsecond line"}, model.texts)
}

func TestSession_EmptyInputReprompts(t *testing.T) {
	model := &scriptedModel{summary: "unused"}
	s, out := newTestSession(t, modelLoader(model), ".\n   \n.\n")

	require.NoError(t, s.run(context.Background()))

	assert.Equal(t, 2, strings.Count(out.String(), "Please enter some text to summarize."))
	assert.Empty(t, model.texts)
}

func TestSession_ModelErrorContinues(t *testing.T) {
	model := &scriptedModel{err: errors.New("input too long")}
	s, out := newTestSession(t, modelLoader(model), "one\n.\ntwo\n.\n")

	require.NoError(t, s.run(context.Background()))

	assert.Equal(t, 2, strings.Count(out.String(), "Error: input too long"))
	assert.Len(t, model.texts, 2)
}

func TestSession_LoadFailureEndsSession(t *testing.T) {
	s, out := newTestSession(t, func(context.Context) (services.Model, error) {
		return nil, errors.New("weights missing")
	}, "text\n.\n")

	err := s.run(context.Background())
	assert.ErrorIs(t, err, models.ErrModelLoad)
	assert.Contains(t, out.String(), "Error:")
	assert.NotContains(t, out.String(), "Model loaded successfully!")
}

func TestSession_Commands(t *testing.T) {
	model := &scriptedModel{summary: "Alpha. Beta."}
	input := ":tone bullets\n:length brief\nsome text\n.\n:usage\n:bogus\n:help\n:quit\n"
	s, out := newTestSession(t, modelLoader(model), input)

	require.NoError(t, s.run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Tone set to Bullet Points.")
	assert.Contains(t, output, "Length set to Brief.")
	assert.Contains(t, output, "• Alpha.\n• Beta.")
	assert.Contains(t, output, "No model usage recorded in this session.")
	assert.Contains(t, output, "Unknown command :bogus.")
	assert.Contains(t, output, "Commands:")
	assert.Equal(t, models.ToneBulletPoints, s.params.Tone)
	assert.Equal(t, models.LengthBrief, s.params.Length)
}

func TestSession_InvalidToneKeepsSetting(t *testing.T) {
	s, out := newTestSession(t, modelLoader(&scriptedModel{summary: "x"}), ":tone sarcastic\n:quit\n")

	require.NoError(t, s.run(context.Background()))
	assert.Contains(t, out.String(), "Error: unknown tone")
	assert.Equal(t, models.ToneFormal, s.params.Tone)
}

func TestSession_Save(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "notes")

	model := &scriptedModel{summary: "Saved text."}
	s, out := newTestSession(t, modelLoader(model), ":save "+target+"\nsome input\n.\n:save "+target+"\n")

	require.NoError(t, s.run(context.Background()))

	assert.Contains(t, out.String(), "Nothing to save yet.")
	data, err := os.ReadFile(target + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "Saved text.\n", string(data))
}

func TestSession_EOFSummarizesPendingText(t *testing.T) {
	model := &scriptedModel{summary: "Done."}
	s, _ := newTestSession(t, modelLoader(model), "unterminated text")

	require.NoError(t, s.run(context.Background()))
	assert.Equal(t, []string{"unterminated text"}, model.texts)
}
