package services

import (
	"context"
	"sync/atomic"
)

// fakeModel returns a fixed summary and counts calls.
type fakeModel struct {
	summary string
	err     error

	calls         atomic.Int32
	lastText      string
	lastMin       int
	lastMax       int
	deterministic bool
}

func (m *fakeModel) Summarize(_ context.Context, text string, minTokens, maxTokens int, deterministic bool) (string, error) {
	m.calls.Add(1)
	m.lastText = text
	m.lastMin = minTokens
	m.lastMax = maxTokens
	m.deterministic = deterministic
	return m.summary, m.err
}

func (m *fakeModel) Name() string      { return "fake" }
func (m *fakeModel) ModelName() string { return "fake-model" }

// fixedRand always returns the same index.
type fixedRand struct{ n int }

func (r fixedRand) Intn(n int) int { return r.n % n }

func providerFor(m Model) *ModelProvider {
	return NewModelProvider(func(context.Context) (Model, error) { return m, nil })
}
