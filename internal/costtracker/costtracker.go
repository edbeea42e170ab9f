package costtracker

import (
	"context"
	"sync"

	"precis/internal/models"
)

// CostTracker records model usage for the running process. Nothing is persisted.
type CostTracker interface {
	RecordUsage(ctx context.Context, entry *models.AIUsageLog) error
	ListUsage(ctx context.Context) ([]models.AIUsageLog, error)
	Summary(ctx context.Context) (Totals, error)
}

// Totals aggregates every recorded call.
type Totals struct {
	Calls        int
	InputTokens  int
	OutputTokens int
	Cost         float64
}

// New returns an in-memory tracker.
func New() CostTracker {
	return &memoryCostTracker{}
}

type memoryCostTracker struct {
	mu     sync.Mutex
	nextID int64
	logs   []models.AIUsageLog
}

func (m *memoryCostTracker) RecordUsage(ctx context.Context, entry *models.AIUsageLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	entry.ID = m.nextID
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *memoryCostTracker) ListUsage(ctx context.Context) ([]models.AIUsageLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.AIUsageLog, len(m.logs))
	copy(out, m.logs)
	return out, nil
}

func (m *memoryCostTracker) Summary(ctx context.Context) (Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var t Totals
	for _, l := range m.logs {
		t.Calls++
		t.InputTokens += l.InputTokens
		t.OutputTokens += l.OutputTokens
		t.Cost += l.Cost
	}
	return t, nil
}
