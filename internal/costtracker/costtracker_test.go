package costtracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precis/internal/models"
)

func TestMemoryCostTracker(t *testing.T) {
	ctx := context.Background()
	tracker := New()

	require.NoError(t, tracker.RecordUsage(ctx, &models.AIUsageLog{ProviderName: "openai", InputTokens: 100, OutputTokens: 20, Cost: 0.5}))
	require.NoError(t, tracker.RecordUsage(ctx, &models.AIUsageLog{ProviderName: "openai", InputTokens: 50, OutputTokens: 10, Cost: 0.25}))

	logs, err := tracker.ListUsage(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(1), logs[0].ID)
	assert.Equal(t, int64(2), logs[1].ID)

	totals, err := tracker.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Calls)
	assert.Equal(t, 150, totals.InputTokens)
	assert.Equal(t, 30, totals.OutputTokens)
	assert.InDelta(t, 0.75, totals.Cost, 1e-9)
}

func TestMemoryCostTracker_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	tracker := New()
	require.NoError(t, tracker.RecordUsage(ctx, &models.AIUsageLog{ModelName: "a"}))

	logs, err := tracker.ListUsage(ctx)
	require.NoError(t, err)
	logs[0].ModelName = "changed"

	again, err := tracker.ListUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].ModelName)
}
