package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubepulse/kubepulse/internal/models"
)

func TestKarpenterTool_Installed(t *testing.T) {
	provider := &fakeProvider{snap: healthySnapshot()}
	tool := NewKarpenterTool(provider)

	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)

	status, ok := result.(*models.AutoscalerStatus)
	require.True(t, ok, "expected *models.AutoscalerStatus, got %T", result)
	assert.True(t, status.Installed)
	assert.Equal(t, 1, status.ResourceCount)
	assert.Empty(t, status.Misconfigured)
	assert.Equal(t, 1, status.CapacityTypeDistribution[models.CapacityTypeSpot])
	assert.Equal(t, 1, status.CapacityTypeDistribution[models.CapacityTypeOnDemand])
}

func TestKarpenterTool_NotInstalled(t *testing.T) {
	snap := healthySnapshot()
	snap.AutoscalerResources = nil
	provider := &fakeProvider{snap: snap}
	tool := NewKarpenterTool(provider)

	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)

	status := result.(*models.AutoscalerStatus)
	assert.False(t, status.Installed)
	assert.Zero(t, status.ResourceCount)
}
