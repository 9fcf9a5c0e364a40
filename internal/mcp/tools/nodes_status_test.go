package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodesStatusTool_IncludesMetricsByDefault(t *testing.T) {
	provider := &fakeProvider{snap: healthySnapshot()}
	tool := NewNodesStatusTool(provider)

	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)

	output, ok := result.(*NodesStatusOutput)
	require.True(t, ok, "expected *NodesStatusOutput, got %T", result)
	assert.Equal(t, 2, output.NodeCount)
	assert.True(t, output.MetricsAvailable)
	require.Len(t, output.Nodes, 2)
	require.NotNil(t, output.Nodes[0].CPUUtilizationPct)
	assert.Equal(t, 42.0, *output.Nodes[0].CPUUtilizationPct)
	assert.Equal(t, "m5.large", output.Nodes[0].InstanceType)
}

func TestNodesStatusTool_MetricsOptOut(t *testing.T) {
	provider := &fakeProvider{snap: healthySnapshot()}
	tool := NewNodesStatusTool(provider)

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"include_metrics": false}`))
	require.NoError(t, err)

	output := result.(*NodesStatusOutput)
	assert.False(t, output.MetricsAvailable)
	for _, node := range output.Nodes {
		assert.Nil(t, node.CPUUtilizationPct)
		assert.Nil(t, node.MemoryUtilizationPct)
	}
}

func TestNodesStatusTool_NoMetricsServer(t *testing.T) {
	snap := healthySnapshot()
	snap.MetricsAvailable = false
	for i := range snap.Nodes {
		snap.Nodes[i].CPUUtilizationPct = -1
		snap.Nodes[i].MemoryUtilizationPct = -1
	}
	provider := &fakeProvider{snap: snap}
	tool := NewNodesStatusTool(provider)

	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)

	output := result.(*NodesStatusOutput)
	assert.False(t, output.MetricsAvailable)
	for _, node := range output.Nodes {
		assert.Nil(t, node.CPUUtilizationPct)
	}
}
