package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubepulse/kubepulse/internal/config"
	"github.com/kubepulse/kubepulse/internal/models"
)

func TestHealthReportTool_DefaultMarkdown(t *testing.T) {
	provider := &fakeProvider{snap: healthySnapshot()}
	tool := NewHealthReportTool(provider, config.DefaultEvaluationConfig())

	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)

	rendered, ok := result.(string)
	require.True(t, ok, "expected string, got %T", result)
	assert.True(t, strings.HasPrefix(rendered, "# Cluster Health Report"))
	assert.Contains(t, rendered, "## Overall Status: Healthy")
	assert.Contains(t, rendered, "## Autoscaler")
	assert.Contains(t, rendered, "## GitOps")
}

func TestHealthReportTool_JSONFormat(t *testing.T) {
	provider := &fakeProvider{snap: healthySnapshot()}
	tool := NewHealthReportTool(provider, config.DefaultEvaluationConfig())

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"format": "json"}`))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.(string)), &doc))
	assert.Equal(t, "Healthy", doc["overall_status"])
	assert.Contains(t, doc, "recommendations")
}

func TestHealthReportTool_UnknownFormatRejectedBeforeFetch(t *testing.T) {
	provider := &fakeProvider{snap: healthySnapshot()}
	tool := NewHealthReportTool(provider, config.DefaultEvaluationConfig())

	_, err := tool.Execute(context.Background(), json.RawMessage(`{"format": "xml"}`))
	require.Error(t, err)
	assert.True(t, models.IsInvalidRequestError(err))
	assert.Zero(t, provider.calls, "snapshot must not be fetched for an unknown format")
}

func TestHealthReportTool_RecommendationsOptOut(t *testing.T) {
	provider := &fakeProvider{snap: healthySnapshot()}
	tool := NewHealthReportTool(provider, config.DefaultEvaluationConfig())

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"format": "json", "include_recommendations": false}`))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.(string)), &doc))
	assert.NotContains(t, doc, "recommendations")
}

func TestHealthReportTool_EvaluationErrorPropagates(t *testing.T) {
	snap := healthySnapshot()
	snap.Pods[0].RestartCount = -1
	provider := &fakeProvider{snap: snap}
	tool := NewHealthReportTool(provider, config.DefaultEvaluationConfig())

	_, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Contains(t, err.Error(), "health evaluation failed")
}

func TestHealthReportTool_SingleSnapshotPerReport(t *testing.T) {
	provider := &fakeProvider{snap: healthySnapshot()}
	tool := NewHealthReportTool(provider, config.DefaultEvaluationConfig())

	_, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls, "all report sections must come from one snapshot")
}
