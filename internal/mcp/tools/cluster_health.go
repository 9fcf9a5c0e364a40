package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kubepulse/kubepulse/internal/config"
	"github.com/kubepulse/kubepulse/internal/health"
	"github.com/kubepulse/kubepulse/internal/snapshot"
)

// ClusterHealthTool implements the cluster_health_check MCP tool
type ClusterHealthTool struct {
	provider snapshot.Provider
	cfg      config.EvaluationConfig
}

// NewClusterHealthTool creates a new cluster health check tool
func NewClusterHealthTool(provider snapshot.Provider, cfg config.EvaluationConfig) *ClusterHealthTool {
	return &ClusterHealthTool{
		provider: provider,
		cfg:      cfg,
	}
}

// ClusterHealthInput represents the input for the cluster_health_check tool
type ClusterHealthInput struct {
	// IncludeRecommendations defaults to true when omitted.
	IncludeRecommendations *bool `json:"include_recommendations,omitempty"`
}

// Execute runs the cluster_health_check tool
func (t *ClusterHealthTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params ClusterHealthInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	snap, err := t.provider.FetchSnapshot(ctx, snapshot.NamespaceAll)
	if err != nil {
		return nil, fmt.Errorf("failed to capture cluster snapshot: %w", err)
	}

	verdict, err := health.Evaluate(snap, t.cfg, boolOrDefault(params.IncludeRecommendations, true))
	if err != nil {
		return nil, fmt.Errorf("health evaluation failed: %w", err)
	}

	return verdict, nil
}
