package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kubepulse/kubepulse/internal/autoscaler"
	"github.com/kubepulse/kubepulse/internal/snapshot"
)

// KarpenterTool implements the analyze_karpenter MCP tool
type KarpenterTool struct {
	provider snapshot.Provider
}

// NewKarpenterTool creates a new autoscaler analysis tool
func NewKarpenterTool(provider snapshot.Provider) *KarpenterTool {
	return &KarpenterTool{
		provider: provider,
	}
}

// Execute runs the analyze_karpenter tool
func (t *KarpenterTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	snap, err := t.provider.FetchSnapshot(ctx, snapshot.NamespaceAll)
	if err != nil {
		return nil, fmt.Errorf("failed to capture cluster snapshot: %w", err)
	}
	return autoscaler.Analyze(snap), nil
}
