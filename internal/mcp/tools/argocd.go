package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kubepulse/kubepulse/internal/gitops"
	"github.com/kubepulse/kubepulse/internal/snapshot"
)

// ArgoCDTool implements the get_argocd_status MCP tool
type ArgoCDTool struct {
	provider snapshot.Provider
}

// NewArgoCDTool creates a new GitOps status tool
func NewArgoCDTool(provider snapshot.Provider) *ArgoCDTool {
	return &ArgoCDTool{
		provider: provider,
	}
}

// Execute runs the get_argocd_status tool
func (t *ArgoCDTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	snap, err := t.provider.FetchSnapshot(ctx, snapshot.NamespaceAll)
	if err != nil {
		return nil, fmt.Errorf("failed to capture cluster snapshot: %w", err)
	}
	return gitops.Analyze(snap), nil
}
