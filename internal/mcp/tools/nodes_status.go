package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kubepulse/kubepulse/internal/models"
	"github.com/kubepulse/kubepulse/internal/snapshot"
)

// NodesStatusTool implements the get_nodes_status MCP tool
type NodesStatusTool struct {
	provider snapshot.Provider
}

// NewNodesStatusTool creates a new nodes status tool
func NewNodesStatusTool(provider snapshot.Provider) *NodesStatusTool {
	return &NodesStatusTool{
		provider: provider,
	}
}

// NodesStatusInput represents the input for the get_nodes_status tool
type NodesStatusInput struct {
	// IncludeMetrics defaults to true when omitted.
	IncludeMetrics *bool `json:"include_metrics,omitempty"`
}

// NodeStatus is a single node entry in the tool output
type NodeStatus struct {
	Name         string              `json:"name"`
	Ready        bool                `json:"ready"`
	InstanceType string              `json:"instance_type,omitempty"`
	CapacityType models.CapacityType `json:"capacity_type,omitempty"`
	Zone         string              `json:"zone,omitempty"`
	Version      string              `json:"version,omitempty"`

	Conditions map[models.ConditionType]bool `json:"conditions,omitempty"`

	CPUUtilizationPct    *float64 `json:"cpu_utilization_pct,omitempty"`
	MemoryUtilizationPct *float64 `json:"memory_utilization_pct,omitempty"`
}

// NodesStatusOutput represents the output of the get_nodes_status tool
type NodesStatusOutput struct {
	NodeCount        int          `json:"node_count"`
	MetricsAvailable bool         `json:"metrics_available"`
	Nodes            []NodeStatus `json:"nodes"`
}

// Execute runs the get_nodes_status tool
func (t *NodesStatusTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params NodesStatusInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	includeMetrics := boolOrDefault(params.IncludeMetrics, true)

	snap, err := t.provider.FetchSnapshot(ctx, snapshot.NamespaceAll)
	if err != nil {
		return nil, fmt.Errorf("failed to capture cluster snapshot: %w", err)
	}

	output := &NodesStatusOutput{
		NodeCount:        len(snap.Nodes),
		MetricsAvailable: snap.MetricsAvailable,
		Nodes:            make([]NodeStatus, 0, len(snap.Nodes)),
	}

	for _, node := range snap.Nodes {
		entry := NodeStatus{
			Name:         node.Name,
			Ready:        node.Ready,
			InstanceType: node.InstanceType,
			CapacityType: node.CapacityType,
			Zone:         node.Zone,
			Version:      node.Version,
			Conditions:   node.Conditions,
		}
		if includeMetrics && snap.MetricsAvailable {
			cpu, mem := node.CPUUtilizationPct, node.MemoryUtilizationPct
			if cpu >= 0 {
				entry.CPUUtilizationPct = &cpu
			}
			if mem >= 0 {
				entry.MemoryUtilizationPct = &mem
			}
		}
		output.Nodes = append(output.Nodes, entry)
	}

	if !includeMetrics {
		output.MetricsAvailable = false
	}

	return output, nil
}
