package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kubepulse/kubepulse/internal/models"
	"github.com/kubepulse/kubepulse/internal/snapshot"
)

// PodsStatusTool implements the get_pods_status MCP tool
type PodsStatusTool struct {
	provider snapshot.Provider
}

// NewPodsStatusTool creates a new pods status tool
func NewPodsStatusTool(provider snapshot.Provider) *PodsStatusTool {
	return &PodsStatusTool{
		provider: provider,
	}
}

// PodsStatusInput represents the input for the get_pods_status tool
type PodsStatusInput struct {
	// Namespace filters the pod list; "all" or empty means all namespaces.
	Namespace string `json:"namespace,omitempty"`
}

// PodStatus is a single pod entry in the tool output
type PodStatus struct {
	Name            string          `json:"name"`
	Namespace       string          `json:"namespace"`
	Phase           models.PodPhase `json:"phase"`
	RestartCount    int             `json:"restart_count"`
	ReadyContainers int             `json:"ready_containers"`
	TotalContainers int             `json:"total_containers"`
	Node            string          `json:"node,omitempty"`

	PendingDurationSeconds int64 `json:"pending_duration_seconds,omitempty"`
}

// PodsStatusOutput represents the output of the get_pods_status tool
type PodsStatusOutput struct {
	Namespace string      `json:"namespace"`
	PodCount  int         `json:"pod_count"`
	Pods      []PodStatus `json:"pods"`
}

// Execute runs the get_pods_status tool
func (t *PodsStatusTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params PodsStatusInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	namespace := params.Namespace
	if namespace == "" {
		namespace = snapshot.NamespaceAll
	}

	snap, err := t.provider.FetchSnapshot(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to capture cluster snapshot: %w", err)
	}

	output := &PodsStatusOutput{
		Namespace: namespace,
		PodCount:  len(snap.Pods),
		Pods:      make([]PodStatus, 0, len(snap.Pods)),
	}
	for _, pod := range snap.Pods {
		output.Pods = append(output.Pods, PodStatus{
			Name:                   pod.Name,
			Namespace:              pod.Namespace,
			Phase:                  pod.Phase,
			RestartCount:           pod.RestartCount,
			ReadyContainers:        pod.ReadyContainers,
			TotalContainers:        pod.TotalContainers,
			Node:                   pod.Node,
			PendingDurationSeconds: pod.PendingDurationSeconds,
		})
	}

	return output, nil
}
