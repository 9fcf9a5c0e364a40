package tools

import (
	"context"
	"time"

	"github.com/kubepulse/kubepulse/internal/models"
)

// fakeProvider returns a canned snapshot, or an error, and records the
// namespace it was asked for.
type fakeProvider struct {
	snap      *models.ClusterSnapshot
	err       error
	namespace string
	calls     int
}

func (f *fakeProvider) FetchSnapshot(ctx context.Context, namespace string) (*models.ClusterSnapshot, error) {
	f.namespace = namespace
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func healthySnapshot() *models.ClusterSnapshot {
	return &models.ClusterSnapshot{
		ID:               "snap-1",
		MetricsAvailable: true,
		CapturedAt:       time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC),
		Nodes: []models.NodeInfo{
			{
				Name:                 "node-a",
				Ready:                true,
				InstanceType:         "m5.large",
				CapacityType:         models.CapacityTypeOnDemand,
				Zone:                 "eu-central-1a",
				CPUUtilizationPct:    42,
				MemoryUtilizationPct: 51,
			},
			{
				Name:                 "node-b",
				Ready:                true,
				InstanceType:         "m5.large",
				CapacityType:         models.CapacityTypeSpot,
				Zone:                 "eu-central-1b",
				CPUUtilizationPct:    38,
				MemoryUtilizationPct: 47,
			},
		},
		Pods: []models.PodInfo{
			{Name: "web-1", Namespace: "default", Phase: models.PodRunning, ReadyContainers: 1, TotalContainers: 1, Node: "node-a"},
			{Name: "web-2", Namespace: "default", Phase: models.PodRunning, ReadyContainers: 1, TotalContainers: 1, Node: "node-b"},
		},
		AutoscalerResources: []models.AutoscalerResource{
			{
				Kind: models.AutoscalerKindNodePool,
				Name: "general",
				Requirements: []models.KeyValueConstraint{
					{Key: "karpenter.sh/capacity-type", Operator: "In", Values: []string{"spot", "on-demand"}},
				},
			},
		},
		GitOpsApplications: []models.GitOpsApplication{
			{Name: "web", HealthStatus: models.AppHealthy, SyncStatus: models.SyncSynced, RepoURL: "https://git.example.com/web.git"},
		},
	}
}
