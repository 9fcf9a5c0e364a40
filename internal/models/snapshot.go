package models

import "time"

// CapacityType describes how a node's capacity was provisioned.
type CapacityType string

const (
	CapacityTypeSpot     CapacityType = "spot"
	CapacityTypeOnDemand CapacityType = "on-demand"
	CapacityTypeUnknown  CapacityType = "unknown"
)

// PodPhase mirrors the Kubernetes pod lifecycle phase.
type PodPhase string

const (
	PodRunning   PodPhase = "Running"
	PodPending   PodPhase = "Pending"
	PodFailed    PodPhase = "Failed"
	PodSucceeded PodPhase = "Succeeded"
	PodUnknown   PodPhase = "Unknown"
)

// ConditionType identifies a node condition such as DiskPressure or MemoryPressure.
type ConditionType string

const (
	ConditionDiskPressure       ConditionType = "DiskPressure"
	ConditionMemoryPressure     ConditionType = "MemoryPressure"
	ConditionPIDPressure        ConditionType = "PIDPressure"
	ConditionNetworkUnavailable ConditionType = "NetworkUnavailable"
)

// NodeInfo is the per-node slice of a cluster snapshot.
type NodeInfo struct {
	Name       string                 `json:"name"`
	Ready      bool                   `json:"ready"`
	Conditions map[ConditionType]bool `json:"conditions,omitempty"`

	InstanceType string       `json:"instance_type,omitempty"`
	CapacityType CapacityType `json:"capacity_type,omitempty"`
	Zone         string       `json:"zone,omitempty"`
	Version      string       `json:"version,omitempty"`

	// Utilization percentages are only meaningful when the snapshot's
	// MetricsAvailable flag is set. Negative means "no sample".
	CPUUtilizationPct    float64 `json:"cpu_utilization_pct,omitempty"`
	MemoryUtilizationPct float64 `json:"memory_utilization_pct,omitempty"`
}

// PodInfo is the per-pod slice of a cluster snapshot.
type PodInfo struct {
	Name            string   `json:"name"`
	Namespace       string   `json:"namespace"`
	Phase           PodPhase `json:"phase"`
	RestartCount    int      `json:"restart_count"`
	ReadyContainers int      `json:"ready_containers"`
	TotalContainers int      `json:"total_containers"`
	Node            string   `json:"node,omitempty"`

	// PendingDurationSeconds is measured from pod creation to snapshot
	// capture time. Zero for pods that are not Pending.
	PendingDurationSeconds int64 `json:"pending_duration_seconds,omitempty"`
}

// AutoscalerKind distinguishes legacy Provisioners from NodePools.
type AutoscalerKind string

const (
	AutoscalerKindProvisioner AutoscalerKind = "Provisioner"
	AutoscalerKindNodePool    AutoscalerKind = "NodePool"
)

// KeyValueConstraint is a single scheduling requirement declared by an
// autoscaler resource, e.g. karpenter.sh/capacity-type In [spot, on-demand].
type KeyValueConstraint struct {
	Key      string   `json:"key"`
	Operator string   `json:"operator,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// AutoscalerResource is a provisioning-policy object (Karpenter NodePool or
// Provisioner) captured in a snapshot.
type AutoscalerResource struct {
	Kind         AutoscalerKind       `json:"kind"`
	Name         string               `json:"name"`
	Requirements []KeyValueConstraint `json:"requirements,omitempty"`

	// TTLSecondsAfterEmpty is nil when the resource does not declare one.
	TTLSecondsAfterEmpty *int64 `json:"ttl_seconds_after_empty,omitempty"`
}

// AppHealth is the health state of a GitOps application.
type AppHealth string

const (
	AppHealthy     AppHealth = "Healthy"
	AppDegraded    AppHealth = "Degraded"
	AppProgressing AppHealth = "Progressing"
	AppMissing     AppHealth = "Missing"
	AppUnknown     AppHealth = "Unknown"
)

// AppSync is the sync state of a GitOps application against its source repo.
type AppSync string

const (
	SyncSynced    AppSync = "Synced"
	SyncOutOfSync AppSync = "OutOfSync"
	SyncUnknown   AppSync = "Unknown"
)

// GitOpsApplication is a declarative deployment object (ArgoCD Application)
// captured in a snapshot.
type GitOpsApplication struct {
	Name         string    `json:"name"`
	HealthStatus AppHealth `json:"health_status"`
	SyncStatus   AppSync   `json:"sync_status"`
	RepoURL      string    `json:"repo_url,omitempty"`
}

// ClusterSnapshot is an immutable point-in-time capture of cluster facts.
// It is owned exclusively by the evaluation call that received it; the
// provider never mutates a snapshot after handing it out.
type ClusterSnapshot struct {
	ID               string     `json:"id"`
	Nodes            []NodeInfo `json:"nodes"`
	Pods             []PodInfo  `json:"pods"`
	MetricsAvailable bool       `json:"metrics_available"`

	// AutoscalerResources is nil when the autoscaler CRDs are not installed,
	// as opposed to an empty slice for "installed with zero resources".
	AutoscalerResources []AutoscalerResource `json:"autoscaler_resources,omitempty"`

	// GitOpsApplications is nil when the Application CRD is not installed.
	GitOpsApplications []GitOpsApplication `json:"gitops_applications,omitempty"`

	CapturedAt time.Time `json:"captured_at"`
}

// Validate checks a snapshot for structural consistency. Malformed snapshots
// are rejected at the evaluator boundary, never silently clamped.
func (s *ClusterSnapshot) Validate() error {
	if s == nil {
		return NewValidationError("snapshot must not be nil")
	}
	for i, pod := range s.Pods {
		if pod.RestartCount < 0 {
			return NewValidationError("pod[%d] %s/%s: restart count must not be negative, got %d",
				i, pod.Namespace, pod.Name, pod.RestartCount)
		}
		if pod.TotalContainers < 0 {
			return NewValidationError("pod[%d] %s/%s: total containers must not be negative, got %d",
				i, pod.Namespace, pod.Name, pod.TotalContainers)
		}
		if pod.ReadyContainers < 0 || pod.ReadyContainers > pod.TotalContainers {
			return NewValidationError("pod[%d] %s/%s: ready containers %d out of range [0, %d]",
				i, pod.Namespace, pod.Name, pod.ReadyContainers, pod.TotalContainers)
		}
		if pod.PendingDurationSeconds < 0 {
			return NewValidationError("pod[%d] %s/%s: pending duration must not be negative, got %d",
				i, pod.Namespace, pod.Name, pod.PendingDurationSeconds)
		}
	}
	return nil
}
