package models

// HealthStatus is the overall classification of a cluster snapshot.
type HealthStatus string

const (
	StatusHealthy  HealthStatus = "Healthy"
	StatusDegraded HealthStatus = "Degraded"
	StatusCritical HealthStatus = "Critical"
)

// HealthVerdict is the classified health result for a snapshot. It is
// produced fresh on each evaluation call and never mutated afterwards.
type HealthVerdict struct {
	OverallStatus HealthStatus `json:"overall_status"`

	NodeCount      int `json:"node_count"`
	HealthyNodes   int `json:"healthy_nodes"`
	UnhealthyNodes int `json:"unhealthy_nodes"`

	TotalPods   int `json:"total_pods"`
	RunningPods int `json:"running_pods"`
	PendingPods int `json:"pending_pods"`
	FailedPods  int `json:"failed_pods"`

	// Entries follow node-then-pod traversal order for reproducibility.
	CriticalIssues  []string `json:"critical_issues"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// AutoscalerStatus summarizes the autoscaler resources in a snapshot.
// The yaml tags keep the key set identical across report encodings.
type AutoscalerStatus struct {
	// Installed distinguishes "CRDs absent" from "installed with zero resources".
	Installed     bool `json:"installed" yaml:"installed"`
	ResourceCount int  `json:"resource_count" yaml:"resource_count"`

	CapacityTypeDistribution map[CapacityType]int `json:"capacity_type_distribution,omitempty" yaml:"capacity_type_distribution,omitempty"`

	// Misconfigured lists resource names that declare zero requirements,
	// an empty capacity-type value set, or a negative empty-TTL.
	Misconfigured []string `json:"misconfigured,omitempty" yaml:"misconfigured,omitempty"`
}

// SyncStatus aggregates the GitOps application state in a snapshot.
// An application appears in at most one of OutOfSyncApps/DegradedApps.
type SyncStatus struct {
	Installed     bool     `json:"installed" yaml:"installed"`
	AppCount      int      `json:"app_count" yaml:"app_count"`
	HealthyApps   int      `json:"healthy_apps" yaml:"healthy_apps"`
	OutOfSyncApps []string `json:"out_of_sync_apps,omitempty" yaml:"out_of_sync_apps,omitempty"`
	DegradedApps  []string `json:"degraded_apps,omitempty" yaml:"degraded_apps,omitempty"`
}

// IssueType names a remediation template category.
type IssueType string

const (
	IssueResourceLimits IssueType = "resource_limits"
	IssueHPA            IssueType = "hpa"
	IssuePDB            IssueType = "pdb"
	IssueNodeAffinity   IssueType = "node_affinity"
)

// RemediationRequest asks for a manifest addressing one issue category.
// It is validated before any rendering attempt.
type RemediationRequest struct {
	IssueType  IssueType `json:"issue_type"`
	TargetName string    `json:"target"`
	Namespace  string    `json:"namespace"`
}
