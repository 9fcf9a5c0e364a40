// Package snapshot captures point-in-time cluster state for analysis.
//
// The provider is the only component that talks to the cluster API. It hands
// out fully materialized, immutable ClusterSnapshot values; the analyzers
// never observe a snapshot mutate mid-evaluation.
package snapshot

import (
	"context"

	"github.com/kubepulse/kubepulse/internal/models"
)

// NamespaceAll requests pods from every namespace.
const NamespaceAll = "all"

// Provider supplies cluster snapshots.
type Provider interface {
	// FetchSnapshot captures the current cluster state. namespace filters
	// the pod list; NamespaceAll (or empty) means all namespaces. It fails
	// with a ConnectivityError when the cluster API is unreachable; absent
	// optional sources (metrics server, autoscaler or GitOps CRDs) degrade
	// the snapshot instead of failing it.
	FetchSnapshot(ctx context.Context, namespace string) (*models.ClusterSnapshot, error)
}
