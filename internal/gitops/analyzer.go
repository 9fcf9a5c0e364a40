// Package gitops aggregates the ArgoCD application state captured in a
// cluster snapshot.
package gitops

import "github.com/kubepulse/kubepulse/internal/models"

// Analyze summarizes the GitOps applications of a snapshot. An application
// is counted in at most one of OutOfSyncApps/DegradedApps: sync state is
// classified first, so an app that is both out-of-sync and degraded only
// appears under OutOfSyncApps.
func Analyze(snapshot *models.ClusterSnapshot) *models.SyncStatus {
	status := &models.SyncStatus{
		OutOfSyncApps: []string{},
		DegradedApps:  []string{},
	}

	if snapshot.GitOpsApplications == nil {
		return status
	}
	status.Installed = true
	status.AppCount = len(snapshot.GitOpsApplications)

	for _, app := range snapshot.GitOpsApplications {
		if app.HealthStatus == models.AppHealthy {
			status.HealthyApps++
		}
		switch {
		case app.SyncStatus != models.SyncSynced:
			status.OutOfSyncApps = append(status.OutOfSyncApps, app.Name)
		case app.HealthStatus == models.AppDegraded:
			status.DegradedApps = append(status.DegradedApps, app.Name)
		}
	}

	return status
}
