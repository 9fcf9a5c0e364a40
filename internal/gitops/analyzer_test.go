package gitops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kubepulse/kubepulse/internal/models"
)

func TestAnalyze_NotInstalled(t *testing.T) {
	status := Analyze(&models.ClusterSnapshot{GitOpsApplications: nil})

	assert.False(t, status.Installed)
	assert.Equal(t, 0, status.AppCount)
}

func TestAnalyze_HealthySyncedApps(t *testing.T) {
	snap := &models.ClusterSnapshot{
		GitOpsApplications: []models.GitOpsApplication{
			{Name: "web", HealthStatus: models.AppHealthy, SyncStatus: models.SyncSynced},
			{Name: "api", HealthStatus: models.AppHealthy, SyncStatus: models.SyncSynced},
		},
	}

	status := Analyze(snap)

	assert.True(t, status.Installed)
	assert.Equal(t, 2, status.AppCount)
	assert.Equal(t, 2, status.HealthyApps)
	assert.Empty(t, status.OutOfSyncApps)
	assert.Empty(t, status.DegradedApps)
}

func TestAnalyze_Classification(t *testing.T) {
	snap := &models.ClusterSnapshot{
		GitOpsApplications: []models.GitOpsApplication{
			{Name: "drifted", HealthStatus: models.AppHealthy, SyncStatus: models.SyncOutOfSync},
			{Name: "sick", HealthStatus: models.AppDegraded, SyncStatus: models.SyncSynced},
			{Name: "lost", HealthStatus: models.AppUnknown, SyncStatus: models.SyncUnknown},
		},
	}

	status := Analyze(snap)

	assert.Equal(t, []string{"drifted", "lost"}, status.OutOfSyncApps)
	assert.Equal(t, []string{"sick"}, status.DegradedApps)
	assert.Equal(t, 1, status.HealthyApps)
}

// An app that is both out-of-sync and degraded is only counted once,
// under OutOfSyncApps.
func TestAnalyze_NoDoubleCounting(t *testing.T) {
	snap := &models.ClusterSnapshot{
		GitOpsApplications: []models.GitOpsApplication{
			{Name: "worst", HealthStatus: models.AppDegraded, SyncStatus: models.SyncOutOfSync},
		},
	}

	status := Analyze(snap)

	assert.Equal(t, []string{"worst"}, status.OutOfSyncApps)
	assert.Empty(t, status.DegradedApps)
	assert.LessOrEqual(t, len(status.OutOfSyncApps)+len(status.DegradedApps), status.AppCount)
}
