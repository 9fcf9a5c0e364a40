package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kubepulse/kubepulse/internal/models"
)

func sampleVerdict() *models.HealthVerdict {
	return &models.HealthVerdict{
		OverallStatus:  models.StatusCritical,
		NodeCount:      3,
		HealthyNodes:   2,
		UnhealthyNodes: 1,
		TotalPods:      45,
		RunningPods:    43,
		PendingPods:    1,
		FailedPods:     1,
		CriticalIssues: []string{
			"node worker-2 is not ready",
			"pod default/broken is in failed state",
		},
		Warnings:        []string{"default/flaky has 8 restarts"},
		Recommendations: []string{"Check node conditions and underlying infrastructure"},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"markdown", "md", "json", "yaml", "yml", "JSON"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, "format %q", s)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, models.IsInvalidRequestError(err))
	assert.Contains(t, err.Error(), "format")
}

func TestRender_JSONAndYAMLDecodeToSameStructure(t *testing.T) {
	verdict := sampleVerdict()
	auto := &models.AutoscalerStatus{Installed: true, ResourceCount: 2}
	git := &models.SyncStatus{Installed: true, AppCount: 4, HealthyApps: 3, OutOfSyncApps: []string{"web"}}

	jsonOut, err := Render(verdict, auto, git, FormatJSON, true)
	require.NoError(t, err)
	yamlOut, err := Render(verdict, auto, git, FormatYAML, true)
	require.NoError(t, err)

	var fromJSON, fromYAML document
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &fromJSON))
	require.NoError(t, yaml.Unmarshal([]byte(yamlOut), &fromYAML))

	assert.Equal(t, fromJSON, fromYAML)
}

func TestRender_MarkdownContainsIssuesVerbatim(t *testing.T) {
	verdict := sampleVerdict()

	out, err := Render(verdict, nil, nil, FormatMarkdown, true)
	require.NoError(t, err)

	for _, issue := range verdict.CriticalIssues {
		assert.Contains(t, out, issue)
	}
	for _, warning := range verdict.Warnings {
		assert.Contains(t, out, warning)
	}
	assert.Contains(t, out, "## Overall Status: Critical")
	assert.Contains(t, out, "## Recommendations")
}

func TestRender_RecommendationsOmittedEntirely(t *testing.T) {
	verdict := sampleVerdict()

	jsonOut, err := Render(verdict, nil, nil, FormatJSON, false)
	require.NoError(t, err)
	assert.NotContains(t, jsonOut, "recommendations")

	yamlOut, err := Render(verdict, nil, nil, FormatYAML, false)
	require.NoError(t, err)
	assert.NotContains(t, yamlOut, "recommendations")

	mdOut, err := Render(verdict, nil, nil, FormatMarkdown, false)
	require.NoError(t, err)
	assert.NotContains(t, mdOut, "## Recommendations")
}

func TestRender_EmptyRecommendationsStaysWhenRequested(t *testing.T) {
	verdict := sampleVerdict()
	verdict.Recommendations = nil

	jsonOut, err := Render(verdict, nil, nil, FormatJSON, true)
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"recommendations": []`)
}

func TestRender_FieldOrderIsFixed(t *testing.T) {
	verdict := sampleVerdict()

	out, err := Render(verdict, nil, nil, FormatJSON, true)
	require.NoError(t, err)

	order := []string{
		"overall_status", "node_count", "healthy_nodes", "unhealthy_nodes",
		"total_pods", "running_pods", "pending_pods", "failed_pods",
		"critical_issues", "warnings", "recommendations",
	}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, `"`+key+`"`)
		require.GreaterOrEqual(t, idx, 0, "missing key %s", key)
		assert.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
}

func TestRender_ByteStable(t *testing.T) {
	verdict := sampleVerdict()
	auto := &models.AutoscalerStatus{
		Installed:     true,
		ResourceCount: 1,
		CapacityTypeDistribution: map[models.CapacityType]int{
			models.CapacityTypeSpot:     1,
			models.CapacityTypeOnDemand: 2,
		},
	}

	for _, format := range []Format{FormatMarkdown, FormatJSON} {
		first, err := Render(verdict, auto, nil, format, true)
		require.NoError(t, err)
		second, err := Render(verdict, auto, nil, format, true)
		require.NoError(t, err)
		assert.Equal(t, first, second, "format %s", format)
	}
}

func TestRender_OptionalSections(t *testing.T) {
	verdict := sampleVerdict()

	out, err := Render(verdict, nil, nil, FormatJSON, false)
	require.NoError(t, err)
	assert.NotContains(t, out, `"autoscaler"`)
	assert.NotContains(t, out, `"gitops"`)

	out, err = Render(verdict, &models.AutoscalerStatus{}, &models.SyncStatus{}, FormatMarkdown, false)
	require.NoError(t, err)
	assert.Contains(t, out, "## Autoscaler")
	assert.Contains(t, out, "## GitOps")
	assert.Contains(t, out, "- not installed")
}
