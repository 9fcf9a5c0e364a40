package remediation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	"sigs.k8s.io/yaml"

	"github.com/kubepulse/kubepulse/internal/config"
	"github.com/kubepulse/kubepulse/internal/models"
)

func newTestGenerator() *Generator {
	return NewGenerator(config.DefaultRemediationDefaults())
}

func TestGenerate_HPA(t *testing.T) {
	gen := newTestGenerator()

	out, err := gen.Generate(models.RemediationRequest{
		IssueType:  models.IssueHPA,
		TargetName: "my-app",
		Namespace:  "prod",
	})
	require.NoError(t, err)

	var hpa autoscalingv2.HorizontalPodAutoscaler
	require.NoError(t, yaml.Unmarshal([]byte(out), &hpa))

	assert.Equal(t, "my-app-hpa", hpa.Name)
	assert.Equal(t, "prod", hpa.Namespace)
	assert.Equal(t, "my-app", hpa.Spec.ScaleTargetRef.Name)
	require.NotNil(t, hpa.Spec.MinReplicas)
	assert.Equal(t, int32(2), *hpa.Spec.MinReplicas)
	assert.Equal(t, int32(10), hpa.Spec.MaxReplicas)
	require.Len(t, hpa.Spec.Metrics, 1)
	require.NotNil(t, hpa.Spec.Metrics[0].Resource)
	require.NotNil(t, hpa.Spec.Metrics[0].Resource.Target.AverageUtilization)
	assert.Equal(t, int32(70), *hpa.Spec.Metrics[0].Resource.Target.AverageUtilization)
}

func TestGenerate_LimitRange(t *testing.T) {
	gen := newTestGenerator()

	out, err := gen.Generate(models.RemediationRequest{
		IssueType:  models.IssueResourceLimits,
		TargetName: "my-app",
		Namespace:  "default",
	})
	require.NoError(t, err)

	var lr corev1.LimitRange
	require.NoError(t, yaml.Unmarshal([]byte(out), &lr))

	assert.Equal(t, "my-app-limits", lr.Name)
	require.Len(t, lr.Spec.Limits, 1)
	assert.Equal(t, corev1.LimitTypeContainer, lr.Spec.Limits[0].Type)
	assert.Equal(t, "500m", lr.Spec.Limits[0].Default.Cpu().String())
	assert.Equal(t, "512Mi", lr.Spec.Limits[0].Default.Memory().String())
	assert.Equal(t, "100m", lr.Spec.Limits[0].DefaultRequest.Cpu().String())
	assert.Equal(t, "128Mi", lr.Spec.Limits[0].DefaultRequest.Memory().String())
}

func TestGenerate_PDB(t *testing.T) {
	gen := newTestGenerator()

	out, err := gen.Generate(models.RemediationRequest{
		IssueType:  models.IssuePDB,
		TargetName: "my-app",
		Namespace:  "prod",
	})
	require.NoError(t, err)

	var pdb policyv1.PodDisruptionBudget
	require.NoError(t, yaml.Unmarshal([]byte(out), &pdb))

	assert.Equal(t, "my-app-pdb", pdb.Name)
	require.NotNil(t, pdb.Spec.MinAvailable)
	assert.Equal(t, int32(1), pdb.Spec.MinAvailable.IntVal)
	assert.Equal(t, "my-app", pdb.Spec.Selector.MatchLabels["app"])
}

func TestGenerate_NodeAffinityPatch(t *testing.T) {
	gen := newTestGenerator()

	out, err := gen.Generate(models.RemediationRequest{
		IssueType:  models.IssueNodeAffinity,
		TargetName: "my-app",
		Namespace:  "prod",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "affinity")
	assert.Contains(t, out, "karpenter.sh/capacity-type")
	assert.Contains(t, out, "on-demand")
}

func TestGenerate_RejectsInvalidTargetName(t *testing.T) {
	gen := newTestGenerator()

	_, err := gen.Generate(models.RemediationRequest{
		IssueType:  models.IssueHPA,
		TargetName: "My_App!",
		Namespace:  "prod",
	})
	require.Error(t, err)
	assert.True(t, models.IsInvalidRequestError(err))
	assert.Contains(t, err.Error(), "target")
}

func TestGenerate_RejectsInvalidNamespace(t *testing.T) {
	gen := newTestGenerator()

	_, err := gen.Generate(models.RemediationRequest{
		IssueType:  models.IssuePDB,
		TargetName: "my-app",
		Namespace:  "",
	})
	require.Error(t, err)
	assert.True(t, models.IsInvalidRequestError(err))
	assert.Contains(t, err.Error(), "namespace")
}

func TestGenerate_RejectsUnknownIssueType(t *testing.T) {
	gen := newTestGenerator()

	_, err := gen.Generate(models.RemediationRequest{
		IssueType:  "restart_everything",
		TargetName: "my-app",
		Namespace:  "prod",
	})
	require.Error(t, err)
	assert.True(t, models.IsInvalidRequestError(err))
	assert.Contains(t, err.Error(), "issue_type")
}

func TestGenerate_NamesAreNotSplicedAsSyntax(t *testing.T) {
	gen := newTestGenerator()

	// A name that is valid DNS-1123 but would be dangerous if spliced
	// into template text still round-trips as a plain scalar.
	out, err := gen.Generate(models.RemediationRequest{
		IssueType:  models.IssuePDB,
		TargetName: "app.v2",
		Namespace:  "prod",
	})
	require.NoError(t, err)

	var pdb policyv1.PodDisruptionBudget
	require.NoError(t, yaml.Unmarshal([]byte(out), &pdb))
	assert.Equal(t, "app.v2-pdb", pdb.Name)
	assert.False(t, strings.Contains(out, "\t"), "yaml output must not contain tabs")
}

func TestGenerate_DefaultsAreOverridable(t *testing.T) {
	defaults := config.DefaultRemediationDefaults()
	defaults.HPAMaxReplicas = 50
	defaults.HPATargetCPUPercent = 60
	gen := NewGenerator(defaults)

	out, err := gen.Generate(models.RemediationRequest{
		IssueType:  models.IssueHPA,
		TargetName: "my-app",
		Namespace:  "prod",
	})
	require.NoError(t, err)

	var hpa autoscalingv2.HorizontalPodAutoscaler
	require.NoError(t, yaml.Unmarshal([]byte(out), &hpa))
	assert.Equal(t, int32(50), hpa.Spec.MaxReplicas)
	assert.Equal(t, int32(60), *hpa.Spec.Metrics[0].Resource.Target.AverageUtilization)
}
