// Package remediation synthesizes Kubernetes manifests for common
// resource-configuration problems.
//
// Manifests are built as typed API objects and serialized at the end;
// request parameters are never spliced into template text, so a caller
// cannot inject structure through a name.
package remediation

import (
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/kubepulse/kubepulse/internal/config"
	"github.com/kubepulse/kubepulse/internal/models"
)

// Generator renders remediation manifests from a fixed catalog of templates,
// parameterized only by target name and namespace. Output values come from
// the configured defaults.
type Generator struct {
	defaults config.RemediationDefaults
}

// NewGenerator creates a Generator with the given template defaults.
func NewGenerator(defaults config.RemediationDefaults) *Generator {
	return &Generator{defaults: defaults}
}

// Generate validates the request and renders the manifest for its issue
// type. Unknown issue types and identifiers that fail resource-name
// validation are rejected with an InvalidRequestError before any rendering.
func (g *Generator) Generate(req models.RemediationRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	var obj interface{}
	switch req.IssueType {
	case models.IssueResourceLimits:
		obj = g.limitRange(req)
	case models.IssueHPA:
		obj = g.horizontalPodAutoscaler(req)
	case models.IssuePDB:
		obj = g.podDisruptionBudget(req)
	case models.IssueNodeAffinity:
		obj = g.nodeAffinityPatch(req)
	default:
		return "", models.NewInvalidRequestError("issue_type",
			"unknown issue type %q (must be one of: resource_limits, hpa, pdb, node_affinity)", req.IssueType)
	}

	out, err := yaml.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// validateRequest applies the conservative resource-name rules (lowercase
// alphanumerics, '-', '.', at most 253 characters) to both identifiers.
func validateRequest(req models.RemediationRequest) error {
	switch req.IssueType {
	case models.IssueResourceLimits, models.IssueHPA, models.IssuePDB, models.IssueNodeAffinity:
	default:
		return models.NewInvalidRequestError("issue_type",
			"unknown issue type %q (must be one of: resource_limits, hpa, pdb, node_affinity)", req.IssueType)
	}
	if errs := validation.IsDNS1123Subdomain(req.TargetName); len(errs) > 0 {
		return models.NewInvalidRequestError("target", "%q is not a valid resource name: %s", req.TargetName, errs[0])
	}
	if errs := validation.IsDNS1123Subdomain(req.Namespace); len(errs) > 0 {
		return models.NewInvalidRequestError("namespace", "%q is not a valid namespace: %s", req.Namespace, errs[0])
	}
	return nil
}

func (g *Generator) limitRange(req models.RemediationRequest) *corev1.LimitRange {
	return &corev1.LimitRange{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "LimitRange"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      req.TargetName + "-limits",
			Namespace: req.Namespace,
		},
		Spec: corev1.LimitRangeSpec{
			Limits: []corev1.LimitRangeItem{
				{
					Type: corev1.LimitTypeContainer,
					Default: corev1.ResourceList{
						corev1.ResourceCPU:    resource.MustParse(g.defaults.LimitCPU),
						corev1.ResourceMemory: resource.MustParse(g.defaults.LimitMemory),
					},
					DefaultRequest: corev1.ResourceList{
						corev1.ResourceCPU:    resource.MustParse(g.defaults.RequestCPU),
						corev1.ResourceMemory: resource.MustParse(g.defaults.RequestMemory),
					},
				},
			},
		},
	}
}

func (g *Generator) horizontalPodAutoscaler(req models.RemediationRequest) *autoscalingv2.HorizontalPodAutoscaler {
	return &autoscalingv2.HorizontalPodAutoscaler{
		TypeMeta: metav1.TypeMeta{APIVersion: "autoscaling/v2", Kind: "HorizontalPodAutoscaler"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      req.TargetName + "-hpa",
			Namespace: req.Namespace,
		},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: "apps/v1",
				Kind:       "Deployment",
				Name:       req.TargetName,
			},
			MinReplicas: ptr.To(g.defaults.HPAMinReplicas),
			MaxReplicas: g.defaults.HPAMaxReplicas,
			Metrics: []autoscalingv2.MetricSpec{
				{
					Type: autoscalingv2.ResourceMetricSourceType,
					Resource: &autoscalingv2.ResourceMetricSource{
						Name: corev1.ResourceCPU,
						Target: autoscalingv2.MetricTarget{
							Type:               autoscalingv2.UtilizationMetricType,
							AverageUtilization: ptr.To(g.defaults.HPATargetCPUPercent),
						},
					},
				},
			},
		},
	}
}

func (g *Generator) podDisruptionBudget(req models.RemediationRequest) *policyv1.PodDisruptionBudget {
	minAvailable := intstr.FromInt32(g.defaults.PDBMinAvailable)
	return &policyv1.PodDisruptionBudget{
		TypeMeta: metav1.TypeMeta{APIVersion: "policy/v1", Kind: "PodDisruptionBudget"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      req.TargetName + "-pdb",
			Namespace: req.Namespace,
		},
		Spec: policyv1.PodDisruptionBudgetSpec{
			MinAvailable: &minAvailable,
			Selector: &metav1.LabelSelector{
				MatchLabels: map[string]string{"app": req.TargetName},
			},
		},
	}
}

// affinityPatch is the strategic-merge patch shape for adding a node
// affinity to a workload's pod template.
type affinityPatch struct {
	Spec affinityPatchSpec `json:"spec"`
}

type affinityPatchSpec struct {
	Template affinityPatchTemplate `json:"template"`
}

type affinityPatchTemplate struct {
	Spec affinityPatchPodSpec `json:"spec"`
}

type affinityPatchPodSpec struct {
	Affinity *corev1.Affinity `json:"affinity"`
}

func (g *Generator) nodeAffinityPatch(req models.RemediationRequest) *affinityPatch {
	return &affinityPatch{
		Spec: affinityPatchSpec{
			Template: affinityPatchTemplate{
				Spec: affinityPatchPodSpec{
					Affinity: &corev1.Affinity{
						NodeAffinity: &corev1.NodeAffinity{
							PreferredDuringSchedulingIgnoredDuringExecution: []corev1.PreferredSchedulingTerm{
								{
									Weight: 100,
									Preference: corev1.NodeSelectorTerm{
										MatchExpressions: []corev1.NodeSelectorRequirement{
											{
												Key:      "karpenter.sh/capacity-type",
												Operator: corev1.NodeSelectorOpIn,
												Values:   []string{"on-demand"},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
