package snapshot

import (
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubepulse/kubepulse/internal/models"
)

const (
	labelInstanceType = "node.kubernetes.io/instance-type"
	labelCapacityType = "karpenter.sh/capacity-type"
	labelZone         = "topology.kubernetes.io/zone"
)

// nodeUsageSample is a single metrics-server reading for a node.
type nodeUsageSample struct {
	cpu    int64 // millicores
	memory int64 // bytes
}

// watchedConditions are the node conditions that make a node unhealthy
// when true.
var watchedConditions = []corev1.NodeConditionType{
	corev1.NodeDiskPressure,
	corev1.NodeMemoryPressure,
	corev1.NodePIDPressure,
	corev1.NodeNetworkUnavailable,
}

func nodeToInfo(node *corev1.Node, usage map[string]nodeUsageSample) models.NodeInfo {
	info := models.NodeInfo{
		Name:         node.Name,
		Conditions:   map[models.ConditionType]bool{},
		InstanceType: node.Labels[labelInstanceType],
		Zone:         node.Labels[labelZone],
		Version:      node.Status.NodeInfo.KubeletVersion,
	}

	switch node.Labels[labelCapacityType] {
	case "spot":
		info.CapacityType = models.CapacityTypeSpot
	case "on-demand":
		info.CapacityType = models.CapacityTypeOnDemand
	case "":
		// no capacity-type label, leave unset
	default:
		info.CapacityType = models.CapacityTypeUnknown
	}

	for _, cond := range node.Status.Conditions {
		switch cond.Type {
		case corev1.NodeReady:
			info.Ready = cond.Status == corev1.ConditionTrue
		default:
			for _, watched := range watchedConditions {
				if cond.Type == watched {
					info.Conditions[models.ConditionType(cond.Type)] = cond.Status == corev1.ConditionTrue
				}
			}
		}
	}

	// Negative utilization means "no sample", per the NodeInfo contract.
	info.CPUUtilizationPct = -1
	info.MemoryUtilizationPct = -1
	if sample, ok := usage[node.Name]; ok {
		if cpu := node.Status.Allocatable.Cpu().MilliValue(); cpu > 0 {
			info.CPUUtilizationPct = float64(sample.cpu) / float64(cpu) * 100
		}
		if mem := node.Status.Allocatable.Memory().Value(); mem > 0 {
			info.MemoryUtilizationPct = float64(sample.memory) / float64(mem) * 100
		}
	}

	return info
}

func podToInfo(pod *corev1.Pod, capturedAt time.Time) models.PodInfo {
	info := models.PodInfo{
		Name:            pod.Name,
		Namespace:       pod.Namespace,
		Phase:           models.PodPhase(pod.Status.Phase),
		TotalContainers: len(pod.Spec.Containers),
		Node:            pod.Spec.NodeName,
	}

	for _, cs := range pod.Status.ContainerStatuses {
		info.RestartCount += int(cs.RestartCount)
		if cs.Ready {
			info.ReadyContainers++
		}
	}

	// Pending duration is pod-creation-to-capture, not last transition.
	if info.Phase == models.PodPending && !pod.CreationTimestamp.IsZero() {
		if d := capturedAt.Sub(pod.CreationTimestamp.Time); d > 0 {
			info.PendingDurationSeconds = int64(d.Seconds())
		}
	}

	return info
}

func autoscalerFromUnstructured(obj *unstructured.Unstructured, kind models.AutoscalerKind) models.AutoscalerResource {
	res := models.AutoscalerResource{
		Kind: kind,
		Name: obj.GetName(),
	}

	reqPath := []string{"spec", "requirements"}
	if kind == models.AutoscalerKindNodePool {
		// NodePools nest scheduling requirements under the node template.
		reqPath = []string{"spec", "template", "spec", "requirements"}
	}
	if reqs, found, _ := unstructured.NestedSlice(obj.Object, reqPath...); found {
		for _, raw := range reqs {
			reqMap, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			constraint := models.KeyValueConstraint{}
			if key, ok := reqMap["key"].(string); ok {
				constraint.Key = key
			}
			if op, ok := reqMap["operator"].(string); ok {
				constraint.Operator = op
			}
			if values, ok := reqMap["values"].([]interface{}); ok {
				for _, v := range values {
					if s, ok := v.(string); ok {
						constraint.Values = append(constraint.Values, s)
					}
				}
			}
			res.Requirements = append(res.Requirements, constraint)
		}
	}

	if ttl, found, _ := unstructured.NestedInt64(obj.Object, "spec", "ttlSecondsAfterEmpty"); found {
		res.TTLSecondsAfterEmpty = &ttl
	}

	return res
}

func applicationFromUnstructured(obj *unstructured.Unstructured) models.GitOpsApplication {
	app := models.GitOpsApplication{
		Name:         obj.GetName(),
		HealthStatus: models.AppUnknown,
		SyncStatus:   models.SyncUnknown,
	}

	if health, found, _ := unstructured.NestedString(obj.Object, "status", "health", "status"); found && health != "" {
		app.HealthStatus = models.AppHealth(health)
	}
	if sync, found, _ := unstructured.NestedString(obj.Object, "status", "sync", "status"); found && sync != "" {
		app.SyncStatus = models.AppSync(sync)
	}
	if repo, found, _ := unstructured.NestedString(obj.Object, "spec", "source", "repoURL"); found {
		app.RepoURL = repo
	}

	return app
}
