// Package autoscaler inspects Karpenter provisioning policy captured in a
// cluster snapshot.
package autoscaler

import (
	"fmt"

	"github.com/kubepulse/kubepulse/internal/models"
)

const capacityTypeKey = "karpenter.sh/capacity-type"

// Analyze summarizes the autoscaler resources of a snapshot. Installed is
// false when the snapshot carries no autoscaler resource list at all, which
// is distinct from an installed autoscaler with zero resources.
func Analyze(snapshot *models.ClusterSnapshot) *models.AutoscalerStatus {
	status := &models.AutoscalerStatus{
		CapacityTypeDistribution: map[models.CapacityType]int{},
		Misconfigured:            []string{},
	}

	if snapshot.AutoscalerResources == nil {
		return status
	}
	status.Installed = true
	status.ResourceCount = len(snapshot.AutoscalerResources)

	for _, res := range snapshot.AutoscalerResources {
		for _, reason := range misconfigurations(res) {
			status.Misconfigured = append(status.Misconfigured,
				fmt.Sprintf("%s/%s: %s", res.Kind, res.Name, reason))
		}
		for _, ct := range capacityTypes(res) {
			status.CapacityTypeDistribution[ct]++
		}
	}

	return status
}

// misconfigurations returns the reasons a resource counts as misconfigured:
// zero requirements, a capacity-type constraint with an empty value set, or
// a negative empty-TTL.
func misconfigurations(res models.AutoscalerResource) []string {
	var reasons []string
	if len(res.Requirements) == 0 {
		reasons = append(reasons, "declares zero requirements")
	}
	for _, req := range res.Requirements {
		if req.Key == capacityTypeKey && len(req.Values) == 0 {
			reasons = append(reasons, "capacity-type constraint has an empty value set")
		}
	}
	if res.TTLSecondsAfterEmpty != nil && *res.TTLSecondsAfterEmpty < 0 {
		reasons = append(reasons, fmt.Sprintf("ttlSecondsAfterEmpty is negative (%d)", *res.TTLSecondsAfterEmpty))
	}
	return reasons
}

// capacityTypes extracts the declared capacity types of a resource,
// normalizing unrecognized values to "unknown".
func capacityTypes(res models.AutoscalerResource) []models.CapacityType {
	var types []models.CapacityType
	for _, req := range res.Requirements {
		if req.Key != capacityTypeKey {
			continue
		}
		for _, v := range req.Values {
			switch models.CapacityType(v) {
			case models.CapacityTypeSpot:
				types = append(types, models.CapacityTypeSpot)
			case models.CapacityTypeOnDemand:
				types = append(types, models.CapacityTypeOnDemand)
			default:
				types = append(types, models.CapacityTypeUnknown)
			}
		}
	}
	return types
}
