// Package health classifies cluster snapshots into health verdicts.
//
// Evaluation is a pure function over an immutable snapshot: no I/O, no
// shared state, and repeated evaluation of the same snapshot value yields
// bit-identical verdicts.
package health

import (
	"fmt"

	"github.com/kubepulse/kubepulse/internal/config"
	"github.com/kubepulse/kubepulse/internal/models"
)

const (
	recUnhealthyNodes  = "Check node conditions and underlying infrastructure"
	recFailedPods      = "Check resource constraints and node availability"
	recHighRestarts    = "Inspect pod logs and liveness probe configuration"
	recPendingPods     = "Review scheduling constraints and cluster capacity"
	recHighUtilization = "Consider adding capacity or rebalancing workloads"
)

// conditionOrder fixes the traversal order of node conditions so that
// issue lists are reproducible across runs.
var conditionOrder = []models.ConditionType{
	models.ConditionDiskPressure,
	models.ConditionMemoryPressure,
	models.ConditionPIDPressure,
	models.ConditionNetworkUnavailable,
}

// Evaluate classifies a snapshot into a HealthVerdict using the given
// thresholds. It is total on well-formed input: absent metrics degrade to an
// informational warning rather than an error. Structurally inconsistent
// snapshots are rejected with a ValidationError.
//
// When includeRecommendations is false the verdict carries no advisory
// strings; counts and overall status are unaffected.
func Evaluate(snapshot *models.ClusterSnapshot, cfg config.EvaluationConfig, includeRecommendations bool) (*models.HealthVerdict, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	verdict := &models.HealthVerdict{
		CriticalIssues: []string{},
		Warnings:       []string{},
	}

	// Warnings that count toward the Degraded classification. The
	// metrics-unavailable note is informational and kept out of this tally.
	degradedSignals := 0

	triggered := map[string]bool{}

	// Node pass
	verdict.NodeCount = len(snapshot.Nodes)
	for _, node := range snapshot.Nodes {
		unhealthy := false
		if !node.Ready {
			unhealthy = true
			verdict.CriticalIssues = append(verdict.CriticalIssues,
				fmt.Sprintf("node %s is not ready", node.Name))
		}
		for _, cond := range conditionOrder {
			if node.Conditions[cond] {
				unhealthy = true
				verdict.CriticalIssues = append(verdict.CriticalIssues,
					fmt.Sprintf("node %s has condition %s", node.Name, cond))
			}
		}
		if unhealthy {
			verdict.UnhealthyNodes++
			triggered["unhealthy_nodes"] = true
		} else {
			verdict.HealthyNodes++
		}
	}

	if verdict.NodeCount == 0 {
		verdict.CriticalIssues = append(verdict.CriticalIssues, "no nodes reported")
	}

	// Pod pass, single traversal
	verdict.TotalPods = len(snapshot.Pods)
	for _, pod := range snapshot.Pods {
		switch pod.Phase {
		case models.PodRunning:
			verdict.RunningPods++
		case models.PodPending:
			verdict.PendingPods++
		case models.PodFailed:
			verdict.FailedPods++
			verdict.CriticalIssues = append(verdict.CriticalIssues,
				fmt.Sprintf("pod %s/%s is in failed state", pod.Namespace, pod.Name))
			triggered["failed_pods"] = true
		}

		if pod.RestartCount > cfg.RestartThreshold {
			verdict.Warnings = append(verdict.Warnings,
				fmt.Sprintf("%s/%s has %d restarts", pod.Namespace, pod.Name, pod.RestartCount))
			degradedSignals++
			triggered["high_restarts"] = true
		}

		if pod.Phase == models.PodPending && pod.PendingDurationSeconds > cfg.PendingWarnSeconds {
			verdict.Warnings = append(verdict.Warnings,
				fmt.Sprintf("%s/%s pending for %ds", pod.Namespace, pod.Name, pod.PendingDurationSeconds))
			degradedSignals++
			triggered["pending_pods"] = true
		}
	}

	// Utilization pass
	if snapshot.MetricsAvailable {
		for _, node := range snapshot.Nodes {
			if node.CPUUtilizationPct > cfg.CPUWarnPct {
				verdict.Warnings = append(verdict.Warnings,
					fmt.Sprintf("node %s CPU utilization at %.1f%%", node.Name, node.CPUUtilizationPct))
				degradedSignals++
				triggered["high_utilization"] = true
			}
			if node.MemoryUtilizationPct > cfg.MemWarnPct {
				verdict.Warnings = append(verdict.Warnings,
					fmt.Sprintf("node %s memory utilization at %.1f%%", node.Name, node.MemoryUtilizationPct))
				degradedSignals++
				triggered["high_utilization"] = true
			}
		}
	} else {
		verdict.Warnings = append(verdict.Warnings, "resource metrics unavailable; utilization checks skipped")
	}

	// Severity resolution: Critical over Degraded over Healthy.
	switch {
	case verdict.UnhealthyNodes > 0 || verdict.FailedPods > 0 || verdict.NodeCount == 0:
		verdict.OverallStatus = models.StatusCritical
	case degradedSignals > 0:
		verdict.OverallStatus = models.StatusDegraded
	default:
		verdict.OverallStatus = models.StatusHealthy
	}

	if includeRecommendations {
		verdict.Recommendations = synthesizeRecommendations(triggered)
	}

	return verdict, nil
}

// synthesizeRecommendations maps triggered condition categories to fixed
// advisory strings in a deterministic order.
func synthesizeRecommendations(triggered map[string]bool) []string {
	recs := []string{}
	if triggered["unhealthy_nodes"] {
		recs = append(recs, recUnhealthyNodes)
	}
	if triggered["failed_pods"] {
		recs = append(recs, recFailedPods)
	}
	if triggered["high_restarts"] {
		recs = append(recs, recHighRestarts)
	}
	if triggered["pending_pods"] {
		recs = append(recs, recPendingPods)
	}
	if triggered["high_utilization"] {
		recs = append(recs, recHighUtilization)
	}
	return recs
}
