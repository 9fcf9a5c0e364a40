package report

import (
	"fmt"
	"strings"

	"github.com/kubepulse/kubepulse/internal/models"
)

// renderMarkdown writes the report with fixed section headers, mirroring the
// field order of the json/yaml encodings.
func renderMarkdown(doc document) string {
	var b strings.Builder

	b.WriteString("# Cluster Health Report\n\n")
	fmt.Fprintf(&b, "## Overall Status: %s\n\n", doc.OverallStatus)

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- **Nodes**: %d total (%d healthy, %d unhealthy)\n",
		doc.NodeCount, doc.HealthyNodes, doc.UnhealthyNodes)
	fmt.Fprintf(&b, "- **Pods**: %d total (%d running, %d pending, %d failed)\n",
		doc.TotalPods, doc.RunningPods, doc.PendingPods, doc.FailedPods)

	b.WriteString("\n## Critical Issues\n")
	writeList(&b, doc.CriticalIssues, "no critical issues detected")

	b.WriteString("\n## Warnings\n")
	writeList(&b, doc.Warnings, "no warnings")

	if doc.Recommendations != nil {
		b.WriteString("\n## Recommendations\n")
		writeList(&b, *doc.Recommendations, "no recommendations")
	}

	if doc.Autoscaler != nil {
		b.WriteString("\n## Autoscaler\n")
		writeAutoscaler(&b, doc.Autoscaler)
	}

	if doc.GitOps != nil {
		b.WriteString("\n## GitOps\n")
		writeGitOps(&b, doc.GitOps)
	}

	return b.String()
}

func writeList(b *strings.Builder, items []string, emptyNote string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "- %s\n", emptyNote)
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeAutoscaler(b *strings.Builder, status *models.AutoscalerStatus) {
	if !status.Installed {
		b.WriteString("- not installed\n")
		return
	}
	fmt.Fprintf(b, "- **Resources**: %d\n", status.ResourceCount)
	// Fixed iteration order for byte-stable output.
	for _, ct := range []models.CapacityType{models.CapacityTypeSpot, models.CapacityTypeOnDemand, models.CapacityTypeUnknown} {
		if n := status.CapacityTypeDistribution[ct]; n > 0 {
			fmt.Fprintf(b, "- **Capacity %s**: %d\n", ct, n)
		}
	}
	for _, m := range status.Misconfigured {
		fmt.Fprintf(b, "- misconfigured: %s\n", m)
	}
}

func writeGitOps(b *strings.Builder, status *models.SyncStatus) {
	if !status.Installed {
		b.WriteString("- not installed\n")
		return
	}
	fmt.Fprintf(b, "- **Applications**: %d (%d healthy)\n", status.AppCount, status.HealthyApps)
	for _, name := range status.OutOfSyncApps {
		fmt.Fprintf(b, "- out of sync: %s\n", name)
	}
	for _, name := range status.DegradedApps {
		fmt.Fprintf(b, "- degraded: %s\n", name)
	}
}
