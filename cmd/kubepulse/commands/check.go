package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kubepulse/kubepulse/internal/autoscaler"
	"github.com/kubepulse/kubepulse/internal/gitops"
	"github.com/kubepulse/kubepulse/internal/health"
	"github.com/kubepulse/kubepulse/internal/logging"
	"github.com/kubepulse/kubepulse/internal/models"
	"github.com/kubepulse/kubepulse/internal/report"
	"github.com/kubepulse/kubepulse/internal/snapshot"
)

var (
	checkFormat          string
	checkRecommendations bool
	checkNamespace       string
	checkTimeout         time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a one-shot cluster health check",
	Long: `Capture a cluster snapshot, classify its health, and print a report.

The exit code reflects the verdict: 0 for Healthy, 1 for Degraded,
2 for Critical.`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "markdown", "Report format: markdown, json, or yaml")
	checkCmd.Flags().BoolVar(&checkRecommendations, "recommendations", true, "Include recommendations in the report")
	checkCmd.Flags().StringVar(&checkNamespace, "namespace", snapshot.NamespaceAll, "Namespace to inspect pods in ('all' for all namespaces)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "Timeout for the cluster snapshot capture")
}

func runCheck(cmd *cobra.Command, args []string) {
	if err := setupLog(); err != nil {
		HandleError(err, "Failed to setup logging")
	}
	logger := logging.GetLogger("check")

	format, err := report.ParseFormat(checkFormat)
	HandleError(err, "Invalid format")

	evaluation, _, err := loadThresholds()
	HandleError(err, "Failed to load thresholds")

	provider, err := snapshot.NewKubeProvider(kubeconfigPath)
	HandleError(err, "Failed to create Kubernetes snapshot provider")

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	snap, err := provider.FetchSnapshot(ctx, checkNamespace)
	HandleError(err, "Failed to capture cluster snapshot")

	verdict, err := health.Evaluate(snap, evaluation, checkRecommendations)
	HandleError(err, "Health evaluation failed")

	rendered, err := report.Render(verdict,
		autoscaler.Analyze(snap), gitops.Analyze(snap),
		format, checkRecommendations)
	HandleError(err, "Failed to render report")

	fmt.Println(rendered)

	switch verdict.OverallStatus {
	case models.StatusHealthy:
	case models.StatusDegraded:
		os.Exit(1)
	case models.StatusCritical:
		os.Exit(2)
	}
	logger.Debug("check finished: %s", verdict.OverallStatus)
}
