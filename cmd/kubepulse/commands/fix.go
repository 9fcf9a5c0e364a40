package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubepulse/kubepulse/internal/models"
	"github.com/kubepulse/kubepulse/internal/remediation"
)

var (
	fixIssueType string
	fixTarget    string
	fixNamespace string
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Generate a remediation manifest",
	Long: `Generate a Kubernetes manifest addressing a resource issue.

Issue types:
  resource_limits  LimitRange with default container limits and requests
  hpa              HorizontalPodAutoscaler targeting the named Deployment
  pdb              PodDisruptionBudget selecting app=<target>
  node_affinity    strategic-merge patch preferring on-demand capacity`,
	Run: runFix,
}

func init() {
	fixCmd.Flags().StringVar(&fixIssueType, "issue-type", "", "Issue type: resource_limits, hpa, pdb, or node_affinity")
	fixCmd.Flags().StringVar(&fixTarget, "target", "", "Target resource name")
	fixCmd.Flags().StringVar(&fixNamespace, "namespace", "default", "Target namespace")
	_ = fixCmd.MarkFlagRequired("issue-type")
	_ = fixCmd.MarkFlagRequired("target")
}

func runFix(cmd *cobra.Command, args []string) {
	if err := setupLog(); err != nil {
		HandleError(err, "Failed to setup logging")
	}

	_, remediationDefaults, err := loadThresholds()
	HandleError(err, "Failed to load thresholds")

	generator := remediation.NewGenerator(remediationDefaults)
	manifest, err := generator.Generate(models.RemediationRequest{
		IssueType:  models.IssueType(fixIssueType),
		TargetName: fixTarget,
		Namespace:  fixNamespace,
	})
	HandleError(err, "Failed to generate manifest")

	fmt.Print(manifest)
}
