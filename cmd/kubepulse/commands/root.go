package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kubepulse/kubepulse/internal/config"
	"github.com/kubepulse/kubepulse/internal/logging"
)

const Version = "0.1.0"

var (
	logLevel       string
	kubeconfigPath string
	thresholdsPath string
)

var rootCmd = &cobra.Command{
	Use:   "kubepulse",
	Short: "KubePulse - Kubernetes Cluster Health Analysis",
	Long: `KubePulse analyzes the health of a Kubernetes cluster: node and pod
state, Karpenter autoscaler configuration, and ArgoCD application sync
status. It renders reports, proposes remediation manifests, and exposes
the whole surface as MCP tools for AI assistants.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", getEnv("LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringVar(&kubeconfigPath, "kubeconfig", os.Getenv("KUBECONFIG"),
		"Path to kubeconfig file (default: in-cluster config, then ~/.kube/config)")
	rootCmd.PersistentFlags().StringVar(&thresholdsPath, "thresholds", "",
		"Path to a YAML file overriding evaluation thresholds and remediation defaults")

	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
}

// HandleError prints error and exits
func HandleError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}

// setupLog initializes the logging system from the --log-level flag
func setupLog() error {
	return logging.Initialize(logLevel)
}

// loadThresholds returns the evaluation and remediation settings, applying
// overrides from the --thresholds file when one is given.
func loadThresholds() (config.EvaluationConfig, config.RemediationDefaults, error) {
	if thresholdsPath == "" {
		return config.DefaultEvaluationConfig(), config.DefaultRemediationDefaults(), nil
	}
	return config.LoadThresholds(thresholdsPath)
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
