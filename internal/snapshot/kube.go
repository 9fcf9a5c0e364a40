package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/kubepulse/kubepulse/internal/logging"
	"github.com/kubepulse/kubepulse/internal/models"
)

var (
	nodePoolGVR    = schema.GroupVersionResource{Group: "karpenter.sh", Version: "v1", Resource: "nodepools"}
	provisionerGVR = schema.GroupVersionResource{Group: "karpenter.sh", Version: "v1alpha5", Resource: "provisioners"}
	applicationGVR = schema.GroupVersionResource{Group: "argoproj.io", Version: "v1alpha1", Resource: "applications"}
)

// KubeProvider fetches snapshots from a live cluster through the Kubernetes
// API: typed clients for nodes, pods, and usage metrics, and a dynamic
// client for the autoscaler and GitOps CRDs.
type KubeProvider struct {
	client        kubernetes.Interface
	metricsClient metricsclient.Interface
	dynamicClient dynamic.Interface
	logger        *logging.Logger
}

// NewKubeProvider creates a provider from the given kubeconfig path.
// An empty path tries in-cluster config first, then the default kubeconfig
// location.
func NewKubeProvider(kubeconfigPath string) (*KubeProvider, error) {
	restConfig, err := buildClientConfig(kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build Kubernetes client config: %w", err)
	}

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	mc, err := metricsclient.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}

	dc, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	return &KubeProvider{
		client:        client,
		metricsClient: mc,
		dynamicClient: dc,
		logger:        logging.GetLogger("snapshot"),
	}, nil
}

// FetchSnapshot implements Provider.
func (p *KubeProvider) FetchSnapshot(ctx context.Context, namespace string) (*models.ClusterSnapshot, error) {
	capturedAt := time.Now().UTC()

	ns := namespace
	if ns == NamespaceAll {
		ns = metav1.NamespaceAll
	}

	// The node and pod lists are required; a failure on either aborts the
	// capture. The remaining sources are optional and only degrade it.
	var (
		nodeList *corev1.NodeList
		podList  *corev1.PodList

		usage               map[string]nodeUsageSample
		autoscalerResources []models.AutoscalerResource
		apps                []models.GitOpsApplication

		usageErr      error
		autoscalerErr error
		gitopsErr     error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := p.client.CoreV1().Nodes().List(gctx, metav1.ListOptions{})
		if err != nil {
			return models.NewConnectivityError("failed to list nodes", err)
		}
		nodeList = list
		return nil
	})
	g.Go(func() error {
		list, err := p.client.CoreV1().Pods(ns).List(gctx, metav1.ListOptions{})
		if err != nil {
			return models.NewConnectivityError("failed to list pods", err)
		}
		podList = list
		return nil
	})
	g.Go(func() error {
		usage, usageErr = p.nodeUsage(gctx)
		return nil
	})
	g.Go(func() error {
		autoscalerResources, autoscalerErr = p.autoscalerResources(gctx)
		return nil
	})
	g.Go(func() error {
		apps, gitopsErr = p.gitopsApplications(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &models.ClusterSnapshot{
		ID:         uuid.NewString(),
		CapturedAt: capturedAt,
	}

	if usageErr != nil {
		p.logger.Warn("%v", models.NewPartialDataError("metrics server", usageErr))
	} else {
		snap.MetricsAvailable = true
	}

	snap.Nodes = make([]models.NodeInfo, 0, len(nodeList.Items))
	for i := range nodeList.Items {
		snap.Nodes = append(snap.Nodes, nodeToInfo(&nodeList.Items[i], usage))
	}

	snap.Pods = make([]models.PodInfo, 0, len(podList.Items))
	for i := range podList.Items {
		snap.Pods = append(snap.Pods, podToInfo(&podList.Items[i], capturedAt))
	}

	if autoscalerErr != nil {
		p.logger.Warn("%v", models.NewPartialDataError("autoscaler resources", autoscalerErr))
	} else {
		snap.AutoscalerResources = autoscalerResources
	}

	if gitopsErr != nil {
		p.logger.Warn("%v", models.NewPartialDataError("gitops applications", gitopsErr))
	} else {
		snap.GitOpsApplications = apps
	}

	p.logger.InfoWithFields("snapshot captured",
		logging.Field("snapshot_id", snap.ID),
		logging.Field("nodes", len(snap.Nodes)),
		logging.Field("pods", len(snap.Pods)),
		logging.Field("metrics", snap.MetricsAvailable),
	)
	return snap, nil
}

// nodeUsage returns per-node CPU/memory usage from the metrics server.
func (p *KubeProvider) nodeUsage(ctx context.Context) (map[string]nodeUsageSample, error) {
	list, err := p.metricsClient.MetricsV1beta1().NodeMetricses().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	usage := make(map[string]nodeUsageSample, len(list.Items))
	for _, item := range list.Items {
		usage[item.Name] = nodeUsageSample{
			cpu:    item.Usage.Cpu().MilliValue(),
			memory: item.Usage.Memory().Value(),
		}
	}
	return usage, nil
}

// autoscalerResources lists Karpenter NodePools, falling back to the legacy
// Provisioner API. A nil slice with nil error never happens: absence of both
// CRDs is reported as an error the caller degrades on.
func (p *KubeProvider) autoscalerResources(ctx context.Context) ([]models.AutoscalerResource, error) {
	list, err := p.dynamicClient.Resource(nodePoolGVR).List(ctx, metav1.ListOptions{})
	if err == nil {
		resources := make([]models.AutoscalerResource, 0, len(list.Items))
		for i := range list.Items {
			resources = append(resources, autoscalerFromUnstructured(&list.Items[i], models.AutoscalerKindNodePool))
		}
		return resources, nil
	}
	if !isResourceAbsent(err) {
		return nil, err
	}

	list, err = p.dynamicClient.Resource(provisionerGVR).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	resources := make([]models.AutoscalerResource, 0, len(list.Items))
	for i := range list.Items {
		resources = append(resources, autoscalerFromUnstructured(&list.Items[i], models.AutoscalerKindProvisioner))
	}
	return resources, nil
}

// gitopsApplications lists ArgoCD Applications across all namespaces.
func (p *KubeProvider) gitopsApplications(ctx context.Context) ([]models.GitOpsApplication, error) {
	list, err := p.dynamicClient.Resource(applicationGVR).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	apps := make([]models.GitOpsApplication, 0, len(list.Items))
	for i := range list.Items {
		apps = append(apps, applicationFromUnstructured(&list.Items[i]))
	}
	return apps, nil
}

// isResourceAbsent reports whether the error means the CRD is not installed.
func isResourceAbsent(err error) bool {
	return apierrors.IsNotFound(err)
}

// buildClientConfig builds the Kubernetes client config
func buildClientConfig(kubeconfigPath string) (*rest.Config, error) {
	if kubeconfigPath != "" {
		return clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	}

	// Try in-cluster config first
	config, err := rest.InClusterConfig()
	if err == nil {
		return config, nil
	}

	// Fall back to the default kubeconfig location
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("no in-cluster config and no home directory: %w", err)
	}
	return clientcmd.BuildConfigFromFlags("", filepath.Join(home, ".kube", "config"))
}
