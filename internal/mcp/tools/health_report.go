package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kubepulse/kubepulse/internal/autoscaler"
	"github.com/kubepulse/kubepulse/internal/config"
	"github.com/kubepulse/kubepulse/internal/gitops"
	"github.com/kubepulse/kubepulse/internal/health"
	"github.com/kubepulse/kubepulse/internal/models"
	"github.com/kubepulse/kubepulse/internal/report"
	"github.com/kubepulse/kubepulse/internal/snapshot"
)

// HealthReportTool implements the generate_health_report MCP tool
type HealthReportTool struct {
	provider snapshot.Provider
	cfg      config.EvaluationConfig
}

// NewHealthReportTool creates a new health report tool
func NewHealthReportTool(provider snapshot.Provider, cfg config.EvaluationConfig) *HealthReportTool {
	return &HealthReportTool{
		provider: provider,
		cfg:      cfg,
	}
}

// HealthReportInput represents the input for the generate_health_report tool
type HealthReportInput struct {
	// Format is one of markdown, json, yaml. Defaults to markdown.
	Format string `json:"format,omitempty"`
	// IncludeRecommendations defaults to true when omitted.
	IncludeRecommendations *bool `json:"include_recommendations,omitempty"`
}

// Execute runs the generate_health_report tool. It returns the rendered
// document as a string so the MCP layer passes it through verbatim.
func (t *HealthReportTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params HealthReportInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	// Reject unknown formats before touching the cluster.
	formatName := params.Format
	if formatName == "" {
		formatName = "markdown"
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	includeRecommendations := boolOrDefault(params.IncludeRecommendations, true)

	snap, err := t.provider.FetchSnapshot(ctx, snapshot.NamespaceAll)
	if err != nil {
		return nil, fmt.Errorf("failed to capture cluster snapshot: %w", err)
	}

	// The three analyzers are pure over the immutable snapshot and
	// independent of each other; run them concurrently and join before
	// rendering.
	var (
		verdict          *models.HealthVerdict
		autoscalerStatus *models.AutoscalerStatus
		gitopsStatus     *models.SyncStatus
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := health.Evaluate(snap, t.cfg, includeRecommendations)
		if err != nil {
			return fmt.Errorf("health evaluation failed: %w", err)
		}
		verdict = v
		return nil
	})
	g.Go(func() error {
		autoscalerStatus = autoscaler.Analyze(snap)
		return nil
	})
	g.Go(func() error {
		gitopsStatus = gitops.Analyze(snap)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rendered, err := report.Render(verdict, autoscalerStatus, gitopsStatus, format, includeRecommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return rendered, nil
}
