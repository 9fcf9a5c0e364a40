// Package report renders health verdicts into markdown, JSON, or YAML
// documents. All three encodings carry identical semantic content; only
// syntax differs, and field order is fixed so output is byte-stable for a
// given input.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kubepulse/kubepulse/internal/models"
)

// Format is the closed set of supported report encodings.
type Format int

const (
	FormatMarkdown Format = iota
	FormatJSON
	FormatYAML
)

// ParseFormat converts a format string to a Format. Unknown strings are
// rejected with an InvalidRequestError naming the field.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatMarkdown, models.NewInvalidRequestError("format",
			"unknown report format %q (must be one of: markdown, json, yaml)", s)
	}
}

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "markdown"
	}
}

// document is the serialized shape of a report. Field order here is the
// field order of the output.
type document struct {
	OverallStatus models.HealthStatus `json:"overall_status" yaml:"overall_status"`

	NodeCount      int `json:"node_count" yaml:"node_count"`
	HealthyNodes   int `json:"healthy_nodes" yaml:"healthy_nodes"`
	UnhealthyNodes int `json:"unhealthy_nodes" yaml:"unhealthy_nodes"`

	TotalPods   int `json:"total_pods" yaml:"total_pods"`
	RunningPods int `json:"running_pods" yaml:"running_pods"`
	PendingPods int `json:"pending_pods" yaml:"pending_pods"`
	FailedPods  int `json:"failed_pods" yaml:"failed_pods"`

	CriticalIssues []string `json:"critical_issues" yaml:"critical_issues"`
	Warnings       []string `json:"warnings" yaml:"warnings"`

	// Recommendations is a pointer so that the field is omitted entirely,
	// not rendered as an empty sequence, when not requested.
	Recommendations *[]string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`

	Autoscaler *models.AutoscalerStatus `json:"autoscaler,omitempty" yaml:"autoscaler,omitempty"`
	GitOps     *models.SyncStatus       `json:"gitops,omitempty" yaml:"gitops,omitempty"`
}

// Render produces a report document for the verdict in the requested format.
// The autoscaler and gitops sections are optional and appear after the
// verdict fields when present.
func Render(verdict *models.HealthVerdict, autoscalerStatus *models.AutoscalerStatus, gitopsStatus *models.SyncStatus, format Format, includeRecommendations bool) (string, error) {
	if verdict == nil {
		return "", models.NewInvalidRequestError("verdict", "verdict must not be nil")
	}

	doc := document{
		OverallStatus:  verdict.OverallStatus,
		NodeCount:      verdict.NodeCount,
		HealthyNodes:   verdict.HealthyNodes,
		UnhealthyNodes: verdict.UnhealthyNodes,
		TotalPods:      verdict.TotalPods,
		RunningPods:    verdict.RunningPods,
		PendingPods:    verdict.PendingPods,
		FailedPods:     verdict.FailedPods,
		CriticalIssues: emptyIfNil(verdict.CriticalIssues),
		Warnings:       emptyIfNil(verdict.Warnings),
		Autoscaler:     autoscalerStatus,
		GitOps:         gitopsStatus,
	}
	if includeRecommendations {
		recs := emptyIfNil(verdict.Recommendations)
		doc.Recommendations = &recs
	}

	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode json report: %w", err)
		}
		return string(out) + "\n", nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return string(out), nil
	case FormatMarkdown:
		return renderMarkdown(doc), nil
	default:
		return "", models.NewInvalidRequestError("format", "unknown report format %d", format)
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
