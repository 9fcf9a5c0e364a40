package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kubepulse/kubepulse/internal/models"
	"github.com/kubepulse/kubepulse/internal/remediation"
)

// ResourceFixesTool implements the create_resource_fixes MCP tool
type ResourceFixesTool struct {
	generator *remediation.Generator
}

// NewResourceFixesTool creates a new resource fixes tool
func NewResourceFixesTool(generator *remediation.Generator) *ResourceFixesTool {
	return &ResourceFixesTool{
		generator: generator,
	}
}

// ResourceFixesInput represents the input for the create_resource_fixes tool
type ResourceFixesInput struct {
	IssueType string `json:"issue_type"`
	Target    string `json:"target"`
	Namespace string `json:"namespace,omitempty"`
}

// Execute runs the create_resource_fixes tool. It returns manifest text as
// a string so the MCP layer passes it through verbatim.
func (t *ResourceFixesTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params ResourceFixesInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	namespace := params.Namespace
	if namespace == "" {
		namespace = "default"
	}

	manifest, err := t.generator.Generate(models.RemediationRequest{
		IssueType:  models.IssueType(params.IssueType),
		TargetName: params.Target,
		Namespace:  namespace,
	})
	if err != nil {
		return nil, err
	}
	return manifest, nil
}
