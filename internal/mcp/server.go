// Package mcp exposes the cluster health analysis as an MCP tool surface.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kubepulse/kubepulse/internal/config"
	"github.com/kubepulse/kubepulse/internal/mcp/tools"
	"github.com/kubepulse/kubepulse/internal/observability"
	"github.com/kubepulse/kubepulse/internal/remediation"
	"github.com/kubepulse/kubepulse/internal/snapshot"
)

// Tool defines the interface for our tool implementations
type Tool interface {
	Execute(ctx context.Context, input json.RawMessage) (interface{}, error)
}

// KubePulseServer wraps the mcp-go server with kubepulse-specific logic
type KubePulseServer struct {
	mcpServer *server.MCPServer
	provider  snapshot.Provider
	tools     map[string]Tool
	metrics   *observability.Metrics
	version   string
}

// ServerOptions configures the kubepulse MCP server
type ServerOptions struct {
	Provider    snapshot.Provider
	Version     string
	Evaluation  config.EvaluationConfig
	Remediation config.RemediationDefaults

	// Metrics is optional; when nil, tool calls are not instrumented.
	Metrics *observability.Metrics
}

// NewKubePulseServer creates a new kubepulse MCP server
func NewKubePulseServer(opts ServerOptions) (*KubePulseServer, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("snapshot provider is required")
	}

	mcpServer := server.NewMCPServer(
		"KubePulse MCP Server",
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	s := &KubePulseServer{
		mcpServer: mcpServer,
		provider:  snapshot.Instrument(opts.Provider, opts.Metrics),
		tools:     make(map[string]Tool),
		metrics:   opts.Metrics,
		version:   opts.Version,
	}

	s.registerTools(opts)
	s.registerPrompts()

	return s, nil
}

func (s *KubePulseServer) registerTools(opts ServerOptions) {
	// Register cluster_health_check tool
	s.registerTool(
		"cluster_health_check",
		"Perform comprehensive cluster health analysis",
		tools.NewClusterHealthTool(s.provider, opts.Evaluation),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"include_recommendations": map[string]interface{}{
					"type":        "boolean",
					"description": "Include recommendations in the analysis",
					"default":     true,
				},
			},
		},
	)

	// Register get_nodes_status tool
	s.registerTool(
		"get_nodes_status",
		"Get detailed information about cluster nodes",
		tools.NewNodesStatusTool(s.provider),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"include_metrics": map[string]interface{}{
					"type":        "boolean",
					"description": "Include resource usage metrics",
					"default":     true,
				},
			},
		},
	)

	// Register get_pods_status tool
	s.registerTool(
		"get_pods_status",
		"Get detailed information about pods",
		tools.NewPodsStatusTool(s.provider),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"namespace": map[string]interface{}{
					"type":        "string",
					"description": "Specific namespace to query (default: all)",
					"default":     "all",
				},
			},
		},
	)

	// Register analyze_karpenter tool
	s.registerTool(
		"analyze_karpenter",
		"Analyze Karpenter autoscaler status and configuration",
		tools.NewKarpenterTool(s.provider),
		map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	)

	// Register get_argocd_status tool
	s.registerTool(
		"get_argocd_status",
		"Get ArgoCD applications status",
		tools.NewArgoCDTool(s.provider),
		map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	)

	// Register generate_health_report tool
	s.registerTool(
		"generate_health_report",
		"Generate comprehensive cluster health report",
		tools.NewHealthReportTool(s.provider, opts.Evaluation),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"json", "markdown", "yaml"},
					"description": "Report format",
					"default":     "markdown",
				},
				"include_recommendations": map[string]interface{}{
					"type":        "boolean",
					"description": "Include recommendations",
					"default":     true,
				},
			},
		},
	)

	// Register create_resource_fixes tool
	s.registerTool(
		"create_resource_fixes",
		"Generate Kubernetes manifests to fix resource issues",
		tools.NewResourceFixesTool(remediation.NewGenerator(opts.Remediation)),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"issue_type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"resource_limits", "hpa", "pdb", "node_affinity"},
					"description": "Type of resource issue to fix",
				},
				"target": map[string]interface{}{
					"type":        "string",
					"description": "Target resource (deployment, pod, etc.)",
				},
				"namespace": map[string]interface{}{
					"type":        "string",
					"description": "Target namespace",
					"default":     "default",
				},
			},
			"required": []string{"issue_type", "target"},
		},
	)
}

func (s *KubePulseServer) registerTool(name, description string, tool Tool, inputSchema map[string]interface{}) {
	s.tools[name] = tool

	schemaJSON, err := json.Marshal(inputSchema)
	if err != nil {
		// This should never happen with well-formed schemas
		panic(fmt.Sprintf("Failed to marshal schema for tool %s: %v", name, err))
	}

	mcpTool := mcp.NewToolWithRawSchema(name, description, schemaJSON)
	s.mcpServer.AddTool(mcpTool, s.createToolHandler(name, tool))
}

func (s *KubePulseServer) createToolHandler(name string, tool Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		if s.metrics != nil {
			s.metrics.ToolCallsTotal.WithLabelValues(name).Inc()
			defer func() {
				s.metrics.ToolCallDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			}()
		}

		args, err := json.Marshal(request.Params.Arguments)
		if err != nil {
			s.countError(name)
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		result, err := tool.Execute(ctx, args)
		if err != nil {
			s.countError(name)
			return mcp.NewToolResultError(fmt.Sprintf("Tool execution failed: %v", err)), nil
		}

		// Rendered documents and manifests pass through verbatim.
		if text, ok := result.(string); ok {
			return mcp.NewToolResultText(text), nil
		}

		resultJSON, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			s.countError(name)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func (s *KubePulseServer) countError(name string) {
	if s.metrics != nil {
		s.metrics.ToolErrorsTotal.WithLabelValues(name).Inc()
	}
}

func (s *KubePulseServer) registerPrompts() {
	// Register cluster triage prompt
	triagePrompt := mcp.Prompt{
		Name:        "cluster_health_triage",
		Description: "Triage the current health of the cluster and propose fixes",
		Arguments: []mcp.PromptArgument{
			{Name: "namespace", Description: "Optional Kubernetes namespace to focus on", Required: false},
			{Name: "symptoms", Description: "Optional brief description of observed symptoms", Required: false},
		},
	}

	s.mcpServer.AddPrompt(triagePrompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		namespace := request.Params.Arguments["namespace"]
		symptoms := request.Params.Arguments["symptoms"]

		text := "Run cluster_health_check and generate_health_report to assess the cluster. " +
			"For any critical issues, use create_resource_fixes to propose manifests."
		if namespace != "" {
			text += fmt.Sprintf(" Focus on namespace: %s", namespace)
		}
		if symptoms != "" {
			text += fmt.Sprintf(" Reported symptoms: %s", symptoms)
		}

		messages := []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		}

		return &mcp.GetPromptResult{
			Description: "Cluster health triage workflow",
			Messages:    messages,
		}, nil
	})
}

// GetMCPServer returns the underlying mcp-go server for transport setup
func (s *KubePulseServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}
