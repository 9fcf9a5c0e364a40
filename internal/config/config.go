package config

// Config holds process-level configuration for the kubepulse server.
type Config struct {
	// LogLevel is the logging level (debug, info, warn, error)
	LogLevel string

	// Transport selects the MCP transport: "http" or "stdio"
	Transport string

	// HTTPAddr is the address the HTTP transport listens on
	HTTPAddr string

	// MCPEndpointPath is the HTTP endpoint path for MCP requests
	MCPEndpointPath string

	// Kubeconfig is the path to a kubeconfig file. Empty means in-cluster
	// config with a fallback to the default kubeconfig location.
	Kubeconfig string

	// Evaluation holds the health classification thresholds
	Evaluation EvaluationConfig

	// Remediation holds the manifest template defaults
	Remediation RemediationDefaults
}

// EvaluationConfig holds the thresholds used by the health evaluator.
// It is constructed once and passed into every evaluation call; there is
// no ambient global state.
type EvaluationConfig struct {
	// RestartThreshold is the restart count above which a pod earns a warning
	RestartThreshold int `koanf:"restart_threshold"`

	// PendingWarnSeconds is how long a pod may stay Pending before a warning
	PendingWarnSeconds int64 `koanf:"pending_warn_seconds"`

	// CPUWarnPct is the node CPU utilization percentage that earns a warning
	CPUWarnPct float64 `koanf:"cpu_warn_pct"`

	// MemWarnPct is the node memory utilization percentage that earns a warning
	MemWarnPct float64 `koanf:"mem_warn_pct"`
}

// RemediationDefaults holds the fixed output values of the remediation
// templates. They are configuration, not request parameters.
type RemediationDefaults struct {
	HPAMinReplicas      int32 `koanf:"hpa_min_replicas"`
	HPAMaxReplicas      int32 `koanf:"hpa_max_replicas"`
	HPATargetCPUPercent int32 `koanf:"hpa_target_cpu_percent"`
	PDBMinAvailable     int32 `koanf:"pdb_min_available"`

	LimitCPU      string `koanf:"limit_cpu"`
	LimitMemory   string `koanf:"limit_memory"`
	RequestCPU    string `koanf:"request_cpu"`
	RequestMemory string `koanf:"request_memory"`
}

// DefaultEvaluationConfig returns the stock classification thresholds.
func DefaultEvaluationConfig() EvaluationConfig {
	return EvaluationConfig{
		RestartThreshold:   5,
		PendingWarnSeconds: 300,
		CPUWarnPct:         80,
		MemWarnPct:         85,
	}
}

// DefaultRemediationDefaults returns the stock template values.
func DefaultRemediationDefaults() RemediationDefaults {
	return RemediationDefaults{
		HPAMinReplicas:      2,
		HPAMaxReplicas:      10,
		HPATargetCPUPercent: 70,
		PDBMinAvailable:     1,
		LimitCPU:            "500m",
		LimitMemory:         "512Mi",
		RequestCPU:          "100m",
		RequestMemory:       "128Mi",
	}
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "info",
		Transport:       "http",
		HTTPAddr:        ":8082",
		MCPEndpointPath: "/mcp",
		Evaluation:      DefaultEvaluationConfig(),
		Remediation:     DefaultRemediationDefaults(),
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Transport != "http" && c.Transport != "stdio" {
		return NewConfigError("Transport must be 'http' or 'stdio'")
	}
	if c.Transport == "http" && c.HTTPAddr == "" {
		return NewConfigError("HTTPAddr must not be empty when Transport is http")
	}
	if err := c.Evaluation.Validate(); err != nil {
		return err
	}
	if err := c.Remediation.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks that the evaluation thresholds are usable.
func (e *EvaluationConfig) Validate() error {
	if e.RestartThreshold < 0 {
		return NewConfigError("RestartThreshold must not be negative")
	}
	if e.PendingWarnSeconds < 0 {
		return NewConfigError("PendingWarnSeconds must not be negative")
	}
	if e.CPUWarnPct <= 0 || e.CPUWarnPct > 100 {
		return NewConfigError("CPUWarnPct must be in (0, 100]")
	}
	if e.MemWarnPct <= 0 || e.MemWarnPct > 100 {
		return NewConfigError("MemWarnPct must be in (0, 100]")
	}
	return nil
}

// Validate checks that the remediation defaults are usable.
func (r *RemediationDefaults) Validate() error {
	if r.HPAMinReplicas < 1 {
		return NewConfigError("HPAMinReplicas must be at least 1")
	}
	if r.HPAMaxReplicas < r.HPAMinReplicas {
		return NewConfigError("HPAMaxReplicas must be >= HPAMinReplicas")
	}
	if r.HPATargetCPUPercent < 1 || r.HPATargetCPUPercent > 100 {
		return NewConfigError("HPATargetCPUPercent must be between 1 and 100")
	}
	if r.PDBMinAvailable < 0 {
		return NewConfigError("PDBMinAvailable must not be negative")
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return e.message
}
