package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// thresholdsFile is the on-disk shape of an evaluation/remediation
// overrides file:
//
//	evaluation:
//	  restart_threshold: 5
//	  pending_warn_seconds: 300
//	  cpu_warn_pct: 80
//	  mem_warn_pct: 85
//	remediation:
//	  hpa_min_replicas: 2
//	  ...
type thresholdsFile struct {
	Evaluation  EvaluationConfig    `koanf:"evaluation"`
	Remediation RemediationDefaults `koanf:"remediation"`
}

// LoadThresholds loads evaluation thresholds and remediation defaults from a
// YAML file using Koanf, starting from the stock defaults so that partial
// files only override the keys they name.
func LoadThresholds(filepath string) (EvaluationConfig, RemediationDefaults, error) {
	cfg := thresholdsFile{
		Evaluation:  DefaultEvaluationConfig(),
		Remediation: DefaultRemediationDefaults(),
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(filepath), yaml.Parser()); err != nil {
		return cfg.Evaluation, cfg.Remediation, fmt.Errorf("failed to load thresholds config from %q: %w", filepath, err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg.Evaluation, cfg.Remediation, fmt.Errorf("failed to parse thresholds config from %q: %w", filepath, err)
	}

	if err := cfg.Evaluation.Validate(); err != nil {
		return cfg.Evaluation, cfg.Remediation, fmt.Errorf("thresholds config validation failed for %q: %w", filepath, err)
	}
	if err := cfg.Remediation.Validate(); err != nil {
		return cfg.Evaluation, cfg.Remediation, fmt.Errorf("thresholds config validation failed for %q: %w", filepath, err)
	}

	return cfg.Evaluation, cfg.Remediation, nil
}
