package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pathscope/pathscope/pkg/classify"
	"github.com/pathscope/pathscope/pkg/mediation"
	"github.com/pathscope/pathscope/pkg/reach"
	"github.com/pathscope/pathscope/pkg/validation"
)

// ReachabilityConfig selects the closure algorithm.
type ReachabilityConfig struct {
	// Algorithm is "fixed-point" or "bfs".
	Algorithm string `yaml:"algorithm" validate:"omitempty,oneof=fixed-point bfs"`
	// Workers spreads per-source BFS across a pool when > 1.
	Workers int `yaml:"workers" validate:"min=0"`
}

// PathsConfig bounds path enumeration. Zero values mean unlimited, which is
// the documented default; dense graphs are the caller's responsibility.
type PathsConfig struct {
	MaxLength int `yaml:"max_length" validate:"min=0"`
	MaxPaths  int `yaml:"max_paths" validate:"min=0"`
	Workers   int `yaml:"workers" validate:"min=0"`
}

// MediationConfig selects the mediation strictness policy.
type MediationConfig struct {
	// Strictness is "reachable" or "every-path".
	Strictness string `yaml:"strictness" validate:"omitempty,oneof=reachable every-path"`
}

// OutputConfig controls the fact writer.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"`
}

// Config holds one analysis run's settings.
type Config struct {
	// Policy is "attribute" or "topology".
	Policy string `yaml:"policy" validate:"omitempty,oneof=attribute topology"`
	// AgentMarker promotes matching node IDs to origin under the attribute
	// policy.
	AgentMarker string `yaml:"agent_marker"`

	Reachability ReachabilityConfig `yaml:"reachability"`
	Paths        PathsConfig        `yaml:"paths"`
	Mediation    MediationConfig    `yaml:"mediation"`
	Output       OutputConfig       `yaml:"output"`
}

// DefaultConfig returns the attribute-policy, fixed-point, reachable-
// strictness configuration matching the original tool's behavior.
func DefaultConfig() Config {
	return Config{
		Policy:      "attribute",
		AgentMarker: classify.DefaultAgentMarker,
		Reachability: ReachabilityConfig{
			Algorithm: string(reach.AlgorithmFixedPoint),
		},
		Mediation: MediationConfig{
			Strictness: string(mediation.StrictnessReachable),
		},
		Output: OutputConfig{
			Dir: "facts",
		},
	}
}

// LoadConfig reads a YAML config file, layering it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks tag constraints plus the cross-field rules tags cannot
// express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return validation.NewConfigValidator("Config").
		OneOf("Policy", c.Policy, "attribute", "topology").
		NonNegative("Paths.MaxLength", c.Paths.MaxLength).
		NonNegative("Paths.MaxPaths", c.Paths.MaxPaths).
		Check(c.Paths.MaxLength != 1, "Paths.MaxLength",
			"a one-node limit can never fit an origin and a terminus").
		Err()
}

// classifyPolicy builds the configured classification policy.
func (c *Config) classifyPolicy() classify.Policy {
	if c.Policy == "topology" {
		return classify.NewTopologyPolicy()
	}
	p := classify.NewAttributePolicy()
	p.AgentMarker = c.AgentMarker
	return p
}

// reachOptions builds the configured reachability options.
func (c *Config) reachOptions() reach.Options {
	opts := reach.DefaultOptions()
	if c.Reachability.Algorithm != "" {
		opts.Algorithm = reach.Algorithm(c.Reachability.Algorithm)
	}
	opts.Workers = c.Reachability.Workers
	return opts
}
