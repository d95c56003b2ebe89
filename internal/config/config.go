package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultParticles  = 20
	DefaultIterations = 1000
	DefaultInertia    = 0.5
	DefaultCognitive  = 1.5
	DefaultSocial     = 1.5
	DefaultResultsDir = ".ikswarm"
)

type Config struct {
	Chain  ChainConfig  `yaml:"chain"`
	Target [3]float64   `yaml:"target"`
	Swarm  SwarmConfig  `yaml:"swarm"`
	Output OutputConfig `yaml:"output"`
}

// ChainConfig selects a catalog chain by name, or defines the geometry
// inline. Inline joints take precedence over the name. Name is always
// written: Load overlays the file onto the defaults, so an omitted empty
// name would resurrect the default chain.
type ChainConfig struct {
	Name   string        `yaml:"name"`
	Joints []JointConfig `yaml:"joints,omitempty"`
}

type JointConfig struct {
	Kind  string  `yaml:"kind"`
	D     float64 `yaml:"d"`
	A     float64 `yaml:"a"`
	Alpha float64 `yaml:"alpha"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

type SwarmConfig struct {
	Particles  int     `yaml:"particles"`
	Iterations int     `yaml:"iterations"`
	Inertia    float64 `yaml:"inertia"`
	Cognitive  float64 `yaml:"cognitive"`
	Social     float64 `yaml:"social"`
	Seed       int64   `yaml:"seed"`
	Tolerance  float64 `yaml:"tolerance"`
	VMaxFrac   float64 `yaml:"vmax_frac"`
	Parallel   bool    `yaml:"parallel"`
}

type OutputConfig struct {
	Dir  string `yaml:"dir"`
	Save bool   `yaml:"save"`
}

func DefaultConfig() *Config {
	return &Config{
		Chain:  ChainConfig{Name: "extension-arm"},
		Target: [3]float64{-2, 2, 3},
		Swarm: SwarmConfig{
			Particles:  DefaultParticles,
			Iterations: DefaultIterations,
			Inertia:    DefaultInertia,
			Cognitive:  DefaultCognitive,
			Social:     DefaultSocial,
		},
		Output: OutputConfig{Dir: DefaultResultsDir},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Chain.Name == "" && len(c.Chain.Joints) == 0 {
		return fmt.Errorf("config: chain needs a name or inline joints")
	}
	for i, j := range c.Chain.Joints {
		if j.Kind != "revolute" && j.Kind != "prismatic" {
			return fmt.Errorf("config: joint %d has unknown kind %q", i, j.Kind)
		}
		if j.Min > j.Max {
			return fmt.Errorf("config: joint %d has limits [%v, %v]", i, j.Min, j.Max)
		}
	}
	for i, v := range c.Target {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("config: target coordinate %d is not finite", i)
		}
	}
	if c.Swarm.Particles < 1 {
		return fmt.Errorf("config: particles must be positive, got %d", c.Swarm.Particles)
	}
	if c.Swarm.Iterations < 1 {
		return fmt.Errorf("config: iterations must be positive, got %d", c.Swarm.Iterations)
	}
	if c.Swarm.Tolerance < 0 {
		return fmt.Errorf("config: tolerance must not be negative, got %v", c.Swarm.Tolerance)
	}
	if c.Swarm.VMaxFrac < 0 {
		return fmt.Errorf("config: vmax_frac must not be negative, got %v", c.Swarm.VMaxFrac)
	}
	return nil
}

// Clone returns a deep copy, so sweeps and batch runs can vary one field
// without sharing joint slices.
func (c *Config) Clone() *Config {
	clone := *c
	if len(c.Chain.Joints) > 0 {
		clone.Chain.Joints = make([]JointConfig, len(c.Chain.Joints))
		copy(clone.Chain.Joints, c.Chain.Joints)
	}
	return &clone
}
