package config

import "sort"

// Preset is a named, ready-to-run configuration.
type Preset struct {
	Description string
	Config      *Config
}

var Presets = map[string]Preset{
	"reach": {
		Description: "six DOF extension arm reaching (-2, 2, 3), the reference problem",
		Config: &Config{
			Chain:  ChainConfig{Name: "extension-arm"},
			Target: [3]float64{-2, 2, 3},
			Swarm: SwarmConfig{
				Particles: 20, Iterations: 1000,
				Inertia: 0.5, Cognitive: 1.5, Social: 1.5,
			},
			Output: OutputConfig{Dir: DefaultResultsDir},
		},
	},
	"quick": {
		Description: "small-budget smoke run with early exit at 1e-3",
		Config: &Config{
			Chain:  ChainConfig{Name: "extension-arm"},
			Target: [3]float64{-2, 2, 3},
			Swarm: SwarmConfig{
				Particles: 15, Iterations: 300,
				Inertia: 0.5, Cognitive: 1.5, Social: 1.5,
				Tolerance: 1e-3,
			},
			Output: OutputConfig{Dir: DefaultResultsDir},
		},
	},
	"precise": {
		Description: "large parallel swarm driven to 1e-9",
		Config: &Config{
			Chain:  ChainConfig{Name: "extension-arm"},
			Target: [3]float64{-2, 2, 3},
			Swarm: SwarmConfig{
				Particles: 40, Iterations: 5000,
				Inertia: 0.5, Cognitive: 1.5, Social: 1.5,
				Tolerance: 1e-9, Parallel: true,
			},
			Output: OutputConfig{Dir: DefaultResultsDir},
		},
	},
	"planar": {
		Description: "three-link planar arm reaching (2, 0.5, 0)",
		Config: &Config{
			Chain:  ChainConfig{Name: "planar-3r"},
			Target: [3]float64{2, 0.5, 0},
			Swarm: SwarmConfig{
				Particles: 15, Iterations: 300,
				Inertia: 0.5, Cognitive: 1.5, Social: 1.5,
				Tolerance: 1e-6,
			},
			Output: OutputConfig{Dir: DefaultResultsDir},
		},
	},
}

// GetPreset returns a copy of the named preset's config, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Config.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
