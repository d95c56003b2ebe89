// Package automation scripts repeated solves: hyperparameter sweeps,
// multi-seed trials, and YAML-defined batch scenarios.
package automation

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ikswarm/internal/config"
	"github.com/san-kum/ikswarm/internal/solver"
)

// Sweep varies one swarm parameter across a range, solving the configured
// problem at each point.
type Sweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

type SweepPoint struct {
	Value      float64
	BestCost   float64
	Iterations int
}

func RunSweep(ctx context.Context, sweep *Sweep, base *config.Config, registry *solver.Registry) ([]SweepPoint, error) {
	if sweep.Steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.Steps)
	}
	if err := checkSweepParam(sweep.Param); err != nil {
		return nil, err
	}

	// Pin one seed across all points so they stay comparable.
	base = base.Clone()
	if base.Swarm.Seed == 0 {
		base.Swarm.Seed = time.Now().UnixNano()
	}

	points := make([]SweepPoint, 0, sweep.Steps)
	step := (sweep.Max - sweep.Min) / float64(sweep.Steps-1)

	for i := 0; i < sweep.Steps; i++ {
		val := sweep.Min + float64(i)*step

		cfg := base.Clone()
		if err := applySweepParam(cfg, sweep.Param, val); err != nil {
			return nil, err
		}

		sol, err := solver.New(cfg, registry).Solve(ctx)
		if err != nil {
			return points, fmt.Errorf("sweep point %d (%s=%.4f): %w", i+1, sweep.Param, val, err)
		}

		points = append(points, SweepPoint{
			Value:      val,
			BestCost:   sol.BestCost,
			Iterations: sol.Iterations,
		})

		fmt.Printf("sweep %d/%d: %s=%.4f cost=%.3e\n", i+1, sweep.Steps, sweep.Param, val, sol.BestCost)
	}

	return points, nil
}

func checkSweepParam(name string) error {
	switch name {
	case "inertia", "cognitive", "social", "particles":
		return nil
	default:
		return fmt.Errorf("unknown sweep parameter: %s", name)
	}
}

func applySweepParam(cfg *config.Config, name string, val float64) error {
	switch name {
	case "inertia":
		cfg.Swarm.Inertia = val
	case "cognitive":
		cfg.Swarm.Cognitive = val
	case "social":
		cfg.Swarm.Social = val
	case "particles":
		n := int(math.Round(val))
		if n < 1 {
			n = 1
		}
		cfg.Swarm.Particles = n
	default:
		return fmt.Errorf("unknown sweep parameter: %s", name)
	}
	return nil
}

// TrialsConfig repeats the configured solve with derived random seeds to
// estimate how reliably the swarm reaches the target. Re-running with a
// fresh seed is the caller's recovery strategy, never the optimizer's.
type TrialsConfig struct {
	Trials    int
	BaseSeed  int64
	Tolerance float64
}

type TrialResult struct {
	Trial      int
	Seed       int64
	BestCost   float64
	Iterations int
	Success    bool
}

type TrialStats struct {
	SuccessRate float64
	Best        float64
	Worst       float64
	MeanCost    float64
}

func RunTrials(ctx context.Context, tc *TrialsConfig, base *config.Config, registry *solver.Registry) ([]TrialResult, TrialStats, error) {
	if tc.Trials < 1 {
		return nil, TrialStats{}, fmt.Errorf("trials must be positive, got %d", tc.Trials)
	}
	tol := tc.Tolerance
	if tol <= 0 {
		tol = 1e-3
	}

	baseSeed := tc.BaseSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	results := make([]TrialResult, 0, tc.Trials)
	costs := make([]float64, 0, tc.Trials)
	successes := 0
	best, worst := math.Inf(1), math.Inf(-1)

	for trial := 0; trial < tc.Trials; trial++ {
		cfg := base.Clone()
		cfg.Swarm.Seed = baseSeed + int64(trial)

		sol, err := solver.New(cfg, registry).Solve(ctx)
		if err != nil {
			return results, TrialStats{}, fmt.Errorf("trial %d: %w", trial+1, err)
		}

		success := sol.BestCost <= tol
		if success {
			successes++
		}
		best = math.Min(best, sol.BestCost)
		worst = math.Max(worst, sol.BestCost)
		costs = append(costs, sol.BestCost)

		results = append(results, TrialResult{
			Trial:      trial,
			Seed:       cfg.Swarm.Seed,
			BestCost:   sol.BestCost,
			Iterations: sol.Iterations,
			Success:    success,
		})

		if (trial+1)%10 == 0 {
			fmt.Printf("trials: %d/%d complete\n", trial+1, tc.Trials)
		}
	}

	stats := TrialStats{
		SuccessRate: float64(successes) / float64(tc.Trials),
		Best:        best,
		Worst:       worst,
		MeanCost:    stat.Mean(costs, nil),
	}
	return results, stats, nil
}

// Scenario is a scripted batch of independent solve steps. Each step is
// its own run from the chain's home configuration; steps share nothing.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Name       string     `yaml:"name"`
	Chain      string     `yaml:"chain"`
	Target     [3]float64 `yaml:"target"`
	Particles  int        `yaml:"particles,omitempty"`
	Iterations int        `yaml:"iterations,omitempty"`
	Seed       int64      `yaml:"seed,omitempty"`
	Tolerance  float64    `yaml:"tolerance,omitempty"`
}

type StepResult struct {
	Step     string
	Solution *solver.Solution
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, registry *solver.Registry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		fmt.Printf("solving step %d/%d: %s\n", i+1, len(scenario.Steps), name)

		cfg := base.Clone()
		if step.Chain != "" {
			cfg.Chain = config.ChainConfig{Name: step.Chain}
		}
		cfg.Target = step.Target
		if step.Particles > 0 {
			cfg.Swarm.Particles = step.Particles
		}
		if step.Iterations > 0 {
			cfg.Swarm.Iterations = step.Iterations
		}
		if step.Seed != 0 {
			cfg.Swarm.Seed = step.Seed
		}
		if step.Tolerance > 0 {
			cfg.Swarm.Tolerance = step.Tolerance
		}

		sol, err := solver.New(cfg, registry).Solve(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}

		results = append(results, StepResult{Step: name, Solution: sol})
	}

	return results, nil
}
