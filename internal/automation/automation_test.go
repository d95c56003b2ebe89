package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ikswarm/internal/config"
	"github.com/san-kum/ikswarm/internal/solver"
)

func planarBase(seed int64) *config.Config {
	cfg := config.GetPreset("planar")
	cfg.Swarm.Seed = seed
	return cfg
}

func TestRunSweep(t *testing.T) {
	sweep := &Sweep{Param: "inertia", Min: 0.3, Max: 0.7, Steps: 3}

	points, err := RunSweep(context.Background(), sweep, planarBase(21), solver.NewRegistry())
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}

	wantValues := []float64{0.3, 0.5, 0.7}
	for i, p := range points {
		if math.Abs(p.Value-wantValues[i]) > 1e-9 {
			t.Errorf("point %d value = %v, want %v", i, p.Value, wantValues[i])
		}
		if p.BestCost > 1e-3 {
			t.Errorf("point %d (inertia=%v) best cost = %v, want <= 1e-3", i, p.Value, p.BestCost)
		}
		if p.Iterations < 1 {
			t.Errorf("point %d iterations = %d", i, p.Iterations)
		}
	}
}

func TestRunSweepErrors(t *testing.T) {
	base := planarBase(1)
	reg := solver.NewRegistry()

	if _, err := RunSweep(context.Background(), &Sweep{Param: "inertia", Min: 0, Max: 1, Steps: 1}, base, reg); err == nil {
		t.Error("RunSweep with one step succeeded")
	}
	if _, err := RunSweep(context.Background(), &Sweep{Param: "momentum", Min: 0, Max: 1, Steps: 3}, base, reg); err == nil {
		t.Error("RunSweep with an unknown parameter succeeded")
	}
}

func TestRunTrials(t *testing.T) {
	tc := &TrialsConfig{Trials: 3, BaseSeed: 11, Tolerance: 1e-3}

	results, stats, err := RunTrials(context.Background(), tc, planarBase(0), solver.NewRegistry())
	if err != nil {
		t.Fatalf("RunTrials: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	for i, r := range results {
		if r.Trial != i {
			t.Errorf("result %d has trial index %d", i, r.Trial)
		}
		if r.Seed != tc.BaseSeed+int64(i) {
			t.Errorf("trial %d seed = %d, want %d", i, r.Seed, tc.BaseSeed+int64(i))
		}
		if !r.Success {
			t.Errorf("trial %d failed with cost %v", i, r.BestCost)
		}
	}

	if stats.SuccessRate != 1.0 {
		t.Errorf("SuccessRate = %v, want 1.0", stats.SuccessRate)
	}
	if stats.Best > stats.Worst {
		t.Errorf("Best = %v exceeds Worst = %v", stats.Best, stats.Worst)
	}
	if stats.MeanCost < stats.Best-1e-12 || stats.MeanCost > stats.Worst+1e-12 {
		t.Errorf("MeanCost = %v outside [%v, %v]", stats.MeanCost, stats.Best, stats.Worst)
	}
}

func TestRunTrialsErrors(t *testing.T) {
	tc := &TrialsConfig{Trials: 0}
	if _, _, err := RunTrials(context.Background(), tc, planarBase(1), solver.NewRegistry()); err == nil {
		t.Error("RunTrials with zero trials succeeded")
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := []byte(`name: shelf-pick
description: two reaches of the planar arm
steps:
  - name: first
    chain: planar-3r
    target: [2, 0.5, 0]
    seed: 7
    tolerance: 1e-3
  - chain: planar-3r
    target: [1, 1.5, 0]
    seed: 8
    tolerance: 1e-3
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if scenario.Name != "shelf-pick" {
		t.Errorf("Name = %q, want shelf-pick", scenario.Name)
	}
	if len(scenario.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(scenario.Steps))
	}
	if scenario.Steps[0].Name != "first" || scenario.Steps[0].Seed != 7 {
		t.Errorf("step 0 = %+v", scenario.Steps[0])
	}
	if scenario.Steps[1].Target != [3]float64{1, 1.5, 0} {
		t.Errorf("step 1 target = %v", scenario.Steps[1].Target)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadScenario of a missing file succeeded")
	}

	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("name: empty\nsteps: []\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Error("LoadScenario with no steps succeeded")
	}
}

func TestRunScenario(t *testing.T) {
	scenario := &Scenario{
		Name: "shelf-pick",
		Steps: []ScenarioStep{
			{Name: "first", Chain: "planar-3r", Target: [3]float64{2, 0.5, 0}, Seed: 7, Tolerance: 1e-3},
			{Chain: "planar-3r", Target: [3]float64{1, 1.5, 0}, Seed: 8, Tolerance: 1e-3},
		},
	}

	results, err := RunScenario(context.Background(), scenario, planarBase(0), solver.NewRegistry())
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if results[0].Step != "first" {
		t.Errorf("step 0 name = %q, want first", results[0].Step)
	}
	if results[1].Step != "step-2" {
		t.Errorf("step 1 name = %q, want step-2", results[1].Step)
	}
	for i, r := range results {
		if r.Solution.BestCost > 1e-3 {
			t.Errorf("step %d best cost = %v, want <= 1e-3", i, r.Solution.BestCost)
		}
		if r.Solution.Target != scenario.Steps[i].Target {
			t.Errorf("step %d solved target %v, want %v", i, r.Solution.Target, scenario.Steps[i].Target)
		}
	}
}
