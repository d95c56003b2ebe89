// Package swarm implements bounded particle swarm optimization.
//
// The package defines the types and the update loop for minimizing a
// batch objective over a feasible hyper-rectangle:
//
//   - [Vector]: one candidate parameter vector
//   - [Bounds]: the feasible region, one interval per dimension
//   - [Objective]: batch cost function evaluated once per iteration
//   - [Optimizer]: drives the velocity/position updates and best tracking
//
// # Example
//
//	obj := objective.NewReach(chain, target, false)
//	cfg := swarm.DefaultConfig()
//	cfg.Dim = chain.Dim()
//	cfg.Bounds = swarm.Bounds{Lower: lower, Upper: upper}
//	res, _ := swarm.Optimize(ctx, obj, cfg)
//
// # Thread Safety
//
// Optimizer instances are NOT thread-safe. Iterations are strictly
// sequential; concurrency belongs inside the objective's batch
// evaluation, which must complete for the whole batch before the
// optimizer reduces the global best.
package swarm
