// Package metrics implements iteration observers that summarize a swarm run.
package metrics

import "github.com/san-kum/ikswarm/internal/swarm"

// Metric observes iteration statistics and reduces them to one number.
// Every Metric is a swarm.Observer.
type Metric interface {
	Name() string
	OnIteration(s swarm.IterationStats)
	Value() float64
	Reset()
}
