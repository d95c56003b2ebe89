// Package kinematics models serial chains of revolute and prismatic joints
// with Denavit-Hartenberg geometry and evaluates their forward kinematics.
//
// A [Chain] is an ordered list of [Joint] records. EndEffector composes one
// homogeneous 4x4 transform per joint, in order, over the identity frame and
// reads the translation column of the product. The evaluation is pure and
// deterministic, safe to call from many goroutines at once.
package kinematics
