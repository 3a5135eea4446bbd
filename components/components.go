// Package components defines ECS components for flock agents.
//
// An agent is an entity carrying Position, Velocity, Acceleration and Species.
// Components are plain data; systems and the flock engine mutate them.
package components
