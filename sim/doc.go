// Package sim is a small step-driven quantum circuit simulator.
//
// Each qubit is a pair of real amplitudes (α for |0⟩, β for |1⟩) rather than
// a slice of a joint 2^n state vector. Two-qubit gates use a threshold rule:
// the target is transformed when the control's |β| exceeds 0.5, and the pair
// is recorded as entangled every time the gate runs. This keeps the model
// small enough to draw one row per qubit, at the cost of physical accuracy.
//
// A Circuit is driven one Step at a time through the states
// Idle → Running ⇄ Paused → Completed. Pacing belongs to the caller.
// Measurement draws from an injected RandSource so runs can be reproduced.
package sim
