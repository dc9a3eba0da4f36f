package sim

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Engine applies gates to the qubits of a Register.
type Engine struct {
	reg *Register
	log zerolog.Logger
}

// NewEngine returns an engine mutating reg.
func NewEngine(reg *Register, log zerolog.Logger) *Engine {
	return &Engine{reg: reg, log: log}
}

// Apply runs g on the given targets. Two-qubit gates take (control, target).
// Amplitudes are never renormalised.
func (e *Engine) Apply(g Gate, targets ...string) error {
	if err := g.check(); err != nil {
		return err
	}
	if len(targets) != int(g.Arity) {
		return fmt.Errorf("%w: %s takes %d target(s), got %d", ErrArityMismatch, g.ID, g.Arity, len(targets))
	}

	switch g.Kind {
	case KindSingle:
		return e.applySingle(g, targets[0])
	case KindControlled:
		return e.applyControlled(g, targets[0], targets[1])
	default:
		return e.applySwap(targets[0], targets[1])
	}
}

func (e *Engine) applySingle(g Gate, id string) error {
	q, err := e.reg.Get(id)
	if err != nil {
		return err
	}
	q.Alpha, q.Beta = g.Matrix.Apply(q.Alpha, q.Beta)
	q.Phase += g.PhaseShift
	q.Active = true

	e.log.Debug().
		Str("gate", g.ID).
		Str("qubit", id).
		Float64("alpha", q.Alpha).
		Float64("beta", q.Beta).
		Msg("applied single-qubit gate")
	return nil
}

// applyControlled fires the gate on the target when |control.β| exceeds
// ControlThreshold. The pair is entangled whether or not it fired.
func (e *Engine) applyControlled(g Gate, controlID, targetID string) error {
	control, target, err := e.pair(g, controlID, targetID)
	if err != nil {
		return err
	}

	fired := math.Abs(control.Beta) > ControlThreshold
	if fired {
		target.Alpha, target.Beta = g.Matrix.Apply(target.Alpha, target.Beta)
	}
	if err := e.reg.AddEntanglement(controlID, targetID); err != nil {
		return err
	}
	control.Active = true
	target.Active = true

	e.log.Debug().
		Str("gate", g.ID).
		Str("control", controlID).
		Str("target", targetID).
		Bool("fired", fired).
		Msg("applied controlled gate")
	return nil
}

func (e *Engine) applySwap(aID, bID string) error {
	a, b, err := e.pair(Gate{ID: "SWAP"}, aID, bID)
	if err != nil {
		return err
	}
	a.Alpha, b.Alpha = b.Alpha, a.Alpha
	a.Beta, b.Beta = b.Beta, a.Beta
	if err := e.reg.AddEntanglement(aID, bID); err != nil {
		return err
	}
	a.Active = true
	b.Active = true

	e.log.Debug().Str("a", aID).Str("b", bID).Msg("swapped qubits")
	return nil
}

func (e *Engine) pair(g Gate, aID, bID string) (*Qubit, *Qubit, error) {
	if aID == bID {
		return nil, nil, fmt.Errorf("%w: %s needs two distinct qubits, got %q twice", ErrArityMismatch, g.ID, aID)
	}
	a, err := e.reg.Get(aID)
	if err != nil {
		return nil, nil, err
	}
	b, err := e.reg.Get(bID)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
