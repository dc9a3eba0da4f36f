package sim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExecState is the executor's position in its lifecycle.
type ExecState int

const (
	Idle ExecState = iota
	Running
	Paused
	Completed
)

func (s ExecState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Operation is one gate placed on the circuit timeline.
type Operation struct {
	Gate    Gate
	Targets []string
	Step    int
}

// Circuit owns a register, an ordered list of operations and a measurement
// log. It is not safe for concurrent use; a single driver owns it.
type Circuit struct {
	id           string
	reg          *Register
	engine       *Engine
	ops          []Operation
	measurements []Measurement
	step         int
	state        ExecState
	rand         RandSource
	log          zerolog.Logger
}

// Option configures a Circuit.
type Option func(*Circuit)

// WithLogger sets the logger used for state transitions and gate events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Circuit) { c.log = log }
}

// WithRand sets the random source used by Measure.
func WithRand(src RandSource) Option {
	return func(c *Circuit) { c.rand = src }
}

// NewCircuit returns an idle circuit of n qubits in |0⟩.
func NewCircuit(n int, opts ...Option) *Circuit {
	c := &Circuit{
		id:    uuid.NewString(),
		reg:   NewRegister(n),
		state: Idle,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rand == nil {
		seed := uint64(time.Now().UnixNano())
		c.rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	c.log = c.log.With().Str("circuit", c.id).Logger()
	c.engine = NewEngine(c.reg, c.log)
	return c
}

// Append looks gateID up in the registry and appends it. Arity and qubit ids
// are checked here so malformed circuits fail before execution.
func (c *Circuit) Append(gateID string, targets ...string) (Operation, error) {
	g, err := Lookup(gateID)
	if err != nil {
		return Operation{}, err
	}
	return c.AppendGate(g, targets...)
}

// AppendGate appends an already resolved gate, such as a Rotation.
func (c *Circuit) AppendGate(g Gate, targets ...string) (Operation, error) {
	if c.state != Idle {
		return Operation{}, fmt.Errorf("%w: cannot append while %s", ErrInvalidState, c.state)
	}
	if err := g.check(); err != nil {
		return Operation{}, err
	}
	if len(targets) != int(g.Arity) {
		return Operation{}, fmt.Errorf("%w: %s takes %d target(s), got %d", ErrArityMismatch, g.ID, g.Arity, len(targets))
	}
	for _, t := range targets {
		if !c.reg.Has(t) {
			return Operation{}, fmt.Errorf("%w: %q", ErrUnknownQubit, t)
		}
	}
	if g.Arity == Double && targets[0] == targets[1] {
		return Operation{}, fmt.Errorf("%w: %s needs two distinct qubits", ErrArityMismatch, g.ID)
	}

	op := Operation{
		Gate:    g,
		Targets: append([]string(nil), targets...),
		Step:    len(c.ops),
	}
	c.ops = append(c.ops, op)
	return op, nil
}

// Start begins execution from step 0. From Idle the register is used as is.
// From Completed every qubit is first returned to |0⟩ with its entanglement
// and active flag cleared, so the run replays the whole circuit; the
// measurement log is kept until Reset.
func (c *Circuit) Start() error {
	switch c.state {
	case Idle:
	case Completed:
		c.reg.Reset()
	default:
		return fmt.Errorf("%w: cannot start while %s", ErrInvalidState, c.state)
	}
	c.step = 0
	c.transition(Running)
	if len(c.ops) == 0 {
		c.transition(Completed)
	}
	return nil
}

// Step applies the operation under the cursor and advances it.
func (c *Circuit) Step() error {
	if c.state != Running {
		return fmt.Errorf("%w: cannot step while %s", ErrInvalidState, c.state)
	}
	if c.step >= len(c.ops) {
		c.transition(Completed)
		return nil
	}

	c.reg.clearAllActive()
	op := c.ops[c.step]
	if err := c.engine.Apply(op.Gate, op.Targets...); err != nil {
		return fmt.Errorf("step %d: %w", op.Step, err)
	}
	c.step++

	if c.step == len(c.ops) {
		c.transition(Completed)
	}
	return nil
}

// Run starts the circuit if needed and steps it to completion.
func (c *Circuit) Run() error {
	if c.state != Running {
		if err := c.Start(); err != nil {
			return err
		}
	}
	for c.state == Running {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Circuit) Pause() error {
	if c.state != Running {
		return fmt.Errorf("%w: cannot pause while %s", ErrInvalidState, c.state)
	}
	c.transition(Paused)
	return nil
}

func (c *Circuit) Resume() error {
	if c.state != Paused {
		return fmt.Errorf("%w: cannot resume while %s", ErrInvalidState, c.state)
	}
	c.transition(Running)
	return nil
}

// Reset returns all qubits to |0⟩, clears the measurement log and rewinds
// the cursor. Operations are kept.
func (c *Circuit) Reset() {
	c.reg.Reset()
	c.measurements = nil
	c.step = 0
	c.transition(Idle)
}

// Clear drops every operation and resets the circuit.
func (c *Circuit) Clear() {
	c.ops = nil
	c.Reset()
}

// ClearActive lowers the activity flag on every qubit. Drivers call it once
// their highlight has been shown.
func (c *Circuit) ClearActive() {
	c.reg.clearAllActive()
}

func (c *Circuit) transition(to ExecState) {
	if c.state == to {
		return
	}
	c.log.Info().
		Stringer("from", c.state).
		Stringer("to", to).
		Int("step", c.step).
		Msg("circuit state changed")
	c.state = to
}

func (c *Circuit) ID() string          { return c.id }
func (c *Circuit) State() ExecState    { return c.state }
func (c *Circuit) CurrentStep() int    { return c.step }
func (c *Circuit) Len() int            { return len(c.ops) }
func (c *Circuit) NumQubits() int      { return c.reg.Len() }
func (c *Circuit) QubitIDs() []string  { return c.reg.IDs() }
func (c *Circuit) Qubits() []QubitView { return c.reg.Views() }

// Register exposes the qubit store for drivers that need direct access.
func (c *Circuit) Register() *Register { return c.reg }

// Operations returns a copy of the operation list in step order.
func (c *Circuit) Operations() []Operation {
	out := make([]Operation, len(c.ops))
	copy(out, c.ops)
	return out
}

// Qubit returns a snapshot of one qubit.
func (c *Circuit) Qubit(id string) (QubitView, error) {
	q, err := c.reg.Get(id)
	if err != nil {
		return QubitView{}, err
	}
	return q.view(), nil
}

// Measurements returns a copy of the measurement log in order.
func (c *Circuit) Measurements() []Measurement {
	out := make([]Measurement, len(c.measurements))
	copy(out, c.measurements)
	return out
}

// fork copies the circuit's operations onto a fresh register. The copy
// shares gates (immutable) but no mutable state.
func (c *Circuit) fork(src RandSource) *Circuit {
	f := &Circuit{
		id:    c.id,
		reg:   NewRegister(c.reg.Len()),
		ops:   c.ops,
		state: Idle,
		rand:  src,
		log:   zerolog.Nop(),
	}
	f.engine = NewEngine(f.reg, f.log)
	return f
}
