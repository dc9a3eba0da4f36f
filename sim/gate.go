package sim

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Arity is the number of qubits a gate acts on.
type Arity int

const (
	Single Arity = 1
	Double Arity = 2
)

func (a Arity) String() string {
	switch a {
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// Kind selects how the engine applies a gate.
type Kind int

const (
	// KindSingle applies Matrix to one qubit.
	KindSingle Kind = iota
	// KindControlled applies Matrix to the target when the control's |1⟩
	// amplitude exceeds ControlThreshold.
	KindControlled
	// KindSwap exchanges the amplitude pairs of two qubits.
	KindSwap
)

// ControlThreshold is the |β| a control qubit must exceed to fire.
const ControlThreshold = 0.5

// Matrix2 is a 2x2 real matrix stored row-major: [[A0, A1], [B0, B1]].
type Matrix2 struct {
	A0, A1 float64
	B0, B1 float64
}

// Apply returns the matrix times the column vector (alpha, beta).
func (m Matrix2) Apply(alpha, beta float64) (float64, float64) {
	return m.A0*alpha + m.A1*beta, m.B0*alpha + m.B1*beta
}

// Dense returns the matrix as a gonum dense matrix.
func (m Matrix2) Dense() *mat.Dense {
	return mat.NewDense(2, 2, []float64{m.A0, m.A1, m.B0, m.B1})
}

// IsUnitary reports whether MᵀM equals the identity within 1e-9.
func (m Matrix2) IsUnitary() bool {
	d := m.Dense()
	var p mat.Dense
	p.Mul(d.T(), d)
	return mat.EqualApprox(&p, mat.NewDiagDense(2, []float64{1, 1}), 1e-9)
}

// Gate is an immutable operator. Gates carry no per-circuit state and may be
// shared freely.
type Gate struct {
	ID         string
	Name       string
	Symbol     string
	Arity      Arity
	Kind       Kind
	Matrix     Matrix2
	PhaseShift float64   // added to Qubit.Phase of the gate's target
	Params     []float64 // angles of parameterised gates, for display/export
}

var (
	identity = Matrix2{1, 0, 0, 1}
	hadamard = Matrix2{1 / math.Sqrt2, 1 / math.Sqrt2, 1 / math.Sqrt2, -1 / math.Sqrt2}
	pauliX   = Matrix2{0, 1, 1, 0}
	pauliY   = Matrix2{0, -1, 1, 0} // iY, the real part of Pauli-Y
	pauliZ   = Matrix2{1, 0, 0, -1}
)

// catalogue is the registry in display order.
var catalogue = []Gate{
	{ID: "I", Name: "Identity", Symbol: "I", Arity: Single, Kind: KindSingle, Matrix: identity},
	{ID: "H", Name: "Hadamard", Symbol: "H", Arity: Single, Kind: KindSingle, Matrix: hadamard},
	{ID: "X", Name: "Pauli-X", Symbol: "X", Arity: Single, Kind: KindSingle, Matrix: pauliX},
	{ID: "Y", Name: "Pauli-Y", Symbol: "Y", Arity: Single, Kind: KindSingle, Matrix: pauliY},
	{ID: "Z", Name: "Pauli-Z", Symbol: "Z", Arity: Single, Kind: KindSingle, Matrix: pauliZ},
	{ID: "S", Name: "Phase (S)", Symbol: "S", Arity: Single, Kind: KindSingle, Matrix: identity, PhaseShift: math.Pi / 2},
	{ID: "T", Name: "T Gate", Symbol: "T", Arity: Single, Kind: KindSingle, Matrix: identity, PhaseShift: math.Pi / 4},
	{ID: "CX", Name: "CNOT", Symbol: "●─⊕", Arity: Double, Kind: KindControlled, Matrix: pauliX},
	{ID: "CZ", Name: "Controlled-Z", Symbol: "●─●", Arity: Double, Kind: KindControlled, Matrix: pauliZ},
	{ID: "SWAP", Name: "SWAP", Symbol: "×─×", Arity: Double, Kind: KindSwap, Matrix: identity},
}

var aliases = map[string]string{
	"CNOT": "CX",
	"P":    "S",
	"ID":   "I",
}

var registry = func() map[string]Gate {
	r := make(map[string]Gate, len(catalogue))
	for _, g := range catalogue {
		r[g.ID] = g
	}
	return r
}()

// Lookup returns the registered gate with the given id. Ids are matched
// case-insensitively and common aliases (CNOT, P) are accepted.
func Lookup(id string) (Gate, error) {
	key := strings.ToUpper(strings.TrimSpace(id))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	g, ok := registry[key]
	if !ok {
		return Gate{}, fmt.Errorf("%w: %q", ErrUnknownGate, id)
	}
	return g, nil
}

// Gates returns the registered gates in display order.
func Gates() []Gate {
	out := make([]Gate, len(catalogue))
	copy(out, catalogue)
	return out
}

// Rotation returns an RY(theta) gate.
func Rotation(theta float64) Gate {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return Gate{
		ID:     "RY",
		Name:   "Rotate Y",
		Symbol: "RY",
		Arity:  Single,
		Kind:   KindSingle,
		Matrix: Matrix2{c, -s, s, c},
		Params: []float64{theta},
	}
}

// check reports a gate whose Arity and Kind cannot be applied together.
func (g Gate) check() error {
	var want Arity
	switch g.Kind {
	case KindSingle:
		want = Single
	case KindControlled, KindSwap:
		want = Double
	default:
		return fmt.Errorf("%w: %s has unsupported kind %d", ErrUnknownGate, g.ID, g.Kind)
	}
	if g.Arity != want {
		return fmt.Errorf("%w: %s is a %s-qubit kind but declares arity %d", ErrArityMismatch, g.ID, want, g.Arity)
	}
	return nil
}

// NewSingleGate builds a custom single-qubit gate. The engine never
// renormalises, so non-unitary matrices are rejected here.
func NewSingleGate(id, name, symbol string, m Matrix2) (Gate, error) {
	if !m.IsUnitary() {
		return Gate{}, fmt.Errorf("%w: %s", ErrNonUnitary, id)
	}
	return Gate{
		ID:     strings.ToUpper(id),
		Name:   name,
		Symbol: symbol,
		Arity:  Single,
		Kind:   KindSingle,
		Matrix: m,
	}, nil
}
