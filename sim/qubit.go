package sim

import "sort"

// Qubit is a pair of real amplitudes plus the bookkeeping the visualizer
// reads. Alpha weights |0⟩ and Beta weights |1⟩.
type Qubit struct {
	ID        string
	Alpha     float64
	Beta      float64
	Phase     float64
	Entangled map[string]struct{}
	Active    bool
}

func newQubit(id string) *Qubit {
	return &Qubit{
		ID:        id,
		Alpha:     1,
		Beta:      0,
		Entangled: make(map[string]struct{}),
	}
}

// Probabilities returns (α², β²).
func (q *Qubit) Probabilities() (float64, float64) {
	return q.Alpha * q.Alpha, q.Beta * q.Beta
}

func (q *Qubit) ground() {
	q.Alpha, q.Beta, q.Phase = 1, 0, 0
	q.Active = false
	clear(q.Entangled)
}

// QubitView is a read-only snapshot of a qubit.
type QubitView struct {
	ID        string
	Alpha     float64
	Beta      float64
	Phase     float64
	P0, P1    float64
	Entangled []string
	Active    bool
}

func (q *Qubit) view() QubitView {
	ent := make([]string, 0, len(q.Entangled))
	for id := range q.Entangled {
		ent = append(ent, id)
	}
	sort.Strings(ent)
	p0, p1 := q.Probabilities()
	return QubitView{
		ID:        q.ID,
		Alpha:     q.Alpha,
		Beta:      q.Beta,
		Phase:     q.Phase,
		P0:        p0,
		P1:        p1,
		Entangled: ent,
		Active:    q.Active,
	}
}

// IsEntangledWith reports whether other is in the view's entanglement set.
func (v QubitView) IsEntangledWith(other string) bool {
	i := sort.SearchStrings(v.Entangled, other)
	return i < len(v.Entangled) && v.Entangled[i] == other
}
