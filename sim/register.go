package sim

import "fmt"

// Register is the ordered qubit store of a circuit. It performs no
// normalisation checks; keeping α²+β² ≈ 1 is up to the gates.
type Register struct {
	qubits []*Qubit
	index  map[string]int
}

// NewRegister creates n qubits named q0..q{n-1}, all in |0⟩. A negative n
// gives an empty register.
func NewRegister(n int) *Register {
	n = max(n, 0)
	r := &Register{
		qubits: make([]*Qubit, n),
		index:  make(map[string]int, n),
	}
	for i := range n {
		id := fmt.Sprintf("q%d", i)
		r.qubits[i] = newQubit(id)
		r.index[id] = i
	}
	return r
}

// Len returns the number of qubits.
func (r *Register) Len() int { return len(r.qubits) }

// Has reports whether id names a qubit in the register.
func (r *Register) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Get returns the live qubit record for id.
func (r *Register) Get(id string) (*Qubit, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQubit, id)
	}
	return r.qubits[i], nil
}

// Set overwrites the amplitudes of a qubit.
func (r *Register) Set(id string, alpha, beta float64) error {
	q, err := r.Get(id)
	if err != nil {
		return err
	}
	q.Alpha, q.Beta = alpha, beta
	return nil
}

func (r *Register) MarkActive(id string) error {
	q, err := r.Get(id)
	if err != nil {
		return err
	}
	q.Active = true
	return nil
}

func (r *Register) ClearActive(id string) error {
	q, err := r.Get(id)
	if err != nil {
		return err
	}
	q.Active = false
	return nil
}

func (r *Register) clearAllActive() {
	for _, q := range r.qubits {
		q.Active = false
	}
}

// AddEntanglement links a and b in both directions.
func (r *Register) AddEntanglement(a, b string) error {
	qa, err := r.Get(a)
	if err != nil {
		return err
	}
	qb, err := r.Get(b)
	if err != nil {
		return err
	}
	qa.Entangled[b] = struct{}{}
	qb.Entangled[a] = struct{}{}
	return nil
}

// Reset returns every qubit to |0⟩ and drops entanglement and activity.
func (r *Register) Reset() {
	for _, q := range r.qubits {
		q.ground()
	}
}

// IDs returns the qubit ids in order.
func (r *Register) IDs() []string {
	ids := make([]string, len(r.qubits))
	for i, q := range r.qubits {
		ids[i] = q.ID
	}
	return ids
}

// Views returns read-only snapshots of all qubits in order.
func (r *Register) Views() []QubitView {
	out := make([]QubitView, len(r.qubits))
	for i, q := range r.qubits {
		out[i] = q.view()
	}
	return out
}
