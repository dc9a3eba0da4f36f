package sim

import (
	"fmt"
	"strings"
)

// RandSource yields uniform values in [0, 1). *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	Float64() float64
}

// Measurement is one classical read of a qubit. Records are never mutated
// after they are appended to the log.
type Measurement struct {
	QubitID     string
	Result      int
	Probability float64
	Step        int
}

// Measure samples the qubit with the circuit's random source.
func (c *Circuit) Measure(id string) (Measurement, error) {
	return c.MeasureWith(id, c.rand)
}

// MeasureWith samples outcome 0 with probability α² and 1 otherwise, then
// collapses the qubit onto that outcome. It is valid in any executor state.
// A nil src falls back to the circuit's own source.
func (c *Circuit) MeasureWith(id string, src RandSource) (Measurement, error) {
	if src == nil {
		src = c.rand
	}
	q, err := c.reg.Get(id)
	if err != nil {
		return Measurement{}, err
	}

	p0, p1 := q.Probabilities()
	m := Measurement{QubitID: id, Step: c.step}
	if src.Float64() < p0 {
		m.Result, m.Probability = 0, p0
		q.Alpha, q.Beta = 1, 0
	} else {
		m.Result, m.Probability = 1, p1
		q.Alpha, q.Beta = 0, 1
	}
	c.measurements = append(c.measurements, m)

	c.log.Debug().
		Str("qubit", id).
		Int("result", m.Result).
		Float64("probability", m.Probability).
		Int("step", m.Step).
		Msg("measured qubit")
	return m, nil
}

// MeasureAll measures every qubit in register order.
func (c *Circuit) MeasureAll() ([]Measurement, error) {
	out := make([]Measurement, 0, c.reg.Len())
	for _, id := range c.reg.IDs() {
		m, err := c.Measure(id)
		if err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Probabilities returns (p0, p1) for a qubit without collapsing it.
func (c *Circuit) Probabilities(id string) (float64, float64, error) {
	q, err := c.reg.Get(id)
	if err != nil {
		return 0, 0, err
	}
	p0, p1 := q.Probabilities()
	return p0, p1, nil
}

// Sample runs the whole circuit from |0⟩ shots times on a private copy,
// measuring every qubit at the end of each run. The result maps bitstrings
// (q0 leftmost) to counts. c itself is left untouched.
func (c *Circuit) Sample(shots int, src RandSource) (map[string]int, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}
	if src == nil {
		src = c.rand
	}
	counts := make(map[string]int)
	var sb strings.Builder
	for range shots {
		f := c.fork(src)
		if err := f.Run(); err != nil {
			return nil, err
		}
		ms, err := f.MeasureAll()
		if err != nil {
			return nil, err
		}
		sb.Reset()
		for _, m := range ms {
			sb.WriteByte(byte('0' + m.Result))
		}
		counts[sb.String()]++
	}

	c.log.Debug().Int("shots", shots).Int("outcomes", len(counts)).Msg("sampled circuit")
	return counts, nil
}
