package main

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"qviz/sim"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func bellModel(t *testing.T) Model {
	t.Helper()
	c := sim.NewCircuit(2, sim.WithRand(constRand(0)))
	if _, err := c.Append("H", "q0"); err != nil {
		t.Fatalf("append H: %v", err)
	}
	if _, err := c.Append("CX", "q0", "q1"); err != nil {
		t.Fatalf("append CX: %v", err)
	}
	return newModel(c, time.Second, zerolog.Nop())
}

func TestStepKey(t *testing.T) {
	m := press(bellModel(t), "n")

	if got := m.circuit.CurrentStep(); got != 1 {
		t.Fatalf("step after n: got %d, want 1", got)
	}
	if got := m.circuit.State(); got != sim.Paused {
		t.Errorf("state after n: got %s, want paused", got)
	}
	q0, _ := m.circuit.Qubit("q0")
	if math.Abs(q0.Alpha-1/math.Sqrt2) > 1e-9 {
		t.Errorf("q0 alpha: got %v, want 1/sqrt(2)", q0.Alpha)
	}

	m = press(m, "n")
	if got := m.circuit.State(); got != sim.Completed {
		t.Errorf("state after second n: got %s, want completed", got)
	}
	q1, _ := m.circuit.Qubit("q1")
	if !q1.IsEntangledWith("q0") {
		t.Errorf("q1 not entangled with q0 after CX")
	}
}

func TestPlaybackTicks(t *testing.T) {
	m := bellModel(t)

	next, cmd := m.Update(keyMsg(" "))
	m = next.(Model)
	if m.circuit.State() != sim.Running {
		t.Fatalf("state after space: got %s, want running", m.circuit.State())
	}
	if cmd == nil {
		t.Fatal("expected a tick command after starting playback")
	}

	running := m.gen
	next, _ = m.Update(stepMsg{gen: running})
	m = next.(Model)
	if got := m.circuit.CurrentStep(); got != 1 {
		t.Fatalf("step after tick: got %d, want 1", got)
	}

	m = press(m, " ")
	if m.circuit.State() != sim.Paused {
		t.Fatalf("state after second space: got %s, want paused", m.circuit.State())
	}

	// A tick scheduled before the pause must not advance the circuit.
	next, _ = m.Update(stepMsg{gen: running})
	m = next.(Model)
	if got := m.circuit.CurrentStep(); got != 1 {
		t.Errorf("stale tick advanced circuit to step %d", got)
	}

	m = press(m, " ")
	next, _ = m.Update(stepMsg{gen: m.gen})
	m = next.(Model)
	if m.circuit.State() != sim.Completed {
		t.Errorf("state after final tick: got %s, want completed", m.circuit.State())
	}
}

func TestAddGateFromMenu(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		gate    string
		targets []string
	}{
		{"single qubit", []string{"a", "j", "enter"}, "H", []string{"q0"}},
		{"two qubit", []string{"a", "l", "l", "enter", "enter"}, "CX", []string{"q0", "q1"}},
		{"rotation", []string{"a", "l", "enter", "p", "i", "/", "2", "enter"}, "RY", []string{"q0"}},
		{"on cursor qubit", []string{"j", "a", "j", "j", "enter"}, "X", []string{"q1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(sim.NewCircuit(2), time.Second, zerolog.Nop())
			m = press(m, tt.keys...)

			if m.focus != focusCircuit {
				t.Fatalf("focus after adding: got %d, want circuit", m.focus)
			}
			ops := m.circuit.Operations()
			if len(ops) != 1 {
				t.Fatalf("expected 1 operation, got %d (status %q)", len(ops), m.statusMsg)
			}
			if ops[0].Gate.ID != tt.gate {
				t.Errorf("gate: got %s, want %s", ops[0].Gate.ID, tt.gate)
			}
			if strings.Join(ops[0].Targets, ",") != strings.Join(tt.targets, ",") {
				t.Errorf("targets: got %v, want %v", ops[0].Targets, tt.targets)
			}
		})
	}
}

func TestRotationAngleParsed(t *testing.T) {
	m := newModel(sim.NewCircuit(1), time.Second, zerolog.Nop())
	m = press(m, "a", "l", "enter", "p", "i", "/", "2", "enter")

	ops := m.circuit.Operations()
	if len(ops) != 1 || len(ops[0].Gate.Params) != 1 {
		t.Fatalf("expected one RY with a parameter, got %+v", ops)
	}
	if math.Abs(ops[0].Gate.Params[0]-math.Pi/2) > 1e-12 {
		t.Errorf("angle: got %v, want pi/2", ops[0].Gate.Params[0])
	}
}

func TestAddRejectedOutsideIdle(t *testing.T) {
	m := press(bellModel(t), "n", "a")

	if m.focus != focusCircuit {
		t.Errorf("menu opened while %s", m.circuit.State())
	}
	if !m.statusErr || m.statusMsg == "" {
		t.Errorf("expected an error on the status line, got %q", m.statusMsg)
	}
}

func TestMeasureKeys(t *testing.T) {
	m := press(bellModel(t), "m")
	ms := m.circuit.Measurements()
	if len(ms) != 1 || ms[0].QubitID != "q0" || ms[0].Result != 0 {
		t.Fatalf("measure cursor qubit: got %+v", ms)
	}

	m = press(m, "M")
	if got := len(m.circuit.Measurements()); got != 3 {
		t.Errorf("measurement log length after M: got %d, want 3", got)
	}

	m = press(m, "r")
	if got := len(m.circuit.Measurements()); got != 0 {
		t.Errorf("measurement log length after reset: got %d, want 0", got)
	}
	if m.circuit.Len() != 2 {
		t.Errorf("reset dropped operations")
	}
}

func TestSpeedLimits(t *testing.T) {
	m := bellModel(t)
	for range 10 {
		m = press(m, "+")
	}
	if m.interval != minInterval {
		t.Errorf("interval after speeding up: got %s, want %s", m.interval, minInterval)
	}
	for range 10 {
		m = press(m, "-")
	}
	if m.interval != maxInterval {
		t.Errorf("interval after slowing down: got %s, want %s", m.interval, maxInterval)
	}
}

func TestViewRendersPanels(t *testing.T) {
	m := bellModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = press(next.(Model), "n")

	view := m.View()
	for _, want := range []string{"Quantum Circuit", "q0", "q1", "OpenQASM", "Measurements"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(m, "r", "a")
	if !strings.Contains(m.View(), "Add Gate") {
		t.Errorf("view missing gate menu after a")
	}
}

func TestRenderCellKeepsColumnWidth(t *testing.T) {
	wide, err := sim.NewSingleGate("ROT90", "Rotate 90", "ROT90", sim.Matrix2{A0: 0, A1: -1, B0: 1, B1: 0})
	if err != nil {
		t.Fatalf("NewSingleGate: %v", err)
	}

	tests := []struct {
		name string
		info cellInfo
	}{
		{"long symbol", cellInfo{role: roleSingle, gate: wide}},
		{"short symbol", cellInfo{role: roleSingle, gate: sim.Rotation(math.Pi)}},
		{"wire", cellInfo{}},
	}

	for _, tt := range tests {
		top, mid, bot := renderCell(tt.info, gateStyle)
		for i, line := range []string{top, mid, bot} {
			if w := lipgloss.Width(line); w != cellW {
				t.Errorf("%s: line %d is %d wide, want %d: %q", tt.name, i, w, cellW, line)
			}
		}
	}

	if got := padCenter("ROT90", gateNameW); got != "ROT" {
		t.Errorf("padCenter truncation: got %q, want %q", got, "ROT")
	}
}
