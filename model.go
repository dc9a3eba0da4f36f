package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"qviz/sim"
)

const (
	minInterval = 100 * time.Millisecond
	maxInterval = 5 * time.Second
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusMenu
	focusSelectTarget
	focusInputAngle
)

// stepMsg asks the model to advance the circuit. gen ties the tick to the
// playback run that scheduled it, so ticks from before a pause are dropped.
type stepMsg struct{ gen int }

// clearActiveMsg lowers the activity highlight some time after a step.
type clearActiveMsg struct{ gen int }

// Model is the bubbletea playback driver. It is the only owner of circuit.
type Model struct {
	circuit  *sim.Circuit
	log      zerolog.Logger
	interval time.Duration
	gen      int

	cursorQubit int
	width       int
	height      int
	focus       focus
	statusMsg   string
	statusErr   bool

	keys       keyMap
	help       help.Model
	qasmView   viewport.Model
	angleInput textinput.Model

	// Menu state
	menuCat  int
	menuItem int

	// Target-selection state (for two-qubit gates)
	pendingGate sim.Gate
	targetQubit int
}

func newModel(c *sim.Circuit, interval time.Duration, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "pi/2"
	ti.CharLimit = 24
	ti.Width = 20

	m := Model{
		circuit:    c,
		log:        log,
		interval:   interval,
		keys:       keys,
		help:       help.New(),
		qasmView:   viewport.New(40, 10),
		angleInput: ti,
		focus:      focusCircuit,
	}
	m.syncQASM()
	return m
}

func (m *Model) syncQASM() {
	m.qasmView.SetContent(m.circuit.QASM())
}

func (m *Model) setStatus(msg string) {
	m.statusMsg, m.statusErr = msg, false
}

// report shows err on the status line. Driver misuse errors are expected
// during interactive use and are logged at debug only.
func (m *Model) report(err error) {
	m.statusMsg, m.statusErr = err.Error(), true
	level := zerolog.WarnLevel
	if errors.Is(err, sim.ErrInvalidState) {
		level = zerolog.DebugLevel
	}
	m.log.WithLevel(level).Err(err).Msg("circuit operation rejected")
}

func (m Model) cursorID() string {
	ids := m.circuit.QubitIDs()
	if m.cursorQubit < 0 || m.cursorQubit >= len(ids) {
		return ""
	}
	return ids[m.cursorQubit]
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return stepMsg{gen: gen} })
}

func (m Model) clearActiveLater() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval/2, func(time.Time) tea.Msg { return clearActiveMsg{gen: gen} })
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.qasmView.Width = max(msg.Width/3-4, 20)
		m.qasmView.Height = max(msg.Height-8, 4)

	case stepMsg:
		if msg.gen != m.gen || m.circuit.State() != sim.Running {
			break
		}
		if err := m.circuit.Step(); err != nil {
			m.report(err)
			break
		}
		cmds = append(cmds, m.clearActiveLater())
		if m.circuit.State() == sim.Running {
			cmds = append(cmds, m.tick())
		} else {
			m.setStatus("Circuit completed")
		}

	case clearActiveMsg:
		if msg.gen == m.gen {
			m.circuit.ClearActive()
		}

	case tea.KeyMsg:
		m.statusMsg = ""

		switch m.focus {
		case focusCircuit:
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			cmds = append(cmds, m.updateCircuit(msg))
		case focusMenu:
			m.updateMenu(msg)
		case focusSelectTarget:
			m.updateTarget(msg)
		case focusInputAngle:
			var cmd tea.Cmd
			m, cmd = m.updateAngle(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateCircuit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursorQubit > 0 {
			m.cursorQubit--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursorQubit < m.circuit.NumQubits()-1 {
			m.cursorQubit++
		}

	case key.Matches(msg, m.keys.Play):
		return m.togglePlayback()

	case key.Matches(msg, m.keys.Step):
		return m.stepOnce()

	case key.Matches(msg, m.keys.Measure):
		res, err := m.circuit.Measure(m.cursorID())
		if err != nil {
			m.report(err)
			break
		}
		m.setStatus(fmt.Sprintf("Measured %s → %d (p=%.2f)", res.QubitID, res.Result, res.Probability))
		m.syncQASM()

	case key.Matches(msg, m.keys.MeasureAll):
		if _, err := m.circuit.MeasureAll(); err != nil {
			m.report(err)
			break
		}
		m.setStatus("Measured all qubits")
		m.syncQASM()

	case key.Matches(msg, m.keys.Reset):
		m.gen++
		m.circuit.Reset()
		m.setStatus("Reset to |0⟩")
		m.syncQASM()

	case key.Matches(msg, m.keys.Clear):
		m.gen++
		m.circuit.Clear()
		m.setStatus("Circuit cleared")
		m.syncQASM()

	case key.Matches(msg, m.keys.Faster):
		m.interval = max(m.interval/2, minInterval)
		m.setStatus(fmt.Sprintf("Interval %s", m.interval))

	case key.Matches(msg, m.keys.Slower):
		m.interval = min(m.interval*2, maxInterval)
		m.setStatus(fmt.Sprintf("Interval %s", m.interval))

	case key.Matches(msg, m.keys.Add):
		if m.circuit.State() != sim.Idle {
			m.report(fmt.Errorf("%w: reset before editing the circuit", sim.ErrInvalidState))
			break
		}
		m.focus = focusMenu
		m.menuCat = 0
		m.menuItem = 0
	}
	return nil
}

// togglePlayback starts, pauses or resumes timed stepping.
func (m *Model) togglePlayback() tea.Cmd {
	var err error
	switch m.circuit.State() {
	case sim.Idle, sim.Completed:
		err = m.circuit.Start()
	case sim.Running:
		err = m.circuit.Pause()
		m.gen++
	case sim.Paused:
		err = m.circuit.Resume()
	}
	if err != nil {
		m.report(err)
		return nil
	}
	m.setStatus(fmt.Sprintf("Circuit %s", m.circuit.State()))
	if m.circuit.State() == sim.Running {
		m.gen++
		return m.tick()
	}
	return nil
}

// stepOnce advances a single operation, starting the circuit if needed and
// pausing it afterwards so timed playback does not take over.
func (m *Model) stepOnce() tea.Cmd {
	m.gen++
	switch m.circuit.State() {
	case sim.Idle, sim.Completed:
		if err := m.circuit.Start(); err != nil {
			m.report(err)
			return nil
		}
	case sim.Paused:
		if err := m.circuit.Resume(); err != nil {
			m.report(err)
			return nil
		}
	}
	if m.circuit.State() != sim.Running {
		return nil
	}
	if err := m.circuit.Step(); err != nil {
		m.report(err)
		return nil
	}
	if m.circuit.State() == sim.Running {
		if err := m.circuit.Pause(); err != nil {
			m.report(err)
		}
	}
	m.setStatus(fmt.Sprintf("Step %d/%d", m.circuit.CurrentStep(), m.circuit.Len()))
	return m.clearActiveLater()
}

func (m *Model) updateMenu(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.focus = focusCircuit
	case key.Matches(msg, m.keys.Up):
		if m.menuItem > 0 {
			m.menuItem--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
			m.menuItem++
		}
	case key.Matches(msg, m.keys.Left):
		if m.menuCat > 0 {
			m.menuCat--
			m.menuItem = 0
		}
	case key.Matches(msg, m.keys.Right):
		if m.menuCat < len(gateMenu)-1 {
			m.menuCat++
			m.menuItem = 0
		}
	case key.Matches(msg, m.keys.Confirm):
		item := gateMenu[m.menuCat].items[m.menuItem]
		switch {
		case item.needsAngle:
			m.angleInput.SetValue("")
			m.angleInput.Focus()
			m.focus = focusInputAngle
		case item.needsTarget:
			if m.circuit.NumQubits() < 2 {
				m.report(fmt.Errorf("%w: %s needs two qubits", sim.ErrArityMismatch, item.gateID))
				m.focus = focusCircuit
				return
			}
			g, err := sim.Lookup(item.gateID)
			if err != nil {
				m.report(err)
				m.focus = focusCircuit
				return
			}
			m.pendingGate = g
			m.targetQubit = m.cursorQubit + 1
			if m.targetQubit >= m.circuit.NumQubits() {
				m.targetQubit = m.cursorQubit - 1
			}
			m.focus = focusSelectTarget
		default:
			g, err := sim.Lookup(item.gateID)
			if err != nil {
				m.report(err)
				m.focus = focusCircuit
				return
			}
			m.placeGate(g, m.cursorID())
		}
	}
}

func (m *Model) updateTarget(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.focus = focusCircuit
	case key.Matches(msg, m.keys.Up):
		for next := m.targetQubit - 1; next >= 0; next-- {
			if next != m.cursorQubit {
				m.targetQubit = next
				break
			}
		}
	case key.Matches(msg, m.keys.Down):
		for next := m.targetQubit + 1; next < m.circuit.NumQubits(); next++ {
			if next != m.cursorQubit {
				m.targetQubit = next
				break
			}
		}
	case key.Matches(msg, m.keys.Confirm):
		m.placeGate(m.pendingGate, m.cursorID(), m.circuit.QubitIDs()[m.targetQubit])
	}
}

func (m Model) updateAngle(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.angleInput.Blur()
		m.focus = focusCircuit
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		theta, err := sim.ParseAngle(m.angleInput.Value())
		if err != nil {
			m.report(fmt.Errorf("%w; use numbers or pi expressions (e.g. pi/2, 3*pi/4)", err))
			return m, nil
		}
		m.angleInput.Blur()
		m.placeGate(sim.Rotation(theta), m.cursorID())
		return m, nil
	}
	var cmd tea.Cmd
	m.angleInput, cmd = m.angleInput.Update(msg)
	return m, cmd
}

// placeGate appends g to the end of the circuit and returns to the circuit
// view. Build-time validation errors land on the status line.
func (m *Model) placeGate(g sim.Gate, targets ...string) {
	m.focus = focusCircuit
	m.pendingGate = sim.Gate{}
	op, err := m.circuit.AppendGate(g, targets...)
	if err != nil {
		m.report(err)
		return
	}
	m.log.Info().Str("gate", g.ID).Strs("targets", targets).Int("step", op.Step).Msg("gate appended")
	m.setStatus(fmt.Sprintf("Added %s at step %d", g.Symbol, op.Step))
	m.syncQASM()
}
