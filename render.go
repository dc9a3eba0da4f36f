package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qviz/sim"
)

const (
	gateNameW = 3             // inner width of a gate box
	gateBoxW  = gateNameW + 2 // gate box including its borders
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a plain string within the given width, cutting it to
// width runes when it is too long.
func padCenter(s string, width int) string {
	if r := []rune(s); len(r) > width {
		return string(r[:width])
	}
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// controlSymbol returns the wire symbol for the first qubit of a two-qubit gate.
func controlSymbol(g sim.Gate) string {
	if g.Kind == sim.KindSwap {
		return "×"
	}
	return "●"
}

// targetSymbol returns the wire symbol for the second qubit of a two-qubit gate.
func targetSymbol(g sim.Gate) string {
	switch {
	case g.Kind == sim.KindSwap:
		return "×"
	case g.ID == "CZ":
		return "●"
	default:
		return "⊕"
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellRole int

const (
	roleWire cellRole = iota
	roleSingle
	roleControl
	roleTarget
	rolePassThrough
)

// cellInfo describes what one qubit wire shows at one step.
type cellInfo struct {
	role      cellRole
	gate      sim.Gate
	vertAbove bool
	vertBelow bool
}

// cellAt works out the role of qubit row at op, given qubit row indices.
func cellAt(op sim.Operation, row int, index map[string]int) cellInfo {
	if op.Gate.Arity == sim.Single {
		if index[op.Targets[0]] == row {
			return cellInfo{role: roleSingle, gate: op.Gate}
		}
		return cellInfo{}
	}

	a, b := index[op.Targets[0]], index[op.Targets[1]]
	lo, hi := min(a, b), max(a, b)
	info := cellInfo{gate: op.Gate, vertAbove: row > lo && row <= hi, vertBelow: row >= lo && row < hi}
	switch {
	case row == a:
		info.role = roleControl
	case row == b:
		info.role = roleTarget
	case row > lo && row < hi:
		info.role = rolePassThrough
	default:
		return cellInfo{}
	}
	return info
}

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo, style lipgloss.Style) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + style.Render("│") + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch info.role {
	case roleSingle:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(info.gate.Symbol, gateNameW)
		top = strings.Repeat(" ", margin) + style.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + style.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + style.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	case roleControl:
		mid = strings.Repeat("─", dashL) + style.Render(controlSymbol(info.gate)) + strings.Repeat("─", dashR)
	case roleTarget:
		mid = strings.Repeat("─", dashL) + style.Render(targetSymbol(info.gate)) + strings.Repeat("─", dashR)
	case rolePassThrough:
		mid = strings.Repeat("─", dashL) + style.Render("┼") + strings.Repeat("─", dashR)
	default:
		mid = strings.Repeat("─", cellW)
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the timeline grid. The column of the most
// recently applied operation is highlighted.
func (m Model) renderCircuitPanel(width int) string {
	var sb strings.Builder

	state := m.circuit.State()
	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	fmt.Fprintf(&sb, "  %s  %s\n\n",
		stateStyles[state.String()].Render(strings.ToUpper(state.String())),
		dimStyle.Render(fmt.Sprintf("step %d/%d  every %s", m.circuit.CurrentStep(), m.circuit.Len(), m.interval)))

	ops := m.circuit.Operations()
	ids := m.circuit.QubitIDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	// How many steps fit
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)
	applied := m.circuit.CurrentStep() - 1

	startStep := 0
	if applied >= maxSteps {
		startStep = applied - maxSteps + 1
	}
	endStep := min(startStep+maxSteps, len(ops))

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, endStep-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < endStep; step++ {
		label := padCenter(fmt.Sprintf("%d", step), cellW)
		if step == applied {
			header += activeGateStyle.Render(label)
		} else {
			header += dimStyle.Render(label)
		}
	}
	sb.WriteString(header + "\n")

	for row, id := range ids {
		labelStyle := qubitLabelStyle
		if row == m.cursorQubit {
			labelStyle = cursorStyle
		}
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := labelStyle.Render(fmt.Sprintf("%-4s", id)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < endStep; step++ {
			style := gateStyle
			if step == applied {
				style = activeGateStyle
			}
			top, mid, bot := renderCell(cellAt(ops[step], row, index), style)
			topLine += top
			midLine += mid
			botLine += bot
		}
		// Trailing wire so an empty circuit still shows its qubits.
		midLine += strings.Repeat("─", cellW)

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	return circuitStyle.Width(width).Render(sb.String())
}

// renderProbBar draws p1 as a filled bar over a p0 background.
func renderProbBar(p1 float64) string {
	ones := int(p1*barW + 0.5)
	ones = min(max(ones, 0), barW)
	return barOneStyle.Render(strings.Repeat("█", ones)) + barZeroStyle.Render(strings.Repeat("░", barW-ones))
}

// renderQubitPanel lists amplitudes, probabilities and entanglement per qubit.
func (m Model) renderQubitPanel(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Qubits"))
	sb.WriteString("\n")

	for i, q := range m.circuit.Qubits() {
		label := qubitLabelStyle.Render(fmt.Sprintf("%-4s", q.ID))
		switch {
		case q.Active:
			label = activeGateStyle.Render(fmt.Sprintf("%-4s", q.ID))
		case i == m.cursorQubit:
			label = cursorStyle.Render(fmt.Sprintf("%-4s", q.ID))
		}
		fmt.Fprintf(&sb, "%s α=%+.3f β=%+.3f φ=%-6s %s %s",
			label, q.Alpha, q.Beta, sim.FormatAngle(q.Phase),
			renderProbBar(q.P1), dimStyle.Render(fmt.Sprintf("P(1)=%.2f", q.P1)))
		if len(q.Entangled) > 0 {
			sb.WriteString(entangleStyle.Render("  ⇄ " + strings.Join(q.Entangled, ",")))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Measurements"))
	sb.WriteString("\n")
	log := m.circuit.Measurements()
	if len(log) == 0 {
		sb.WriteString(dimStyle.Render("  none yet"))
	}
	for _, ms := range log[max(len(log)-logRows, 0):] {
		fmt.Fprintf(&sb, "  step %-3d %s → %d  %s\n",
			ms.Step, qubitLabelStyle.Render(ms.QubitID), ms.Result,
			dimStyle.Render(fmt.Sprintf("p=%.2f", ms.Probability)))
	}

	return circuitStyle.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

// renderSidePanel shows the QASM export, or the gate picker while one of
// the add-gate modes has focus.
func (m Model) renderSidePanel(width int) string {
	var body string
	switch m.focus {
	case focusMenu:
		body = m.renderMenu()
	case focusSelectTarget:
		body = m.renderTargetSelect()
	case focusInputAngle:
		body = m.renderAngleInput()
	default:
		body = titleStyle.Render("OpenQASM") + "\n\n" + m.qasmView.View()
	}
	return sideStyle.Width(width).Render(body)
}

// renderControlsPanel renders the status line and key help.
func (m Model) renderControlsPanel(width int) string {
	var sb strings.Builder
	if m.statusMsg != "" {
		if m.statusErr {
			sb.WriteString(errorStyle.Render(m.statusMsg))
		} else {
			sb.WriteString(activeGateStyle.Render(m.statusMsg))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))
	return controlsStyle.Width(width).Render(sb.String())
}

// ──────────────────────────── View ────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideW := max(m.width/3, 30)
	mainW := max(m.width-sideW-4, 40)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderCircuitPanel(mainW),
		m.renderQubitPanel(mainW),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderSidePanel(sideW))

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderControlsPanel(m.width))
}
