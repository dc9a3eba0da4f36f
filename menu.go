package main

import (
	"fmt"
	"strings"

	"qviz/sim"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name        string
	gateID      string
	symbol      string
	needsTarget bool
	needsAngle  bool
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu is built from the registry so the picker never offers a gate
// the simulator cannot resolve.
var gateMenu = buildGateMenu()

func buildGateMenu() []menuCategory {
	single := menuCategory{name: "Single Qubit"}
	double := menuCategory{name: "Two Qubit"}
	for _, g := range sim.Gates() {
		item := menuItem{name: g.Name, gateID: g.ID, symbol: g.Symbol}
		if g.Arity == sim.Double {
			item.needsTarget = true
			double.items = append(double.items, item)
			continue
		}
		single.items = append(single.items, item)
	}
	rotation := menuCategory{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate Y", gateID: "RY", symbol: "RY", needsAngle: true},
		},
	}
	return []menuCategory{single, rotation, double}
}

// renderMenu renders the gate picker into the side panel.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  on %s", m.cursorID())))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 38)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-14s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-14s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsAngle {
			sb.WriteString(dimStyle.Render(" (θ)"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Tab  ⏎ Ok  Esc ✕"))

	return sb.String()
}

// renderAngleInput renders the RY angle prompt into the side panel.
func (m Model) renderAngleInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Rotation Angle"))
	sb.WriteString("\n\n")
	sb.WriteString(m.angleInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57"))
	return sb.String()
}

// renderTargetSelect renders the target prompt for two-qubit gates.
func (m Model) renderTargetSelect() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Select Target"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s  control %s\n\n", activeGateStyle.Render(m.pendingGate.Name), qubitLabelStyle.Render(m.cursorID()))
	ids := m.circuit.QubitIDs()
	for i, id := range ids {
		switch {
		case i == m.cursorQubit:
			sb.WriteString(dimStyle.Render("   " + id + " (control)"))
		case i == m.targetQubit:
			sb.WriteString(targetSelectStyle.Render(" ▸ " + id))
		default:
			sb.WriteString("   " + id)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(" ↑↓ Move  ⏎ Confirm  Esc Cancel"))
	return sb.String()
}
