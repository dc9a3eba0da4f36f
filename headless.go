package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"

	"qviz/sim"
)

// runCommand executes the circuit to completion, prints the final qubit
// states, measures every qubit and prints the log. --shots adds a histogram
// and --qasm the program export.
func runCommand(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.closer.Close()

	circ, err := loadCircuit(c, e)
	if err != nil {
		return err
	}
	out := c.App.Writer

	if err := circ.Run(); err != nil {
		return fmt.Errorf("run circuit: %w", err)
	}
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Circuit %s", circ.ID())))
	fmt.Fprintf(out, "%d qubits, %d operations\n\n", circ.NumQubits(), circ.Len())
	fmt.Fprintln(out, qubitTable(circ.Qubits()))

	if _, err := circ.MeasureAll(); err != nil {
		return fmt.Errorf("measure: %w", err)
	}
	fmt.Fprintln(out, measurementTable(circ.Measurements()))

	if shots := c.Int("shots"); shots > 0 {
		counts, err := circ.Sample(shots, e.rand)
		if err != nil {
			return fmt.Errorf("sample: %w", err)
		}
		writeHistogram(out, counts, shots)
	}

	if c.Bool("qasm") {
		fmt.Fprintln(out)
		fmt.Fprint(out, circ.QASM())
	}

	e.log.Info().Int("operations", circ.Len()).Int("shots", c.Int("shots")).Msg("headless run finished")
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func qubitTable(qubits []sim.QubitView) string {
	t := newTable("Qubit", "α", "β", "φ", "P(0)", "P(1)", "Entangled")
	for _, q := range qubits {
		t.Row(
			q.ID,
			fmt.Sprintf("%+.4f", q.Alpha),
			fmt.Sprintf("%+.4f", q.Beta),
			sim.FormatAngle(q.Phase),
			fmt.Sprintf("%.3f", q.P0),
			fmt.Sprintf("%.3f", q.P1),
			strings.Join(q.Entangled, ","),
		)
	}
	return t.String()
}

func measurementTable(ms []sim.Measurement) string {
	t := newTable("Step", "Qubit", "Result", "Probability")
	for _, m := range ms {
		t.Row(fmt.Sprint(m.Step), m.QubitID, fmt.Sprint(m.Result), fmt.Sprintf("%.3f", m.Probability))
	}
	return t.String()
}

// writeHistogram prints outcome counts in bitstring order with a bar scaled
// to the number of shots.
func writeHistogram(w io.Writer, counts map[string]int, shots int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(fmt.Sprintf("Histogram (%d shots)", shots)))
	for _, k := range keys {
		n := counts[k]
		filled := n * barW * 2 / shots
		bar := strings.Repeat("█", filled) + strings.Repeat(" ", barW*2-filled)
		fmt.Fprintf(w, "  %s  %s %5d  %.3f\n", k, barOneStyle.Render(bar), n, float64(n)/float64(shots))
	}
}
