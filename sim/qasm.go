package sim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for reading the OpenQASM subset written by QASM.
var (
	qregRegex        = regexp.MustCompile(`^qreg\s+q\[(\d+)\];?$`)
	singleGateRegex  = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	paramGateRegex   = regexp.MustCompile(`^(\w+)\s*\(([^()]*)\)\s+q\[(\d+)\];?$`)
	twoQubitRegex    = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\];?$`)
	ignoredLineRegex = regexp.MustCompile(`^(OPENQASM|include|creg|barrier|measure)\b`)
)

// qasmNames holds the export names that differ from the lower-cased gate id.
// Lookup resolves them back through its alias table.
var qasmNames = map[string]string{
	"I": "id",
}

// QASM renders the circuit as OpenQASM 2.0. Recorded measurements are
// appended as measure statements in log order.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	n := c.reg.Len()

	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	sb.WriteString(fmt.Sprintf("qreg q[%d];\n", n))
	sb.WriteString(fmt.Sprintf("creg c[%d];\n\n", n))

	for _, op := range c.ops {
		name, ok := qasmNames[op.Gate.ID]
		if !ok {
			name = strings.ToLower(op.Gate.ID)
		}
		if len(op.Gate.Params) > 0 {
			params := make([]string, len(op.Gate.Params))
			for i, p := range op.Gate.Params {
				params[i] = FormatAngle(p)
			}
			name += "(" + strings.Join(params, ",") + ")"
		}

		refs := make([]string, len(op.Targets))
		for i, t := range op.Targets {
			refs[i] = fmt.Sprintf("q[%d]", c.reg.index[t])
		}
		sb.WriteString(fmt.Sprintf("%s %s;\n", name, strings.Join(refs, ",")))
	}

	for _, m := range c.measurements {
		i := c.reg.index[m.QubitID]
		sb.WriteString(fmt.Sprintf("measure q[%d] -> c[%d];\n", i, i))
	}
	return sb.String()
}

// MaxProgramQubits bounds the qreg a program may declare.
const MaxProgramQubits = 16

// ParseProgram builds an idle circuit from an OpenQASM 2.0 program. Only the
// gates in the registry plus ry(θ) are understood; measure, barrier and creg
// statements are skipped since measurement is an out-of-band read here.
// The qreg must declare between 1 and MaxProgramQubits qubits.
func ParseProgram(src string, opts ...Option) (*Circuit, error) {
	var c *Circuit
	qubit := func(s string) string { return "q" + s }

	for i, raw := range strings.Split(src, "\n") {
		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || ignoredLineRegex.MatchString(line) {
			continue
		}
		lineNo := i + 1

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			if c != nil {
				return nil, fmt.Errorf("line %d: only one qreg is supported", lineNo)
			}
			n, err := strconv.Atoi(m[1])
			if err != nil || n <= 0 || n > MaxProgramQubits {
				return nil, fmt.Errorf("line %d: %w: qreg q[%s], want 1..%d", lineNo, ErrRegisterSize, m[1], MaxProgramQubits)
			}
			c = NewCircuit(n, opts...)
			continue
		}
		if c == nil {
			return nil, fmt.Errorf("line %d: gate before qreg declaration", lineNo)
		}

		var err error
		switch {
		case paramGateRegex.MatchString(line):
			m := paramGateRegex.FindStringSubmatch(line)
			if !strings.EqualFold(m[1], "ry") {
				return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrUnknownGate, m[1])
			}
			theta, perr := ParseAngle(m[2])
			if perr != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, perr)
			}
			_, err = c.AppendGate(Rotation(theta), qubit(m[3]))
		case twoQubitRegex.MatchString(line):
			m := twoQubitRegex.FindStringSubmatch(line)
			_, err = c.Append(m[1], qubit(m[2]), qubit(m[3]))
		case singleGateRegex.MatchString(line):
			m := singleGateRegex.FindStringSubmatch(line)
			_, err = c.Append(m[1], qubit(m[2]))
		default:
			return nil, fmt.Errorf("line %d: unrecognised statement %q", lineNo, line)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if c == nil {
		return nil, fmt.Errorf("program declares no qreg")
	}
	return c, nil
}
