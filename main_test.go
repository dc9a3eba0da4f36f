package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qviz/sim"
)

func TestDemoCircuit(t *testing.T) {
	tests := []struct {
		qubits int
		want   []string
	}{
		{1, []string{"H q0"}},
		{2, []string{"H q0", "CX q0,q1"}},
		{4, []string{"H q0", "CX q0,q1", "CX q1,q2", "CX q2,q3"}},
	}

	for _, tt := range tests {
		c, err := demoCircuit(tt.qubits)
		if err != nil {
			t.Fatalf("demoCircuit(%d): %v", tt.qubits, err)
		}
		var got []string
		for _, op := range c.Operations() {
			got = append(got, op.Gate.ID+" "+strings.Join(op.Targets, ","))
		}
		if strings.Join(got, ";") != strings.Join(tt.want, ";") {
			t.Errorf("demoCircuit(%d): got %v, want %v", tt.qubits, got, tt.want)
		}
	}
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("QVIZ_LOG_FILE", filepath.Join(t.TempDir(), "qviz.log"))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"qviz"}, args...))
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	prog := "OPENQASM 2.0;\nqreg q[2];\nh q[0];\ncx q[0],q[1];\n"
	out, err := runApp(t, "run", "--program", prog, "--seed", "7", "--shots", "20", "--qasm")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{"2 qubits, 2 operations", "Histogram (20 shots)", "cx q[0],q[1];", "measure q[1] -> c[1];"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.qasm")
	if err := os.WriteFile(path, []byte("qreg q[3];\nx q[2];\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runApp(t, "run", "--file", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "3 qubits, 1 operations") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"unknown gate", []string{"run", "--program", "qreg q[1];\nfoo q[0];"}, sim.ErrUnknownGate},
		{"unknown qubit", []string{"run", "--program", "qreg q[1];\nh q[3];"}, sim.ErrUnknownQubit},
		{"too many qubits", []string{"run", "--qubits", "99"}, nil},
		{"oversized program", []string{"run", "--program", "qreg q[200];\nh q[0];"}, sim.ErrRegisterSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("got %v, want errors.Is %v", err, tt.is)
			}
		})
	}
}
