// Command qviz is a terminal visualiser and headless runner for small
// real-amplitude quantum circuits.
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"qviz/internal/config"
	"qviz/internal/logging"
	"qviz/sim"
)

// circuitFlags select how the circuit is built and driven. They are attached
// to the app and to each command so they work on either side of the command
// name.
var circuitFlags = []cli.Flag{
	&cli.IntFlag{Name: "qubits", Aliases: []string{"n"}, Usage: "register size when no program is given"},
	&cli.Uint64Flag{Name: "seed", Usage: "measurement seed (0 = time based)"},
	&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "read an OpenQASM 2.0 program from `PATH`"},
	&cli.StringFlag{Name: "program", Aliases: []string{"p"}, Usage: "inline OpenQASM 2.0 program"},
	&cli.DurationFlag{Name: "interval", Usage: "playback interval between steps"},
	&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "qviz:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	runFlags := append([]cli.Flag{
		&cli.IntFlag{Name: "shots", Usage: "sample the circuit this many times and print the histogram"},
		&cli.BoolFlag{Name: "qasm", Usage: "print the circuit as OpenQASM 2.0"},
	}, circuitFlags...)

	return &cli.App{
		Name:   "qviz",
		Usage:  "step through small quantum circuits",
		Flags:  circuitFlags,
		Action: tuiCommand,
		Commands: []*cli.Command{
			{
				Name:   "tui",
				Usage:  "interactive circuit player (default)",
				Flags:  circuitFlags,
				Action: tuiCommand,
			},
			{
				Name:   "run",
				Usage:  "execute the circuit once, measure every qubit and print the result",
				Flags:  runFlags,
				Action: runCommand,
			},
		},
	}
}

// env bundles what every command needs after flags and config are merged.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
	rand   *rand.Rand
}

// setup loads configuration, applies flag overrides and opens the log file.
func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.IsSet("qubits") {
		cfg.Qubits = c.Int("qubits")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if c.IsSet("interval") {
		cfg.StepInterval = c.Duration("interval")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, closer := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	log.Info().Int("qubits", cfg.Qubits).Uint64("seed", cfg.Seed).Msg("qviz starting")

	return &env{cfg: cfg, log: log, closer: closer, rand: newRand(cfg.Seed)}, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// loadCircuit builds the circuit from --file, --program or the demo circuit,
// in that order of preference.
func loadCircuit(c *cli.Context, e *env) (*sim.Circuit, error) {
	opts := []sim.Option{sim.WithLogger(e.log), sim.WithRand(e.rand)}

	switch {
	case c.String("file") != "":
		src, err := os.ReadFile(c.String("file"))
		if err != nil {
			return nil, fmt.Errorf("read program: %w", err)
		}
		circ, err := sim.ParseProgram(string(src), opts...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", c.String("file"), err)
		}
		return circ, nil
	case c.String("program") != "":
		circ, err := sim.ParseProgram(c.String("program"), opts...)
		if err != nil {
			return nil, fmt.Errorf("parse program: %w", err)
		}
		return circ, nil
	default:
		return demoCircuit(e.cfg.Qubits, opts...)
	}
}

// demoCircuit puts q0 in superposition and chains CNOTs down the register.
func demoCircuit(n int, opts ...sim.Option) (*sim.Circuit, error) {
	circ := sim.NewCircuit(n, opts...)
	ids := circ.QubitIDs()
	if _, err := circ.Append("H", ids[0]); err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		if _, err := circ.Append("CX", ids[i-1], ids[i]); err != nil {
			return nil, err
		}
	}
	return circ, nil
}

func tuiCommand(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.closer.Close()

	circ, err := loadCircuit(c, e)
	if err != nil {
		return err
	}

	m := newModel(circ, e.cfg.StepInterval, e.log)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		e.log.Error().Err(err).Msg("tui exited with error")
		return err
	}
	e.log.Info().Msg("qviz stopped")
	return nil
}
