package sim

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewCircuit(t *testing.T) {
	Convey("Given circuits of several sizes", t, func() {
		for _, n := range []int{0, 1, 2, 5, 16} {
			c := NewCircuit(n)

			Convey(fmt.Sprintf("A %d-qubit circuit should start in the ground state", n), func() {
				qs := c.Qubits()
				So(len(qs), ShouldEqual, n)
				for i, q := range qs {
					So(q.ID, ShouldEqual, fmt.Sprintf("q%d", i))
					So(q.Alpha, ShouldEqual, 1)
					So(q.Beta, ShouldEqual, 0)
					So(q.Entangled, ShouldBeEmpty)
				}
				So(c.State(), ShouldEqual, Idle)
				So(c.CurrentStep(), ShouldEqual, 0)
				So(c.ID(), ShouldNotBeBlank)
			})
		}
	})
}

func TestBuildingCircuits(t *testing.T) {
	Convey("Given a two-qubit circuit", t, func() {
		c := NewCircuit(2)

		Convey("Appended operations should be numbered in order", func() {
			op0, err := c.Append("H", "q0")
			So(err, ShouldBeNil)
			op1, err := c.Append("CX", "q0", "q1")
			So(err, ShouldBeNil)

			So(op0.Step, ShouldEqual, 0)
			So(op1.Step, ShouldEqual, 1)
			So(c.Len(), ShouldEqual, 2)
			So(c.Operations()[1].Targets, ShouldResemble, []string{"q0", "q1"})
		})

		Convey("Hadamard with two targets should fail at build time", func() {
			_, err := c.Append("H", "q0", "q1")
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
			So(c.Len(), ShouldEqual, 0)
		})

		Convey("An unknown gate should fail at build time", func() {
			_, err := c.Append("QFT", "q0")
			So(errors.Is(err, ErrUnknownGate), ShouldBeTrue)
		})

		Convey("An unknown qubit should fail at build time", func() {
			_, err := c.Append("X", "q9")
			So(errors.Is(err, ErrUnknownQubit), ShouldBeTrue)
		})

		Convey("A two-qubit gate on one qubit should fail at build time", func() {
			_, err := c.Append("CX", "q1", "q1")
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)
		})

		Convey("Appending while running should be refused", func() {
			_, _ = c.Append("H", "q0")
			So(c.Start(), ShouldBeNil)
			_, err := c.Append("X", "q1")
			So(errors.Is(err, ErrInvalidState), ShouldBeTrue)
		})

		Convey("Gates whose kind and arity disagree should fail at build time", func() {
			_, err := c.AppendGate(Gate{})
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)

			_, err = c.AppendGate(Gate{ID: "HALFCX", Arity: Single, Kind: KindControlled}, "q0")
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)

			_, err = c.AppendGate(Gate{ID: "WIDEX", Arity: Double, Kind: KindSingle}, "q0", "q1")
			So(errors.Is(err, ErrArityMismatch), ShouldBeTrue)

			_, err = c.AppendGate(Gate{ID: "ODD", Arity: Single, Kind: Kind(9)}, "q0")
			So(errors.Is(err, ErrUnknownGate), ShouldBeTrue)

			So(c.Len(), ShouldEqual, 0)
			So(c.Run(), ShouldBeNil)
			So(c.State(), ShouldEqual, Completed)
		})
	})

	Convey("A negative size should give an empty circuit", t, func() {
		c := NewCircuit(-1)
		So(c.NumQubits(), ShouldEqual, 0)
		So(c.Qubits(), ShouldBeEmpty)
	})
}

func TestExecution(t *testing.T) {
	Convey("Given the circuit [H(q0), CX(q0,q1)]", t, func() {
		c := NewCircuit(2)
		_, _ = c.Append("H", "q0")
		_, _ = c.Append("CX", "q0", "q1")

		Convey("Stepping before Start should be refused", func() {
			So(errors.Is(c.Step(), ErrInvalidState), ShouldBeTrue)
		})

		Convey("When started and stepped twice", func() {
			So(c.Start(), ShouldBeNil)
			So(c.State(), ShouldEqual, Running)
			So(c.Step(), ShouldBeNil)
			So(c.CurrentStep(), ShouldEqual, 1)
			So(c.Step(), ShouldBeNil)

			Convey("Then the circuit should be completed with q0 and q1 entangled", func() {
				So(c.CurrentStep(), ShouldEqual, 2)
				So(c.State(), ShouldEqual, Completed)

				q0, _ := c.Qubit("q0")
				q1, _ := c.Qubit("q1")
				So(q0.IsEntangledWith("q1"), ShouldBeTrue)
				So(q1.IsEntangledWith("q0"), ShouldBeTrue)
				So(q1.Beta, ShouldEqual, 1)
			})

			Convey("Then further steps should be refused", func() {
				So(errors.Is(c.Step(), ErrInvalidState), ShouldBeTrue)
			})

			Convey("Then Start should replay from the ground state and keep the log", func() {
				_, err := c.Measure("q1")
				So(err, ShouldBeNil)

				So(c.Start(), ShouldBeNil)
				So(c.CurrentStep(), ShouldEqual, 0)
				q1, _ := c.Qubit("q1")
				So(q1.Alpha, ShouldEqual, 1)
				So(q1.Entangled, ShouldBeEmpty)
				So(q1.Active, ShouldBeFalse)
				So(c.Measurements(), ShouldHaveLength, 1)
			})
		})

		Convey("Only qubits touched by the latest step should be active", func() {
			So(c.Start(), ShouldBeNil)
			So(c.Step(), ShouldBeNil)
			q0, _ := c.Qubit("q0")
			q1, _ := c.Qubit("q1")
			So(q0.Active, ShouldBeTrue)
			So(q1.Active, ShouldBeFalse)

			c.ClearActive()
			q0, _ = c.Qubit("q0")
			So(q0.Active, ShouldBeFalse)
		})

		Convey("While paused no operation should be applied", func() {
			So(c.Start(), ShouldBeNil)
			So(c.Pause(), ShouldBeNil)
			So(c.State(), ShouldEqual, Paused)
			So(errors.Is(c.Step(), ErrInvalidState), ShouldBeTrue)
			So(c.CurrentStep(), ShouldEqual, 0)

			So(c.Resume(), ShouldBeNil)
			So(c.Step(), ShouldBeNil)
			So(c.CurrentStep(), ShouldEqual, 1)
		})

		Convey("Pause and resume outside their source states should be refused", func() {
			So(errors.Is(c.Pause(), ErrInvalidState), ShouldBeTrue)
			So(errors.Is(c.Resume(), ErrInvalidState), ShouldBeTrue)
			So(c.Start(), ShouldBeNil)
			So(errors.Is(c.Start(), ErrInvalidState), ShouldBeTrue)
			So(errors.Is(c.Resume(), ErrInvalidState), ShouldBeTrue)
		})

		Convey("Run should execute everything in order", func() {
			So(c.Run(), ShouldBeNil)
			So(c.State(), ShouldEqual, Completed)
			So(c.CurrentStep(), ShouldEqual, 2)
		})

		Convey("Reset should restore ground state and clear measurements", func() {
			So(c.Run(), ShouldBeNil)
			_, err := c.Measure("q0")
			So(err, ShouldBeNil)

			c.Reset()
			So(c.State(), ShouldEqual, Idle)
			So(c.CurrentStep(), ShouldEqual, 0)
			So(c.Measurements(), ShouldBeEmpty)
			So(c.Len(), ShouldEqual, 2)
			for _, q := range c.Qubits() {
				So(q.Alpha, ShouldEqual, 1)
				So(q.Beta, ShouldEqual, 0)
				So(q.Entangled, ShouldBeEmpty)
			}
		})

		Convey("Clear should drop all operations", func() {
			c.Clear()
			So(c.Len(), ShouldEqual, 0)
			So(c.State(), ShouldEqual, Idle)
		})
	})

	Convey("Given an empty circuit", t, func() {
		c := NewCircuit(1)

		Convey("Start should complete immediately", func() {
			So(c.Start(), ShouldBeNil)
			So(c.State(), ShouldEqual, Completed)
		})
	})
}

func TestExecStateString(t *testing.T) {
	Convey("Each state should have a readable name", t, func() {
		So(Idle.String(), ShouldEqual, "idle")
		So(Running.String(), ShouldEqual, "running")
		So(Paused.String(), ShouldEqual, "paused")
		So(Completed.String(), ShouldEqual, "completed")
		So(ExecState(42).String(), ShouldEqual, "unknown")
	})
}
