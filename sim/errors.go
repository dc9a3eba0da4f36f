package sim

import "errors"

var (
	ErrUnknownGate   = errors.New("unknown gate")
	ErrArityMismatch = errors.New("gate arity does not match target count")
	ErrUnknownQubit  = errors.New("unknown qubit")
	ErrInvalidState  = errors.New("operation not allowed in current state")
	ErrNonUnitary    = errors.New("gate matrix is not unitary")
	ErrRegisterSize  = errors.New("register size out of range")
)
