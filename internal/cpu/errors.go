package cpu

import "errors"

// ErrDivisionByZero is returned by SOP32/SOP33 when the divisor is zero.
var ErrDivisionByZero = errors.New("cpu: division by zero")

// ErrFPUUnimplemented is returned when decode recognises an FPU-class
// instruction; FPU arithmetic itself is out of scope for this core.
var ErrFPUUnimplemented = errors.New("cpu: FPU instruction recognised but not implemented")
