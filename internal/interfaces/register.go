package interfaces

// ExceptionCause identifies why the register file's exception slot was set.
type ExceptionCause uint8

const (
	// ExceptionTrap is raised by the conditional Tcc family (TEQ, TNE, TGE,
	// TGEU, TLT, TLTU) when their condition holds.
	ExceptionTrap ExceptionCause = iota
)

// Exception is the most recent architectural exception recorded by the
// register file. Raw is the instruction word that raised it.
type Exception struct {
	Cause ExceptionCause
	Raw   uint32
}

// Register is the dual signed/unsigned view of one 32-bit GPR cell.
type Register struct {
	Signed   int32
	Unsigned uint32
}

// RegisterFile is the contract the executor mutates every step. Register
// index 0 always reads as zero and silently drops writes.
type RegisterFile interface {
	Get(idx uint8) Register
	SetSigned(idx uint8, v int32)
	SetUnsigned(idx uint8, v uint32)

	GetPC() uint32
	SetPC(v uint32)

	// UpdatePC commits a pending delayed branch to PC and clears it, or
	// advances PC by 4 when none is pending.
	UpdatePC()
	// DelayedBranch arms the one-slot pending branch target. Must not be
	// called twice within the same instruction.
	DelayedBranch(target uint32)

	SignalException(cause ExceptionCause, raw uint32)
	Exception() (Exception, bool)
}
