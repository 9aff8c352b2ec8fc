// Package regfile implements the MIPS32 register file: 32 general-purpose
// registers, the program counter, the one-slot delayed-branch target, and
// the most recent architectural exception.
//
// MIPS32 has no banked registers and no condition-code bitfield to derive
// flags from, so this is a flat struct of cells behind a Get/Set accessor
// pair, plus the one-slot delayed-branch register and exception slot the
// executor needs.
package regfile

import "mipsr6/internal/interfaces"

// RegisterFile is the concrete MIPS32 GPR bank plus PC and pending-branch
// slot. The zero value is a valid, fully zeroed register file.
type RegisterFile struct {
	regs [32]uint32
	pc   uint32

	pendingBranch    uint32
	pendingBranchSet bool

	exception    interfaces.Exception
	exceptionSet bool
}

var _ interfaces.RegisterFile = (*RegisterFile)(nil)

// New returns a zero-initialised register file.
func New() *RegisterFile {
	return &RegisterFile{}
}

// Get returns both interpretations of register idx. Index 0 always reads
// as zero.
func (r *RegisterFile) Get(idx uint8) interfaces.Register {
	if idx == 0 {
		return interfaces.Register{}
	}
	v := r.regs[idx&0x1F]
	return interfaces.Register{Signed: int32(v), Unsigned: v}
}

// SetSigned writes v into register idx, sign bit and all, unless idx is 0.
func (r *RegisterFile) SetSigned(idx uint8, v int32) {
	r.setRaw(idx, uint32(v))
}

// SetUnsigned writes v into register idx unless idx is 0. The stored bit
// pattern is identical to SetSigned given equivalent bits.
func (r *RegisterFile) SetUnsigned(idx uint8, v uint32) {
	r.setRaw(idx, v)
}

func (r *RegisterFile) setRaw(idx uint8, v uint32) {
	if idx == 0 {
		return
	}
	r.regs[idx&0x1F] = v
}

// GetPC returns the current program counter.
func (r *RegisterFile) GetPC() uint32 { return r.pc }

// SetPC overwrites the program counter directly, used by r6 compact
// branches which have no delay slot.
func (r *RegisterFile) SetPC(v uint32) { r.pc = v }

// UpdatePC commits a pending delayed branch, or advances PC by 4.
func (r *RegisterFile) UpdatePC() {
	if r.pendingBranchSet {
		r.pc = r.pendingBranch
		r.pendingBranchSet = false
		return
	}
	r.pc += 4
}

// DelayedBranch arms the pending-branch slot. Calling it twice within the
// same instruction is a programmer error in the handler, not a runtime one;
// the second call simply overwrites the first, matching the C++ reference
// (mips_emulator::RegisterFile), which has no re-entrancy guard either.
func (r *RegisterFile) DelayedBranch(target uint32) {
	r.pendingBranch = target
	r.pendingBranchSet = true
}

// SignalException records the most recent trap.
func (r *RegisterFile) SignalException(cause interfaces.ExceptionCause, raw uint32) {
	r.exception = interfaces.Exception{Cause: cause, Raw: raw}
	r.exceptionSet = true
}

// Exception returns the most recently recorded exception, if any.
func (r *RegisterFile) Exception() (interfaces.Exception, bool) {
	return r.exception, r.exceptionSet
}
