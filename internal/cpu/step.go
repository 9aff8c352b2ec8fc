package cpu

import (
	"fmt"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
)

// Step fetches the word at PC, advances PC, decodes and dispatches it, and
// reports whether the instruction completed successfully. A false result
// with a nil error means an architectural trap fired (poll
// reg_file.Exception() for detail); a false result with a non-nil error
// means fetch, decode, a memory access, a division, or a range check
// failed. Step mutates reg_file and memory but performs no I/O and holds no
// state of its own between calls.
func Step(regFile interfaces.RegisterFile, mem interfaces.Memory) (bool, error) {
	fetchPC := regFile.GetPC()
	raw, err := mem.ReadU32(fetchPC)
	if err != nil {
		return false, err
	}

	regFile.UpdatePC()
	updatedPC := regFile.GetPC()

	w := instr.Word(raw)
	fam, err := instr.Classify(w)
	if err != nil {
		return false, err
	}

	switch fam {
	case instr.RType:
		return execRType(regFile, w, updatedPC)
	case instr.IType:
		return execIType(regFile, mem, w, updatedPC)
	case instr.LongImmIType:
		return execLongImmIType(regFile, w, updatedPC)
	case instr.JType:
		return execJType(regFile, w, updatedPC)
	case instr.RegimmIType:
		return execRegimm(regFile, w, updatedPC)
	case instr.Special3BSHFL:
		return execBSHFL(regFile, w)
	case instr.Special3Ext:
		return execExt(regFile, w)
	case instr.Special3Ins:
		return execIns(regFile, w)
	case instr.PCRelT1:
		return execPCRelT1(regFile, mem, w, fetchPC)
	case instr.PCRelT2:
		return execPCRelT2(regFile, w, fetchPC)
	case instr.FPURType, instr.FPUTType, instr.FPUBType:
		return false, ErrFPUUnimplemented
	default:
		return false, fmt.Errorf("cpu: unhandled instruction family %s", fam)
	}
}
