package cpu

import (
	"fmt"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
)

func execJType(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	switch w.Op() {
	case instr.OpJ:
		jta := (w.Address26() << 2) | (updatedPC & 0xF000_0000)
		rf.DelayedBranch(jta)
		return true, nil
	case instr.OpJal:
		jta := (w.Address26() << 2) | (updatedPC & 0xF000_0000)
		rf.SetUnsigned(31, updatedPC)
		rf.DelayedBranch(jta)
		return true, nil
	case instr.OpBc:
		rf.SetPC(uint32(int32(updatedPC) + sx26(w.Address26())*4))
		return true, nil
	case instr.OpBalc:
		rf.SetUnsigned(31, updatedPC)
		rf.SetPC(uint32(int32(updatedPC) + sx26(w.Address26())*4))
		return true, nil
	default:
		return false, fmt.Errorf("cpu: unrecognised J-type op 0x%02X", w.Op())
	}
}
