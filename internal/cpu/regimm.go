package cpu

import (
	"fmt"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
)

func execRegimm(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	rs := rf.Get(w.Rs())
	target := branchTarget(updatedPC, w.Imm16())

	switch w.RegimmOp() {
	case instr.RegimmBgez:
		if rs.Signed >= 0 {
			rf.DelayedBranch(target)
		}
		return true, nil
	case instr.RegimmBltz:
		if rs.Signed < 0 {
			rf.DelayedBranch(target)
		}
		return true, nil
	default:
		return false, fmt.Errorf("cpu: unrecognised REGIMM sub-op 0x%02X", w.RegimmOp())
	}
}
