package cpu

import (
	"fmt"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
)

// execLongImmIType decodes POP66 (JIC/BEQZC) and POP76 (JIALC/BNEZC). Which
// sub-instruction applies is a runtime check on the rs field rather than a
// decode-time distinction, since both share one encoding shape.
func execLongImmIType(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	rsIdx := w.Rs()

	switch w.Op() {
	case instr.OpPOP66:
		if rsIdx == 0 { // JIC
			rt := rf.Get(w.Rt())
			rf.SetPC(uint32(int32(rt.Unsigned) + sx16(w.Imm16())))
			return true, nil
		}
		// BEQZC
		rs := rf.Get(rsIdx)
		target := uint32(int32(updatedPC) + sx21(w.Imm21())*4)
		if rs.Unsigned == 0 {
			rf.SetPC(target)
		}
		return true, nil
	case instr.OpPOP76:
		if rsIdx == 0 { // JIALC
			rt := rf.Get(w.Rt())
			rf.SetUnsigned(31, updatedPC)
			rf.SetPC(uint32(int32(rt.Unsigned) + sx16(w.Imm16())))
			return true, nil
		}
		// BNEZC
		rs := rf.Get(rsIdx)
		target := uint32(int32(updatedPC) + sx21(w.Imm21())*4)
		if rs.Unsigned != 0 {
			rf.SetPC(target)
		}
		return true, nil
	default:
		return false, fmt.Errorf("cpu: unrecognised long-immediate op 0x%02X", w.Op())
	}
}
