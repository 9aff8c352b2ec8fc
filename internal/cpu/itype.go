package cpu

import (
	"fmt"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
)

// execIType handles every I-type opcode: the plain legacy ops, the
// non-memory immediate ops, and the six POP reuse-encoding families
// (POP06/07/10/30/26/27; POP66/76 go through execLongImmIType). Loads
// and stores are delegated to execMemIType.
func execIType(rf interfaces.RegisterFile, mem interfaces.Memory, w instr.Word, updatedPC uint32) (bool, error) {
	switch w.Op() {
	case instr.OpBeq:
		rs, rt := rf.Get(w.Rs()), rf.Get(w.Rt())
		if rs.Unsigned == rt.Unsigned {
			rf.DelayedBranch(branchTarget(updatedPC, w.Imm16()))
		}
		return true, nil
	case instr.OpBne:
		rs, rt := rf.Get(w.Rs()), rf.Get(w.Rt())
		if rs.Unsigned != rt.Unsigned {
			rf.DelayedBranch(branchTarget(updatedPC, w.Imm16()))
		}
		return true, nil
	case instr.OpAddiu:
		rs := rf.Get(w.Rs())
		rf.SetSigned(w.Rt(), rs.Signed+sx16(w.Imm16()))
		return true, nil
	case instr.OpAui:
		rs := rf.Get(w.Rs())
		rf.SetSigned(w.Rt(), rs.Signed+int32(uint32(w.Imm16())<<16))
		return true, nil
	case instr.OpSlti:
		rs := rf.Get(w.Rs())
		rf.SetUnsigned(w.Rt(), boolToReg(rs.Signed < sx16(w.Imm16())))
		return true, nil
	case instr.OpSltiu:
		rs := rf.Get(w.Rs())
		rf.SetUnsigned(w.Rt(), boolToReg(rs.Unsigned < uint32(sx16(w.Imm16()))))
		return true, nil
	case instr.OpAndi:
		rs := rf.Get(w.Rs())
		rf.SetUnsigned(w.Rt(), rs.Unsigned&uint32(w.Imm16()))
		return true, nil
	case instr.OpOri:
		rs := rf.Get(w.Rs())
		rf.SetUnsigned(w.Rt(), rs.Unsigned|uint32(w.Imm16()))
		return true, nil
	case instr.OpXori:
		rs := rf.Get(w.Rs())
		rf.SetUnsigned(w.Rt(), rs.Unsigned^uint32(w.Imm16()))
		return true, nil
	case instr.OpPOP06:
		return execPOP06(rf, w, updatedPC)
	case instr.OpPOP07:
		return execPOP07(rf, w, updatedPC)
	case instr.OpPOP10:
		return execPOP10(rf, w, updatedPC)
	case instr.OpPOP30:
		return execPOP30(rf, w, updatedPC)
	case instr.OpPOP26:
		return execPOP26(rf, w, updatedPC)
	case instr.OpPOP27:
		return execPOP27(rf, w, updatedPC)
	case instr.OpLb, instr.OpLh, instr.OpLw, instr.OpLbu, instr.OpLhu,
		instr.OpSb, instr.OpSh, instr.OpSw:
		return execMemIType(rf, mem, w)
	default:
		return false, fmt.Errorf("cpu: unrecognised I-type op 0x%02X", w.Op())
	}
}

// execPOP06 decodes BLEZ/BLEZALC/BGEZALC/BGEUC. The predicates below must be
// evaluated in this exact order: each later case assumes every earlier one
// was false.
func execPOP06(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	rsIdx, rtIdx := w.Rs(), w.Rt()
	rs, rt := rf.Get(rsIdx), rf.Get(rtIdx)
	target := branchTarget(updatedPC, w.Imm16())

	switch {
	case rtIdx == 0: // BLEZ
		if rs.Signed <= 0 {
			rf.DelayedBranch(target)
		}
	case rsIdx == 0 && rtIdx != 0: // BLEZALC
		rf.SetUnsigned(31, updatedPC)
		if rt.Signed <= 0 {
			rf.SetPC(target)
		}
	case rsIdx == rtIdx && rtIdx != 0: // BGEZALC
		rf.SetUnsigned(31, updatedPC)
		if rt.Signed >= 0 {
			rf.SetPC(target)
		}
	case rsIdx != rtIdx && rsIdx != 0 && rtIdx != 0: // BGEUC
		if rs.Unsigned >= rt.Unsigned {
			rf.SetPC(target)
		}
	}
	return true, nil
}

// execPOP07 decodes BGTZ/BGTZALC/BLTZALC/BLTUC, POP06's strict mirror.
func execPOP07(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	rsIdx, rtIdx := w.Rs(), w.Rt()
	rs, rt := rf.Get(rsIdx), rf.Get(rtIdx)
	target := branchTarget(updatedPC, w.Imm16())

	switch {
	case rtIdx == 0: // BGTZ
		if rs.Signed > 0 {
			rf.DelayedBranch(target)
		}
	case rsIdx == 0 && rtIdx != 0: // BGTZALC
		rf.SetUnsigned(31, updatedPC)
		if rt.Signed > 0 {
			rf.SetPC(target)
		}
	case rsIdx == rtIdx && rtIdx != 0: // BLTZALC
		rf.SetUnsigned(31, updatedPC)
		if rt.Signed < 0 {
			rf.SetPC(target)
		}
	case rsIdx != rtIdx && rsIdx != 0 && rtIdx != 0: // BLTUC
		if rs.Unsigned < rt.Unsigned {
			rf.SetPC(target)
		}
	}
	return true, nil
}

// execPOP10 decodes BEQZALC/BEQC/BOVC. The rs<rt / rs≥rt gates compare
// register *indices*, not values — this encoding multiplexes its
// sub-instructions on which operand register slot is numerically lower, not
// on the values those registers hold.
func execPOP10(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	rsIdx, rtIdx := w.Rs(), w.Rt()
	rs, rt := rf.Get(rsIdx), rf.Get(rtIdx)
	target := branchTarget(updatedPC, w.Imm16())

	switch {
	case rsIdx == 0 && rtIdx != 0 && rsIdx < rtIdx: // BEQZALC
		rf.SetUnsigned(31, updatedPC)
		if rt.Unsigned == 0 {
			rf.SetPC(target)
		}
	case rsIdx != 0 && rtIdx != 0 && rsIdx < rtIdx: // BEQC
		if rs.Unsigned == rt.Unsigned {
			rf.SetPC(target)
		}
	case rsIdx >= rtIdx: // BOVC
		if signedAddOverflows(rs.Unsigned, rt.Unsigned) {
			rf.SetPC(target)
		}
	}
	return true, nil
}

// execPOP30 decodes BNEZALC/BNEC/BNVC, POP10's "not equal"/"no overflow"
// mirror, under the same index-based gating.
func execPOP30(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	rsIdx, rtIdx := w.Rs(), w.Rt()
	rs, rt := rf.Get(rsIdx), rf.Get(rtIdx)
	target := branchTarget(updatedPC, w.Imm16())

	switch {
	case rsIdx == 0 && rtIdx != 0 && rsIdx < rtIdx: // BNEZALC
		rf.SetUnsigned(31, updatedPC)
		if rt.Unsigned != 0 {
			rf.SetPC(target)
		}
	case rsIdx != 0 && rtIdx != 0 && rsIdx < rtIdx: // BNEC
		if rs.Unsigned != rt.Unsigned {
			rf.SetPC(target)
		}
	case rsIdx >= rtIdx: // BNVC
		if !signedAddOverflows(rs.Unsigned, rt.Unsigned) {
			rf.SetPC(target)
		}
	}
	return true, nil
}

// signedAddOverflows reports whether adding a and b as 32-bit two's
// complement values overflows, computed as carry_out(a+b) ≠ bit31(a+b) over
// the operands sign-extended to 64 bits (carry_out is bit 32 of that sum).
func signedAddOverflows(a, b uint32) bool {
	sum64 := uint64(int64(int32(a)) + int64(int32(b)))
	carry := (sum64>>32)&1 == 1
	signBit := (sum64>>31)&1 == 1
	return carry != signBit
}

// execPOP26 decodes BLEZC/BGEZC/BGEC, value-based (no index ambiguity).
func execPOP26(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	rsIdx, rtIdx := w.Rs(), w.Rt()
	rs, rt := rf.Get(rsIdx), rf.Get(rtIdx)
	target := branchTarget(updatedPC, w.Imm16())

	switch {
	case rsIdx == 0 && rtIdx != 0: // BLEZC
		if rt.Signed <= 0 {
			rf.SetPC(target)
		}
	case rsIdx == rtIdx && rsIdx != 0: // BGEZC
		if rt.Signed >= 0 {
			rf.SetPC(target)
		}
	default: // BGEC
		if rs.Signed >= rt.Signed {
			rf.SetPC(target)
		}
	}
	return true, nil
}

// execPOP27 decodes BGTZC/BLTZC/BLTC, POP26's strict mirror.
func execPOP27(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	rsIdx, rtIdx := w.Rs(), w.Rt()
	rs, rt := rf.Get(rsIdx), rf.Get(rtIdx)
	target := branchTarget(updatedPC, w.Imm16())

	switch {
	case rsIdx == 0 && rtIdx != 0: // BGTZC
		if rt.Signed > 0 {
			rf.SetPC(target)
		}
	case rsIdx == rtIdx && rsIdx != 0: // BLTZC
		if rt.Signed < 0 {
			rf.SetPC(target)
		}
	default: // BLTC
		if rs.Signed < rt.Signed {
			rf.SetPC(target)
		}
	}
	return true, nil
}
