package cpu

import (
	"fmt"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
)

func execRType(rf interfaces.RegisterFile, w instr.Word, updatedPC uint32) (bool, error) {
	rs := rf.Get(w.Rs())
	rt := rf.Get(w.Rt())
	rd := w.Rd()
	shamt := w.Shamt()

	switch w.Func() {
	case instr.FuncAdd, instr.FuncAddu:
		rf.SetUnsigned(rd, rs.Unsigned+rt.Unsigned)
		return true, nil
	case instr.FuncSub, instr.FuncSubu:
		rf.SetUnsigned(rd, rs.Unsigned-rt.Unsigned)
		return true, nil
	case instr.FuncSop30:
		return execMulLowHigh(rf, rd, rs, rt, shamt, true)
	case instr.FuncSop31:
		return execMulLowHigh(rf, rd, rs, rt, shamt, false)
	case instr.FuncSop32:
		return execDivRem(rf, rd, rs, rt, shamt, true)
	case instr.FuncSop33:
		return execDivRem(rf, rd, rs, rt, shamt, false)
	case instr.FuncAnd:
		rf.SetUnsigned(rd, rs.Unsigned&rt.Unsigned)
		return true, nil
	case instr.FuncOr:
		rf.SetUnsigned(rd, rs.Unsigned|rt.Unsigned)
		return true, nil
	case instr.FuncXor:
		rf.SetUnsigned(rd, rs.Unsigned^rt.Unsigned)
		return true, nil
	case instr.FuncNor:
		rf.SetUnsigned(rd, ^(rs.Unsigned | rt.Unsigned))
		return true, nil
	case instr.FuncSll:
		rf.SetUnsigned(rd, rt.Unsigned<<shamt)
		return true, nil
	case instr.FuncSllv:
		rf.SetUnsigned(rd, rt.Unsigned<<(rs.Unsigned&31))
		return true, nil
	case instr.FuncSra:
		rf.SetUnsigned(rd, sra(rt.Unsigned, shamt))
		return true, nil
	case instr.FuncSrav:
		rf.SetUnsigned(rd, sra(rt.Unsigned, uint8(rs.Unsigned&31)))
		return true, nil
	case instr.FuncSrl:
		if w.Rs()&1 == 1 {
			rf.SetUnsigned(rd, rotr(rt.Unsigned, shamt))
		} else {
			rf.SetUnsigned(rd, rt.Unsigned>>shamt)
		}
		return true, nil
	case instr.FuncSrlv:
		shift := uint8(rs.Unsigned & 31)
		if shamt&1 == 1 {
			rf.SetUnsigned(rd, rotr(rt.Unsigned, shift))
		} else {
			rf.SetUnsigned(rd, rt.Unsigned>>shift)
		}
		return true, nil
	case instr.FuncSlt:
		rf.SetUnsigned(rd, boolToReg(rs.Signed < rt.Signed))
		return true, nil
	case instr.FuncSltu:
		rf.SetUnsigned(rd, boolToReg(rs.Unsigned < rt.Unsigned))
		return true, nil
	case instr.FuncJr:
		rf.DelayedBranch(rs.Unsigned)
		return true, nil
	case instr.FuncJalr:
		rf.SetUnsigned(31, updatedPC)
		rf.DelayedBranch(rs.Unsigned)
		return true, nil
	case instr.FuncSeleqz:
		if rt.Unsigned == 0 {
			rf.SetUnsigned(rd, rs.Unsigned)
		} else {
			rf.SetUnsigned(rd, 0)
		}
		return true, nil
	case instr.FuncSelnez:
		if rt.Unsigned == 0 {
			rf.SetUnsigned(rd, 0)
		} else {
			rf.SetUnsigned(rd, rs.Unsigned)
		}
		return true, nil
	case instr.FuncClz:
		rf.SetUnsigned(rd, uint32(clz(rs.Unsigned)))
		return true, nil
	case instr.FuncClo:
		rf.SetUnsigned(rd, uint32(clo(rs.Unsigned)))
		return true, nil
	case instr.FuncTeq, instr.FuncTne, instr.FuncTge, instr.FuncTgeu, instr.FuncTlt, instr.FuncTltu:
		return execTrap(rf, w, rs, rt)
	default:
		return false, fmt.Errorf("cpu: unrecognised SPECIAL func 0x%02X", w.Func())
	}
}

func boolToReg(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// execMulLowHigh implements SOP30 (signed) and SOP31 (unsigned): shamt=2
// selects the low 32 bits of the product, shamt=3 the high 32 bits.
func execMulLowHigh(rf interfaces.RegisterFile, rd uint8, rs, rt interfaces.Register, shamt uint8, signed bool) (bool, error) {
	switch shamt {
	case 2:
		rf.SetUnsigned(rd, rs.Unsigned*rt.Unsigned)
		return true, nil
	case 3:
		if signed {
			full := int64(rs.Signed) * int64(rt.Signed)
			rf.SetUnsigned(rd, uint32(uint64(full)>>32))
		} else {
			full := uint64(rs.Unsigned) * uint64(rt.Unsigned)
			rf.SetUnsigned(rd, uint32(full>>32))
		}
		return true, nil
	default:
		return false, fmt.Errorf("cpu: SOP30/31 unrecognised shamt %d", shamt)
	}
}

// execDivRem implements SOP32 (signed) and SOP33 (unsigned): shamt=2
// selects the quotient, shamt=3 the remainder.
func execDivRem(rf interfaces.RegisterFile, rd uint8, rs, rt interfaces.Register, shamt uint8, signed bool) (bool, error) {
	if rt.Unsigned == 0 {
		return false, ErrDivisionByZero
	}
	switch shamt {
	case 2:
		if signed {
			rf.SetSigned(rd, rs.Signed/rt.Signed)
		} else {
			rf.SetUnsigned(rd, rs.Unsigned/rt.Unsigned)
		}
		return true, nil
	case 3:
		if signed {
			rf.SetSigned(rd, rs.Signed%rt.Signed)
		} else {
			rf.SetUnsigned(rd, rs.Unsigned%rt.Unsigned)
		}
		return true, nil
	default:
		return false, fmt.Errorf("cpu: SOP32/33 unrecognised shamt %d", shamt)
	}
}

func execTrap(rf interfaces.RegisterFile, w instr.Word, rs, rt interfaces.Register) (bool, error) {
	var holds bool
	switch w.Func() {
	case instr.FuncTeq:
		holds = rs.Signed == rt.Signed
	case instr.FuncTne:
		holds = rs.Signed != rt.Signed
	case instr.FuncTge:
		holds = rs.Signed >= rt.Signed
	case instr.FuncTgeu:
		holds = rs.Unsigned >= rt.Unsigned
	case instr.FuncTlt:
		holds = rs.Signed < rt.Signed
	case instr.FuncTltu:
		holds = rs.Unsigned < rt.Unsigned
	}
	if holds {
		rf.SignalException(interfaces.ExceptionTrap, uint32(w))
		return false, nil
	}
	return true, nil
}
