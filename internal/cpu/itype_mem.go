package cpu

import (
	"fmt"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
)

// execMemIType handles the load/store I-type opcodes: effective address
// rs + sx16(imm), signed loads sign-extend, unsigned loads zero-extend.
func execMemIType(rf interfaces.RegisterFile, mem interfaces.Memory, w instr.Word) (bool, error) {
	rs := rf.Get(w.Rs())
	ea := uint32(int32(rs.Unsigned) + sx16(w.Imm16()))

	switch w.Op() {
	case instr.OpLb:
		v, err := mem.ReadI8(ea)
		if err != nil {
			return false, err
		}
		rf.SetSigned(w.Rt(), int32(v))
		return true, nil
	case instr.OpLh:
		v, err := mem.ReadI16(ea)
		if err != nil {
			return false, err
		}
		rf.SetSigned(w.Rt(), int32(v))
		return true, nil
	case instr.OpLw:
		v, err := mem.ReadI32(ea)
		if err != nil {
			return false, err
		}
		rf.SetSigned(w.Rt(), v)
		return true, nil
	case instr.OpLbu:
		v, err := mem.ReadU8(ea)
		if err != nil {
			return false, err
		}
		rf.SetUnsigned(w.Rt(), uint32(v))
		return true, nil
	case instr.OpLhu:
		v, err := mem.ReadU16(ea)
		if err != nil {
			return false, err
		}
		rf.SetUnsigned(w.Rt(), uint32(v))
		return true, nil
	case instr.OpSb:
		rt := rf.Get(w.Rt())
		if err := mem.WriteU8(ea, uint8(rt.Unsigned)); err != nil {
			return false, err
		}
		return true, nil
	case instr.OpSh:
		rt := rf.Get(w.Rt())
		if err := mem.WriteU16(ea, uint16(rt.Unsigned)); err != nil {
			return false, err
		}
		return true, nil
	case instr.OpSw:
		rt := rf.Get(w.Rt())
		if err := mem.WriteU32(ea, rt.Unsigned); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, fmt.Errorf("cpu: unrecognised memory I-type op 0x%02X", w.Op())
	}
}
