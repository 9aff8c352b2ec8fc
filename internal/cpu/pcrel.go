package cpu

import (
	"fmt"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
)

// Both PC-relative families compute their address against the PC of the
// instruction itself — the address it was fetched from — not the PC already
// advanced past it. Step captures that value before calling UpdatePC and
// passes it through as fetchPC.

func execPCRelT1(rf interfaces.RegisterFile, mem interfaces.Memory, w instr.Word, fetchPC uint32) (bool, error) {
	shifted := w.PcrelImm19() << 2
	a := uint32(int32(fetchPC) + sx21(shifted))
	dst := w.Rs()

	switch w.PcrelTop2() {
	case 0: // ADDIUPC
		rf.SetUnsigned(dst, a)
		return true, nil
	case 1: // LWPC
		v, err := mem.ReadU32(a)
		if err != nil {
			return false, err
		}
		rf.SetUnsigned(dst, v)
		return true, nil
	default:
		return false, fmt.Errorf("cpu: unrecognised PC-relative type-1 func %d", w.PcrelTop2())
	}
}

func execPCRelT2(rf interfaces.RegisterFile, w instr.Word, fetchPC uint32) (bool, error) {
	a := uint32(int32(fetchPC) + int32(uint32(w.PcrelImm16())<<16))
	dst := w.Rs()

	switch w.PcrelFull5() {
	case 0x1E: // ALUIPC
		rf.SetUnsigned(dst, a&0xFFFF_0000)
		return true, nil
	case 0x1F: // AUIPC
		rf.SetUnsigned(dst, a)
		return true, nil
	default:
		return false, fmt.Errorf("cpu: unrecognised PC-relative type-2 func 0x%02X", w.PcrelFull5())
	}
}
