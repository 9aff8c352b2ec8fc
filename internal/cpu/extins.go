package cpu

import (
	"fmt"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
)

func fieldMask(size uint32) uint32 {
	if size == 32 {
		return 0xFFFF_FFFF
	}
	return (uint32(1) << size) - 1
}

func execExt(rf interfaces.RegisterFile, w instr.Word) (bool, error) {
	lsb := w.Lsb()
	size := uint32(w.Msbd()) + 1
	if lsb >= 32 || size == 0 || size > 32 || uint32(lsb)+size > 32 {
		return false, fmt.Errorf("cpu: EXT range invalid lsb=%d size=%d", lsb, size)
	}

	rs := rf.Get(w.Rs())
	v := (rs.Unsigned >> lsb) & fieldMask(size)
	rf.SetUnsigned(w.Rt(), v)
	return true, nil
}

func execIns(rf interfaces.RegisterFile, w instr.Word) (bool, error) {
	lsb := w.Lsb()
	msb := w.Msb()
	if msb < lsb {
		return false, fmt.Errorf("cpu: INS msb(%d) < lsb(%d) is undefined", msb, lsb)
	}
	size := uint32(msb) - uint32(lsb) + 1
	if lsb >= 32 || size == 0 || size > 32 || uint32(lsb)+size > 32 {
		return false, fmt.Errorf("cpu: INS range invalid lsb=%d size=%d", lsb, size)
	}

	rs := rf.Get(w.Rs())
	rt := rf.Get(w.Rt())
	mask := fieldMask(size)
	cleared := rt.Unsigned &^ (mask << lsb)
	inserted := (rs.Unsigned & mask) << lsb
	rf.SetUnsigned(w.Rt(), cleared|inserted)
	return true, nil
}
