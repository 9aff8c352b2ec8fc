package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mipsr6/internal/instr"
	"mipsr6/internal/interfaces"
	"mipsr6/internal/memory"
	"mipsr6/internal/regfile"
)

func encodeR(op, rs, rt, rd, shamt, fn uint32) uint32 {
	return op<<26 | rs<<21 | rt<<16 | rd<<11 | shamt<<6 | fn
}

func encodeI(op, rs, rt uint32, imm16 uint16) uint32 {
	return op<<26 | rs<<21 | rt<<16 | uint32(imm16)
}

func encodeJ(op, address uint32) uint32 {
	return op<<26 | (address & 0x3FF_FFFF)
}

// newMachine places word at PC 0 in a fresh register file and memory and
// returns both ready for a single Step call.
func newMachine(t *testing.T, word uint32) (*regfile.RegisterFile, *memory.Memory) {
	t.Helper()
	rf := regfile.New()
	mem := memory.New(64)
	require.NoError(t, mem.WriteU32(0, word))
	return rf, mem
}

// offsetMemory presents a small flat memory as if its first byte sat at
// base, so a test can fetch from a high PC without allocating up to it.
type offsetMemory struct {
	mem  *memory.Memory
	base uint32
}

func (m offsetMemory) ReadU8(a uint32) (uint8, error)    { return m.mem.ReadU8(a - m.base) }
func (m offsetMemory) ReadI8(a uint32) (int8, error)     { return m.mem.ReadI8(a - m.base) }
func (m offsetMemory) ReadU16(a uint32) (uint16, error)  { return m.mem.ReadU16(a - m.base) }
func (m offsetMemory) ReadI16(a uint32) (int16, error)   { return m.mem.ReadI16(a - m.base) }
func (m offsetMemory) ReadU32(a uint32) (uint32, error)  { return m.mem.ReadU32(a - m.base) }
func (m offsetMemory) ReadI32(a uint32) (int32, error)   { return m.mem.ReadI32(a - m.base) }
func (m offsetMemory) WriteU8(a uint32, v uint8) error   { return m.mem.WriteU8(a-m.base, v) }
func (m offsetMemory) WriteU16(a uint32, v uint16) error { return m.mem.WriteU16(a-m.base, v) }
func (m offsetMemory) WriteU32(a uint32, v uint32) error { return m.mem.WriteU32(a-m.base, v) }

// newMachineAt places word at pc, sets PC to pc, and returns the register
// file and memory ready for a single Step call.
func newMachineAt(t *testing.T, pc, word uint32) (*regfile.RegisterFile, interfaces.Memory) {
	t.Helper()
	rf := regfile.New()
	rf.SetPC(pc)
	mem := offsetMemory{mem: memory.New(64), base: pc}
	require.NoError(t, mem.WriteU32(pc, word))
	return rf, mem
}

func TestAdd(t *testing.T) {
	rf, mem := newMachine(t, encodeR(instr.OpSpecial, 8, 9, 10, 0, instr.FuncAdd))
	rf.SetSigned(8, 1)
	rf.SetSigned(9, 5)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(6), rf.Get(10).Signed)
}

func TestSub(t *testing.T) {
	rf, mem := newMachine(t, encodeR(instr.OpSpecial, 8, 9, 10, 0, instr.FuncSub))
	rf.SetSigned(8, -3)
	rf.SetSigned(9, -5)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(2), rf.Get(10).Signed)
}

func TestSraDispatch(t *testing.T) {
	rf, mem := newMachine(t, encodeR(instr.OpSpecial, 0, 9, 10, 4, instr.FuncSra))
	rf.SetUnsigned(9, 0xFFFE_1DC0)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(0xFFFF_E1DC), rf.Get(10).Unsigned)
}

func TestRotrDispatch(t *testing.T) {
	// SRL with rs bit 0 set selects ROTR.
	rf, mem := newMachine(t, encodeR(instr.OpSpecial, 1, 9, 10, 9, instr.FuncSrl))
	rf.SetUnsigned(9, 0xDEAD_BEEF)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(0x77EF_56DF), rf.Get(10).Unsigned)
}

func TestJR(t *testing.T) {
	rf, mem := newMachineAt(t, 0x1000_0000, encodeR(instr.OpSpecial, 8, 0, 0, 0, instr.FuncJr))
	rf.SetUnsigned(8, 0xBAD)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)

	rf.UpdatePC()
	require.Equal(t, uint32(0x0000_0BAD), rf.GetPC())
}

func TestJALR(t *testing.T) {
	rf, mem := newMachineAt(t, 0x10BE_EF00, encodeR(instr.OpSpecial, 8, 0, 0, 0, instr.FuncJalr))
	rf.SetUnsigned(8, 0xBAD)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)

	rf.UpdatePC()
	require.Equal(t, uint32(0x0000_0BAD), rf.GetPC())
	require.Equal(t, uint32(0x10BE_EF04), rf.Get(31).Unsigned)
}

func TestSOP30MUH(t *testing.T) {
	rf, mem := newMachine(t, encodeR(instr.OpSpecial, 8, 9, 10, 3, instr.FuncSop30))
	rf.SetSigned(8, -0x126373)
	rf.SetUnsigned(9, 0xF2A373)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(0xFFFF_EE92), rf.Get(10).Unsigned)
}

func TestSelEqzSelNez(t *testing.T) {
	rf, mem := newMachine(t, encodeR(instr.OpSpecial, 8, 9, 10, 0, instr.FuncSeleqz))
	rf.SetSigned(8, 10)
	rf.SetSigned(9, 0)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(10), rf.Get(10).Signed)

	rf2, mem2 := newMachine(t, encodeR(instr.OpSpecial, 8, 9, 10, 0, instr.FuncSelnez))
	rf2.SetSigned(8, 10)
	rf2.SetSigned(9, 0)

	ok, err = Step(rf2, mem2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(0), rf2.Get(10).Signed)
}

func TestTeqTraps(t *testing.T) {
	rf, mem := newMachine(t, encodeR(instr.OpSpecial, 8, 9, 0, 0, instr.FuncTeq))
	rf.SetSigned(8, 7)
	rf.SetSigned(9, 7)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.False(t, ok)

	exc, set := rf.Exception()
	require.True(t, set)
	require.Equal(t, interfaces.ExceptionTrap, exc.Cause)
}

func TestTeqNoTrapWhenConditionFalse(t *testing.T) {
	rf, mem := newMachine(t, encodeR(instr.OpSpecial, 8, 9, 0, 0, instr.FuncTeq))
	rf.SetSigned(8, 7)
	rf.SetSigned(9, 9)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)

	_, set := rf.Exception()
	require.False(t, set)
}

func TestDivisionByZeroFails(t *testing.T) {
	rf, mem := newMachine(t, encodeR(instr.OpSpecial, 8, 9, 10, 2, instr.FuncSop32))
	rf.SetSigned(8, 10)
	rf.SetSigned(9, 0)

	ok, err := Step(rf, mem)
	require.ErrorIs(t, err, ErrDivisionByZero)
	require.False(t, ok)
}

func TestLoadStoreRoundTrip(t *testing.T) {
	rf := regfile.New()
	mem := memory.New(64)

	// SW t1, 16(t0): store rt=9 at EA = rs(8)+16
	require.NoError(t, mem.WriteU32(0, encodeI(instr.OpSw, 8, 9, 16)))
	rf.SetUnsigned(8, 0)
	rf.SetUnsigned(9, 0x1234_5678)
	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)

	// LW t2, 16(t0)
	require.NoError(t, mem.WriteU32(4, encodeI(instr.OpLw, 8, 10, 16)))
	ok, err = Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(0x1234_5678), rf.Get(10).Signed)
}

func TestBeqBranchesToDelaySlotTarget(t *testing.T) {
	rf := regfile.New()
	mem := memory.New(64)
	require.NoError(t, mem.WriteU32(0, encodeI(instr.OpBeq, 8, 9, 0xFFFF))) // offset -1 word
	rf.SetUnsigned(8, 7)
	rf.SetUnsigned(9, 7)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)

	// updatedPC after fetch at 0 is 4; branch target = 4 + (-1*4) = 0.
	rf.UpdatePC()
	require.Equal(t, uint32(0), rf.GetPC())
}

func TestPOP10BOVCOverflow(t *testing.T) {
	rf, mem := newMachine(t, encodeI(instr.OpPOP10, 20, 5, 2)) // rs index(20) >= rt index(5) -> BOVC
	rf.SetUnsigned(20, 0x7FFF_FFFF)
	rf.SetUnsigned(5, 1)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(12), rf.GetPC()) // branch taken: PC set directly to target = updatedPC(4)+2*4
}

func TestPOP10BEQC(t *testing.T) {
	rf, mem := newMachine(t, encodeI(instr.OpPOP10, 5, 20, 0)) // rs index(5) < rt index(20) -> BEQC
	rf.SetUnsigned(5, 42)
	rf.SetUnsigned(20, 42)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(4), rf.GetPC())
}

func TestExtIns(t *testing.T) {
	// EXT rt, rs, lsb=4, msbd=7 (size=8): extract bits [4..11] of rs into rt.
	rf, mem := newMachine(t, encodeR(instr.OpSpecial3, 8, 9, 7, 4, instr.Special3MinorExt))
	rf.SetUnsigned(8, 0x0000_0FF0)
	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(0xFF), rf.Get(9).Unsigned)
}

func TestInsRejectsMsbLessThanLsb(t *testing.T) {
	rf, mem := newMachine(t, encodeR(instr.OpSpecial3, 8, 9, 2, 5, instr.Special3MinorIns)) // msb(2) < lsb(5)
	ok, err := Step(rf, mem)
	require.Error(t, err)
	require.False(t, ok)
}

func TestAlignBp0IsIdentity(t *testing.T) {
	w := uint32(instr.OpSpecial3<<26 | 8<<21 | 9<<16 | 10<<11 | instr.BshflAlignLo<<6 | instr.Special3MinorBshfl)
	rf, mem := newMachine(t, w)
	rf.SetUnsigned(9, 0xCAFE_BABE)

	ok, err := Step(rf, mem)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(0xCAFE_BABE), rf.Get(10).Unsigned)
}

func TestFPUInstructionRecognisedButFails(t *testing.T) {
	w := uint32(instr.OpCop1 << 26) // rs=0 -> FPUTType
	rf, mem := newMachine(t, w)
	ok, err := Step(rf, mem)
	require.False(t, ok)
	require.ErrorIs(t, err, ErrFPUUnimplemented)
}

func TestFetchFailureOnUnmappedPC(t *testing.T) {
	rf := regfile.New()
	mem := memory.New(4)
	rf.SetPC(0x100)

	ok, err := Step(rf, mem)
	require.Error(t, err)
	require.False(t, ok)
}
