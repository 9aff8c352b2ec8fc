// Package memory implements the flat byte-addressable store the executor
// reads and writes through the interfaces.Memory contract.
//
// There is a single flat region rather than a device memory map split
// across several physical regions, since the core has no peripherals of its
// own to dispatch across. Out-of-bounds accesses return an
// *interfaces.AccessError instead of panicking, so a bad effective address
// surfaces as an ordinary step failure.
package memory

import "mipsr6/internal/interfaces"

// Memory is a flat little-endian byte-addressable store of a fixed size.
type Memory struct {
	data []byte
}

var _ interfaces.Memory = (*Memory)(nil)

// New allocates a zero-filled memory of the given size in bytes.
func New(size uint32) *Memory {
	return &Memory{data: make([]byte, size)}
}

// NewFromBytes wraps an existing byte slice as memory without copying.
func NewFromBytes(b []byte) *Memory {
	return &Memory{data: b}
}

func (m *Memory) inBounds(addr uint32, width uint32) bool {
	return uint64(addr)+uint64(width) <= uint64(len(m.data))
}

func (m *Memory) ReadU8(addr uint32) (uint8, error) {
	if !m.inBounds(addr, 1) {
		return 0, &interfaces.AccessError{Addr: addr, Op: "read8"}
	}
	return m.data[addr], nil
}

func (m *Memory) ReadI8(addr uint32) (int8, error) {
	v, err := m.ReadU8(addr)
	return int8(v), err
}

func (m *Memory) ReadU16(addr uint32) (uint16, error) {
	if !m.inBounds(addr, 2) {
		return 0, &interfaces.AccessError{Addr: addr, Op: "read16"}
	}
	return uint16(m.data[addr]) | uint16(m.data[addr+1])<<8, nil
}

func (m *Memory) ReadI16(addr uint32) (int16, error) {
	v, err := m.ReadU16(addr)
	return int16(v), err
}

func (m *Memory) ReadU32(addr uint32) (uint32, error) {
	if !m.inBounds(addr, 4) {
		return 0, &interfaces.AccessError{Addr: addr, Op: "read32"}
	}
	return uint32(m.data[addr]) |
		uint32(m.data[addr+1])<<8 |
		uint32(m.data[addr+2])<<16 |
		uint32(m.data[addr+3])<<24, nil
}

func (m *Memory) ReadI32(addr uint32) (int32, error) {
	v, err := m.ReadU32(addr)
	return int32(v), err
}

func (m *Memory) WriteU8(addr uint32, v uint8) error {
	if !m.inBounds(addr, 1) {
		return &interfaces.AccessError{Addr: addr, Op: "write8"}
	}
	m.data[addr] = v
	return nil
}

func (m *Memory) WriteU16(addr uint32, v uint16) error {
	if !m.inBounds(addr, 2) {
		return &interfaces.AccessError{Addr: addr, Op: "write16"}
	}
	m.data[addr] = byte(v)
	m.data[addr+1] = byte(v >> 8)
	return nil
}

func (m *Memory) WriteU32(addr uint32, v uint32) error {
	if !m.inBounds(addr, 4) {
		return &interfaces.AccessError{Addr: addr, Op: "write32"}
	}
	m.data[addr] = byte(v)
	m.data[addr+1] = byte(v >> 8)
	m.data[addr+2] = byte(v >> 16)
	m.data[addr+3] = byte(v >> 24)
	return nil
}
