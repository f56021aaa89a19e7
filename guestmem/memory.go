package guestmem

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/notsoglb/gltfpack/errors"
)

// Memory is a bounds-checked accessor over a guest's linear memory.
//
// Every accessor goes through api.Memory on each call and never retains
// the backing slice: guest memory growth reallocates the arena, so a
// cached view taken before a malloc or a nested guest call would alias
// freed memory. Out-of-range access returns an error instead of touching
// adjacent memory.
type Memory struct {
	Mem api.Memory
}

// Wrap wraps a wazero api.Memory. Returns a zero Memory if mem is nil;
// all accessors on it fail with out-of-bounds errors.
func Wrap(mem api.Memory) *Memory {
	return &Memory{Mem: mem}
}

// Size returns the current byte size of the guest arena.
func (m *Memory) Size() uint32 {
	if m.Mem == nil {
		return 0
	}
	return m.Mem.Size()
}

// ReadU8 reads an unsigned 8-bit value.
func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	if m.Mem == nil {
		return 0, errors.OutOfBounds(offset, 1)
	}
	v, ok := m.Mem.ReadByte(offset)
	if !ok {
		return 0, errors.OutOfBounds(offset, 1)
	}
	return v, nil
}

// WriteU8 writes an unsigned 8-bit value.
func (m *Memory) WriteU8(offset uint32, value uint8) error {
	if m.Mem == nil || !m.Mem.WriteByte(offset, value) {
		return errors.OutOfBounds(offset, 1)
	}
	return nil
}

// ReadU32 reads an unsigned 32-bit little-endian value.
func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	if m.Mem == nil {
		return 0, errors.OutOfBounds(offset, 4)
	}
	v, ok := m.Mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(offset, 4)
	}
	return v, nil
}

// WriteU32 writes an unsigned 32-bit little-endian value.
func (m *Memory) WriteU32(offset uint32, value uint32) error {
	if m.Mem == nil || !m.Mem.WriteUint32Le(offset, value) {
		return errors.OutOfBounds(offset, 4)
	}
	return nil
}

// Read copies length bytes starting at offset out of the guest arena.
// The returned slice is owned by the caller and stays valid across growth.
func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	if m.Mem == nil {
		return nil, errors.OutOfBounds(offset, int(length))
	}
	view, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(offset, int(length))
	}
	out := make([]byte, length)
	copy(out, view)
	return out, nil
}

// Write copies data into the guest arena at offset.
func (m *Memory) Write(offset uint32, data []byte) error {
	if m.Mem == nil || !m.Mem.Write(offset, data) {
		return errors.OutOfBounds(offset, len(data))
	}
	return nil
}

// ReadString decodes length bytes at offset as a UTF-8 string.
func (m *Memory) ReadString(offset, length uint32) (string, error) {
	b, err := m.Read(offset, length)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteString copies the UTF-8 bytes of s into the guest arena at offset.
func (m *Memory) WriteString(offset uint32, s string) error {
	if m.Mem == nil || !m.Mem.WriteString(offset, s) {
		return errors.OutOfBounds(offset, len(s))
	}
	return nil
}
