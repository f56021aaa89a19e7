package guestmem

import (
	"bytes"
	"testing"

	"github.com/tetratelabs/wazero/experimental/wazerotest"
)

func testMemory(t *testing.T) *Memory {
	t.Helper()
	return Wrap(wazerotest.NewFixedMemory(wazerotest.PageSize))
}

func TestU32_Roundtrip(t *testing.T) {
	mem := testMemory(t)

	tests := []struct {
		offset uint32
		value  uint32
	}{
		{0, 0},
		{4, 1},
		{16, 0xDEADBEEF},
		{wazerotest.PageSize - 4, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		if err := mem.WriteU32(tt.offset, tt.value); err != nil {
			t.Fatalf("WriteU32(%d, %#x): %v", tt.offset, tt.value, err)
		}
		got, err := mem.ReadU32(tt.offset)
		if err != nil {
			t.Fatalf("ReadU32(%d): %v", tt.offset, err)
		}
		if got != tt.value {
			t.Errorf("ReadU32(%d) = %#x, want %#x", tt.offset, got, tt.value)
		}
	}
}

func TestU32_LittleEndian(t *testing.T) {
	mem := testMemory(t)

	if err := mem.WriteU32(0, 0x01020304); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	b, err := mem.Read(0, 4)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(b, []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Errorf("byte order = %v, want little-endian", b)
	}
}

func TestU8_Roundtrip(t *testing.T) {
	mem := testMemory(t)

	if err := mem.WriteU8(7, 0xAB); err != nil {
		t.Fatalf("WriteU8: %v", err)
	}
	got, err := mem.ReadU8(7)
	if err != nil {
		t.Fatalf("ReadU8: %v", err)
	}
	if got != 0xAB {
		t.Errorf("ReadU8 = %#x, want 0xAB", got)
	}
}

func TestOutOfRange(t *testing.T) {
	mem := testMemory(t)
	size := mem.Size()

	if _, err := mem.ReadU8(size); err == nil {
		t.Error("ReadU8 past end should fail")
	}
	if _, err := mem.ReadU32(size - 3); err == nil {
		t.Error("ReadU32 straddling end should fail")
	}
	if err := mem.WriteU32(size-3, 1); err == nil {
		t.Error("WriteU32 straddling end should fail")
	}
	if _, err := mem.Read(size-1, 2); err == nil {
		t.Error("Read past end should fail")
	}
	if err := mem.Write(size-1, []byte{1, 2}); err == nil {
		t.Error("Write past end should fail")
	}
}

func TestReadString(t *testing.T) {
	mem := testMemory(t)

	if err := mem.WriteString(32, "input.glb"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	s, err := mem.ReadString(32, 9)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != "input.glb" {
		t.Errorf("ReadString = %q, want %q", s, "input.glb")
	}
}

func TestRead_CopyIsStable(t *testing.T) {
	mem := testMemory(t)

	if err := mem.Write(0, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := mem.Read(0, 3)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// Mutating the arena must not alias the returned copy.
	if err := mem.WriteU8(0, 9); err != nil {
		t.Fatalf("WriteU8: %v", err)
	}
	if b[0] != 1 {
		t.Error("Read result should be a copy, not a view")
	}
}

func TestNilMemory(t *testing.T) {
	mem := Wrap(nil)

	if mem.Size() != 0 {
		t.Error("nil memory size should be 0")
	}
	if _, err := mem.ReadU32(0); err == nil {
		t.Error("nil memory read should fail")
	}
	if err := mem.Write(0, []byte{1}); err == nil {
		t.Error("nil memory write should fail")
	}
}
