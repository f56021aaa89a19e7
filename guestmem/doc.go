// Package guestmem provides bounds-checked access to guest linear memory.
//
// WebAssembly linear memory is a single growable arena. Growth reallocates
// the backing buffer, invalidating any previously obtained view. The Memory
// accessor therefore never caches the buffer: every read or write re-acquires
// it through wazero's api.Memory, which reflects the current arena.
//
//	mem := guestmem.Wrap(mod.Memory())
//	v, err := mem.ReadU32(ptr)
//
// All accessors validate offset and length against the current arena size
// and fail with a structured out-of-bounds error rather than reading or
// writing adjacent memory.
package guestmem
