// Package wasi implements the WASI preview1 subset the gltfpack guest
// binary imports.
//
// This is not a general-purpose WASI runtime. It provides exactly the
// twelve syscalls one specific guest needs to read an input file, write
// an output file, and print diagnostics: descriptor stat/close/seek,
// preopen enumeration, path open/stat, and scatter-gather read/write.
// Sockets, clocks, environment variables, and threads are absent; a
// guest importing anything else fails at link time.
//
// Every syscall resolves against a vfs.Table (the in-memory filesystem
// and descriptor table) and returns a numeric WASI status code. The one
// exception is proc_exit, which unwinds via wazero's sys.ExitError so
// the engine can translate a guest-requested exit into a normal return.
package wasi
