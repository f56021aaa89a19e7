// Package engine wraps wazero to run the gltfpack WebAssembly guest.
//
// An Engine owns one compiled guest module and one live instantiation,
// created lazily on the first Pack call and reused across invocations to
// amortize compilation cost. Each Pack call:
//
//  1. resets the descriptor table and log buffer to their baseline
//  2. seeds the virtual filesystem with the input file
//  3. uploads argv into guest memory via the guest's malloc
//  4. invokes the exported pack(argc, argv) entry point
//  5. frees the argv buffer and decodes the captured log
//
// The guest module must export malloc, free, pack, and its linear
// memory; __wasm_call_ctors is invoked at initialization when present.
// Its imports must stay within the WASI preview1 subset bound by the
// wasi package, or instantiation fails.
//
// A guest-requested termination (proc_exit) is translated at this
// boundary into an ordinary PackResult carrying the exit code; only
// host faults surface as errors.
//
// Engines hold no locks. Per-invocation state is shared, so concurrent
// Pack calls on one Engine corrupt each other; callers serialize or
// pool. There is no timeout on this in-process path; wall-clock limits
// belong to the native subprocess backend.
package engine
