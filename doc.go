// Package gltfpack runs the gltfpack mesh-compression tool from Go,
// falling back to a bundled WebAssembly build when no native binary is
// installed.
//
// The WASM path embeds just enough of a WASI preview1 host to satisfy
// one specific guest binary: an in-memory virtual filesystem carries the
// input file in and the output file out, and the guest's stdout/stderr
// are captured as the diagnostic log. No mesh or texture transformation
// happens in Go; that logic lives entirely inside the opaque guest.
//
// # Architecture
//
// Packages, leaf to root:
//
//	guestmem/   bounds-checked access to guest linear memory
//	vfs/        in-memory filesystem and descriptor table
//	wasi/       the WASI preview1 syscall subset the guest imports
//	engine/     wazero lifecycle, argv marshaling, the pack entry point
//	errors/     structured failure taxonomy
//	gltfpack    backend selection, validation, the uniform Result
//
// # Quick start
//
//	r := gltfpack.NewRunner("/opt/tool/gltfpack.wasm", engine.Config{})
//	res := r.Run(ctx, "scene.glb", gltfpack.DefaultOptions())
//	if !res.OK {
//	    log.Fatal(res.Message)
//	}
//	fmt.Println("packed to", res.Path) // scene_packed.glb
//
// Every entry point reports failures through the Result triple rather
// than returning an error: runtime availability, input lookup,
// parameter validation, guest failure, and host I/O all fold into
// (ok, path, message).
//
// # Backend selection
//
// A native gltfpack on PATH wins by default; the WASM build is the
// fallback. GLTFPACK_FORCE_NATIVE and GLTFPACK_FORCE_WASM override the
// order (setting both is an error), and Options.PreferWasm flips the
// default preference.
//
// # Concurrency
//
// Execution is synchronous and single-threaded. A Runner reuses one
// engine instance whose per-invocation state is reset at each call;
// concurrent invocations on a shared Runner corrupt that state, so
// callers serialize access or use one Runner per goroutine.
package gltfpack
