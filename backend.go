package gltfpack

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/notsoglb/gltfpack/engine"
	"github.com/notsoglb/gltfpack/errors"
)

// Backend identifies which gltfpack implementation handles an invocation.
type Backend int

const (
	BackendNative Backend = iota
	BackendWasm
)

// Environment overrides for backend selection, mutually exclusive.
// Truthy values are 1, true, and yes, case-insensitive.
const (
	EnvForceNative = "GLTFPACK_FORCE_NATIVE"
	EnvForceWasm   = "GLTFPACK_FORCE_WASM"

	// EnvWasmPath overrides where DefaultWasmPath looks for the guest
	// binary.
	EnvWasmPath = "GLTFPACK_WASM"
)

// wasmMagic is the 4-byte WebAssembly binary preamble. A candidate guest
// file without it is rejected before ever reaching the engine.
var wasmMagic = []byte("\x00asm")

func envTruthy(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// FindNative locates the native gltfpack binary on PATH, returning the
// empty string when absent.
func FindNative() string {
	path, err := exec.LookPath("gltfpack")
	if err != nil {
		return ""
	}
	return path
}

// DefaultWasmPath returns where the default Runner expects the guest
// binary: the GLTFPACK_WASM environment variable if set, otherwise
// gltfpack.wasm next to the running executable.
func DefaultWasmPath() string {
	if p := os.Getenv(EnvWasmPath); p != "" {
		return p
	}
	exe, err := os.Executable()
	if err != nil {
		return "gltfpack.wasm"
	}
	return filepath.Join(filepath.Dir(exe), "gltfpack.wasm")
}

// WasmAvailable reports whether path holds a plausible guest binary:
// the file exists and begins with the \0asm magic.
func WasmAvailable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		return false
	}
	return string(magic) == string(wasmMagic)
}

// selectBackend applies the selection ladder: conflicting force flags
// error; a force flag requires its backend; PreferWasm falls back to
// native with a warning; the default order is native first, WASM second.
// A non-nil Result means selection failed.
func (r *Runner) selectBackend(inputPath string, preferWasm bool, nativePath string) (Backend, *Result) {
	forceNative := envTruthy(EnvForceNative)
	forceWasm := envTruthy(EnvForceWasm)
	// A live engine keeps the WASM backend usable even if the guest file
	// has since vanished from disk; RunWasm makes the same call.
	wasmOK := r.eng != nil || WasmAvailable(r.wasmPath)

	fail := func(err error) (Backend, *Result) {
		res := failure(inputPath, err)
		return 0, &res
	}

	switch {
	case forceNative && forceWasm:
		return fail(errors.Validation(
			"cannot force both backends: %s and %s are both set", EnvForceNative, EnvForceWasm))

	case forceNative:
		if nativePath == "" {
			return fail(errors.RuntimeUnavailable("%s set but native gltfpack not found", EnvForceNative))
		}
		return BackendNative, nil

	case forceWasm:
		if !wasmOK {
			return fail(errors.RuntimeUnavailable("%s set but WASM runtime unavailable", EnvForceWasm))
		}
		return BackendWasm, nil

	case preferWasm:
		if wasmOK {
			return BackendWasm, nil
		}
		if nativePath != "" {
			engine.Logger().Warn("WASM backend preferred but unavailable, falling back to native")
			return BackendNative, nil
		}
		return fail(errors.RuntimeUnavailable("WASM backend preferred but unavailable, and no native fallback"))

	case nativePath != "":
		return BackendNative, nil

	case wasmOK:
		return BackendWasm, nil

	default:
		return fail(errors.RuntimeUnavailable(
			"neither backend available: gltfpack not on PATH and WASM fallback missing"))
	}
}
