package gltfpack

import (
	"context"
	"os"
	"sync"

	"github.com/notsoglb/gltfpack/engine"
	"github.com/notsoglb/gltfpack/errors"
)

// Result is the uniform outcome of a pack invocation. Path is the output
// location on success and the most relevant path (usually the input) on
// failure; Message carries "Success" or the failure diagnostic. No entry
// point of this package raises: every fault folds into a Result.
type Result struct {
	OK      bool
	Path    string
	Message string
}

// Options control one pack invocation.
type Options struct {
	// OutputPath overrides the default "<stem>_packed<ext>" naming.
	OutputPath string

	// TextureCompress requests BasisU texture compression (-tc). The
	// WASM guest build has no BasisU support: the flag is skipped with
	// a warning rather than failing the invocation.
	TextureCompress bool

	// MeshCompress requests mesh compression (-cc).
	MeshCompress bool

	// SimplifyRatio simplifies meshes to the given ratio (-si). Nil
	// means no simplification; otherwise it must be a number in
	// [0.0, 1.0].
	SimplifyRatio any

	// TextureQuality selects texture quality 1-10 (-tq). Nil means the
	// guest default. Only meaningful with texture compression, so the
	// WASM path drops it. Integer-valued floats are accepted and
	// coerced; booleans and fractional values are rejected.
	TextureQuality any

	// PreferWasm picks the WASM backend over a native binary when both
	// are available.
	PreferWasm bool
}

// DefaultOptions mirror the native tool's defaults: both compression
// passes enabled.
func DefaultOptions() Options {
	return Options{TextureCompress: true, MeshCompress: true}
}

// NativeRunner executes the native gltfpack binary with the given argv
// and reports the uniform result. The subprocess mechanics (spawn,
// capture, wall-clock timeout) live outside this package; a Runner
// without one reports native selection as a failure.
type NativeRunner func(ctx context.Context, argv []string, outputPath string) Result

// packer is the engine seam: one guest invocation over in-memory files.
type packer interface {
	Pack(ctx context.Context, input []byte, inputName, outputName string, extraArgs []string) (*engine.PackResult, error)
}

// Runner binds a guest binary location to a reusable engine instance.
// The engine is created on first use and kept for the Runner's lifetime,
// so repeated invocations skip recompilation. A Runner serializes
// nothing: concurrent calls corrupt per-invocation state, callers hold
// their own lock if they share one.
type Runner struct {
	// Native, when set, handles invocations routed to the native
	// backend.
	Native NativeRunner

	wasmPath string
	cfg      engine.Config
	eng      packer
}

// NewRunner creates a Runner for the guest binary at wasmPath.
func NewRunner(wasmPath string, cfg engine.Config) *Runner {
	return &Runner{wasmPath: wasmPath, cfg: cfg}
}

// Run packs inputPath with the selected backend: environment overrides
// first, then the PreferWasm option, then native-with-WASM-fallback.
func (r *Runner) Run(ctx context.Context, inputPath string, opts Options) Result {
	nativePath := FindNative()

	backend, errRes := r.selectBackend(inputPath, opts.PreferWasm, nativePath)
	if errRes != nil {
		return *errRes
	}
	if backend == BackendWasm {
		return r.RunWasm(ctx, inputPath, opts)
	}

	if !isFile(inputPath) {
		return failure(inputPath, errors.InputNotFound(inputPath))
	}
	outputPath := resolveOutputPath(inputPath, opts.OutputPath)

	ratio, verr := ValidateSimplifyRatio(opts.SimplifyRatio)
	if verr != nil {
		return failure(inputPath, verr)
	}
	quality, verr := ValidateTextureQuality(opts.TextureQuality)
	if verr != nil {
		return failure(inputPath, verr)
	}

	if r.Native == nil {
		return Result{
			Path:    outputPath,
			Message: "native gltfpack selected but no native runner is configured",
		}
	}
	return r.Native(ctx, buildNativeArgs(nativePath, inputPath, outputPath, opts, ratio, quality), outputPath)
}

// failure folds a structured error into the uniform result.
func failure(path string, err error) Result {
	return Result{Path: path, Message: err.Error()}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

var (
	defaultRunner     *Runner
	defaultRunnerOnce sync.Once
)

// Run packs inputPath using a process-wide Runner over DefaultWasmPath.
// Applications needing an explicit lifecycle, a custom guest location,
// or a native backend construct their own Runner instead.
func Run(ctx context.Context, inputPath string, opts Options) Result {
	defaultRunnerOnce.Do(func() {
		defaultRunner = NewRunner(DefaultWasmPath(), engine.Config{})
	})
	return defaultRunner.Run(ctx, inputPath, opts)
}
