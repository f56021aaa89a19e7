package engine

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	"github.com/notsoglb/gltfpack/errors"
	"github.com/notsoglb/gltfpack/wasi"
)

// argv0 is the program name the guest's CLI parser sees.
const argv0 = "gltfpack"

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages caps guest memory in 64KB pages.
	// 0 means wazero's default (65536 pages = 4GB).
	MemoryLimitPages uint32
}

// PackResult is the outcome of one guest invocation.
type PackResult struct {
	// OK reports a zero guest return code.
	OK bool

	// ExitCode is the guest's return value, whether it returned from
	// pack() or terminated through proc_exit.
	ExitCode int32

	// Output holds the produced virtual file, empty when the guest
	// created none.
	Output []byte

	// Log is the guest's combined stdout/stderr, decoded as UTF-8 with
	// invalid sequences replaced.
	Log string
}

// Engine wraps one compiled gltfpack guest module and its live
// instantiation. Construction is cheap; compilation and instantiation
// happen once, on the first Pack call, and are reused afterwards to
// amortize compile cost.
//
// An Engine is NOT safe for concurrent use: every Pack call resets the
// shared descriptor table and log buffer. Callers needing concurrency
// must serialize invocations or pool engines.
type Engine struct {
	cfg  Config
	wasm []byte

	host     *wasi.Host
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
	mod      api.Module

	malloc api.Function
	free   api.Function
	pack   api.Function
}

// New creates an engine over the given guest binary. The bytes are not
// validated or compiled until the first Pack call.
func New(wasmBytes []byte, cfg Config) *Engine {
	return &Engine{cfg: cfg, wasm: wasmBytes, host: wasi.NewHost()}
}

// initialize compiles, links, and instantiates the guest module.
// Idempotent: subsequent calls on a live instance return immediately.
func (e *Engine) initialize(ctx context.Context) error {
	if e.mod != nil {
		return nil
	}
	if len(e.wasm) == 0 {
		return errors.New(errors.PhaseInit, errors.KindRuntimeUnavailable, "no guest binary loaded")
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if e.cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(e.cfg.MemoryLimitPages)
	}
	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	if _, err := wasi.Instantiate(ctx, r, e.host); err != nil {
		_ = r.Close(ctx)
		return errors.Wrap(errors.PhaseInit, errors.KindInstantiation, err, "bind wasi host module")
	}

	compiled, err := r.CompileModule(ctx, e.wasm)
	if err != nil {
		_ = r.Close(ctx)
		return errors.Wrap(errors.PhaseInit, errors.KindInstantiation, err, "compile guest module")
	}
	Logger().Debug("compiled gltfpack guest", zap.Int("wasm_bytes", len(e.wasm)))

	// The guest is a reactor-style build: no _start, entry is the
	// exported pack function.
	mod, err := r.InstantiateModule(ctx, compiled,
		wazero.NewModuleConfig().WithName(argv0).WithStartFunctions())
	if err != nil {
		_ = r.Close(ctx)
		return errors.Wrap(errors.PhaseInit, errors.KindInstantiation, err, "instantiate guest module")
	}

	if mod.Memory() == nil {
		_ = r.Close(ctx)
		return errors.MissingExport("memory")
	}
	for _, name := range []string{"malloc", "free", "pack"} {
		if mod.ExportedFunction(name) == nil {
			_ = r.Close(ctx)
			return errors.MissingExport(name)
		}
	}

	if ctors := mod.ExportedFunction("__wasm_call_ctors"); ctors != nil {
		if _, err := ctors.Call(ctx); err != nil {
			_ = r.Close(ctx)
			return errors.Wrap(errors.PhaseInit, errors.KindInstantiation, err, "run guest constructors")
		}
	}

	e.runtime = r
	e.compiled = compiled
	e.mod = mod
	e.malloc = mod.ExportedFunction("malloc")
	e.free = mod.ExportedFunction("free")
	e.pack = mod.ExportedFunction("pack")
	return nil
}

// Pack runs one guest invocation: seeds the virtual filesystem with the
// input file, builds the guest CLI argv, calls the exported pack entry
// point, and collects the output file and captured log.
//
// A nonzero guest return (including termination via proc_exit) is not an
// error: it comes back as a PackResult with OK false and the log as the
// diagnostic. The returned error is reserved for host faults.
func (e *Engine) Pack(ctx context.Context, input []byte, inputName, outputName string, extraArgs []string) (*PackResult, error) {
	if err := e.initialize(ctx); err != nil {
		return nil, err
	}

	e.host.Table.Reset()
	e.host.Table.Seed(inputName, input)

	argv := append([]string{argv0, "-i", inputName, "-o", outputName}, extraArgs...)
	argvPtr, err := uploadArgv(ctx, e.mod, argv)
	if err != nil {
		return nil, err
	}
	Logger().Debug("invoking guest pack",
		zap.Strings("argv", argv),
		zap.Int("input_bytes", len(input)))

	exitCode, err := e.invoke(ctx, len(argv), argvPtr)

	// Best effort: after a proc_exit unwind the allocator state is
	// whatever the guest left behind, but the instance is still live.
	_, _ = e.free.Call(ctx, uint64(argvPtr))

	if err != nil {
		return nil, err
	}

	result := &PackResult{
		ExitCode: exitCode,
		OK:       exitCode == 0,
		Log:      strings.ToValidUTF8(string(e.host.Table.Log()), "�"),
	}
	if result.OK {
		if output, ok := e.host.Table.Lookup(outputName); ok {
			result.Output = output
		}
	}
	return result, nil
}

// invoke calls the guest entry point and folds a guest-requested exit
// into a plain exit code instead of letting it surface as a fault.
func (e *Engine) invoke(ctx context.Context, argc int, argvPtr uint32) (int32, error) {
	results, err := e.pack.Call(ctx, uint64(argc), uint64(argvPtr))
	if err != nil {
		var exitErr *sys.ExitError
		if stderrors.As(err, &exitErr) {
			Logger().Debug("guest exited via proc_exit", zap.Uint32("code", exitErr.ExitCode()))
			return int32(exitErr.ExitCode()), nil
		}
		return 0, errors.Wrap(errors.PhasePack, errors.KindGuestFailure, err, "guest trap")
	}
	if len(results) == 0 {
		return 0, errors.New(errors.PhasePack, errors.KindGuestFailure, "pack returned no result")
	}
	return api.DecodeI32(results[0]), nil
}

// Close releases the wazero runtime and everything instantiated in it.
func (e *Engine) Close(ctx context.Context) error {
	if e.runtime == nil {
		return nil
	}
	err := e.runtime.Close(ctx)
	e.runtime = nil
	e.compiled = nil
	e.mod = nil
	e.malloc, e.free, e.pack = nil, nil, nil
	return err
}
