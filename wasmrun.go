package gltfpack

import (
	"context"
	"os"
	"path/filepath"

	"github.com/notsoglb/gltfpack/engine"
	"github.com/notsoglb/gltfpack/errors"
)

// ensureEngine loads the guest binary and builds the engine on first
// use; the instance is reused across invocations.
func (r *Runner) ensureEngine() (packer, *errors.Error) {
	if r.eng != nil {
		return r.eng, nil
	}
	wasmBytes, err := os.ReadFile(r.wasmPath)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSelect, errors.KindRuntimeUnavailable, err,
			"read WASM guest binary at %s", r.wasmPath)
	}
	r.eng = engine.New(wasmBytes, r.cfg)
	return r.eng, nil
}

// RunWasm packs inputPath through the WASM backend unconditionally,
// bypassing backend selection. All failures come back as a Result;
// nothing is raised.
func (r *Runner) RunWasm(ctx context.Context, inputPath string, opts Options) Result {
	if r.eng == nil && !WasmAvailable(r.wasmPath) {
		if _, err := os.Stat(r.wasmPath); err != nil {
			return failure(inputPath, errors.RuntimeUnavailable(
				"WASM guest binary not found at %s", r.wasmPath))
		}
		return failure(inputPath, errors.RuntimeUnavailable(
			"file at %s is not a WebAssembly module", r.wasmPath))
	}

	if !isFile(inputPath) {
		return failure(inputPath, errors.InputNotFound(inputPath))
	}
	outputPath := resolveOutputPath(inputPath, opts.OutputPath)

	if opts.TextureCompress {
		engine.Logger().Warn("WASM gltfpack lacks BasisU support, skipping texture compression")
	}
	// Texture quality only applies alongside texture compression, which
	// the guest build lacks; it is dropped, not rejected.

	ratio, verr := ValidateSimplifyRatio(opts.SimplifyRatio)
	if verr != nil {
		return failure(inputPath, verr)
	}

	eng, rerr := r.ensureEngine()
	if rerr != nil {
		return failure(inputPath, rerr)
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return failure(inputPath, errors.Wrap(errors.PhaseIO, errors.KindIO, err, "read input file"))
	}

	res, err := eng.Pack(ctx, input, filepath.Base(inputPath), filepath.Base(outputPath),
		buildWasmArgs(opts.MeshCompress, ratio))
	if err != nil {
		return failure(outputPath, err)
	}
	if !res.OK {
		return failure(outputPath, errors.GuestFailure(res.ExitCode, res.Log))
	}
	if len(res.Output) == 0 {
		return failure(outputPath, errors.New(errors.PhasePack, errors.KindGuestFailure,
			"gltfpack reported success but produced no output file"))
	}

	if err := os.WriteFile(outputPath, res.Output, 0o644); err != nil {
		return failure(outputPath, errors.Wrap(errors.PhaseIO, errors.KindIO, err, "write output file"))
	}
	return Result{OK: true, Path: outputPath, Message: "Success"}
}
