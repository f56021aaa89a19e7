package gltfpack

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notsoglb/gltfpack/errors"
)

// packedSuffix is appended to the input stem when no output path is
// given.
const packedSuffix = "_packed"

// resolveOutputPath returns explicit verbatim when given; otherwise it
// derives "<stem>_packed<ext>" beside the input. An existing _packed
// suffix is stripped first so repeated invocations do not stack suffixes.
func resolveOutputPath(inputPath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	stem = strings.TrimSuffix(stem, packedSuffix)
	return filepath.Join(filepath.Dir(inputPath), stem+packedSuffix+ext)
}

// asFloat widens any numeric value to float64. Booleans do not count as
// numbers here.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ValidateSimplifyRatio checks an optional simplify ratio: nil passes
// through, anything else must be a number in [0.0, 1.0].
func ValidateSimplifyRatio(v any) (*float64, *errors.Error) {
	if v == nil {
		return nil, nil
	}
	ratio, ok := asFloat(v)
	if !ok {
		return nil, errors.Validation("simplify ratio must be a number, got %T", v)
	}
	// Written as a positive range check so NaN fails it too.
	if !(ratio >= 0.0 && ratio <= 1.0) {
		return nil, errors.Validation("simplify ratio must be in [0.0, 1.0], got %v", ratio)
	}
	return &ratio, nil
}

// ValidateTextureQuality checks an optional texture quality: nil passes
// through; booleans are rejected outright; integer-valued floats are
// coerced; the result must land in [1, 10].
func ValidateTextureQuality(v any) (*int, *errors.Error) {
	if v == nil {
		return nil, nil
	}
	if _, isBool := v.(bool); isBool {
		return nil, errors.Validation("texture quality must be an integer, bool provided")
	}
	f, ok := asFloat(v)
	if !ok {
		return nil, errors.Validation("texture quality must be an integer, got %T", v)
	}
	if f != math.Trunc(f) {
		return nil, errors.Validation("texture quality must be an integer, non-integer value %v provided", f)
	}
	quality := int(f)
	if quality < 1 || quality > 10 {
		return nil, errors.Validation("texture quality must be in [1, 10], got %d", quality)
	}
	return &quality, nil
}

// formatRatio renders a ratio the way the guest's CLI parser expects.
func formatRatio(r float64) string {
	return strconv.FormatFloat(r, 'g', -1, 64)
}

// buildWasmArgs assembles the extra argv entries for the WASM guest.
// No -tc: the guest build cannot compress textures.
func buildWasmArgs(meshCompress bool, ratio *float64) []string {
	var args []string
	if meshCompress {
		args = append(args, "-cc")
	}
	if ratio != nil {
		args = append(args, "-si", formatRatio(*ratio))
	}
	return args
}

// buildNativeArgs assembles the full native command line; the flag
// spelling is shared with the WASM guest where features overlap.
func buildNativeArgs(binary, inputPath, outputPath string, opts Options, ratio *float64, quality *int) []string {
	argv := []string{binary, "-i", inputPath, "-o", outputPath}
	if opts.TextureCompress {
		argv = append(argv, "-tc")
	}
	if opts.MeshCompress {
		argv = append(argv, "-cc")
	}
	if ratio != nil {
		argv = append(argv, "-si", formatRatio(*ratio))
	}
	if quality != nil {
		argv = append(argv, "-tq", strconv.Itoa(*quality))
	}
	return argv
}
