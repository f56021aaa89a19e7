package gltfpack

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		explicit string
		want     string
	}{
		{"default suffix", "a.glb", "", "a_packed.glb"},
		{"keeps directory", filepath.Join("models", "a.glb"), "", filepath.Join("models", "a_packed.glb")},
		{"explicit wins", "a.glb", filepath.Join("out", "b.glb"), filepath.Join("out", "b.glb")},
		{"strips existing suffix", "a_packed.glb", "", "a_packed.glb"},
		{"gltf extension", "scene.gltf", "", "scene_packed.gltf"},
		{"no extension", "scene", "", "scene_packed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveOutputPath(tt.input, tt.explicit); got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q) = %q, want %q", tt.input, tt.explicit, got, tt.want)
			}
		})
	}
}

func TestResolveOutputPath_Idempotent(t *testing.T) {
	for _, p := range []string{"a.glb", "a_packed.glb", filepath.Join("x", "y.gltf"), "noext"} {
		once := resolveOutputPath(p, "")
		twice := resolveOutputPath(once, "")
		if once != twice {
			t.Errorf("resolveOutputPath not idempotent for %q: %q then %q", p, once, twice)
		}
	}
}

func TestValidateSimplifyRatio(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantOK  bool
		wantVal float64
	}{
		{"nil passes", nil, true, 0},
		{"lower bound", 0.0, true, 0.0},
		{"upper bound", 1.0, true, 1.0},
		{"interior", 0.5, true, 0.5},
		{"int widened", 1, true, 1.0},
		{"below range", -0.0001, false, 0},
		{"above range", 1.0001, false, 0},
		{"NaN rejected", math.NaN(), false, 0},
		{"positive infinity rejected", math.Inf(1), false, 0},
		{"string rejected", "0.5", false, 0},
		{"bool rejected", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSimplifyRatio(tt.value)
			if tt.wantOK && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("expected validation error")
				}
				return
			}
			if tt.value == nil {
				if got != nil {
					t.Errorf("nil input should stay nil, got %v", *got)
				}
				return
			}
			if got == nil || *got != tt.wantVal {
				t.Errorf("validated ratio = %v, want %v", got, tt.wantVal)
			}
		})
	}
}

func TestValidateTextureQuality(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantOK  bool
		wantVal int
	}{
		{"nil passes", nil, true, 0},
		{"lower bound", 1, true, 1},
		{"upper bound", 10, true, 10},
		{"integer-valued float coerced", 5.0, true, 5},
		{"zero rejected", 0, false, 0},
		{"eleven rejected", 11, false, 0},
		{"bool rejected", true, false, 0},
		{"fractional rejected", 5.5, false, 0},
		{"string rejected", "5", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTextureQuality(tt.value)
			if tt.wantOK && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("expected validation error")
				}
				return
			}
			if tt.value == nil {
				if got != nil {
					t.Errorf("nil input should stay nil, got %v", *got)
				}
				return
			}
			if got == nil || *got != tt.wantVal {
				t.Errorf("validated quality = %v, want %d", got, tt.wantVal)
			}
		})
	}
}

func TestBuildWasmArgs(t *testing.T) {
	half := 0.5

	tests := []struct {
		name         string
		meshCompress bool
		ratio        *float64
		want         []string
	}{
		{"nothing", false, nil, nil},
		{"mesh only", true, nil, []string{"-cc"}},
		{"ratio only", false, &half, []string{"-si", "0.5"}},
		{"both", true, &half, []string{"-cc", "-si", "0.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildWasmArgs(tt.meshCompress, tt.ratio)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildWasmArgs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildNativeArgs(t *testing.T) {
	ratio := 0.25
	quality := 8
	opts := Options{TextureCompress: true, MeshCompress: true}

	got := buildNativeArgs("/usr/bin/gltfpack", "a.glb", "a_packed.glb", opts, &ratio, &quality)
	want := []string{"/usr/bin/gltfpack", "-i", "a.glb", "-o", "a_packed.glb", "-tc", "-cc", "-si", "0.25", "-tq", "8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildNativeArgs = %v, want %v", got, want)
	}
}
