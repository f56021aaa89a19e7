package engine

import (
	"context"
	"testing"

	"github.com/notsoglb/gltfpack/errors"
)

func TestPack_NoGuestBinary(t *testing.T) {
	e := New(nil, Config{})
	defer e.Close(context.Background())

	_, err := e.Pack(context.Background(), []byte{1}, "in.glb", "out.glb", nil)
	if !errors.IsKind(err, errors.KindRuntimeUnavailable) {
		t.Errorf("err = %v, want runtime_unavailable", err)
	}
}

func TestPack_MalformedGuestBinary(t *testing.T) {
	e := New([]byte("not a wasm module"), Config{})
	defer e.Close(context.Background())

	_, err := e.Pack(context.Background(), []byte{1}, "in.glb", "out.glb", nil)
	if !errors.IsKind(err, errors.KindInstantiation) {
		t.Errorf("err = %v, want instantiation", err)
	}
}

func TestClose_Uninitialized(t *testing.T) {
	e := New(nil, Config{})
	if err := e.Close(context.Background()); err != nil {
		t.Errorf("Close before initialize: %v", err)
	}
}
