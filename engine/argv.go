package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/notsoglb/gltfpack/errors"
	"github.com/notsoglb/gltfpack/guestmem"
)

// uploadArgv copies argv into guest memory in the layout the guest's
// main-style entry point expects: an array of N 4-byte string pointers
// followed by each argument's UTF-8 bytes, NUL-terminated, contiguously.
//
// The buffer comes from the guest's own malloc so the guest may address
// it freely; the caller must release it with the guest's free. The
// memory view is acquired after malloc returns, since the allocation may
// have grown (and reallocated) the arena.
func uploadArgv(ctx context.Context, mod api.Module, argv []string) (uint32, error) {
	size := len(argv) * 4
	for _, arg := range argv {
		size += len(arg) + 1
	}

	malloc := mod.ExportedFunction("malloc")
	if malloc == nil {
		return 0, errors.MissingExport("malloc")
	}
	results, err := malloc.Call(ctx, uint64(size))
	if err != nil {
		return 0, errors.Wrap(errors.PhasePack, errors.KindArgument, err, "allocate argv buffer (%d bytes)", size)
	}
	if len(results) == 0 || results[0] == 0 {
		return 0, errors.New(errors.PhasePack, errors.KindArgument, "guest malloc failed for %d bytes", size)
	}
	base := uint32(results[0])

	mem := guestmem.Wrap(mod.Memory())
	strPtr := base + uint32(len(argv))*4
	for i, arg := range argv {
		if err := mem.WriteU32(base+uint32(i)*4, strPtr); err != nil {
			return 0, err
		}
		if err := mem.WriteString(strPtr, arg); err != nil {
			return 0, err
		}
		if err := mem.WriteU8(strPtr+uint32(len(arg)), 0); err != nil {
			return 0, err
		}
		strPtr += uint32(len(arg)) + 1
	}
	return base, nil
}
