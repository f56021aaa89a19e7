package wasi

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/notsoglb/gltfpack/guestmem"
)

// ModuleName is the import namespace the guest binary links against.
const ModuleName = "wasi_snapshot_preview1"

var i32 = api.ValueTypeI32

// Instantiate binds the host's syscalls under the WASI preview1 import
// namespace and instantiates the resulting host module.
//
// The export set matches the gltfpack guest's import section exactly,
// including the 32-bit path_open32 and fd_seek32 variants its wasi
// build uses. Any guest import outside this set fails at link time.
func Instantiate(ctx context.Context, r wazero.Runtime, host *Host) (api.Module, error) {
	builder := r.NewHostModuleBuilder(ModuleName)

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			host.ProcExit(uint32(stack[0]))
		}), []api.ValueType{i32}, nil).
		Export("proc_exit")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(host.FdClose(api.DecodeI32(stack[0])))
		}), []api.ValueType{i32}, []api.ValueType{i32}).
		Export("fd_close")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			mem := guestmem.Wrap(mod.Memory())
			stack[0] = uint64(host.FdFdstatGet(mem, api.DecodeI32(stack[0]), uint32(stack[1])))
		}), []api.ValueType{i32, i32}, []api.ValueType{i32}).
		Export("fd_fdstat_get")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			mem := guestmem.Wrap(mod.Memory())
			stack[0] = uint64(host.PathOpen(mem,
				api.DecodeI32(stack[0]), uint32(stack[1]), uint32(stack[2]),
				uint32(stack[3]), uint32(stack[4]), uint32(stack[5]),
				uint32(stack[6]), uint32(stack[7]), uint32(stack[8])))
		}), []api.ValueType{i32, i32, i32, i32, i32, i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("path_open32")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			mem := guestmem.Wrap(mod.Memory())
			stack[0] = uint64(host.PathFilestatGet(mem,
				api.DecodeI32(stack[0]), uint32(stack[1]), uint32(stack[2]),
				uint32(stack[3]), uint32(stack[4])))
		}), []api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("path_filestat_get")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			mem := guestmem.Wrap(mod.Memory())
			stack[0] = uint64(host.FdPrestatGet(mem, api.DecodeI32(stack[0]), uint32(stack[1])))
		}), []api.ValueType{i32, i32}, []api.ValueType{i32}).
		Export("fd_prestat_get")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			mem := guestmem.Wrap(mod.Memory())
			stack[0] = uint64(host.FdPrestatDirName(mem, api.DecodeI32(stack[0]), uint32(stack[1]), uint32(stack[2])))
		}), []api.ValueType{i32, i32, i32}, []api.ValueType{i32}).
		Export("fd_prestat_dir_name")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(host.PathRemoveDirectory(api.DecodeI32(stack[0]), uint32(stack[1]), uint32(stack[2])))
		}), []api.ValueType{i32, i32, i32}, []api.ValueType{i32}).
		Export("path_remove_directory")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(host.FdFdstatSetFlags(api.DecodeI32(stack[0]), uint32(stack[1])))
		}), []api.ValueType{i32, i32}, []api.ValueType{i32}).
		Export("fd_fdstat_set_flags")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			mem := guestmem.Wrap(mod.Memory())
			stack[0] = uint64(host.FdSeek(mem,
				api.DecodeI32(stack[0]), api.DecodeI32(stack[1]),
				api.DecodeI32(stack[2]), uint32(stack[3])))
		}), []api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("fd_seek32")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			mem := guestmem.Wrap(mod.Memory())
			stack[0] = uint64(host.FdRead(mem,
				api.DecodeI32(stack[0]), uint32(stack[1]), uint32(stack[2]), uint32(stack[3])))
		}), []api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("fd_read")

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			mem := guestmem.Wrap(mod.Memory())
			stack[0] = uint64(host.FdWrite(mem,
				api.DecodeI32(stack[0]), uint32(stack[1]), uint32(stack[2]), uint32(stack[3])))
		}), []api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}).
		Export("fd_write")

	return builder.Instantiate(ctx)
}
