package wasi

import (
	"github.com/tetratelabs/wazero/sys"

	"github.com/notsoglb/gltfpack/guestmem"
	"github.com/notsoglb/gltfpack/vfs"
)

// WASI preview1 status codes returned to the guest.
const (
	ErrnoSuccess uint32 = 0
	ErrnoBadf    uint32 = 8
	ErrnoInval   uint32 = 28
	ErrnoIO      uint32 = 29
	ErrnoNosys   uint32 = 52
)

// WASI filetype values written into stat structures.
const (
	filetypeDirectory   uint8 = 3
	filetypeRegularFile uint8 = 4
)

// path_open oflags bit for create-on-open.
const oflagCreate uint32 = 1

// fd_seek whence values.
const (
	whenceSet int32 = 0
	whenceCur int32 = 1
	whenceEnd int32 = 2
)

// Host implements the WASI preview1 subset the gltfpack guest imports,
// translating each syscall into descriptor-table and virtual-filesystem
// operations. One Host serves one engine; it holds no locks.
type Host struct {
	Table *vfs.Table
}

// NewHost returns a host over a fresh descriptor table.
func NewHost() *Host {
	return &Host{Table: vfs.NewTable()}
}

// ProcExit terminates guest execution. The panic unwinds the guest call
// stack back into the engine, which translates it into a normal return;
// it is the guest-requested-exit signal, not a host fault.
func (h *Host) ProcExit(code uint32) {
	panic(sys.NewExitError(code))
}

// FdClose closes fd, publishing flush-on-close content to the virtual
// filesystem.
func (h *Host) FdClose(fd int32) uint32 {
	if _, ok := h.Table.Get(fd); !ok {
		return ErrnoBadf
	}
	if !h.Table.Close(fd) {
		return ErrnoIO
	}
	return ErrnoSuccess
}

// FdFdstatGet writes an fdstat structure for fd: filetype directory for
// mount points, regular file otherwise, remaining fields zero.
func (h *Host) FdFdstatGet(mem *guestmem.Memory, fd int32, statPtr uint32) uint32 {
	f, ok := h.Table.Get(fd)
	if !ok {
		return ErrnoBadf
	}
	filetype := filetypeRegularFile
	if f.Kind == vfs.KindMountPoint {
		filetype = filetypeDirectory
	}
	if err := mem.WriteU8(statPtr, filetype); err != nil {
		return ErrnoInval
	}
	for _, off := range []uint32{2, 8, 12, 16, 20} {
		if err := mem.WriteU32(statPtr+off, 0); err != nil {
			return ErrnoInval
		}
	}
	return ErrnoSuccess
}

// PathOpen opens a virtual path relative to a mount point. With the
// create flag set it allocates a fresh growable file published on close;
// otherwise the path must already exist in the virtual filesystem.
func (h *Host) PathOpen(mem *guestmem.Memory, parentFd int32, dirflags, pathPtr, pathLen, oflags, rightsBase, rightsInheriting, fdflags, openedFdPtr uint32) uint32 {
	parent, ok := h.Table.Get(parentFd)
	if !ok || parent.Kind != vfs.KindMountPoint {
		return ErrnoBadf
	}

	rel, err := mem.ReadString(pathPtr, pathLen)
	if err != nil {
		return ErrnoInval
	}
	name := parent.Path + rel

	var f *vfs.File
	if oflags&oflagCreate != 0 {
		f = vfs.NewRegularFile(name)
	} else {
		content, ok := h.Table.Lookup(name)
		if !ok {
			return ErrnoIO
		}
		f = vfs.OpenRegularFile(name, content)
	}

	fd := h.Table.Allocate(f)
	if err := mem.WriteU32(openedFdPtr, uint32(fd)); err != nil {
		// No flush: a failed open must not publish the empty file.
		h.Table.Remove(fd)
		return ErrnoInval
	}
	return ErrnoSuccess
}

// PathFilestatGet writes a zeroed filestat with the filetype field set:
// directory for the self entry ".", regular file for everything else.
func (h *Host) PathFilestatGet(mem *guestmem.Memory, parentFd int32, flags, pathPtr, pathLen, bufPtr uint32) uint32 {
	parent, ok := h.Table.Get(parentFd)
	if !ok || parent.Kind != vfs.KindMountPoint {
		return ErrnoBadf
	}

	name, err := mem.ReadString(pathPtr, pathLen)
	if err != nil {
		return ErrnoInval
	}

	// filestat is 64 bytes; only the filetype byte at offset 16 is set.
	if err := mem.Write(bufPtr, make([]byte, 64)); err != nil {
		return ErrnoInval
	}
	filetype := filetypeRegularFile
	if name == "." {
		filetype = filetypeDirectory
	}
	if err := mem.WriteU8(bufPtr+16, filetype); err != nil {
		return ErrnoInval
	}
	return ErrnoSuccess
}

// FdPrestatGet reports a directory preopen: discriminant 0 and the byte
// length of the mount string.
func (h *Host) FdPrestatGet(mem *guestmem.Memory, fd int32, bufPtr uint32) uint32 {
	f, ok := h.Table.Get(fd)
	if !ok || f.Kind != vfs.KindMountPoint {
		return ErrnoBadf
	}
	if err := mem.WriteU8(bufPtr, 0); err != nil {
		return ErrnoInval
	}
	if err := mem.WriteU32(bufPtr+4, uint32(len(f.Mount))); err != nil {
		return ErrnoInval
	}
	return ErrnoSuccess
}

// FdPrestatDirName copies a preopen's mount string into guest memory.
// The guest must request exactly the length reported by FdPrestatGet.
func (h *Host) FdPrestatDirName(mem *guestmem.Memory, fd int32, pathPtr, pathLen uint32) uint32 {
	f, ok := h.Table.Get(fd)
	if !ok || f.Kind != vfs.KindMountPoint {
		return ErrnoBadf
	}
	if pathLen != uint32(len(f.Mount)) {
		return ErrnoInval
	}
	if err := mem.WriteString(pathPtr, f.Mount); err != nil {
		return ErrnoInval
	}
	return ErrnoSuccess
}

// PathRemoveDirectory always fails; directory removal is unsupported.
func (h *Host) PathRemoveDirectory(parentFd int32, pathPtr, pathLen uint32) uint32 {
	return ErrnoInval
}

// FdFdstatSetFlags is unimplemented.
func (h *Host) FdFdstatSetFlags(fd int32, flags uint32) uint32 {
	return ErrnoNosys
}

// FdSeek moves a file cursor. whence 2 seeks to end-of-file ignoring the
// supplied offset: the gltfpack build only ever issues SEEK_END with
// offset 0, and the guest's libc was matched against this behavior.
func (h *Host) FdSeek(mem *guestmem.Memory, fd int32, offset int32, whence int32, newOffsetPtr uint32) uint32 {
	f, ok := h.Table.Get(fd)
	if !ok {
		return ErrnoBadf
	}

	var pos int64
	switch whence {
	case whenceSet:
		pos = int64(offset)
	case whenceCur:
		pos = f.Position + int64(offset)
	case whenceEnd:
		pos = f.Size
	default:
		return ErrnoInval
	}

	if pos < 0 || pos > f.Size {
		return ErrnoInval
	}

	f.Position = pos
	if err := mem.WriteU32(newOffsetPtr, uint32(pos)); err != nil {
		return ErrnoInval
	}
	return ErrnoSuccess
}

// FdRead fills each iovec in order from the file's backing buffer,
// advancing the cursor, and reports the total bytes read.
func (h *Host) FdRead(mem *guestmem.Memory, fd int32, iovsPtr, iovsLen, nreadPtr uint32) uint32 {
	f, ok := h.Table.Get(fd)
	if !ok {
		return ErrnoBadf
	}

	var total uint32
	for i := uint32(0); i < iovsLen; i++ {
		bufPtr, err := mem.ReadU32(iovsPtr + 8*i)
		if err != nil {
			return ErrnoInval
		}
		bufLen, err := mem.ReadU32(iovsPtr + 8*i + 4)
		if err != nil {
			return ErrnoInval
		}

		n := f.Size - f.Position
		if int64(bufLen) < n {
			n = int64(bufLen)
		}
		if n > 0 {
			if err := mem.Write(bufPtr, f.Data[f.Position:f.Position+n]); err != nil {
				return ErrnoIO
			}
		}
		f.Position += n
		total += uint32(n)
	}

	if err := mem.WriteU32(nreadPtr, total); err != nil {
		return ErrnoInval
	}
	return ErrnoSuccess
}

// FdWrite appends stdout/stderr bytes to the shared log buffer; regular
// file writes land at the cursor, growing the backing buffer as needed.
func (h *Host) FdWrite(mem *guestmem.Memory, fd int32, iovsPtr, iovsLen, nwrittenPtr uint32) uint32 {
	f, ok := h.Table.Get(fd)
	if !ok {
		return ErrnoBadf
	}

	var total uint32
	for i := uint32(0); i < iovsLen; i++ {
		bufPtr, err := mem.ReadU32(iovsPtr + 8*i)
		if err != nil {
			return ErrnoInval
		}
		bufLen, err := mem.ReadU32(iovsPtr + 8*i + 4)
		if err != nil {
			return ErrnoInval
		}

		data, err := mem.Read(bufPtr, bufLen)
		if err != nil {
			return ErrnoIO
		}

		if f.Kind == vfs.KindStdOutput {
			h.Table.AppendLog(data)
		} else {
			f.EnsureCapacity(int64(bufLen))
			copy(f.Data[f.Position:], data)
			f.Position += int64(bufLen)
			if f.Position > f.Size {
				f.Size = f.Position
			}
		}
		total += bufLen
	}

	if err := mem.WriteU32(nwrittenPtr, total); err != nil {
		return ErrnoInval
	}
	return ErrnoSuccess
}
