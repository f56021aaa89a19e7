package vfs

import "bytes"

// Reserved descriptors, fixed at the start of every invocation.
const (
	FdStdout int32 = 1
	FdStderr int32 = 2
	FdRoot   int32 = 3
	FdCwd    int32 = 4

	// firstDynamicFd is where path_open allocations start.
	firstDynamicFd int32 = 5
)

// Mount strings exposed to the guest's preopen enumeration. The second
// preopen is the pseudo working directory the gltfpack build resolves
// relative paths against; its path prefix is empty so opened names map
// straight to virtual filesystem keys.
const (
	RootMount = "/"
	CwdMount  = "/gltfpack-$pwd"
)

// Table is the per-invocation descriptor table and virtual filesystem.
// It is not safe for concurrent use; callers serialize invocations.
type Table struct {
	fds map[int32]*File
	fs  map[string][]byte
	log bytes.Buffer
}

// NewTable returns a table in its baseline state.
func NewTable() *Table {
	t := &Table{}
	t.Reset()
	return t
}

// Reset reinitializes the table to the fixed four-entry baseline, clears
// the log buffer, and empties the virtual filesystem.
func (t *Table) Reset() {
	t.fds = map[int32]*File{
		FdStdout: StdOutput(),
		FdStderr: StdOutput(),
		FdRoot:   MountPoint(RootMount, "/"),
		FdCwd:    MountPoint(CwdMount, ""),
	}
	t.fs = make(map[string][]byte)
	t.log.Reset()
}

// Get returns the descriptor entry for fd.
func (t *Table) Get(fd int32) (*File, bool) {
	f, ok := t.fds[fd]
	return f, ok
}

// Allocate inserts f under the smallest unused descriptor >= 5.
func (t *Table) Allocate(f *File) int32 {
	fd := firstDynamicFd
	for {
		if _, used := t.fds[fd]; !used {
			t.fds[fd] = f
			return fd
		}
		fd++
	}
}

// Close removes fd from the table. A write-created regular file publishes
// its [0, Size) content to the virtual filesystem under its recorded name
// before removal.
func (t *Table) Close(fd int32) bool {
	f, ok := t.fds[fd]
	if !ok {
		return false
	}
	if f.Kind == KindRegularFile && f.FlushOnClose {
		flushed := make([]byte, f.Size)
		copy(flushed, f.Content())
		t.fs[f.Name] = flushed
	}
	delete(t.fds, fd)
	return true
}

// Remove deletes fd from the table without flushing, backing out a
// descriptor whose open could not complete. Nothing reaches the virtual
// filesystem.
func (t *Table) Remove(fd int32) {
	delete(t.fds, fd)
}

// Fds returns the set of live descriptor numbers.
func (t *Table) Fds() []int32 {
	out := make([]int32, 0, len(t.fds))
	for fd := range t.fds {
		out = append(out, fd)
	}
	return out
}

// Seed places a file in the virtual filesystem before an invocation.
func (t *Table) Seed(name string, data []byte) {
	t.fs[name] = data
}

// Lookup returns the virtual file stored under name.
func (t *Table) Lookup(name string) ([]byte, bool) {
	b, ok := t.fs[name]
	return b, ok
}

// AppendLog appends guest stdout/stderr bytes to the shared log buffer.
func (t *Table) AppendLog(p []byte) {
	t.log.Write(p)
}

// Log returns the accumulated guest log bytes.
func (t *Table) Log() []byte {
	return t.log.Bytes()
}
