package vfs

// Kind discriminates the closed set of descriptor variants.
type Kind uint8

const (
	// KindStdOutput routes writes to the shared log buffer (stdout/stderr).
	// Never readable or seekable.
	KindStdOutput Kind = iota

	// KindMountPoint is a directory preopen exposing a virtual path prefix.
	// Not itself readable or writable.
	KindMountPoint

	// KindRegularFile is an open virtual file with a cursor and declared size.
	KindRegularFile
)

// File is one entry in the descriptor table. Fields beyond Kind are
// populated per variant: Mount/Path for mount points, the rest for
// regular files.
type File struct {
	Kind Kind

	// Mount is the preopen string reported to the guest's startup
	// enumeration; Path is the prefix prepended to paths opened
	// relative to this descriptor.
	Mount string
	Path  string

	// Name is the virtual filesystem key the file was opened under.
	Name string

	// Data is the backing buffer; only Data[:Size] holds file content.
	Data     []byte
	Size     int64
	Position int64

	// FlushOnClose marks a write-created file whose content is published
	// to the virtual filesystem when its descriptor closes.
	FlushOnClose bool
}

// initialFileCapacity is the backing allocation for create-on-open files.
const initialFileCapacity = 4096

// StdOutput returns a log-routing descriptor entry.
func StdOutput() *File {
	return &File{Kind: KindStdOutput}
}

// MountPoint returns a directory preopen entry.
func MountPoint(mount, path string) *File {
	return &File{Kind: KindMountPoint, Mount: mount, Path: path}
}

// NewRegularFile returns an empty write-created file flushed on close.
func NewRegularFile(name string) *File {
	return &File{
		Kind:         KindRegularFile,
		Name:         name,
		Data:         make([]byte, initialFileCapacity),
		FlushOnClose: true,
	}
}

// OpenRegularFile returns a file backed by a copy of existing content.
func OpenRegularFile(name string, content []byte) *File {
	data := make([]byte, len(content))
	copy(data, content)
	return &File{
		Kind: KindRegularFile,
		Name: name,
		Data: data,
		Size: int64(len(data)),
	}
}

// EnsureCapacity grows the backing buffer so a write of n bytes at the
// current position fits. The buffer at least doubles, or grows to exactly
// fit, whichever is larger. Content in [0, Size) is preserved.
func (f *File) EnsureCapacity(n int64) {
	need := f.Position + n
	if need <= int64(len(f.Data)) {
		return
	}
	newLen := int64(len(f.Data)) * 2
	if need > newLen {
		newLen = need
	}
	grown := make([]byte, newLen)
	copy(grown, f.Data)
	f.Data = grown
}

// Content returns the live [0, Size) slice of the backing buffer.
func (f *File) Content() []byte {
	return f.Data[:f.Size]
}
