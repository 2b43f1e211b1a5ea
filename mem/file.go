// Package mem provides an in-memory implementation of the binfile.File
// interface, mainly for tests and tooling.
package mem

import (
	"fmt"
	"io"
	"sync"

	"github.com/dacapoday/binfile"
)

// File is an in-memory implementation of the binfile.File interface.
// It is safe for concurrent use by multiple goroutines.
//
// File requires no initialization - just declare and use:
//
//	var f File
//	f.WriteAt([]byte("hello"), 0)
type File struct {
	mu   sync.RWMutex
	data []byte
	pos  int64
}

var _ binfile.File = new(File)

// ReadAt reads len(p) bytes into p starting at byte offset off.
// It implements io.ReaderAt: a read reaching beyond the current size
// returns the bytes available and io.EOF.
func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n = copy(p, f.data[off:])
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}

// WriteAt writes len(p) bytes from p starting at byte offset off.
// Writing past the current size grows the file; the gap between the old
// size and off is zero-filled.
func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if end := off + int64(len(p)); end > int64(len(f.data)) {
		f.data = append(f.data, make([]byte, end-int64(len(f.data)))...)
	}
	return copy(f.data[off:], p), nil
}

// Seek sets the current offset. The typed accessors in package bin
// address the file through ReadAt and WriteAt and use Seek only to
// derive the file size.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = f.pos + offset
	case io.SeekEnd:
		pos = int64(len(f.data)) + offset
	default:
		return 0, fmt.Errorf("mem: invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("mem: negative position %d", pos)
	}
	f.pos = pos
	return pos, nil
}

// Truncate changes the size of the file.
//
// If the new size is smaller than the current size, the extra data is
// discarded. If the new size is larger, the file is extended and the
// new space is zero-filled.
func (f *File) Truncate(size int64) error {
	if size < 0 {
		return io.ErrUnexpectedEOF
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if size <= int64(len(f.data)) {
		f.data = f.data[:size]
	} else {
		f.data = append(f.data, make([]byte, size-int64(len(f.data)))...)
	}
	return nil
}

// Close discards all data and releases memory. After Close the file
// size is 0. It is safe to write to the file again after closing.
func (f *File) Close() error {
	f.mu.Lock()
	f.data = nil
	f.pos = 0
	f.mu.Unlock()
	return nil
}

// Sync is a no-op for in-memory files. It exists only to satisfy the
// binfile.File interface and always returns nil.
func (f *File) Sync() error {
	return nil
}

// Size returns the current size of the file in bytes.
func (f *File) Size() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int64(len(f.data))
}

// Bytes returns a copy of the entire file content.
func (f *File) Bytes() []byte {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]byte, len(f.data))
	copy(out, f.data)
	return out
}
