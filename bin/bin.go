// Package bin treats a binary file as a flat sequence of fixed-width
// typed values addressed by byte offset.
//
// A Bin owns an open file and two independent cursors: reads advance
// the read cursor, writes advance the write cursor, and neither ever
// moves the other. The byte order of integral values is chosen when the
// file is opened; floating-point values are always stored in host
// layout (see package codec).
//
// The file format is raw: no magic number, no header, no length
// prefixes. A value occupies exactly codec.Size[T]() bytes at its
// offset. String and raw-byte runs carry no embedded length; callers
// track lengths out of band.
//
// A Bin is not safe for concurrent use. Exactly one goroutine drives a
// Bin, its handles, and its iterators at a time.
package bin

import (
	"fmt"
	"io"
	"os"

	"github.com/dacapoday/binfile"
	"github.com/dacapoday/binfile/codec"
)

type File = binfile.File

// Options configures how a file is opened.
type Options struct {
	// Truncate discards any existing content.
	Truncate bool

	// LittleEndian selects the byte order for integral values.
	// Nil means host-native order.
	LittleEndian *bool
}

// Little and Big are ready-made values for Options.LittleEndian.
var (
	Little = ptr(true)
	Big    = ptr(false)
)

func ptr(b bool) *bool { return &b }

// Bin provides typed random access to a single file.
type Bin[F File] struct {
	file   F
	path   string
	little bool
	swap   bool // configured order differs from host order
	closed bool
	rpos   int64
	wpos   int64
	lease  *lease
}

// Open opens or creates the named file for simultaneous read and
// write. A missing file starts empty; an existing one keeps its content
// unless Options.Truncate is set. Both cursors start at offset 0.
func Open(path string, opts Options) (*Bin[*os.File], error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	b, err := Load(file, path, opts)
	if err != nil {
		file.Close()
		return nil, err
	}
	return b, nil
}

// Load wraps an already opened backend. The path is kept as the Bin's
// identity only; Load never touches the file system.
func Load[F File](file F, path string, opts Options) (*Bin[F], error) {
	if opts.Truncate {
		if err := file.Truncate(0); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}
	little := codec.NativeLittleEndian()
	if opts.LittleEndian != nil {
		little = *opts.LittleEndian
	}
	return &Bin[F]{
		file:   file,
		path:   path,
		little: little,
		swap:   little != codec.NativeLittleEndian(),
		lease:  new(lease),
	}, nil
}

// File returns the underlying backend.
func (b *Bin[F]) File() F { return b.file }

// Path returns the file name the Bin was opened with.
func (b *Bin[F]) Path() string { return b.path }

// LittleEndian reports the configured byte order for integral values.
func (b *Bin[F]) LittleEndian() bool { return b.little }

// ReadPos returns the current read cursor.
func (b *Bin[F]) ReadPos() int64 { return b.rpos }

// WritePos returns the current write cursor.
func (b *Bin[F]) WritePos() int64 { return b.wpos }

// Size returns the current byte length of the file. The length is
// derived on demand by seeking to the end and restoring the prior
// position, so calling Size mid-sequence never disturbs other
// operations.
func (b *Bin[F]) Size() (int64, error) {
	if b.closed {
		return 0, ErrClosed
	}
	pos, err := b.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := b.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := b.file.Seek(pos, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

// SeekRead positions the read cursor. The read cursor cannot be placed
// past the current end of the file.
func (b *Bin[F]) SeekRead(off int64) error {
	if b.closed {
		return ErrClosed
	}
	size, err := b.Size()
	if err != nil {
		return err
	}
	if off < 0 || off > size {
		return fmt.Errorf("%w: seek read to %d, size %d", ErrOutOfRange, off, size)
	}
	b.rpos = off
	return nil
}

// SeekWrite positions the write cursor. Writing at or past the current
// end is how the file grows, so no upper bound applies.
func (b *Bin[F]) SeekWrite(off int64) error {
	if b.closed {
		return ErrClosed
	}
	if off < 0 {
		return fmt.Errorf("%w: seek write to %d", ErrOutOfRange, off)
	}
	b.wpos = off
	return nil
}

// MoveRead moves the read cursor by n bytes, forward or backward.
func (b *Bin[F]) MoveRead(n int64) error {
	if b.closed {
		return ErrClosed
	}
	return b.SeekRead(b.rpos + n)
}

// MoveWrite moves the write cursor by n bytes, forward or backward.
func (b *Bin[F]) MoveWrite(n int64) error {
	if b.closed {
		return ErrClosed
	}
	return b.SeekWrite(b.wpos + n)
}

// GetRaw reads n uninterpreted bytes at the read cursor and advances
// it. The whole run must lie within the current file size.
func (b *Bin[F]) GetRaw(n int64) ([]byte, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: read %d bytes", ErrOutOfRange, n)
	}
	size, err := b.Size()
	if err != nil {
		return nil, err
	}
	if size-b.rpos < n {
		return nil, fmt.Errorf("%w: read %d bytes at %d, size %d", ErrOutOfRange, n, b.rpos, size)
	}
	buf := make([]byte, n)
	if _, err := b.file.ReadAt(buf, b.rpos); err != nil {
		return nil, err
	}
	b.rpos += n
	return buf, nil
}

// GetRawAt positions the read cursor at off, then reads as GetRaw does.
func (b *Bin[F]) GetRawAt(n, off int64) ([]byte, error) {
	if err := b.SeekRead(off); err != nil {
		return nil, err
	}
	return b.GetRaw(n)
}

// PutRaw writes p at the write cursor and advances it, extending the
// file when the run ends past the current size. Bytes of any gap left
// between the old size and the write offset are defined by the backend;
// *os.File and mem.File zero-fill them.
func (b *Bin[F]) PutRaw(p []byte) error {
	if b.closed {
		return ErrClosed
	}
	if _, err := b.file.WriteAt(p, b.wpos); err != nil {
		return err
	}
	b.wpos += int64(len(p))
	return nil
}

// PutRawAt positions the write cursor at off, then writes as PutRaw
// does.
func (b *Bin[F]) PutRawAt(p []byte, off int64) error {
	if err := b.SeekWrite(off); err != nil {
		return err
	}
	return b.PutRaw(p)
}

// GetString reads n bytes at the read cursor as an uninterpreted
// string. Nothing marks the end of a string in the file; the caller
// supplies the length.
func (b *Bin[F]) GetString(n int64) (string, error) {
	p, err := b.GetRaw(n)
	return string(p), err
}

// GetStringAt positions the read cursor at off, then reads as GetString
// does.
func (b *Bin[F]) GetStringAt(n, off int64) (string, error) {
	p, err := b.GetRawAt(n, off)
	return string(p), err
}

// PutString writes the bytes of s at the write cursor, with no length
// framing.
func (b *Bin[F]) PutString(s string) error {
	return b.PutRaw([]byte(s))
}

// PutStringAt positions the write cursor at off, then writes as
// PutString does.
func (b *Bin[F]) PutStringAt(s string, off int64) error {
	return b.PutRawAt([]byte(s), off)
}

// Flush commits the current contents of the file to stable storage.
func (b *Bin[F]) Flush() error {
	if b.closed {
		return ErrClosed
	}
	return b.file.Sync()
}

// Close releases the underlying file. Closing is terminal: every later
// operation on the Bin, or through any iterator over it, fails with
// ErrClosed. Closing an already closed Bin is a no-op.
func (b *Bin[F]) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return b.file.Close()
}
