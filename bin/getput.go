package bin

import (
	"fmt"
	"math"

	"github.com/dacapoday/binfile/codec"
)

// Typed access lives in free functions because Go methods cannot take
// type parameters. The element type is chosen at the call site:
//
//	v, err := bin.Get[uint32](b)

// Get decodes one value of type T at the read cursor and advances the
// cursor by codec.Size[T]() bytes. Get fails with ErrOutOfRange when
// fewer than codec.Size[T]() bytes remain before the end of the file.
func Get[T codec.Value, F File](b *Bin[F]) (T, error) {
	var v T
	if b.closed {
		return v, ErrClosed
	}
	width := int64(codec.Size[T]())
	size, err := b.Size()
	if err != nil {
		return v, err
	}
	if size-b.rpos < width {
		return v, fmt.Errorf("%w: read %d bytes at %d, size %d", ErrOutOfRange, width, b.rpos, size)
	}
	buf := make([]byte, width)
	if _, err := b.file.ReadAt(buf, b.rpos); err != nil {
		return v, err
	}
	b.rpos += width
	return codec.Decode[T](buf, b.swap), nil
}

// GetAt positions the read cursor at off, then decodes as Get does.
func GetAt[T codec.Value, F File](b *Bin[F], off int64) (T, error) {
	if err := b.SeekRead(off); err != nil {
		var v T
		return v, err
	}
	return Get[T](b)
}

// GetMany decodes n consecutive values of type T starting at the read
// cursor. The whole run is bounds-checked up front and read in one
// pass; each element is then decoded independently under the configured
// byte order.
func GetMany[T codec.Value, F File](b *Bin[F], n int64) ([]T, error) {
	if b.closed {
		return nil, ErrClosed
	}
	width := int64(codec.Size[T]())
	// Guard the multiplication: an overflowing total would slip past
	// the size check below.
	if n < 0 || n > math.MaxInt64/width {
		return nil, fmt.Errorf("%w: read %d values", ErrOutOfRange, n)
	}
	total := codec.Bytes[T](n)
	size, err := b.Size()
	if err != nil {
		return nil, err
	}
	if size-b.rpos < total {
		return nil, fmt.Errorf("%w: read %d bytes at %d, size %d", ErrOutOfRange, total, b.rpos, size)
	}
	buf := make([]byte, total)
	if _, err := b.file.ReadAt(buf, b.rpos); err != nil {
		return nil, err
	}
	b.rpos += total
	vals := make([]T, n)
	for i := range vals {
		vals[i] = codec.Decode[T](buf[int64(i)*width:], b.swap)
	}
	return vals, nil
}

// GetManyAt positions the read cursor at off, then decodes as GetMany
// does.
func GetManyAt[T codec.Value, F File](b *Bin[F], n, off int64) ([]T, error) {
	if err := b.SeekRead(off); err != nil {
		return nil, err
	}
	return GetMany[T](b, n)
}

// Put encodes v at the write cursor and advances the cursor by
// codec.Size[T]() bytes, extending the file when the value lands at or
// past the current end.
func Put[T codec.Value, F File](b *Bin[F], v T) error {
	if b.closed {
		return ErrClosed
	}
	buf := codec.Encode(v, b.swap)
	if _, err := b.file.WriteAt(buf, b.wpos); err != nil {
		return err
	}
	b.wpos += int64(len(buf))
	return nil
}

// PutAt positions the write cursor at off, then encodes as Put does.
func PutAt[T codec.Value, F File](b *Bin[F], v T, off int64) error {
	if err := b.SeekWrite(off); err != nil {
		return err
	}
	return Put(b, v)
}

// PutMany encodes each value in turn at the write cursor. The run is
// not atomic: a failure mid-run leaves the prefix already written in
// place.
func PutMany[T codec.Value, F File](b *Bin[F], vals []T) error {
	if b.closed {
		return ErrClosed
	}
	for _, v := range vals {
		if err := Put(b, v); err != nil {
			return err
		}
	}
	return nil
}

// PutManyAt positions the write cursor at off, then encodes as PutMany
// does.
func PutManyAt[T codec.Value, F File](b *Bin[F], vals []T, off int64) error {
	if err := b.SeekWrite(off); err != nil {
		return err
	}
	return PutMany(b, vals)
}

// PutManyAs encodes each value after converting it to the storage type
// K, so a []int64 can be stored as a run of uint16 cells.
func PutManyAs[K codec.Value, T codec.Value, F File](b *Bin[F], vals []T) error {
	if b.closed {
		return ErrClosed
	}
	for _, v := range vals {
		if err := Put(b, K(v)); err != nil {
			return err
		}
	}
	return nil
}

// PutManyAsAt positions the write cursor at off, then encodes as
// PutManyAs does.
func PutManyAsAt[K codec.Value, T codec.Value, F File](b *Bin[F], vals []T, off int64) error {
	if err := b.SeekWrite(off); err != nil {
		return err
	}
	return PutManyAs[K](b, vals)
}

// MoveReadBy moves the read cursor by n elements of type T.
func MoveReadBy[T codec.Value, F File](b *Bin[F], n int64) error {
	return b.MoveRead(codec.Bytes[T](n))
}

// MoveWriteBy moves the write cursor by n elements of type T.
func MoveWriteBy[T codec.Value, F File](b *Bin[F], n int64) error {
	return b.MoveWrite(codec.Bytes[T](n))
}
