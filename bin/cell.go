package bin

import "github.com/dacapoday/binfile/codec"

// Cell is a transient view of one value slot: the binding of a Bin, a
// byte offset, and an element type. A Cell caches nothing - Get and Set
// hit the file at use time, and both fail once the Bin is closed or
// released. Reading moves the Bin's read cursor and writing moves its
// write cursor, exactly as the direct GetAt and PutAt calls do.
type Cell[T codec.Value, F File] struct {
	weak Weak[F]
	off  int64
}

// Offset returns the byte offset the cell addresses.
func (c Cell[T, F]) Offset() int64 { return c.off }

// Get reads the cell's current value.
func (c Cell[T, F]) Get() (T, error) {
	b, err := c.weak.resolve()
	if err != nil {
		var v T
		return v, err
	}
	return GetAt[T](b, c.off)
}

// Set overwrites the cell's value.
func (c Cell[T, F]) Set(v T) error {
	b, err := c.weak.resolve()
	if err != nil {
		return err
	}
	return PutAt(b, v, c.off)
}

// Swap exchanges the values addressed by two cells. Both values are
// read before either offset is written, so overlapping cells still
// trade their original contents.
func Swap[T codec.Value, F File](a, b Cell[T, F]) error {
	av, err := a.Get()
	if err != nil {
		return err
	}
	bv, err := b.Get()
	if err != nil {
		return err
	}
	if err := a.Set(bv); err != nil {
		return err
	}
	return b.Set(av)
}
