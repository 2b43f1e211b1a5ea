package bin

import (
	"fmt"
	"math"

	"github.com/dacapoday/binfile/codec"
)

// Iter is a random-access cursor over the values of a Bin, with a
// stride of one element of type T. It observes the Bin weakly: every
// step and dereference re-checks that the Bin is still owned and open,
// so a stale iterator fails instead of silently reading garbage.
//
// An Iter is a cheap value; copying one copies a position, not a
// resource.
//
// Usage:
//
//	it := bin.Begin[uint32](h)
//	end, err := bin.End[uint32](h)
//	for {
//	    eq, err := it.Equal(end)
//	    if err != nil || eq {
//	        break
//	    }
//	    cell, err := it.Cell()
//	    v, err := cell.Get()
//	    // process v
//	    err = it.Next()
//	}
type Iter[T codec.Value, F File] struct {
	weak Weak[F]
	off  int64
}

// Begin returns an iterator at offset 0.
func Begin[T codec.Value, F File](h Handle[F]) Iter[T, F] {
	return Iter[T, F]{weak: h.Weak()}
}

// End returns an iterator at the file size observed now. The position
// is a snapshot: growing the file later does not move an end iterator
// constructed earlier.
func End[T codec.Value, F File](h Handle[F]) (Iter[T, F], error) {
	b, err := h.Bin()
	if err != nil {
		return Iter[T, F]{}, err
	}
	size, err := b.Size()
	if err != nil {
		return Iter[T, F]{}, err
	}
	return Iter[T, F]{weak: h.Weak(), off: size}, nil
}

// At returns an iterator at element index n, that is byte offset
// n*codec.Size[T](). A negative index fails with ErrOutOfRange, like
// iterator arithmetic does.
func At[T codec.Value, F File](h Handle[F], n int64) (Iter[T, F], error) {
	return Begin[T](h).Add(n)
}

// Offset returns the byte offset the iterator addresses.
func (it Iter[T, F]) Offset() int64 { return it.off }

// Cell dereferences the iterator into a readable, assignable view of
// the addressed value slot.
func (it Iter[T, F]) Cell() (Cell[T, F], error) {
	if _, err := it.weak.resolve(); err != nil {
		return Cell[T, F]{}, err
	}
	return Cell[T, F]{weak: it.weak, off: it.off}, nil
}

// Next advances the iterator by one element.
func (it *Iter[T, F]) Next() error {
	if _, err := it.weak.resolve(); err != nil {
		return err
	}
	it.off += int64(codec.Size[T]())
	return nil
}

// Prev steps the iterator back by one element. Stepping back past
// offset 0 fails with ErrOutOfRange.
func (it *Iter[T, F]) Prev() error {
	if _, err := it.weak.resolve(); err != nil {
		return err
	}
	width := int64(codec.Size[T]())
	if it.off < width {
		return fmt.Errorf("%w: decrement past begin", ErrOutOfRange)
	}
	it.off -= width
	return nil
}

// Add returns an iterator n elements ahead (or behind, for negative n).
// A resulting offset below 0 fails with ErrOutOfRange.
func (it Iter[T, F]) Add(n int64) (Iter[T, F], error) {
	if _, err := it.weak.resolve(); err != nil {
		return Iter[T, F]{}, err
	}
	width := int64(codec.Size[T]())
	if n > math.MaxInt64/width || n < math.MinInt64/width {
		return Iter[T, F]{}, fmt.Errorf("%w: step %d", ErrOutOfRange, n)
	}
	step := codec.Bytes[T](n)
	off := it.off + step
	if off < 0 || (step > 0 && off < it.off) {
		return Iter[T, F]{}, fmt.Errorf("%w: offset %d", ErrOutOfRange, off)
	}
	return Iter[T, F]{weak: it.weak, off: off}, nil
}

// Sub returns an iterator n elements behind.
func (it Iter[T, F]) Sub(n int64) (Iter[T, F], error) {
	return it.Add(-n)
}

// Equal reports whether both iterators address the same offset of the
// same live Bin. Comparing iterators when either side no longer
// resolves is an error, not false.
func (it Iter[T, F]) Equal(other Iter[T, F]) (bool, error) {
	a, err := it.weak.resolve()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidCompare, err)
	}
	b, err := other.weak.resolve()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidCompare, err)
	}
	return a == b && it.off == other.off, nil
}

// Less orders two iterators over the same Bin by offset. Ordering is
// meaningless across different Bins.
func (it Iter[T, F]) Less(other Iter[T, F]) bool {
	return it.off < other.off
}

// Distance returns the element count from other to it, that is
// (it.Offset() - other.Offset()) / codec.Size[T](). Both offsets are
// assumed element-aligned for T.
func (it Iter[T, F]) Distance(other Iter[T, F]) int64 {
	return (it.off - other.off) / int64(codec.Size[T]())
}
