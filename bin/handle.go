package bin

// lease is the liveness block shared between a Bin, its handles, and
// any weak observers. It is allocated separately from the Bin so a weak
// observer can check liveness without owning the Bin.
type lease struct {
	refs     int
	released bool // terminal; set when the last handle is released
}

// Handle is a counted owning reference to a Bin, so several iterators
// can refer to one Bin without any of them owning its lifetime alone.
// The Bin itself never references its own handles.
//
// Each handle must be released exactly once. Releasing the last handle
// closes the Bin; after that every weak observer resolves to
// ErrUnbound.
type Handle[F File] struct {
	bin   *Bin[F]
	lease *lease
}

// NewHandle wraps b in an owning handle.
func NewHandle[F File](b *Bin[F]) Handle[F] {
	b.lease.refs++
	return Handle[F]{bin: b, lease: b.lease}
}

// Clone returns an additional owning reference to the same Bin.
func (h Handle[F]) Clone() (Handle[F], error) {
	if h.lease == nil || h.lease.released {
		return Handle[F]{}, ErrUnbound
	}
	h.lease.refs++
	return h, nil
}

// Release drops this owning reference. Dropping the last one closes
// the Bin and is terminal: nothing can revive it.
func (h Handle[F]) Release() error {
	if h.lease == nil || h.lease.released {
		return nil
	}
	if h.lease.refs--; h.lease.refs > 0 {
		return nil
	}
	h.lease.released = true
	return h.bin.Close()
}

// Bin resolves the handle to its Bin. It fails with ErrUnbound once the
// last handle has been released, and with ErrClosed while the Bin is
// still owned but closed.
func (h Handle[F]) Bin() (*Bin[F], error) {
	return Weak[F](h).resolve()
}

// Weak returns a non-owning observer of the same Bin.
func (h Handle[F]) Weak() Weak[F] {
	return Weak[F]{bin: h.bin, lease: h.lease}
}

// Weak is a non-owning observer of a Bin. It never extends the Bin's
// lifetime; it can only report, at use time, whether the Bin is still
// there. A Weak that outlives its Bin resolves to an error, not to a
// nil value.
type Weak[F File] struct {
	bin   *Bin[F]
	lease *lease
}

func (w Weak[F]) resolve() (*Bin[F], error) {
	if w.lease == nil || w.lease.released {
		return nil, ErrUnbound
	}
	if w.bin.closed {
		return nil, ErrClosed
	}
	return w.bin, nil
}
