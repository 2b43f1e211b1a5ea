package bin

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dacapoday/binfile/mem"
)

func load(t *testing.T, opts Options) *Bin[*mem.File] {
	t.Helper()
	b, err := Load(new(mem.File), "test", opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return b
}

// TestOpen tests creating, reopening and truncating a real file.
func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")

	b, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if b.Path() != path {
		t.Errorf("Path = %q, want %q", b.Path(), path)
	}
	if size, _ := b.Size(); size != 0 {
		t.Errorf("new file size = %d, want 0", size)
	}
	if err := Put(b, uint32(7)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen without truncation: content preserved, cursors at 0
	b, err = Open(path, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if size, _ := b.Size(); size != 4 {
		t.Errorf("size = %d, want 4", size)
	}
	if b.ReadPos() != 0 || b.WritePos() != 0 {
		t.Errorf("cursors = %d/%d, want 0/0", b.ReadPos(), b.WritePos())
	}
	if v, err := Get[uint32](b); err != nil || v != 7 {
		t.Errorf("Get = %d, %v, want 7", v, err)
	}
	b.Close()

	// Reopen with truncation: content discarded
	b, err = Open(path, Options{Truncate: true})
	if err != nil {
		t.Fatalf("reopen truncate: %v", err)
	}
	if size, _ := b.Size(); size != 0 {
		t.Errorf("size after truncate = %d, want 0", size)
	}
	b.Close()
}

func TestOpenUnavailable(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no", "such", "dir", "x"), Options{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

// TestSizeRestoresPosition tests that Size never disturbs the backend
// position it found.
func TestSizeRestoresPosition(t *testing.T) {
	b := load(t, Options{})
	if err := PutMany(b, []uint16{10, 20, 30}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}
	if err := b.SeekRead(2); err != nil {
		t.Fatalf("SeekRead: %v", err)
	}

	size, err := b.Size()
	if err != nil || size != 6 {
		t.Fatalf("Size = %d, %v, want 6", size, err)
	}

	// The next Get still sees the value at the read cursor.
	if v, err := Get[uint16](b); err != nil || v != 20 {
		t.Errorf("Get after Size = %d, %v, want 20", v, err)
	}
}

func TestSeekRead(t *testing.T) {
	b := load(t, Options{})
	if err := PutMany(b, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	if err := b.SeekRead(4); err != nil {
		t.Errorf("SeekRead(size) should succeed: %v", err)
	}
	if err := b.SeekRead(5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SeekRead past end = %v, want ErrOutOfRange", err)
	}
	if err := b.SeekRead(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SeekRead(-1) = %v, want ErrOutOfRange", err)
	}
}

func TestSeekWriteUnbounded(t *testing.T) {
	b := load(t, Options{})

	// No upper bound: writing past the end is how the file grows.
	if err := b.SeekWrite(100); err != nil {
		t.Fatalf("SeekWrite(100): %v", err)
	}
	if err := Put(b, byte(0xFF)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if size, _ := b.Size(); size != 101 {
		t.Errorf("size = %d, want 101", size)
	}
	if err := b.SeekWrite(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SeekWrite(-1) = %v, want ErrOutOfRange", err)
	}
}

func TestIndependentCursors(t *testing.T) {
	b := load(t, Options{})
	if err := PutMany(b, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}
	if b.WritePos() != 4 {
		t.Fatalf("WritePos = %d, want 4", b.WritePos())
	}

	// Reads never move the write cursor, writes never move the read one.
	if _, err := Get[byte](b); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b.ReadPos() != 1 || b.WritePos() != 4 {
		t.Errorf("cursors = %d/%d, want 1/4", b.ReadPos(), b.WritePos())
	}
	if err := Put(b, byte(5)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if b.ReadPos() != 1 || b.WritePos() != 5 {
		t.Errorf("cursors = %d/%d, want 1/5", b.ReadPos(), b.WritePos())
	}
}

func TestMove(t *testing.T) {
	b := load(t, Options{})
	if err := PutMany(b, []uint32{1, 2, 3}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	if err := MoveReadBy[uint32](b, 2); err != nil {
		t.Fatalf("MoveReadBy: %v", err)
	}
	if v, err := Get[uint32](b); err != nil || v != 3 {
		t.Errorf("Get = %d, %v, want 3", v, err)
	}
	if err := MoveReadBy[uint32](b, -3); err != nil {
		t.Fatalf("MoveReadBy back: %v", err)
	}
	if v, err := Get[uint32](b); err != nil || v != 1 {
		t.Errorf("Get = %d, %v, want 1", v, err)
	}

	if err := b.MoveRead(100); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("MoveRead past end = %v, want ErrOutOfRange", err)
	}

	if err := MoveWriteBy[uint32](b, -1); err != nil {
		t.Fatalf("MoveWriteBy: %v", err)
	}
	if b.WritePos() != 8 {
		t.Errorf("WritePos = %d, want 8", b.WritePos())
	}
	if err := b.MoveWrite(-9); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("MoveWrite below 0 = %v, want ErrOutOfRange", err)
	}
}

func TestRawAndString(t *testing.T) {
	b := load(t, Options{})

	if err := b.PutString("header"); err != nil {
		t.Fatalf("PutString: %v", err)
	}
	if err := b.PutRawAt([]byte{0xDE, 0xAD}, 6); err != nil {
		t.Fatalf("PutRawAt: %v", err)
	}

	s, err := b.GetString(6)
	if err != nil || s != "header" {
		t.Fatalf("GetString = %q, %v", s, err)
	}
	p, err := b.GetRaw(2)
	if err != nil || p[0] != 0xDE || p[1] != 0xAD {
		t.Fatalf("GetRaw = %x, %v", p, err)
	}

	if _, err := b.GetRaw(1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("GetRaw past end = %v, want ErrOutOfRange", err)
	}
	if s, err := b.GetStringAt(2, 2); err != nil || s != "ad" {
		t.Errorf("GetStringAt = %q, %v, want \"ad\"", s, err)
	}
}

// TestClosed tests that close is terminal and idempotent.
func TestClosed(t *testing.T) {
	b := load(t, Options{})
	if err := Put(b, uint64(1)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}

	if _, err := b.Size(); !errors.Is(err, ErrClosed) {
		t.Errorf("Size = %v, want ErrClosed", err)
	}
	if _, err := Get[uint64](b); !errors.Is(err, ErrClosed) {
		t.Errorf("Get = %v, want ErrClosed", err)
	}
	if err := Put(b, uint64(2)); !errors.Is(err, ErrClosed) {
		t.Errorf("Put = %v, want ErrClosed", err)
	}
	if err := b.SeekRead(0); !errors.Is(err, ErrClosed) {
		t.Errorf("SeekRead = %v, want ErrClosed", err)
	}
	if err := b.SeekWrite(0); !errors.Is(err, ErrClosed) {
		t.Errorf("SeekWrite = %v, want ErrClosed", err)
	}
	if err := b.Flush(); !errors.Is(err, ErrClosed) {
		t.Errorf("Flush = %v, want ErrClosed", err)
	}
	if _, err := b.GetRaw(1); !errors.Is(err, ErrClosed) {
		t.Errorf("GetRaw = %v, want ErrClosed", err)
	}
	if err := b.PutRaw([]byte{1}); !errors.Is(err, ErrClosed) {
		t.Errorf("PutRaw = %v, want ErrClosed", err)
	}
}
