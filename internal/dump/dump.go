// Package dump renders a region of a binary file as rows of decoded
// fixed-width values.
package dump

import (
	"fmt"
	"io"

	"github.com/dacapoday/binfile/codec"
)

// Types lists the element type names understood by Render.
var Types = []string{"u8", "u16", "u32", "u64", "i8", "i16", "i32", "i64", "f32", "f64"}

// Width returns the byte width of a named element type, or 0 when the
// name is unknown.
func Width(typ string) int {
	switch typ {
	case "u8", "i8":
		return 1
	case "u16", "i16":
		return 2
	case "u32", "i32", "f32":
		return 4
	case "u64", "i64", "f64":
		return 8
	}
	return 0
}

// perRow is the element count printed per line.
const perRow = 8

// Render writes data as rows of decoded values, eight per line, each
// line prefixed with the file offset of its first element. base is the
// offset of data[0]; little selects the integral byte order. Trailing
// bytes smaller than one element are ignored.
func Render(w io.Writer, base int64, data []byte, typ string, little bool) error {
	swap := little != codec.NativeLittleEndian()
	switch typ {
	case "u8":
		return render[uint8](w, base, data, swap)
	case "u16":
		return render[uint16](w, base, data, swap)
	case "u32":
		return render[uint32](w, base, data, swap)
	case "u64":
		return render[uint64](w, base, data, swap)
	case "i8":
		return render[int8](w, base, data, swap)
	case "i16":
		return render[int16](w, base, data, swap)
	case "i32":
		return render[int32](w, base, data, swap)
	case "i64":
		return render[int64](w, base, data, swap)
	case "f32":
		return render[float32](w, base, data, swap)
	case "f64":
		return render[float64](w, base, data, swap)
	default:
		return fmt.Errorf("unknown element type %q", typ)
	}
}

func render[T codec.Value](w io.Writer, base int64, data []byte, swap bool) error {
	width := codec.Size[T]()
	col := 0
	for off := 0; off+width <= len(data); off += width {
		if col == 0 {
			if _, err := fmt.Fprintf(w, "%08x", base+int64(off)); err != nil {
				return err
			}
		}
		v := codec.Decode[T](data[off:], swap)
		if _, err := fmt.Fprintf(w, " %v", v); err != nil {
			return err
		}
		if col++; col == perRow {
			col = 0
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	if col != 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
