package dump

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/dacapoday/binfile/codec"
)

func TestRenderU8(t *testing.T) {
	data := make([]byte, 12)
	for i := range data {
		data[i] = byte(i)
	}

	var buf bytes.Buffer
	if err := Render(&buf, 0, data, "u8", true); err != nil {
		t.Fatalf("Render: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "u8", buf.Bytes())
}

func TestRenderU32(t *testing.T) {
	var data []byte
	swap := !codec.NativeLittleEndian()
	for _, v := range []uint32{1, 2, 70000} {
		data = append(data, codec.Encode(v, swap)...)
	}
	// One trailing byte too small for an element; must be ignored.
	data = append(data, 0xFF)

	var buf bytes.Buffer
	if err := Render(&buf, 256, data, "u32", true); err != nil {
		t.Fatalf("Render: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "u32", buf.Bytes())
}

func TestRenderI16(t *testing.T) {
	swap := !codec.NativeLittleEndian()
	data := codec.Append(nil, int16(-1), swap)
	data = codec.Append(data, int16(-30000), swap)

	var buf bytes.Buffer
	if err := Render(&buf, 0, data, "i16", true); err != nil {
		t.Fatalf("Render: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "i16", buf.Bytes())
}

func TestRenderF64(t *testing.T) {
	// Floats are stored host-native under either configured order.
	data := codec.Append(nil, 1.5, false)
	data = codec.Append(data, -0.25, false)

	var buf bytes.Buffer
	if err := Render(&buf, 0, data, "f64", false); err != nil {
		t.Fatalf("Render: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "f64", buf.Bytes())
}

func TestRenderUnknownType(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, 0, []byte{1}, "u7", true); err == nil {
		t.Fatalf("Render with unknown type should fail")
	}
}

func TestWidth(t *testing.T) {
	for _, typ := range Types {
		if Width(typ) == 0 {
			t.Errorf("Width(%q) = 0", typ)
		}
	}
	if Width("nope") != 0 {
		t.Errorf("Width of unknown type should be 0")
	}
}
