// Package codec converts fixed-width values to and from their raw byte
// representation.
//
// A value is copied byte for byte in the host's native layout. When the
// configured byte order differs from the host order the bytes are
// reversed in place - except for floating-point types, which keep their
// host-native layout under every configured order. That asymmetry is a
// contract of the on-disk format, not an implementation detail.
//
// No alignment or padding is ever introduced; exactly Size[T]() bytes
// are produced and consumed.
package codec

import (
	"encoding/binary"
	"reflect"
	"unsafe"
)

// Value constrains T to fixed-width plain-data types. The
// platform-sized int and uint are excluded on purpose: a value written
// on one platform must occupy the same bytes on every other.
type Value interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Size returns the number of bytes occupied by one value of type T.
func Size[T Value]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// Bytes returns the number of bytes occupied by n values of type T.
func Bytes[T Value](n int64) int64 {
	return int64(Size[T]()) * n
}

// NativeLittleEndian reports whether the host stores multi-byte values
// least significant byte first.
func NativeLittleEndian() bool {
	return binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 0x0001
}

// Float reports whether T is a floating-point type.
func Float[T Value]() bool {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Append appends the encoding of v to dst and returns the extended
// slice: the host-native byte image of v, reversed when swap is set and
// T is not floating point.
func Append[T Value](dst []byte, v T, swap bool) []byte {
	n := int(unsafe.Sizeof(v))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&v)), n)
	at := len(dst)
	dst = append(dst, raw...)
	if swap && !Float[T]() {
		reverse(dst[at:])
	}
	return dst
}

// Encode returns the Size[T]() byte encoding of v. See Append for the
// layout rule.
func Encode[T Value](v T, swap bool) []byte {
	var buf [8]byte
	return Append(buf[:0:int(unsafe.Sizeof(v))], v, swap)
}

// Decode reinterprets the first Size[T]() bytes of b as a value of type
// T, reversing them first when swap is set and T is not floating point.
// Decode is the inverse of Encode. It panics if b is shorter than
// Size[T]() bytes.
func Decode[T Value](b []byte, swap bool) (v T) {
	n := int(unsafe.Sizeof(v))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&v)), n)
	copy(buf, b[:n])
	if swap && !Float[T]() {
		reverse(buf)
	}
	return
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
