package vr

import (
	"encoding/binary"
	"math"
)

func byteOrder(bigEndian bool) binary.ByteOrder {
	if bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// width is the size in bytes of one binary value, or 0 for text and opaque VRs.
func (v VR) width() int {
	switch v.props().kind {
	case kindSigned16, kindUnsigned16, kindWords:
		return 2
	case kindTag, kindSigned32, kindUnsigned32, kindFloat, kindFloats, kindLongs:
		return 4
	case kindDouble, kindDoubles:
		return 8
	}
	return 0
}

// ToggleEndian swaps the byte order of every value in `b`, in place.
// AT values are swapped as two 16-bit words, not as one 32-bit word.
// Text and byte-oriented VRs are left untouched.
func (v VR) ToggleEndian(b []byte) {
	w := v.width()
	if v.props().kind == kindTag {
		w = 2
	}
	if w < 2 {
		return
	}
	for i := 0; i+w <= len(b); i += w {
		for lo, hi := i, i+w-1; lo < hi; lo, hi = lo+1, hi-1 {
			b[lo], b[hi] = b[hi], b[lo]
		}
	}
}

func putTags(vals []uint32, order binary.ByteOrder) []byte {
	b := make([]byte, 4*len(vals))
	for i, t := range vals {
		order.PutUint16(b[4*i:], uint16(t>>16))
		order.PutUint16(b[4*i+2:], uint16(t))
	}
	return b
}

func getTags(b []byte, order binary.ByteOrder) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = uint32(order.Uint16(b[4*i:]))<<16 | uint32(order.Uint16(b[4*i+2:]))
	}
	return out
}

// putInts encodes `vals` with the VR's width. Values are truncated to fit.
func (v VR) putInts(vals []int, order binary.ByteOrder) []byte {
	switch v.props().kind {
	case kindTag:
		tags := make([]uint32, len(vals))
		for i, t := range vals {
			tags[i] = uint32(t)
		}
		return putTags(tags, order)
	case kindSigned16, kindUnsigned16, kindWords:
		b := make([]byte, 2*len(vals))
		for i, x := range vals {
			order.PutUint16(b[2*i:], uint16(x))
		}
		return b
	}
	b := make([]byte, 4*len(vals))
	for i, x := range vals {
		order.PutUint32(b[4*i:], uint32(x))
	}
	return b
}

// getInts decodes every value. Unsigned VRs are zero-extended, signed VRs sign-extended.
func (v VR) getInts(b []byte, order binary.ByteOrder) []int {
	switch v.props().kind {
	case kindTag:
		tags := getTags(b, order)
		out := make([]int, len(tags))
		for i, t := range tags {
			out[i] = int(t)
		}
		return out
	case kindSigned16:
		out := make([]int, len(b)/2)
		for i := range out {
			out[i] = int(int16(order.Uint16(b[2*i:])))
		}
		return out
	case kindUnsigned16, kindWords:
		out := make([]int, len(b)/2)
		for i := range out {
			out[i] = int(order.Uint16(b[2*i:]))
		}
		return out
	case kindSigned32, kindLongs:
		out := make([]int, len(b)/4)
		for i := range out {
			out[i] = int(int32(order.Uint32(b[4*i:])))
		}
		return out
	}
	out := make([]int, len(b)/4)
	for i := range out {
		out[i] = int(order.Uint32(b[4*i:]))
	}
	return out
}

// putFloats encodes with the VR's width: 4 bytes for FL and OF, 8 for FD and OD.
func (v VR) putFloats(vals []float64, order binary.ByteOrder) []byte {
	if v.width() == 8 {
		b := make([]byte, 8*len(vals))
		for i, f := range vals {
			order.PutUint64(b[8*i:], math.Float64bits(f))
		}
		return b
	}
	b := make([]byte, 4*len(vals))
	for i, f := range vals {
		order.PutUint32(b[4*i:], math.Float32bits(float32(f)))
	}
	return b
}

func (v VR) getFloats(b []byte, order binary.ByteOrder) []float64 {
	if v.width() == 8 {
		out := make([]float64, len(b)/8)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(b[8*i:]))
		}
		return out
	}
	out := make([]float64, len(b)/4)
	for i := range out {
		out[i] = float64(math.Float32frombits(order.Uint32(b[4*i:])))
	}
	return out
}
