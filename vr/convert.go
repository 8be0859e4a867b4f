package vr

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/b71729/dcmcodec/charset"
)

func (v VR) kind() kind {
	return v.props().kind
}

func (v VR) isBinaryInt() bool {
	switch v.kind() {
	case kindTag, kindSigned16, kindUnsigned16, kindWords, kindSigned32, kindUnsigned32, kindLongs:
		return true
	}
	return false
}

func (v VR) isBinaryFloat() bool {
	switch v.kind() {
	case kindFloat, kindDouble, kindFloats, kindDoubles:
		return true
	}
	return false
}

func (v VR) isDate() bool {
	switch v.kind() {
	case kindDate, kindDateTime, kindTime:
		return true
	}
	return false
}

/*
===============================================================================
    Typed value -> bytes
===============================================================================
*/

// EncodeString converts `s` to an element value. For text VRs `s` may hold
// several backslash separated values; for binary VRs each value is parsed.
func (v VR) EncodeString(s string, bigEndian bool, cs *charset.SpecificCharacterSet) ([]byte, error) {
	if v.IsText() {
		return v.encodeText(s, cs), nil
	}
	return v.EncodeStrings(splitValues(s), bigEndian, cs)
}

// EncodeStrings converts one value per entry of `ss`.
func (v VR) EncodeStrings(ss []string, bigEndian bool, cs *charset.SpecificCharacterSet) ([]byte, error) {
	order := byteOrder(bigEndian)
	switch {
	case v.IsText():
		if !v.multiValued() && len(ss) > 1 {
			return nil, UnsupportedConversionError("VR %s holds a single value, got %d", v, len(ss))
		}
		return v.encodeText(strings.Join(ss, `\`), cs), nil
	case v.kind() == kindBytes:
		b := make([]byte, len(ss))
		for i, s := range ss {
			x, err := strconv.ParseUint(strings.TrimSpace(s), 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid %s value %q: %v", v, s, err)
			}
			b[i] = byte(x)
		}
		return v.Pad(b), nil
	case v.kind() == kindTag:
		vals := make([]int, len(ss))
		for i, s := range ss {
			t, err := parseTagHex(s)
			if err != nil {
				return nil, err
			}
			vals[i] = int(t)
		}
		return v.putInts(vals, order), nil
	case v.isBinaryInt():
		vals := make([]int, len(ss))
		for i, s := range ss {
			x, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s value %q: %v", v, s, err)
			}
			vals[i] = int(x)
		}
		return v.putInts(vals, order), nil
	case v.isBinaryFloat():
		vals := make([]float64, len(ss))
		for i, s := range ss {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s value %q: %v", v, s, err)
			}
			vals[i] = f
		}
		return v.putFloats(vals, order), nil
	}
	return nil, v.unsupported("EncodeStrings")
}

func parseTagHex(s string) (uint32, error) {
	s = strings.Trim(strings.TrimSpace(s), "()")
	s = strings.Replace(s, ",", "", 1)
	t, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 8 {
		return 0, fmt.Errorf("invalid AT value %q", s)
	}
	return uint32(t), nil
}

// EncodeInt converts a single integer.
func (v VR) EncodeInt(i int, bigEndian bool) ([]byte, error) {
	return v.EncodeInts([]int{i}, bigEndian)
}

// EncodeInts converts integers for IS and the binary integer VRs.
func (v VR) EncodeInts(vals []int, bigEndian bool) ([]byte, error) {
	switch {
	case v.kind() == kindInteger:
		ss := make([]string, len(vals))
		for i, x := range vals {
			ss[i] = FormatIS(x)
		}
		return v.encodeText(strings.Join(ss, `\`), nil), nil
	case v.isBinaryInt():
		return v.putInts(vals, byteOrder(bigEndian)), nil
	}
	return nil, v.unsupported("EncodeInts")
}

// EncodeShorts converts 16-bit values for SS, US and OW.
func (v VR) EncodeShorts(vals []int16, bigEndian bool) ([]byte, error) {
	if v.width() != 2 {
		return nil, v.unsupported("EncodeShorts")
	}
	ints := make([]int, len(vals))
	for i, x := range vals {
		ints[i] = int(x)
	}
	return v.putInts(ints, byteOrder(bigEndian)), nil
}

// EncodeFloat converts a single float.
func (v VR) EncodeFloat(f float32, bigEndian bool) ([]byte, error) {
	return v.EncodeFloats([]float32{f}, bigEndian)
}

// EncodeFloats converts floats for DS and the binary float VRs.
func (v VR) EncodeFloats(vals []float32, bigEndian bool) ([]byte, error) {
	fs := make([]float64, len(vals))
	for i, f := range vals {
		fs[i] = float64(f)
	}
	return v.encodeFloats(fs, 32, bigEndian, "EncodeFloats")
}

// EncodeDouble converts a single double.
func (v VR) EncodeDouble(f float64, bigEndian bool) ([]byte, error) {
	return v.EncodeDoubles([]float64{f}, bigEndian)
}

// EncodeDoubles converts doubles for DS and the binary float VRs.
func (v VR) EncodeDoubles(vals []float64, bigEndian bool) ([]byte, error) {
	return v.encodeFloats(vals, 64, bigEndian, "EncodeDoubles")
}

func (v VR) encodeFloats(vals []float64, bitSize int, bigEndian bool, op string) ([]byte, error) {
	switch {
	case v.kind() == kindDecimal:
		return v.encodeText(strings.Join(formatDSValues(vals, bitSize), `\`), nil), nil
	case v.isBinaryFloat():
		return v.putFloats(vals, byteOrder(bigEndian)), nil
	}
	return nil, v.unsupported(op)
}

// EncodeDate formats a DA, DT or TM value.
func (v VR) EncodeDate(t time.Time) ([]byte, error) {
	return v.EncodeDates([]time.Time{t})
}

// EncodeDates formats several DA, DT or TM values.
func (v VR) EncodeDates(ts []time.Time) ([]byte, error) {
	if !v.isDate() {
		return nil, v.unsupported("EncodeDates")
	}
	ss := make([]string, len(ts))
	for i, t := range ts {
		ss[i] = v.formatDate(t)
	}
	return v.encodeText(strings.Join(ss, `\`), nil), nil
}

// EncodeDateRange formats a range; a nil range encodes as an empty value.
func (v VR) EncodeDateRange(r *DateRange) ([]byte, error) {
	if !v.isDate() {
		return nil, v.unsupported("EncodeDateRange")
	}
	if r == nil {
		return []byte{}, nil
	}
	return v.encodeText(v.formatRange(*r), nil), nil
}

/*
===============================================================================
    Bytes -> typed value
===============================================================================
*/

// DecodeString returns the first value of `b` as text. Binary values are
// rendered in decimal, AT as "ggggeeee", OB and UN as backslash separated hex bytes.
func (v VR) DecodeString(b []byte, bigEndian bool, cs *charset.SpecificCharacterSet) (string, error) {
	if len(b) == 0 {
		if v == SQ || v == None {
			return "", v.unsupported("DecodeString")
		}
		return "", nil
	}
	switch {
	case v.IsText():
		return v.textValue(b, cs), nil
	case v.kind() == kindBytes:
		return strings.Join(hexBytes(b), `\`), nil
	case v.isBinaryInt() || v.isBinaryFloat():
		ss := v.binaryStrings(b[:min(len(b), v.width())], bigEndian)
		if len(ss) == 0 {
			return "", nil
		}
		return ss[0], nil
	}
	return "", v.unsupported("DecodeString")
}

// DecodeStrings returns every value of `b` as text.
func (v VR) DecodeStrings(b []byte, bigEndian bool, cs *charset.SpecificCharacterSet) ([]string, error) {
	switch {
	case v.IsText():
		return v.textValues(b, cs), nil
	case v.kind() == kindBytes:
		return hexBytes(b), nil
	case v.isBinaryInt() || v.isBinaryFloat():
		return v.binaryStrings(b, bigEndian), nil
	}
	return nil, v.unsupported("DecodeStrings")
}

func hexBytes(b []byte) []string {
	ss := make([]string, len(b))
	for i, x := range b {
		ss[i] = fmt.Sprintf("%02X", x)
	}
	return ss
}

func (v VR) binaryStrings(b []byte, bigEndian bool) []string {
	order := byteOrder(bigEndian)
	if v.isBinaryFloat() {
		fs := v.getFloats(b, order)
		bitSize := 32
		if v.width() == 8 {
			bitSize = 64
		}
		ss := make([]string, len(fs))
		for i, f := range fs {
			ss[i] = strconv.FormatFloat(f, 'G', -1, bitSize)
		}
		return ss
	}
	ints := v.getInts(b, order)
	ss := make([]string, len(ints))
	for i, x := range ints {
		if v.kind() == kindTag {
			ss[i] = fmt.Sprintf("%08X", uint32(x))
		} else {
			ss[i] = strconv.Itoa(x)
		}
	}
	return ss
}

// DecodeInt returns the first integer value, or 0 for an empty value.
func (v VR) DecodeInt(b []byte, bigEndian bool) (int, error) {
	switch {
	case v.kind() == kindInteger:
		s := v.textValue(b, nil)
		if s == "" {
			return 0, nil
		}
		return ParseIS(s)
	case v.isBinaryInt():
		if len(b) < v.width() {
			return 0, nil
		}
		return v.getInts(b[:v.width()], byteOrder(bigEndian))[0], nil
	}
	return 0, v.unsupported("DecodeInt")
}

// DecodeInts returns every integer value.
func (v VR) DecodeInts(b []byte, bigEndian bool) ([]int, error) {
	switch {
	case v.kind() == kindInteger:
		return parseISValues(v.textValues(b, nil))
	case v.isBinaryInt():
		return v.getInts(b, byteOrder(bigEndian)), nil
	}
	return nil, v.unsupported("DecodeInts")
}

// DecodeShorts returns every 16-bit value of SS, US or OW.
func (v VR) DecodeShorts(b []byte, bigEndian bool) ([]int16, error) {
	if v.width() != 2 {
		return nil, v.unsupported("DecodeShorts")
	}
	ints := v.getInts(b, byteOrder(bigEndian))
	out := make([]int16, len(ints))
	for i, x := range ints {
		out[i] = int16(x)
	}
	return out, nil
}

// DecodeFloat returns the first value as float32, or 0 for an empty value.
func (v VR) DecodeFloat(b []byte, bigEndian bool) (float32, error) {
	f, err := v.decodeFloat(b, bigEndian, 32, "DecodeFloat")
	return float32(f), err
}

// DecodeFloats returns every value as float32.
func (v VR) DecodeFloats(b []byte, bigEndian bool) ([]float32, error) {
	fs, err := v.decodeFloats(b, bigEndian, 32, "DecodeFloats")
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(fs))
	for i, f := range fs {
		out[i] = float32(f)
	}
	return out, nil
}

// DecodeDouble returns the first value as float64, or 0 for an empty value.
func (v VR) DecodeDouble(b []byte, bigEndian bool) (float64, error) {
	return v.decodeFloat(b, bigEndian, 64, "DecodeDouble")
}

// DecodeDoubles returns every value as float64.
func (v VR) DecodeDoubles(b []byte, bigEndian bool) ([]float64, error) {
	return v.decodeFloats(b, bigEndian, 64, "DecodeDoubles")
}

func (v VR) decodeFloat(b []byte, bigEndian bool, bitSize int, op string) (float64, error) {
	switch {
	case v.kind() == kindDecimal:
		s := v.textValue(b, nil)
		if s == "" {
			return 0, nil
		}
		return ParseDS(s, bitSize)
	case v.isBinaryFloat():
		if len(b) < v.width() {
			return 0, nil
		}
		return v.getFloats(b[:v.width()], byteOrder(bigEndian))[0], nil
	}
	return 0, v.unsupported(op)
}

func (v VR) decodeFloats(b []byte, bigEndian bool, bitSize int, op string) ([]float64, error) {
	switch {
	case v.kind() == kindDecimal:
		return parseDSValues(v.textValues(b, nil), bitSize)
	case v.isBinaryFloat():
		return v.getFloats(b, byteOrder(bigEndian)), nil
	}
	return nil, v.unsupported(op)
}

// DecodeDate parses the first DA, DT or TM value. An empty value yields the zero time.
func (v VR) DecodeDate(b []byte) (time.Time, error) {
	if !v.isDate() {
		return time.Time{}, v.unsupported("DecodeDate")
	}
	return v.parseDate(v.textValue(b, nil), false)
}

// DecodeDates parses every DA, DT or TM value.
func (v VR) DecodeDates(b []byte) ([]time.Time, error) {
	if !v.isDate() {
		return nil, v.unsupported("DecodeDates")
	}
	ss := v.textValues(b, nil)
	out := make([]time.Time, len(ss))
	for i, s := range ss {
		t, err := v.parseDate(s, false)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// DecodeDateRange parses a range matching value. The start is parsed with
// floor precision and the end with ceiling precision, so "2020-2021" as DA
// covers all of both years. An empty value yields nil.
func (v VR) DecodeDateRange(b []byte) (*DateRange, error) {
	if !v.isDate() {
		return nil, v.unsupported("DecodeDateRange")
	}
	return v.parseRange(firstValue(string(b)))
}

/*
===============================================================================
    Value multiplicity
===============================================================================
*/

// VM counts the values held in `b`.
func (v VR) VM(b []byte, cs *charset.SpecificCharacterSet) int {
	if len(b) == 0 {
		return 0
	}
	switch {
	case v.multiValued():
		return strings.Count(v.decodeText(b, cs), `\`) + 1
	case v.width() > 0:
		return len(b) / v.width()
	}
	return 1
}
