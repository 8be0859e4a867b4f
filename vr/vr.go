// Package vr implements the DICOM value representations: their wire
// properties, and conversion between raw element values and typed Go values.
package vr

import (
	"fmt"
	"strings"
)

// VR is a value representation. The set is closed; every VR has an entry in `table`.
type VR uint8

// None is used for items and delimiters, which carry no VR.
const (
	None VR = iota
	AE
	AS
	AT
	CS
	DA
	DS
	DT
	FD
	FL
	IS
	LO
	LT
	OB
	OD
	OF
	OL
	OW
	PN
	SH
	SL
	SQ
	SS
	ST
	TM
	UC
	UI
	UL
	UN
	UR
	US
	UT
	numVRs
)

// SiemensUN is the non-standard "??" code emitted by some scanners in place of UN.
const SiemensUN uint16 = 0x3F3F

// kind groups VRs that share conversion rules.
type kind uint8

const (
	kindNone kind = iota
	kindASCII  // multi-valued 7-bit text, both ends trimmed
	kindString // multi-valued text in the data set's character set
	kindPersonName
	kindText // single-valued text, trailing padding trimmed
	kindURI
	kindUID
	kindDate
	kindDateTime
	kindTime
	kindDecimal
	kindInteger
	kindTag
	kindFloat
	kindDouble
	kindSigned32
	kindSigned16
	kindUnsigned32
	kindUnsigned16
	kindBytes
	kindWords
	kindFloats
	kindDoubles
	kindLongs
	kindSequence
)

type properties struct {
	name    string
	padding byte
	header  int
	kind    kind
}

var table = [numVRs]properties{
	None: {"", 0, 8, kindNone},
	AE:   {"AE", ' ', 8, kindASCII},
	AS:   {"AS", ' ', 8, kindASCII},
	AT:   {"AT", 0, 8, kindTag},
	CS:   {"CS", ' ', 8, kindASCII},
	DA:   {"DA", ' ', 8, kindDate},
	DS:   {"DS", ' ', 8, kindDecimal},
	DT:   {"DT", ' ', 8, kindDateTime},
	FD:   {"FD", 0, 8, kindDouble},
	FL:   {"FL", 0, 8, kindFloat},
	IS:   {"IS", ' ', 8, kindInteger},
	LO:   {"LO", ' ', 8, kindString},
	LT:   {"LT", ' ', 8, kindText},
	OB:   {"OB", 0, 12, kindBytes},
	OD:   {"OD", 0, 12, kindDoubles},
	OF:   {"OF", 0, 12, kindFloats},
	OL:   {"OL", 0, 12, kindLongs},
	OW:   {"OW", 0, 12, kindWords},
	PN:   {"PN", ' ', 8, kindPersonName},
	SH:   {"SH", ' ', 8, kindString},
	SL:   {"SL", 0, 8, kindSigned32},
	SQ:   {"SQ", 0, 12, kindSequence},
	SS:   {"SS", 0, 8, kindSigned16},
	ST:   {"ST", ' ', 8, kindText},
	TM:   {"TM", ' ', 8, kindTime},
	UC:   {"UC", ' ', 12, kindString},
	UI:   {"UI", 0, 8, kindUID},
	UL:   {"UL", 0, 8, kindUnsigned32},
	UN:   {"UN", 0, 12, kindBytes},
	UR:   {"UR", ' ', 12, kindURI},
	US:   {"US", 0, 8, kindUnsigned16},
	UT:   {"UT", ' ', 12, kindText},
}

// All lists every VR except None, in code order.
var All = func() []VR {
	out := make([]VR, 0, numVRs-1)
	for v := None + 1; v < numVRs; v++ {
		out = append(out, v)
	}
	return out
}()

var byCode = func() map[uint16]VR {
	m := make(map[uint16]VR, numVRs)
	for _, v := range All {
		m[v.Code()] = v
	}
	return m
}()

// FromCode resolves the two-byte code read from the wire.
// The "??" code resolves to UN.
func FromCode(code uint16) (VR, error) {
	if code == SiemensUN {
		return UN, nil
	}
	if v, ok := byCode[code]; ok {
		return v, nil
	}
	return None, UnsupportedConversionError("unknown VR code 0x%04X", code)
}

// Parse resolves a two-letter VR name such as "LO".
func Parse(s string) (VR, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "??" {
		return UN, nil
	}
	if len(s) == 2 {
		if v, ok := byCode[uint16(s[0])<<8|uint16(s[1])]; ok {
			return v, nil
		}
	}
	return None, UnsupportedConversionError("unknown VR %q", s)
}

// MustParse is like Parse but panics on an unknown name. It is meant for tables.
func MustParse(s string) VR {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v VR) props() properties {
	if v >= numVRs {
		return table[None]
	}
	return table[v]
}

// Valid reports whether v names a real VR.
func (v VR) Valid() bool {
	return v > None && v < numVRs
}

func (v VR) String() string {
	if !v.Valid() {
		return fmt.Sprintf("VR(%d)", uint8(v))
	}
	return v.props().name
}

// Code returns the two ASCII characters of the VR packed big-endian, e.g. 0x4C4F for LO.
func (v VR) Code() uint16 {
	n := v.props().name
	if len(n) != 2 {
		return 0
	}
	return uint16(n[0])<<8 | uint16(n[1])
}

// Padding is the byte appended to make an odd-length value even.
func (v VR) Padding() byte {
	return v.props().padding
}

// HeaderLength is the length of an explicit VR element header: 8 or 12.
func (v VR) HeaderLength() int {
	return v.props().header
}

// IsText reports whether values are character strings.
func (v VR) IsText() bool {
	switch v.props().kind {
	case kindASCII, kindString, kindPersonName, kindText, kindURI, kindUID,
		kindDate, kindDateTime, kindTime, kindDecimal, kindInteger:
		return true
	}
	return false
}

// UsesCharacterSet reports whether values are decoded through (0008,0005).
func (v VR) UsesCharacterSet() bool {
	switch v.props().kind {
	case kindString, kindPersonName, kindText:
		return true
	}
	return false
}

// IsBulk reports whether the VR may hold encapsulated fragments.
func (v VR) IsBulk() bool {
	switch v.props().kind {
	case kindBytes, kindWords, kindFloats, kindDoubles, kindLongs:
		return true
	}
	return false
}

// IsSequence reports whether v is SQ.
func (v VR) IsSequence() bool {
	return v == SQ
}

// multiValued reports whether the backslash separates values.
func (v VR) multiValued() bool {
	switch v.props().kind {
	case kindText, kindURI:
		return false
	}
	return v.IsText()
}

// IsSingleValue reports whether `s` encodes exactly one value of this VR.
func (v VR) IsSingleValue(s string) bool {
	if s == "" {
		return false
	}
	return !v.multiValued() || !strings.Contains(s, `\`)
}

// ContainsSingleValues reports whether every entry of `ss` is a single value.
func (v VR) ContainsSingleValues(ss []string) bool {
	if ss == nil {
		return false
	}
	for _, s := range ss {
		if !v.IsSingleValue(s) {
			return false
		}
	}
	return true
}

// UnsupportedConversion is returned when a conversion is not defined for a VR,
// such as reading a number from a sequence.
type UnsupportedConversion struct {
	error
}

// UnsupportedConversionError returns an `UnsupportedConversion` error
func UnsupportedConversionError(format string, a ...interface{}) error {
	return &UnsupportedConversion{fmt.Errorf(format, a...)}
}

func (v VR) unsupported(op string) error {
	return UnsupportedConversionError("%s is not supported by VR %s", op, v)
}
