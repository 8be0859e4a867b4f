package vr

import (
	"strings"

	"github.com/b71729/dcmcodec/charset"
)

// trimValue strips leading spaces and trailing spaces or NULs.
func trimValue(s string) string {
	s = strings.TrimLeft(s, " ")
	return strings.TrimRight(s, " \x00")
}

// trimEnd strips trailing spaces or NULs only; leading spaces are significant in text VRs.
func trimEnd(s string) string {
	return strings.TrimRight(s, " \x00")
}

// trimPersonName also drops trailing empty components.
func trimPersonName(s string) string {
	s = strings.TrimLeft(s, " ")
	return strings.TrimRight(s, " ^")
}

func splitValues(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, `\`)
}

func firstValue(s string) string {
	if i := strings.IndexByte(s, '\\'); i >= 0 {
		return s[:i]
	}
	return s
}

// decodeText converts raw bytes to text, through `cs` only where the VR uses it.
func (v VR) decodeText(b []byte, cs *charset.SpecificCharacterSet) string {
	if v.UsesCharacterSet() {
		return cs.Decode(b)
	}
	return string(b)
}

func (v VR) encodeText(s string, cs *charset.SpecificCharacterSet) []byte {
	var b []byte
	if v.UsesCharacterSet() {
		b = cs.Encode(s)
	} else {
		b = []byte(s)
	}
	return v.Pad(b)
}

// Pad returns `b` extended to an even length with the VR's padding byte.
// A padded result never shares memory with `b`.
func (v VR) Pad(b []byte) []byte {
	if len(b)%2 == 0 {
		return b
	}
	out := make([]byte, len(b)+1)
	copy(out, b)
	out[len(b)] = v.Padding()
	return out
}

func (v VR) trim(s string) string {
	switch v.props().kind {
	case kindText, kindURI:
		return trimEnd(s)
	case kindPersonName:
		return trimPersonName(s)
	}
	return trimValue(s)
}

func (v VR) textValue(b []byte, cs *charset.SpecificCharacterSet) string {
	s := v.decodeText(b, cs)
	if v.multiValued() {
		s = firstValue(s)
	}
	return v.trim(s)
}

func (v VR) textValues(b []byte, cs *charset.SpecificCharacterSet) []string {
	if len(b) == 0 {
		return []string{}
	}
	s := v.decodeText(b, cs)
	if !v.multiValued() {
		return []string{v.trim(s)}
	}
	ss := splitValues(s)
	for i := range ss {
		ss[i] = v.trim(ss[i])
	}
	return ss
}
