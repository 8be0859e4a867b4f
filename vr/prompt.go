package vr

import (
	"regexp"
	"strings"

	"github.com/b71729/dcmcodec/charset"
)

// Prompt renders `b` for display. Output longer than `maxLen` is cut and
// ends in "..."; a non-positive `maxLen` disables truncation.
func (v VR) Prompt(b []byte, bigEndian bool, cs *charset.SpecificCharacterSet, maxLen int) string {
	if len(b) == 0 {
		return ""
	}
	var s string
	switch {
	case v.IsText():
		s = trimValue(v.decodeText(b, cs))
	case v.kind() == kindBytes:
		s = strings.Join(hexBytes(truncateBytes(b, maxLen/3+1)), `\`)
	case v.width() > 0:
		n := len(b) / v.width()
		if maxLen > 0 && n > maxLen/2+1 {
			n = maxLen/2 + 1
		}
		s = strings.Join(v.binaryStrings(b[:n*v.width()], bigEndian), `\`)
	default:
		return ""
	}
	if r := []rune(s); maxLen > 0 && len(r) > maxLen {
		cut := maxLen - 3
		if cut < 0 {
			cut = 0
		}
		s = string(r[:cut]) + "..."
	}
	return s
}

func truncateBytes(b []byte, n int) []byte {
	if n > 1 && len(b) > n {
		return b[:n]
	}
	return b
}

// ToPattern compiles the first value of `b` as a wildcard matcher:
// '*' matches any run of characters and '?' a single character.
// It returns nil for an empty value.
func (v VR) ToPattern(b []byte, bigEndian bool, cs *charset.SpecificCharacterSet, ignoreCase bool) (*regexp.Regexp, error) {
	s, err := v.DecodeString(b, bigEndian, cs)
	if err != nil || s == "" {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteByte('^')
	if ignoreCase {
		sb.WriteString("(?i)")
	}
	start := 0
	for i, c := range s {
		switch c {
		case '*':
			sb.WriteString(regexp.QuoteMeta(s[start:i]))
			sb.WriteString(".*")
			start = i + 1
		case '?':
			sb.WriteString(regexp.QuoteMeta(s[start:i]))
			sb.WriteString(".")
			start = i + 1
		}
	}
	sb.WriteString(regexp.QuoteMeta(s[start:]))
	sb.WriteByte('$')
	return regexp.Compile(sb.String())
}
