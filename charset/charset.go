// Package charset implements the Specific Character Set (0008,0005) text codecs.
package charset

import (
	"strings"
	"unicode/utf8"

	"github.com/b71729/dcmcodec/core"
	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
)

// DefaultRepertoire decodes values when no (0008,0005) is present.
// Windows-1252 is a superset of ASCII that maps every byte, so decoding never fails.
var DefaultRepertoire encoding.Encoding = charmap.Windows1252

// Term describes one defined term of (0008,0005).
type Term struct {
	Name        string
	Description string
	Label       string
	Encoding    encoding.Encoding
}

// labels maps defined terms onto labels understood by `htmlcharset.Lookup`.
var labels = map[string]struct{ label, description string }{
	"ISO_IR 6":        {"us-ascii", "Default Character Repertoire"},
	"ISO_IR 100":      {"iso-ir-100", "Latin alphabet No. 1"},
	"ISO_IR 101":      {"iso-ir-101", "Latin alphabet No. 2"},
	"ISO_IR 109":      {"iso-ir-109", "Latin alphabet No. 3"},
	"ISO_IR 110":      {"iso-ir-110", "Latin alphabet No. 4"},
	"ISO_IR 144":      {"iso-ir-144", "Cyrillic"},
	"ISO_IR 127":      {"iso-ir-127", "Arabic"},
	"ISO_IR 126":      {"iso-ir-126", "Greek"},
	"ISO_IR 138":      {"iso-ir-138", "Hebrew"},
	"ISO_IR 148":      {"iso-8859-9", "Latin alphabet No. 5"},
	"ISO_IR 13":       {"shift_jis", "Japanese (JIS X 0201)"},
	"ISO_IR 166":      {"tis-620", "Thai"},
	"ISO_IR 192":      {"utf-8", "Unicode (UTF-8)"},
	"GB18030":         {"gb18030", "Chinese (Simplified)"},
	"GBK":             {"gbk", "Chinese (Simplified)"},
	"ISO 2022 IR 6":   {"us-ascii", "ASCII"},
	"ISO 2022 IR 100": {"iso-ir-100", "Latin alphabet No. 1"},
	"ISO 2022 IR 101": {"iso-ir-101", "Latin alphabet No. 2"},
	"ISO 2022 IR 109": {"iso-ir-109", "Latin alphabet No. 3"},
	"ISO 2022 IR 110": {"iso-ir-110", "Latin alphabet No. 4"},
	"ISO 2022 IR 144": {"iso-ir-144", "Cyrillic"},
	"ISO 2022 IR 127": {"iso-ir-127", "Arabic"},
	"ISO 2022 IR 126": {"iso-ir-126", "Greek"},
	"ISO 2022 IR 138": {"iso-ir-138", "Hebrew"},
	"ISO 2022 IR 148": {"iso-8859-9", "Latin alphabet No. 5"},
	"ISO 2022 IR 13":  {"shift_jis", "Japanese (JIS X 0201)"},
	"ISO 2022 IR 166": {"tis-620", "Thai"},
	"ISO 2022 IR 87":  {"iso-2022-jp", "Japanese (JIS X 0208)"},
	"ISO 2022 IR 159": {"iso-2022-jp", "Japanese (JIS X 0212)"},
	"ISO 2022 IR 149": {"iso-ir-149", "Korean"},
}

var terms = func() map[string]*Term {
	out := make(map[string]*Term, len(labels))
	for name, l := range labels {
		enc, _ := htmlcharset.Lookup(l.label)
		if enc == nil {
			continue
		}
		out[name] = &Term{Name: name, Description: l.description, Label: l.label, Encoding: enc}
	}
	return out
}()

// LookupTerm returns the codec registered for a defined term.
// Terms outside the DICOM table are resolved as IANA/WHATWG labels.
func LookupTerm(name string) (*Term, bool) {
	name = strings.TrimSpace(name)
	if t, ok := terms[name]; ok {
		return t, true
	}
	enc, canonical := htmlcharset.Lookup(name)
	if enc == nil {
		return nil, false
	}
	return &Term{Name: name, Description: canonical, Label: canonical, Encoding: enc}, true
}

// SpecificCharacterSet decodes and encodes text values of a data set.
// A nil *SpecificCharacterSet uses `DefaultRepertoire`.
type SpecificCharacterSet struct {
	codes   []string
	primary *Term
	iso2022 bool
}

// ValueOf builds the character set declared by the values of (0008,0005).
// It returns nil when no codes are given or the first code is unknown.
// More than one code selects ISO 2022 code extension.
func ValueOf(codes ...string) *SpecificCharacterSet {
	if len(codes) == 0 {
		return nil
	}
	first := strings.TrimSpace(codes[0])
	if first == "" && len(codes) > 1 {
		// an empty first value denotes the default repertoire under code extension
		first = "ISO 2022 IR 6"
	}
	t, ok := LookupTerm(first)
	if !ok {
		core.Log().Warnf("unsupported Specific Character Set %q, using default repertoire", first)
		return nil
	}
	return &SpecificCharacterSet{
		codes:   append([]string(nil), codes...),
		primary: t,
		iso2022: len(codes) > 1,
	}
}

// Codes returns the defined terms the character set was built from.
func (cs *SpecificCharacterSet) Codes() []string {
	if cs == nil {
		return nil
	}
	return append([]string(nil), cs.codes...)
}

// ISO2022 reports whether escape sequences switch codecs while decoding.
func (cs *SpecificCharacterSet) ISO2022() bool {
	return cs != nil && cs.iso2022
}

func (cs *SpecificCharacterSet) String() string {
	if cs == nil {
		return "Default Character Repertoire"
	}
	return strings.Join(cs.codes, `\`)
}

func (cs *SpecificCharacterSet) encoding() encoding.Encoding {
	if cs == nil || cs.primary == nil {
		return DefaultRepertoire
	}
	return cs.primary.Encoding
}

// Encode converts `s` with the primary codec.
// Characters the codec cannot represent are replaced.
func (cs *SpecificCharacterSet) Encode(s string) []byte {
	if isASCII(s) {
		return []byte(s)
	}
	out, err := encoding.ReplaceUnsupported(cs.encoding().NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// Decode converts `b` to text. It never fails: undecodable input is
// replaced rather than reported.
func (cs *SpecificCharacterSet) Decode(b []byte) string {
	if cs.ISO2022() {
		return decodeISO2022(b, subCodec{enc: cs.encoding(), step: 1})
	}
	return decodeWith(cs.encoding(), b)
}

func decodeWith(enc encoding.Encoding, b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if isASCII(string(b)) {
		return string(b)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(out)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

/*
===============================================================================
    ISO 2022 code extension
===============================================================================
*/

// subCodec is a codec selected by an escape sequence.
// `step` is the number of bytes per character; -1 means "two bytes when
// the high bit is set". JIS X 0208/0212 are transmitted as 7-bit pairs and
// are decoded through EUC-JP, which needs the high bit set (and, for
// 0212, a single shift 3 prefix).
type subCodec struct {
	enc    encoding.Encoding
	step   int
	high   bool
	prefix byte
}

var (
	asciiCodec    = subCodec{enc: charmap.Windows1252, step: 1}
	jisX0201Codec = subCodec{enc: japanese.ShiftJIS, step: 1}
	jisX0208Codec = subCodec{enc: japanese.EUCJP, step: 2, high: true}
	jisX0212Codec = subCodec{enc: japanese.EUCJP, step: 2, high: true, prefix: 0x8F}
	ksX1001Codec  = subCodec{enc: korean.EUCKR, step: -1}
)

// escapes maps the two bytes following ESC onto a codec.
var escapes = map[uint16]subCodec{
	0x2442: jisX0208Codec,
	0x2842: asciiCodec,
	0x284A: jisX0201Codec,
	0x2949: jisX0201Codec,
	0x2D41: {enc: charmap.ISO8859_1, step: 1},
	0x2D42: {enc: charmap.ISO8859_2, step: 1},
	0x2D43: {enc: charmap.ISO8859_3, step: 1},
	0x2D44: {enc: charmap.ISO8859_4, step: 1},
	0x2D46: {enc: charmap.ISO8859_7, step: 1},
	0x2D47: {enc: charmap.ISO8859_6, step: 1},
	0x2D48: {enc: charmap.ISO8859_8, step: 1},
	0x2D4C: {enc: charmap.ISO8859_5, step: 1},
	0x2D4D: {enc: charmap.ISO8859_9, step: 1},
	0x2D54: {enc: charmap.Windows874, step: 1},
}

// escapes4 holds the four byte sequences: ESC, two bytes, then a final byte.
var escapes4 = map[uint16]struct {
	final byte
	codec subCodec
}{
	0x2428: {0x44, jisX0212Codec},
	0x2429: {0x43, ksX1001Codec},
}

func (c subCodec) decode(b []byte) string {
	if !c.high {
		return decodeWith(c.enc, b)
	}
	buf := make([]byte, 0, len(b)+len(b)/2+1)
	i := 0
	for ; i+1 < len(b); i += 2 {
		if c.prefix != 0 {
			buf = append(buf, c.prefix)
		}
		buf = append(buf, b[i]|0x80, b[i+1]|0x80)
	}
	buf = append(buf, b[i:]...)
	return decodeWith(c.enc, buf)
}

func decodeISO2022(b []byte, codec subCodec) string {
	var sb strings.Builder
	sb.Grow(len(b))
	off, cur := 0, 0
	for cur < len(b) {
		if b[cur] != 0x1B {
			switch {
			case codec.step > 0:
				cur += codec.step
			case b[cur] >= 0x80:
				cur += 2
			default:
				cur++
			}
			continue
		}
		if off < cur {
			sb.WriteString(codec.decode(b[off:cur]))
		}
		if cur+3 > len(b) {
			// truncated escape sequence
			sb.WriteString(codec.decode(b[cur:]))
			off, cur = len(b), len(b)
			break
		}
		key := uint16(b[cur+1])<<8 | uint16(b[cur+2])
		cur += 3
		if next, ok := escapes[key]; ok {
			codec = next
		} else if e4, ok := escapes4[key]; ok {
			if cur < len(b) && b[cur] == e4.final {
				codec = e4.codec
				cur++
			} else {
				end := cur + 1
				if end > len(b) {
					end = len(b)
				}
				sb.WriteString(codec.decode(b[cur-3 : end]))
				cur = end
			}
		} else {
			sb.WriteString(codec.decode(b[cur-3 : cur]))
		}
		off = cur
	}
	if cur > len(b) {
		cur = len(b)
	}
	if off < cur {
		sb.WriteString(codec.decode(b[off:cur]))
	}
	return sb.String()
}
