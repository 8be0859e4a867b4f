package vr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/b71729/dcmcodec/core"
)

// maxDSLength is the longest value a DS may hold.
const maxDSLength = 16

// FormatDS renders `f` as a decimal string of at most 16 characters.
// Long mantissas are cut; an exponent suffix is always kept.
func FormatDS(f float64, bitSize int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'G', -1, bitSize)
	}
	s := strconv.FormatFloat(f, 'G', -1, bitSize)
	skip := len(s) - maxDSLength
	if skip <= 0 {
		return s
	}
	e := strings.LastIndexByte(s, 'E')
	if e < 0 {
		return s[:maxDSLength]
	}
	if e-skip < 1 {
		// the exponent alone does not leave room for a mantissa digit
		return strconv.FormatFloat(f, 'E', 0, bitSize)
	}
	return s[:e-skip] + s[e:]
}

// ParseDS parses a decimal string. A comma decimal separator is tolerated and logged.
func ParseDS(s string, bitSize int) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.IndexByte(s, ',') >= 0 {
		core.Log().Warnf("illegal DS value %q, using '.' as the decimal separator", s)
		s = strings.Replace(s, ",", ".", -1)
	}
	f, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		return 0, fmt.Errorf("invalid DS value %q: %v", s, err)
	}
	return f, nil
}

// FormatIS renders an integer string.
func FormatIS(i int) string {
	return strconv.Itoa(i)
}

// ParseIS parses an integer string. A leading '+' is allowed.
// The value is parsed as 64 bits and then narrowed to 32 bits, so values
// outside the int32 range wrap around instead of failing.
func ParseIS(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid IS value %q: %v", s, err)
	}
	return int(int32(i)), nil
}

func formatDSValues(fs []float64, bitSize int) []string {
	ss := make([]string, len(fs))
	for i, f := range fs {
		ss[i] = FormatDS(f, bitSize)
	}
	return ss
}

func parseDSValues(ss []string, bitSize int) ([]float64, error) {
	out := make([]float64, len(ss))
	for i, s := range ss {
		if s == "" {
			continue
		}
		f, err := ParseDS(s, bitSize)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func parseISValues(ss []string) ([]int, error) {
	out := make([]int, len(ss))
	for i, s := range ss {
		if s == "" {
			continue
		}
		v, err := ParseIS(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
