package vr

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts used when formatting DA, TM and DT values.
const (
	DateLayout     = "20060102"
	TimeLayout     = "150405.000"
	DateTimeLayout = "20060102150405.000"
)

// DateRange is a range matching value such as "20200101-20201231".
// A zero Start or End marks an open side.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// HasStart reports whether the range is bounded below.
func (r DateRange) HasStart() bool {
	return !r.Start.IsZero()
}

// HasEnd reports whether the range is bounded above.
func (r DateRange) HasEnd() bool {
	return !r.End.IsZero()
}

// Contains reports whether `t` lies within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if r.HasStart() && t.Before(r.Start) {
		return false
	}
	if r.HasEnd() && t.After(r.End) {
		return false
	}
	return true
}

func (v VR) formatDate(t time.Time) string {
	switch v.props().kind {
	case kindDate:
		return t.Format(DateLayout)
	case kindTime:
		return t.Format(TimeLayout)
	}
	return t.Format(DateTimeLayout)
}

func (v VR) parseDate(s string, ceil bool) (time.Time, error) {
	switch v.props().kind {
	case kindDate:
		return ParseDA(s, ceil)
	case kindTime:
		return ParseTM(s, ceil)
	}
	return ParseDT(s, ceil)
}

// dateTimeFields is a partially specified broken-down time.
type dateTimeFields struct {
	year, month, day     int
	hour, minute, second int
	micro                int
}

// digits consumes `n` digits from `s`. It returns ok=false when `s` is
// exhausted, which marks the remaining fields as unspecified.
func digits(s *string, n int) (int, bool, error) {
	if len(*s) == 0 {
		return 0, false, nil
	}
	if len(*s) < n {
		return 0, false, fmt.Errorf("truncated field %q", *s)
	}
	for _, c := range (*s)[:n] {
		if c < '0' || c > '9' {
			return 0, false, fmt.Errorf("invalid digits %q", (*s)[:n])
		}
	}
	v, _ := strconv.Atoi((*s)[:n])
	*s = (*s)[n:]
	return v, true, nil
}

// parseFraction reads ".ffffff". With ceil set, unspecified digits are nines.
func parseFraction(s string, ceil bool) (int, error) {
	if s == "" {
		if ceil {
			return 999999, nil
		}
		return 0, nil
	}
	if s[0] != '.' || len(s) > 7 {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	frac := s[1:]
	pad := "0"
	if ceil {
		pad = "9"
	}
	frac += strings.Repeat(pad, 6-len(frac))
	v, err := strconv.Atoi(frac)
	if err != nil {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	return v, nil
}

func (f *dateTimeFields) parseTime(s string, ceil bool) error {
	var ok bool
	var err error
	f.hour, f.minute, f.second, f.micro = 0, 0, 0, 0
	if ceil {
		f.hour, f.minute, f.second, f.micro = 23, 59, 59, 999999
	}
	if f.hour, ok, err = digitsOr(&s, 2, f.hour); err != nil || !ok {
		return err
	}
	if f.minute, ok, err = digitsOr(&s, 2, f.minute); err != nil || !ok {
		return err
	}
	if f.second, ok, err = digitsOr(&s, 2, f.second); err != nil || !ok {
		return err
	}
	f.micro, err = parseFraction(s, ceil)
	return err
}

func (f *dateTimeFields) parseDate(s string, ceil bool) (rest string, err error) {
	var ok bool
	if f.year, ok, err = digits(&s, 4); err != nil {
		return s, err
	} else if !ok {
		return s, fmt.Errorf("missing year")
	}
	f.month, f.day = 1, 1
	if ceil {
		f.month = 12
	}
	if f.month, ok, err = digitsOr(&s, 2, f.month); err != nil || !ok {
		if ceil {
			f.day = daysIn(f.year, f.month)
		}
		return s, err
	}
	if ceil {
		f.day = daysIn(f.year, f.month)
	}
	f.day, _, err = digitsOr(&s, 2, f.day)
	return s, err
}

func digitsOr(s *string, n int, def int) (int, bool, error) {
	v, ok, err := digits(s, n)
	if err != nil || !ok {
		return def, ok, err
	}
	return v, true, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (f dateTimeFields) time(loc *time.Location) time.Time {
	return time.Date(f.year, time.Month(f.month), f.day, f.hour, f.minute, f.second, f.micro*1000, loc)
}

// ParseDA parses a date. The legacy "YYYY.MM.DD" form is accepted.
// Unspecified trailing fields are filled with their minimum, or their
// maximum when `ceil` is set, so that a value can close a range.
func ParseDA(s string, ceil bool) (time.Time, error) {
	s = strings.Replace(strings.TrimSpace(s), ".", "", -1)
	if s == "" {
		return time.Time{}, nil
	}
	var f dateTimeFields
	rest, err := f.parseDate(s, ceil)
	if err == nil && rest != "" {
		err = fmt.Errorf("trailing characters %q", rest)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid DA value %q: %v", s, err)
	}
	if ceil {
		f.hour, f.minute, f.second, f.micro = 23, 59, 59, 999999
	}
	return f.time(time.Local), nil
}

// ParseTM parses a time of day, anchored on 1970-01-01. The legacy "HH:MM:SS" form is accepted.
func ParseTM(s string, ceil bool) (time.Time, error) {
	s = strings.Replace(strings.TrimSpace(s), ":", "", -1)
	if s == "" {
		return time.Time{}, nil
	}
	f := dateTimeFields{year: 1970, month: 1, day: 1}
	if err := f.parseTime(s, ceil); err != nil {
		return time.Time{}, fmt.Errorf("invalid TM value %q: %v", s, err)
	}
	return f.time(time.Local), nil
}

// ParseDT parses a date time with an optional "&ZZXX" UTC offset suffix.
func ParseDT(s string, ceil bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	loc := time.Local
	if i := strings.LastIndexAny(s, "+-"); i > 0 {
		zone := s[i:]
		if len(zone) != 5 {
			return time.Time{}, fmt.Errorf("invalid DT value %q: bad offset", s)
		}
		hh, err1 := strconv.Atoi(zone[1:3])
		mm, err2 := strconv.Atoi(zone[3:5])
		if err1 != nil || err2 != nil {
			return time.Time{}, fmt.Errorf("invalid DT value %q: bad offset", s)
		}
		offset := hh*3600 + mm*60
		if zone[0] == '-' {
			offset = -offset
		}
		loc = time.FixedZone(zone, offset)
		s = s[:i]
	}
	var f dateTimeFields
	rest, err := f.parseDate(s, ceil)
	if err == nil {
		err = f.parseTime(rest, ceil)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid DT value %q: %v", s, err)
	}
	return f.time(loc), nil
}

// formatRange renders "start-end", leaving open sides empty.
func (v VR) formatRange(r DateRange) string {
	var sb strings.Builder
	if r.HasStart() {
		sb.WriteString(v.formatDate(r.Start))
	}
	sb.WriteByte('-')
	if r.HasEnd() {
		sb.WriteString(v.formatDate(r.End))
	}
	return sb.String()
}

// parseRange reads "start-end". A value without a hyphen is both bounds.
// An empty value or a lone "-" yields nil.
func (v VR) parseRange(s string) (*DateRange, error) {
	s = trimValue(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	hyphen := v.rangeHyphen(s)
	var r DateRange
	var err error
	if hyphen != 0 {
		start := s
		if hyphen > 0 {
			start = s[:hyphen]
		}
		if r.Start, err = v.parseDate(start, false); err != nil {
			return nil, err
		}
	}
	if hyphen < 0 {
		if r.End, err = v.parseDate(s, true); err != nil {
			return nil, err
		}
		return &r, nil
	}
	if hyphen+1 < len(s) {
		if r.End, err = v.parseDate(s[hyphen+1:], true); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

// rangeHyphen locates the range separator. DT values may carry a negative
// UTC offset, so for DT the hyphen must be followed by a date or nothing.
func (v VR) rangeHyphen(s string) int {
	if v.props().kind != kindDateTime {
		return strings.IndexByte(s, '-')
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		if !isOffset(s[i+1:]) {
			return i
		}
	}
	return -1
}

// isOffset reports whether `s` begins with the four digits of a UTC offset
// that ends the value or is followed by the range separator.
func isOffset(s string) bool {
	if len(s) < 4 || (len(s) > 4 && s[4] != '-') {
		return false
	}
	for _, c := range s[:4] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
