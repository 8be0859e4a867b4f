package dicom

import (
	"time"

	"github.com/b71729/dcmcodec/charset"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
)

// value resolves `t` in `o` and decodes it with `fn`, through the element
// cache when `o` enables it. Missing and empty elements yield `def`.
func value[T any](o Object, t tag.Tag, def T, fn func(e *Element, cs *charset.SpecificCharacterSet) (T, error)) (T, error) {
	e := o.Get(t)
	if e == nil || e.IsEmpty() {
		return def, nil
	}
	var cs *charset.SpecificCharacterSet
	if e.vr.UsesCharacterSet() {
		cs = o.CharacterSet()
	}
	return decode(e, cs, o.CacheGet(), o.CachePut(), func() (T, error) { return fn(e, cs) })
}

// GetString returns the first value of `t` in `o` as text, or `def`.
func GetString(o Object, t tag.Tag, def string) (string, error) {
	return value(o, t, def, (*Element).GetString)
}

// GetStrings returns every value of `t` in `o` as text.
func GetStrings(o Object, t tag.Tag) ([]string, error) {
	return value(o, t, []string(nil), (*Element).GetStrings)
}

// GetInt returns the first integer value of `t` in `o`, or `def`.
func GetInt(o Object, t tag.Tag, def int) (int, error) {
	return value(o, t, def, func(e *Element, _ *charset.SpecificCharacterSet) (int, error) { return e.GetInt() })
}

// GetInts returns every integer value of `t` in `o`.
func GetInts(o Object, t tag.Tag) ([]int, error) {
	return value(o, t, []int(nil), func(e *Element, _ *charset.SpecificCharacterSet) ([]int, error) { return e.GetInts() })
}

// GetShorts returns every 16-bit value of `t` in `o`.
func GetShorts(o Object, t tag.Tag) ([]int16, error) {
	return value(o, t, []int16(nil), func(e *Element, _ *charset.SpecificCharacterSet) ([]int16, error) { return e.GetShorts() })
}

// GetFloat returns the first value of `t` in `o` as float32, or `def`.
func GetFloat(o Object, t tag.Tag, def float32) (float32, error) {
	return value(o, t, def, func(e *Element, _ *charset.SpecificCharacterSet) (float32, error) { return e.GetFloat() })
}

// GetFloats returns every value of `t` in `o` as float32.
func GetFloats(o Object, t tag.Tag) ([]float32, error) {
	return value(o, t, []float32(nil), func(e *Element, _ *charset.SpecificCharacterSet) ([]float32, error) { return e.GetFloats() })
}

// GetDouble returns the first value of `t` in `o` as float64, or `def`.
func GetDouble(o Object, t tag.Tag, def float64) (float64, error) {
	return value(o, t, def, func(e *Element, _ *charset.SpecificCharacterSet) (float64, error) { return e.GetDouble() })
}

// GetDoubles returns every value of `t` in `o` as float64.
func GetDoubles(o Object, t tag.Tag) ([]float64, error) {
	return value(o, t, []float64(nil), func(e *Element, _ *charset.SpecificCharacterSet) ([]float64, error) { return e.GetDoubles() })
}

// GetDate returns the first date of `t` in `o`, or `def`.
func GetDate(o Object, t tag.Tag, def time.Time) (time.Time, error) {
	return value(o, t, def, func(e *Element, _ *charset.SpecificCharacterSet) (time.Time, error) { return e.GetDate() })
}

// GetDates returns every date of `t` in `o`.
func GetDates(o Object, t tag.Tag) ([]time.Time, error) {
	return value(o, t, []time.Time(nil), func(e *Element, _ *charset.SpecificCharacterSet) ([]time.Time, error) { return e.GetDates() })
}

// GetDateRange returns the range held by `t` in `o`, or nil.
func GetDateRange(o Object, t tag.Tag) (*vr.DateRange, error) {
	return value(o, t, (*vr.DateRange)(nil), func(e *Element, _ *charset.SpecificCharacterSet) (*vr.DateRange, error) { return e.GetDateRange() })
}

// GetPersonName returns the first value of `t` in `o` split into components.
func GetPersonName(o Object, t tag.Tag) (vr.PersonName, error) {
	return value(o, t, vr.PersonName{}, func(e *Element, cs *charset.SpecificCharacterSet) (vr.PersonName, error) {
		s, err := e.GetString(cs)
		if err != nil {
			return vr.PersonName{}, err
		}
		return vr.ParsePersonName(s)
	})
}
