// Package dicom holds the in-memory attribute tree: data elements, the data
// sets that order them, and views composed over data sets.
package dicom

import (
	"bytes"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/b71729/dcmcodec/charset"
	"github.com/b71729/dcmcodec/dictionary"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
)

type valueKind uint8

const (
	primitive valueKind = iota
	sequence
	fragments
)

// Element represents a Data Element: a tag, a VR and a value.
//
// The value is exactly one of a padded byte buffer, an ordered list of
// sequence items, or an ordered list of raw fragments. Elements are replaced
// rather than edited; only items and fragments may be appended.
type Element struct {
	tag       tag.Tag
	vr        vr.VR
	bigEndian bool
	kind      valueKind
	value     []byte
	items     []*DataSet
	fragments [][]byte
	owner     *DataSet
	cache     atomic.Pointer[cachedValue]
}

// cachedValue is the single slot holding the last decoded typed value.
type cachedValue struct {
	v  interface{}
	cs *charset.SpecificCharacterSet
}

// NewElement returns a primitive element holding `value`, padded to even length.
func NewElement(t tag.Tag, v vr.VR, bigEndian bool, value []byte) *Element {
	return &Element{tag: t, vr: v, bigEndian: bigEndian, value: v.Pad(value)}
}

// NewSequence returns an empty SQ element with room for `capacity` items.
func NewSequence(t tag.Tag, capacity int) *Element {
	return &Element{tag: t, vr: vr.SQ, kind: sequence, items: make([]*DataSet, 0, capacity)}
}

// NewFragments returns an empty encapsulated element with room for
// `capacity` fragments. The first fragment is conventionally the basic offset table.
func NewFragments(t tag.Tag, v vr.VR, bigEndian bool, capacity int) *Element {
	return &Element{tag: t, vr: v, bigEndian: bigEndian, kind: fragments, fragments: make([][]byte, 0, capacity)}
}

// NewStringElement encodes `values` under `v`, using `cs` for text VRs.
func NewStringElement(t tag.Tag, v vr.VR, bigEndian bool, cs *charset.SpecificCharacterSet, values ...string) (*Element, error) {
	b, err := v.EncodeStrings(values, bigEndian, cs)
	if err != nil {
		return nil, err
	}
	return &Element{tag: t, vr: v, bigEndian: bigEndian, value: b}, nil
}

// NewIntElement encodes `values` as IS or a binary integer VR.
func NewIntElement(t tag.Tag, v vr.VR, bigEndian bool, values ...int) (*Element, error) {
	b, err := v.EncodeInts(values, bigEndian)
	if err != nil {
		return nil, err
	}
	return &Element{tag: t, vr: v, bigEndian: bigEndian, value: b}, nil
}

// NewShortElement encodes 16-bit `values` as SS, US or OW.
func NewShortElement(t tag.Tag, v vr.VR, bigEndian bool, values ...int16) (*Element, error) {
	b, err := v.EncodeShorts(values, bigEndian)
	if err != nil {
		return nil, err
	}
	return &Element{tag: t, vr: v, bigEndian: bigEndian, value: b}, nil
}

// NewFloatElement encodes `values` as DS or a binary float VR.
func NewFloatElement(t tag.Tag, v vr.VR, bigEndian bool, values ...float32) (*Element, error) {
	b, err := v.EncodeFloats(values, bigEndian)
	if err != nil {
		return nil, err
	}
	return &Element{tag: t, vr: v, bigEndian: bigEndian, value: b}, nil
}

// NewDoubleElement encodes `values` as DS or a binary float VR.
func NewDoubleElement(t tag.Tag, v vr.VR, bigEndian bool, values ...float64) (*Element, error) {
	b, err := v.EncodeDoubles(values, bigEndian)
	if err != nil {
		return nil, err
	}
	return &Element{tag: t, vr: v, bigEndian: bigEndian, value: b}, nil
}

// NewDateElement encodes `values` as DA, DT or TM.
func NewDateElement(t tag.Tag, v vr.VR, values ...time.Time) (*Element, error) {
	b, err := v.EncodeDates(values)
	if err != nil {
		return nil, err
	}
	return &Element{tag: t, vr: v, value: b}, nil
}

// NewDateRangeElement encodes `r` as a DA, DT or TM range.
func NewDateRangeElement(t tag.Tag, v vr.VR, r *vr.DateRange) (*Element, error) {
	b, err := v.EncodeDateRange(r)
	if err != nil {
		return nil, err
	}
	return &Element{tag: t, vr: v, value: b}, nil
}

// Tag returns the element's tag.
func (e *Element) Tag() tag.Tag {
	return e.tag
}

// VR returns the element's value representation.
func (e *Element) VR() vr.VR {
	return e.vr
}

// BigEndian reports the byte order of a binary value.
func (e *Element) BigEndian() bool {
	return e.bigEndian
}

// Length returns the value length in bytes, or -1 for sequences and
// fragments, whose length depends on how they are encoded.
func (e *Element) Length() int {
	if e.kind != primitive {
		return -1
	}
	return len(e.value)
}

// IsEmpty reports whether the element holds no value, no items and no fragments.
func (e *Element) IsEmpty() bool {
	switch e.kind {
	case sequence:
		return len(e.items) == 0
	case fragments:
		return len(e.fragments) == 0
	}
	return len(e.value) == 0
}

// HasItems reports whether the element is a sequence or holds fragments.
func (e *Element) HasItems() bool {
	return e.kind != primitive
}

// HasDataSets reports whether the element is a sequence of data sets.
func (e *Element) HasDataSets() bool {
	return e.kind == sequence
}

// HasFragments reports whether the element holds encapsulated fragments.
func (e *Element) HasFragments() bool {
	return e.kind == fragments
}

// CountItems returns the number of sequence items or fragments.
func (e *Element) CountItems() int {
	switch e.kind {
	case sequence:
		return len(e.items)
	case fragments:
		return len(e.fragments)
	}
	return 0
}

// Item returns sequence item `i`, or nil if out of range.
func (e *Element) Item(i int) *DataSet {
	if e.kind != sequence || i < 0 || i >= len(e.items) {
		return nil
	}
	return e.items[i]
}

// Items returns the sequence items.
func (e *Element) Items() []*DataSet {
	return e.items
}

// AddItem appends `item` to a sequence, makes the owning data set its parent
// and records its index. It returns the item.
func (e *Element) AddItem(item *DataSet) (*DataSet, error) {
	if e.kind != sequence {
		return nil, UnsupportedOperationError("AddItem: %s %s is not a sequence", e.tag, e.vr)
	}
	item.parent = e.owner
	item.itemIndex = len(e.items)
	e.items = append(e.items, item)
	return item, nil
}

// SetItem replaces sequence item `i`.
func (e *Element) SetItem(i int, item *DataSet) error {
	if e.kind != sequence {
		return UnsupportedOperationError("SetItem: %s %s is not a sequence", e.tag, e.vr)
	}
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("SetItem: index %d out of range [0,%d)", i, len(e.items))
	}
	item.parent = e.owner
	item.itemIndex = i
	e.items[i] = item
	return nil
}

// RemoveItem drops sequence item `i` and returns it.
func (e *Element) RemoveItem(i int) (*DataSet, error) {
	if e.kind != sequence {
		return nil, UnsupportedOperationError("RemoveItem: %s %s is not a sequence", e.tag, e.vr)
	}
	if i < 0 || i >= len(e.items) {
		return nil, fmt.Errorf("RemoveItem: index %d out of range [0,%d)", i, len(e.items))
	}
	item := e.items[i]
	e.items = append(e.items[:i], e.items[i+1:]...)
	for j := i; j < len(e.items); j++ {
		e.items[j].itemIndex = j
	}
	item.parent = nil
	return item, nil
}

// Fragment returns fragment `i`, or nil if out of range.
func (e *Element) Fragment(i int) []byte {
	if e.kind != fragments || i < 0 || i >= len(e.fragments) {
		return nil
	}
	return e.fragments[i]
}

// Fragments returns the fragments.
func (e *Element) Fragments() [][]byte {
	return e.fragments
}

// AddFragment appends `b`, padded to even length.
func (e *Element) AddFragment(b []byte) error {
	if e.kind != fragments {
		return UnsupportedOperationError("AddFragment: %s %s does not hold fragments", e.tag, e.vr)
	}
	e.fragments = append(e.fragments, e.vr.Pad(b))
	return nil
}

// Bytes returns the raw value in its stored byte order.
func (e *Element) Bytes() []byte {
	return e.value
}

// GetBytes returns the raw value in the requested byte order,
// swapping a copy if the stored order differs.
func (e *Element) GetBytes(bigEndian bool) []byte {
	if e.bigEndian == bigEndian || len(e.value) == 0 {
		return e.value
	}
	b := append([]byte(nil), e.value...)
	e.vr.ToggleEndian(b)
	return b
}

// As returns a copy of a primitive element reinterpreted under `v`, for
// elements read as UN whose real VR is known from context.
func (e *Element) As(v vr.VR) *Element {
	if v == e.vr || e.kind != primitive {
		return e
	}
	return &Element{tag: e.tag, vr: v, bigEndian: e.bigEndian, value: e.value}
}

// WithTag returns a copy of the element carrying tag `t`.
func (e *Element) WithTag(t tag.Tag) *Element {
	if t == e.tag {
		return e
	}
	if e.kind == sequence {
		out := copySequence(e)
		out.tag = t
		return out
	}
	return &Element{tag: t, vr: e.vr, bigEndian: e.bigEndian, kind: e.kind, value: e.value, fragments: e.fragments}
}

// copySequence returns `e` itself unless it is a sequence, in which case
// the items are copied so the result can be owned by another data set.
func copySequence(e *Element) *Element {
	if e.kind != sequence {
		return e
	}
	out := NewSequence(e.tag, len(e.items))
	for _, item := range e.items {
		c := item.Copy()
		c.itemPosition = item.itemPosition
		out.AddItem(c)
	}
	return out
}

// Equal reports whether the two elements hold the same tag, VR and value.
func (e *Element) Equal(o *Element) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil || e.tag != o.tag || e.vr != o.vr || e.kind != o.kind {
		return false
	}
	switch e.kind {
	case sequence:
		if len(e.items) != len(o.items) {
			return false
		}
		for i := range e.items {
			if !e.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case fragments:
		if len(e.fragments) != len(o.fragments) {
			return false
		}
		for i := range e.fragments {
			if !bytes.Equal(e.fragments[i], o.fragments[i]) {
				return false
			}
		}
		return true
	}
	return bytes.Equal(e.GetBytes(false), o.GetBytes(false))
}

// VM returns the value multiplicity.
func (e *Element) VM(cs *charset.SpecificCharacterSet) int {
	if e.kind != primitive {
		return e.CountItems()
	}
	return e.vr.VM(e.value, cs)
}

/*
===============================================================================
    Typed values
===============================================================================
*/

// decode serves `fn` through the element's cache slot. `get` allows a
// cached value to be returned and `put` allows the result to be stored.
func decode[T any](e *Element, cs *charset.SpecificCharacterSet, get, put bool, fn func() (T, error)) (T, error) {
	if get {
		if c := e.cache.Load(); c != nil && c.cs == cs {
			if v, ok := c.v.(T); ok {
				return v, nil
			}
		}
	}
	v, err := fn()
	if err == nil && put {
		e.cache.Store(&cachedValue{v: v, cs: cs})
	}
	return v, err
}

func (e *Element) primitiveValue(op string) error {
	if e.kind != primitive {
		return vr.UnsupportedConversionError("%s is not supported by %s %s", op, e.tag, e.vr)
	}
	return nil
}

// GetString returns the first value as text.
func (e *Element) GetString(cs *charset.SpecificCharacterSet) (string, error) {
	if err := e.primitiveValue("GetString"); err != nil {
		return "", err
	}
	return e.vr.DecodeString(e.value, e.bigEndian, cs)
}

// GetStrings returns every value as text.
func (e *Element) GetStrings(cs *charset.SpecificCharacterSet) ([]string, error) {
	if err := e.primitiveValue("GetStrings"); err != nil {
		return nil, err
	}
	return e.vr.DecodeStrings(e.value, e.bigEndian, cs)
}

// GetInt returns the first integer value.
func (e *Element) GetInt() (int, error) {
	if err := e.primitiveValue("GetInt"); err != nil {
		return 0, err
	}
	return e.vr.DecodeInt(e.value, e.bigEndian)
}

// GetInts returns every integer value.
func (e *Element) GetInts() ([]int, error) {
	if err := e.primitiveValue("GetInts"); err != nil {
		return nil, err
	}
	return e.vr.DecodeInts(e.value, e.bigEndian)
}

// GetShorts returns every 16-bit value.
func (e *Element) GetShorts() ([]int16, error) {
	if err := e.primitiveValue("GetShorts"); err != nil {
		return nil, err
	}
	return e.vr.DecodeShorts(e.value, e.bigEndian)
}

// GetFloat returns the first value as float32.
func (e *Element) GetFloat() (float32, error) {
	if err := e.primitiveValue("GetFloat"); err != nil {
		return 0, err
	}
	return e.vr.DecodeFloat(e.value, e.bigEndian)
}

// GetFloats returns every value as float32.
func (e *Element) GetFloats() ([]float32, error) {
	if err := e.primitiveValue("GetFloats"); err != nil {
		return nil, err
	}
	return e.vr.DecodeFloats(e.value, e.bigEndian)
}

// GetDouble returns the first value as float64.
func (e *Element) GetDouble() (float64, error) {
	if err := e.primitiveValue("GetDouble"); err != nil {
		return 0, err
	}
	return e.vr.DecodeDouble(e.value, e.bigEndian)
}

// GetDoubles returns every value as float64.
func (e *Element) GetDoubles() ([]float64, error) {
	if err := e.primitiveValue("GetDoubles"); err != nil {
		return nil, err
	}
	return e.vr.DecodeDoubles(e.value, e.bigEndian)
}

// GetDate returns the first DA, DT or TM value.
func (e *Element) GetDate() (time.Time, error) {
	if err := e.primitiveValue("GetDate"); err != nil {
		return time.Time{}, err
	}
	return e.vr.DecodeDate(e.value)
}

// GetDates returns every DA, DT or TM value.
func (e *Element) GetDates() ([]time.Time, error) {
	if err := e.primitiveValue("GetDates"); err != nil {
		return nil, err
	}
	return e.vr.DecodeDates(e.value)
}

// GetDateRange returns the value as a range; nil for an empty value.
func (e *Element) GetDateRange() (*vr.DateRange, error) {
	if err := e.primitiveValue("GetDateRange"); err != nil {
		return nil, err
	}
	return e.vr.DecodeDateRange(e.value)
}

// Prompt renders the value for display, truncated to `maxLen` characters.
func (e *Element) Prompt(cs *charset.SpecificCharacterSet, maxLen int) string {
	switch e.kind {
	case sequence:
		return fmt.Sprintf("%d items", len(e.items))
	case fragments:
		return fmt.Sprintf("%d fragments", len(e.fragments))
	}
	return e.vr.Prompt(e.value, e.bigEndian, cs, maxLen)
}

// Format renders the element as "(gggg,eeee) VR #len [value] Name", decoding
// text with `cs`.
func (e *Element) Format(cs *charset.SpecificCharacterSet) string {
	return fmt.Sprintf("%s %s #%d [%s] %s", e.tag, e.vr, e.Length(), e.Prompt(cs, 64), dictionary.NameOf(e.tag))
}

// String is `Format` with the default repertoire. Primitive elements may be
// shared between data sets, so `DataSet.String` passes its own character set.
func (e *Element) String() string {
	var cs *charset.SpecificCharacterSet
	if e.owner != nil {
		cs = e.owner.CharacterSet()
	}
	return e.Format(cs)
}
