package dicom

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/b71729/dcmcodec/charset"
	"github.com/b71729/dcmcodec/dictionary"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
)

// Object is the read and mutate surface shared by DataSet and its views.
type Object interface {
	Len() int
	IsEmpty() bool
	Contains(t tag.Tag) bool
	Get(t tag.Tag) *Element
	// Iterate visits elements with tags in [first, last] in ascending order.
	Iterate(first, last tag.Tag) Iterator
	CharacterSet() *charset.SpecificCharacterSet
	Parent() *DataSet
	CacheGet() bool
	CachePut() bool
	Add(e *Element) error
	Remove(t tag.Tag) (*Element, error)
	Clear() error
}

// Iterator walks elements in ascending tag order.
type Iterator interface {
	Next() bool
	Element() *Element
}

type sliceIterator struct {
	elements []*Element
	i        int
}

func (it *sliceIterator) Next() bool {
	if it.i >= len(it.elements) {
		return false
	}
	it.i++
	return true
}

func (it *sliceIterator) Element() *Element {
	if it.i == 0 || it.i > len(it.elements) {
		return nil
	}
	return it.elements[it.i-1]
}

// All iterates every element of `o`.
func All(o Object) Iterator {
	return o.Iterate(tag.CommandFirst, tag.DatasetLast)
}

// DataSet is an ordered collection of elements, unique by tag. Data sets
// nested in a sequence refer back to the data set holding that sequence.
//
// A DataSet may be read concurrently while nobody mutates it.
type DataSet struct {
	elements     []*Element
	parent       *DataSet
	itemPosition int64
	itemIndex    int
	charset      *charset.SpecificCharacterSet
	cacheGet     bool
	cachePut     bool
}

// NewDataSet returns an empty data set with room for `capacity` elements.
func NewDataSet(capacity int) *DataSet {
	return &DataSet{elements: make([]*Element, 0, capacity), itemPosition: -1, itemIndex: -1}
}

// NewItem returns an empty data set for use as a sequence item.
func NewItem() *DataSet {
	return NewDataSet(8)
}

func (d *DataSet) search(t tag.Tag) int {
	return sort.Search(len(d.elements), func(i int) bool { return d.elements[i].tag >= t })
}

// Len returns the number of elements.
func (d *DataSet) Len() int {
	return len(d.elements)
}

// IsEmpty reports whether the data set holds no elements.
func (d *DataSet) IsEmpty() bool {
	return len(d.elements) == 0
}

// Contains reports whether an element with tag `t` is present.
func (d *DataSet) Contains(t tag.Tag) bool {
	return d.Get(t) != nil
}

// Get returns the element with tag `t`, or nil.
func (d *DataSet) Get(t tag.Tag) *Element {
	i := d.search(t)
	if i < len(d.elements) && d.elements[i].tag == t {
		return d.elements[i]
	}
	return nil
}

// Iterate visits elements with tags in [first, last]. The iterator walks a
// snapshot; later mutations are not observed.
func (d *DataSet) Iterate(first, last tag.Tag) Iterator {
	lo := d.search(first)
	hi := lo
	for hi < len(d.elements) && d.elements[hi].tag <= last {
		hi++
	}
	return &sliceIterator{elements: append([]*Element(nil), d.elements[lo:hi]...)}
}

// Elements returns the elements in ascending tag order.
func (d *DataSet) Elements() []*Element {
	return append([]*Element(nil), d.elements...)
}

// CharacterSet returns the character set declared by (0008,0005) in this
// data set or its nearest ancestor. Nil means the default repertoire.
func (d *DataSet) CharacterSet() *charset.SpecificCharacterSet {
	for ds := d; ds != nil; ds = ds.parent {
		if ds.charset != nil {
			return ds.charset
		}
	}
	return nil
}

// Parent returns the data set holding the sequence this item belongs to.
func (d *DataSet) Parent() *DataSet {
	return d.parent
}

// Root returns the outermost ancestor.
func (d *DataSet) Root() *DataSet {
	ds := d
	for ds.parent != nil {
		ds = ds.parent
	}
	return ds
}

// IsRoot reports whether the data set has no parent.
func (d *DataSet) IsRoot() bool {
	return d.parent == nil
}

// CacheGet reports whether typed getters may return cached values.
func (d *DataSet) CacheGet() bool {
	return d.cacheGet
}

// CachePut reports whether typed getters store decoded values.
func (d *DataSet) CachePut() bool {
	return d.cachePut
}

// SetCache toggles the typed value cache of typed getters.
func (d *DataSet) SetCache(get, put bool) {
	d.cacheGet = get
	d.cachePut = put
}

// SetItemPosition records the stream offset the item was decoded from.
func (d *DataSet) SetItemPosition(pos int64) {
	d.itemPosition = pos
}

// ItemPosition returns the stream offset the item was decoded from, or -1.
func (d *DataSet) ItemPosition() int64 {
	return d.itemPosition
}

// ItemIndex returns the position of the item in its sequence, or -1.
func (d *DataSet) ItemIndex() int {
	return d.itemIndex
}

/*
===============================================================================
    Mutation
===============================================================================
*/

// Add inserts `e`, replacing any element with the same tag.
func (d *DataSet) Add(e *Element) error {
	if !e.tag.HasVR() {
		return UnsupportedOperationError("Add: %s is a delimiter tag", e.tag)
	}
	if e.kind == sequence {
		e.owner = d
		for _, item := range e.items {
			item.parent = d
		}
	}
	if e.tag == tag.SpecificCharacterSet {
		codes, _ := e.GetStrings(nil)
		d.charset = charset.ValueOf(codes...)
	}
	n := len(d.elements)
	if n == 0 || d.elements[n-1].tag < e.tag {
		d.elements = append(d.elements, e)
		return nil
	}
	i := d.search(e.tag)
	if d.elements[i].tag == e.tag {
		d.elements[i] = e
		return nil
	}
	d.elements = append(d.elements, nil)
	copy(d.elements[i+1:], d.elements[i:])
	d.elements[i] = e
	return nil
}

// Put is Add for callers that cannot fail; it returns `e`.
func (d *DataSet) Put(e *Element) *Element {
	d.Add(e)
	return e
}

// Remove drops the element with tag `t` and returns it, or nil if absent.
func (d *DataSet) Remove(t tag.Tag) (*Element, error) {
	i := d.search(t)
	if i >= len(d.elements) || d.elements[i].tag != t {
		return nil, nil
	}
	e := d.elements[i]
	d.elements = append(d.elements[:i], d.elements[i+1:]...)
	if t == tag.SpecificCharacterSet {
		d.charset = nil
	}
	return e, nil
}

// Clear drops every element.
func (d *DataSet) Clear() error {
	d.elements = d.elements[:0]
	d.charset = nil
	return nil
}

// Copy returns a copy sharing element values. Sequence items are copied
// recursively so the copy can be re-parented.
func (d *DataSet) Copy() *DataSet {
	out := NewDataSet(len(d.elements))
	out.cacheGet, out.cachePut = d.cacheGet, d.cachePut
	for _, e := range d.elements {
		out.Add(copySequence(e))
	}
	return out
}

// Equal reports whether both data sets hold equal elements.
func (d *DataSet) Equal(o *DataSet) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil || len(d.elements) != len(o.elements) {
		return false
	}
	for i := range d.elements {
		if !d.elements[i].Equal(o.elements[i]) {
			return false
		}
	}
	return true
}

/*
===============================================================================
    Putters
===============================================================================
*/

// resolveVR maps vr.None onto the VR the dictionary assigns to `t`.
func (d *DataSet) resolveVR(t tag.Tag, v vr.VR) vr.VR {
	if v == vr.None {
		return d.VROf(t)
	}
	return v
}

func (d *DataSet) put(e *Element, err error) (*Element, error) {
	if err != nil {
		return nil, err
	}
	if err := d.Add(e); err != nil {
		return nil, err
	}
	return e, nil
}

// PutBytes stores a raw little endian value. A vr.None `v` is resolved through the dictionary.
func (d *DataSet) PutBytes(t tag.Tag, v vr.VR, value []byte) *Element {
	return d.Put(NewElement(t, d.resolveVR(t, v), false, value))
}

// PutNull stores an empty value.
func (d *DataSet) PutNull(t tag.Tag, v vr.VR) *Element {
	v = d.resolveVR(t, v)
	if v == vr.SQ {
		return d.PutSequence(t, 0)
	}
	return d.Put(NewElement(t, v, false, nil))
}

// PutString stores `values` encoded under `v`.
func (d *DataSet) PutString(t tag.Tag, v vr.VR, values ...string) (*Element, error) {
	v = d.resolveVR(t, v)
	cs := d.CharacterSet()
	if t == tag.SpecificCharacterSet {
		cs = nil
	}
	return d.put(NewStringElement(t, v, false, cs, values...))
}

// PutInt stores `values` encoded under `v`.
func (d *DataSet) PutInt(t tag.Tag, v vr.VR, values ...int) (*Element, error) {
	return d.put(NewIntElement(t, d.resolveVR(t, v), false, values...))
}

// PutShort stores 16-bit `values` encoded under `v`.
func (d *DataSet) PutShort(t tag.Tag, v vr.VR, values ...int16) (*Element, error) {
	return d.put(NewShortElement(t, d.resolveVR(t, v), false, values...))
}

// PutFloat stores `values` encoded under `v`.
func (d *DataSet) PutFloat(t tag.Tag, v vr.VR, values ...float32) (*Element, error) {
	return d.put(NewFloatElement(t, d.resolveVR(t, v), false, values...))
}

// PutDouble stores `values` encoded under `v`.
func (d *DataSet) PutDouble(t tag.Tag, v vr.VR, values ...float64) (*Element, error) {
	return d.put(NewDoubleElement(t, d.resolveVR(t, v), false, values...))
}

// PutDate stores `values` encoded as DA, DT or TM.
func (d *DataSet) PutDate(t tag.Tag, v vr.VR, values ...time.Time) (*Element, error) {
	return d.put(NewDateElement(t, d.resolveVR(t, v), values...))
}

// PutDateRange stores `r` encoded as a DA, DT or TM range.
func (d *DataSet) PutDateRange(t tag.Tag, v vr.VR, r *vr.DateRange) (*Element, error) {
	return d.put(NewDateRangeElement(t, d.resolveVR(t, v), r))
}

// PutPersonName stores `pn` as PN.
func (d *DataSet) PutPersonName(t tag.Tag, pn vr.PersonName) (*Element, error) {
	return d.PutString(t, vr.PN, pn.String())
}

// PutSequence stores an empty sequence with room for `capacity` items.
func (d *DataSet) PutSequence(t tag.Tag, capacity int) *Element {
	return d.Put(NewSequence(t, capacity))
}

// PutFragments stores an empty fragment list with room for `capacity` fragments.
func (d *DataSet) PutFragments(t tag.Tag, v vr.VR, capacity int) *Element {
	return d.Put(NewFragments(t, d.resolveVR(t, v), false, capacity))
}

/*
===============================================================================
    Getters
===============================================================================
*/

// GetString returns the first value of `t` as text, or `def` when missing or empty.
func (d *DataSet) GetString(t tag.Tag, def string) (string, error) {
	return GetString(d, t, def)
}

// GetStrings returns every value of `t` as text, or nil.
func (d *DataSet) GetStrings(t tag.Tag) ([]string, error) {
	return GetStrings(d, t)
}

// GetInt returns the first integer value of `t`, or `def`.
func (d *DataSet) GetInt(t tag.Tag, def int) (int, error) {
	return GetInt(d, t, def)
}

// GetInts returns every integer value of `t`, or nil.
func (d *DataSet) GetInts(t tag.Tag) ([]int, error) {
	return GetInts(d, t)
}

// GetShorts returns every 16-bit value of `t`, or nil.
func (d *DataSet) GetShorts(t tag.Tag) ([]int16, error) {
	return GetShorts(d, t)
}

// GetFloat returns the first value of `t` as float32, or `def`.
func (d *DataSet) GetFloat(t tag.Tag, def float32) (float32, error) {
	return GetFloat(d, t, def)
}

// GetFloats returns every value of `t` as float32, or nil.
func (d *DataSet) GetFloats(t tag.Tag) ([]float32, error) {
	return GetFloats(d, t)
}

// GetDouble returns the first value of `t` as float64, or `def`.
func (d *DataSet) GetDouble(t tag.Tag, def float64) (float64, error) {
	return GetDouble(d, t, def)
}

// GetDoubles returns every value of `t` as float64, or nil.
func (d *DataSet) GetDoubles(t tag.Tag) ([]float64, error) {
	return GetDoubles(d, t)
}

// GetDate returns the first date of `t`, or `def`.
func (d *DataSet) GetDate(t tag.Tag, def time.Time) (time.Time, error) {
	return GetDate(d, t, def)
}

// GetDates returns every date of `t`, or nil.
func (d *DataSet) GetDates(t tag.Tag) ([]time.Time, error) {
	return GetDates(d, t)
}

// GetDateRange returns the range held by `t`, or nil.
func (d *DataSet) GetDateRange(t tag.Tag) (*vr.DateRange, error) {
	return GetDateRange(d, t)
}

// GetPersonName returns the first value of `t` split into components.
func (d *DataSet) GetPersonName(t tag.Tag) (vr.PersonName, error) {
	return GetPersonName(d, t)
}

// GetItem returns item `i` of sequence `t`, or nil.
func (d *DataSet) GetItem(t tag.Tag, i int) *DataSet {
	if e := d.Get(t); e != nil {
		return e.Item(i)
	}
	return nil
}

/*
===============================================================================
    Private tags and dictionary
===============================================================================
*/

func creatorTag(t tag.Tag) tag.Tag {
	return t&0xFFFF0000 | (t&0x0000FF00)>>8
}

// PrivateCreator returns the creator reserving the block of private tag `t`,
// or "" when `t` is public or its block is not reserved.
func (d *DataSet) PrivateCreator(t tag.Tag) string {
	if !t.IsPrivate() || t.IsPrivateCreator() {
		return ""
	}
	s, _ := GetString(d, creatorTag(t), "")
	return s
}

// ResolveTag places private tag `t` into the block reserved by `creator`,
// replacing the block byte of `t`. When no block is reserved and `reserve`
// is set, the first free block is reserved for `creator`.
func (d *DataSet) ResolveTag(t tag.Tag, creator string, reserve bool) (tag.Tag, error) {
	if !t.IsPrivate() {
		return 0, fmt.Errorf("ResolveTag: %s is not a private tag", t)
	}
	group := t & 0xFFFF0000
	free := tag.Tag(0)
	for block := tag.Tag(0x10); block <= 0xFF; block++ {
		s, err := GetString(d, group|block, "")
		if err != nil {
			return 0, err
		}
		switch {
		case s == creator && d.Contains(group|block):
			return t&0xFFFF00FF | block<<8, nil
		case free == 0 && !d.Contains(group|block):
			free = block
		}
	}
	if !reserve {
		return 0, fmt.Errorf("ResolveTag: %w %q in group %04X", ErrNoPrivateCreator, creator, t.Group())
	}
	if free == 0 {
		return 0, fmt.Errorf("ResolveTag: %w in group %04X", ErrNoPrivateBlock, t.Group())
	}
	if _, err := d.PutString(group|free, vr.LO, creator); err != nil {
		return 0, err
	}
	return t&0xFFFF00FF | free<<8, nil
}

// NameOf returns the dictionary name of `t`, honouring its private creator.
func (d *DataSet) NameOf(t tag.Tag) string {
	return dictionary.Default().PrivateNameOf(d.PrivateCreator(t), t)
}

// VROf returns the dictionary VR of `t`, honouring its private creator.
func (d *DataSet) VROf(t tag.Tag) vr.VR {
	return dictionary.Default().PrivateVROf(d.PrivateCreator(t), t)
}

/*
===============================================================================
    Partitions
===============================================================================
*/

// Command returns a view of the command elements, group 0000.
func (d *DataSet) Command() Object {
	return rangeOf(d, tag.CommandFirst, tag.CommandLast)
}

// FileMetaInfo returns a view of the file meta information, group 0002.
func (d *DataSet) FileMetaInfo() Object {
	return rangeOf(d, tag.FileMetaFirst, tag.FileMetaLast)
}

// Dataset returns a view of everything after the file meta information.
func (d *DataSet) Dataset() Object {
	return rangeOf(d, tag.DatasetFirst, tag.DatasetLast)
}

// String dumps the data set, one element per line, items indented.
func (d *DataSet) String() string {
	var b strings.Builder
	d.dump(&b, "")
	return b.String()
}

func (d *DataSet) dump(b *strings.Builder, indent string) {
	cs := d.CharacterSet()
	for _, e := range d.elements {
		b.WriteString(indent)
		b.WriteString(e.Format(cs))
		b.WriteByte('\n')
		for i, item := range e.items {
			fmt.Fprintf(b, "%s  >Item #%d\n", indent, i+1)
			item.dump(b, indent+"  >")
		}
	}
}
