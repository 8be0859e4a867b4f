package dicom

import (
	"fmt"

	"github.com/b71729/dcmcodec/charset"
	"github.com/b71729/dcmcodec/tag"
)

/*
===============================================================================
    Read-only view
===============================================================================
*/

type readOnlyView struct {
	o Object
}

// ReadOnly wraps `o` so every mutation fails with `ErrReadOnly`.
func ReadOnly(o Object) Object {
	if v, ok := o.(*readOnlyView); ok {
		return v
	}
	return &readOnlyView{o}
}

func (v *readOnlyView) Len() int                                    { return v.o.Len() }
func (v *readOnlyView) IsEmpty() bool                               { return v.o.IsEmpty() }
func (v *readOnlyView) Contains(t tag.Tag) bool                     { return v.o.Contains(t) }
func (v *readOnlyView) Get(t tag.Tag) *Element                      { return v.o.Get(t) }
func (v *readOnlyView) Iterate(first, last tag.Tag) Iterator        { return v.o.Iterate(first, last) }
func (v *readOnlyView) CharacterSet() *charset.SpecificCharacterSet { return v.o.CharacterSet() }
func (v *readOnlyView) Parent() *DataSet                            { return v.o.Parent() }
func (v *readOnlyView) CacheGet() bool                              { return v.o.CacheGet() }
func (v *readOnlyView) CachePut() bool                              { return v.o.CachePut() }

func (v *readOnlyView) Add(e *Element) error {
	return readOnly("Add")
}

func (v *readOnlyView) Remove(t tag.Tag) (*Element, error) {
	return nil, readOnly("Remove")
}

func (v *readOnlyView) Clear() error {
	return readOnly("Clear")
}

/*
===============================================================================
    Filtered views
===============================================================================
*/

// filterView exposes the elements of `o` whose tag satisfies `accept`.
// `transform` may substitute the element handed out, e.g. a narrowed sequence.
type filterView struct {
	o         Object
	accept    func(t tag.Tag) bool
	transform func(e *Element) *Element
}

type filterIterator struct {
	it Iterator
	f  *filterView
	e  *Element
}

func (it *filterIterator) Next() bool {
	for it.it.Next() {
		if e := it.it.Element(); it.f.accept(e.tag) {
			it.e = it.f.element(e)
			return true
		}
	}
	it.e = nil
	return false
}

func (it *filterIterator) Element() *Element {
	return it.e
}

func (f *filterView) element(e *Element) *Element {
	if e == nil || f.transform == nil {
		return e
	}
	return f.transform(e)
}

func (f *filterView) Len() int {
	n := 0
	for it := f.Iterate(0, 0xFFFFFFFF); it.Next(); {
		n++
	}
	return n
}

func (f *filterView) IsEmpty() bool {
	return !f.Iterate(0, 0xFFFFFFFF).Next()
}

func (f *filterView) Contains(t tag.Tag) bool {
	return f.accept(t) && f.o.Contains(t)
}

func (f *filterView) Get(t tag.Tag) *Element {
	if !f.accept(t) {
		return nil
	}
	return f.element(f.o.Get(t))
}

func (f *filterView) Iterate(first, last tag.Tag) Iterator {
	return &filterIterator{it: f.o.Iterate(first, last), f: f}
}

func (f *filterView) CharacterSet() *charset.SpecificCharacterSet { return f.o.CharacterSet() }
func (f *filterView) Parent() *DataSet                            { return f.o.Parent() }
func (f *filterView) CacheGet() bool                              { return f.o.CacheGet() }
func (f *filterView) CachePut() bool                              { return f.o.CachePut() }

func (f *filterView) Add(e *Element) error {
	if !f.accept(e.tag) {
		return FilteredTagError(e.tag)
	}
	return f.o.Add(e)
}

func (f *filterView) Remove(t tag.Tag) (*Element, error) {
	if !f.accept(t) {
		return nil, FilteredTagError(t)
	}
	return f.o.Remove(t)
}

// Clear removes the elements visible through the view.
func (f *filterView) Clear() error {
	var tags []tag.Tag
	for it := f.Iterate(0, 0xFFFFFFFF); it.Next(); {
		tags = append(tags, it.Element().tag)
	}
	for _, t := range tags {
		if _, err := f.o.Remove(t); err != nil {
			return err
		}
	}
	return nil
}

// Include restricts `o` to `tags`.
func Include(o Object, tags ...tag.Tag) Object {
	set := make(map[tag.Tag]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return &filterView{o: o, accept: func(t tag.Tag) bool {
		_, ok := set[t]
		return ok
	}}
}

// Exclude hides `tags` of `o`.
func Exclude(o Object, tags ...tag.Tag) Object {
	set := make(map[tag.Tag]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return &filterView{o: o, accept: func(t tag.Tag) bool {
		_, ok := set[t]
		return !ok
	}}
}

// Range restricts `o` to tags in [from, to].
func Range(o Object, from, to tag.Tag) (Object, error) {
	if from > to {
		return nil, fmt.Errorf("Range: %s is after %s", from, to)
	}
	return rangeOf(o, from, to), nil
}

type rangeView struct {
	filterView
	from, to tag.Tag
}

func rangeOf(o Object, from, to tag.Tag) Object {
	v := &rangeView{from: from, to: to}
	v.filterView = filterView{o: o, accept: func(t tag.Tag) bool { return t >= from && t <= to }}
	return v
}

// Iterate narrows the underlying walk instead of filtering every element.
func (v *rangeView) Iterate(first, last tag.Tag) Iterator {
	if first < v.from {
		first = v.from
	}
	if last > v.to {
		last = v.to
	}
	if first > last {
		return &sliceIterator{}
	}
	return v.o.Iterate(first, last)
}

func (v *rangeView) Len() int {
	n := 0
	for it := v.Iterate(v.from, v.to); it.Next(); {
		n++
	}
	return n
}

func (v *rangeView) IsEmpty() bool {
	return !v.Iterate(v.from, v.to).Next()
}

func (v *rangeView) Clear() error {
	var tags []tag.Tag
	for it := v.Iterate(v.from, v.to); it.Next(); {
		tags = append(tags, it.Element().tag)
	}
	for _, t := range tags {
		if _, err := v.o.Remove(t); err != nil {
			return err
		}
	}
	return nil
}

// ExcludePrivate hides every private tag of `o`.
func ExcludePrivate(o Object) Object {
	return &filterView{o: o, accept: func(t tag.Tag) bool { return !t.IsPrivate() }}
}

// SubSet restricts `o` to the tags present in `template`. A sequence in the
// template with an item narrows the items of the corresponding sequence to
// the tags of that item, recursively; the narrowed items are copies.
func SubSet(o, template Object) Object {
	f := &filterView{o: o, accept: template.Contains}
	f.transform = func(e *Element) *Element {
		te := template.Get(e.tag)
		if e.kind != sequence || te == nil || te.CountItems() == 0 || te.kind != sequence {
			return e
		}
		sub := te.Item(0)
		sq := NewSequence(e.tag, len(e.items))
		for _, item := range e.items {
			narrowed := Materialize(SubSet(item, sub))
			narrowed.itemPosition = item.itemPosition
			sq.AddItem(narrowed)
			narrowed.parent = item.parent
		}
		return sq
	}
	return f
}

// Materialize copies the elements visible through `o` into a new data set.
func Materialize(o Object) *DataSet {
	out := NewDataSet(o.Len())
	out.cacheGet, out.cachePut = o.CacheGet(), o.CachePut()
	for it := All(o); it.Next(); {
		out.Add(copySequence(it.Element()))
	}
	return out
}
