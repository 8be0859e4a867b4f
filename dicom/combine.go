package dicom

import (
	"github.com/b71729/dcmcodec/charset"
	"github.com/b71729/dcmcodec/tag"
)

// combined presents two objects as one. Where both hold a tag, `a` wins.
type combined struct {
	a, b Object
}

// Combine returns a read-only view over `a` layered on `b`: elements of `a`
// override those of `b` with the same tag, the rest of `b` shows through.
func Combine(a, b Object) Object {
	return &combined{a, b}
}

type mergeIterator struct {
	a, b   Iterator
	ea, eb *Element
	cur    *Element
	primed bool
}

func (it *mergeIterator) advance(i Iterator) *Element {
	if i.Next() {
		return i.Element()
	}
	return nil
}

func (it *mergeIterator) Next() bool {
	if !it.primed {
		it.ea, it.eb = it.advance(it.a), it.advance(it.b)
		it.primed = true
	}
	switch {
	case it.ea == nil && it.eb == nil:
		it.cur = nil
		return false
	case it.eb == nil || (it.ea != nil && it.ea.tag < it.eb.tag):
		it.cur, it.ea = it.ea, it.advance(it.a)
	case it.ea == nil || it.eb.tag < it.ea.tag:
		it.cur, it.eb = it.eb, it.advance(it.b)
	default:
		it.cur = it.ea
		it.ea, it.eb = it.advance(it.a), it.advance(it.b)
	}
	return true
}

func (it *mergeIterator) Element() *Element {
	return it.cur
}

func (c *combined) Len() int {
	n := 0
	for it := c.Iterate(0, 0xFFFFFFFF); it.Next(); {
		n++
	}
	return n
}

func (c *combined) IsEmpty() bool {
	return c.a.IsEmpty() && c.b.IsEmpty()
}

func (c *combined) Contains(t tag.Tag) bool {
	return c.a.Contains(t) || c.b.Contains(t)
}

func (c *combined) Get(t tag.Tag) *Element {
	if e := c.a.Get(t); e != nil {
		return e
	}
	return c.b.Get(t)
}

func (c *combined) Iterate(first, last tag.Tag) Iterator {
	return &mergeIterator{a: c.a.Iterate(first, last), b: c.b.Iterate(first, last)}
}

// CharacterSet prefers `a` when it declares (0008,0005) itself.
func (c *combined) CharacterSet() *charset.SpecificCharacterSet {
	if c.a.Contains(tag.SpecificCharacterSet) {
		return c.a.CharacterSet()
	}
	return c.b.CharacterSet()
}

func (c *combined) Parent() *DataSet { return c.a.Parent() }
func (c *combined) CacheGet() bool   { return c.a.CacheGet() }
func (c *combined) CachePut() bool   { return c.a.CachePut() }

func (c *combined) Add(e *Element) error {
	return readOnly("Add")
}

func (c *combined) Remove(t tag.Tag) (*Element, error) {
	return nil, readOnly("Remove")
}

func (c *combined) Clear() error {
	return readOnly("Clear")
}
