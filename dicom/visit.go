package dicom

import (
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
)

// Visitor is called once per element. Returning false stops the walk.
type Visitor func(e *Element) bool

// Accept calls `v` for every element of `o` in ascending tag order,
// descending into sequence items after their sequence. It reports whether
// the walk completed.
func Accept(o Object, v Visitor) bool {
	for it := All(o); it.Next(); {
		e := it.Element()
		if !v(e) {
			return false
		}
		for _, item := range e.items {
			if !Accept(item, v) {
				return false
			}
		}
	}
	return true
}

// CopyTo adds every element of `src` to `dst`. Sequences are copied so
// `src` keeps its items. With `resolvePrivate` set, private elements are
// moved into the blocks `dst` reserves for their creators.
func CopyTo(src Object, dst Object, resolvePrivate bool) error {
	ds, canResolve := dst.(*DataSet)
	ss, hasCreators := src.(*DataSet)
	for it := All(src); it.Next(); {
		e := copySequence(it.Element())
		if resolvePrivate && canResolve && hasCreators && e.tag.IsPrivate() {
			if e.tag.IsPrivateCreator() {
				continue
			}
			if creator := ss.PrivateCreator(e.tag); creator != "" {
				t, err := ds.ResolveTag(e.tag, creator, true)
				if err != nil {
					return err
				}
				e = e.WithTag(t)
			}
		}
		if err := dst.Add(e); err != nil {
			return err
		}
	}
	return nil
}

// ContainsAll reports whether `o` holds every tag of `keys`.
func ContainsAll(o Object, keys Object) bool {
	for it := All(keys); it.Next(); {
		if !o.Contains(it.Element().tag) {
			return false
		}
	}
	return true
}

// Matches reports whether `o` satisfies the query `keys`. An empty key
// matches anything. Text keys may use '*' and '?' wildcards, dates may be
// ranges and sequence keys match when any item matches the first key item.
// With `ignoreCasePN` set, person names compare case-insensitively.
func Matches(o Object, keys Object, ignoreCasePN bool) (bool, error) {
	for it := All(keys); it.Next(); {
		key := it.Element()
		if key.IsEmpty() {
			continue
		}
		ok, err := matchElement(o, key, keys, ignoreCasePN)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchElement(o Object, key *Element, keys Object, ignoreCasePN bool) (bool, error) {
	e := o.Get(key.tag)
	if e == nil || e.IsEmpty() {
		return false, nil
	}
	switch {
	case key.kind == sequence:
		for _, item := range e.items {
			ok, err := Matches(item, key.items[0], ignoreCasePN)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	case key.kind == fragments || e.kind != primitive:
		return false, nil
	case key.vr == vr.DA || key.vr == vr.DT || key.vr == vr.TM:
		return matchDate(e, key)
	}
	cs := o.CharacterSet()
	values, err := e.GetStrings(cs)
	if err != nil {
		return false, err
	}
	kcs := keys.CharacterSet()
	keyValues, err := key.GetStrings(kcs)
	if err != nil {
		return false, err
	}
	for _, kv := range keyValues {
		k, err := NewStringElement(key.tag, key.vr, false, kcs, kv)
		if err != nil {
			return false, err
		}
		re, err := key.vr.ToPattern(k.value, false, kcs, ignoreCasePN && key.vr == vr.PN)
		if err != nil {
			return false, err
		}
		if re == nil {
			return true, nil
		}
		for _, s := range values {
			if re.MatchString(s) {
				return true, nil
			}
		}
	}
	return false, nil
}

func matchDate(e, key *Element) (bool, error) {
	r, err := key.GetDateRange()
	if err != nil || r == nil {
		return r == nil, err
	}
	dates, err := e.As(key.vr).GetDates()
	if err != nil {
		return false, err
	}
	for _, d := range dates {
		if r.Contains(d) {
			return true, nil
		}
	}
	return false, nil
}

// Tags lists the tags of `o` in ascending order.
func Tags(o Object) []tag.Tag {
	var out []tag.Tag
	for it := All(o); it.Next(); {
		out = append(out, it.Element().tag)
	}
	return out
}
