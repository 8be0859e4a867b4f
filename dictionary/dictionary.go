// Package dictionary maps tags onto attribute names and value representations.
//
// A Registry is immutable. Callers extend it with `With` and publish the
// result process-wide with `Swap`; decoders may also be handed a Registry
// directly.
package dictionary

import (
	"sort"
	"sync/atomic"

	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
)

// Names reported for tags that are not looked up in a table.
const (
	GroupLength    = "Group Length"
	PrivateCreator = "Private Creator"
	Unknown        = "Unknown"
)

// Entry describes one attribute of the data dictionary.
type Entry struct {
	Tag     tag.Tag
	VR      vr.VR
	VM      string
	Keyword string
	Name    string
	Retired bool
}

// UIDEntry describes a registered unique identifier.
type UIDEntry struct {
	UID  string
	Name string
	Type string
}

// Registry is a read-only tag dictionary, with optional private
// dictionaries keyed by private creator.
type Registry struct {
	entries   map[tag.Tag]*Entry
	byKeyword map[string]*Entry
	private   map[string]map[tag.Tag]*Entry
	uids      map[string]*UIDEntry
}

// New builds a registry holding `entries`.
func New(entries ...Entry) *Registry {
	r := &Registry{
		entries:   make(map[tag.Tag]*Entry, len(entries)),
		byKeyword: make(map[string]*Entry, len(entries)),
		private:   map[string]map[tag.Tag]*Entry{},
		uids:      map[string]*UIDEntry{},
	}
	r.add(entries)
	return r
}

func (r *Registry) clone() *Registry {
	out := &Registry{
		entries:   make(map[tag.Tag]*Entry, len(r.entries)),
		byKeyword: make(map[string]*Entry, len(r.byKeyword)),
		private:   make(map[string]map[tag.Tag]*Entry, len(r.private)),
		uids:      make(map[string]*UIDEntry, len(r.uids)),
	}
	for k, e := range r.entries {
		out.entries[k] = e
	}
	for k, e := range r.byKeyword {
		out.byKeyword[k] = e
	}
	for k, m := range r.private {
		out.private[k] = m
	}
	for k, u := range r.uids {
		out.uids[k] = u
	}
	return out
}

func (r *Registry) add(entries []Entry) {
	for i := range entries {
		e := entries[i]
		r.entries[canonical(e.Tag)] = &e
		if e.Keyword != "" {
			r.byKeyword[e.Keyword] = &e
		}
	}
}

// With returns a copy of the registry extended with `entries`.
func (r *Registry) With(entries ...Entry) *Registry {
	out := r.clone()
	out.add(entries)
	return out
}

// WithPrivate returns a copy of the registry extended with the private
// dictionary of `creator`. Entry tags are matched ignoring the block byte,
// so (0019,1000) and (0019,1100) name the same attribute.
func (r *Registry) WithPrivate(creator string, entries ...Entry) *Registry {
	out := r.clone()
	m := make(map[tag.Tag]*Entry, len(entries)+len(r.private[creator]))
	for k, e := range r.private[creator] {
		m[k] = e
	}
	for i := range entries {
		e := entries[i]
		m[e.Tag&0xFFFF00FF] = &e
	}
	out.private[creator] = m
	return out
}

// WithUIDs returns a copy of the registry extended with `uids`.
func (r *Registry) WithUIDs(uids ...UIDEntry) *Registry {
	out := r.clone()
	for i := range uids {
		u := uids[i]
		out.uids[u.UID] = &u
	}
	return out
}

// canonical masks the repeating parts of a tag: the private block byte,
// (0020,31xx) and the 50xx/60xx repeating groups.
func canonical(t tag.Tag) tag.Tag {
	switch {
	case t.IsPrivate():
		return t & 0xFFFF00FF
	case t&0xFFFFFF00 == tag.SourceImageIDs:
		return t & 0xFFFFFF00
	}
	if g := t & 0xFFE00000; g == 0x50000000 || g == 0x60000000 {
		return t & 0xFF00FFFF
	}
	return t
}

// Lookup returns the public entry for `t`.
func (r *Registry) Lookup(t tag.Tag) (*Entry, bool) {
	if t.IsPrivate() {
		return nil, false
	}
	e, ok := r.entries[canonical(t)]
	return e, ok
}

// LookupPrivate returns the entry for `t` in the private dictionary of `creator`.
func (r *Registry) LookupPrivate(creator string, t tag.Tag) (*Entry, bool) {
	m, ok := r.private[creator]
	if !ok {
		return nil, false
	}
	e, ok := m[canonical(t)]
	return e, ok
}

// LookupKeyword returns the public entry with keyword `kw`, e.g. "PatientName".
func (r *Registry) LookupKeyword(kw string) (*Entry, bool) {
	e, ok := r.byKeyword[kw]
	return e, ok
}

// LookupUID returns the entry registered for `uid`.
func (r *Registry) LookupUID(uid string) (*UIDEntry, bool) {
	u, ok := r.uids[uid]
	return u, ok
}

// NameOf returns the display name of a public tag.
func (r *Registry) NameOf(t tag.Tag) string {
	return r.PrivateNameOf("", t)
}

// PrivateNameOf returns the display name of `t`, consulting the private
// dictionary of `creator` for private tags.
func (r *Registry) PrivateNameOf(creator string, t tag.Tag) string {
	if t.IsGroupLength() {
		return GroupLength
	}
	if t.IsPrivate() {
		if t&0x0000FF00 == 0 {
			return PrivateCreator
		}
		if e, ok := r.LookupPrivate(creator, t); ok {
			return e.Name
		}
		return Unknown
	}
	if e, ok := r.Lookup(t); ok {
		return e.Name
	}
	return Unknown
}

// VROf returns the VR of a public tag, UN if it is not known.
func (r *Registry) VROf(t tag.Tag) vr.VR {
	return r.PrivateVROf("", t)
}

// PrivateVROf returns the VR of `t`, consulting the private dictionary of
// `creator` for private tags.
func (r *Registry) PrivateVROf(creator string, t tag.Tag) vr.VR {
	if t.IsGroupLength() {
		return vr.UL
	}
	if !t.HasVR() {
		return vr.None
	}
	if t.IsPrivate() {
		if t&0x0000FF00 == 0 {
			if t&0x000000F0 == 0 {
				return vr.UN
			}
			return vr.LO
		}
		if e, ok := r.LookupPrivate(creator, t); ok {
			return e.VR
		}
		return vr.UN
	}
	if e, ok := r.Lookup(t); ok {
		return e.VR
	}
	return vr.UN
}

// Len returns the number of public entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Creators lists the private creators with a registered dictionary.
func (r *Registry) Creators() []string {
	out := make([]string, 0, len(r.private))
	for c := range r.private {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

var shared atomic.Pointer[Registry]

func init() {
	shared.Store(Standard)
}

// Default returns the process-wide registry.
func Default() *Registry {
	return shared.Load()
}

// Swap installs `r` as the process-wide registry and returns the previous
// one. A nil `r` restores `Standard`.
func Swap(r *Registry) *Registry {
	if r == nil {
		r = Standard
	}
	return shared.Swap(r)
}

// NameOf resolves `t` against the process-wide registry.
func NameOf(t tag.Tag) string {
	return Default().NameOf(t)
}

// VROf resolves `t` against the process-wide registry.
func VROf(t tag.Tag) vr.VR {
	return Default().VROf(t)
}
