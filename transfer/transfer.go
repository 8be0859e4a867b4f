// Package transfer describes transfer syntaxes: the byte order, VR
// explicitness, compression and encapsulation a data set is encoded with.
package transfer

import (
	"encoding/binary"
	"fmt"
	"sort"
	"sync/atomic"
)

// Syntax is a named encoding profile. Values are immutable.
type Syntax struct {
	UID          string
	Name         string
	ExplicitVR   bool
	BigEndian    bool
	Deflated     bool
	Encapsulated bool
}

// ByteOrder returns the byte order of element headers and binary values.
func (ts *Syntax) ByteOrder() binary.ByteOrder {
	if ts.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Uncompressed reports whether the data set is neither deflated nor encapsulated.
func (ts *Syntax) Uncompressed() bool {
	return !ts.Deflated && !ts.Encapsulated
}

// Equal compares by UID.
func (ts *Syntax) Equal(o *Syntax) bool {
	return ts != nil && o != nil && ts.UID == o.UID
}

func (ts *Syntax) String() string {
	s1 := "ImplicitVR"
	s2 := "LittleEndian"
	if ts.ExplicitVR {
		s1 = "ExplicitVR"
	}
	if ts.BigEndian {
		s2 = "BigEndian"
	}
	s := fmt.Sprintf("%s + %s", s1, s2)
	if ts.Deflated {
		s += " + Deflated"
	}
	if ts.Encapsulated {
		s += " + Encapsulated"
	}
	return s
}

// Well known transfer syntaxes.
var (
	ImplicitVRLittleEndian         = &Syntax{UID: "1.2.840.10008.1.2", Name: "Implicit VR Little Endian"}
	ImplicitVRBigEndian            = &Syntax{UID: "1.2.840.113619.5.2", Name: "Implicit VR Big Endian (GE private)", BigEndian: true}
	ExplicitVRLittleEndian         = &Syntax{UID: "1.2.840.10008.1.2.1", Name: "Explicit VR Little Endian", ExplicitVR: true}
	ExplicitVRBigEndian            = &Syntax{UID: "1.2.840.10008.1.2.2", Name: "Explicit VR Big Endian", ExplicitVR: true, BigEndian: true}
	DeflatedExplicitVRLittleEndian = &Syntax{UID: "1.2.840.10008.1.2.1.99", Name: "Deflated Explicit VR Little Endian", ExplicitVR: true, Deflated: true}
	NoPixelData                    = &Syntax{UID: "1.2.840.10008.1.2.4.96", Name: "No Pixel Data", ExplicitVR: true}
	NoPixelDataDeflate             = &Syntax{UID: "1.2.840.10008.1.2.4.97", Name: "No Pixel Data Deflate", ExplicitVR: true, Deflated: true}
	JPEGBaseline                   = encapsulated("1.2.840.10008.1.2.4.50", "JPEG Baseline (Process 1)")
	JPEGExtended                   = encapsulated("1.2.840.10008.1.2.4.51", "JPEG Extended (Process 2 & 4)")
	JPEGLossless                   = encapsulated("1.2.840.10008.1.2.4.57", "JPEG Lossless, Non-Hierarchical (Process 14)")
	JPEGLosslessSV1                = encapsulated("1.2.840.10008.1.2.4.70", "JPEG Lossless, Non-Hierarchical, First-Order Prediction")
	JPEGLSLossless                 = encapsulated("1.2.840.10008.1.2.4.80", "JPEG-LS Lossless Image Compression")
	JPEGLSNearLossless             = encapsulated("1.2.840.10008.1.2.4.81", "JPEG-LS Lossy (Near-Lossless) Image Compression")
	JPEG2000Lossless               = encapsulated("1.2.840.10008.1.2.4.90", "JPEG 2000 Image Compression (Lossless Only)")
	JPEG2000                       = encapsulated("1.2.840.10008.1.2.4.91", "JPEG 2000 Image Compression")
	MPEG2                          = encapsulated("1.2.840.10008.1.2.4.100", "MPEG2 Main Profile / Main Level")
	MPEG4                          = encapsulated("1.2.840.10008.1.2.4.102", "MPEG-4 AVC/H.264 High Profile / Level 4.1")
	RLELossless                    = encapsulated("1.2.840.10008.1.2.5", "RLE Lossless")
)

func encapsulated(uid, name string) *Syntax {
	return &Syntax{UID: uid, Name: name, ExplicitVR: true, Encapsulated: true}
}

// Registry maps UIDs onto transfer syntaxes. A Registry is never modified
// after construction; `With` returns an extended copy.
type Registry struct {
	byUID map[string]*Syntax
}

// NewRegistry builds a registry holding `syntaxes`. Later entries replace earlier ones with the same UID.
func NewRegistry(syntaxes ...*Syntax) *Registry {
	r := &Registry{byUID: make(map[string]*Syntax, len(syntaxes))}
	for _, ts := range syntaxes {
		r.byUID[ts.UID] = ts
	}
	return r
}

// With returns a copy of the registry extended with `syntaxes`.
func (r *Registry) With(syntaxes ...*Syntax) *Registry {
	out := &Registry{byUID: make(map[string]*Syntax, len(r.byUID)+len(syntaxes))}
	for uid, ts := range r.byUID {
		out.byUID[uid] = ts
	}
	for _, ts := range syntaxes {
		out.byUID[ts.UID] = ts
	}
	return out
}

// Without returns a copy of the registry lacking `uids`.
func (r *Registry) Without(uids ...string) *Registry {
	out := r.With()
	for _, uid := range uids {
		delete(out.byUID, uid)
	}
	return out
}

// Lookup returns the registered syntax for `uid`.
func (r *Registry) Lookup(uid string) (*Syntax, bool) {
	ts, ok := r.byUID[uid]
	return ts, ok
}

// ValueOf returns the registered syntax for `uid`. Unknown UIDs resolve to
// explicit VR little endian with encapsulated pixel data.
func (r *Registry) ValueOf(uid string) *Syntax {
	if ts, ok := r.byUID[uid]; ok {
		return ts
	}
	return &Syntax{UID: uid, Name: "Unknown", ExplicitVR: true, Encapsulated: true}
}

// UIDs lists the registered UIDs in ascending order.
func (r *Registry) UIDs() []string {
	out := make([]string, 0, len(r.byUID))
	for uid := range r.byUID {
		out = append(out, uid)
	}
	sort.Strings(out)
	return out
}

// Standard holds the syntaxes defined in this package.
var Standard = NewRegistry(
	ImplicitVRLittleEndian,
	ImplicitVRBigEndian,
	ExplicitVRLittleEndian,
	ExplicitVRBigEndian,
	DeflatedExplicitVRLittleEndian,
	NoPixelData,
	NoPixelDataDeflate,
	JPEGBaseline,
	JPEGExtended,
	JPEGLossless,
	JPEGLosslessSV1,
	JPEGLSLossless,
	JPEGLSNearLossless,
	JPEG2000Lossless,
	JPEG2000,
	MPEG2,
	MPEG4,
	RLELossless,
)

var shared atomic.Pointer[Registry]

func init() {
	shared.Store(Standard)
}

// Default returns the process-wide registry.
func Default() *Registry {
	return shared.Load()
}

// Swap installs `r` as the process-wide registry and returns the previous one.
// A nil `r` restores `Standard`.
func Swap(r *Registry) *Registry {
	if r == nil {
		r = Standard
	}
	return shared.Swap(r)
}

// Register adds `syntaxes` to the process-wide registry by swapping in an extended copy.
func Register(syntaxes ...*Syntax) {
	for {
		old := shared.Load()
		if shared.CompareAndSwap(old, old.With(syntaxes...)) {
			return
		}
	}
}

// ValueOf resolves `uid` against the process-wide registry.
func ValueOf(uid string) *Syntax {
	return Default().ValueOf(uid)
}
