package dicomio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/b71729/bin"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/dicom"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/transfer"
	"github.com/b71729/dcmcodec/vr"
	"github.com/klauspost/compress/flate"
)

// Encoder writes DICOM data sets to a byte stream.
//
// Output is buffered; every Write method flushes before returning, except
// for data still held by an unfinished deflate stream.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	dest     io.Writer
	bw       *bufio.Writer
	w        bin.Writer
	base     int64 // stream offset at which `w` was last reset
	deflater *flate.Writer
	opts     EncoderOptions
	ts       *transfer.Syntax
	header   [2]byte
}

// NewEncoder returns an encoder writing to `dest`.
// The initial transfer syntax is explicit VR little endian.
func NewEncoder(dest io.Writer, opts EncoderOptions) *Encoder {
	enc := &Encoder{
		dest: dest,
		bw:   bufio.NewWriter(dest),
		opts: opts,
		ts:   transfer.ExplicitVRLittleEndian,
	}
	enc.w = bin.NewWriter(enc.bw, binary.LittleEndian)
	return enc
}

// TransferSyntax returns the syntax values are currently encoded with.
func (enc *Encoder) TransferSyntax() *transfer.Syntax {
	return enc.ts
}

// StreamPosition returns the number of bytes written, counted before deflation.
func (enc *Encoder) StreamPosition() int64 {
	return enc.base + enc.w.GetPosition()
}

// SetTransferSyntax changes the encoding of subsequent writes. Switching to
// a deflated syntax starts a deflate stream; switching away finishes it.
func (enc *Encoder) SetTransferSyntax(ts *transfer.Syntax) error {
	if enc.deflater != nil && !ts.Deflated {
		if err := enc.Finish(); err != nil {
			return err
		}
	}
	enc.ts = ts
	enc.w.SetByteOrder(ts.ByteOrder())
	if ts.Deflated && enc.deflater == nil {
		fw, err := flate.NewWriter(enc.bw, enc.opts.CompressionLevel)
		if err != nil {
			return err
		}
		enc.deflater = fw
		enc.base = enc.StreamPosition()
		enc.w.Reset(fw, ts.ByteOrder())
		core.Log().Debugf("deflating output as %s", ts.Name)
	}
	return nil
}

// Finish completes a deflate stream, if one is open, so that further bytes
// are written raw. The destination is not closed.
func (enc *Encoder) Finish() error {
	if enc.deflater != nil {
		if err := enc.deflater.Close(); err != nil {
			return err
		}
		enc.deflater = nil
		enc.base = enc.StreamPosition()
		enc.w.Reset(enc.bw, enc.ts.ByteOrder())
	}
	return enc.bw.Flush()
}

// Close finishes the stream and closes the destination if it is an `io.Closer`.
func (enc *Encoder) Close() error {
	if err := enc.Finish(); err != nil {
		return err
	}
	if c, ok := enc.dest.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (enc *Encoder) flush() error {
	return enc.bw.Flush()
}

/*
===============================================================================
    Length calculation
===============================================================================
*/

// itemInfo holds the defined lengths of an item, computed before it is written.
type itemInfo struct {
	length   int64
	groups   []int64 // value of each (gggg,0000), in group order
	seqs     []int64 // defined length of each non-empty sequence, in order
	children []*itemInfo
}

// declaredLength is the length an element's header carries before the
// explicit length options are applied.
func declaredLength(e *dicom.Element) int64 {
	switch {
	case e.HasDataSets():
		if e.CountItems() == 0 {
			return 0
		}
		return -1
	case e.HasFragments():
		return -1
	}
	return int64(e.Length())
}

func even(n int) int64 {
	return int64(n+1) &^ 1
}

func (enc *Encoder) headerLength(v vr.VR) int64 {
	if enc.ts.ExplicitVR {
		return int64(v.HeaderLength())
	}
	return 8
}

// elements collects the elements of `it`. Stored group lengths are dropped
// when `groupLength` is set, since they are recomputed.
func elements(it dicom.Iterator, groupLength bool) []*dicom.Element {
	var out []*dicom.Element
	for it.Next() {
		e := it.Element()
		if groupLength && e.Tag().IsGroupLength() {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (enc *Encoder) needsInfo(groupLength bool) bool {
	return groupLength || enc.opts.IncludeGroupLength || enc.opts.ExplicitItemLength || enc.opts.ExplicitSequenceLength
}

// measure computes the encoded length of `els` and of everything nested in them.
func (enc *Encoder) measure(els []*dicom.Element, groupLength bool) *itemInfo {
	info := &itemInfo{}
	var group uint16
	for i, e := range els {
		vlen := declaredLength(e)
		switch {
		case vlen == -1 && e.VR() == vr.SQ:
			vlen = enc.measureSequence(e, info)
			if enc.opts.ExplicitSequenceLength {
				info.seqs = append(info.seqs, vlen)
			}
		case vlen == -1:
			vlen = 8
			for _, f := range e.Fragments() {
				vlen += 8 + even(len(f))
			}
		case e.VR() == vr.SQ && vlen == 0 && !enc.opts.ExplicitSequenceLengthIfZero:
			vlen = 8
		}
		alen := enc.headerLength(e.VR()) + vlen
		info.length += alen
		if groupLength {
			if g := e.Tag().Group(); i == 0 || g != group {
				group = g
				info.length += 12
				info.groups = append(info.groups, 0)
			}
			info.groups[len(info.groups)-1] += alen
		}
	}
	explicit := enc.opts.ExplicitItemLength
	if len(els) == 0 {
		explicit = enc.opts.ExplicitItemLengthIfZero
	}
	if !explicit {
		info.length += 8
	}
	return info
}

func (enc *Encoder) measureSequence(sq *dicom.Element, info *itemInfo) int64 {
	var l int64 = 8
	if enc.opts.ExplicitSequenceLength {
		l = 0
	}
	for _, item := range sq.Items() {
		child := enc.measure(elements(dicom.All(item), enc.opts.IncludeGroupLength), enc.opts.IncludeGroupLength)
		info.children = append(info.children, child)
		l += 8 + child.length
	}
	return l
}

/*
===============================================================================
    Writing
===============================================================================
*/

// WriteHeader writes an element, item or delimiter header. A negative
// `length` is written as undefined. `v` is ignored under implicit VR and
// should be vr.None for items and delimiters.
func (enc *Encoder) WriteHeader(t tag.Tag, v vr.VR, length int64) error {
	if err := enc.w.WriteUint16(t.Group()); err != nil {
		return err
	}
	if err := enc.w.WriteUint16(t.Element()); err != nil {
		return err
	}
	l32 := uint32(length)
	if length < 0 {
		l32 = undefinedLength
	}
	if v != vr.None && enc.ts.ExplicitVR {
		binary.BigEndian.PutUint16(enc.header[:], v.Code())
		if err := enc.w.WriteBytes(enc.header[:]); err != nil {
			return err
		}
		if v.HeaderLength() == 8 {
			if length < 0 || length > 0xFFFF {
				return fmt.Errorf("WriteHeader(%s): length %d does not fit VR %s", t, length, v)
			}
			return enc.w.WriteUint16(uint16(length))
		}
		if err := enc.w.ZeroFill(2); err != nil {
			return err
		}
	}
	return enc.w.WriteUint32(l32)
}

func (enc *Encoder) writeGroupLength(group uint16, length int64) error {
	if err := enc.WriteHeader(tag.New(group, 0), vr.UL, 4); err != nil {
		return err
	}
	return enc.w.WriteUint32(uint32(length))
}

func (enc *Encoder) writeElements(els []*dicom.Element, groupLength bool, info *itemInfo) error {
	var group uint16
	var gi, si, ci int
	for i, e := range els {
		if groupLength {
			if g := e.Tag().Group(); i == 0 || g != group {
				group = g
				if err := enc.writeGroupLength(g, info.groups[gi]); err != nil {
					return err
				}
				gi++
			}
		}
		length := declaredLength(e)
		if e.VR() == vr.SQ {
			if length == -1 && enc.opts.ExplicitSequenceLength {
				length = info.seqs[si]
				si++
			} else if length == 0 && !enc.opts.ExplicitSequenceLengthIfZero {
				length = -1
			}
		}
		if err := enc.WriteHeader(e.Tag(), e.VR(), length); err != nil {
			return err
		}
		switch {
		case e.HasDataSets():
			for _, item := range e.Items() {
				var child *itemInfo
				if info != nil {
					child = info.children[ci]
					ci++
				}
				if err := enc.writeItem(item, child); err != nil {
					return err
				}
			}
		case e.HasFragments():
			for _, f := range e.Fragments() {
				if err := enc.WriteHeader(tag.Item, vr.None, even(len(f))); err != nil {
					return err
				}
				if err := enc.w.WriteBytes(f); err != nil {
					return err
				}
				if len(f)&1 != 0 {
					if err := enc.w.ZeroFill(1); err != nil {
						return err
					}
				}
			}
		case length > 0:
			if err := enc.w.WriteBytes(e.GetBytes(enc.ts.BigEndian)); err != nil {
				return err
			}
		}
		if length == -1 {
			if err := enc.WriteHeader(tag.SequenceDelimitationItem, vr.None, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func (enc *Encoder) writeItem(item *dicom.DataSet, info *itemInfo) error {
	item.SetItemPosition(enc.StreamPosition())
	els := elements(dicom.All(item), enc.opts.IncludeGroupLength)
	if info == nil && enc.needsInfo(false) {
		info = enc.measure(els, enc.opts.IncludeGroupLength)
	}
	var length int64 = -1
	switch {
	case len(els) == 0:
		if enc.opts.ExplicitItemLengthIfZero {
			length = 0
		}
	case enc.opts.ExplicitItemLength:
		length = info.length
	}
	if err := enc.WriteHeader(tag.Item, vr.None, length); err != nil {
		return err
	}
	if err := enc.writeElements(els, enc.opts.IncludeGroupLength, info); err != nil {
		return err
	}
	if length == -1 {
		return enc.WriteHeader(tag.ItemDelimitationItem, vr.None, 0)
	}
	return nil
}

// writeTop writes `els` with lengths computed up front when needed.
func (enc *Encoder) writeTop(els []*dicom.Element, groupLength bool) error {
	var info *itemInfo
	if enc.needsInfo(groupLength) {
		info = enc.measure(els, groupLength)
	}
	return enc.writeElements(els, groupLength, info)
}

/*
===============================================================================
    Entry points
===============================================================================
*/

// WriteCommand writes the command group of `o` as implicit VR little
// endian, preceded by its group length.
func (enc *Encoder) WriteCommand(o dicom.Object) error {
	if err := enc.SetTransferSyntax(transfer.ImplicitVRLittleEndian); err != nil {
		return err
	}
	if err := enc.writeTop(elements(o.Iterate(tag.CommandFirst, tag.CommandLast), true), true); err != nil {
		return err
	}
	return enc.flush()
}

// WriteFileMetaInformation writes the preamble, "DICM" and group 0002 of
// `o` as explicit VR little endian, preceded by its group length.
func (enc *Encoder) WriteFileMetaInformation(o dicom.Object) error {
	if !enc.opts.OmitPreamble {
		if p := enc.opts.Preamble; p != nil {
			if len(p) != preambleLength {
				return fmt.Errorf("WriteFileMetaInformation: preamble is %d bytes, need %d", len(p), preambleLength)
			}
			if err := enc.w.WriteBytes(p); err != nil {
				return err
			}
		} else if err := enc.w.ZeroFill(preambleLength); err != nil {
			return err
		}
		if err := enc.w.WriteBytes(dicmTestString); err != nil {
			return err
		}
	}
	if err := enc.SetTransferSyntax(transfer.ExplicitVRLittleEndian); err != nil {
		return err
	}
	if err := enc.writeTop(elements(o.Iterate(tag.FileMetaFirst, tag.FileMetaLast), true), true); err != nil {
		return err
	}
	return enc.flush()
}

// WriteDataset writes the elements of `o` from group 0003 upwards under `ts`.
// The deflate stream, if any, is finished afterwards when AutoFinish is set.
func (enc *Encoder) WriteDataset(o dicom.Object, ts *transfer.Syntax) error {
	if err := enc.SetTransferSyntax(ts); err != nil {
		return err
	}
	groupLength := enc.opts.IncludeGroupLength
	if err := enc.writeTop(elements(o.Iterate(tag.DatasetFirst, tag.DatasetLast), groupLength), groupLength); err != nil {
		return err
	}
	if enc.opts.AutoFinish {
		return enc.Finish()
	}
	return enc.flush()
}

// WriteFile writes `o` as a Part 10 file: file meta information, then the
// data set under the syntax named by its (0002,0010).
func (enc *Encoder) WriteFile(o dicom.Object) error {
	uid, err := dicom.GetString(o, tag.TransferSyntaxUID, "")
	if err != nil {
		return err
	}
	if uid == "" {
		return fmt.Errorf("WriteFile: missing %s Transfer Syntax UID", tag.TransferSyntaxUID)
	}
	if err := enc.WriteFileMetaInformation(o); err != nil {
		return err
	}
	return enc.WriteDataset(o, transfer.ValueOf(uid))
}

// SerializeObject writes every element of `o` as explicit VR little endian,
// followed by an item delimiter.
func (enc *Encoder) SerializeObject(o dicom.Object) error {
	if err := enc.SetTransferSyntax(transfer.ExplicitVRLittleEndian); err != nil {
		return err
	}
	if err := enc.writeTop(elements(dicom.All(o), false), false); err != nil {
		return err
	}
	if err := enc.WriteHeader(tag.ItemDelimitationItem, vr.None, 0); err != nil {
		return err
	}
	return enc.flush()
}

// WriteItem writes `item` as a sequence item under `ts`.
func (enc *Encoder) WriteItem(item *dicom.DataSet, ts *transfer.Syntax) error {
	if err := enc.SetTransferSyntax(ts); err != nil {
		return err
	}
	if err := enc.writeItem(item, nil); err != nil {
		return err
	}
	return enc.flush()
}
