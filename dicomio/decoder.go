// Package dicomio translates between encoded DICOM streams and `dicom.DataSet` trees.
package dicomio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/b71729/bin"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/dicom"
	"github.com/b71729/dcmcodec/dictionary"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/transfer"
	"github.com/b71729/dcmcodec/vr"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

const (
	preambleLength   = 128
	zlibHeader       = 0x789C
	undefinedLength  = 0xFFFFFFFF
	minReadBufferLen = 4096
)

var dicmTestString = []byte("DICM")

/*
===============================================================================
    Handler
===============================================================================
*/

// Handler is invoked by the `Decoder` once per element, item or delimiter
// header. The header is available through the `Decoder` accessors; the
// value has not been consumed yet. Returning false stops decoding.
type Handler interface {
	HandleValue(d *Decoder) (bool, error)
}

// HandlerFunc adapts a function to the `Handler` interface.
type HandlerFunc func(d *Decoder) (bool, error)

// HandleValue calls f(d).
func (f HandlerFunc) HandleValue(d *Decoder) (bool, error) {
	return f(d)
}

// DefaultHandler reads every value into the data set being decoded. A decoder
// without a handler behaves the same way.
var DefaultHandler Handler = HandlerFunc((*Decoder).ReadValue)

// StopAtTag returns a handler that stops decoding at the first top-level
// element whose tag is `t` or greater. That element's value is left unread.
func StopAtTag(t tag.Tag) Handler {
	return HandlerFunc(func(d *Decoder) (bool, error) {
		if d.Level() == 0 && d.Tag().HasVR() && d.Tag() >= t {
			return false, nil
		}
		return d.ReadValue()
	})
}

/*
===============================================================================
    Decoder
===============================================================================
*/

// Decoder reads DICOM data sets from a byte stream.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	br       *bufio.Reader
	r        bin.Reader
	base     int64 // stream offset at which `r` was last reset
	inflater io.ReadCloser
	opts     DecoderOptions
	dict     *dictionary.Registry
	syntaxes *transfer.Registry
	handler  Handler

	detected     bool
	ts           *transfer.Syntax
	preamble     []byte
	expectFmiEnd bool
	stopAtFmiEnd bool
	fmiEnd       int64
	stopped      bool

	tagPos  int64
	tag     tag.Tag
	vr      vr.VR
	length  int64 // -1 when undefined
	sqStack []*dicom.Element
	current *dicom.DataSet
	header  [4]byte
}

// NewDecoder returns a decoder reading from `src`.
func NewDecoder(src io.Reader, opts DecoderOptions) *Decoder {
	size := opts.BufferSize
	if size < minReadBufferLen {
		size = minReadBufferLen
	}
	d := &Decoder{
		br:       bufio.NewReaderSize(src, size),
		opts:     opts,
		dict:     opts.Dictionary,
		syntaxes: opts.TransferSyntaxes,
		fmiEnd:   -1,
	}
	if d.dict == nil {
		d.dict = dictionary.Default()
	}
	if d.syntaxes == nil {
		d.syntaxes = transfer.Default()
	}
	d.r = bin.NewReader(d.br, binary.LittleEndian)
	return d
}

// SetHandler installs `h`; nil restores the default of reading every value.
func (d *Decoder) SetHandler(h Handler) {
	d.handler = h
}

func (d *Decoder) handleValue() (bool, error) {
	if d.handler == nil {
		return d.ReadValue()
	}
	return d.handler.HandleValue(d)
}

// Tag returns the tag of the current header.
func (d *Decoder) Tag() tag.Tag {
	return d.tag
}

// VR returns the VR of the current header. It is vr.None for items and delimiters.
func (d *Decoder) VR() vr.VR {
	return d.vr
}

// ValueLength returns the value length of the current header, or -1 if undefined.
func (d *Decoder) ValueLength() int64 {
	return d.length
}

// TagPosition returns the stream offset of the current header.
func (d *Decoder) TagPosition() int64 {
	return d.tagPos
}

// StreamPosition returns the number of bytes consumed, counted after inflation.
func (d *Decoder) StreamPosition() int64 {
	return d.base + d.r.GetPosition()
}

// Level returns the sequence nesting depth of the current header.
func (d *Decoder) Level() int {
	return len(d.sqStack)
}

// TransferSyntax returns the syntax the stream is currently decoded with.
// It is nil until decoding has started.
func (d *Decoder) TransferSyntax() *transfer.Syntax {
	return d.ts
}

// DataSet returns the data set receiving the current element.
func (d *Decoder) DataSet() *dicom.DataSet {
	return d.current
}

// Sequence returns the innermost open sequence or fragments element, or nil at the top level.
func (d *Decoder) Sequence() *dicom.Element {
	if len(d.sqStack) == 0 {
		return nil
	}
	return d.sqStack[len(d.sqStack)-1]
}

// Preamble returns the 128-byte file preamble, or nil if the stream had none.
func (d *Decoder) Preamble() []byte {
	return d.preamble
}

// FileMetaEnd returns the stream offset at which the file meta information
// ends, as declared by (0002,0000); -1 if not known.
func (d *Decoder) FileMetaEnd() int64 {
	return d.fmiEnd
}

// Close releases the inflater, if any. The source is not closed.
func (d *Decoder) Close() error {
	if d.inflater == nil {
		return nil
	}
	err := d.inflater.Close()
	d.inflater = nil
	return err
}

/*
===============================================================================
    Detection
===============================================================================
*/

func (d *Decoder) vrOf(t tag.Tag) vr.VR {
	creator := ""
	if d.current != nil {
		creator = d.current.PrivateCreator(t)
	}
	return d.dict.PrivateVROf(creator, t)
}

// setSyntax changes the active syntax without touching the source.
func (d *Decoder) setSyntax(ts *transfer.Syntax) {
	d.ts = ts
	d.r.SetByteOrder(ts.ByteOrder())
}

// detect determines the initial transfer syntax and consumes the preamble, if any.
func (d *Decoder) detect() error {
	if d.detected {
		return nil
	}
	d.detected = true
	if d.opts.TransferSyntax != nil {
		return d.switchSyntax(d.opts.TransferSyntax)
	}
	if b, err := d.br.Peek(preambleLength + len(dicmTestString)); err == nil && bytes.Equal(b[preambleLength:], dicmTestString) {
		d.preamble = make([]byte, preambleLength)
		if err := d.r.ReadBytes(d.preamble); err != nil {
			return err
		}
		if err := d.r.Discard(int64(len(dicmTestString))); err != nil {
			return err
		}
		d.setSyntax(transfer.ExplicitVRLittleEndian)
		d.expectFmiEnd = true
		core.Log().Debugf("found preamble; reading file meta information as %s", d.ts)
		return nil
	}
	b, err := d.br.Peek(6)
	if err != nil {
		return CorruptStreamError(0, "%w: %v", ErrNotDicom, err)
	}
	code := binary.BigEndian.Uint16(b[4:6])
	le := tag.New(binary.LittleEndian.Uint16(b[0:2]), binary.LittleEndian.Uint16(b[2:4]))
	be := tag.New(binary.BigEndian.Uint16(b[0:2]), binary.BigEndian.Uint16(b[2:4]))
	switch {
	case d.dict.VROf(le) != vr.UN:
		d.expectFmiEnd = le.Group() == 0x0002
		if d.dict.VROf(le).Code() == code {
			d.setSyntax(transfer.ExplicitVRLittleEndian)
		} else {
			d.setSyntax(transfer.ImplicitVRLittleEndian)
		}
	case d.dict.VROf(be) != vr.UN:
		d.expectFmiEnd = be.Group() == 0x0002
		if d.dict.VROf(be).Code() == code {
			d.setSyntax(transfer.ExplicitVRBigEndian)
		} else {
			d.setSyntax(transfer.ImplicitVRBigEndian)
		}
	default:
		return CorruptStreamError(0, "%w: no known tag in % X", ErrNotDicom, b)
	}
	core.Log().Debugf("determined encoding: %s (file meta information: %v)", d.ts, d.expectFmiEnd)
	return nil
}

// switchSyntax changes the active syntax, wrapping the source in an
// inflater when `ts` is deflated.
func (d *Decoder) switchSyntax(ts *transfer.Syntax) error {
	if d.ts != nil && d.ts.Deflated {
		return CorruptStreamError(d.StreamPosition(), "cannot switch from deflated %s to %s", d.ts.UID, ts.UID)
	}
	if ts.Deflated {
		var src io.ReadCloser
		if b, err := d.br.Peek(2); err == nil && binary.BigEndian.Uint16(b) == zlibHeader {
			core.Log().Warn("Deflated DICOM Stream with ZLIB Header")
			if src, err = zlib.NewReader(d.br); err != nil {
				return CorruptStreamError(d.StreamPosition(), "bad zlib header: %w", err)
			}
		} else {
			src = flate.NewReader(d.br)
		}
		d.base = d.StreamPosition()
		d.inflater = src
		d.r.Reset(src, ts.ByteOrder())
	}
	d.setSyntax(ts)
	core.Log().Debugf("switched transfer syntax to %s [%s]", ts.Name, ts.UID)
	return nil
}

// anomaly reports a recoverable fault. It is an error only in strict mode.
func (d *Decoder) anomaly(format string, a ...interface{}) error {
	if d.opts.Strict {
		return CorruptStreamError(d.tagPos, format, a...)
	}
	core.Log().Warnf(format+" at offset %d", append(a, d.tagPos)...)
	return nil
}

// endFileMeta switches to the syntax named by (0002,0010).
func (d *Decoder) endFileMeta() error {
	d.expectFmiEnd = false
	uid, _ := d.current.GetString(tag.TransferSyntaxUID, "")
	if uid == "" {
		return d.anomaly("missing (0002,0010) Transfer Syntax UID in File Meta Information")
	}
	return d.switchSyntax(d.syntaxes.ValueOf(uid))
}

// leavesFileMeta peeks at the next group to find file meta information
// that lacks a correct (0002,0000) group length.
func (d *Decoder) leavesFileMeta() bool {
	b, err := d.br.Peek(2)
	return err == nil && d.ts.ByteOrder().Uint16(b) != 0x0002
}

/*
===============================================================================
    Parsing
===============================================================================
*/

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// readHeader reads the next tag, VR and length.
func (d *Decoder) readHeader() error {
	d.tagPos = d.StreamPosition()
	var group, element uint16
	if err := d.r.ReadUint16(&group); err != nil {
		return err
	}
	if err := d.r.ReadUint16(&element); err != nil {
		return err
	}
	d.tag = tag.New(group, element)
	d.vr = vr.None
	if d.tag.HasVR() && d.ts.ExplicitVR {
		if err := d.r.ReadBytes(d.header[:2]); err != nil {
			return err
		}
		code := binary.BigEndian.Uint16(d.header[:2])
		v, err := vr.FromCode(code)
		if err != nil {
			v = d.vrOf(d.tag)
			if err := d.anomaly("unknown VR code 0x%04X for %s, assuming %s", code, d.tag, v); err != nil {
				return err
			}
		}
		d.vr = v
		// "??" carries a short header despite resolving to UN
		if code == vr.SiemensUN {
			core.Log().Infof("Replace invalid VR '??' of %s by 'UN'", d.tag)
		}
		if v.HeaderLength() == 8 || code == vr.SiemensUN {
			var l16 uint16
			if err := d.r.ReadUint16(&l16); err != nil {
				return err
			}
			d.length = int64(l16)
			return nil
		}
		if err := d.r.Discard(2); err != nil {
			return err
		}
	}
	var l32 uint32
	if err := d.r.ReadUint32(&l32); err != nil {
		return err
	}
	if l32 == undefinedLength {
		d.length = -1
	} else {
		d.length = int64(l32)
	}
	return nil
}

// implicitSyntax is the syntax a UN value or an implicit VR element is read
// with: implicit VR, in the stream's byte order when that is already implicit.
func implicitSyntax(ts *transfer.Syntax) *transfer.Syntax {
	if !ts.ExplicitVR {
		return ts
	}
	return transfer.ImplicitVRLittleEndian
}

// parse reads headers until `length` bytes are consumed or `endTag` is read.
// A negative `length` is undefined.
func (d *Decoder) parse(length int64, endTag tag.Tag) error {
	end := int64(math.MaxInt64)
	if length >= 0 {
		end = d.StreamPosition() + length
	}
	var last tag.Tag
	for !d.stopped && last != endTag && d.StreamPosition() < end {
		if d.expectFmiEnd && len(d.sqStack) == 0 && d.leavesFileMeta() {
			if err := d.anomaly("missing or wrong (0002,0000) Group Length of File Meta Information"); err != nil {
				return err
			}
			if err := d.endFileMeta(); err != nil {
				return err
			}
			if d.stopAtFmiEnd {
				return nil
			}
		}
		if err := d.readHeader(); err != nil {
			if !isEOF(err) || length >= 0 {
				return CorruptStreamError(d.tagPos, "reading header: %w", err)
			}
			if len(d.sqStack) > 0 {
				if err := d.anomaly("unexpected EOF, treating as %s", endTag); err != nil {
					return err
				}
			}
			d.tag, d.vr, d.length = endTag, vr.None, 0
		}
		last = d.tag
		prev := d.ts
		if d.tag.HasVR() && (d.vr == vr.None || d.vr == vr.UN) {
			d.setSyntax(implicitSyntax(prev))
			d.vr = d.vrOf(d.tag)
		}
		ok, err := d.handleValue()
		d.setSyntax(prev)
		if err != nil {
			return err
		}
		if !ok {
			d.stopped = true
		}
		if d.expectFmiEnd && d.StreamPosition() == d.fmiEnd {
			if err := d.endFileMeta(); err != nil {
				return err
			}
			if d.stopAtFmiEnd {
				return nil
			}
		}
	}
	return nil
}

// ReadValue consumes the value of the current header into the current data set.
// It is the behaviour of `DefaultHandler`.
func (d *Decoder) ReadValue() (bool, error) {
	switch d.tag {
	case tag.Item:
		return true, d.readItemValue()
	case tag.ItemDelimitationItem, tag.SequenceDelimitationItem:
		if d.length > 0 {
			if err := d.anomaly("%s with non-zero length %d, skipping", d.tag, d.length); err != nil {
				return false, err
			}
			return true, d.Skip(d.length)
		}
		return true, nil
	}
	if d.length == -1 || d.vr == vr.SQ {
		var e *dicom.Element
		if d.vr == vr.SQ {
			e = dicom.NewSequence(d.tag, 0)
		} else {
			e = dicom.NewFragments(d.tag, d.vr, d.ts.BigEndian, 0)
		}
		d.current.Put(e)
		return true, d.readItems(e, d.length)
	}
	b, err := d.ReadBytes(d.length)
	if err != nil {
		return false, err
	}
	e := dicom.NewElement(d.tag, d.vr, d.ts.BigEndian, b)
	if d.opts.Intern != nil {
		e = d.opts.Intern.Intern(e)
	}
	d.current.Put(e)
	if d.tag == tag.FileMetaInformationGroupLength {
		n, err := e.GetInt()
		if err != nil {
			return false, CorruptStreamError(d.tagPos, "bad %s: %w", d.tag, err)
		}
		d.fmiEnd = d.StreamPosition() + int64(n)
	}
	return true, nil
}

func (d *Decoder) readItems(e *dicom.Element, length int64) error {
	if d.opts.MaxDepth > 0 && len(d.sqStack) >= d.opts.MaxDepth {
		return CorruptStreamError(d.tagPos, "%s exceeds maximum sequence depth %d", e.Tag(), d.opts.MaxDepth)
	}
	d.sqStack = append(d.sqStack, e)
	defer func() {
		d.sqStack = d.sqStack[:len(d.sqStack)-1]
	}()
	return d.parse(length, tag.SequenceDelimitationItem)
}

// reparseUnknown replaces a UN fragments element with a sequence whose
// items are its fragments decoded as implicit VR little endian.
func (d *Decoder) reparseUnknown(un *dicom.Element) (*dicom.Element, error) {
	sq := dicom.NewSequence(un.Tag(), un.CountItems())
	d.current.Put(sq)
	opts := d.opts
	opts.TransferSyntax = transfer.ImplicitVRLittleEndian
	opts.BufferSize = 0
	for _, b := range un.Fragments() {
		item, err := sq.AddItem(dicom.NewItem())
		if err != nil {
			return nil, err
		}
		sub := NewDecoder(bytes.NewReader(b), opts)
		if err := sub.ReadDataSetInto(item, int64(len(b))); err != nil {
			return nil, err
		}
	}
	d.sqStack[len(d.sqStack)-1] = sq
	return sq, nil
}

func (d *Decoder) readItemValue() error {
	sq := d.Sequence()
	if sq == nil {
		return CorruptStreamError(d.tagPos, "%s outside of a sequence", d.tag)
	}
	if d.length == -1 {
		if sq.VR() == vr.UN {
			var err error
			if sq, err = d.reparseUnknown(sq); err != nil {
				return err
			}
		}
		if sq.VR() != vr.SQ {
			return CorruptStreamError(d.tagPos, "%s %s contains item with unknown length", sq.Tag(), sq.VR())
		}
	}
	if sq.VR() != vr.SQ {
		b, err := d.ReadBytes(d.length)
		if err != nil {
			return err
		}
		return sq.AddFragment(b)
	}
	item, err := sq.AddItem(dicom.NewItem())
	if err != nil {
		return err
	}
	item.SetItemPosition(d.tagPos)
	return d.readDataSet(item, d.length)
}

// readDataSet parses `length` bytes, or up to an item delimiter, into `dest`.
func (d *Decoder) readDataSet(dest *dicom.DataSet, length int64) error {
	prev := d.current
	d.current = dest
	defer func() {
		d.current = prev
	}()
	return d.parse(length, tag.ItemDelimitationItem)
}

// ReadBytes reads a value of `n` bytes. The initial allocation is capped by
// `DecoderOptions.AllocateLimit` and doubled until `n` bytes are read.
func (d *Decoder) ReadBytes(n int64) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if n < 0 {
		return nil, CorruptStreamError(d.tagPos, "cannot read value of undefined length for %s", d.tag)
	}
	alloc := n
	if limit := d.opts.AllocateLimit; limit > 0 && limit < alloc {
		alloc = limit
	}
	buf := make([]byte, alloc)
	if err := d.r.ReadBytes(buf); err != nil {
		return nil, CorruptStreamError(d.tagPos, "reading %d bytes of %s: %w", n, d.tag, err)
	}
	for int64(len(buf)) < n {
		grow := int64(len(buf)) << 1
		if grow > n {
			grow = n
		}
		next := make([]byte, grow)
		copy(next, buf)
		if err := d.r.ReadBytes(next[len(buf):]); err != nil {
			return nil, CorruptStreamError(d.tagPos, "reading %d bytes of %s: %w", n, d.tag, err)
		}
		buf = next
	}
	return buf, nil
}

// Skip discards `n` bytes.
func (d *Decoder) Skip(n int64) error {
	if err := d.r.Discard(n); err != nil {
		return CorruptStreamError(d.tagPos, "skipping %d bytes: %w", n, err)
	}
	return nil
}

/*
===============================================================================
    Entry points
===============================================================================
*/

func (d *Decoder) start() error {
	d.stopped = false
	return d.detect()
}

// ReadFileMetaInformation reads the file meta information group.
// It returns nil if the stream does not start with one.
func (d *Decoder) ReadFileMetaInformation() (*dicom.DataSet, error) {
	if err := d.start(); err != nil {
		return nil, err
	}
	if !d.expectFmiEnd {
		return nil, nil
	}
	fmi := dicom.NewDataSet(8)
	d.stopAtFmiEnd = true
	defer func() {
		d.stopAtFmiEnd = false
	}()
	if err := d.readDataSet(fmi, -1); err != nil {
		return fmi, err
	}
	return fmi, nil
}

// ReadDataSet reads the remainder of the stream, including any file meta
// information not consumed by `ReadFileMetaInformation`.
func (d *Decoder) ReadDataSet() (*dicom.DataSet, error) {
	ds := dicom.NewDataSet(0)
	return ds, d.ReadDataSetInto(ds, -1)
}

// ReadDataSetInto reads `length` bytes, or up to an item delimiter or the
// end of the stream if `length` is negative, into `dest`.
func (d *Decoder) ReadDataSetInto(dest *dicom.DataSet, length int64) error {
	if err := d.start(); err != nil {
		return err
	}
	return d.readDataSet(dest, length)
}

// ReadItem reads one item header and its content into `dest`.
func (d *Decoder) ReadItem(dest *dicom.DataSet) error {
	if err := d.start(); err != nil {
		return err
	}
	dest.SetItemPosition(d.StreamPosition())
	if err := d.readHeader(); err != nil {
		return CorruptStreamError(d.tagPos, "reading item header: %w", err)
	}
	if d.tag != tag.Item {
		return CorruptStreamError(d.tagPos, "expected %s but read %s", tag.Item, d.tag)
	}
	return d.readDataSet(dest, d.length)
}
