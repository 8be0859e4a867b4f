package dicomio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/b71729/dcmcodec/dicom"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/transfer"
	"github.com/b71729/dcmcodec/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
===============================================================================
    Utilities
===============================================================================
*/

// explicit VR little endian: (0008,0060) CS "CT", (0010,0010) PN "Doe^John"
var modalityAndNameBytes = []byte{
	0x08, 0x00, 0x60, 0x00, 0x43, 0x53, 0x02, 0x00, 0x43, 0x54,
	0x10, 0x00, 0x10, 0x00, 0x50, 0x4E, 0x08, 0x00, 0x44, 0x6F, 0x65, 0x5E, 0x4A, 0x6F, 0x68, 0x6E,
}

// explicit VR little endian: (0008,1140) SQ of undefined length holding one
// undefined length item with (0008,1150) UI "1.2.3"
var undefinedSequenceBytes = []byte{
	0x08, 0x00, 0x40, 0x11, 0x53, 0x51, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, // SQ, undefined
	0xFE, 0xFF, 0x00, 0xE0, 0xFF, 0xFF, 0xFF, 0xFF, // item, undefined
	0x08, 0x00, 0x50, 0x11, 0x55, 0x49, 0x06, 0x00, 0x31, 0x2E, 0x32, 0x2E, 0x33, 0x00, // UI "1.2.3\0"
	0xFE, 0xFF, 0x0D, 0xE0, 0x00, 0x00, 0x00, 0x00, // item delimiter
	0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00, // sequence delimiter
}

// as `undefinedSequenceBytes`, with defined sequence and item lengths
var definedSequenceBytes = []byte{
	0x08, 0x00, 0x40, 0x11, 0x53, 0x51, 0x00, 0x00, 0x16, 0x00, 0x00, 0x00, // SQ, 22 bytes
	0xFE, 0xFF, 0x00, 0xE0, 0x0E, 0x00, 0x00, 0x00, // item, 14 bytes
	0x08, 0x00, 0x50, 0x11, 0x55, 0x49, 0x06, 0x00, 0x31, 0x2E, 0x32, 0x2E, 0x33, 0x00,
}

// implicit VR little endian: (0008,0060) "CT"
var implicitModalityBytes = []byte{0x08, 0x00, 0x60, 0x00, 0x02, 0x00, 0x00, 0x00, 0x43, 0x54}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// fileMeta returns a preamble, "DICM" and file meta information naming `uid`.
// The (0002,0000) group length is omitted if `groupLength` is false.
func fileMeta(uid string, groupLength bool) []byte {
	value := []byte(uid)
	if len(value)&1 != 0 {
		value = append(value, 0)
	}
	tsuid := concat([]byte{0x02, 0x00, 0x10, 0x00, 0x55, 0x49, byte(len(value)), 0x00}, value)
	out := concat(make([]byte, 128), []byte("DICM"))
	if groupLength {
		out = append(out, 0x02, 0x00, 0x00, 0x00, 0x55, 0x4C, 0x04, 0x00, byte(len(tsuid)), 0x00, 0x00, 0x00)
	}
	return append(out, tsuid...)
}

func decode(t *testing.T, b []byte, opts DecoderOptions) *dicom.DataSet {
	t.Helper()
	ds, err := NewDecoder(bytes.NewReader(b), opts).ReadDataSet()
	require.NoError(t, err)
	return ds
}

func stringOf(t *testing.T, o dicom.Object, tg tag.Tag) string {
	t.Helper()
	s, err := dicom.GetString(o, tg, "")
	require.NoError(t, err)
	return s
}

func strict() DecoderOptions {
	opts := DefaultDecoderOptions()
	opts.Strict = true
	return opts
}

/*
===============================================================================
    Detection
===============================================================================
*/

func TestDecodeExplicitLittleEndian(t *testing.T) {
	t.Parallel()
	d := NewDecoder(bytes.NewReader(modalityAndNameBytes), DefaultDecoderOptions())
	ds, err := d.ReadDataSet()
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "CT", stringOf(t, ds, tag.Modality))
	assert.Equal(t, "Doe^John", stringOf(t, ds, tag.PatientName))
	assert.Equal(t, vr.PN, ds.Get(tag.PatientName).VR())
	assert.Same(t, transfer.ExplicitVRLittleEndian, d.TransferSyntax())
	assert.Nil(t, d.Preamble())
	assert.Equal(t, int64(len(modalityAndNameBytes)), d.StreamPosition())
}

func TestDecodeImplicitLittleEndian(t *testing.T) {
	t.Parallel()
	d := NewDecoder(bytes.NewReader(implicitModalityBytes), DefaultDecoderOptions())
	ds, err := d.ReadDataSet()
	require.NoError(t, err)
	assert.Same(t, transfer.ImplicitVRLittleEndian, d.TransferSyntax())
	assert.Equal(t, vr.CS, ds.Get(tag.Modality).VR())
	assert.Equal(t, "CT", stringOf(t, ds, tag.Modality))
}

func TestDecodeExplicitBigEndian(t *testing.T) {
	t.Parallel()
	b := []byte{0x00, 0x28, 0x00, 0x10, 0x55, 0x53, 0x00, 0x02, 0x02, 0x00} // (0028,0010) US 512
	d := NewDecoder(bytes.NewReader(b), DefaultDecoderOptions())
	ds, err := d.ReadDataSet()
	require.NoError(t, err)
	assert.Same(t, transfer.ExplicitVRBigEndian, d.TransferSyntax())
	rows := ds.Get(tag.Rows)
	require.NotNil(t, rows)
	assert.True(t, rows.BigEndian())
	n, err := rows.GetInt()
	require.NoError(t, err)
	assert.Equal(t, 512, n)
}

func TestDecodeRejectsUnknownStream(t *testing.T) {
	t.Parallel()
	for _, b := range [][]byte{nil, {0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}} {
		_, err := NewDecoder(bytes.NewReader(b), DefaultDecoderOptions()).ReadDataSet()
		assert.True(t, errors.Is(err, ErrNotDicom), "% X", b)
	}
}

func TestGivenTransferSyntaxSkipsDetection(t *testing.T) {
	t.Parallel()
	opts := DefaultDecoderOptions()
	opts.TransferSyntax = transfer.ImplicitVRLittleEndian
	ds := decode(t, implicitModalityBytes, opts)
	assert.Equal(t, "CT", stringOf(t, ds, tag.Modality))
}

/*
===============================================================================
    File Meta Information
===============================================================================
*/

func TestFileMetaInformationSwitchesTransferSyntax(t *testing.T) {
	t.Parallel()
	b := concat(fileMeta(transfer.ImplicitVRLittleEndian.UID, true), implicitModalityBytes)
	d := NewDecoder(bytes.NewReader(b), DefaultDecoderOptions())

	fmi, err := d.ReadFileMetaInformation()
	require.NoError(t, err)
	require.NotNil(t, fmi)
	assert.Len(t, d.Preamble(), 128)
	assert.Equal(t, []tag.Tag{tag.FileMetaInformationGroupLength, tag.TransferSyntaxUID}, dicom.Tags(fmi))
	assert.Equal(t, transfer.ImplicitVRLittleEndian.UID, stringOf(t, fmi, tag.TransferSyntaxUID))
	assert.Equal(t, int64(132+12+26), d.FileMetaEnd())
	assert.Equal(t, d.FileMetaEnd(), d.StreamPosition())
	assert.Same(t, transfer.ImplicitVRLittleEndian, d.TransferSyntax())

	ds, err := d.ReadDataSet()
	require.NoError(t, err)
	assert.Equal(t, []tag.Tag{tag.Modality}, dicom.Tags(ds))
	assert.Equal(t, "CT", stringOf(t, ds, tag.Modality))
}

func TestReadDataSetIncludesFileMetaInformation(t *testing.T) {
	t.Parallel()
	b := concat(fileMeta(transfer.ImplicitVRLittleEndian.UID, true), implicitModalityBytes)
	ds := decode(t, b, DefaultDecoderOptions())
	assert.Equal(t, []tag.Tag{tag.FileMetaInformationGroupLength, tag.TransferSyntaxUID, tag.Modality}, dicom.Tags(ds))
}

func TestMissingFileMetaGroupLength(t *testing.T) {
	t.Parallel()
	b := concat(fileMeta(transfer.ImplicitVRLittleEndian.UID, false), implicitModalityBytes)
	d := NewDecoder(bytes.NewReader(b), DefaultDecoderOptions())
	fmi, err := d.ReadFileMetaInformation()
	require.NoError(t, err)
	assert.Equal(t, []tag.Tag{tag.TransferSyntaxUID}, dicom.Tags(fmi))
	assert.Equal(t, int64(-1), d.FileMetaEnd())
	ds, err := d.ReadDataSet()
	require.NoError(t, err)
	assert.Equal(t, "CT", stringOf(t, ds, tag.Modality))

	_, err = NewDecoder(bytes.NewReader(b), strict()).ReadFileMetaInformation()
	var corrupt *CorruptStream
	assert.True(t, errors.As(err, &corrupt))
}

func TestNoFileMetaInformation(t *testing.T) {
	t.Parallel()
	d := NewDecoder(bytes.NewReader(modalityAndNameBytes), DefaultDecoderOptions())
	fmi, err := d.ReadFileMetaInformation()
	require.NoError(t, err)
	assert.Nil(t, fmi)
	assert.Equal(t, int64(0), d.StreamPosition())
}

/*
===============================================================================
    Sequences
===============================================================================
*/

func TestDecodeUndefinedLengthSequence(t *testing.T) {
	t.Parallel()
	ds := decode(t, undefinedSequenceBytes, DefaultDecoderOptions())
	sq := ds.Get(tag.ReferencedImageSequence)
	require.NotNil(t, sq)
	require.Equal(t, 1, sq.CountItems())
	item := sq.Item(0)
	assert.Equal(t, "1.2.3", stringOf(t, item, tag.ReferencedSOPClassUID))
	assert.Same(t, ds, item.Parent())
	assert.Equal(t, int64(12), item.ItemPosition())
}

func TestDecodeDefinedLengthSequence(t *testing.T) {
	t.Parallel()
	ds := decode(t, definedSequenceBytes, DefaultDecoderOptions())
	item := ds.GetItem(tag.ReferencedImageSequence, 0)
	require.NotNil(t, item)
	assert.Equal(t, "1.2.3", stringOf(t, item, tag.ReferencedSOPClassUID))
}

// explicit VR little endian: a private UN element of undefined length whose
// value is two implicit VR items
var unknownSequenceBytes = []byte{
	0x09, 0x00, 0x10, 0x00, 0x4C, 0x4F, 0x04, 0x00, 0x41, 0x43, 0x4D, 0x45, // (0009,0010) LO "ACME"
	0x09, 0x00, 0x01, 0x10, 0x55, 0x4E, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, // (0009,1001) UN, undefined
	0xFE, 0xFF, 0x00, 0xE0, 0x0A, 0x00, 0x00, 0x00, // item, 10 bytes
	0x10, 0x00, 0x20, 0x00, 0x02, 0x00, 0x00, 0x00, 0x50, 0x31, // implicit (0010,0020) "P1"
	0xFE, 0xFF, 0x00, 0xE0, 0xFF, 0xFF, 0xFF, 0xFF, // item, undefined
	0x10, 0x00, 0x20, 0x00, 0x02, 0x00, 0x00, 0x00, 0x50, 0x32, // implicit (0010,0020) "P2"
	0xFE, 0xFF, 0x0D, 0xE0, 0x00, 0x00, 0x00, 0x00,
	0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00,
}

func TestUnknownSequenceIsReparsed(t *testing.T) {
	t.Parallel()
	ds := decode(t, unknownSequenceBytes, DefaultDecoderOptions())
	sq := ds.Get(0x00091001)
	require.NotNil(t, sq)
	assert.Equal(t, vr.SQ, sq.VR())
	require.Equal(t, 2, sq.CountItems())
	assert.Equal(t, "P1", stringOf(t, sq.Item(0), tag.PatientID))
	assert.Equal(t, "P2", stringOf(t, sq.Item(1), tag.PatientID))
	assert.Same(t, ds, sq.Item(0).Parent())
}

func TestEncapsulatedFragments(t *testing.T) {
	t.Parallel()
	b := []byte{
		0xE0, 0x7F, 0x10, 0x00, 0x4F, 0x42, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, // (7FE0,0010) OB, undefined
		0xFE, 0xFF, 0x00, 0xE0, 0x00, 0x00, 0x00, 0x00, // empty offset table
		0xFE, 0xFF, 0x00, 0xE0, 0x04, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03, 0x04,
		0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00,
	}
	opts := DefaultDecoderOptions()
	opts.TransferSyntax = transfer.JPEGBaseline
	ds := decode(t, b, opts)
	px := ds.Get(tag.PixelData)
	require.NotNil(t, px)
	assert.True(t, px.HasFragments())
	assert.Equal(t, vr.OB, px.VR())
	assert.Equal(t, [][]byte{{}, {1, 2, 3, 4}}, px.Fragments())
}

func TestItemWithUnknownLengthInFragments(t *testing.T) {
	t.Parallel()
	b := []byte{
		0xE0, 0x7F, 0x10, 0x00, 0x4F, 0x42, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFE, 0xFF, 0x00, 0xE0, 0xFF, 0xFF, 0xFF, 0xFF,
	}
	opts := DefaultDecoderOptions()
	opts.TransferSyntax = transfer.ExplicitVRLittleEndian
	_, err := NewDecoder(bytes.NewReader(b), opts).ReadDataSet()
	var corrupt *CorruptStream
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, int64(12), corrupt.Position)
}

func TestMaxDepth(t *testing.T) {
	t.Parallel()
	b := []byte{
		0x08, 0x00, 0x40, 0x11, 0x53, 0x51, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFE, 0xFF, 0x00, 0xE0, 0xFF, 0xFF, 0xFF, 0xFF,
		0x08, 0x00, 0x40, 0x11, 0x53, 0x51, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, // nested SQ
		0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00,
		0xFE, 0xFF, 0x0D, 0xE0, 0x00, 0x00, 0x00, 0x00,
		0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00,
	}
	decode(t, b, DefaultDecoderOptions())

	opts := DefaultDecoderOptions()
	opts.MaxDepth = 1
	_, err := NewDecoder(bytes.NewReader(b), opts).ReadDataSet()
	var corrupt *CorruptStream
	assert.True(t, errors.As(err, &corrupt))
}

/*
===============================================================================
    Fault tolerance
===============================================================================
*/

func TestEOFTreatedAsDelimiter(t *testing.T) {
	t.Parallel()
	truncated := undefinedSequenceBytes[:len(undefinedSequenceBytes)-16]
	ds := decode(t, truncated, DefaultDecoderOptions())
	item := ds.GetItem(tag.ReferencedImageSequence, 0)
	require.NotNil(t, item)
	assert.Equal(t, "1.2.3", stringOf(t, item, tag.ReferencedSOPClassUID))

	_, err := NewDecoder(bytes.NewReader(truncated), strict()).ReadDataSet()
	assert.Error(t, err)
}

func TestEOFWithinDefinedLengthIsFatal(t *testing.T) {
	t.Parallel()
	b := []byte{0x08, 0x00, 0x60, 0x00, 0x43, 0x53, 0x04, 0x00, 0x43, 0x54} // claims 4 bytes, holds 2
	_, err := NewDecoder(bytes.NewReader(b), DefaultDecoderOptions()).ReadDataSet()
	var corrupt *CorruptStream
	require.True(t, errors.As(err, &corrupt))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	_, err = NewDecoder(bytes.NewReader(definedSequenceBytes[:30]), DefaultDecoderOptions()).ReadDataSet()
	assert.Error(t, err)
}

func TestDelimiterWithLengthIsSkipped(t *testing.T) {
	t.Parallel()
	b := []byte{
		0x08, 0x00, 0x40, 0x11, 0x53, 0x51, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFE, 0xFF, 0x00, 0xE0, 0xFF, 0xFF, 0xFF, 0xFF,
		0x08, 0x00, 0x50, 0x11, 0x55, 0x49, 0x06, 0x00, 0x31, 0x2E, 0x32, 0x2E, 0x33, 0x00,
		0xFE, 0xFF, 0x0D, 0xE0, 0x04, 0x00, 0x00, 0x00, 0xDE, 0xAD, 0xBE, 0xEF, // item delimiter, 4 bytes
		0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00,
		0x08, 0x00, 0x60, 0x11, 0x43, 0x53, 0x02, 0x00, 0x43, 0x54,
	}
	ds := decode(t, b, DefaultDecoderOptions())
	assert.Equal(t, 1, ds.Get(tag.ReferencedImageSequence).CountItems())
	assert.True(t, ds.Contains(0x00081160))

	_, err := NewDecoder(bytes.NewReader(b), strict()).ReadDataSet()
	assert.Error(t, err)
}

func TestUnknownVRFallsBackToDictionary(t *testing.T) {
	t.Parallel()
	b := concat(
		modalityAndNameBytes[:10],
		[]byte{0x10, 0x00, 0x10, 0x00, 0x5A, 0x5A, 0x08, 0x00}, // (0010,0010) "ZZ"
		[]byte("Doe^John"),
	)
	ds := decode(t, b, DefaultDecoderOptions())
	assert.Equal(t, vr.PN, ds.Get(tag.PatientName).VR())
	assert.Equal(t, "Doe^John", stringOf(t, ds, tag.PatientName))

	_, err := NewDecoder(bytes.NewReader(b), strict()).ReadDataSet()
	assert.Error(t, err)
}

func TestSiemensUnknownVR(t *testing.T) {
	t.Parallel()
	b := concat(
		modalityAndNameBytes[:10],
		[]byte{0x10, 0x00, 0x10, 0x00, 0x3F, 0x3F, 0x08, 0x00}, // (0010,0010) "??", short header
		[]byte("Doe^John"),
	)
	ds := decode(t, b, DefaultDecoderOptions())
	assert.Equal(t, vr.PN, ds.Get(tag.PatientName).VR())
	assert.Equal(t, "Doe^John", stringOf(t, ds, tag.PatientName))
}

func TestAllocateLimitDoubling(t *testing.T) {
	t.Parallel()
	value := []byte("0123456789ABCDEFGHIJ")
	b := concat([]byte{0x10, 0x00, 0x20, 0x00, 0x4C, 0x4F, byte(len(value)), 0x00}, value)
	for _, limit := range []int64{1, 3, 64, -1} {
		opts := DefaultDecoderOptions()
		opts.AllocateLimit = limit
		ds := decode(t, b, opts)
		assert.Equal(t, value, ds.Get(tag.PatientID).Bytes(), "limit %d", limit)
	}
}

/*
===============================================================================
    Handlers
===============================================================================
*/

func TestStopAtTag(t *testing.T) {
	t.Parallel()
	d := NewDecoder(bytes.NewReader(modalityAndNameBytes), DefaultDecoderOptions())
	d.SetHandler(StopAtTag(tag.PatientName))
	ds, err := d.ReadDataSet()
	require.NoError(t, err)
	assert.Equal(t, []tag.Tag{tag.Modality}, dicom.Tags(ds))
	assert.Equal(t, tag.PatientName, d.Tag())
	assert.Equal(t, int64(10), d.TagPosition())
}

func TestHandlerObservesEveryHeader(t *testing.T) {
	t.Parallel()
	type seen struct {
		tag   tag.Tag
		level int
	}
	var got []seen
	d := NewDecoder(bytes.NewReader(undefinedSequenceBytes), DefaultDecoderOptions())
	d.SetHandler(HandlerFunc(func(d *Decoder) (bool, error) {
		got = append(got, seen{d.Tag(), d.Level()})
		return d.ReadValue()
	}))
	_, err := d.ReadDataSet()
	require.NoError(t, err)
	assert.Equal(t, []seen{
		{tag.ReferencedImageSequence, 0},
		{tag.Item, 1},
		{tag.ReferencedSOPClassUID, 1},
		{tag.ItemDelimitationItem, 1},
		{tag.SequenceDelimitationItem, 1},
		{tag.ItemDelimitationItem, 0}, // end of stream
	}, got)
}

func TestNilHandlerReadsEveryValue(t *testing.T) {
	t.Parallel()
	d := NewDecoder(bytes.NewReader(unknownSequenceBytes), DefaultDecoderOptions())
	d.SetHandler(StopAtTag(tag.Modality))
	d.SetHandler(nil)
	ds, err := d.ReadDataSet()
	require.NoError(t, err)
	sq := ds.Get(0x00091001)
	require.NotNil(t, sq)
	assert.Equal(t, vr.SQ, sq.VR())
	require.Equal(t, 2, sq.CountItems())
	assert.Equal(t, "P2", stringOf(t, sq.Item(1), tag.PatientID))
}

func TestReadItem(t *testing.T) {
	t.Parallel()
	b := concat([]byte{0xFE, 0xFF, 0x00, 0xE0, 0x0A, 0x00, 0x00, 0x00}, modalityAndNameBytes[:10])
	opts := DefaultDecoderOptions()
	opts.TransferSyntax = transfer.ExplicitVRLittleEndian
	item := dicom.NewItem()
	require.NoError(t, NewDecoder(bytes.NewReader(b), opts).ReadItem(item))
	assert.Equal(t, "CT", stringOf(t, item, tag.Modality))
	assert.Equal(t, int64(0), item.ItemPosition())

	err := NewDecoder(bytes.NewReader(modalityAndNameBytes), opts).ReadItem(dicom.NewItem())
	var corrupt *CorruptStream
	assert.True(t, errors.As(err, &corrupt))
}

func TestInternSharesDecodedElements(t *testing.T) {
	t.Parallel()
	opts := DefaultDecoderOptions()
	opts.Intern = dicom.NewInternTable(16)
	a := decode(t, modalityAndNameBytes, opts)
	b := decode(t, modalityAndNameBytes, opts)
	assert.Same(t, a.Get(tag.Modality), b.Get(tag.Modality))
	assert.NotSame(t, a, b)
}
