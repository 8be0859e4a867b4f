package dicom

import (
	"errors"
	"testing"
	"time"

	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPut(t *testing.T, ds *DataSet, tg tag.Tag, v vr.VR, values ...string) *Element {
	t.Helper()
	e, err := ds.PutString(tg, v, values...)
	require.NoError(t, err)
	return e
}

/*
===============================================================================
    DataSet
===============================================================================
*/

func TestElementsIterateInAscendingOrder(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	for _, tg := range []tag.Tag{tag.PatientName, tag.Modality, tag.PixelData, tag.SOPClassUID, tag.Rows} {
		ds.PutNull(tg, vr.None)
	}
	assert.Equal(t, []tag.Tag{tag.SOPClassUID, tag.Modality, tag.PatientName, tag.Rows, tag.PixelData}, Tags(ds))
}

func TestAddReplacesExistingTag(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	mustPut(t, ds, tag.Modality, vr.CS, "CT")
	mustPut(t, ds, tag.PatientID, vr.LO, "1")
	mustPut(t, ds, tag.Modality, vr.CS, "MR")
	assert.Equal(t, 2, ds.Len())
	s, err := ds.GetString(tag.Modality, "")
	require.NoError(t, err)
	assert.Equal(t, "MR", s)
}

func TestPutResolvesDictionaryVR(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	e := mustPut(t, ds, tag.PatientName, vr.None, "Doe^John")
	assert.Equal(t, vr.PN, e.VR())
	assert.Equal(t, vr.US, ds.PutNull(tag.Rows, vr.None).VR())
}

func TestLongStringIsPadded(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	e := mustPut(t, ds, tag.PatientID, vr.LO, "ABC")
	assert.Equal(t, 4, e.Length())
	assert.Equal(t, byte(' '), e.Bytes()[3])
	s, err := ds.GetString(tag.PatientID, "")
	require.NoError(t, err)
	assert.Equal(t, "ABC", s)

	e = mustPut(t, ds, tag.PatientID, vr.LO, "AB")
	assert.Equal(t, []byte("AB"), e.Bytes())
	s, err = ds.GetString(tag.PatientID, "")
	require.NoError(t, err)
	assert.Equal(t, "AB", s)
}

func TestPutBytesCopiesPaddedValue(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	buf := []byte{1, 2, 3, 4}
	e := ds.PutBytes(0x00091010, vr.OB, buf[:3])
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
	buf[0] = 9
	assert.Equal(t, []byte{1, 2, 3, 0}, e.Bytes())
}

func TestIterateIsSnapshot(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	for _, tg := range []tag.Tag{0x00090010, 0x00090020, 0x00090030} {
		mustPut(t, ds, tg, vr.LO, "X")
	}
	var seen []tag.Tag
	for it := ds.Iterate(0x00090000, 0x0009FFFF); it.Next(); {
		e := it.Element()
		if e.Tag() == 0x00090010 {
			_, err := ds.Remove(0x00090010)
			require.NoError(t, err)
			mustPut(t, ds, 0x00090015, vr.LO, "Y")
		}
		seen = append(seen, e.Tag())
	}
	assert.Equal(t, []tag.Tag{0x00090010, 0x00090020, 0x00090030}, seen)
	assert.Equal(t, []tag.Tag{0x00090015, 0x00090020, 0x00090030}, Tags(ds))
}

func TestGettersReturnDefaults(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	s, err := ds.GetString(tag.Modality, "OT")
	require.NoError(t, err)
	assert.Equal(t, "OT", s)

	ds.PutNull(tag.Rows, vr.US)
	i, err := ds.GetInt(tag.Rows, 512)
	require.NoError(t, err)
	assert.Equal(t, 512, i)

	ints, err := ds.GetInts(tag.Columns)
	require.NoError(t, err)
	assert.Nil(t, ints)
}

func TestTypedGetters(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	_, err := ds.PutInt(tag.Rows, vr.US, 512)
	require.NoError(t, err)
	_, err = ds.PutDouble(tag.PixelSpacing, vr.DS, 0.5, 0.25)
	require.NoError(t, err)
	_, err = ds.PutDate(tag.StudyDate, vr.DA, time.Date(2020, 3, 4, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)

	rows, err := ds.GetInt(tag.Rows, 0)
	require.NoError(t, err)
	assert.Equal(t, 512, rows)

	spacing, err := ds.GetDoubles(tag.PixelSpacing)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.25}, spacing)

	d, err := ds.GetDate(tag.StudyDate, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 2020, d.Year())
	assert.Equal(t, time.March, d.Month())

	_, err = ds.GetDate(tag.Rows, time.Time{})
	var unsupported *vr.UnsupportedConversion
	assert.True(t, errors.As(err, &unsupported))
}

func TestPersonName(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	mustPut(t, ds, tag.PatientName, vr.PN, "Doe^John")
	pn, err := ds.GetPersonName(tag.PatientName)
	require.NoError(t, err)
	assert.Equal(t, "Doe", pn.Get(vr.Family))
	assert.Equal(t, "John", pn.Get(vr.Given))
}

func TestCharacterSetIsInherited(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	mustPut(t, ds, tag.SpecificCharacterSet, vr.CS, "ISO_IR 100")
	require.NotNil(t, ds.CharacterSet())

	sq := ds.PutSequence(tag.ReferencedImageSequence, 1)
	item, err := sq.AddItem(NewItem())
	require.NoError(t, err)
	assert.Same(t, ds, item.Parent())
	assert.Same(t, ds, item.Root())
	assert.Equal(t, 0, item.ItemIndex())
	assert.Same(t, ds.CharacterSet(), item.CharacterSet())

	e := mustPut(t, item, tag.PatientName, vr.PN, "Müller")
	assert.Equal(t, byte(0xFC), e.Bytes()[1])

	_, err = ds.Remove(tag.SpecificCharacterSet)
	require.NoError(t, err)
	assert.Nil(t, ds.CharacterSet())
}

func TestStringDecodesWithDataSetCharacterSet(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	mustPut(t, ds, tag.SpecificCharacterSet, vr.CS, "ISO_IR 192")
	e := mustPut(t, ds, tag.PatientName, vr.PN, "Ωmega")
	assert.Equal(t, "(0010,0010) PN #6 [Ωmega] Patient's Name", e.Format(ds.CharacterSet()))
	assert.Contains(t, ds.String(), "[Ωmega]")

	item, err := ds.PutSequence(tag.ReferencedImageSequence, 1).AddItem(NewItem())
	require.NoError(t, err)
	mustPut(t, item, tag.PatientName, vr.PN, "Ωmega")
	assert.Contains(t, ds.String(), "  >(0010,0010) PN #6 [Ωmega]")
}

func TestTypedValueCache(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	ds.SetCache(true, true)
	mustPut(t, ds, tag.ImageType, vr.CS, "ORIGINAL", "PRIMARY")
	first, err := ds.GetStrings(tag.ImageType)
	require.NoError(t, err)
	second, err := ds.GetStrings(tag.ImageType)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Same(t, &first[0], &second[0])

	ds.SetCache(false, false)
	third, err := ds.GetStrings(tag.ImageType)
	require.NoError(t, err)
	assert.NotSame(t, &first[0], &third[0])
}

func TestFragments(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	px := ds.PutFragments(tag.PixelData, vr.OB, 2)
	require.NoError(t, px.AddFragment(nil))
	require.NoError(t, px.AddFragment([]byte{1, 2, 3}))
	assert.Equal(t, 2, px.CountItems())
	assert.Equal(t, []byte{1, 2, 3, 0}, px.Fragment(1))
	assert.Equal(t, -1, px.Length())
	assert.True(t, px.HasFragments())

	err := ds.PutSequence(tag.ContentSequence, 0).AddFragment([]byte{1})
	var unsupported *UnsupportedOperation
	assert.True(t, errors.As(err, &unsupported))
}

func TestRemoveItemReindexes(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	sq := ds.PutSequence(tag.ContentSequence, 3)
	for i := 0; i < 3; i++ {
		_, err := sq.AddItem(NewItem())
		require.NoError(t, err)
	}
	removed, err := sq.RemoveItem(0)
	require.NoError(t, err)
	assert.Nil(t, removed.Parent())
	assert.Equal(t, 0, sq.Item(0).ItemIndex())
	assert.Equal(t, 1, sq.Item(1).ItemIndex())
	assert.Nil(t, sq.Item(2))
}

func TestCopyIsIndependent(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	mustPut(t, ds, tag.Modality, vr.CS, "CT")
	item, err := ds.PutSequence(tag.ContentSequence, 1).AddItem(NewItem())
	require.NoError(t, err)
	mustPut(t, item, tag.ReferencedSOPInstanceUID, vr.UI, "1.2.3")

	c := ds.Copy()
	assert.True(t, c.Equal(ds))
	copied := c.GetItem(tag.ContentSequence, 0)
	assert.Same(t, c, copied.Parent())
	mustPut(t, copied, tag.ReferencedSOPInstanceUID, vr.UI, "1.2.4")
	assert.False(t, c.Equal(ds))
	s, err := item.GetString(tag.ReferencedSOPInstanceUID, "")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", s)
}

func TestPartitions(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	_, err := ds.PutInt(tag.CommandField, vr.US, 1)
	require.NoError(t, err)
	mustPut(t, ds, tag.TransferSyntaxUID, vr.UI, "1.2.840.10008.1.2")
	mustPut(t, ds, tag.Modality, vr.CS, "CT")

	assert.Equal(t, []tag.Tag{tag.CommandField}, Tags(ds.Command()))
	assert.Equal(t, []tag.Tag{tag.TransferSyntaxUID}, Tags(ds.FileMetaInfo()))
	assert.Equal(t, []tag.Tag{tag.Modality}, Tags(ds.Dataset()))
}

func TestDelimiterTagsAreRejected(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	assert.Error(t, ds.Add(NewElement(tag.Item, vr.None, false, nil)))
}

/*
===============================================================================
    Private tags
===============================================================================
*/

func TestResolveTag(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	mustPut(t, ds, 0x00190010, vr.LO, "OTHER")

	_, err := ds.ResolveTag(0x00190001, "ACME", false)
	assert.True(t, errors.Is(err, ErrNoPrivateCreator))

	resolved, err := ds.ResolveTag(0x00191001, "ACME", true)
	require.NoError(t, err)
	assert.Equal(t, tag.Tag(0x00191101), resolved)
	s, err := ds.GetString(0x00190011, "")
	require.NoError(t, err)
	assert.Equal(t, "ACME", s)

	again, err := ds.ResolveTag(0x00190001, "ACME", false)
	require.NoError(t, err)
	assert.Equal(t, tag.Tag(0x00191101), again)
	assert.Equal(t, "ACME", ds.PrivateCreator(0x00191101))
	assert.Equal(t, "", ds.PrivateCreator(tag.Modality))

	_, err = ds.ResolveTag(tag.Modality, "ACME", true)
	assert.Error(t, err)
}

func TestNameOfUsesPrivateCreator(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	mustPut(t, ds, 0x00190010, vr.LO, "ACME")
	assert.Equal(t, "Private Creator", ds.NameOf(0x00190010))
	assert.Equal(t, "Unknown", ds.NameOf(0x00191001))
	assert.Equal(t, vr.UN, ds.VROf(0x00191001))
	assert.Equal(t, "Patient's Name", ds.NameOf(tag.PatientName))
}

func TestElementString(t *testing.T) {
	t.Parallel()
	ds := NewDataSet(0)
	e := mustPut(t, ds, tag.PatientName, vr.PN, "Doe^John")
	assert.Equal(t, "(0010,0010) PN #8 [Doe^John] Patient's Name", e.String())
}
