package dicom

import (
	"errors"
	"testing"

	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *DataSet {
	t.Helper()
	ds := NewDataSet(0)
	mustPut(t, ds, tag.Modality, vr.CS, "CT")
	mustPut(t, ds, tag.PatientName, vr.PN, "Doe^John")
	mustPut(t, ds, tag.PatientID, vr.LO, "P1")
	mustPut(t, ds, 0x00090010, vr.LO, "ACME")
	mustPut(t, ds, 0x00091001, vr.LO, "secret")
	item, err := ds.PutSequence(tag.ReferencedImageSequence, 1).AddItem(NewItem())
	require.NoError(t, err)
	mustPut(t, item, tag.ReferencedSOPClassUID, vr.UI, "1.2.840.10008.5.1.4.1.1.2")
	mustPut(t, item, tag.ReferencedSOPInstanceUID, vr.UI, "1.2.3")
	return ds
}

func TestReadOnly(t *testing.T) {
	t.Parallel()
	ds := sample(t)
	ro := ReadOnly(ds)
	assert.Equal(t, ds.Len(), ro.Len())
	assert.Same(t, ds.Get(tag.Modality), ro.Get(tag.Modality))

	err := ro.Add(NewElement(tag.Modality, vr.CS, false, []byte("MR")))
	assert.True(t, errors.Is(err, ErrReadOnly))
	var unsupported *UnsupportedOperation
	assert.True(t, errors.As(err, &unsupported))
	_, err = ro.Remove(tag.Modality)
	assert.True(t, errors.Is(err, ErrReadOnly))
	assert.True(t, errors.Is(ro.Clear(), ErrReadOnly))
	assert.Same(t, ro, ReadOnly(ro))
}

func TestInclude(t *testing.T) {
	t.Parallel()
	ds := sample(t)
	v := Include(ds, tag.PatientName, tag.PatientID, tag.StudyDate)
	assert.Equal(t, []tag.Tag{tag.PatientName, tag.PatientID}, Tags(v))
	assert.Equal(t, 2, v.Len())
	assert.Nil(t, v.Get(tag.Modality))
	assert.False(t, v.Contains(tag.Modality))

	err := v.Add(NewElement(tag.Modality, vr.CS, false, []byte("MR")))
	var filtered *FilteredTag
	require.True(t, errors.As(err, &filtered))
	assert.Equal(t, tag.Modality, filtered.Tag)

	require.NoError(t, v.Add(NewElement(tag.StudyDate, vr.DA, false, []byte("20200101"))))
	assert.True(t, ds.Contains(tag.StudyDate))

	require.NoError(t, v.Clear())
	assert.False(t, ds.Contains(tag.PatientName))
	assert.True(t, ds.Contains(tag.Modality))
}

func TestExclude(t *testing.T) {
	t.Parallel()
	ds := sample(t)
	v := Exclude(ds, tag.PatientName)
	assert.False(t, v.Contains(tag.PatientName))
	assert.Equal(t, ds.Len()-1, v.Len())
	_, err := v.Remove(tag.PatientName)
	assert.Error(t, err)
	assert.True(t, ds.Contains(tag.PatientName))
}

func TestRange(t *testing.T) {
	t.Parallel()
	ds := sample(t)
	v, err := Range(ds, 0x00090000, 0x0010FFFF)
	require.NoError(t, err)
	assert.Equal(t, []tag.Tag{0x00090010, 0x00091001, tag.PatientName, tag.PatientID}, Tags(v))
	assert.Equal(t, []tag.Tag{tag.PatientName}, Tags(Include(v, tag.PatientName, tag.Modality)))

	_, err = Range(ds, tag.PatientID, tag.PatientName)
	assert.Error(t, err)
}

func TestExcludePrivate(t *testing.T) {
	t.Parallel()
	ds := sample(t)
	v := ExcludePrivate(ds)
	for it := All(v); it.Next(); {
		assert.False(t, it.Element().Tag().IsPrivate())
	}
	assert.Equal(t, ds.Len()-2, v.Len())
}

func TestSubSetNarrowsSequenceItems(t *testing.T) {
	t.Parallel()
	ds := sample(t)
	template := NewDataSet(0)
	template.PutNull(tag.PatientID, vr.LO)
	item, err := template.PutSequence(tag.ReferencedImageSequence, 1).AddItem(NewItem())
	require.NoError(t, err)
	item.PutNull(tag.ReferencedSOPInstanceUID, vr.UI)

	v := SubSet(ds, template)
	assert.Equal(t, []tag.Tag{tag.ReferencedImageSequence, tag.PatientID}, Tags(v))
	sq := v.Get(tag.ReferencedImageSequence)
	require.NotNil(t, sq)
	narrowed := sq.Item(0)
	require.NotNil(t, narrowed)
	assert.Equal(t, []tag.Tag{tag.ReferencedSOPInstanceUID}, Tags(narrowed))

	original := ds.GetItem(tag.ReferencedImageSequence, 0)
	assert.Equal(t, 2, original.Len())
	assert.Same(t, ds, original.Parent())

	m := Materialize(v)
	assert.Equal(t, 2, m.Len())
	assert.Same(t, m, m.GetItem(tag.ReferencedImageSequence, 0).Parent())
}

func TestCombine(t *testing.T) {
	t.Parallel()
	overrides := NewDataSet(0)
	mustPut(t, overrides, tag.PatientName, vr.PN, "Override^Name")
	mustPut(t, overrides, tag.StudyID, vr.SH, "S1")
	defaults := NewDataSet(0)
	mustPut(t, defaults, tag.Modality, vr.CS, "OT")
	mustPut(t, defaults, tag.PatientName, vr.PN, "Default^Name")
	mustPut(t, defaults, tag.SeriesNumber, vr.IS, "1")

	c := Combine(overrides, defaults)
	assert.Equal(t, []tag.Tag{tag.Modality, tag.PatientName, tag.StudyID, tag.SeriesNumber}, Tags(c))
	assert.Equal(t, 4, c.Len())
	assert.Same(t, overrides.Get(tag.PatientName), c.Get(tag.PatientName))
	assert.Same(t, defaults.Get(tag.Modality), c.Get(tag.Modality))
	assert.Nil(t, c.Get(tag.PatientID))
	assert.False(t, c.Contains(tag.PatientID))

	name, err := GetString(c, tag.PatientName, "")
	require.NoError(t, err)
	assert.Equal(t, "Override^Name", name)
	assert.True(t, errors.Is(c.Add(NewElement(tag.PatientID, vr.LO, false, nil)), ErrReadOnly))
}

func TestCombineCharacterSet(t *testing.T) {
	t.Parallel()
	a := NewDataSet(0)
	b := NewDataSet(0)
	mustPut(t, b, tag.SpecificCharacterSet, vr.CS, "ISO_IR 100")
	assert.Same(t, b.CharacterSet(), Combine(a, b).CharacterSet())
	mustPut(t, a, tag.SpecificCharacterSet, vr.CS, "ISO_IR 192")
	assert.Same(t, a.CharacterSet(), Combine(a, b).CharacterSet())
}
