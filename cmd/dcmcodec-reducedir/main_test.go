package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/b71729/dcmcodec"
	"github.com/b71729/dcmcodec/dicom"
	"github.com/b71729/dcmcodec/dicomio"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeries(t *testing.T, path, series string) {
	t.Helper()
	ds := dicom.NewDataSet(0)
	_, err := ds.PutString(tag.SeriesInstanceUID, vr.UI, series)
	require.NoError(t, err)
	_, err = ds.PutString(tag.PatientName, vr.PN, "Doe^John")
	require.NoError(t, err)
	require.NoError(t, dcmcodec.NewFile(ds).WriteFile(path))
}

func TestSeriesOfStopsEarly(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "a.dcm")
	writeSeries(t, path, "1.2.3")
	uid, err := seriesOf(path, dicomio.DefaultDecoderOptions())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", uid)
}

func TestReduce(t *testing.T) {
	t.Parallel()
	in, out := t.TempDir(), t.TempDir()
	writeSeries(t, filepath.Join(in, "a.dcm"), "1.2.3")
	writeSeries(t, filepath.Join(in, "b.dcm"), "1.2.3")
	writeSeries(t, filepath.Join(in, "c.dcm"), "1.2.4")
	require.NoError(t, os.WriteFile(filepath.Join(in, "junk"), []byte("not dicom"), 0o644))

	n, err := reduce(in, out, dicomio.DefaultDecoderOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.FileExists(t, filepath.Join(out, "1.2.4.dcm"))
}
