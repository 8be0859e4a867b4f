package main

import (
	"path/filepath"
	"testing"

	"github.com/b71729/dcmcodec"
	"github.com/b71729/dcmcodec/dicom"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/transfer"
	"github.com/b71729/dcmcodec/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntaxOf(t *testing.T) {
	t.Parallel()
	ts, err := syntaxOf("Deflate")
	require.NoError(t, err)
	assert.Same(t, transfer.DeflatedExplicitVRLittleEndian, ts)

	ts, err = syntaxOf(transfer.ExplicitVRBigEndian.UID)
	require.NoError(t, err)
	assert.Same(t, transfer.ExplicitVRBigEndian, ts)

	_, err = syntaxOf("1.2.3.4.5")
	assert.Error(t, err)
}

func TestTranscode(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ds := dicom.NewDataSet(0)
	_, err := ds.PutString(tag.PatientName, vr.PN, "Doe^John")
	require.NoError(t, err)
	in := filepath.Join(dir, "in.dcm")
	require.NoError(t, dcmcodec.NewFile(ds).WriteFile(in))

	out := filepath.Join(dir, "out.dcm")
	require.NoError(t, transcode(in, out, transfer.ImplicitVRLittleEndian))
	f, err := dcmcodec.ReadFile(out)
	require.NoError(t, err)
	assert.Same(t, transfer.ImplicitVRLittleEndian, f.GetTransferSyntax())
	assert.True(t, f.GetDataSet().Equal(ds))

	assert.Error(t, transcode(in, filepath.Join(dir, "jpeg.dcm"), transfer.JPEGBaseline))
}
