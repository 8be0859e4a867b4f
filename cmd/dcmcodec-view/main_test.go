package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/b71729/dcmcodec"
	"github.com/b71729/dcmcodec/dicom"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteLiteral(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[]byte{}", byteLiteral(nil))
	assert.Equal(t, "[]byte{0x43, 0x54}", byteLiteral([]byte("CT")))
}

func TestExtractTag(t *testing.T) {
	t.Parallel()
	ds := dicom.NewDataSet(0)
	_, err := ds.PutString(tag.Modality, vr.CS, "CT")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "in.dcm")
	require.NoError(t, dcmcodec.NewFile(ds).WriteFile(path))

	var buf bytes.Buffer
	require.NoError(t, extractTag(&buf, path, tag.Modality))
	assert.Contains(t, buf.String(), "[]byte{0x43, 0x54}")

	// file meta elements are found too
	buf.Reset()
	require.NoError(t, extractTag(&buf, path, tag.TransferSyntaxUID))
	assert.Contains(t, buf.String(), "Contents:")

	assert.Error(t, extractTag(&buf, path, tag.PatientName))
}
