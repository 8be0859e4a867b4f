package dcmcodec

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/b71729/dcmcodec/common"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/dicom"
	"github.com/b71729/dcmcodec/dicomio"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/transfer"
	"github.com/b71729/dcmcodec/vr"
)

/*
===============================================================================
    File
===============================================================================
*/

// File represents a file containing one SOP Instance
// as per http://dicom.nema.org/dicom/2013/output/chtml/part10/chapter_7.html
type File struct {
	preamble [128]byte
	meta     *dicom.DataSet
	dataset  *dicom.DataSet
}

// NewFile returns a File holding `dataset` with empty file meta information.
func NewFile(dataset *dicom.DataSet) *File {
	if dataset == nil {
		dataset = dicom.NewDataSet(0)
	}
	return &File{meta: dicom.NewDataSet(8), dataset: dataset}
}

// GetPreamble returns the "preamble" component
func (f *File) GetPreamble() [128]byte {
	return f.preamble
}

// SetPreamble replaces the "preamble" component
func (f *File) SetPreamble(p [128]byte) {
	f.preamble = p
}

// GetMeta returns the file meta information, group 0002.
func (f *File) GetMeta() *dicom.DataSet {
	return f.meta
}

// GetDataSet returns the parsed DataSet (elements after the file meta information)
func (f *File) GetDataSet() *dicom.DataSet {
	return f.dataset
}

// GetTransferSyntax returns the syntax named by (0002,0010), or explicit VR
// little endian if there is none.
func (f *File) GetTransferSyntax() *transfer.Syntax {
	uid, _ := f.meta.GetString(tag.TransferSyntaxUID, "")
	if uid == "" {
		return transfer.ExplicitVRLittleEndian
	}
	return transfer.ValueOf(uid)
}

// SetTransferSyntax names `ts` in (0002,0010); the data set is written under it by `WriteTo`.
func (f *File) SetTransferSyntax(ts *transfer.Syntax) error {
	_, err := f.meta.PutString(tag.TransferSyntaxUID, vr.UI, ts.UID)
	return err
}

// FromReader decodes a dicom file from `source` using the options of `GetConfig`.
func FromReader(source io.Reader) (*File, error) {
	return FromReaderWithOptions(source, GetConfig().DecoderOptions())
}

// FromReaderWithOptions decodes a dicom file from `source`.
// Streams without a preamble or file meta information are accepted; the
// meta data set is then empty.
func FromReaderWithOptions(source io.Reader, opts dicomio.DecoderOptions) (*File, error) {
	d := dicomio.NewDecoder(source, opts)
	defer d.Close()
	f := NewFile(nil)
	meta, err := d.ReadFileMetaInformation()
	if err != nil {
		return nil, err
	}
	if meta != nil {
		f.meta = meta
	} else {
		core.Log().Debug("stream is missing preamble/magic (bytes 0-132)")
	}
	copy(f.preamble[:], d.Preamble())
	if err := d.ReadDataSetInto(f.dataset, -1); err != nil {
		return nil, err
	}
	return f, nil
}

// ReadFile decodes a dicom file from the given file path
// See: FromReader for more information
func ReadFile(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	f, err := FromReader(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// fillMeta adds the file meta elements a Part 10 file requires and `f` lacks.
// SOP class and instance are copied from the data set.
func (f *File) fillMeta() error {
	if !f.meta.Contains(tag.FileMetaInformationVersion) {
		f.meta.PutBytes(tag.FileMetaInformationVersion, vr.OB, []byte{0x00, 0x01})
	}
	copied := []struct{ from, to tag.Tag }{
		{tag.SOPClassUID, tag.MediaStorageSOPClassUID},
		{tag.SOPInstanceUID, tag.MediaStorageSOPInstanceUID},
	}
	for _, c := range copied {
		if f.meta.Contains(c.to) {
			continue
		}
		uid, err := f.dataset.GetString(c.from, "")
		if err != nil {
			return err
		}
		if uid != "" {
			if _, err := f.meta.PutString(c.to, vr.UI, uid); err != nil {
				return err
			}
		}
	}
	if !f.meta.Contains(tag.TransferSyntaxUID) {
		if err := f.SetTransferSyntax(transfer.ExplicitVRLittleEndian); err != nil {
			return err
		}
	}
	if !f.meta.Contains(tag.ImplementationClassUID) {
		if _, err := f.meta.PutString(tag.ImplementationClassUID, vr.UI, common.GetImplementationUID(false)); err != nil {
			return err
		}
		if _, err := f.meta.PutString(tag.ImplementationVersionName, vr.SH, common.ImplementationVersionName); err != nil {
			return err
		}
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo encodes `f` to `w` as a Part 10 file. Missing file meta elements
// are filled in place first.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	return f.WriteWithOptions(w, dicomio.DefaultEncoderOptions())
}

// WriteWithOptions is `WriteTo` with explicit encoder options.
// `opts.Preamble` is replaced by the preamble of `f`.
func (f *File) WriteWithOptions(w io.Writer, opts dicomio.EncoderOptions) (int64, error) {
	if err := f.fillMeta(); err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	opts.Preamble = f.preamble[:]
	enc := dicomio.NewEncoder(cw, opts)
	if err := enc.WriteFileMetaInformation(f.meta); err != nil {
		return cw.n, err
	}
	if err := enc.WriteDataset(f.dataset, f.GetTransferSyntax()); err != nil {
		return cw.n, err
	}
	return cw.n, enc.Finish()
}

// WriteFile encodes `f` to the file at `path`, creating or truncating it.
func (f *File) WriteFile(path string) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(fd, GetConfig().BufferSize)
	if _, err := f.WriteTo(bw); err != nil {
		fd.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
