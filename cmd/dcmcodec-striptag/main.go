// Package main implements a CLI for removing a tag from dicom file(s)
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/b71729/dcmcodec"
	"github.com/b71729/dcmcodec/common"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/tag"
	"github.com/cespare/xxhash/v2"
)

// stripTag rewrites `path` without `t` into `outdir`, named after the hash of the output.
// It returns the path written.
func stripTag(path string, t tag.Tag, outdir string) (string, error) {
	f, err := dcmcodec.ReadFile(path)
	if err != nil {
		return "", err
	}
	target := f.GetDataSet()
	if t.Group() == 0x0002 {
		target = f.GetMeta()
	}
	removed, err := target.Remove(t)
	if err != nil {
		return "", err
	}
	if removed == nil {
		return "", fmt.Errorf("%s: tag %s could not be found", filepath.Base(path), t)
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return "", err
	}
	outpath := filepath.Join(outdir, fmt.Sprintf("%016x.dcm", xxhash.Sum64(buf.Bytes())))
	return outpath, os.WriteFile(outpath, buf.Bytes(), 0o644)
}

func main() {
	dcmcodec.GetConfig()
	if len(os.Args) != 4 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		core.Log().Fatalf("usage: %s in_file_or_dir out_dir (gggg,eeee)", filepath.Base(os.Args[0]))
	}
	t, err := tag.Parse(os.Args[3])
	if err != nil {
		core.Log().Fatalf("%v", err)
	}

	// validate out_dir
	stat, err := os.Stat(os.Args[2])
	if err != nil {
		core.Log().Fatalf("failed to stat '%s': %v", os.Args[2], err)
	}
	if !stat.IsDir() {
		core.Log().Fatalf("%s is not a valid output directory.", os.Args[2])
	}

	strip := func(path string) {
		outpath, err := stripTag(path, t, os.Args[2])
		if err != nil {
			core.Log().Errorf("error stripping %s: %v", path, err)
			return
		}
		core.Log().Infof("wrote %s", outpath)
	}
	stat, err = os.Stat(os.Args[1])
	if err != nil {
		core.Log().Fatalf("failed to stat '%s': %v", os.Args[1], err)
	}
	if !stat.IsDir() {
		strip(os.Args[1])
		return
	}
	if err := common.ConcurrentlyWalkDir(os.Args[1], strip); err != nil {
		core.Log().Fatal(err)
	}
}
