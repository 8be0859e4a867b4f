package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/b71729/dcmcodec"
	"github.com/b71729/dcmcodec/common"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/transfer"
)

/*
===============================================================================
    Util: Transcode DICOM File
===============================================================================
*/

var baseFile = filepath.Base(os.Args[0])

// aliases name the uncompressed syntaxes a file can be rewritten to.
var aliases = map[string]*transfer.Syntax{
	"implicit": transfer.ImplicitVRLittleEndian,
	"explicit": transfer.ExplicitVRLittleEndian,
	"big":      transfer.ExplicitVRBigEndian,
	"deflate":  transfer.DeflatedExplicitVRLittleEndian,
}

func check(err error) {
	if err != nil {
		core.Log().Fatalf("error: %v", err)
	}
}

func usage() {
	fmt.Printf("dcmcodec version %s\n", common.Version)
	fmt.Printf("usage: %s in_file out_file [implicit / explicit / big / deflate / transfer_syntax_uid]\n", baseFile)
	os.Exit(1)
}

// syntaxOf resolves an alias or a registered transfer syntax UID.
func syntaxOf(name string) (*transfer.Syntax, error) {
	if ts, ok := aliases[strings.ToLower(name)]; ok {
		return ts, nil
	}
	if ts, ok := transfer.Default().Lookup(name); ok {
		return ts, nil
	}
	return nil, fmt.Errorf("unknown transfer syntax %q", name)
}

// transcode rewrites the file at `in` to `out` under `ts`.
// Pixel data is never recompressed, so encapsulated syntaxes only transcode to themselves.
func transcode(in, out string, ts *transfer.Syntax) error {
	f, err := dcmcodec.ReadFile(in)
	if err != nil {
		return err
	}
	src := f.GetTransferSyntax()
	if (src.Encapsulated || ts.Encapsulated) && src.UID != ts.UID {
		return fmt.Errorf("cannot transcode %s to %s: pixel data would need recompressing", src, ts)
	}
	if err := f.SetTransferSyntax(ts); err != nil {
		return err
	}
	core.Log().Debugf("transcoding %s from %s to %s", in, src, ts)
	return f.WriteFile(out)
}

func main() {
	dcmcodec.GetConfig()
	if len(os.Args) != 4 {
		usage()
	}
	ts, err := syntaxOf(os.Args[3])
	check(err)
	check(transcode(os.Args[1], os.Args[2], ts))
	core.Log().Infof("wrote %s as %s", os.Args[2], ts)
}
