package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/b71729/dcmcodec"
	"github.com/b71729/dcmcodec/common"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/tag"
)

/*
===============================================================================
    Util: View DICOM File
===============================================================================
*/

var baseFile = filepath.Base(os.Args[0])

func check(err error) {
	if err != nil {
		core.Log().Fatalf("error: %v", err)
	}
}

func usage() {
	fmt.Printf("dcmcodec version %s\n", common.Version)
	fmt.Printf("usage: %s file_or_dir [(gggg,eeee)]\n", baseFile)
	os.Exit(1)
}

// extractTag prints the element `t` of `path` and its raw value as a Go byte slice.
func extractTag(w io.Writer, path string, t tag.Tag) error {
	f, err := dcmcodec.ReadFile(path)
	if err != nil {
		return err
	}
	ds := f.GetDataSet()
	e := ds.Get(t)
	if e == nil {
		ds = f.GetMeta()
		e = ds.Get(t)
	}
	if e == nil {
		return fmt.Errorf("tag %s could not be found in file %s", t, path)
	}
	fmt.Fprintln(w, e.Format(ds.CharacterSet()))
	fmt.Fprintf(w, "\nContents:\n\n%s\n\n", byteLiteral(e.Bytes()))
	return nil
}

func byteLiteral(b []byte) string {
	var sb strings.Builder
	sb.WriteString("[]byte{")
	for i, c := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "0x%02X", c)
	}
	sb.WriteString("}")
	return sb.String()
}

func main() {
	dcmcodec.GetConfig()
	if len(os.Args) < 2 || len(os.Args) > 3 || os.Args[1] == "--help" || os.Args[1] == "-h" {
		usage()
	}
	stat, err := os.Stat(os.Args[1])
	check(err)
	if len(os.Args) == 3 {
		if stat.IsDir() {
			core.Log().Fatalf("%s is a directory. please specify one file.", os.Args[1])
		}
		t, err := tag.Parse(os.Args[2])
		check(err)
		check(extractTag(os.Stdout, os.Args[1], t))
		return
	}
	if !stat.IsDir() {
		f, err := dcmcodec.ReadFile(os.Args[1])
		check(err)
		fmt.Printf("transfer syntax: %s\n", f.GetTransferSyntax())
		fmt.Print(f.GetMeta().String())
		fmt.Print(f.GetDataSet().String())
		return
	}
	var errorCount, successCount int64
	err = common.ConcurrentlyWalkDir(os.Args[1], func(path string) {
		_, err := dcmcodec.ReadFile(path)
		basePath := filepath.Base(path)
		if err != nil {
			core.Log().Errorf(`error parsing "%s": %v`, basePath, err)
			atomic.AddInt64(&errorCount, 1)
			return
		}
		atomic.AddInt64(&successCount, 1)
		core.Log().Debugf(`parsed "%s"`, basePath)
	})
	check(err)
	if errorCount == 0 {
		core.Log().Infof("parsed %d files without errors", successCount)
	} else {
		core.Log().Infof("parsed %d files without errors, and failed to parse %d files", successCount, errorCount)
	}
}
