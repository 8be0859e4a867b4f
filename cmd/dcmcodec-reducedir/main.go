// Recursively searches a directory for unique dicoms
// unique being defined as previously unseen SeriesInstanceUID
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/b71729/dcmcodec"
	"github.com/b71729/dcmcodec/common"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/dicomio"
	"github.com/b71729/dcmcodec/tag"
)

// Copy the src file to dst. Any existing file will be overwritten and will not
// copy file attributes.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// seriesOf decodes `path` only as far as (0020,000E) and returns its value.
func seriesOf(path string, opts dicomio.DecoderOptions) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	d := dicomio.NewDecoder(f, opts)
	defer d.Close()
	d.SetHandler(dicomio.StopAtTag(tag.SeriesInstanceUID + 1))
	ds, err := d.ReadDataSet()
	if err != nil {
		return "", err
	}
	return ds.GetString(tag.SeriesInstanceUID, "")
}

// reduce copies the first file seen of each series under `dirIn` into `dirOut`,
// named after the series. It returns the number of series found.
func reduce(dirIn, dirOut string, opts dicomio.DecoderOptions) (int, error) {
	var mu sync.Mutex
	seen := make(map[string]bool)
	err := common.ConcurrentlyWalkDir(dirIn, func(filePath string) {
		uid, err := seriesOf(filePath, opts)
		if err != nil {
			core.Log().Errorf("error parsing %s: %v", filePath, err)
			return
		}
		if uid == "" {
			return
		}
		mu.Lock()
		found := seen[uid]
		seen[uid] = true
		mu.Unlock()
		if found {
			return
		}
		core.Log().Infof("%s", uid)
		outputFilePath := filepath.Join(dirOut, fmt.Sprintf("%s.dcm", uid))
		if _, err := os.Stat(outputFilePath); !os.IsNotExist(err) {
			core.Log().Infof("skip %s: file exists", outputFilePath)
			return
		}
		if err := Copy(filePath, outputFilePath); err != nil {
			core.Log().Errorf("error copying: %v", err)
		}
	})
	return len(seen), err
}

func main() {
	cfg := dcmcodec.GetConfig()
	if len(os.Args) != 3 {
		core.Log().Fatalf("usage: %s in_dir out_dir", filepath.Base(os.Args[0]))
	}
	for _, dir := range os.Args[1:] {
		stat, err := os.Stat(dir)
		if err != nil {
			core.Log().Fatal(err)
		}
		if !stat.IsDir() {
			core.Log().Fatalf("%s is not a directory", dir)
		}
	}
	n, err := reduce(os.Args[1], os.Args[2], cfg.DecoderOptions())
	if err != nil {
		core.Log().Fatal(err)
	}
	core.Log().Infof("found %d series", n)
}
