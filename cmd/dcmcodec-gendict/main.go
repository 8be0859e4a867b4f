package main

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/b71729/dcmcodec/common"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/dictionary"
)

/*
===============================================================================
    Util: Generate Data Dictionary
===============================================================================
*/

var baseFile = filepath.Base(os.Args[0])

var (
	tagRE        = regexp.MustCompile(`^\([\dA-Fa-fx]{4},[\dA-Fa-fx]{4}\)$`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

func check(err error) {
	if err != nil {
		core.Log().Fatalf("error: %v", err)
	}
}

func usage() {
	fmt.Printf("dcmcodec version %s\n", common.Version)
	fmt.Printf("usage: %s part06.xml [out_file]\n", baseFile)
	os.Exit(1)
}

// row is one attribute row of a Part 6 registry table, as printed.
type row struct {
	tag, name, keyword, vr, vm string
	retired                    bool
}

func cellText(s string) string {
	s = strings.Replace(s, "\u200b", "", -1)
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// parseRegistry collects the attribute rows of every table in `r`.
// Rows whose first cell is not a tag, such as headers, are skipped.
func parseRegistry(r io.Reader) ([]row, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	var rows []row
	var cells []string
	var cell strings.Builder
	inCell := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch element := token.(type) {
		case xml.StartElement:
			switch element.Name.Local {
			case "tr":
				cells = cells[:0]
			case "td":
				inCell = true
				cell.Reset()
			}
		case xml.CharData:
			if inCell {
				cell.Write(element)
			}
		case xml.EndElement:
			switch element.Name.Local {
			case "td":
				inCell = false
				cells = append(cells, cellText(cell.String()))
			case "tr":
				if len(cells) < 5 || !tagRE.MatchString(cells[0]) {
					continue
				}
				rw := row{tag: cells[0], name: cells[1], keyword: cells[2], vr: cells[3], vm: cells[4]}
				rw.retired = len(cells) > 5 && strings.HasPrefix(cells[5], "RET")
				rows = append(rows, rw)
			}
		}
	}
	return rows, nil
}

// writeRows prints `rows` in the line format read by `dictionary.Parse`.
// Rows without a keyword or VR, such as retired placeholders, are dropped.
func writeRows(w io.Writer, rows []row) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for _, rw := range rows {
		if rw.keyword == "" || rw.vr == "" {
			continue
		}
		vr := rw.vr
		if vr == "See Note" {
			vr = "UN"
		}
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%s", strings.ToUpper(rw.tag), vr, rw.vm, rw.keyword, rw.name)
		if rw.retired {
			bw.WriteString("\tRET")
		}
		bw.WriteByte('\n')
		n++
	}
	return n, bw.Flush()
}

// generate converts the XML in `r` and checks the result loads.
func generate(r io.Reader, w io.Writer) (int, error) {
	rows, err := parseRegistry(r)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	n, err := writeRows(&buf, rows)
	if err != nil {
		return 0, err
	}
	entries, err := dictionary.Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return 0, err
	}
	if len(entries) != n {
		return 0, fmt.Errorf("wrote %d entries, read back %d", n, len(entries))
	}
	_, err = w.Write(buf.Bytes())
	return n, err
}

/*
	Generates a tab separated DICOM data dictionary from the Part 6 XML
*/
func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		usage()
	}
	in, err := os.Open(os.Args[1])
	check(err)
	defer in.Close()
	out := os.Stdout
	if len(os.Args) == 3 {
		out, err = os.Create(os.Args[2])
		check(err)
		defer out.Close()
	}
	n, err := generate(bufio.NewReader(in), out)
	check(err)
	core.Log().Infof("wrote %d entries", n)
}
