package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/tag"
	"github.com/b71729/dcmcodec/vr"
)

var (
	acceptableVM = regexp.MustCompile("^([0-9-n]+)$")
	uidStart     = regexp.MustCompile(`^([0-9]+\.[0-9]+\.[0-9]+)`)
)

// Parse reads dictionary entries from `r`, one attribute per line:
//
//	(gggg,eeee) <TAB> VR <TAB> VM <TAB> Keyword <TAB> Name [<TAB> RET]
//
// Blank lines and lines starting with '#' are skipped. An 'x' in the tag
// denotes a repeating digit and is read as zero. VRs such as "OB or OW"
// keep their first alternative; unrecognised VRs become UN.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 5 {
			return nil, fmt.Errorf("dictionary: line %d: want at least 5 fields, have %d", line, len(fields))
		}
		t, err := parseTag(fields[0])
		if err != nil {
			return nil, fmt.Errorf("dictionary: line %d: %v", line, err)
		}
		e := Entry{
			Tag:     t,
			VR:      parseVR(t, fields[1]),
			VM:      parseVM(t, fields[2]),
			Keyword: strings.Replace(strings.TrimSpace(fields[3]), "\u200b", "", -1),
			Name:    strings.TrimSpace(fields[4]),
		}
		if len(fields) > 5 && strings.TrimSpace(fields[5]) == "RET" {
			e.Retired = true
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseTag(s string) (tag.Tag, error) {
	s = strings.Map(func(r rune) rune {
		if r == 'x' || r == 'X' {
			return '0'
		}
		return r
	}, strings.TrimSpace(s))
	return tag.Parse(s)
}

func parseVR(t tag.Tag, s string) vr.VR {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if v, err := vr.Parse(s[:2]); err == nil {
			return v
		}
	}
	if t.HasVR() {
		core.Log().Warnf("VR for Data Element %s is '%s'. Using 'UN' instead.", t, s)
		return vr.UN
	}
	return vr.None
}

func parseVM(t tag.Tag, s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, " or"); i > -1 {
		s = s[:i]
	}
	if !acceptableVM.MatchString(s) {
		core.Log().Warnf("VM for Data Element %s is '%s'. Using 'n' instead.", t, s)
		return "n"
	}
	return s
}

// Load parses `r` and returns `base` extended with the entries read.
func Load(base *Registry, r io.Reader) (*Registry, error) {
	entries, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return base.With(entries...), nil
}

// ParseUIDs splits "uid <TAB> name <TAB> type" lines into UID entries.
func ParseUIDs(r io.Reader) ([]UIDEntry, error) {
	var uids []UIDEntry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("dictionary: line %d: want at least 2 fields, have %d", line, len(fields))
		}
		u := UIDEntry{UID: strings.Replace(strings.TrimSpace(fields[0]), " ", "", -1), Name: strings.TrimSpace(fields[1])}
		if len(fields) > 2 {
			u.Type = strings.TrimSpace(fields[2])
		}
		if !uidStart.MatchString(u.UID) {
			return nil, fmt.Errorf("dictionary: line %d: bad UID %q", line, u.UID)
		}
		uids = append(uids, u)
	}
	return uids, scanner.Err()
}
