// Package tag defines the 32-bit attribute tag used to key DICOM data elements.
package tag

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag is a (group, element) pair packed as group<<16 | element.
// Its natural order is the order of elements within a data set.
type Tag uint32

// New packs `group` and `element` into a Tag.
func New(group, element uint16) Tag {
	return Tag(uint32(group)<<16 | uint32(element))
}

// Group returns the upper 16 bits.
func (t Tag) Group() uint16 {
	return uint16(t >> 16)
}

// Element returns the lower 16 bits.
func (t Tag) Element() uint16 {
	return uint16(t)
}

// String renders the tag as "(gggg,eeee)".
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group(), t.Element())
}

// Hex renders the tag as eight upper-case hex digits, "ggggeeee".
func (t Tag) Hex() string {
	return fmt.Sprintf("%08X", uint32(t))
}

// Parse accepts "ggggeeee", "(gggg,eeee)" and "gggg,eeee".
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	s = strings.Replace(s, ",", "", 1)
	if len(s) != 8 {
		return 0, fmt.Errorf("tag: cannot parse %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("tag: cannot parse %q: %v", s, err)
	}
	return Tag(v), nil
}

// IsPrivate reports whether the tag belongs to an odd (private) group.
func (t Tag) IsPrivate() bool {
	return t&0x00010000 != 0
}

// IsPrivateCreator reports whether the tag reserves a private block,
// i.e. (gggg,0010)-(gggg,00FF) in an odd group.
func (t Tag) IsPrivateCreator() bool {
	return t.IsPrivate() && t&0x0000FF00 == 0 && t&0x000000F0 != 0
}

// IsGroupLength reports whether the tag is a (gggg,0000) group length.
func (t Tag) IsGroupLength() bool {
	return t&0x0000FFFF == 0
}

// IsCommand reports whether the tag belongs to the command group (0000).
func (t Tag) IsCommand() bool {
	return t&0xFFFF0000 == 0
}

// IsFileMetaInfo reports whether the tag belongs to group (0002).
func (t Tag) IsFileMetaInfo() bool {
	return t&0xFFFF0000 == 0x00020000
}

// HasVR reports whether an element with this tag carries a VR on the wire.
// Item and delimitation items in group FFFE never do.
func (t Tag) HasVR() bool {
	return t != Item && t != ItemDelimitationItem && t != SequenceDelimitationItem
}

// Lower and upper bounds of the three partitions of a data set.
const (
	CommandFirst  Tag = 0x00000000
	CommandLast   Tag = 0x0000FFFF
	FileMetaFirst Tag = 0x00020000
	FileMetaLast  Tag = 0x0002FFFF
	DatasetFirst  Tag = 0x00030000
	DatasetLast   Tag = 0xFFFFFFFF
)
