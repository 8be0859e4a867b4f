package dicomio

import (
	"errors"
	"fmt"
)

// ErrNotDicom is returned when the start of a stream matches neither a
// preamble nor any element header the dictionary knows.
var ErrNotDicom = errors.New("not a DICOM stream")

// CorruptStream indicates a structural coding fault, such as an unexpected
// tag where an item was expected. Position is the stream offset of the
// header being decoded when the fault was found.
type CorruptStream struct {
	error
	Position int64
}

// CorruptStreamError returns a `CorruptStream` error at `pos`
func CorruptStreamError(pos int64, format string, a ...interface{}) error {
	return &CorruptStream{fmt.Errorf(format, a...), pos}
}

func (e *CorruptStream) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.error, e.Position)
}

func (e *CorruptStream) Unwrap() error {
	return errors.Unwrap(e.error)
}
