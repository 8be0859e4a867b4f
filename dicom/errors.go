package dicom

import (
	"errors"
	"fmt"

	"github.com/b71729/dcmcodec/tag"
)

var (
	// ErrReadOnly is wrapped by every mutation attempted on a read-only view.
	ErrReadOnly = errors.New("data set is read-only")
	// ErrNoPrivateCreator is returned when no block is reserved for a private creator.
	ErrNoPrivateCreator = errors.New("no block reserved for private creator")
	// ErrNoPrivateBlock is returned when every block of a private group is reserved.
	ErrNoPrivateBlock = errors.New("no free private block")
)

// UnsupportedOperation is returned when an Object does not allow an operation,
// such as modifying a read-only view.
type UnsupportedOperation struct {
	error
}

// UnsupportedOperationError returns an `UnsupportedOperation` error
func UnsupportedOperationError(format string, a ...interface{}) error {
	return &UnsupportedOperation{fmt.Errorf(format, a...)}
}

func (e *UnsupportedOperation) Unwrap() error {
	return errors.Unwrap(e.error)
}

// FilteredTag is returned when a filtered view is asked to hold a tag
// that lies outside its filter.
type FilteredTag struct {
	error
	Tag tag.Tag
}

// FilteredTagError returns a `FilteredTag` error for `t`
func FilteredTagError(t tag.Tag) error {
	return &FilteredTag{fmt.Errorf("tag %s is outside the filter", t), t}
}

func readOnly(op string) error {
	return UnsupportedOperationError("%s: %w", op, ErrReadOnly)
}
