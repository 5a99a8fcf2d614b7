package dataset

import "fmt"

// ErrLengthMismatch indicates that the image and label files disagree on
// the number of samples.
type ErrLengthMismatch struct {
	Images int
	Labels int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("dataset: %d images but %d labels", e.Images, e.Labels)
}

// ErrInvalidLabel indicates a label outside the digit range 0-9.
type ErrInvalidLabel struct {
	Index int
	Label uint8
}

func (e *ErrInvalidLabel) Error() string {
	return fmt.Sprintf("dataset: label %d at index %d is not a digit", e.Label, e.Index)
}

// ErrImageSize indicates an image whose pixel count differs from rows*cols.
type ErrImageSize struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrImageSize) Error() string {
	return fmt.Sprintf("dataset: image %d has %d pixels, expected %d", e.Index, e.Actual, e.Expected)
}
