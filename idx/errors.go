package idx

import (
	"errors"
	"fmt"
)

// FileOpenError indicates that a dataset or query file could not be opened.
//
// The original underlying error can be accessed via errors.Unwrap.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("idx: unable to open %s: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error { return e.Err }

// InvalidMagicNumberError indicates a header magic mismatch, usually a file
// of the wrong kind (labels passed as images or vice versa) or not IDX at all.
type InvalidMagicNumberError struct {
	Path     string
	Expected uint32
	Found    uint32
}

func (e *InvalidMagicNumberError) Error() string {
	return fmt.Sprintf("idx: %s: invalid magic number: expected %d, found %d", e.Path, e.Expected, e.Found)
}

// TruncatedDataError indicates that a file holds fewer bytes than its
// header (or the caller) declared.
type TruncatedDataError struct {
	Path     string
	Section  string // "header" or "payload"
	Expected uint64
	Found    uint64
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("idx: %s: truncated %s: expected %d bytes, found %d", e.Path, e.Section, e.Expected, e.Found)
}

// Kind classifies parse failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindFileOpen
	KindInvalidMagicNumber
	KindTruncatedData
)

func (k Kind) String() string {
	switch k {
	case KindFileOpen:
		return "FileOpenError"
	case KindInvalidMagicNumber:
		return "InvalidMagicNumberError"
	case KindTruncatedData:
		return "TruncatedDataError"
	default:
		return "Unknown"
	}
}

// KindOf reports the kind of the first idx error found in err's chain.
// It returns KindUnknown for nil and for foreign errors.
func KindOf(err error) Kind {
	var fo *FileOpenError
	if errors.As(err, &fo) {
		return KindFileOpen
	}
	var im *InvalidMagicNumberError
	if errors.As(err, &im) {
		return KindInvalidMagicNumber
	}
	var td *TruncatedDataError
	if errors.As(err, &td) {
		return KindTruncatedData
	}
	return KindUnknown
}
