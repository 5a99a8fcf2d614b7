package mmap

import (
	"io"
	"os"

	"github.com/hupe1980/digitknn/internal/conv"
)

// File represents a read-only memory-mapped file.
type File struct {
	data   []byte
	f      *os.File
	closed bool
}

// Open maps the file at path into memory as read-only.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{f: f}, nil
	}
	n, err := conv.Int64ToInt(size)
	if err != nil || n < 0 {
		f.Close()
		return nil, ErrInvalidSize
	}

	data, err := mmap(f, n)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &File{data: data, f: f}, nil
}

// Size returns the length of the mapping in bytes.
func (m *File) Size() int {
	return len(m.data)
}

// Advise hints the kernel about the expected access pattern.
func (m *File) Advise(p AccessPattern) error {
	if m.closed {
		return ErrClosed
	}
	if len(m.data) == 0 {
		return nil
	}
	return madvise(m.data, p)
}

// ReadAt implements io.ReaderAt on the mapping.
func (m *File) ReadAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the memory and closes the underlying file.
func (m *File) Close() error {
	if m == nil || m.closed {
		return nil
	}
	m.closed = true

	var err error
	if m.data != nil {
		err = munmap(m.data)
		m.data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
