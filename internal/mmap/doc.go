// Package mmap provides read-only memory-mapped file access.
//
// Dataset files are mapped once and parsed sequentially, so the mapping is
// advised for sequential access on platforms that support it.
//
//	m, err := mmap.Open("train-images.idx3-ubyte")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	n, err := m.ReadAt(buf, 0)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with madvise(2) for access hints
//   - Windows: Uses CreateFileMapping/MapViewOfFile (madvise is a no-op)
package mmap
