// Package idx reads and writes the IDX binary format used by the MNIST
// handwritten digit dataset.
//
// An image file starts with a 16-byte header of four big-endian uint32
// fields (magic 2051, count, rows, cols) followed by count*rows*cols
// unsigned pixel bytes, row-major per image. A label file has an 8-byte
// header (magic 2049, count) followed by count label bytes.
//
// Readers accept plain streams as well as gzip, zstd and lz4-framed
// streams; see NewReader.
package idx
