// Package query loads the single image to classify.
//
// Query files are headerless: exactly rows*cols grayscale bytes, row-major.
// Scans are usually dark ink on a light background while the reference
// dataset is light ink on dark, so queries are typically passed through
// Invert before classification.
package query
