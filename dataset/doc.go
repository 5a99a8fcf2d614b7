// Package dataset holds the labeled reference images the classifier
// compares a query against.
//
// A Dataset is immutable once constructed and safe for concurrent reads.
package dataset
