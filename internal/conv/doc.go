// Package conv provides checked integer conversions for values that come
// from file headers and user configuration.
package conv
