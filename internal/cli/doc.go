// Package cli implements the digitknn command line.
package cli
