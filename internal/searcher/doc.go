// Package searcher implements the bounded priority queues used to select
// the K nearest training samples without fully sorting all distances.
package searcher
