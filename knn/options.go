package knn

import "github.com/RoaringBitmap/roaring/v2"

type options struct {
	filter *roaring.Bitmap
}

// Option configures a classification.
type Option func(*options)

// WithFilter restricts the candidates to the sample indices contained in
// bm. Indices outside the dataset are ignored. A nil bitmap means all
// samples participate.
func WithFilter(bm *roaring.Bitmap) Option {
	return func(o *options) {
		o.filter = bm
	}
}

func applyOptions(optFns []Option) options {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
