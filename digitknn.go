package digitknn

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/digitknn/blobstore"
	"github.com/hupe1980/digitknn/dataset"
	"github.com/hupe1980/digitknn/idx"
	"github.com/hupe1980/digitknn/knn"
	"github.com/hupe1980/digitknn/query"
)

// KResult is the classification for a single K.
type KResult struct {
	K      int        `json:"k"`
	Result knn.Result `json:"result"`
}

// Report summarizes a run.
type Report struct {
	Rows    int `json:"rows"`
	Cols    int `json:"cols"`
	Samples int `json:"samples"`
	// Candidates is the number of samples allowed to vote after the limit
	// has been applied.
	Candidates int `json:"candidates"`
	// Query holds the pixels the classifier saw, after inversion.
	Query   []byte    `json:"-"`
	Results []KResult `json:"results"`
}

// Run loads the dataset and the query described by cfg and classifies the
// query once for every K in [cfg.KMin, cfg.KMax]. Any load failure aborts
// the run before classification.
func Run(ctx context.Context, cfg Config, optFns ...Option) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(optFns)

	store := o.store
	if store == nil {
		var err error
		if store, err = cfg.OpenStore(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	ds, err := dataset.Load(ctx, store, cfg.DatasetImages, cfg.DatasetLabels)
	took := time.Since(start)
	o.logger.LogLoad(ctx, cfg.DatasetImages, cfg.DatasetLabels, samples(ds), took, err)
	o.metricsCollector.RecordLoad(samples(ds), took, err)
	if err != nil {
		return nil, err
	}

	pixels, err := loadQuery(ctx, store, cfg.Query, ds.Rows(), ds.Cols())
	if err != nil {
		return nil, err
	}
	if cfg.Invert {
		pixels = query.Invert(pixels)
	}

	filter := candidates(ds.Len(), cfg.Limit)

	report := &Report{
		Rows:       ds.Rows(),
		Cols:       ds.Cols(),
		Samples:    ds.Len(),
		Candidates: int(filter.GetCardinality()),
		Query:      pixels,
		Results:    make([]KResult, 0, cfg.KMax-cfg.KMin+1),
	}

	logger := o.logger.WithCount(report.Candidates)

	for k := cfg.KMin; k <= cfg.KMax; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		res := knn.Classify(k, ds, pixels, knn.WithFilter(filter))
		took := time.Since(start)

		logger.WithK(k).LogClassify(ctx, res, took)
		o.metricsCollector.RecordClassify(k, took)

		report.Results = append(report.Results, KResult{K: k, Result: res})
	}

	return report, nil
}

// Classify classifies a single query against ds with every K in
// [kMin, kMax]. The query must have ds.Dim() pixels.
func Classify(ds *dataset.Dataset, pixels []byte, kMin, kMax int, optFns ...knn.Option) ([]KResult, error) {
	if len(pixels) != ds.Dim() {
		return nil, &ErrDimensionMismatch{Expected: ds.Dim(), Actual: len(pixels)}
	}

	var results []KResult
	for k := kMin; k <= kMax; k++ {
		results = append(results, KResult{K: k, Result: knn.Classify(k, ds, pixels, optFns...)})
	}
	return results, nil
}

func loadQuery(ctx context.Context, store blobstore.BlobStore, name string, rows, cols int) ([]byte, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, &idx.FileOpenError{Path: name, Err: err}
	}
	defer blob.Close()

	pixels, err := query.ReadRaw(blobstore.NewReader(ctx, blob), name, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("load query: %w", err)
	}
	return pixels, nil
}

// candidates returns the bitmap of sample indices [0, min(limit, n)).
// A zero limit admits all n samples.
func candidates(n, limit int) *roaring.Bitmap {
	if limit == 0 || limit > n {
		limit = n
	}
	bm := roaring.New()
	bm.AddRange(0, uint64(limit))
	return bm
}

func samples(ds *dataset.Dataset) int {
	if ds == nil {
		return 0
	}
	return ds.Len()
}
