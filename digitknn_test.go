package digitknn

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/digitknn/blobstore"
	"github.com/hupe1980/digitknn/dataset"
	"github.com/hupe1980/digitknn/idx"
	"github.com/hupe1980/digitknn/knn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(v byte) []byte {
	return []byte{v, v, v, v}
}

// newStore returns a store holding a 2x2 training set where sample 0 is
// black with label 3 and sample 1 is white with label 8, plus a query.
func newStore(t *testing.T, queryPixels []byte) *blobstore.MemoryStore {
	t.Helper()
	ctx := context.Background()

	var images, labels bytes.Buffer
	require.NoError(t, idx.WriteImages(&images, 2, 2, [][]byte{uniform(0), uniform(255)}))
	require.NoError(t, idx.WriteLabels(&labels, []uint8{3, 8}))

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "images", images.Bytes()))
	require.NoError(t, store.Put(ctx, "labels", labels.Bytes()))
	require.NoError(t, store.Put(ctx, "query", queryPixels))
	return store
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DatasetImages = "images"
	cfg.DatasetLabels = "labels"
	cfg.Query = "query"
	cfg.KMin = 1
	cfg.KMax = 3
	return cfg
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("Inverted", func(t *testing.T) {
		// 250 inverts to 5, which is close to the black sample.
		metrics := &BasicMetricsCollector{}
		report, err := Run(ctx, testConfig(), WithStore(newStore(t, uniform(250))), WithMetricsCollector(metrics))
		require.NoError(t, err)

		assert.Equal(t, 2, report.Rows)
		assert.Equal(t, 2, report.Cols)
		assert.Equal(t, 2, report.Samples)
		assert.Equal(t, 2, report.Candidates)
		assert.Equal(t, uniform(5), report.Query)

		assert.Equal(t, []KResult{
			{K: 1, Result: knn.Result{Primary: 3, Secondary: knn.None, Tertiary: knn.None}},
			{K: 2, Result: knn.Result{Primary: 3, Secondary: 8, Tertiary: knn.None}},
			{K: 3, Result: knn.Result{Primary: 3, Secondary: 8, Tertiary: knn.None}},
		}, report.Results)

		stats := metrics.GetStats()
		assert.Equal(t, int64(1), stats.LoadCount)
		assert.Equal(t, int64(2), stats.LoadSamples)
		assert.Equal(t, int64(3), stats.ClassifyCount)
	})

	t.Run("NoInvert", func(t *testing.T) {
		cfg := testConfig()
		cfg.Invert = false
		cfg.KMax = 1

		report, err := Run(ctx, cfg, WithStore(newStore(t, uniform(250))))
		require.NoError(t, err)
		assert.Equal(t, knn.Label(8), report.Results[0].Result.Primary)
	})

	t.Run("Limit", func(t *testing.T) {
		cfg := testConfig()
		cfg.Limit = 1

		report, err := Run(ctx, cfg, WithStore(newStore(t, uniform(0))))
		require.NoError(t, err)
		assert.Equal(t, 1, report.Candidates)
		for _, r := range report.Results {
			assert.Equal(t, knn.Result{Primary: 3, Secondary: knn.None, Tertiary: knn.None}, r.Result, "k=%d", r.K)
		}
	})

	t.Run("NonPositiveK", func(t *testing.T) {
		cfg := testConfig()
		cfg.KMin = -1
		cfg.KMax = 0

		report, err := Run(ctx, cfg, WithStore(newStore(t, uniform(0))))
		require.NoError(t, err)
		require.Len(t, report.Results, 2)
		for _, r := range report.Results {
			assert.Equal(t, knn.Result{Primary: knn.None, Secondary: knn.None, Tertiary: knn.None}, r.Result)
		}
	})

	t.Run("LocalSource", func(t *testing.T) {
		dir := t.TempDir()

		var images, labels bytes.Buffer
		require.NoError(t, idx.WriteImages(&images, 2, 2, [][]byte{uniform(0), uniform(255)}))
		require.NoError(t, idx.WriteLabels(&labels, []uint8{3, 8}))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "images"), images.Bytes(), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "labels"), labels.Bytes(), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "query"), uniform(0), 0o600))

		cfg := testConfig()
		cfg.Source.Root = dir
		cfg.KMax = 1

		report, err := Run(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, knn.Label(8), report.Results[0].Result.Primary)
	})
}

func TestRun_LogsEveryK(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, slog.LevelDebug, "json")

	_, err := Run(context.Background(), testConfig(), WithStore(newStore(t, uniform(250))), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"dataset loaded"`)
	for _, k := range []string{`"k":1`, `"k":2`, `"k":3`} {
		assert.Contains(t, out, k)
	}
	assert.Contains(t, out, `"count":2`)
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingLabels", func(t *testing.T) {
		cfg := testConfig()
		cfg.DatasetLabels = "missing"

		metrics := &BasicMetricsCollector{}
		_, err := Run(ctx, cfg, WithStore(newStore(t, uniform(0))), WithMetricsCollector(metrics))

		var fo *idx.FileOpenError
		require.ErrorAs(t, err, &fo)
		assert.Equal(t, "missing", fo.Path)
		assert.Equal(t, int64(1), metrics.GetStats().LoadErrors)
	})

	t.Run("SwappedFiles", func(t *testing.T) {
		cfg := testConfig()
		cfg.DatasetImages, cfg.DatasetLabels = cfg.DatasetLabels, cfg.DatasetImages

		_, err := Run(ctx, cfg, WithStore(newStore(t, uniform(0))))

		var im *idx.InvalidMagicNumberError
		require.ErrorAs(t, err, &im)
		assert.Equal(t, idx.KindInvalidMagicNumber, idx.KindOf(err))
	})

	t.Run("ShortQuery", func(t *testing.T) {
		_, err := Run(ctx, testConfig(), WithStore(newStore(t, []byte{1, 2, 3})))
		assert.Equal(t, idx.KindTruncatedData, idx.KindOf(err))
	})

	t.Run("MissingQuery", func(t *testing.T) {
		cfg := testConfig()
		cfg.Query = "nope"

		_, err := Run(ctx, cfg, WithStore(newStore(t, uniform(0))))
		assert.Equal(t, idx.KindFileOpen, idx.KindOf(err))
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := testConfig()
		cfg.KMin = 5
		cfg.KMax = 1

		_, err := Run(ctx, cfg, WithStore(newStore(t, uniform(0))))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Run(cctx, testConfig(), WithStore(newStore(t, uniform(0))))
		assert.Error(t, err)
	})
}

func TestClassify(t *testing.T) {
	ds, err := dataset.New(2, 2, [][]byte{uniform(0), uniform(255)}, []uint8{3, 8})
	require.NoError(t, err)

	results, err := Classify(ds, uniform(10), 1, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, knn.Label(3), results[0].Result.Primary)
	assert.Equal(t, 2, results[1].K)

	_, err = Classify(ds, make([]byte, 5), 1, 1)

	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 4, dm.Expected)
	assert.Equal(t, 5, dm.Actual)
}
