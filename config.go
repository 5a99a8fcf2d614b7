package digitknn

import (
	"context"
	"fmt"
	"os"

	"github.com/hupe1980/digitknn/blobstore"
	"github.com/hupe1980/digitknn/blobstore/minio"
	"github.com/hupe1980/digitknn/blobstore/s3"
	"github.com/pelletier/go-toml/v2"
)

// Source kinds accepted in SourceConfig.Kind.
const (
	SourceLocal = "local"
	SourceS3    = "s3"
	SourceMinio = "minio"
)

// Config describes one classification run.
type Config struct {
	// DatasetImages and DatasetLabels name the IDX training files,
	// relative to the source.
	DatasetImages string `toml:"dataset_images"`
	DatasetLabels string `toml:"dataset_labels"`
	// Query names the headerless raw query image.
	Query string `toml:"query"`

	// KMin and KMax bound the inclusive range of neighbor counts.
	KMin int `toml:"k_min"`
	KMax int `toml:"k_max"`

	// Limit caps the number of leading training samples that may vote.
	// Zero means all samples.
	Limit int `toml:"limit"`

	// Invert replaces every query pixel p with 255-p before classifying.
	Invert bool `toml:"invert"`

	// ThrottleBytesPerSec limits dataset read throughput. Zero disables it.
	ThrottleBytesPerSec int `toml:"throttle_bytes_per_sec"`

	Source SourceConfig `toml:"source"`
	Log    LogConfig    `toml:"log"`
}

// SourceConfig selects where the input files are read from.
type SourceConfig struct {
	Kind      string `toml:"kind"`
	Root      string `toml:"root"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the configuration of the classic MNIST run: the
// training set in the working directory, K from 1 to 6 and the first
// 50000 samples.
func DefaultConfig() Config {
	return Config{
		DatasetImages: "train-images.idx3-ubyte",
		DatasetLabels: "train-labels.idx1-ubyte",
		Query:         "converted_28x28.raw",
		KMin:          1,
		KMax:          6,
		Limit:         50000,
		Invert:        true,
		Source: SourceConfig{
			Kind: SourceLocal,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads a TOML file and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	switch {
	case c.DatasetImages == "":
		return invalidConfig("dataset_images is empty")
	case c.DatasetLabels == "":
		return invalidConfig("dataset_labels is empty")
	case c.Query == "":
		return invalidConfig("query is empty")
	case c.KMin > c.KMax:
		return invalidConfig("k_min %d > k_max %d", c.KMin, c.KMax)
	case c.Limit < 0:
		return invalidConfig("negative limit %d", c.Limit)
	case c.ThrottleBytesPerSec < 0:
		return invalidConfig("negative throttle_bytes_per_sec %d", c.ThrottleBytesPerSec)
	}

	switch c.Source.Kind {
	case "", SourceLocal:
	case SourceS3, SourceMinio:
		if c.Source.Bucket == "" {
			return invalidConfig("source %s requires a bucket", c.Source.Kind)
		}
		if c.Source.Kind == SourceMinio && c.Source.Endpoint == "" {
			return invalidConfig("source minio requires an endpoint")
		}
	default:
		return invalidConfig("unknown source kind %q", c.Source.Kind)
	}
	return nil
}

// OpenStore builds the BlobStore described by the Source section,
// throttled if ThrottleBytesPerSec is set.
func (c Config) OpenStore(ctx context.Context) (blobstore.BlobStore, error) {
	var (
		store blobstore.BlobStore
		err   error
	)

	switch c.Source.Kind {
	case "", SourceLocal:
		store = blobstore.NewLocalStore(c.Source.Root)
	case SourceS3:
		store, err = s3.NewFromConfig(ctx, c.Source.Bucket, c.Source.Prefix, c.Source.Region, c.Source.Endpoint)
	case SourceMinio:
		store, err = minio.New(c.Source.Endpoint, c.Source.AccessKey, c.Source.SecretKey, c.Source.UseSSL, c.Source.Bucket, c.Source.Prefix)
	default:
		err = invalidConfig("unknown source kind %q", c.Source.Kind)
	}
	if err != nil {
		return nil, err
	}

	return blobstore.NewThrottledStore(store, c.ThrottleBytesPerSec), nil
}
