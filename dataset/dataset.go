package dataset

import "errors"

// NumClasses is the number of distinct labels (digits 0-9).
const NumClasses = 10

// Dataset is an immutable set of training images with parallel labels.
type Dataset struct {
	rows   int
	cols   int
	images [][]byte
	labels []uint8
}

// New validates and wraps images and labels. The slices are retained, not
// copied; callers must not modify them afterwards.
func New(rows, cols int, images [][]byte, labels []uint8) (*Dataset, error) {
	if rows < 0 || cols < 0 {
		return nil, errors.New("dataset: negative dimensions")
	}
	if len(images) != len(labels) {
		return nil, &ErrLengthMismatch{Images: len(images), Labels: len(labels)}
	}

	dim := rows * cols
	for i, img := range images {
		if len(img) != dim {
			return nil, &ErrImageSize{Index: i, Expected: dim, Actual: len(img)}
		}
	}
	for i, l := range labels {
		if l >= NumClasses {
			return nil, &ErrInvalidLabel{Index: i, Label: l}
		}
	}

	return &Dataset{
		rows:   rows,
		cols:   cols,
		images: images,
		labels: labels,
	}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.images) }

// Rows returns the image height in pixels.
func (d *Dataset) Rows() int { return d.rows }

// Cols returns the image width in pixels.
func (d *Dataset) Cols() int { return d.cols }

// Dim returns the number of pixels per image.
func (d *Dataset) Dim() int { return d.rows * d.cols }

// Image returns the pixels of sample i. The slice must not be modified.
func (d *Dataset) Image(i int) []byte { return d.images[i] }

// Label returns the label of sample i.
func (d *Dataset) Label(i int) uint8 { return d.labels[i] }

// LabelCounts returns how often each digit occurs in the dataset.
func (d *Dataset) LabelCounts() [NumClasses]int {
	var counts [NumClasses]int
	for _, l := range d.labels {
		counts[l]++
	}
	return counts
}
