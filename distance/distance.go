package distance

import "fmt"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two
// pixel vectors. It panics if the vectors differ in length.
//
// The sum is computed in uint64; a single term is at most 255*255, so the
// result cannot overflow for any realistic image size.
func SquaredL2(a, b []byte) uint64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("distance: length mismatch %d != %d", len(a), len(b)))
	}

	var sum uint64
	i := 0
	for ; i+4 <= len(a); i += 4 {
		d0 := int32(a[i]) - int32(b[i])
		d1 := int32(a[i+1]) - int32(b[i+1])
		d2 := int32(a[i+2]) - int32(b[i+2])
		d3 := int32(a[i+3]) - int32(b[i+3])
		sum += uint64(d0*d0) + uint64(d1*d1) + uint64(d2*d2) + uint64(d3*d3)
	}
	for ; i < len(a); i++ {
		d := int32(a[i]) - int32(b[i])
		sum += uint64(d * d)
	}
	return sum
}

// Metric represents the distance metric used for image comparison.
type Metric int

const (
	MetricL2 Metric = iota
)

func (m Metric) String() string {
	switch m {
	case MetricL2:
		return "L2"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []byte) uint64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricL2:
		return SquaredL2, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
