// Package distance provides pixel-space distance calculations.
//
// Images are compared as raw uint8 vectors with integer arithmetic, so
// results are exact and independent of accumulation order.
//
// # Supported Metrics
//
//   - MetricL2: Squared Euclidean distance (default)
//
// # Usage
//
//	d := distance.SquaredL2(a, b)
package distance
