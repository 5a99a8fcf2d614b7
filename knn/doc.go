// Package knn classifies a digit image by majority vote among its K
// nearest training samples under squared Euclidean pixel distance.
//
// The search is exhaustive: every training image is compared with the
// query. The K nearest are selected with a bounded max-heap; among equal
// distances the sample that appears earlier in the dataset wins.
//
// The vote is ranked in three rounds. Each round scans the digits 0-9 in
// ascending order and keeps the first bucket with a strictly greater count
// than any seen before, skipping digits picked in earlier rounds. Empty
// buckets are never picked; a round without a candidate yields None.
//
//	res := knn.Classify(3, ds, query)
//	fmt.Println(res.Primary, res.Secondary, res.Tertiary)
package knn
