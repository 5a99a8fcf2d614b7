package knn

import (
	"github.com/hupe1980/digitknn/dataset"
	"github.com/hupe1980/digitknn/distance"
	"github.com/hupe1980/digitknn/internal/searcher"
)

// kernel is the pixel-space distance used for every comparison.
var kernel = func() distance.Func {
	f, err := distance.Provider(distance.MetricL2)
	if err != nil {
		panic(err)
	}
	return f
}()

// Classify returns the three best-ranked labels among the k training
// samples nearest to query.
//
// k <= 0 yields (None, None, None); k larger than the number of candidates
// lets every candidate vote. A query without exactly ds.Dim() pixels has
// no neighbors and also yields (None, None, None).
func Classify(k int, ds *dataset.Dataset, query []byte, optFns ...Option) Result {
	return Rank(Votes(Nearest(k, ds, query, optFns...)))
}

// Distances returns one Neighbor per training sample, in dataset order.
// It is the unselected view of the pass Nearest runs; nil if query does
// not have ds.Dim() pixels.
func Distances(ds *dataset.Dataset, query []byte) []Neighbor {
	if len(query) != ds.Dim() {
		return nil
	}
	out := make([]Neighbor, ds.Len())
	for i := range out {
		out[i] = measure(ds, query, i)
	}
	return out
}

func measure(ds *dataset.Dataset, query []byte, i int) Neighbor {
	return Neighbor{
		Index:    i,
		Distance: kernel(ds.Image(i), query),
		Label:    ds.Label(i),
	}
}

// Nearest selects the k training samples closest to query, sorted by
// ascending distance and, on equal distance, ascending dataset index.
func Nearest(k int, ds *dataset.Dataset, query []byte, optFns ...Option) []Neighbor {
	if k <= 0 || len(query) != ds.Dim() {
		return nil
	}

	o := applyOptions(optFns)

	pq := searcher.NewPriorityQueue(true, min(k, ds.Len()))

	push := func(i int) {
		n := measure(ds, query, i)
		pq.PushItemBounded(searcher.Item{Index: n.Index, Distance: n.Distance}, k)
	}

	if o.filter != nil {
		it := o.filter.Iterator()
		for it.HasNext() {
			i := int(it.Next())
			if i >= ds.Len() {
				break
			}
			push(i)
		}
	} else {
		for i := 0; i < ds.Len(); i++ {
			push(i)
		}
	}

	items := pq.Drain()
	out := make([]Neighbor, len(items))
	for i, it := range items {
		out[i] = Neighbor{
			Index:    it.Index,
			Distance: it.Distance,
			Label:    ds.Label(it.Index),
		}
	}
	return out
}

// Votes builds the label histogram of neighbors.
func Votes(neighbors []Neighbor) [dataset.NumClasses]int {
	var votes [dataset.NumClasses]int
	for _, n := range neighbors {
		votes[n.Label]++
	}
	return votes
}

// Rank picks the three most voted labels. Ties go to the smaller digit;
// co-equal labels take successive slots instead of sharing one.
func Rank(votes [dataset.NumClasses]int) Result {
	primary := pick(votes, None, None)
	secondary := pick(votes, primary, None)
	tertiary := pick(votes, primary, secondary)
	return Result{Primary: primary, Secondary: secondary, Tertiary: tertiary}
}

func pick(votes [dataset.NumClasses]int, skip1, skip2 Label) Label {
	best, common := None, 0
	for i, c := range votes {
		l := Label(i)
		if l == skip1 || l == skip2 {
			continue
		}
		if c > common {
			best, common = l, c
		}
	}
	return best
}
