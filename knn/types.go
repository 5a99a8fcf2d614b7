package knn

import "strconv"

// Label is a ranked digit, or None.
type Label int8

// None marks a ranking slot without a qualifying label.
const None Label = -1

// Valid reports whether l is a digit.
func (l Label) Valid() bool {
	return l >= 0 && l <= 9
}

func (l Label) String() string {
	if !l.Valid() {
		return "None"
	}
	return strconv.Itoa(int(l))
}

// Result holds the top three labels of a vote, best first.
type Result struct {
	Primary   Label `json:"primary"`
	Secondary Label `json:"secondary"`
	Tertiary  Label `json:"tertiary"`
}

// Labels returns the ranking as an array.
func (r Result) Labels() [3]Label {
	return [3]Label{r.Primary, r.Secondary, r.Tertiary}
}

// Neighbor is the distance from the query to one training sample.
type Neighbor struct {
	Index    int
	Distance uint64
	Label    uint8
}
