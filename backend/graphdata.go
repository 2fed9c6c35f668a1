package backend

// GraphData is a single sample of a graph: a value at a key.
type GraphData struct {
	Key, Value float64
}

var _ DataPoint = GraphData{}

func (d GraphData) SortKey() float64   { return d.Key }
func (d GraphData) MainKey() float64   { return d.Key }
func (d GraphData) MainValue() float64 { return d.Value }
func (d GraphData) ValueRange() Range  { return Range{Lower: d.Value, Upper: d.Value} }

// GraphDataContainer stores the samples of one or more graphs.
type GraphDataContainer = Container[GraphData]

// NewGraphDataContainer returns an empty sample container.
func NewGraphDataContainer() *GraphDataContainer {
	return NewContainer[GraphData]()
}

// GraphDataFrom pairs up keys and values. Surplus elements of the longer
// slice are ignored.
func GraphDataFrom(keys, values []float64) []GraphData {
	n := min(len(keys), len(values))
	out := make([]GraphData, n)
	for i := range n {
		out[i] = GraphData{Key: keys[i], Value: values[i]}
	}
	return out
}
