package backend

// Series is one named value column of a trace, keyed by the trace's key
// column.
type Series struct {
	Name string
	Data *GraphDataContainer
}

// Dataset is the set of series read from a single trace.
type Dataset struct {
	KeyName string
	Series  []Series
}

// Initialized reports whether the dataset has series to display.
func (d *Dataset) Initialized() bool {
	return len(d.Series) > 0
}

// SetHeadings registers a series for each heading. The first heading names
// the key column. It may be invoked additional times to register new series,
// in which case headings holds only the new value columns.
func (d *Dataset) SetHeadings(headings []string) {
	if len(headings) == 0 {
		return
	}
	if d.KeyName == "" && len(d.Series) == 0 {
		d.KeyName = headings[0]
		headings = headings[1:]
	}
	for _, h := range headings {
		d.Series = append(d.Series, Series{Name: h, Data: NewGraphDataContainer()})
	}
}

// Row is one parsed record of a trace. Cells omitted from the record are
// absent from Values.
type Row struct {
	Key    float64
	Values []Cell
}

// Cell is the value of one series within a row.
type Cell struct {
	Series int
	Value  float64
}

// Insert merges a batch of rows into the dataset's series. Will panic if a
// cell refers to a series that was never registered via [SetHeadings].
func (d *Dataset) Insert(rows []Row) {
	batches := make([][]GraphData, len(d.Series))
	for _, row := range rows {
		for _, cell := range row.Values {
			batches[cell.Series] = append(batches[cell.Series], GraphData{Key: row.Key, Value: cell.Value})
		}
	}
	for i, batch := range batches {
		d.Series[i].Data.Add(batch, false)
	}
}

// Len returns the total number of samples held across all series.
func (d *Dataset) Len() int {
	n := 0
	for _, s := range d.Series {
		n += s.Data.Len()
	}
	return n
}

// KeyRange returns the union of the key ranges of all series.
func (d *Dataset) KeyRange(domain SignDomain) (Range, bool) {
	var out Range
	found := false
	for _, s := range d.Series {
		r, ok := s.Data.KeyRange(domain)
		if !ok {
			continue
		}
		if !found {
			out = r
			found = true
			continue
		}
		out = out.Union(r)
	}
	return out, found
}
