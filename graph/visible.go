package graph

// visibleDataBounds returns the index range [begin, end) of the samples
// needed to draw the visible key range. One sample on either side of the
// range is included so that lines leaving the view are drawn up to its
// edge. The range is empty when no sample contributes to the view.
func (g *Graph) visibleDataBounds() (begin, end int) {
	n := g.data.Len()
	if n == 0 {
		return 0, 0
	}
	r := g.keyAxis.Range()
	innerBegin := g.data.FindBegin(r.Lower, false)
	innerEnd := g.data.FindEnd(r.Upper, false)
	if innerBegin == innerEnd && (innerBegin == 0 || innerEnd == n) {
		// Nothing inside the range, and no line crosses it.
		return 0, 0
	}
	return g.data.FindBegin(r.Lower, true), g.data.FindEnd(r.Upper, true)
}

// scatterDataBounds is like visibleDataBounds, but without the padding
// samples, which lie outside the view.
func (g *Graph) scatterDataBounds() (begin, end int) {
	if g.data.IsEmpty() {
		return 0, 0
	}
	r := g.keyAxis.Range()
	return g.data.FindBegin(r.Lower, false), g.data.FindEnd(r.Upper, false)
}
