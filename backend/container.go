package backend

import (
	"cmp"
	"iter"
	"math"
	"slices"
	"sort"
)

// DataPoint is an entry that can be held in a Container. Entries are ordered
// by SortKey; MainKey and MainValue locate the entry on the key and value
// axes of a plot.
type DataPoint interface {
	SortKey() float64
	MainKey() float64
	MainValue() float64
	ValueRange() Range
}

// Container holds data points sorted by their sort key. The zero value is an
// empty container ready for use.
//
// The backing slice keeps a run of unused slots in front of the live data so
// that repeated insertion of new minimum keys (as happens when data is loaded
// backwards in time) does not shift the whole slice. These slots are never
// visible through the container's methods.
//
// Container performs no synchronization. Callers that share a container
// between goroutines must guard it, for instance with an RWBox.
type Container[T DataPoint] struct {
	data              []T
	prealloc          int
	preallocIteration int
	noAutoSqueeze     bool
}

// NewContainer returns an empty container.
func NewContainer[T DataPoint]() *Container[T] {
	return &Container[T]{}
}

func byKey[T DataPoint](a, b T) int {
	return cmp.Compare(a.SortKey(), b.SortKey())
}

func (c *Container[T]) live() []T {
	return c.data[c.prealloc:]
}

// Len returns the number of data points held.
func (c *Container[T]) Len() int {
	return len(c.data) - c.prealloc
}

// IsEmpty reports whether c holds no data points.
func (c *Container[T]) IsEmpty() bool {
	return c.Len() == 0
}

// At returns the i'th data point in key order.
func (c *Container[T]) At(i int) T {
	return c.data[c.prealloc+i]
}

// All iterates the data points in key order.
func (c *Container[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, d := range c.live() {
			if !yield(i, d) {
				return
			}
		}
	}
}

// Slice returns a read-only view of the data points with indices in
// [begin, end). The view is invalidated by the next mutation.
func (c *Container[T]) Slice(begin, end int) []T {
	return c.live()[begin:end:end]
}

// Values returns a copy of all data points in key order.
func (c *Container[T]) Values() []T {
	return slices.Clone(c.live())
}

// Lookup returns the data point stored at exactly key.
func (c *Container[T]) Lookup(key float64) (T, bool) {
	i := c.lowerBound(key)
	if i < c.Len() && c.At(i).SortKey() == key {
		return c.At(i), true
	}
	var zero T
	return zero, false
}

// SetAutoSqueeze controls whether the container releases unused capacity
// after removals. It is enabled by default.
func (c *Container[T]) SetAutoSqueeze(enabled bool) {
	c.noAutoSqueeze = !enabled
	if enabled {
		c.performAutoSqueeze()
	}
}

// AutoSqueeze reports whether c releases unused capacity after removals.
func (c *Container[T]) AutoSqueeze() bool {
	return !c.noAutoSqueeze
}

// SetContainer replaces the contents of c with a copy of the contents of
// other.
func (c *Container[T]) SetContainer(other *Container[T]) {
	if other == c {
		return
	}
	c.Set(other.live(), true)
}

// Set replaces the contents of the container with entries. If alreadySorted
// is false, the entries are sorted by key first. Passing alreadySorted for
// data that is not sorted leaves the container in an unspecified order.
func (c *Container[T]) Set(entries []T, alreadySorted bool) {
	data := make([]T, len(entries))
	copy(data, entries)
	c.data = data
	c.prealloc = 0
	c.preallocIteration = 0
	if !alreadySorted {
		c.Sort()
	}
}

// AddContainer merges the contents of other into c.
func (c *Container[T]) AddContainer(other *Container[T]) {
	if other == c {
		return
	}
	c.Add(other.live(), true)
}

// Add merges entries into the container. An entry whose key is already
// present replaces the stored entry, and when entries itself repeats a key
// the latest occurrence wins.
func (c *Container[T]) Add(entries []T, alreadySorted bool) {
	if len(entries) == 0 {
		return
	}
	batch := slices.Clone(entries)
	if !alreadySorted {
		slices.SortStableFunc(batch, byKey[T])
	}
	batch = keepLastOfEqualKeys(batch)
	if c.IsEmpty() {
		c.Set(batch, true)
		return
	}
	live := c.live()
	batchFirst, batchLast := batch[0].SortKey(), batch[len(batch)-1].SortKey()
	switch {
	case batchFirst > live[len(live)-1].SortKey():
		c.data = append(c.data, batch...)
	case batchLast < live[0].SortKey():
		c.preallocateGrow(len(batch))
		c.prealloc -= len(batch)
		copy(c.data[c.prealloc:], batch)
	default:
		c.mergeSorted(batch)
	}
}

// mergeSorted merges the sorted, key-unique batch into the live data. Stored
// entries sharing a key with a batch entry are dropped.
func (c *Container[T]) mergeSorted(batch []T) {
	live := c.live()
	merged := make([]T, 0, len(live)+len(batch))
	i, j := 0, 0
	for i < len(live) && j < len(batch) {
		a, b := live[i].SortKey(), batch[j].SortKey()
		switch {
		case a < b:
			merged = append(merged, live[i])
			i++
		case b < a:
			merged = append(merged, batch[j])
			j++
		default:
			for i < len(live) && live[i].SortKey() == b {
				i++
			}
			merged = append(merged, batch[j])
			j++
		}
	}
	merged = append(merged, live[i:]...)
	merged = append(merged, batch[j:]...)
	c.data = merged
	c.prealloc = 0
}

// keepLastOfEqualKeys compacts runs of equal keys in sorted data, keeping the
// last entry of each run.
func keepLastOfEqualKeys[T DataPoint](sorted []T) []T {
	out := sorted[:0]
	for i, d := range sorted {
		if i+1 < len(sorted) && sorted[i+1].SortKey() == d.SortKey() {
			continue
		}
		out = append(out, d)
	}
	return out
}

// AddOne inserts a single entry at its sorted position, replacing any entry
// with the same key.
func (c *Container[T]) AddOne(entry T) {
	key := entry.SortKey()
	if c.IsEmpty() || key > c.At(c.Len()-1).SortKey() {
		c.data = append(c.data, entry)
		return
	}
	if key < c.At(0).SortKey() {
		c.preallocateGrow(1)
		c.prealloc--
		c.data[c.prealloc] = entry
		return
	}
	begin := c.lowerBound(key)
	end := c.upperBound(key)
	if begin == end {
		c.data = slices.Insert(c.data, c.prealloc+begin, entry)
		return
	}
	c.data[c.prealloc+begin] = entry
	if end-begin > 1 {
		c.data = slices.Delete(c.data, c.prealloc+begin+1, c.prealloc+end)
	}
}

// RemoveBefore removes all entries with keys strictly below key. A NaN key
// removes nothing.
func (c *Container[T]) RemoveBefore(key float64) {
	if math.IsNaN(key) {
		return
	}
	i := c.lowerBound(key)
	if i == 0 {
		return
	}
	clear(c.data[c.prealloc : c.prealloc+i])
	c.prealloc += i
	c.performAutoSqueeze()
}

// RemoveAfter removes all entries with keys strictly above key. A NaN key
// removes nothing.
func (c *Container[T]) RemoveAfter(key float64) {
	if math.IsNaN(key) {
		return
	}
	i := c.upperBound(key)
	if i == c.Len() {
		return
	}
	clear(c.data[c.prealloc+i:])
	c.data = c.data[:c.prealloc+i]
	c.performAutoSqueeze()
}

// Remove removes all entries with keys in the closed interval
// [fromKey, toKey]. Empty or inverted intervals remove nothing.
func (c *Container[T]) Remove(fromKey, toKey float64) {
	if !(fromKey < toKey) || c.IsEmpty() {
		return
	}
	begin := c.lowerBound(fromKey)
	end := c.upperBound(toKey)
	if begin == end {
		return
	}
	c.data = slices.Delete(c.data, c.prealloc+begin, c.prealloc+end)
	c.performAutoSqueeze()
}

// RemoveKey removes the entries stored at exactly key.
func (c *Container[T]) RemoveKey(key float64) {
	begin := c.lowerBound(key)
	end := c.upperBound(key)
	if begin == end {
		return
	}
	if begin == 0 {
		clear(c.data[c.prealloc : c.prealloc+end])
		c.prealloc += end
	} else {
		c.data = slices.Delete(c.data, c.prealloc+begin, c.prealloc+end)
	}
	c.performAutoSqueeze()
}

// Clear removes all entries and releases the backing storage.
func (c *Container[T]) Clear() {
	c.data = nil
	c.prealloc = 0
	c.preallocIteration = 0
}

// Sort re-sorts the entries by key. Entries sharing a key keep their
// relative order.
func (c *Container[T]) Sort() {
	slices.SortStableFunc(c.live(), byKey[T])
}

// Squeeze releases unused capacity in front of (preAllocation) and behind
// (postAllocation) the stored entries.
func (c *Container[T]) Squeeze(preAllocation, postAllocation bool) {
	switch {
	case preAllocation && c.prealloc > 0:
		spare := 0
		if !postAllocation {
			spare = cap(c.data) - len(c.data)
		}
		data := make([]T, c.Len(), c.Len()+spare)
		copy(data, c.live())
		c.data = data
		c.prealloc = 0
		c.preallocIteration = 0
	case postAllocation && cap(c.data) > len(c.data):
		data := make([]T, len(c.data))
		copy(data, c.data)
		c.data = data
	}
}

// preallocateGrow ensures at least minimum unused slots in front of the live
// data. Each growth adds more slack than the last, up to a bound.
func (c *Container[T]) preallocateGrow(minimum int) {
	if minimum <= c.prealloc {
		return
	}
	grown := minimum + (1 << min(15, max(4, c.preallocIteration+4))) - 12
	c.preallocIteration++
	offset := grown - c.prealloc
	data := make([]T, len(c.data)+offset, cap(c.data)+offset)
	copy(data[grown:], c.live())
	c.data = data
	c.prealloc = grown
}

func (c *Container[T]) performAutoSqueeze() {
	if c.noAutoSqueeze {
		return
	}
	total := cap(c.data)
	post := cap(c.data) - len(c.data)
	used := float64(c.Len())
	var shrinkPre, shrinkPost bool
	switch {
	case total > 650000:
		shrinkPost = float64(post) > used*1.5
		shrinkPre = float64(c.prealloc*10) > used
	case total > 1000:
		shrinkPost = float64(post) > used*5
		shrinkPre = float64(c.prealloc) > used*1.5
	}
	if shrinkPre || shrinkPost {
		c.Squeeze(shrinkPre, shrinkPost)
	}
}

func (c *Container[T]) lowerBound(key float64) int {
	live := c.live()
	return sort.Search(len(live), func(i int) bool {
		return live[i].SortKey() >= key
	})
}

func (c *Container[T]) upperBound(key float64) int {
	live := c.live()
	return sort.Search(len(live), func(i int) bool {
		return live[i].SortKey() > key
	})
}

// FindBegin returns the index of the first entry with a key not below key.
// If expandedRange is set, the index is moved one entry further down (when
// possible) so that a line running into the range from the left can be
// drawn.
func (c *Container[T]) FindBegin(key float64, expandedRange bool) int {
	i := c.lowerBound(key)
	if expandedRange && i > 0 {
		i--
	}
	return i
}

// FindEnd returns the index one past the last entry with a key not above
// key. If expandedRange is set, one more entry is included when possible.
func (c *Container[T]) FindEnd(key float64, expandedRange bool) int {
	i := c.upperBound(key)
	if expandedRange && i < c.Len() {
		i++
	}
	return i
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func usable[T DataPoint](d T) bool {
	return finite(d.MainKey()) && finite(d.MainValue())
}

// KeyRange returns the span of keys restricted to signDomain. Entries with
// a non-finite value are ignored. The boolean result is false when no entry
// qualifies.
func (c *Container[T]) KeyRange(signDomain SignDomain) (Range, bool) {
	live := c.live()
	if len(live) == 0 {
		return Range{}, false
	}
	lowerFrom, upperFrom := 0, len(live)-1
	switch signDomain {
	case SignNegative:
		upperFrom = c.lowerBound(0) - 1
	case SignPositive:
		lowerFrom = c.upperBound(0)
	}
	var r Range
	lowerFound := false
	for i := lowerFrom; i <= upperFrom; i++ {
		if usable(live[i]) && signDomain.Admits(live[i].MainKey()) {
			r.Lower = live[i].MainKey()
			lowerFound = true
			break
		}
	}
	if !lowerFound {
		return Range{}, false
	}
	for i := upperFrom; i >= lowerFrom; i-- {
		if usable(live[i]) && signDomain.Admits(live[i].MainKey()) {
			r.Upper = live[i].MainKey()
			break
		}
	}
	return r, true
}

// ValueRange returns the span of values restricted to signDomain. Entries
// with a non-finite value are ignored. The boolean result is false when no
// entry qualifies.
func (c *Container[T]) ValueRange(signDomain SignDomain) (Range, bool) {
	return c.valueRangeBetween(signDomain, 0, c.Len())
}

// ValueRangeIn is like ValueRange, but only considers entries whose key lies
// within keyRange.
func (c *Container[T]) ValueRangeIn(signDomain SignDomain, keyRange Range) (Range, bool) {
	keyRange = keyRange.Normalize()
	return c.valueRangeBetween(signDomain, c.FindBegin(keyRange.Lower, false), c.FindEnd(keyRange.Upper, false))
}

func (c *Container[T]) valueRangeBetween(signDomain SignDomain, begin, end int) (Range, bool) {
	var r Range
	haveLower, haveUpper := false, false
	for _, d := range c.live()[begin:end] {
		vr := d.ValueRange()
		if finite(vr.Lower) && signDomain.Admits(vr.Lower) && (!haveLower || vr.Lower < r.Lower) {
			r.Lower = vr.Lower
			haveLower = true
		}
		if finite(vr.Upper) && signDomain.Admits(vr.Upper) && (!haveUpper || vr.Upper > r.Upper) {
			r.Upper = vr.Upper
			haveUpper = true
		}
	}
	if !haveLower || !haveUpper {
		return Range{}, false
	}
	return r, true
}
