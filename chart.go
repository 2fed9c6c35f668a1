package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"slices"
	"strconv"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"git.sr.ht/~whereswaldon/plot-wiser/backend"
	"git.sr.ht/~whereswaldon/plot-wiser/giopaint"
	"git.sr.ht/~whereswaldon/plot-wiser/graph"
	"git.sr.ht/~whereswaldon/plot-wiser/palette"
	"github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

// lineStyles are the styles offered by the chart controls, with their
// labels.
var lineStyles = []struct {
	style graph.LineStyle
	label string
}{
	{graph.LineStyleLine, "Line"},
	{graph.LineStyleStepLeft, "Steps"},
	{graph.LineStyleImpulse, "Impulses"},
	{graph.LineStyleNone, "Points"},
}

// seriesStats is a snapshot of a series taken while holding the dataset
// lock, for use by the legend.
type seriesStats struct {
	name    string
	samples int
	values  backend.Range
	ok      bool
}

// hoverValue is the sample of one series closest to the pointer.
type hoverValue struct {
	series int
	data   backend.GraphData
	hit    bool
}

// Chart displays every series of a dataset on one plot, followed by a
// legend.
type Chart struct {
	data *backend.RWBox[backend.Dataset]
	plot *graph.Plot

	Enabled   []*widget.Bool
	Filled    widget.Bool
	LogScale  widget.Bool
	lineStyle widget.Enum

	zoom   gesture.Scroll
	pan    gesture.Scroll
	panBar widget.Scrollbar
	// span is the width of the key range shown while following new data.
	// Zero shows all data.
	span     float64
	paused   bool
	pauseBtn widget.Clickable
	keyTable component.GridState

	keyName string
	stats   []seriesStats
	full    backend.Range
	hovered []hoverValue

	// hover gesture state
	pos       f32.Point
	isHovered bool
}

func NewChart(data *backend.RWBox[backend.Dataset]) *Chart {
	return &Chart{
		data:      data,
		plot:      graph.NewPlot(),
		lineStyle: widget.Enum{Value: graph.LineStyleLine.String()},
	}
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

// syncGraphs keeps one graph per series of ds. When ds has been replaced by
// a new trace, the plot starts over.
func (c *Chart) syncGraphs(ds *backend.Dataset) {
	for i, g := range c.plot.Graphs() {
		if i >= len(ds.Series) || g.Data() != ds.Series[i].Data {
			c.plot.Clear()
			c.Enabled = nil
			c.span = 0
			c.paused = false
			break
		}
	}
	for i := len(c.plot.Graphs()); i < len(ds.Series); i++ {
		g, err := c.plot.AddGraph()
		if err != nil {
			log.Printf("failed adding graph for %q: %v", ds.Series[i].Name, err)
			return
		}
		g.SetName(ds.Series[i].Name)
		g.SetSharedData(ds.Series[i].Data)
		c.Enabled = append(c.Enabled, &widget.Bool{Value: true})
	}
	c.keyName = ds.KeyName
}

// applyStyle pushes the state of the chart controls into the graphs.
func (c *Chart) applyStyle(penWidth float64) {
	style := graph.LineStyleLine
	if err := style.UnmarshalText([]byte(c.lineStyle.Value)); err != nil {
		style = graph.LineStyleLine
	}
	scale := graph.ScaleLinear
	if c.LogScale.Value {
		scale = graph.ScaleLogarithmic
	}
	if c.plot.ValueAxis.ScaleType() != scale {
		c.plot.ValueAxis.SetScaleType(scale)
	}
	for i, g := range c.plot.Graphs() {
		g.SetVisible(c.Enabled[i].Value)
		g.SetLineStyle(style)
		g.SetPen(graph.Pen{Color: seriesColor(i, true), Width: penWidth})
		var brush graph.Brush
		if c.Filled.Value {
			brush.Color = palette.WithAlpha(palette.At(i), fillAlpha)
		}
		g.SetBrush(brush)
		var scatter graph.ScatterStyle
		if style == graph.LineStyleNone {
			scatter.Shape = graph.ScatterDisc
			scatter.Size = 2 * penWidth
		}
		g.SetScatterStyle(scatter)
	}
}

// followRange returns the last span of full, or all of full if span is
// unset or wider.
func followRange(full backend.Range, span float64) backend.Range {
	if span <= 0 || span >= full.Size() {
		return full
	}
	return backend.Range{Lower: full.Upper - span, Upper: full.Upper}
}

// clampView shifts view so that it stays within full where possible,
// keeping its size.
func clampView(view, full backend.Range) backend.Range {
	if view.Size() >= full.Size() {
		return view
	}
	if shift := view.Upper - full.Upper; shift > 0 {
		view.Lower -= shift
		view.Upper -= shift
	}
	if shift := full.Lower - view.Lower; shift > 0 {
		view.Lower += shift
		view.Upper += shift
	}
	return view
}

// viewportFraction returns the position of view within full as fractions
// suitable for a scrollbar.
func viewportFraction(view, full backend.Range) (start, end float32) {
	if !(full.Size() > 0) {
		return 0, 1
	}
	start = float32((view.Lower - full.Lower) / full.Size())
	end = float32((view.Upper - full.Lower) / full.Size())
	return max(start, 0), min(end, 1)
}

// niceTicks returns round values within r, about n of them on a linear
// scale and one per decade on a logarithmic one.
func niceTicks(r backend.Range, scale graph.ScaleType, n int) []float64 {
	if n < 1 || !(r.Size() > 0) || math.IsInf(r.Size(), 0) {
		return nil
	}
	var out []float64
	if scale == graph.ScaleLogarithmic {
		if r.Lower <= 0 {
			return nil
		}
		for e := ceil(math.Log10(r.Lower)); e <= floor(math.Log10(r.Upper)); e++ {
			out = append(out, math.Pow(10, e))
		}
		return out
	}
	raw := r.Size() / float64(n)
	mag := math.Pow(10, floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{1, 2, 5, 10} {
		step = m * mag
		if step >= raw {
			break
		}
	}
	for k := ceil(r.Lower / step); k*step <= r.Upper; k++ {
		out = append(out, k*step)
	}
	return out
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func (c *Chart) Update(gtx C) {
	if c.pauseBtn.Clicked(gtx) {
		c.paused = !c.paused
	}
	c.Filled.Update(gtx)
	c.LogScale.Update(gtx)
	c.lineStyle.Update(gtx)
	for _, enabled := range c.Enabled {
		enabled.Update(gtx)
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move,
		})
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			switch ev.Kind {
			case pointer.Enter:
				c.isHovered = true
				c.pos = ev.Position
			case pointer.Leave, pointer.Cancel:
				c.isHovered = false
			case pointer.Move:
				c.pos = ev.Position
			}
		}
	}
}

// updateView applies the zoom and pan gestures to the key axis, then
// follows new data unless paused. size is the size of the plot area.
func (c *Chart) updateView(gtx C, size image.Point) {
	keys := c.plot.KeyAxis
	if dist := c.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6)); dist != 0 && size.Y > 0 {
		factor := 1 + float64(dist)/float64(size.Y)
		keys.Zoom(factor, float64(c.pos.X))
		c.span = keys.Range().Size()
	}
	panned := false
	if dist := c.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0)); dist != 0 {
		keys.Pan(-float64(dist))
		panned = true
	}
	if dist := c.panBar.ScrollDistance(); dist != 0 {
		r := keys.Range()
		delta := float64(dist) * c.full.Size()
		keys.SetRange(backend.Range{Lower: r.Lower + delta, Upper: r.Upper + delta})
		panned = true
	}
	if panned {
		c.paused = true
		keys.SetRange(clampView(keys.Range(), c.full))
	}
	if !c.paused {
		keys.SetRange(followRange(c.full, c.span))
	}
	c.plot.RescaleValueAxis(true)
}

// snapshot copies what the legend and hover display need out of ds.
func (c *Chart) snapshot(ds *backend.Dataset) {
	c.stats = c.stats[:0]
	domain := c.plot.ValueAxis.SignDomain()
	for _, s := range ds.Series {
		values, ok := s.Data.ValueRange(domain)
		c.stats = append(c.stats, seriesStats{
			name:    s.Name,
			samples: s.Data.Len(),
			values:  values,
			ok:      ok,
		})
	}
	c.hovered = c.hovered[:0]
	if !c.isHovered {
		return
	}
	pos := graph.Pt(float64(c.pos.X), float64(c.pos.Y))
	hit, _ := c.plot.GraphAt(pos)
	for i, g := range c.plot.Graphs() {
		var details graph.SelectDetails
		if g.SelectTest(pos, false, &details) < 0 {
			continue
		}
		c.hovered = append(c.hovered, hoverValue{series: i, data: details.Data, hit: g == hit})
	}
	slices.SortStableFunc(c.hovered, func(a, b hoverValue) int {
		switch {
		case a.data.Value > b.data.Value:
			return -1
		case a.data.Value < b.data.Value:
			return 1
		}
		return 0
	})
}

// layoutPlot draws the graphs into the full constraints, along with the
// hover readout and the pan scrollbar.
func (c *Chart) layoutPlot(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Max
	c.data.Read(func(ds *backend.Dataset) {
		c.syncGraphs(ds)
		c.applyStyle(float64(gtx.Metric.PxPerDp) * 1.5)
		c.full, _ = ds.KeyRange(c.plot.KeyAxis.SignDomain())
		c.plot.SetRect(image.Rectangle{Max: size})
		c.updateView(gtx, size)
		c.snapshot(ds)

		defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
		c.pan.Add(gtx.Ops)
		c.zoom.Add(gtx.Ops)
		event.Op(gtx.Ops, c)
		c.layoutGrid(gtx)
		c.plot.Draw(giopaint.Painter{Ops: gtx.Ops})
	})
	if c.isHovered {
		c.layoutHover(gtx, th)
	}
	vpStart, vpEnd := viewportFraction(c.plot.KeyAxis.Range(), c.full)
	return layout.Stack{Alignment: layout.S}.Layout(gtx,
		layout.Stacked(func(gtx C) D {
			return D{Size: size}
		}),
		layout.Stacked(func(gtx C) D {
			scrollbar := material.Scrollbar(th, &c.panBar)
			scrollbar.Track.MajorPadding = 0
			scrollbar.Track.MinorPadding = 0
			scrollbar.Indicator.CornerRadius = 0
			scrollbar.Indicator.Color.A = 100
			return scrollbar.Layout(gtx, layout.Horizontal, vpStart, vpEnd)
		}),
	)
}

// layoutGrid draws a line across the plot at each value axis tick.
func (c *Chart) layoutGrid(gtx C) {
	oneDp := gtx.Dp(1)
	axis := c.plot.ValueAxis
	for i, v := range niceTicks(axis.Range(), axis.ScaleType(), 8) {
		y := int(math.Round(axis.CoordToPixel(v)))
		a := uint8(50)
		if v == 0 || (i == 0 && axis.ScaleType() == graph.ScaleLogarithmic) {
			a = 100
		}
		paint.FillShape(gtx.Ops, color.NRGBA{A: a}, clip.Rect{
			Min: image.Point{Y: y},
			Max: image.Point{X: gtx.Constraints.Max.X, Y: y + oneDp},
		}.Op())
	}
}

func (c *Chart) layoutHover(gtx C, th *material.Theme) {
	xR := ceil(c.pos.X)
	xL := xR - float32(gtx.Dp(1))
	children := make([]layout.FlexChild, 0, len(c.hovered)+1)
	if len(c.hovered) > 0 {
		key := c.hovered[0].data.Key
		children = append(children, layout.Rigid(material.Caption(th, c.keyName+" = "+formatTick(key)).Layout))
	}
	for _, h := range c.hovered {
		children = append(children, layout.Rigid(func(gtx C) D {
			label := material.Body2(th, formatTick(h.data.Value))
			if h.hit {
				label.Font.Weight = font.Bold
			}
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(label.Layout),
				layout.Rigid(layout.Spacer{Width: 8}.Layout),
				layout.Rigid(func(gtx C) D {
					size := image.Pt(gtx.Dp(8), gtx.Dp(8))
					paint.FillShape(gtx.Ops, seriesColor(h.series, true), clip.Ellipse{Max: size}.Op(gtx.Ops))
					return D{Size: size}
				}),
			)
		}))
	}
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	hoverInfoDims, hoverInfoCall := rec(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 150}, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(10).Layout(gtx, func(gtx C) D {
					return layout.Flex{
						Axis:      layout.Vertical,
						Alignment: layout.End,
					}.Layout(gtx, children...)
				})
			},
		)
	})
	gtx.Constraints = origConstraints

	pos := image.Point{}
	if int(xL) > gtx.Constraints.Max.X-int(xR) {
		pos.X = max(int(xL)-hoverInfoDims.Size.X, 0)
	} else {
		pos.X = min(int(xR), gtx.Constraints.Max.X-hoverInfoDims.Size.X)
	}
	if offscreenY := gtx.Constraints.Max.Y - (int(c.pos.Y) + hoverInfoDims.Size.Y); offscreenY < 0 {
		pos.Y = int(c.pos.Y) + offscreenY
	} else {
		pos.Y = int(c.pos.Y)
	}
	paint.FillShape(gtx.Ops, color.NRGBA{A: 255}, clip.Rect{
		Min: image.Point{X: int(xL)},
		Max: image.Point{X: int(xR), Y: gtx.Constraints.Max.Y},
	}.Op())
	if len(c.hovered) == 0 {
		return
	}
	transform := op.Offset(pos).Push(gtx.Ops)
	hoverInfoCall.Add(gtx.Ops)
	transform.Pop()
}

// layoutValueLabels draws the value axis tick labels, right aligned, at the
// heights of their grid lines.
func (c *Chart) layoutValueLabels(gtx C, th *material.Theme, plotHeight int) D {
	axis := c.plot.ValueAxis
	gtx.Constraints.Min = image.Point{}
	for _, v := range niceTicks(axis.Range(), axis.ScaleType(), 8) {
		label := material.Caption(th, formatTick(v))
		label.MaxLines = 1
		dims, call := rec(gtx, label.Layout)
		y := int(math.Round(axis.CoordToPixel(v))) - dims.Size.Y/2
		y = max(0, min(y, plotHeight-dims.Size.Y))
		stack := op.Offset(image.Pt(gtx.Constraints.Max.X-dims.Size.X, y)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
	return D{Size: image.Pt(gtx.Constraints.Max.X, plotHeight)}
}

// layoutKeyLabels draws the key axis tick labels below the plot, skipping
// labels that would overlap their left neighbour.
func (c *Chart) layoutKeyLabels(gtx C, th *material.Theme) D {
	axis := c.plot.KeyAxis
	gap := gtx.Dp(10)
	gtx.Constraints.Min = image.Point{}
	usedX := math.MinInt
	height := 0
	for _, v := range niceTicks(axis.Range(), axis.ScaleType(), 8) {
		label := material.Caption(th, formatTick(v))
		label.MaxLines = 1
		dims, call := rec(gtx, label.Layout)
		x := int(math.Round(axis.CoordToPixel(v))) - dims.Size.X/2
		x = max(0, min(x, gtx.Constraints.Max.X-dims.Size.X))
		if x < usedX+gap {
			continue
		}
		stack := op.Offset(image.Pt(x, 0)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
		usedX = x + dims.Size.X
		height = max(height, dims.Size.Y)
	}
	return D{Size: image.Pt(gtx.Constraints.Max.X, height)}
}

func (c *Chart) Layout(gtx C, th *material.Theme) D {
	c.Update(gtx)
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}

	// Determine the amount of space to reserve for axis labels.
	axisLabelDims, _ := rec(gtx, material.Caption(th, "-0.000e+00").Layout)

	// Determine the space occupied by the controls and the key.
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	controlsDims, controlsCall := rec(gtx, func(gtx C) D {
		return c.layoutControls(gtx, th)
	})
	gtx.Constraints.Max.Y = max(gtx.Constraints.Max.Y/3, 0)
	keyDims, keyCall := rec(gtx, func(gtx C) D {
		return c.layoutKey(gtx, th)
	})

	// Lay out the plot in the remaining space after accounting for axis
	// labels, the controls and the key.
	plotSize := origConstraints.Max.Sub(image.Point{
		X: axisLabelDims.Size.X,
		Y: axisLabelDims.Size.Y*2 + controlsDims.Size.Y + keyDims.Size.Y,
	})
	gtx.Constraints = layout.Exact(image.Pt(max(plotSize.X, 0), max(plotSize.Y, 0)))
	plotDims, plotCall := rec(gtx, func(gtx C) D {
		return c.layoutPlot(gtx, th)
	})
	plotHeight := plotDims.Size.Y
	gtx.Constraints = origConstraints

	keyAxisLabel := material.Body2(th, c.keyAxisTitle())
	keyAxisLabel.MaxLines = 1
	keyAxisLabel.Alignment = text.Middle
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			controlsCall.Add(gtx.Ops)
			return controlsDims
		}),
		layout.Flexed(1, func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							gtx.Constraints.Max.X = axisLabelDims.Size.X
							return c.layoutValueLabels(gtx, th, plotHeight)
						}),
						layout.Rigid(func(gtx C) D {
							gtx.Constraints = layout.Exact(image.Point{
								X: axisLabelDims.Size.X,
								Y: axisLabelDims.Size.Y * 2,
							})
							icon := pauseIcon
							if c.paused {
								icon = playIcon
							}
							return material.Clickable(gtx, &c.pauseBtn, func(gtx C) D {
								return layout.Center.Layout(gtx, func(gtx C) D {
									return icon.Layout(gtx, th.Fg)
								})
							})
						}),
					)
				}),
				layout.Flexed(1, func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							plotCall.Add(gtx.Ops)
							return plotDims
						}),
						layout.Rigid(func(gtx C) D {
							return c.layoutKeyLabels(gtx, th)
						}),
						layout.Rigid(keyAxisLabel.Layout),
					)
				}),
			)
		}),
		layout.Rigid(func(gtx C) D {
			keyCall.Add(gtx.Ops)
			return keyDims
		}),
	)
}

func (c *Chart) keyAxisTitle() string {
	r := c.plot.KeyAxis.Range()
	title := fmt.Sprintf("%s (spans %s)", c.keyName, formatTick(r.Size()))
	if c.paused {
		title += ", paused"
	}
	return title
}

func (c *Chart) layoutControls(gtx C, th *material.Theme) D {
	children := make([]layout.FlexChild, 0, len(lineStyles)+2)
	for _, ls := range lineStyles {
		children = append(children, layout.Flexed(1, Tab(th, &c.lineStyle, ls.style.String(), ls.label).Layout))
	}
	children = append(children,
		layout.Rigid(material.CheckBox(th, &c.Filled, "Fill").Layout),
		layout.Rigid(material.CheckBox(th, &c.LogScale, "Log scale").Layout),
	)
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
}

// Columns of the legend table.
const (
	colorCol = iota
	seriesNameCol
	samplesCol
	valueRangeCol
	numCols
)

// layoutKey draws the legend table. Clicking a series' colour swatch hides
// or shows it.
func (c *Chart) layoutKey(gtx C, th *material.Theme) D {
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	statColWidth := gtx.Dp(120)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - 2*statColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	stats := c.stats
	return table.Layout(gtx, len(stats)+1, numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}

			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case seriesNameCol:
				size = nameColWidth
			case samplesCol, valueRangeCol:
				size = statColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Color")
			case seriesNameCol:
				l = material.Body1(th, "Data Series Name")
				l.Alignment = text.Middle
			case samplesCol:
				l = material.Body1(th, "Samples")
				l.Alignment = text.End
			case valueRangeCol:
				l = material.Body1(th, "Value Range")
				l.Alignment = text.End
			default:
				l = material.Body1(th, "???")
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				if row == len(stats) {
					return c.layoutTotalCell(gtx, th, col)
				}
				if row >= len(c.Enabled) {
					return D{Size: gtx.Constraints.Min}
				}
				enabled := c.Enabled[row].Value
				var l material.LabelStyle
				switch col {
				case colorCol:
					return c.Enabled[row].Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							sideLen := gtx.Dp(10)
							sz := image.Pt(sideLen, sideLen)
							paint.FillShape(gtx.Ops, seriesColor(row, enabled), clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case seriesNameCol:
					l = material.Body2(th, stats[row].name)
				case samplesCol:
					l = material.Body2(th, humanize.Comma(int64(stats[row].samples)))
					l.Alignment = text.End
				case valueRangeCol:
					r := "-"
					if stats[row].ok {
						r = formatTick(stats[row].values.Lower) + " .. " + formatTick(stats[row].values.Upper)
					}
					l = material.Body2(th, r)
					l.Alignment = text.End
				default:
					return D{Size: gtx.Constraints.Max}
				}
				if !enabled {
					l.Color.A = disabledAlpha
				}
				return l.Layout(gtx)
			})
			if row&1 != 0 {
				paint.FillShape(gtx.Ops, palette.WithAlpha(palette.At(row), stripeAlpha), clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}

func (c *Chart) layoutTotalCell(gtx C, th *material.Theme, col int) D {
	switch col {
	case seriesNameCol:
		return material.Body2(th, "Total of enabled series").Layout(gtx)
	case samplesCol:
		total := 0
		for i, s := range c.stats {
			if i < len(c.Enabled) && c.Enabled[i].Value {
				total += s.samples
			}
		}
		l := material.Body2(th, humanize.Comma(int64(total)))
		l.Alignment = text.End
		return l.Layout(gtx)
	default:
		return D{Size: gtx.Constraints.Min}
	}
}
