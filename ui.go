package main

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/plot-wiser/backend"
	"github.com/dustin/go-humanize"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	chart       *Chart
	explorerBtn widget.Clickable
	loadErr     string

	th           *material.Theme
	statusStream *stream.Stream[backend.Status]
	status       backend.Status
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ws:           ws,
		th:           th,
		expl:         expl,
		chart:        NewChart(ws.Bundle.Datasource.Data()),
		statusStream: stream.New(ws.Controller, ws.Bundle.Datasource.Status),
	}
}

// Update the state of the UI and generate events.
func (ui *UI) Update(gtx C) {
	ui.statusStream.ReadInto(gtx, &ui.status, backend.Status{})
	if ui.explorerBtn.Clicked(gtx) {
		ui.ws.Bundle.Datasource.LoadFromFile(ui.expl)
	}
	ui.loadErr = ""
	if ui.status.Err != nil {
		ui.loadErr = ui.status.Err.Error()
	}
}

// statusText summarizes the ingestion status for the status line.
func statusText(s backend.Status) string {
	if s.Mode == backend.ModeNone {
		return "No trace loaded."
	}
	state := s.Mode.String()
	if s.Done {
		state = "loaded"
	}
	return fmt.Sprintf("%s %s: %s rows, %s samples", state, s.Source,
		humanize.Comma(int64(s.Rows)), humanize.Comma(int64(s.Samples)))
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

// Tab draws one option of an Enum as a bordered button, filled when
// selected.
func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) layoutStatusLine(gtx C) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			l := material.Body2(ui.th, statusText(ui.status))
			l.MaxLines = 1
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body2(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Rigid(material.Button(ui.th, &ui.explorerBtn, "Open Trace").Layout),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, ui.layoutStatusLine)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.chart.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No data yet.")
	if ui.status.Mode != backend.ModeNone {
		l.Text = "Waiting for data from " + ui.status.Source + "."
	}
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.explorerBtn, "Open Existing Trace").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	initialized := false
	ui.ws.Bundle.Datasource.Data().Read(func(ds *backend.Dataset) {
		initialized = ds.Initialized()
	})
	if initialized {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
