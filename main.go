package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/plot-wiser/backend"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: plot the series of a csv trace
Usage:

 %[1]s [trace.csv]

OR

 graph-synth -output trace.csv & %[1]s -follow trace.csv

OR

 graph-synth | %[1]s -

The first column of the trace holds the keys, every other column is plotted
as a series against it.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	follow := flag.Bool("follow", false, "Keep reading rows appended to the trace")
	flag.Parse()
	if *follow && flag.NArg() == 0 {
		log.Fatalf("-follow requires a trace file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	ds, err := backend.NewDatasource(ctx)
	if err != nil {
		log.Fatal(err)
	}
	switch name := flag.Arg(0); name {
	case "":
	case "-":
		ds.LoadFromStream("stdin", backend.ModeReplaying, os.Stdin)
	default:
		if err := ds.LoadFromPath(name, *follow); err != nil {
			log.Fatal(err)
		}
	}
	bundle := backend.NewBundle(ds)

	go func() {
		w := app.NewWindow(app.Title("Plot Wiser"))
		err := loop(ctx, w, bundle)
		cancel()
		if closeErr := ds.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed closing datasource: %w", closeErr))
		}
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle) error {
	expl := explorer.NewExplorer(w)
	ui := NewUI(backend.NewWindowState(ctx, bundle, w), expl)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
