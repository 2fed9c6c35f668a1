package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
	"git.sr.ht/~whereswaldon/plot-wiser/graph"
	"git.sr.ht/~whereswaldon/plot-wiser/rasterpaint"
	"git.sr.ht/~whereswaldon/plot-wiser/vgpaint"
	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot/vg"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: render a csv trace to an image
Usage:

 %[1]s -input trace.csv -output plot.svg [-config plot.toml]

PNG output is rasterized directly unless the config selects the "gonum"
engine; SVG and PDF output is always drawn with axes and a legend.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	inputName := flag.String("input", "-", "CSV trace to render")
	outputName := flag.String("output", "", "Output image (.png, .svg or .pdf)")
	configName := flag.String("config", "", "TOML plot description")
	width := flag.Int("width", 0, "Image width, overriding the config")
	height := flag.Int("height", 0, "Image height, overriding the config")
	flag.Parse()
	if *outputName == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := defaultConfig()
	if *configName != "" {
		f, err := os.Open(*configName)
		if err != nil {
			log.Fatalf("failed opening config: %v", err)
		}
		cfg, err = loadConfig(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed loading config %q: %v", *configName, err)
		}
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}

	var input io.ReadCloser = os.Stdin
	if *inputName != "-" {
		f, err := os.Open(*inputName)
		if err != nil {
			log.Fatalf("failed opening input: %v", err)
		}
		input = f
	}
	ds, err := backend.ReadDataset(input)
	input.Close()
	if err != nil {
		log.Fatalf("failed reading trace: %v", err)
	}
	log.Printf("read %s samples in %d series", humanize.Comma(int64(ds.Len())), len(ds.Series))

	plot, err := buildPlot(ds, cfg)
	if err != nil {
		log.Fatalf("failed building plot: %v", err)
	}
	if err := render(plot, cfg, ds.KeyName, *outputName); err != nil {
		log.Fatal(err)
	}
	if info, err := os.Stat(*outputName); err == nil {
		log.Printf("wrote %s (%s)", *outputName, humanize.Bytes(uint64(info.Size())))
	}
}

func engineFor(cfg Config, format string) (string, error) {
	engine := cfg.Engine
	if engine == "" {
		engine = "gonum"
		if format == "png" {
			engine = "raster"
		}
	}
	switch engine {
	case "raster":
		if format != "png" {
			return "", fmt.Errorf("raster engine cannot write %q files", format)
		}
	case "gonum":
	default:
		return "", fmt.Errorf("unknown engine %q", engine)
	}
	return engine, nil
}

// render draws plot into the file named output, in the format given by its
// extension.
func render(plot *graph.Plot, cfg Config, keyName, output string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(output), "."))
	engine, err := engineFor(cfg, format)
	if err != nil {
		return err
	}
	var background color.Color = color.White
	if cfg.Background != nil {
		background = cfg.Background.NRGBA
	}
	if engine == "gonum" {
		p := vgpaint.NewPlot(plot, cfg.Title)
		p.X.Label.Text = keyName
		p.BackgroundColor = background
		if err := p.Save(vg.Points(float64(cfg.Width)), vg.Points(float64(cfg.Height)), output); err != nil {
			return fmt.Errorf("saving %s: %w", output, err)
		}
		return nil
	}

	painter, _ := rasterpaint.NewImage(cfg.Width, cfg.Height, background)
	plot.SetRect(image.Rect(0, 0, cfg.Width, cfg.Height))
	plot.Draw(painter)
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	err = painter.WritePNG(f)
	if closeErr := f.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("closing output: %w", closeErr))
	}
	return err
}
