package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"git.sr.ht/~whereswaldon/plot-wiser/signals"
	"github.com/dustin/go-humanize"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: write a csv trace of synthetic signals
Usage:

 %[1]s > file

OR

 %[1]s -output file & plot-wiser -follow file

Signal kinds: %[2]s

`, os.Args[0], strings.Join(signals.Kinds, ", "))
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	dur := flag.Duration("sample-interval", 100*time.Millisecond, "Interval between samples")
	outputName := flag.String("output", "-", "Output file for CSV data")
	kinds := flag.String("signals", "sine,walk,integral,spikes,gappy", "Comma-separated list of signal kinds to emit")
	count := flag.Int("count", 0, "Number of samples to write before exiting (0 runs until interrupted)")
	instant := flag.Bool("instant", false, "Write samples as fast as possible, spacing keys by the sample interval")
	seed := flag.Uint64("seed", 1, "Seed for random signals")
	flag.Parse()

	sigs, err := signals.Parse(*kinds, *seed)
	if err != nil {
		log.Fatalf("failed parsing signals: %v", err)
	}
	if *instant && *count <= 0 {
		log.Fatalf("-instant requires a positive -count")
	}

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}
	rec, err := signals.NewRecorder(output, "time (s)", sigs...)
	if err != nil {
		log.Fatal(err)
	}

	if *instant {
		err = writeInstant(rec, *count, *dur)
	} else {
		err = writeLive(rec, *count, *dur)
	}
	if closeErr := output.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("failed closing output: %w", closeErr))
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s samples of %d signals", humanize.Comma(int64(rec.Rows())), len(sigs))
}

func writeInstant(rec *signals.Recorder, count int, interval time.Duration) error {
	for i := range count {
		if err := rec.Record(float64(i) * interval.Seconds()); err != nil {
			return err
		}
	}
	return nil
}

func writeLive(rec *signals.Recorder, count int, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	start := time.Now()
	for count <= 0 || rec.Rows() < count {
		select {
		case <-sigChan:
			// We've gotten an interrupt; shut down.
			return nil
		case t := <-ticker.C:
			if err := rec.Record(t.Sub(start).Seconds()); err != nil {
				return err
			}
		}
	}
	return nil
}
