package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"
)

// ErrNoSeries is returned for traces whose header names no value column.
var ErrNoSeries = errors.New("trace has no value columns")

// batchRows is the number of rows parsed before they are merged into the
// dataset.
const batchRows = 4096

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

type InputKind uint8

const (
	KindRows InputKind = iota
	KindHeadings
)

type InputData struct {
	Kind     InputKind
	Headings []string
	Rows     []Row
}

type Mode uint8

const (
	ModeNone Mode = iota
	ModeReplaying
	ModeFollowing
)

func (m Mode) String() string {
	switch m {
	case ModeReplaying:
		return "replaying"
	case ModeFollowing:
		return "following"
	default:
		return "idle"
	}
}

// Status describes the progress of the current ingestion.
type Status struct {
	Source  string
	Mode    Mode
	Rows    int
	Samples int
	Done    bool
	Err     error
}

// Datasource ingests CSV traces into a shared dataset. The first column of a
// trace is the key, every further column is a series of values.
type Datasource struct {
	appCtx  context.Context
	watcher *fsnotify.Watcher
	data    *RWBox[Dataset]

	lock        sync.Mutex
	status      Status
	subscribers map[chan Status]struct{}
	cancel      context.CancelFunc
}

func NewDatasource(appCtx context.Context) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	return &Datasource{
		appCtx:      appCtx,
		watcher:     watcher,
		data:        &RWBox[Dataset]{},
		subscribers: make(map[chan Status]struct{}),
	}, nil
}

// Data returns the dataset populated by the datasource.
func (d *Datasource) Data() *RWBox[Dataset] {
	return d.data
}

// Status streams the ingestion status. The latest status is delivered
// immediately; intermediate updates may be skipped by slow readers.
func (d *Datasource) Status(ctx context.Context) <-chan Status {
	out := make(chan Status, 1)
	d.lock.Lock()
	out <- d.status
	d.subscribers[out] = struct{}{}
	d.lock.Unlock()
	go func() {
		<-ctx.Done()
		d.lock.Lock()
		defer d.lock.Unlock()
		delete(d.subscribers, out)
		close(out)
	}()
	return out
}

func (d *Datasource) update(f func(*Status)) {
	d.lock.Lock()
	defer d.lock.Unlock()
	f(&d.status)
	for sub := range d.subscribers {
		select {
		case <-sub:
		default:
		}
		sub <- d.status
	}
}

// LoadFromFile asks the user for a trace and replays it. It returns
// immediately; failures are reported through Status.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) {
	go func() {
		file, err := expl.ChooseFile("csv")
		if err != nil {
			if !errors.Is(err, explorer.ErrUserDecline) {
				d.update(func(s *Status) {
					s.Err = fmt.Errorf("failed choosing trace: %w", err)
				})
			}
			return
		}
		name := "trace"
		if f, ok := file.(interface{ Name() string }); ok {
			name = f.Name()
		}
		d.LoadFromStream(name, ModeReplaying, file)
	}()
}

// LoadFromPath reads the trace at path. When follow is set, rows appended to
// the file after it has been read are ingested as they are written.
func (d *Datasource) LoadFromPath(path string, follow bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed opening trace: %w", err)
	}
	mode := ModeReplaying
	if follow {
		mode = ModeFollowing
	}
	d.LoadFromStream(path, mode, f)
	return nil
}

// LoadFromStream replaces the dataset with the trace read from source,
// cancelling any ingestion in progress. Ingestion happens asynchronously.
func (d *Datasource) LoadFromStream(name string, mode Mode, source io.ReadCloser) {
	ctx, cancel := context.WithCancel(d.appCtx)
	d.lock.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.lock.Unlock()
	d.data.Write(func(ds *Dataset) {
		*ds = Dataset{}
	})
	d.update(func(s *Status) {
		*s = Status{Source: name, Mode: mode}
	})
	go d.ingest(ctx, name, mode, source)
}

func (d *Datasource) ingest(ctx context.Context, name string, mode Mode, source io.ReadCloser) {
	defer source.Close()
	follow := mode == ModeFollowing
	if follow {
		if err := d.watcher.Add(name); err != nil {
			log.Printf("cannot follow %q, reading it once: %v", name, err)
			follow = false
		} else {
			defer d.watcher.Remove(name)
		}
	}
	inputs := make(chan InputData, 16)
	errs := make(chan error, 1)
	go func() {
		defer close(inputs)
		errs <- d.readSource(ctx, source, follow, inputs)
	}()
	// LoadFromStream cancels ctx before resetting the dataset, so checking it
	// under the dataset and status locks keeps batches of a replaced load
	// out of the new trace. Cancelled batches are still drained.
	for in := range inputs {
		switch in.Kind {
		case KindHeadings:
			d.data.Write(func(ds *Dataset) {
				if ctx.Err() != nil {
					return
				}
				ds.SetHeadings(in.Headings)
			})
		case KindRows:
			var samples int
			d.data.Write(func(ds *Dataset) {
				if ctx.Err() != nil {
					return
				}
				ds.Insert(in.Rows)
				samples = ds.Len()
			})
			d.update(func(s *Status) {
				if ctx.Err() != nil {
					return
				}
				s.Rows += len(in.Rows)
				s.Samples = samples
			})
		}
	}
	err := <-errs
	if ctx.Err() != nil {
		return
	}
	d.update(func(s *Status) {
		s.Err = err
		s.Done = true
	})
}

func (d *Datasource) readSource(ctx context.Context, source io.Reader, follow bool, out chan<- InputData) error {
	var r io.Reader = source
	if follow {
		r = NewLineReader(source)
	}
	dec, err := newTraceDecoder(r)
	if err != nil {
		return err
	}
	send := func(in InputData) bool {
		select {
		case out <- in:
			return true
		case <-ctx.Done():
			return false
		}
	}
	if !send(InputData{Kind: KindHeadings, Headings: dec.headings}) {
		return nil
	}
	rows := make([]Row, 0, batchRows)
	flush := func() bool {
		if len(rows) == 0 {
			return true
		}
		ok := send(InputData{Kind: KindRows, Rows: rows})
		rows = make([]Row, 0, batchRows)
		return ok
	}
	// Continuously parse the CSV data and send it on the channel.
	for {
		row, err := dec.next()
		if err != nil {
			if !flush() {
				return nil
			}
			if errors.Is(err, io.EOF) {
				if follow && d.waitForWrite(ctx) {
					continue
				}
				return nil
			}
			return err
		}
		rows = append(rows, row)
		if len(rows) == batchRows && !flush() {
			return nil
		}
	}
}

// waitForWrite blocks until a watched file is written to. It returns false
// if the watch ends first.
func (d *Datasource) waitForWrite(ctx context.Context) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return false
			}
			if ev.Has(fsnotify.Write) {
				return true
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return false
			}
			log.Printf("file watcher failed: %v", err)
		}
	}
}

// Close stops any ingestion and releases the file watcher.
func (d *Datasource) Close() error {
	d.lock.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.lock.Unlock()
	return d.watcher.Close()
}

// ReadDataset reads a whole trace synchronously.
func ReadDataset(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec, err := newTraceDecoder(r)
	if err != nil {
		return ds, err
	}
	ds.SetHeadings(dec.headings)
	rows := make([]Row, 0, batchRows)
	for {
		row, err := dec.next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return ds, err
		}
		rows = append(rows, row)
		if len(rows) == batchRows {
			ds.Insert(rows)
			rows = rows[:0]
		}
	}
	ds.Insert(rows)
	return ds, nil
}

type traceDecoder struct {
	csv      *csv.Reader
	headings []string
}

func newTraceDecoder(r io.Reader) (*traceDecoder, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	csvReader.ReuseRecord = true
	headings, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed reading CSV headings: %w", err)
	}
	headings = slices.Clone(headings)
	for i := range headings {
		headings[i] = strings.TrimSpace(headings[i])
	}
	// Writers commonly leave a trailing separator on each line.
	for len(headings) > 1 && headings[len(headings)-1] == "" {
		headings = headings[:len(headings)-1]
	}
	if len(headings) < 2 {
		return nil, ErrNoSeries
	}
	return &traceDecoder{csv: csvReader, headings: headings}, nil
}

// next returns the next well-formed row. Malformed rows are logged and
// skipped.
func (t *traceDecoder) next() (Row, error) {
	for {
		rec, err := t.csv.Read()
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Printf("skipping malformed record: %v", err)
				continue
			}
			return Row{}, err
		}
		row, err := parseRecord(rec, len(t.headings)-1)
		if err != nil {
			log.Printf("skipping record: %v", err)
			continue
		}
		return row, nil
	}
}

func parseRecord(rec []string, seriesCount int) (Row, error) {
	keyField := strings.TrimSpace(rec[0])
	key, err := strconv.ParseFloat(keyField, 64)
	if err != nil {
		return Row{}, fmt.Errorf("failed parsing key %q: %w", keyField, err)
	}
	if math.IsNaN(key) {
		return Row{}, fmt.Errorf("key %q is not a number", keyField)
	}
	row := Row{Key: key}
	for i := 1; i < len(rec) && i <= seriesCount; i++ {
		field := strings.TrimSpace(rec[i])
		if len(field) < 1 {
			// Skip null cells.
			continue
		}
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			log.Printf("failed parsing data[%d]=%q: %v", i, field, err)
			continue
		}
		row.Values = append(row.Values, Cell{Series: i - 1, Value: value})
	}
	return row, nil
}
