package signals

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Recorder writes signals as CSV rows: one key column followed by one
// column per signal.
type Recorder struct {
	w       *csv.Writer
	signals []Signal
	record  []string
	rows    int
}

// NewRecorder writes the heading row and returns a recorder for further
// rows.
func NewRecorder(w io.Writer, keyName string, signals ...Signal) (*Recorder, error) {
	r := &Recorder{
		w:       csv.NewWriter(w),
		signals: signals,
		record:  make([]string, len(signals)+1),
	}
	r.record[0] = keyName
	for i, s := range signals {
		r.record[i+1] = fmt.Sprintf("%s (%s)", s.Name(), s.Unit())
	}
	if err := r.write(); err != nil {
		return nil, fmt.Errorf("writing headings: %w", err)
	}
	return r, nil
}

func (r *Recorder) write() error {
	if err := r.w.Write(r.record); err != nil {
		return err
	}
	r.w.Flush()
	return r.w.Error()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Record reads every signal at key and writes the row.
func (r *Recorder) Record(key float64) error {
	r.record[0] = formatValue(key)
	for i, s := range r.signals {
		r.record[i+1] = formatValue(s.Read(key))
	}
	if err := r.write(); err != nil {
		return fmt.Errorf("writing row %d: %w", r.rows, err)
	}
	r.rows++
	return nil
}

// Rows returns the number of data rows written.
func (r *Recorder) Rows() int { return r.rows }
