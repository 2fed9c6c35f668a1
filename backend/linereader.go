package backend

import (
	"bufio"
	"errors"
	"io"
)

// lineReader only ever yields whole newline-terminated lines. A trailing
// partial line is held back (and io.EOF reported) until the rest of it has
// been written, which allows a CSV decoder to follow a file that is still
// being appended to without seeing torn records.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
	ready   []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) io.Reader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.ready) == 0 {
		line, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, line...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, err
		}
		l.ready, l.partial = l.partial, l.ready[:0]
	}
	n := copy(b, l.ready)
	l.ready = l.ready[n:]
	return n, nil
}
