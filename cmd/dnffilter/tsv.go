package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// recording holds the three input columns: time, contaminated signal and
// noise reference.
type recording struct {
	t      []float64
	signal []float64
	noise  []float64
}

func (r *recording) len() int { return len(r.signal) }

// readRecording parses tab-separated "t signal noise" rows. Lines starting
// with '#' are skipped. maxRows <= 0 reads everything.
func readRecording(r io.Reader, maxRows int) (*recording, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	rec := &recording{}

	for maxRows <= 0 || rec.len() < maxRows {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rec.len()+1, err)
		}

		if len(fields) < 3 {
			return nil, fmt.Errorf("row %d: want 3 columns, got %d", rec.len()+1, len(fields))
		}

		var vals [3]float64
		for i := range vals {
			vals[i], err = strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", rec.len()+1, i+1, err)
			}
		}

		rec.t = append(rec.t, vals[0])
		rec.signal = append(rec.signal, vals[1])
		rec.noise = append(rec.noise, vals[2])
	}

	return rec, nil
}

// writeRecording writes rec in the format readRecording accepts.
func writeRecording(w io.Writer, rec *recording) error {
	tw := newRowWriter(w)
	for i := range rec.signal {
		tw.row(rec.t[i], rec.signal[i], rec.noise[i])
	}

	return tw.flush()
}

// rowWriter formats float rows with six decimals, tab separated.
type rowWriter struct {
	w   *bufio.Writer
	buf []byte
	err error
}

func newRowWriter(w io.Writer) *rowWriter {
	return &rowWriter{w: bufio.NewWriter(w), buf: make([]byte, 0, 256)}
}

func (rw *rowWriter) row(head ...float64) {
	rw.rowWith(head, nil)
}

// rowWith writes head followed by tail on one line.
func (rw *rowWriter) rowWith(head, tail []float64) {
	if rw.err != nil {
		return
	}

	rw.buf = rw.buf[:0]
	for i, v := range head {
		if i > 0 {
			rw.buf = append(rw.buf, '\t')
		}
		rw.buf = strconv.AppendFloat(rw.buf, v, 'f', 6, 64)
	}

	for _, v := range tail {
		rw.buf = append(rw.buf, '\t')
		rw.buf = strconv.AppendFloat(rw.buf, v, 'f', 6, 64)
	}

	rw.buf = append(rw.buf, '\n')
	_, rw.err = rw.w.Write(rw.buf)
}

func (rw *rowWriter) flush() error {
	if rw.err != nil {
		return rw.err
	}

	return rw.w.Flush()
}
