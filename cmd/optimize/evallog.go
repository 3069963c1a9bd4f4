package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// evalLog appends one CSV row per evaluation. The header depends on the
// parameter set, so rows are written with encoding/csv rather than gocsv.
type evalLog struct {
	f *os.File
	w *csv.Writer
}

func newEvalLog(path string, params *ParamVector) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	l := &evalLog{f: f, w: csv.NewWriter(f)}
	if err := l.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}
	return l, nil
}

// Write records an evaluation and flushes so the log survives an interrupted run.
func (l *evalLog) Write(eval int, fitness float64, values []float64) error {
	row := make([]string, 0, len(values)+2)
	row = append(row, strconv.Itoa(eval), strconv.FormatFloat(fitness, 'f', 6, 64))
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := l.w.Write(row); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

func (l *evalLog) Close() error {
	l.w.Flush()
	return l.f.Close()
}
