package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/redistrict/tract"
)

// Column names recognized in the tracts file header. Only id and
// population are required; the rest default to zero values.
const (
	ColID         = "id"
	ColPopulation = "population"
	ColArea       = "area"
	ColLocality   = "locality"
	ColBoundary   = "boundary"
)

// CSV reads tracts and edges from two comma-separated files with header rows.
//
// The tracts file names its columns in the header (any order). The edges
// file holds two ID columns; its header row is skipped.
type CSV struct {
	TractsPath string
	EdgesPath  string
}

// NewCSV returns a Source reading the given files on every Load.
func NewCSV(tractsPath, edgesPath string) *CSV {
	return &CSV{TractsPath: tractsPath, EdgesPath: edgesPath}
}

// Load implements Source.
func (s *CSV) Load(ctx context.Context) (*Dataset, error) {
	tf, err := os.Open(s.TractsPath)
	if err != nil {
		return nil, fmt.Errorf("source: open tracts: %w", err)
	}
	defer tf.Close()

	ts, err := ReadTracts(ctx, tf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.TractsPath, err)
	}

	ef, err := os.Open(s.EdgesPath)
	if err != nil {
		return nil, fmt.Errorf("source: open edges: %w", err)
	}
	defer ef.Close()

	es, err := ReadEdges(ctx, ef)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.EdgesPath, err)
	}

	return &Dataset{Tracts: ts, Edges: es}, nil
}

// ReadTracts parses tract records from r. The first row is the header.
func ReadTracts(ctx context.Context, r io.Reader) ([]tract.Tract, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, req := range []string{ColID, ColPopulation} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("%w: header lacks %q", ErrMalformed, req)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}

		return strings.TrimSpace(rec[i])
	}

	var out []tract.Tract
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		t := tract.Tract{ID: field(rec, ColID), Locality: field(rec, ColLocality)}
		if t.Population, err = strconv.Atoi(field(rec, ColPopulation)); err != nil {
			return nil, fmt.Errorf("%w: line %d: population: %v", ErrMalformed, line, err)
		}
		if v := field(rec, ColArea); v != "" {
			if t.Area, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: area: %v", ErrMalformed, line, err)
			}
		}
		if v := field(rec, ColBoundary); v != "" {
			if t.Boundary, err = strconv.ParseBool(v); err != nil {
				return nil, fmt.Errorf("%w: line %d: boundary: %v", ErrMalformed, line, err)
			}
		}
		out = append(out, t)
	}

	return out, nil
}

// ReadEdges parses adjacency pairs from r. The first row is the header.
func ReadEdges(ctx context.Context, r io.Reader) ([]tract.Edge, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 2

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrMalformed)
		}

		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var out []tract.Edge
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		out = append(out, tract.Edge{A: strings.TrimSpace(rec[0]), B: strings.TrimSpace(rec[1])})
	}

	return out, nil
}
