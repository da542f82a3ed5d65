package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/khalid-nowaf/searchtree/pkg/registry"
)

// Stats counts what a command did with its records.
type Stats struct {
	Input     int // rows read
	Inserted  int // rows that ended up in the registry
	Conflicts int // rows that conflicted with stored records
	Ignored   int // rows dropped by the ID conflict policy
	Removed   int // keys removed
	Output    int // records written
}

func (s Stats) String() string {
	return fmt.Sprintf("input: %d, inserted: %d, conflicts: %d, ignored: %d, removed: %d, output: %d",
		s.Input, s.Inserted, s.Conflicts, s.Ignored, s.Removed, s.Output)
}

// Writer writes records back out as flat rows, the key and the id restored as
// columns next to the attributes.
type Writer interface {
	Write(out io.Writer, records []*registry.KeyedRecord) error
}

// Columns names the restored columns and the attributes to leave out.
type Columns struct {
	KeyCol   string
	IdCol    string
	DropKeys []string
}

func (c Columns) row(record *registry.KeyedRecord) map[string]string {
	row := map[string]string{}
	for column, value := range record.Record.Attributes {
		if !slices.Contains(c.DropKeys, column) {
			row[column] = value
		}
	}
	row[c.KeyCol] = record.Key
	row[c.IdCol] = record.Record.ID
	return row
}

// headers are the key and id columns followed by every attribute, sorted
func (c Columns) headers(records []*registry.KeyedRecord) []string {
	attributes := []string{}
	for _, record := range records {
		for column := range record.Record.Attributes {
			if column == c.KeyCol || column == c.IdCol || slices.Contains(c.DropKeys, column) {
				continue
			}
			if !slices.Contains(attributes, column) {
				attributes = append(attributes, column)
			}
		}
	}
	slices.Sort(attributes)
	return append([]string{c.KeyCol, c.IdCol}, attributes...)
}

// WriterFor picks the writer matching the extension of path.
func WriterFor(path string, columns Columns, stats *Stats) (Writer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &JsonWriter{Columns: columns, Stats: stats}, nil
	case ".csv":
		return &CsvWriter{Columns: columns, Stats: stats}, nil
	case ".tsv":
		return &CsvWriter{Columns: columns, Stats: stats, isTSV: true}, nil
	default:
		return nil, fmt.Errorf("unsupported output file %s, expected .csv, .tsv or .json", path)
	}
}

type JsonWriter struct {
	Columns
	Stats *Stats
}

// Write streams the records as a JSON array of flat objects.
func (w JsonWriter) Write(out io.Writer, records []*registry.KeyedRecord) error {
	encoder := json.NewEncoder(out)

	if _, err := out.Write([]byte("[")); err != nil {
		return err
	}
	for i, record := range records {
		if i > 0 {
			if _, err := out.Write([]byte(",")); err != nil {
				return err
			}
		}
		if err := encoder.Encode(w.row(record)); err != nil {
			return err
		}
		w.Stats.Output++
	}
	_, err := out.Write([]byte("]"))
	return err
}

type CsvWriter struct {
	Columns
	Stats *Stats
	isTSV bool
}

// Write writes a header line and one line per record, in the order of the
// headers.
func (w CsvWriter) Write(out io.Writer, records []*registry.KeyedRecord) error {
	writer := csv.NewWriter(out)
	if w.isTSV {
		writer.Comma = '\t'
	}

	headers := w.headers(records)
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, record := range records {
		row := w.row(record)
		line := make([]string, 0, len(headers))
		for _, header := range headers {
			line = append(line, row[header])
		}
		if err := writer.Write(line); err != nil {
			return err
		}
		w.Stats.Output++
	}

	writer.Flush()
	return writer.Error()
}
