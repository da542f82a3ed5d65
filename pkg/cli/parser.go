package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/khalid-nowaf/searchtree/pkg/registry"
)

// Row is one input record, column name to value
type Row map[string]string

// readRows calls onEachRow for every row of a CSV, TSV or JSON file.
// The format is picked by the file extension.
func readRows(path string, onEachRow func(row Row) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = parseJson(file, onEachRow)
	case ".csv":
		err = parseCsv(file, ',', onEachRow)
	case ".tsv":
		err = parseCsv(file, '\t', onEachRow)
	default:
		return fmt.Errorf("unsupported input file %s, expected .csv, .tsv or .json", path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// parseJson streams an array of flat objects
func parseJson(reader io.Reader, onEachRow func(row Row) error) error {
	decoder := json.NewDecoder(reader)

	// Read opening bracket of the array
	if _, err := decoder.Token(); err != nil {
		return err
	}

	for decoder.More() {
		data := map[string]any{}
		if err := decoder.Decode(&data); err != nil {
			return err
		}

		row := Row{}
		for column, value := range data {
			switch v := value.(type) {
			case string:
				row[column] = v
			case nil:
				row[column] = ""
			default:
				row[column] = fmt.Sprint(v)
			}
		}
		if err := onEachRow(row); err != nil {
			return err
		}
	}

	// Read closing bracket of the array
	_, err := decoder.Token()
	return err
}

// parseCsv reads a header line followed by rows
func parseCsv(reader io.Reader, comma rune, onEachRow func(row Row) error) error {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = comma

	headers, err := csvReader.Read()
	if err != nil {
		return err
	}

	for {
		values, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		row := Row{}
		for i, value := range values {
			row[headers[i]] = value
		}
		if err := onEachRow(row); err != nil {
			return err
		}
	}
}

// toRecord splits a row into its key and a record. The key and id columns are
// required, the other columns become attributes.
func (row Row) toRecord(keyCol string, idCol string) (string, *registry.Record, error) {
	key, found := row[keyCol]
	if !found {
		return "", nil, fmt.Errorf("row %v has no key column %q", map[string]string(row), keyCol)
	}
	id, found := row[idCol]
	if !found || id == "" {
		return "", nil, fmt.Errorf("row %v has no id column %q", map[string]string(row), idCol)
	}

	record := registry.NewRecord(id)
	for column, value := range row {
		if column == keyCol || column == idCol {
			continue
		}
		record.Attributes[column] = value
	}
	return key, record, nil
}
