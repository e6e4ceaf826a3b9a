// Package dataset reads the per-state name table and groups it into year records.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	nmerr "github.com/amterp/namemap/internal/errors"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/util"
)

// Column names in the input header.
const (
	ColumnYear   = "year"
	ColumnState  = "state"
	ColumnMale   = "m"
	ColumnFemale = "f"
	ColumnCount  = "count"
)

var requiredColumns = []string{ColumnYear, ColumnState, ColumnMale, ColumnFemale}

// Load reads and groups the input file at path.
func Load(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nmerr.InputNotFound(path)
		}
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses tab-separated rows from r and groups them by year.
func Read(r io.Reader) (*model.Dataset, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return FromRows(rows), nil
}

// FromRows groups already-parsed rows.
func FromRows(rows []model.Row) *model.Dataset {
	ds := model.NewDataset()
	for _, row := range rows {
		ds.Add(row)
	}
	return ds
}

// ReadRows parses tab-separated rows from r. The first line is a header; columns
// are located by name so extra columns are ignored. Any malformed row aborts the
// whole read.
func ReadRows(r io.Reader) ([]model.Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &nmerr.ParseError{Line: 1, Reason: "empty input"}
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, nmerr.MissingColumn(name)
		}
	}
	countCol, hasCount := cols[ColumnCount]

	var rows []model.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &nmerr.ParseError{Line: parseErr.Line, Reason: parseErr.Err.Error()}
			}
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if isBlank(record) {
			continue
		}

		field := func(name string) string {
			i := cols[name]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}

		yearStr := strings.TrimSpace(field(ColumnYear))
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, &nmerr.ParseError{Line: line, Column: ColumnYear, Value: yearStr, Reason: "not an integer"}
		}

		state := util.NormalizeRegion(field(ColumnState))
		if state == "" {
			return nil, &nmerr.ParseError{Line: line, Column: ColumnState, Reason: "empty region"}
		}

		row := model.Row{
			Year:  year,
			State: state,
			M:     util.NormalizeName(field(ColumnMale)),
			F:     util.NormalizeName(field(ColumnFemale)),
		}

		if hasCount && countCol < len(record) {
			countStr := strings.TrimSpace(record[countCol])
			if countStr != "" {
				count, err := strconv.ParseFloat(countStr, 64)
				if err != nil {
					return nil, &nmerr.ParseError{Line: line, Column: ColumnCount, Value: countStr, Reason: "not a number"}
				}
				row.Count = count
				row.HasCount = true
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
