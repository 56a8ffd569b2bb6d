// Package dataset loads and generates the monthly beef market series the
// rest of the pipeline consumes: one observation per month with the traded
// price alongside production and export volumes.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Observation is a single month of market data.
type Observation struct {
	Date       time.Time
	Price      float64 // USD per lb
	Production float64 // units produced
	Export     float64 // units exported
}

// Table is a chronologically ordered series of observations.
type Table struct {
	Rows []Observation
}

// Len returns the number of observations in the table.
func (t *Table) Len() int { return len(t.Rows) }

// Column names recognized in the CSV header (lowercased).
const (
	colDate       = "date"
	colPrice      = "price"
	colProduction = "production"
	colExport     = "export"
)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{"2006-01", "2006-01-02", "01/2006", "2006/01/02"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(s, 64)
}

// Load reads a CSV file with columns Date, Price, Production, Export (any
// order, header names case insensitive) into a Table sorted by date. Any
// missing column or unparseable cell is an error; the caller treats it as
// fatal.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(strings.ToLower(col))] = i
	}
	for _, col := range []string{colDate, colPrice, colProduction, colExport} {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("required column %q not found in %s", col, path)
		}
	}

	t := &Table{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		date, err := parseDate(record[colIndex[colDate]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		price, err := parseFloat(record[colIndex[colPrice]])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse price: %w", line, err)
		}
		production, err := parseFloat(record[colIndex[colProduction]])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse production: %w", line, err)
		}
		export, err := parseFloat(record[colIndex[colExport]])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse export: %w", line, err)
		}

		t.Rows = append(t.Rows, Observation{
			Date:       date,
			Price:      price,
			Production: production,
			Export:     export,
		})
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Date.Before(t.Rows[j].Date)
	})
	return t, nil
}

// WriteCSV writes the table back out with the canonical header, dates
// formatted as YYYY-MM.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Price", "Production", "Export"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		rec := []string{
			row.Date.Format("2006-01"),
			strconv.FormatFloat(row.Price, 'f', 4, 64),
			strconv.FormatFloat(row.Production, 'f', 2, 64),
			strconv.FormatFloat(row.Export, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
