package excel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"
)

// ErrNoData means export was requested with nothing in the store.
var ErrNoData = errors.New("no data available to export")

// Export renders the store as an xlsx workbook, one sheet per metric type.
// Column set per sheet is the union of record fields in first-seen record
// order; within a record, keys contribute alphabetically.
func Export(store models.Store) (*bytes.Buffer, error) {
	if store.IsEmpty() {
		return nil, ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, mt := range sheetOrder(store) {
		bucket := store[mt]
		if first {
			if err := f.SetSheetName("Sheet1", mt); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(mt); err != nil {
				return nil, fmt.Errorf("new sheet %s: %w", mt, err)
			}
		}
		if err := fillSheet(f, mt, bucket.Data); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// sheetOrder lists the tracked types in their fixed order first, then any
// unexpected store keys alphabetically.
func sheetOrder(store models.Store) []string {
	var order []string
	known := make(map[string]bool)
	for _, mt := range models.AllMetricTypes() {
		known[string(mt)] = true
		if _, ok := store[string(mt)]; ok {
			order = append(order, string(mt))
		}
	}
	var rest []string
	for k := range store {
		if !known[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func fillSheet(f *excelize.File, sheet string, records []models.Record) error {
	cols := columnUnion(records)

	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("set header %s: %w", col, err)
		}
	}

	for row, rec := range records {
		for i, col := range cols {
			v, ok := rec[col]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// columnUnion collects every field name across the records. Record order
// decides precedence; keys inside one record are added alphabetically since
// JSON objects carry no order of their own.
func columnUnion(records []models.Record) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			if !seen[k] {
				keys = append(keys, k)
				seen[k] = true
			}
		}
		sort.Strings(keys)
		cols = append(cols, keys...)
	}
	return cols
}

// cellValue flattens nested structures to JSON text; scalars pass through.
func cellValue(v any) any {
	switch v.(type) {
	case nil:
		return ""
	case string, bool, float64, int, int64:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
