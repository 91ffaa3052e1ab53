//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package ingest reads raw point-of-sale export files into untyped records.
// No validation happens here beyond the file's shape; field-level parsing
// belongs to the cleaning stage.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/beanlake/posmart/internal/logging"
	"github.com/beanlake/posmart/internal/mart"
)

// fieldCount is the number of columns in a point-of-sale export.
const fieldCount = 11

// ReadFile reads a point-of-sale CSV export from disk.
func ReadFile(path string) ([]mart.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.Info().
		Str("file", path).
		Int("records", len(records)).
		Msg("Read source file")

	return records, nil
}

// Read reads a point-of-sale CSV export. The first line is a header and is
// skipped; every following line must carry exactly the expected column
// count. Line numbers are 1-based and count the header.
func Read(r io.Reader) ([]mart.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fieldCount

	// Header
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty source file")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []mart.RawRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, mart.RawRecord{
			Line:            line,
			TransactionID:   row[0],
			TransactionDate: row[1],
			TransactionTime: row[2],
			Quantity:        row[3],
			StoreID:         row[4],
			StoreLocation:   row[5],
			ProductID:       row[6],
			UnitPrice:       row[7],
			ProductCategory: row[8],
			ProductType:     row[9],
			ProductDetail:   row[10],
		})
	}

	return records, nil
}
