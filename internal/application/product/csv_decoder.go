package product

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

const (
	columnSKU         = "sku"
	columnName        = "name"
	columnDescription = "description"
	columnActive      = "active"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RowReader yields import rows one at a time in file order.
type RowReader struct {
	reader *csv.Reader
	index  map[string]int
}

// NewRowReader validates the encoding and consumes the header row. A file
// with no header yields a reader that is immediately exhausted.
func NewRowReader(data []byte) (*RowReader, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrDecode)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &RowReader{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrDecode, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	return &RowReader{reader: reader, index: index}, nil
}

// Next returns io.EOF once every record has been read.
func (r *RowReader) Next() (domain.ImportRow, error) {
	if r.reader == nil {
		return domain.ImportRow{}, io.EOF
	}

	record, err := r.reader.Read()
	if errors.Is(err, io.EOF) {
		return domain.ImportRow{}, io.EOF
	}
	if err != nil {
		return domain.ImportRow{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return rowFromRecord(r.index, record), nil
}

// CountRows makes a full decoding pass without keeping rows, so malformed
// input is rejected before anything is written.
func CountRows(data []byte) (int64, error) {
	rows, err := NewRowReader(data)
	if err != nil {
		return 0, err
	}

	var n int64
	for {
		if _, err := rows.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return 0, err
		}
		n++
	}
}

// DecodeCSV materializes every row of the file.
func DecodeCSV(data []byte) ([]domain.ImportRow, error) {
	rows, err := NewRowReader(data)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ImportRow, 0)
	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
}

func rowFromRecord(index map[string]int, record []string) domain.ImportRow {
	row := domain.ImportRow{
		Name:        cell(index, record, columnName),
		Description: cell(index, record, columnDescription),
		IsActive:    true,
	}

	if sku := cell(index, record, columnSKU); sku != nil {
		row.SKU = *sku
	}

	// A missing active column defaults to true; a short record with the
	// column declared does not.
	if _, declared := index[columnActive]; declared {
		active := cell(index, record, columnActive)
		row.IsActive = active != nil && strings.EqualFold(*active, "true")
	}

	return row
}

func cell(index map[string]int, record []string, column string) *string {
	i, ok := index[column]
	if !ok || i >= len(record) {
		return nil
	}
	value := record[i]
	return &value
}
