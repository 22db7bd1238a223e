// Package importer turns spreadsheet exports into client insert shapes.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

// MaxFileSize bounds the accepted upload.
const MaxFileSize = 10 << 20

// column names a recognised header cell, after normalisation.
type column int

const (
	colName column = iota
	colCafeName
	colAddress
	colPhone
	colEmail
)

var headerAliases = map[string]column{
	"name":      colName,
	"client":    colName,
	"cafe name": colCafeName,
	"cafename":  colCafeName,
	"cafe":      colCafeName,
	"café":      colCafeName,
	"café name": colCafeName,
	"address":   colAddress,
	"phone":     colPhone,
	"telephone": colPhone,
	"email":     colEmail,
	"e-mail":    colEmail,
}

// ParseClients reads a CSV of clients. The header is the first row with a name column; rows
// above it are ignored, as are blank rows below it. Any decoding problem or row without a
// name rejects the whole file with a *schema.ValidationError.
func ParseClients(r io.Reader) ([]schema.InsertClient, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(raw) > MaxFileSize {
		return nil, &schema.ValidationError{Field: "file", Message: "file is larger than 10 MiB"}
	}

	data, err := decodeText(raw)
	if err != nil {
		return nil, &schema.ValidationError{Field: "file", Message: fmt.Sprintf("cannot decode file: %v", err)}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &schema.ValidationError{Field: "file", Message: fmt.Sprintf("malformed csv: %v", err)}
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, &schema.ValidationError{Field: "file", Message: "no header row with a name column"}
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// detectDelimiter picks ';' or ',' by whichever is more frequent on the first non-blank line.
func detectDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
			return ';'
		}

		break
	}

	return ','
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func findHeader(rows [][]string) (map[column]int, int, bool) {
	for rowIdx, row := range rows {
		cols := make(map[column]int)

		for i, cell := range row {
			c, ok := headerAliases[normalizeHeader(cell)]
			if !ok {
				continue
			}

			if _, dup := cols[c]; !dup {
				cols[c] = i
			}
		}

		if _, ok := cols[colName]; ok {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

// parseRows converts data rows. firstRow is the 0-based record index of rows[0]; errors name
// 1-based record numbers, the header included.
func parseRows(cols map[column]int, rows [][]string, firstRow int) ([]schema.InsertClient, error) {
	clients := []schema.InsertClient{}

	for i, row := range rows {
		if isBlank(row) {
			continue
		}

		rowNum := firstRow + i + 1

		name := cell(row, cols, colName)
		if name == "" {
			return nil, schema.Invalid("name", "row %d: name is required", rowNum)
		}

		clients = append(clients, schema.InsertClient{
			Name:     name,
			CafeName: optional(cell(row, cols, colCafeName)),
			Address:  optional(cell(row, cols, colAddress)),
			Phone:    optional(cell(row, cols, colPhone)),
			Email:    optional(cell(row, cols, colEmail)),
		})
	}

	if len(clients) == 0 {
		return nil, &schema.ValidationError{Field: "file", Message: "no client rows found"}
	}

	return clients, nil
}

func cell(row []string, cols map[column]int, c column) string {
	idx, ok := cols[c]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
