// Package importer provides CSV and Excel import for inventory and
// stockpile lists. It supports automatic delimiter detection, flexible
// column mapping and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/barcut/barcut/internal/model"
)

// ImportResult holds the outcome of an inventory import.
type ImportResult struct {
	Records  []model.InventoryRecord
	Errors   []string
	Warnings []string
}

// StockpileImportResult holds the outcome of a stockpile import.
type StockpileImportResult struct {
	Records  []model.StockpileRecord
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// An index of -1 means the column is absent.
type ColumnMapping struct {
	Length   int
	Pieces   int
	Diameter int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"length":   {"length", "len", "l", "lengths", "bar length", "stock length"},
	"pieces":   {"pcs", "pieces", "qty", "quantity", "count", "num", "amount", "nos"},
	"diameter": {"diameter", "dia", "d", "ø", "phi", "size", "bar size"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab and pipe. The delimiter producing the most
// consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against known aliases. When no header is recognized it
// returns the positional fallback (Length, Pieces, Diameter) and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Length: -1, Pieces: -1, Diameter: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "pieces":
					if mapping.Pieces == -1 {
						mapping.Pieces = i
					}
				case "diameter":
					if mapping.Diameter == -1 {
						mapping.Diameter = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Length: 0, Pieces: 1, Diameter: 2}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRecord extracts an InventoryRecord from a row using the given mapping.
func parseRecord(row []string, mapping ColumnMapping, rowLabel string) (model.InventoryRecord, string) {
	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return model.InventoryRecord{}, fmt.Sprintf("%s: missing length value", rowLabel)
	}
	length, err := strconv.ParseFloat(normalizeDecimal(lengthStr), 64)
	if err != nil {
		return model.InventoryRecord{}, fmt.Sprintf("%s: invalid length '%s'", rowLabel, lengthStr)
	}

	piecesStr := getCell(row, mapping.Pieces)
	if piecesStr == "" {
		return model.InventoryRecord{}, fmt.Sprintf("%s: missing pieces value", rowLabel)
	}
	pieces, err := strconv.Atoi(piecesStr)
	if err != nil {
		return model.InventoryRecord{}, fmt.Sprintf("%s: invalid pieces '%s'", rowLabel, piecesStr)
	}

	diameterStr := getCell(row, mapping.Diameter)
	if diameterStr == "" {
		return model.InventoryRecord{}, fmt.Sprintf("%s: missing diameter value", rowLabel)
	}
	diameter, err := strconv.ParseFloat(normalizeDecimal(diameterStr), 64)
	if err != nil {
		return model.InventoryRecord{}, fmt.Sprintf("%s: invalid diameter '%s'", rowLabel, diameterStr)
	}

	record := model.InventoryRecord{Length: length, Pieces: pieces, Diameter: diameter}
	if err := record.Validate(); err != nil {
		return model.InventoryRecord{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}
	return record, ""
}

// normalizeDecimal accepts comma decimal separators from European sheets.
func normalizeDecimal(s string) string {
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		return strings.ReplaceAll(s, ",", ".")
	}
	return s
}

// parseRows converts raw rows into inventory records, collecting per-row
// errors and warnings without aborting the whole import.
func parseRows(rows [][]string) ImportResult {
	result := ImportResult{}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "file has no data rows")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	} else {
		result.Warnings = append(result.Warnings, "no header row detected, assuming columns: length, pieces, diameter")
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("row %d", i+1)
		record, errMsg := parseRecord(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if record.Pieces == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: zero pieces, row has no effect", rowLabel))
		}
		result.Records = append(result.Records, record)
	}

	if len(result.Records) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "no usable rows found")
	}
	return result
}

// ImportCSV imports inventory records from a CSV file, auto-detecting the
// delimiter. Supports comma, semicolon, tab and pipe.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("detected %s delimiter", name))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot parse CSV: %v", err))
		return result
	}

	parsed := parseRows(rows)
	parsed.Warnings = append(result.Warnings, parsed.Warnings...)
	return parsed
}

// ImportExcel imports inventory records from the first sheet of an XLSX file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read Excel data: %v", err))
		return result
	}

	return parseRows(rows)
}

// Import dispatches on the file extension: .csv, .xlsx or .xlsm.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("unsupported file type '%s'", filepath.Ext(path))}}
	}
}
