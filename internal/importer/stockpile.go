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

// stockpileAliases maps stockpile column roles to their accepted aliases.
var stockpileAliases = map[string][]string{
	"length":   {"length", "len", "l", "lengths", "target", "demand length"},
	"quantity": {"quantity", "qty", "pcs", "pieces", "count", "batches"},
}

// stockpileMapping holds column indices for a stockpile file.
type stockpileMapping struct {
	Length   int
	Quantity int
}

func detectStockpileColumns(row []string) (stockpileMapping, bool) {
	mapping := stockpileMapping{Length: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range stockpileAliases {
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
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if !isHeader {
		return stockpileMapping{Length: 0, Quantity: 1}, false
	}
	return mapping, true
}

func parseStockpileRows(rows [][]string) StockpileImportResult {
	result := StockpileImportResult{}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "file has no data rows")
		return result
	}

	mapping, hasHeader := detectStockpileColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	} else {
		result.Warnings = append(result.Warnings, "no header row detected, assuming columns: length, quantity")
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("row %d", i+1)

		lengthStr := getCell(row, mapping.Length)
		length, err := strconv.ParseFloat(normalizeDecimal(lengthStr), 64)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: invalid length '%s'", rowLabel, lengthStr))
			continue
		}

		qtyStr := getCell(row, mapping.Quantity)
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: invalid quantity '%s'", rowLabel, qtyStr))
			continue
		}

		record := model.StockpileRecord{Length: length, Quantity: qty}
		if err := record.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
			continue
		}
		if qty == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: zero quantity, row has no effect", rowLabel))
		}
		result.Records = append(result.Records, record)
	}

	if len(result.Records) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "no usable rows found")
	}
	return result
}

// ImportStockpileCSV imports stockpile demand rows from a CSV file.
func ImportStockpileCSV(path string) StockpileImportResult {
	result := StockpileImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectCSVDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot parse CSV: %v", err))
		return result
	}

	return parseStockpileRows(rows)
}

// ImportStockpileExcel imports stockpile demand rows from the first sheet of
// an XLSX file.
func ImportStockpileExcel(path string) StockpileImportResult {
	result := StockpileImportResult{}

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

	return parseStockpileRows(rows)
}

// ImportStockpile dispatches on the file extension.
func ImportStockpile(path string) StockpileImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ImportStockpileCSV(path)
	case ".xlsx", ".xlsm":
		return ImportStockpileExcel(path)
	default:
		return StockpileImportResult{Errors: []string{fmt.Sprintf("unsupported file type '%s'", filepath.Ext(path))}}
	}
}
