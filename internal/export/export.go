// Package export builds the Excel workbook summarizing the active WAF entries,
// one row per document with columns in first-seen key order.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cabberley/epic-waf-actions/internal/waf"
)

// SheetName is the name of the single worksheet in the generated workbook.
const SheetName = "WAF"

// Document is one WAF entry keyed by its YAML top-level keys, with the source
// file's decode order lost; column order is reconstructed by CollectColumns.
type Document map[string]any

// LoadDocuments parses every file into a document, dropping entries whose
// "active" value is falsey. A non-mapping root is an export error: the
// workbook needs one row of columns per file.
func LoadDocuments(files []string) ([]Document, error) {
	var documents []Document
	for _, path := range files {
		data, err := waf.LoadYAML(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		doc, ok := data.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("file %s does not contain a top-level mapping", path)
		}
		if isFalsey(doc["active"]) {
			continue
		}
		documents = append(documents, Document(doc))
	}
	return documents, nil
}

// isFalsey reports whether an "active" value disables an entry.
func isFalsey(value any) bool {
	if value == false {
		return true
	}
	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "false", "0", "no":
			return true
		}
	}
	return false
}

// CollectColumns returns every key across the documents in first-seen order.
// Go maps don't preserve YAML key order, so "first seen" is per-document map
// iteration stabilized by sorting keys within each document.
func CollectColumns(documents []Document) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, document := range documents {
		for _, key := range sortedKeys(document) {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	return columns
}

func sortedKeys(document Document) []string {
	keys := make([]string, 0, len(document))
	for key := range document {
		keys = append(keys, key)
	}
	// Pin "name" and "active" first when present; the rest alphabetical.
	primary := []string{"name", "active"}
	ordered := make([]string, 0, len(keys))
	rest := make([]string, 0, len(keys))
	for _, p := range primary {
		for _, key := range keys {
			if key == p {
				ordered = append(ordered, key)
			}
		}
	}
	for _, key := range keys {
		if key != "name" && key != "active" {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// SerializeValue converts a document value to a spreadsheet cell value. Labels
// lists become newline-joined strings so the cell can wrap; empty collections
// render as their literal markers; anything structured falls back to JSON.
func SerializeValue(value any, column string) any {
	if column == "labels" {
		if list, ok := value.([]any); ok {
			var entries []string
			for _, entry := range list {
				if s, ok := entry.(string); ok && strings.TrimSpace(s) != "" {
					entries = append(entries, strings.TrimSpace(s))
				}
			}
			return strings.Join(entries, "\n")
		}
	}

	switch v := value.(type) {
	case nil:
		return ""
	case string, int, int64, float64, bool:
		return v
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format("2006-01-02 15:04:05")
	case []any:
		if len(v) == 0 {
			return "[]"
		}
	case map[string]any:
		if len(v) == 0 {
			return "{}"
		}
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(encoded)
}

// BuildWorkbook writes the documents into a new workbook: a header row of
// columns, then one row per document, with wrapped text on the labels column.
func BuildWorkbook(columns []string, documents []Document) (*excelize.File, error) {
	workbook := excelize.NewFile()
	if err := workbook.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = column
	}
	if err := workbook.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	for rowIdx, document := range documents {
		row := make([]any, len(columns))
		for colIdx, column := range columns {
			row[colIdx] = SerializeValue(document[column], column)
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, err
		}
		if err := workbook.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	for colIdx, column := range columns {
		if column != "labels" {
			continue
		}
		name, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return nil, err
		}
		style, err := workbook.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		})
		if err != nil {
			return nil, err
		}
		if err := workbook.SetColStyle(SheetName, name, style); err != nil {
			return nil, err
		}
	}

	return workbook, nil
}

// Write builds the workbook for documents and saves it into outputDir as
// WAF-version-<timestamp>.xlsx, creating the directory when needed. Returns
// the written path.
func Write(documents []Document, outputDir string, now time.Time) (string, error) {
	if len(documents) == 0 {
		return "", fmt.Errorf("no active WAF files to export")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	columns := CollectColumns(documents)
	workbook, err := BuildWorkbook(columns, documents)
	if err != nil {
		return "", fmt.Errorf("building workbook: %w", err)
	}

	outputPath := filepath.Join(outputDir, fmt.Sprintf("WAF-version-%s.xlsx", now.Format("20060102-150405")))
	if err := workbook.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return outputPath, nil
}
