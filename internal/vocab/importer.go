// Package vocab reads vocabulary lists from spreadsheets and CSV files.
//
// Both formats use the same layout: column A holds the word, column B its
// meaning and column C an example sentence. A first row whose word cell reads
// "word" is treated as a header.
package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("vocab: unsupported file format")
	ErrNoEntries         = errors.New("vocab: file contains no words")
)

// Entry is one vocabulary row.
type Entry struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Sentence string `json:"sentence"`
}

// Result holds the parsed entries together with row level problems.
type Result struct {
	Entries []Entry  `json:"entries"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// Supported reports whether filename has an extension Parse understands.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// ReadFile parses the vocabulary file at path.
func ReadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, filepath.Base(path))
}

// Parse reads entries from r, choosing the format from filename's extension.
func Parse(r io.Reader, filename string) (*Result, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = excelRows(r)
	case ".csv":
		rows, err = csvRows(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	res := collect(rows)
	if len(res.Entries) == 0 {
		return res, ErrNoEntries
	}
	return res, nil
}

func excelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("vocab: open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoEntries
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("vocab: read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func csvRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("vocab: read csv: %w", err)
	}
	return rows, nil
}

func collect(rows [][]string) *Result {
	res := &Result{Entries: []Entry{}, Errors: []string{}}
	seen := make(map[string]bool)

	for i, row := range rows {
		line := i + 1
		e := Entry{
			Word:     cell(row, 0),
			Meaning:  cell(row, 1),
			Sentence: cell(row, 2),
		}
		if i == 0 && strings.EqualFold(e.Word, "word") {
			continue
		}
		if e.Word == "" {
			if e.Meaning != "" || e.Sentence != "" {
				res.Errors = append(res.Errors, fmt.Sprintf("row %d: missing word", line))
			}
			continue
		}

		key := strings.ToLower(e.Word)
		if seen[key] {
			res.Skipped++
			continue
		}
		seen[key] = true
		res.Entries = append(res.Entries, e)
	}
	return res
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
