// Package errorbook exports the error set for sharing between devices and
// merges an exported book back into a vocabulary.
package errorbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/vocab"
)

// ErrEmptyBook is returned when an import contains no usable entries.
var ErrEmptyBook = errors.New("error book has no entries")

// Entry is one word in an exported error book.
type Entry struct {
	ID            string         `json:"id"`
	English       string         `json:"english"`
	Chinese       string         `json:"chinese"`
	TimesStudied  int            `json:"timesStudied"`
	TimesWrong    int            `json:"timesWrong"`
	LastStudiedAt *time.Time     `json:"lastStudiedAt,omitempty"`
	LastWrongAt   *time.Time     `json:"lastWrongAt,omitempty"`
	WrongByKind   map[string]int `json:"wrongByKind,omitempty"`
}

// Book is the JSON export document.
type Book struct {
	Words      []Entry   `json:"words"`
	ExportDate time.Time `json:"exportDate"`
	Count      int       `json:"count"`
}

// Collect returns the error-set words in vocabulary order.
func Collect(words []vocab.Item, store stats.Store) []Entry {
	var out []Entry
	for _, w := range words {
		ws, ok := store.Get(w.ID)
		if !ok || !ws.IsInErrorSet {
			continue
		}
		out = append(out, Entry{
			ID:            w.ID,
			English:       w.Term(),
			Chinese:       w.Prompt,
			TimesStudied:  ws.TimesStudied,
			TimesWrong:    ws.TimesWrong,
			LastStudiedAt: ws.LastStudiedAt,
			LastWrongAt:   ws.LastWrongAt,
			WrongByKind:   ws.WrongByKind,
		})
	}
	return out
}

// ExportJSON writes entries as an indented JSON book.
func ExportJSON(w io.Writer, entries []Entry, now time.Time) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	book := Book{Words: entries, ExportDate: now.UTC(), Count: len(entries)}
	if err := enc.Encode(book); err != nil {
		return fmt.Errorf("encode error book: %w", err)
	}
	return nil
}

// ImportJSON reads a book written by ExportJSON.
func ImportJSON(r io.Reader) ([]Entry, error) {
	var book Book
	if err := json.NewDecoder(r).Decode(&book); err != nil {
		return nil, fmt.Errorf("decode error book: %w", err)
	}
	entries := usable(book.Words)
	if len(entries) == 0 {
		return nil, ErrEmptyBook
	}
	return entries, nil
}

var xlsxHeader = []any{"ID", "English", "Chinese", "TimesStudied", "TimesWrong", "LastWrongAt"}

// ExportXLSX writes entries to a single-sheet workbook.
func ExportXLSX(w io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]any{xlsxHeader}
	for _, e := range entries {
		lastWrong := ""
		if e.LastWrongAt != nil {
			lastWrong = e.LastWrongAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []any{e.ID, e.English, e.Chinese, e.TimesStudied, e.TimesWrong, lastWrong})
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ImportXLSX reads a workbook written by ExportXLSX. Cells that fail to
// parse are left at their zero value.
func ImportXLSX(r io.Reader) ([]Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyBook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var entries []Entry
	for i, row := range rows {
		if i == 0 && strings.EqualFold(cell(row, 0), "id") {
			continue
		}
		e := Entry{
			ID:      cell(row, 0),
			English: cell(row, 1),
			Chinese: cell(row, 2),
		}
		e.TimesStudied, _ = strconv.Atoi(cell(row, 3))
		e.TimesWrong, _ = strconv.Atoi(cell(row, 4))
		if t, err := time.Parse(time.RFC3339, cell(row, 5)); err == nil {
			e.LastWrongAt = &t
		}
		entries = append(entries, e)
	}

	entries = usable(entries)
	if len(entries) == 0 {
		return nil, ErrEmptyBook
	}
	return entries, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func usable(entries []Entry) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if strings.TrimSpace(e.English) == "" || strings.TrimSpace(e.Chinese) == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
