package vocab

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither JSON nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported vocabulary format")

	// ErrEmptyVocabulary is returned when a source yields no usable items.
	ErrEmptyVocabulary = errors.New("vocabulary has no usable entries")
)

var (
	termKeys    = []string{"english", "en", "word"}
	meaningKeys = []string{"chinese", "cn", "meaning"}
)

const schemaURL = "schema://vocabulary.json"

var stringOrList = map[string]any{
	"oneOf": []any{
		map[string]any{"type": "string"},
		map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

var meaningShape = map[string]any{
	"oneOf": []any{
		map[string]any{"type": "string"},
		map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		map[string]any{"type": "object", "additionalProperties": stringOrList},
	},
}

var entrySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":      map[string]any{"type": []any{"string", "integer"}},
		"english": stringOrList,
		"en":      stringOrList,
		"word":    stringOrList,
		"chinese": meaningShape,
		"cn":      meaningShape,
		"meaning": meaningShape,
		"related": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

var vocabularySchema = map[string]any{
	"oneOf": []any{
		entrySchema,
		map[string]any{"type": "array", "items": entrySchema},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, vocabularySchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// LoadFile loads a vocabulary from a .json or .xlsx file.
func LoadFile(path string) ([]Item, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open vocabulary: %w", err)
		}
		defer f.Close()
		return LoadJSON(f)
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open vocabulary: %w", err)
		}
		defer f.Close()
		return LoadXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadJSON reads a JSON array of entries, or a single entry object.
// Entries missing a term or a meaning are skipped. IDs default to the
// 1-based position in the source.
func LoadJSON(r io.Reader) ([]Item, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile vocabulary schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var entries []map[string]json.RawMessage
	if _, isArray := parsed.([]any); isArray {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode entries: %w", err)
		}
	} else {
		var single map[string]json.RawMessage
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, single)
	}

	var items []Item
	for i, e := range entries {
		term, err := ParseField(firstPresent(e, termKeys))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		meaning, err := ParseField(firstPresent(e, meaningKeys))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		var related []string
		if rel, ok := e["related"]; ok {
			if err := json.Unmarshal(rel, &related); err != nil {
				return nil, fmt.Errorf("entry %d related: %w", i+1, err)
			}
		}

		it := NewItem(entryID(e["id"], i+1), term, meaning, related)
		if !it.Usable() {
			continue
		}
		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return items, nil
}

// firstPresent returns the first non-null value among keys.
func firstPresent(e map[string]json.RawMessage, keys []string) json.RawMessage {
	for _, k := range keys {
		if v, ok := e[k]; ok && len(v) > 0 && string(v) != "null" {
			return v
		}
	}
	return nil
}

func entryID(raw json.RawMessage, pos int) string {
	if len(raw) > 0 {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var n int64
		if err := json.Unmarshal(raw, &n); err == nil {
			return strconv.FormatInt(n, 10)
		}
	}
	return strconv.Itoa(pos)
}

// LoadXLSX reads the first sheet of a workbook with the columns
// term, meaning and related. A header row is detected and skipped.
// Alternate spellings in the term column are separated by "/", related
// terms by "," or ";".
func LoadXLSX(r io.Reader) ([]Item, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyVocabulary
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var items []Item
	pos := 0
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		pos++
		term, meaning, related := cell(row, 0), cell(row, 1), cell(row, 2)
		it := NewItem(strconv.Itoa(pos),
			MultiForm(strings.Split(term, "/")),
			SimpleAnswer(meaning),
			splitList(related))
		if !it.Usable() {
			continue
		}
		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return items, nil
}

func isHeader(row []string) bool {
	switch strings.ToLower(cell(row, 0)) {
	case "english", "en", "word", "term":
		return true
	}
	return false
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
}
