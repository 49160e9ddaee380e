package vocab

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseFieldVariants(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		canonical string
		accepted  []string
		display   string
	}{
		{"simple", `" run "`, "run", []string{"run"}, "run"},
		{"multi", `["run", "runs", ""]`, "run", []string{"run", "runs"}, "run, runs"},
		{"grouped", `{"v.": ["跑"], "n.": "跑步"}`, "跑步", []string{"跑步", "跑"}, "n. 跑步; v. 跑"},
		{"empty string", `""`, "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseField(json.RawMessage(tt.raw))
			require.NoError(t, err)
			canonical, accepted := Resolve(f)
			assert.Equal(t, tt.canonical, canonical)
			assert.Equal(t, tt.accepted, accepted)
			assert.Equal(t, tt.display, f.Display())
		})
	}
}

func TestParseFieldNull(t *testing.T) {
	f, err := ParseField(json.RawMessage("null"))
	require.NoError(t, err)
	assert.Nil(t, f)

	canonical, accepted := Resolve(f)
	assert.Empty(t, canonical)
	assert.Nil(t, accepted)
}

func TestLoadJSONAliases(t *testing.T) {
	src := `[
		{"english": "apple", "chinese": "苹果"},
		{"en": "run", "cn": {"v.": ["跑"], "n.": ["跑步"]}, "related": ["ran", "rub"]},
		{"word": ["color", "colour"], "meaning": "颜色", "id": 77},
		{"english": "orphan"},
		{"word": "blue", "meaning": "蓝色", "id": "b-1"}
	]`

	items, err := LoadJSON(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "apple", items[0].Term())
	assert.Equal(t, "苹果", items[0].Prompt)

	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "n. 跑步; v. 跑", items[1].Prompt)
	assert.Equal(t, []string{"跑步", "跑"}, items[1].Meanings)
	assert.Equal(t, []string{"ran", "rub"}, items[1].RelatedForms)

	assert.Equal(t, "77", items[2].ID)
	assert.Equal(t, []string{"color", "colour"}, items[2].AnswerForms)

	// The orphan entry is skipped but still consumes its position.
	assert.Equal(t, "b-1", items[3].ID)
}

func TestLoadJSONSingleObject(t *testing.T) {
	items, err := LoadJSON(strings.NewReader(`{"english": "one", "chinese": "一"}`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "one", items[0].Term())
}

func TestLoadJSONSchemaRejects(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`[{"english": 5, "chinese": "五"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestLoadJSONEmpty(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`[]`))
	assert.True(t, errors.Is(err, ErrEmptyVocabulary))
}

func TestLoadJSONInvalid(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{not json`))
	require.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"english", "chinese", "related"},
		{"apple", "苹果", "apply, ample"},
		{"color/colour", "颜色", ""},
		{"", "空", ""},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	items, err := LoadXLSX(buf)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, []string{"apply", "ample"}, items[0].RelatedForms)
	assert.Equal(t, []string{"color", "colour"}, items[1].AnswerForms)
	assert.Equal(t, "颜色", items[1].Prompt)
}

func TestLoadFileDispatch(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"en":"cat","cn":"猫"}]`), 0o644))
	items, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = LoadFile(filepath.Join(dir, "words.txt"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestItemUsable(t *testing.T) {
	assert.False(t, Item{ID: "1", Prompt: "x"}.Usable())
	assert.False(t, Item{ID: "1", AnswerForms: []string{"x"}}.Usable())
	assert.True(t, Item{ID: "1", AnswerForms: []string{"x"}, Prompt: "y"}.Usable())
	assert.Equal(t, "", Item{}.Term())
}

func TestIndex(t *testing.T) {
	idx := Index([]Item{{ID: "a"}, {ID: "b"}})
	assert.Len(t, idx, 2)
	assert.Equal(t, "b", idx["b"].ID)
}

func TestWriteJSONReloads(t *testing.T) {
	items := []Item{
		NewItem("3", SimpleAnswer("apple"), SimpleAnswer("苹果"), nil),
		NewItem("9", MultiForm{"color", "colour"}, SimpleAnswer("颜色"), []string{"collar"}),
	}

	var buf strings.Builder
	require.NoError(t, WriteJSON(&buf, items))
	assert.Contains(t, buf.String(), "苹果")

	got, err := LoadJSON(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "apple", got[0].Term())
	assert.Equal(t, []string{"color", "colour"}, got[1].AnswerForms)
	assert.Equal(t, []string{"collar"}, got[1].RelatedForms)
}
