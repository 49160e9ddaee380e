package errorbook

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/vocab"
)

func testWords() []vocab.Item {
	return []vocab.Item{
		vocab.NewItem("1", vocab.SimpleAnswer("apple"), vocab.SimpleAnswer("苹果"), nil),
		vocab.NewItem("2", vocab.SimpleAnswer("book"), vocab.SimpleAnswer("书"), nil),
		vocab.NewItem("5", vocab.SimpleAnswer("cat"), vocab.SimpleAnswer("猫"), nil),
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestCollectOnlyErrorSet(t *testing.T) {
	wrong := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	book := stats.NewBook(
		stats.WordStats{WordID: "1", TimesStudied: 3, TimesWrong: 1, IsInErrorSet: true, LastWrongAt: &wrong},
		stats.WordStats{WordID: "2", TimesStudied: 2},
		stats.WordStats{WordID: "5", TimesStudied: 1, TimesWrong: 1, IsInErrorSet: true},
	)

	entries := Collect(testWords(), book)
	require.Len(t, entries, 2)
	assert.Equal(t, "apple", entries[0].English)
	assert.Equal(t, "苹果", entries[0].Chinese)
	assert.Equal(t, 1, entries[0].TimesWrong)
	assert.Equal(t, "cat", entries[1].English)
}

func TestExportJSONShape(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	entries := []Entry{{ID: "1", English: "apple", Chinese: "苹果", TimesStudied: 2, TimesWrong: 1}}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, entries, now))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "words")
	assert.Contains(t, doc, "exportDate")
	assert.Equal(t, float64(1), doc["count"])
}

func TestExportJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, nil, time.Now()))
	assert.Contains(t, buf.String(), `"words": []`)

	_, err := ImportJSON(&buf)
	assert.ErrorIs(t, err, ErrEmptyBook)
}

func TestJSONRoundTrip(t *testing.T) {
	wrong := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	entries := []Entry{
		{ID: "1", English: "apple", Chinese: "苹果", TimesStudied: 4, TimesWrong: 2, LastWrongAt: &wrong,
			WrongByKind: map[string]int{"spell": 2}},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, entries, time.Now()))

	got, err := ImportJSON(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].TimesWrong)
	require.NotNil(t, got[0].LastWrongAt)
	assert.True(t, got[0].LastWrongAt.Equal(wrong))
	assert.Equal(t, 2, got[0].WrongByKind["spell"])
}

func TestImportJSONSkipsIncomplete(t *testing.T) {
	in := `{"words":[{"english":"apple","chinese":"苹果"},{"english":"","chinese":"空"}],"count":2}`
	got, err := ImportJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "apple", got[0].English)
}

func TestImportJSONInvalid(t *testing.T) {
	_, err := ImportJSON(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestXLSXRoundTrip(t *testing.T) {
	wrong := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	entries := []Entry{
		{ID: "1", English: "apple", Chinese: "苹果", TimesStudied: 4, TimesWrong: 2, LastWrongAt: &wrong},
		{ID: "2", English: "book", Chinese: "书", TimesStudied: 1, TimesWrong: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, entries))

	got, err := ImportXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "apple", got[0].English)
	assert.Equal(t, 4, got[0].TimesStudied)
	assert.Equal(t, 2, got[0].TimesWrong)
	require.NotNil(t, got[0].LastWrongAt)
	assert.True(t, got[0].LastWrongAt.Equal(wrong))
	assert.Nil(t, got[1].LastWrongAt)
}

func TestMergeExistingWord(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := old.Add(48 * time.Hour)
	book := stats.NewBook(stats.WordStats{WordID: "1", TimesStudied: 5, TimesWrong: 3, LastWrongAt: &old})

	res := Merge(testWords(), book, []Entry{
		{English: "Apple", Chinese: "苹果", TimesStudied: 2, TimesWrong: 1, LastWrongAt: ptr(newer)},
	})

	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 0, res.Added)
	assert.Len(t, res.Words, 3)
	assert.Equal(t, []string{"1"}, res.Touched)

	ws, ok := book.Get("1")
	require.True(t, ok)
	assert.True(t, ws.IsInErrorSet)
	assert.Equal(t, 3, ws.TimesWrong, "keeps the larger wrong count")
	assert.Equal(t, 5, ws.TimesStudied)
	require.NotNil(t, ws.LastWrongAt)
	assert.True(t, ws.LastWrongAt.Equal(newer), "keeps the later wrong time")
}

func TestMergeKeepsLaterLocalTime(t *testing.T) {
	local := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	imported := local.Add(-time.Hour)
	book := stats.NewBook(stats.WordStats{WordID: "2", TimesStudied: 1, TimesWrong: 1, LastWrongAt: &local})

	Merge(testWords(), book, []Entry{{English: "book", Chinese: "书", TimesWrong: 4, LastWrongAt: &imported}})

	ws, _ := book.Get("2")
	assert.Equal(t, 4, ws.TimesWrong)
	assert.GreaterOrEqual(t, ws.TimesStudied, ws.TimesWrong)
	assert.True(t, ws.LastWrongAt.Equal(local))
}

func TestMergeNewWord(t *testing.T) {
	book := stats.NewBook()
	res := Merge(testWords(), book, []Entry{
		{English: "dog", Chinese: "狗", TimesStudied: 2, TimesWrong: 2},
		{English: "eel", Chinese: "鳗鱼", TimesWrong: 1},
	})

	assert.Equal(t, 2, res.Added)
	require.Len(t, res.Words, 5)
	assert.Equal(t, "6", res.Words[3].ID, "next numeric id after the largest")
	assert.Equal(t, "7", res.Words[4].ID)
	assert.Equal(t, "dog", res.Words[3].Term())

	ws, ok := book.Get("6")
	require.True(t, ok)
	assert.True(t, ws.IsInErrorSet)
	assert.Equal(t, 2, ws.TimesWrong)

	eel, _ := book.Get("7")
	assert.Equal(t, 1, eel.TimesStudied, "studied count never below wrong count")
}

func TestMergeDuplicateEntriesAddOnce(t *testing.T) {
	book := stats.NewBook()
	res := Merge(testWords(), book, []Entry{
		{English: "dog", Chinese: "狗", TimesWrong: 1},
		{English: "DOG", Chinese: "狗", TimesWrong: 3},
	})

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Updated)
	ws, _ := book.Get("6")
	assert.Equal(t, 3, ws.TimesWrong)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	words := testWords()
	Merge(words, stats.NewBook(), []Entry{{English: "dog", Chinese: "狗"}})
	assert.Len(t, words, 3)
}

func TestMergeKnownExcludesNewWords(t *testing.T) {
	book := stats.NewBook()
	res := Merge(testWords(), book, []Entry{
		{English: "apple", Chinese: "苹果", TimesWrong: 1},
		{English: "jump", Chinese: "跳", TimesWrong: 4},
	})

	assert.Equal(t, []string{"1", "6"}, res.Touched)
	assert.Equal(t, []string{"6"}, res.NewIDs)
	assert.Equal(t, []string{"1"}, res.Known())
}

func TestMergeUnusableEntryKeepsNextID(t *testing.T) {
	res := Merge(testWords(), stats.NewBook(), []Entry{
		{English: "   ", Chinese: "空"},
		{English: "dog", Chinese: "狗"},
	})

	require.Equal(t, 1, res.Added)
	assert.Equal(t, "6", res.Words[3].ID)
	assert.Equal(t, []string{"6"}, res.NewIDs)
}
