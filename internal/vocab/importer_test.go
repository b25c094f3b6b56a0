package vocab_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/vocab"
	"github.com/xuri/excelize/v2"
)

func TestParse_CSV(t *testing.T) {
	input := strings.Join([]string{
		"word,meaning,sentence",
		"apple,a fruit,I ate an apple.",
		"Apple,duplicate,",
		"  banana , yellow fruit ",
		",orphan meaning,",
		",,",
		`"cherry","small, red","Cherries are sweet."`,
	}, "\n")

	res, err := vocab.Parse(strings.NewReader(input), "list.CSV")
	require.NoError(t, err)

	require.Len(t, res.Entries, 3)
	assert.Equal(t, vocab.Entry{Word: "apple", Meaning: "a fruit", Sentence: "I ate an apple."}, res.Entries[0])
	assert.Equal(t, vocab.Entry{Word: "banana", Meaning: "yellow fruit"}, res.Entries[1])
	assert.Equal(t, "small, red", res.Entries[2].Meaning)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"row 5: missing word"}, res.Errors)
}

func TestParse_CSVWithoutHeader(t *testing.T) {
	res, err := vocab.Parse(strings.NewReader("serendipity,luck\n"), "words.csv")
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "serendipity", res.Entries[0].Word)
}

func TestParse_Excel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Word", "Meaning", "Sentence"},
		{"ephemeral", "short-lived", "Fame is ephemeral."},
		{"ubiquitous", "everywhere"},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	res, err := vocab.Parse(&buf, "upload.xlsx")
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, vocab.Entry{Word: "ephemeral", Meaning: "short-lived", Sentence: "Fame is ephemeral."}, res.Entries[0])
	assert.Equal(t, vocab.Entry{Word: "ubiquitous", Meaning: "everywhere"}, res.Entries[1])
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := vocab.Parse(strings.NewReader("x"), "words.txt")
	assert.ErrorIs(t, err, vocab.ErrUnsupportedFormat)
	assert.False(t, vocab.Supported("words.txt"))
	assert.True(t, vocab.Supported("Words.XLSX"))
}

func TestParse_Empty(t *testing.T) {
	res, err := vocab.Parse(strings.NewReader("word,meaning\n"), "words.csv")
	assert.ErrorIs(t, err, vocab.ErrNoEntries)
	require.NotNil(t, res)
	assert.Empty(t, res.Entries)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.csv")
	require.NoError(t, os.WriteFile(path, []byte("word,meaning\nlucid,clear\n"), 0o644))

	res, err := vocab.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "lucid", res.Entries[0].Word)

	_, err = vocab.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
