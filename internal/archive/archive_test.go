package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localUnix(y int, m time.Month, d, h int) int64 {
	return time.Date(y, m, d, h, 0, 0, 0, time.Local).Unix()
}

func sampleExport() string {
	return fmt.Sprintf(`[
  {"id": "a", "title": "Trip to Rome", "create_time": %d, "mapping": {}},
  {"id": "b", "title": "Python tips", "create_time": %d.5, "mapping": {}},
  {"id": "c", "title": "No date", "create_time": null, "mapping": {}},
  {"id": "d", "title": "PYTHON again", "create_time": %d, "mapping": {}}
]`, localUnix(2025, 10, 21, 9), localUnix(2025, 10, 21, 18), localUnix(2025, 10, 22, 8))
}

func writeExport(t *testing.T, content string, chatHTML bool) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Charlie-1")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConversationsFile), []byte(content), 0o600))
	if chatHTML {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ChatHTMLFile), []byte("<html></html>"), 0o600))
	}
	return dir
}

func keys(t *testing.T, exp *Export, c Criteria) []string {
	t.Helper()
	var out []string
	for _, r := range Filter(exp.Records, c) {
		out = append(out, r.Conversation.Key())
	}
	return out
}

func TestLoad(t *testing.T) {
	dir := writeExport(t, sampleExport(), true)
	exp, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Charlie-1", exp.Name)
	assert.True(t, exp.HasChatHTML)
	require.Len(t, exp.Records, 4)
	assert.Equal(t, "Python tips", exp.Records[1].Conversation.Title)
	assert.Contains(t, string(exp.Records[1].Raw), `"Python tips"`)
	assert.Equal(t, filepath.Join("out", "Charlie-1"), exp.OutputDir("out"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, ErrNotFound))

	empty := t.TempDir()
	_, err = Load(empty)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), ConversationsFile)

	bad := writeExport(t, `[{"id": "a",`, false)
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestLoadNonArrayIsEmpty(t *testing.T) {
	exp, err := Load(writeExport(t, `{"conversations": []}`, false))
	require.NoError(t, err)
	assert.Empty(t, exp.Records)
	assert.False(t, exp.HasChatHTML)
}

func TestFilterByDateAndKeyword(t *testing.T) {
	exp, err := Load(writeExport(t, sampleExport(), false))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, keys(t, exp, Criteria{Date: "2025-10-21"}))
	assert.Equal(t, []string{"b"}, keys(t, exp, Criteria{Date: "2025-10-21", Keyword: "python"}))
	assert.Equal(t, []string{"b", "d"}, keys(t, exp, Criteria{Keyword: "PyThOn"}))
	assert.Empty(t, keys(t, exp, Criteria{Date: "2020-01-01"}))
	assert.Equal(t, []string{"a", "b", "c", "d"}, keys(t, exp, Criteria{}), "empty criteria keeps everything in order")
}

func TestGroupByDate(t *testing.T) {
	exp, err := Load(writeExport(t, sampleExport(), false))
	require.NoError(t, err)

	groups := GroupByDate(exp.Records)
	require.Len(t, groups, 2)
	assert.Equal(t, "2025-10-21", groups[0].Date)
	assert.Len(t, groups[0].Records, 2)
	assert.Equal(t, "2025-10-22", groups[1].Date)
	assert.Equal(t, []string{"2025-10-21", "2025-10-22"}, Dates(exp.Records))
}

func TestFind(t *testing.T) {
	exp, err := Load(writeExport(t, sampleExport(), false))
	require.NoError(t, err)

	r, ok := Find(exp.Records, "c")
	require.True(t, ok)
	assert.Equal(t, "No date", r.Conversation.Title)

	r, ok = Find(exp.Records, "2")
	require.True(t, ok)
	assert.Equal(t, "b", r.Conversation.Key())

	_, ok = Find(exp.Records, "9")
	assert.False(t, ok)
}

func TestCopyChatHTML(t *testing.T) {
	exp, err := Load(writeExport(t, sampleExport(), true))
	require.NoError(t, err)
	dst := filepath.Join(t.TempDir(), "chat.html")
	require.NoError(t, exp.CopyChatHTML(dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	exp.HasChatHTML = false
	assert.True(t, errors.Is(exp.CopyChatHTML(dst), ErrNotFound))
}
