package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/chatextract/internal/transcript"
	"github.com/mithrel/chatextract/pkg/api"
)

func msgNode(role, text string, ts float64) api.Node {
	part, _ := json.Marshal(text)
	n := api.Node{Message: &api.Message{
		Content:    api.Content{ContentType: "text", Parts: []json.RawMessage{part}},
		CreateTime: api.Unix(ts),
	}}
	if role != "" {
		n.Message.Author = &api.Author{Role: role}
	}
	return n
}

func sampleConversations() []api.Conversation {
	ts := api.Unix(time.Date(2025, 10, 21, 9, 30, 0, 0, time.Local).Unix())

	var first api.Conversation
	first.ID = "a"
	first.Title = "Trip to <Rome>"
	first.CreateTime = ts
	first.Mapping.Add("m2", msgNode("assistant", "**Sure** & more", 20))
	first.Mapping.Add("m1", msgNode("user", "Plan a trip", 10))
	first.Mapping.Add("m3", msgNode("tool", "raw output", 30))

	// No title and no author in the source.
	var second api.Conversation
	_ = json.Unmarshal([]byte(`{"id":"b","mapping":{"x":{"message":{"content":{"content_type":"text","parts":["orphan"]}}}}}`), &second)
	return []api.Conversation{first, second}
}

func TestHTMLDocumentStructure(t *testing.T) {
	convs := sampleConversations()
	out := NewHTMLDocument(HTMLOptions{}).Render(convs)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Chat Export</title>")
	assert.Contains(t, out, "Total conversations: <strong>2</strong>")

	stamp := convs[0].CreateTime.Stamp("")
	assert.Contains(t, out, `<li><a href="#conv-1">Trip to &lt;Rome&gt;</a> <span class="toc-date">`+stamp+`</span></li>`)
	assert.Contains(t, out, `<li><a href="#conv-2">Untitled</a> <span class="toc-date">Unknown</span></li>`)
	assert.Contains(t, out, `<section class="conversation" id="conv-1">`)
	assert.Contains(t, out, `<section class="conversation" id="conv-2">`)
	assert.Contains(t, out, `<div class="conversation-date">Unknown date</div>`)

	// TOC entries and sections keep input order.
	assert.Less(t, strings.Index(out, `id="conv-1"`), strings.Index(out, `id="conv-2"`))
}

func TestHTMLDocumentMessages(t *testing.T) {
	out := NewHTMLDocument(HTMLOptions{Title: "Export"}).Render(sampleConversations())

	assert.Contains(t, out, "<title>Export</title>")
	// Messages within a conversation follow create_time.
	user := strings.Index(out, "Plan a trip")
	assistant := strings.Index(out, "<strong>Sure</strong> &amp; more")
	require.NotEqual(t, -1, user)
	require.NotEqual(t, -1, assistant)
	assert.Less(t, user, assistant)

	assert.Contains(t, out, `<div class="message user">`)
	assert.Contains(t, out, `<div class="message assistant">`)
	// Unknown roles take the system style but keep their own label.
	assert.Contains(t, out, "<div class=\"message system\">\n                    <div class=\"role\">TOOL</div>")
	assert.Contains(t, out, `<div class="role">UNKNOWN</div>`)
	assert.Contains(t, out, `<div class="content"><p>orphan</p></div>`)
}

func TestHTMLDocumentEmpty(t *testing.T) {
	out := NewHTMLDocument(HTMLOptions{}).Render(nil)
	assert.Contains(t, out, "Total conversations: <strong>0</strong>")
	assert.NotContains(t, out, "<section")
}

func TestEncodeRecordsPreservesSource(t *testing.T) {
	records := []api.Record{
		{Raw: json.RawMessage(`{"title":"Café <b> & co","id":"1"}`)},
		{Raw: json.RawMessage(`{"z":1,"a":[1,2]}`)},
	}
	b, err := EncodeRecords(records)
	require.NoError(t, err)
	want := "[\n  {\n    \"title\": \"Café <b> & co\",\n    \"id\": \"1\"\n  },\n  {\n    \"z\": 1,\n    \"a\": [\n      1,\n      2\n    ]\n  }\n]\n"
	assert.Equal(t, want, string(b))

	empty, err := EncodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(empty))
}

func TestEncodeRecordsWritesEscapedTextLiterally(t *testing.T) {
	records := []api.Record{
		{Raw: json.RawMessage(`{"title":"caf\u00e9 \ue200cite","n":1.50,"face":"\ud83d\ude00"}`)},
		{Raw: json.RawMessage(`{"keep":"a\"b\\c\u0001\n","tag":"\u003cb\u003e"}`)},
	}
	b, err := EncodeRecords(records)
	require.NoError(t, err)
	out := string(b)

	assert.Contains(t, out, "\"title\": \"caf\u00e9 \ue200cite\"")
	assert.Contains(t, out, "\"face\": \"\U0001F600\"")
	assert.Contains(t, out, `"n": 1.50`)
	assert.Contains(t, out, `"keep": "a\"b\\c\u0001\n"`)
	assert.Contains(t, out, `"tag": "<b>"`)
	assert.NotContains(t, out, `\u00e9`)

	var back []map[string]any
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "caf\u00e9 \ue200cite", back[0]["title"])
}

func TestWriteJSONRecord(t *testing.T) {
	var buf bytes.Buffer
	rec := api.Record{Raw: json.RawMessage(`{"z":"\u00fc","a":1}`)}
	require.NoError(t, WriteJSONRecord(&buf, rec))
	assert.Equal(t, "{\n  \"z\": \"ü\",\n  \"a\": 1\n}\n", buf.String())
}

func TestSampleTitles(t *testing.T) {
	assert.Equal(t, "Trip, Python", SampleTitles([]string{"Trip", "Python"}, 2, 30))
	assert.Equal(t, "Trip, Pyth...", SampleTitles([]string{"Trip", "Python", "Rome"}, 2, 4))
	assert.Equal(t, "", SampleTitles(nil, 2, 30))
}

func TestWritePlainDates(t *testing.T) {
	var buf bytes.Buffer
	rows := []DateRow{
		{Date: "2025-10-21", Count: 2, Titles: []string{"Trip to Rome", "Python tips"}},
		{Date: "2025-10-22", Count: 1, Titles: []string{"Pasta"}},
	}
	require.NoError(t, WritePlainDates(&buf, rows, true, 2, 30))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Date"))
	assert.Contains(t, lines[1], "2025-10-21")
	assert.Contains(t, lines[1], "Trip to Rome, Python tips")
}

func TestTranscriptWriters(t *testing.T) {
	tr := NewTranscript(sampleConversations()[0], transcript.Timeline)
	require.Len(t, tr.Messages, 3)

	plain := FormatTranscript(tr)
	assert.Contains(t, plain, "Title: Trip to <Rome>")
	assert.Less(t, strings.Index(plain, "[USER]"), strings.Index(plain, "[ASSISTANT]"))

	var js bytes.Buffer
	require.NoError(t, WriteJSONTranscript(&js, tr, false))
	var decoded Transcript
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, tr.Messages, decoded.Messages)

	var nd bytes.Buffer
	require.NoError(t, WriteNDJSONTranscript(&nd, tr))
	assert.Equal(t, 3, strings.Count(nd.String(), "\n"))

	md := TranscriptMarkdown(tr)
	assert.True(t, strings.HasPrefix(md, "# Trip to <Rome>"))
	assert.Contains(t, md, "### USER")
}

func TestWritePrettyTranscript(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTranscript(sampleConversations()[0], transcript.Timeline)
	require.NoError(t, WritePrettyTranscript(&buf, tr, PrettyOptions{Style: "notty", WordWrap: 60}))
	assert.Contains(t, buf.String(), "Plan a trip")
}
