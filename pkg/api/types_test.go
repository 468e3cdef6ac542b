package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConversation = `{
  "id": "c1",
  "title": "Trip to Rome",
  "create_time": 1700000000.25,
  "current_node": "n3",
  "mapping": {
    "n3": {"id": "n3", "parent": "n2", "message": {"author": {"role": "assistant"}, "content": {"content_type": "text", "parts": ["Hi ", {"asset": 1}, null, "there"]}, "create_time": 30}},
    "n1": {"id": "n1", "message": null, "children": ["n2"]},
    "n2": {"id": "n2", "parent": "n1", "message": {"content": {"content_type": "text", "parts": ["hello"]}}}
  }
}`

func TestConversationDecode(t *testing.T) {
	var c Conversation
	require.NoError(t, json.Unmarshal([]byte(sampleConversation), &c))

	assert.Equal(t, "c1", c.Key())
	assert.Equal(t, "Trip to Rome", c.DisplayTitle())
	assert.Equal(t, []string{"n3", "n1", "n2"}, c.Mapping.IDs(), "document order is kept")

	n3, ok := c.Mapping.Get("n3")
	require.True(t, ok)
	require.NotNil(t, n3.Message)
	assert.Equal(t, "assistant", n3.Message.Role())
	assert.Equal(t, `Hi {"asset": 1}there`, n3.Message.Content.Text())
	assert.Equal(t, Unix(30), n3.Message.CreateTime)

	n1, _ := c.Mapping.Get("n1")
	assert.Nil(t, n1.Message)

	n2, _ := c.Mapping.Get("n2")
	assert.Equal(t, "unknown", n2.Message.Role())
	assert.True(t, n2.Message.CreateTime.IsZero())
}

func TestMappingRoundTripKeepsOrder(t *testing.T) {
	var c Conversation
	require.NoError(t, json.Unmarshal([]byte(sampleConversation), &c))
	b, err := json.Marshal(c.Mapping)
	require.NoError(t, err)

	var again Mapping
	require.NoError(t, json.Unmarshal(b, &again))
	assert.Equal(t, c.Mapping.IDs(), again.IDs())
}

func TestMappingRejectsNonObject(t *testing.T) {
	var m Mapping
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &m))
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, 0, m.Len())
}

func TestUnixFormatting(t *testing.T) {
	var zero Unix
	assert.Equal(t, "", zero.Day())
	assert.Equal(t, "Unknown", zero.Stamp("Unknown"))

	ts := Unix(1700000000.75)
	want := time.Unix(1700000000, 0).Local()
	assert.Equal(t, want.Format(DayLayout), ts.Day())
	assert.Equal(t, want.Format(StampLayout), ts.Stamp("Unknown"))
}

func TestDisplayTitleOnlyDefaultsWhenAbsent(t *testing.T) {
	cases := map[string]string{
		`{"id":"a"}`:                "Untitled",
		`{"id":"a","title":null}`:   "Untitled",
		`{"id":"a","title":""}`:     "",
		`{"id":"a","title":"  "}`:   "  ",
		`{"id":"a","title":"Rome"}`: "Rome",
	}
	for raw, want := range cases {
		var c Conversation
		require.NoError(t, json.Unmarshal([]byte(raw), &c), raw)
		assert.Equal(t, want, c.DisplayTitle(), raw)
	}
	assert.Equal(t, "  ", Conversation{Title: "  "}.DisplayTitle())
	assert.Equal(t, "x", Conversation{ConversationID: "x"}.Key())
}

func TestRoleOnlyDefaultsWhenAbsent(t *testing.T) {
	cases := map[string]string{
		`{"content":{}}`:                          "unknown",
		`{"author":null,"content":{}}`:            "unknown",
		`{"author":{},"content":{}}`:              "unknown",
		`{"author":{"role":null},"content":{}}`:   "unknown",
		`{"author":{"role":""},"content":{}}`:     "",
		`{"author":{"role":"tool"},"content":{}}`: "tool",
	}
	for raw, want := range cases {
		var m Message
		require.NoError(t, json.Unmarshal([]byte(raw), &m), raw)
		assert.Equal(t, want, m.Role(), raw)
	}
	assert.Equal(t, "", Message{Author: &Author{}}.Role())
	assert.Error(t, json.Unmarshal([]byte(`{"author":{"role":3}}`), &Message{}))
}
