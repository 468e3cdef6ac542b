package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DayLayout   = "2006-01-02"
	StampLayout = "2006-01-02 15:04:05"
)

// Unix is a unix timestamp in seconds as found in exports (fractional allowed).
// Zero means absent.
type Unix float64

func (u Unix) IsZero() bool { return u == 0 }

// Time converts to local time.
func (u Unix) Time() time.Time {
	sec, frac := math.Modf(float64(u))
	return time.Unix(int64(sec), int64(frac*1e9)).Local()
}

// Day returns the local YYYY-MM-DD date, or "" when absent.
func (u Unix) Day() string {
	if u.IsZero() {
		return ""
	}
	return u.Time().Format(DayLayout)
}

// Stamp returns the local "YYYY-MM-DD HH:MM:SS" form, or fallback when absent.
func (u Unix) Stamp(fallback string) string {
	if u.IsZero() {
		return fallback
	}
	return u.Time().Format(StampLayout)
}

// Conversation is one record of conversations.json.
type Conversation struct {
	ID             string  `json:"id"`
	ConversationID string  `json:"conversation_id,omitempty"`
	Title          string  `json:"title"`
	CreateTime     Unix    `json:"create_time"`
	UpdateTime     Unix    `json:"update_time,omitempty"`
	CurrentNode    string  `json:"current_node,omitempty"`
	Mapping        Mapping `json:"mapping"`

	// titleAbsent is set when the source had no title or a null one.
	titleAbsent bool
}

func (c *Conversation) UnmarshalJSON(b []byte) error {
	type plain Conversation
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = Conversation(p)
	c.titleAbsent = !present(gjson.GetBytes(b, "title"))
	return nil
}

// Key returns the conversation identifier, preferring id over conversation_id.
func (c Conversation) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.ConversationID
}

// DisplayTitle returns the title, or "Untitled" when the source had none.
// A present but blank title is kept as is.
func (c Conversation) DisplayTitle() string {
	if c.titleAbsent {
		return "Untitled"
	}
	return c.Title
}

type Node struct {
	ID       string   `json:"id,omitempty"`
	Message  *Message `json:"message"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
}

type Author struct {
	Role string `json:"role"`

	// roleAbsent is set when the source had no role or a null one.
	roleAbsent bool
}

func (a *Author) UnmarshalJSON(b []byte) error {
	r := gjson.GetBytes(b, "role")
	*a = Author{Role: r.String(), roleAbsent: !present(r)}
	if r.Exists() && r.Type != gjson.Null && r.Type != gjson.String {
		return fmt.Errorf("author role: expected string, got %s", r.Type)
	}
	return nil
}

func present(r gjson.Result) bool { return r.Exists() && r.Type != gjson.Null }

type Content struct {
	ContentType string            `json:"content_type"`
	Parts       []json.RawMessage `json:"parts,omitempty"`
}

// Text concatenates parts verbatim. String parts contribute their value,
// null parts nothing, anything else its JSON text.
func (c Content) Text() string {
	var b strings.Builder
	for _, p := range c.Parts {
		r := gjson.ParseBytes(p)
		switch r.Type {
		case gjson.String:
			b.WriteString(r.String())
		case gjson.Null:
		default:
			b.WriteString(strings.TrimSpace(r.Raw))
		}
	}
	return b.String()
}

type Message struct {
	ID         string  `json:"id,omitempty"`
	Author     *Author `json:"author,omitempty"`
	Content    Content `json:"content"`
	CreateTime Unix    `json:"create_time,omitempty"`
}

// Role returns the author role, "unknown" when the author or its role is
// missing or null.
func (m Message) Role() string {
	if m.Author == nil || m.Author.roleAbsent {
		return "unknown"
	}
	return m.Author.Role
}

// RenderedMessage is the flattened, role-tagged text unit used for display.
type RenderedMessage struct {
	Role       string `json:"role"`
	Content    string `json:"content"`
	CreateTime Unix   `json:"create_time"`
}

// Mapping is the node graph of a conversation. It remembers the order nodes
// appear in the source document so iteration is deterministic.
type Mapping struct {
	ids   []string
	nodes map[string]Node
}

// Add appends a node; re-adding an id replaces the node but keeps its position.
func (m *Mapping) Add(id string, n Node) {
	if m.nodes == nil {
		m.nodes = make(map[string]Node)
	}
	if _, ok := m.nodes[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.nodes[id] = n
}

func (m Mapping) Len() int { return len(m.ids) }

// Get returns the node stored under id.
func (m Mapping) Get(id string) (Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// IDs returns node ids in document order.
func (m Mapping) IDs() []string { return append([]string(nil), m.ids...) }

func (m *Mapping) UnmarshalJSON(b []byte) error {
	res := gjson.ParseBytes(b)
	*m = Mapping{}
	if res.Type == gjson.Null {
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("mapping: expected object, got %s", res.Type)
	}
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		var n Node
		if err = json.Unmarshal([]byte(value.Raw), &n); err != nil {
			err = fmt.Errorf("mapping node %q: %w", key.String(), err)
			return false
		}
		m.Add(key.String(), n)
		return true
	})
	return err
}

func (m Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.nodes[id])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Record is one export entry: the decoded view plus the untouched source bytes.
type Record struct {
	Raw          json.RawMessage
	Conversation Conversation
}
