// Package transcript reconstructs a linear message sequence from a
// conversation's node mapping.
package transcript

import (
	"sort"
	"strings"

	"github.com/mithrel/chatextract/pkg/api"
)

// Strategy selects how the node graph is flattened.
type Strategy string

const (
	// Timeline keeps every renderable node and orders by create_time. Branches
	// (edits, regenerations) are merged into the one sequence.
	Timeline Strategy = "timeline"
	// Branch follows parent links from current_node back to the root, so only
	// the branch that was live at export time is kept.
	Branch Strategy = "branch"
)

// ParseStrategy parses "timeline" or "branch"; empty means Timeline.
func ParseStrategy(s string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Timeline):
		return Timeline, true
	case string(Branch):
		return Branch, true
	default:
		return Timeline, false
	}
}

// Extract returns the renderable messages of c in display order.
func Extract(c api.Conversation, s Strategy) []api.RenderedMessage {
	if s == Branch {
		if path, ok := branchPath(c); ok {
			return collect(c.Mapping, path)
		}
	}
	out := collect(c.Mapping, c.Mapping.IDs())
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreateTime < out[j].CreateTime
	})
	return out
}

// collect keeps text messages with non-blank bodies, in the order of ids.
func collect(m api.Mapping, ids []string) []api.RenderedMessage {
	out := make([]api.RenderedMessage, 0, len(ids))
	for _, id := range ids {
		n, ok := m.Get(id)
		if !ok || n.Message == nil {
			continue
		}
		if rm, ok := renderable(*n.Message); ok {
			out = append(out, rm)
		}
	}
	return out
}

func renderable(msg api.Message) (api.RenderedMessage, bool) {
	if msg.Content.ContentType != "text" {
		return api.RenderedMessage{}, false
	}
	text := msg.Content.Text()
	if strings.TrimSpace(text) == "" {
		return api.RenderedMessage{}, false
	}
	return api.RenderedMessage{
		Role:       msg.Role(),
		Content:    text,
		CreateTime: msg.CreateTime,
	}, true
}

// branchPath walks from current_node to the root and returns ids root first.
// It reports false when current_node is missing from the mapping.
func branchPath(c api.Conversation) ([]string, bool) {
	if _, ok := c.Mapping.Get(c.CurrentNode); !ok {
		return nil, false
	}
	var path []string
	seen := make(map[string]bool)
	for id := c.CurrentNode; id != "" && !seen[id]; {
		n, ok := c.Mapping.Get(id)
		if !ok {
			break
		}
		seen[id] = true
		path = append(path, id)
		id = n.Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
