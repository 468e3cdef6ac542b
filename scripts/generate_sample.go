package main

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/mithrel/chatextract/pkg/api"
)

var topics = []string{
	"Python tips", "Go generics", "Weekend plans", "Regex help",
	"Recipe ideas", "SQL indexes", "Travel checklist", "Résumé review",
}

var replies = []string{
	"Here is a **short** answer with `code`.",
	"## Steps\n\n1. Install\n2. Run\n\n```\ngo test ./...\n```",
	"See [the docs](https://example.com/docs) for details.",
	"Sure\ue200cite\ue202turn0search1\ue201, that works.",
	"_Note:_ results may vary.\nSecond line.",
}

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	const total = 120
	out := make([]api.Conversation, 0, total)
	base := time.Date(2025, 10, 1, 9, 0, 0, 0, time.Local)

	for i := 0; i < total; i++ {
		// A few conversations per day, oldest first
		created := base.Add(time.Duration(i*7+mr.Intn(6)) * time.Hour)
		c := api.Conversation{
			ID:         fmt.Sprintf("conv-%04d", i+1),
			Title:      topics[mr.Intn(len(topics))],
			CreateTime: api.Unix(created.Unix()),
			UpdateTime: api.Unix(created.Add(time.Hour).Unix()),
		}
		if i%17 == 0 {
			c.Title = ""
		}
		buildThread(mr, &c, created, 2+mr.Intn(5))
		out = append(out, c)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

// buildThread adds a root node followed by n alternating user/assistant turns.
func buildThread(r *mrand.Rand, c *api.Conversation, start time.Time, n int) {
	parent := "root"
	c.Mapping.Add(parent, api.Node{ID: parent})
	for j := 0; j < n; j++ {
		id := fmt.Sprintf("%s-n%d", c.ID, j+1)
		role, text := "user", fmt.Sprintf("Question %d about %s?", j+1, c.DisplayTitle())
		if j%2 == 1 {
			role, text = "assistant", replies[r.Intn(len(replies))]
		}
		part, _ := json.Marshal(text)
		c.Mapping.Add(id, api.Node{
			ID:     id,
			Parent: parent,
			Message: &api.Message{
				ID:         "m-" + id,
				Author:     &api.Author{Role: role},
				Content:    api.Content{ContentType: "text", Parts: []json.RawMessage{part}},
				CreateTime: api.Unix(start.Add(time.Duration(j) * time.Minute).Unix()),
			},
		})
		prev, _ := c.Mapping.Get(parent)
		prev.Children = append(prev.Children, id)
		c.Mapping.Add(parent, prev)
		parent = id
	}
	c.CurrentNode = parent
}
