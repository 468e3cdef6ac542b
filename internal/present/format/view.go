package format

import (
	"github.com/mithrel/chatextract/internal/transcript"
	"github.com/mithrel/chatextract/pkg/api"
)

// Transcript is the display view of one conversation.
type Transcript struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	CreateTime api.Unix              `json:"create_time"`
	Messages   []api.RenderedMessage `json:"messages"`
}

func NewTranscript(c api.Conversation, s transcript.Strategy) Transcript {
	return Transcript{
		ID:         c.Key(),
		Title:      c.DisplayTitle(),
		CreateTime: c.CreateTime,
		Messages:   transcript.Extract(c, s),
	}
}

// DateRow summarizes the conversations of one day.
type DateRow struct {
	Date   string   `json:"date"`
	Count  int      `json:"count"`
	Titles []string `json:"titles"`
}
