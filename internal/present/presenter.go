package present

import (
	"context"
	"io"

	"github.com/mithrel/chatextract/internal/present/format"
	"github.com/mithrel/chatextract/internal/transcript"
	"github.com/mithrel/chatextract/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeHTML
)

type Options struct {
	Mode         Mode
	JSONIndent   bool
	Headers      bool
	Strategy     transcript.Strategy
	Style        string
	WordWrap     int
	SampleTitles int
	TitleWidth   int
	HTMLTitle    string
}

// ParseMode parses "plain", "pretty", "json", "ndjson" or "html".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "html":
		return ModeHTML, true
	default:
		return ModePlain, false
	}
}

// RenderConversation renders one conversation's transcript.
func RenderConversation(ctx context.Context, w io.Writer, c api.Conversation, opts Options) error {
	if opts.Mode == ModeHTML {
		doc := format.NewHTMLDocument(format.HTMLOptions{Title: opts.HTMLTitle, Strategy: opts.Strategy})
		return doc.Write(w, []api.Conversation{c})
	}
	t := format.NewTranscript(c, opts.Strategy)
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONTranscript(w, t, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONTranscript(w, t)
	case ModePretty:
		return format.WritePrettyTranscript(w, t, format.PrettyOptions{Style: opts.Style, WordWrap: opts.WordWrap})
	default:
		return format.WritePlainTranscript(w, t)
	}
}

// RenderDates renders the per-day summary table.
func RenderDates(ctx context.Context, w io.Writer, rows []format.DateRow, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONDates(w, rows, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONDates(w, rows)
	default:
		// Pretty and html fall back to the plain table.
		return format.WritePlainDates(w, rows, opts.Headers, opts.SampleTitles, opts.TitleWidth)
	}
}
