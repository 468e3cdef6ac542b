package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/chatextract/internal/render"
)

// PrettyOptions tunes the terminal renderer.
type PrettyOptions struct {
	Style    string
	WordWrap int
}

// TranscriptMarkdown lays a transcript out as one Markdown document.
func TranscriptMarkdown(t Transcript) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n> **ID:** %s | **Created:** %s | **Messages:** %d\n\n",
		t.Title, t.ID, t.CreateTime.Stamp("Unknown"), len(t.Messages))
	for _, m := range t.Messages {
		b.WriteString("---\n\n")
		fmt.Fprintf(&b, "### %s", strings.ToUpper(m.Role))
		if !m.CreateTime.IsZero() {
			fmt.Fprintf(&b, " · %s", m.CreateTime.Stamp(""))
		}
		b.WriteString("\n\n")
		b.WriteString(render.Markdown(m.Content))
		b.WriteString("\n\n")
	}
	return b.String()
}

// WritePrettyTranscript renders a transcript with glamour.
func WritePrettyTranscript(w io.Writer, t Transcript, opts PrettyOptions) error {
	style := opts.Style
	if style == "" {
		style = "dracula"
	}
	wrap := opts.WordWrap
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(TranscriptMarkdown(t))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
