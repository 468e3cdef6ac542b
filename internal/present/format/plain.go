package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/chatextract/internal/render"
	"github.com/mithrel/chatextract/internal/util"
)

var headerLine = "Date\tCount\tSample Titles\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", " ")
	field = strings.ReplaceAll(field, "\n", " ")
	return field
}

// SampleTitles joins up to n titles, each cut to width runes, and appends
// "..." when titles were left out.
func SampleTitles(titles []string, n, width int) string {
	if n < 0 {
		n = 0
	}
	shown := titles
	if len(shown) > n {
		shown = shown[:n]
	}
	parts := make([]string, 0, len(shown))
	for _, t := range shown {
		parts = append(parts, util.Truncate(esc(t), width))
	}
	out := strings.Join(parts, ", ")
	if len(titles) > n {
		out += "..."
	}
	return out
}

// WritePlainDates writes the date table. sample and width bound the titles
// column.
func WritePlainDates(w io.Writer, rows []DateRow, headers bool, sample, width int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, r := range rows {
		line := fmt.Sprintf("%s\t%d\t%s\n", r.Date, r.Count, SampleTitles(r.Titles, sample, width))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// FormatTranscript returns a human-readable transcript.
func FormatTranscript(t Transcript) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\nCreated: %s\nTitle: %s\nMessages: %d\n---\n",
		t.ID, t.CreateTime.Stamp("Unknown"), t.Title, len(t.Messages))
	for i, m := range t.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n%s\n", strings.ToUpper(m.Role), m.CreateTime.Stamp("-"), render.Markdown(m.Content))
	}
	return b.String()
}

func WritePlainTranscript(w io.Writer, t Transcript) error {
	_, err := io.WriteString(w, FormatTranscript(t))
	return err
}
