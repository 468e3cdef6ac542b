package format

import (
	"encoding/json"
	"io"
)

// WriteNDJSONTranscript writes one message per line.
func WriteNDJSONTranscript(w io.Writer, t Transcript) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, m := range t.Messages {
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

// WriteNDJSONDates writes one date row per line.
func WriteNDJSONDates(w io.Writer, rows []DateRow) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
