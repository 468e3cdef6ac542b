package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/mithrel/chatextract/pkg/api"
)

// EncodeRecords renders records as a 2-space indented JSON array. Source
// bytes are reused, so key order and number spelling survive as written.
// String tokens carrying \u escapes are rewritten with literal characters;
// only the escapes JSON requires are kept.
func EncodeRecords(records []api.Record) ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		raw, err := unescapeStrings(r.Raw)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return encodeIndented(raws)
}

// WriteJSONRecord writes one record's source object, indented.
func WriteJSONRecord(w io.Writer, r api.Record) error {
	raw, err := unescapeStrings(r.Raw)
	if err != nil {
		return err
	}
	b, err := encodeIndented(raw)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unescapeStrings copies raw, re-encoding every string token that holds a
// \u escape so the character itself is written.
func unescapeStrings(raw json.RawMessage) (json.RawMessage, error) {
	if !bytes.Contains(raw, []byte(`\u`)) {
		return raw, nil
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); {
		if raw[i] != '"' {
			out = append(out, raw[i])
			i++
			continue
		}
		j, escaped := i+1, false
		for j < len(raw) && raw[j] != '"' {
			if raw[j] == '\\' {
				escaped = true
				j++
			}
			j++
		}
		if j >= len(raw) {
			return nil, fmt.Errorf("unterminated string at offset %d", i)
		}
		tok := raw[i : j+1]
		if escaped && bytes.Contains(tok, []byte(`\u`)) {
			lit, err := encodeString(gjson.ParseBytes(tok).String())
			if err != nil {
				return nil, err
			}
			tok = lit
		}
		out = append(out, tok...)
		i = j + 1
	}
	return out, nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func WriteJSONTranscript(w io.Writer, t Transcript, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(t)
}

func WriteJSONDates(w io.Writer, rows []DateRow, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if rows == nil {
		rows = []DateRow{}
	}
	return enc.Encode(rows)
}
