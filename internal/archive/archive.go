// Package archive loads an export folder and selects conversations from it.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mithrel/chatextract/internal/util"
	"github.com/mithrel/chatextract/pkg/api"
)

const (
	ConversationsFile = "conversations.json"
	ChatHTMLFile      = "chat.html"
)

var ErrNotFound = errors.New("not found")

// Export is a loaded export folder.
type Export struct {
	Folder  string
	Name    string
	Records []api.Record
	// ChatHTML is the path of the provider's own chat.html, if present.
	ChatHTML    string
	HasChatHTML bool
}

// Load reads <folder>/conversations.json. A top-level value other than an
// array yields an empty export.
func Load(folder string) (*Export, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: data folder does not exist: %s", ErrNotFound, folder)
	}
	path := filepath.Join(folder, ConversationsFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: file not found: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	e := &Export{
		Folder:   folder,
		Name:     FolderName(folder),
		Records:  records,
		ChatHTML: filepath.Join(folder, ChatHTMLFile),
	}
	if st, err := os.Stat(e.ChatHTML); err == nil && !st.IsDir() {
		e.HasChatHTML = true
	}
	return e, nil
}

// Parse decodes an export document, keeping each element's source bytes.
func Parse(data []byte) ([]api.Record, error) {
	if !gjson.ValidBytes(data) {
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, err
		}
		return nil, errors.New("malformed document")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, nil
	}
	var (
		records []api.Record
		err     error
	)
	root.ForEach(func(_, v gjson.Result) bool {
		rec := api.Record{Raw: json.RawMessage(v.Raw)}
		if v.IsObject() {
			if err = json.Unmarshal(rec.Raw, &rec.Conversation); err != nil {
				err = fmt.Errorf("conversation %d: %w", len(records)+1, err)
				return false
			}
		}
		records = append(records, rec)
		return true
	})
	return records, err
}

// FolderName is the last path element of folder, resolved against the
// working directory so "." still names something.
func FolderName(folder string) string {
	if abs, err := filepath.Abs(folder); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(filepath.Clean(folder))
}

// OutputDir returns <base>/<export name>.
func (e *Export) OutputDir(base string) string {
	return filepath.Join(base, e.Name)
}

// CopyChatHTML copies the provider's chat.html to dst.
func (e *Export) CopyChatHTML(dst string) error {
	if !e.HasChatHTML {
		return fmt.Errorf("%w: %s", ErrNotFound, e.ChatHTML)
	}
	data, err := os.ReadFile(e.ChatHTML)
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(dst, data, 0o644)
}

// Criteria selects conversations. Empty fields match everything.
type Criteria struct {
	// Date is a local YYYY-MM-DD day compared against create_time.
	Date string
	// Keyword is a case-insensitive substring of the title.
	Keyword string
}

func (c Criteria) Match(conv api.Conversation) bool {
	if c.Date != "" && conv.CreateTime.Day() != c.Date {
		return false
	}
	if c.Keyword != "" && !strings.Contains(strings.ToLower(conv.Title), strings.ToLower(c.Keyword)) {
		return false
	}
	return true
}

// Filter returns the matching records in input order.
func Filter(records []api.Record, c Criteria) []api.Record {
	out := make([]api.Record, 0, len(records))
	for _, r := range records {
		if c.Match(r.Conversation) {
			out = append(out, r)
		}
	}
	return out
}

// DateGroup is the set of conversations created on one local day.
type DateGroup struct {
	Date    string
	Records []api.Record
}

// GroupByDate buckets records by creation day, oldest day first. Records
// without create_time are left out.
func GroupByDate(records []api.Record) []DateGroup {
	idx := make(map[string]int)
	var groups []DateGroup
	for _, r := range records {
		day := r.Conversation.CreateTime.Day()
		if day == "" {
			continue
		}
		i, ok := idx[day]
		if !ok {
			i = len(groups)
			idx[day] = i
			groups = append(groups, DateGroup{Date: day})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date < groups[j].Date })
	return groups
}

// Dates returns the distinct creation days, oldest first.
func Dates(records []api.Record) []string {
	groups := GroupByDate(records)
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Date)
	}
	return out
}

// Conversations unwraps the decoded view of records.
func Conversations(records []api.Record) []api.Conversation {
	out := make([]api.Conversation, 0, len(records))
	for _, r := range records {
		out = append(out, r.Conversation)
	}
	return out
}

// Find looks a conversation up by id or by 1-based position.
func Find(records []api.Record, ref string) (api.Record, bool) {
	for _, r := range records {
		if r.Conversation.Key() == ref {
			return r, true
		}
	}
	if n, ok := util.ParseIndex(ref); ok && n <= len(records) {
		return records[n-1], true
	}
	return api.Record{}, false
}
