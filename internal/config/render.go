package config

import (
	"fmt"
	"sort"
	"strings"
)

// section groups options under a TOML table; "" is the top level.
type section struct {
	name string
	opts []ConfigOption
}

// splitSections groups opts by the part of the key before the first dot,
// keeping first-seen order. Keys inside a section lose their prefix.
func splitSections(opts []ConfigOption) []section {
	var out []section
	idx := map[string]int{}
	for _, o := range opts {
		name, key := "", o.Key
		if i := strings.Index(o.Key, "."); i >= 0 {
			name, key = o.Key[:i], o.Key[i+1:]
		}
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, section{name: name})
		}
		out[i].opts = append(out[i].opts, ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	// Top-level keys must precede the first table header.
	for i, s := range out {
		if s.name == "" && i > 0 {
			out = append([]section{s}, append(out[:i:i], out[i+1:]...)...)
			break
		}
	}
	return out
}

func tomlValue(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []string:
		q := make([]string, len(x))
		for i, s := range x {
			q[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(q, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}

func writeSections(lines []string, sections []section) []string {
	for _, s := range sections {
		if s.name != "" {
			lines = append(lines, "["+s.name+"]")
		}
		for _, o := range s.opts {
			if o.Comment != "" {
				lines = append(lines, "# "+o.Comment)
			}
			lines = append(lines, fmt.Sprintf("%s = %s", o.Key, tomlValue(o.Default)), "")
		}
	}
	return lines
}

// RenderDefaultTOML renders a commented config.toml holding every default.
func RenderDefaultTOML() string {
	lines := []string{"# chatextract configuration (TOML)", ""}
	lines = writeSections(lines, splitSections(GetConfigOptions()))
	return strings.Join(lines, "\n")
}

// UpdateTOML merges missing options into an existing config and comments out
// keys that are no longer known. Missing keys go into their existing table
// when there is one. It reports whether anything changed.
func UpdateTOML(existing string) (string, bool) {
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	// tail[name] is the index just past the last line of table name.
	tail := make(map[string]int)
	firstHeader := -1
	current := ""
	changed := false
	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		switch {
		case trim == "" || strings.HasPrefix(trim, "#"):
			out = append(out, line)
			continue
		case strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]"):
			current = strings.TrimSpace(trim[1 : len(trim)-1])
			if firstHeader < 0 {
				firstHeader = len(out)
			}
			out = append(out, line)
			tail[current] = len(out)
			continue
		}
		key, ok := parseTOMLKey(trim)
		if !ok {
			out = append(out, line)
			continue
		}
		full := key
		if current != "" {
			full = current + "." + key
		}
		if !known[full] {
			out = append(out, "# OUTDATED: option removed from config schema", "# "+trim)
			changed = true
			continue
		}
		seen[full] = true
		out = append(out, line)
		tail[current] = len(out)
	}
	if firstHeader < 0 {
		firstHeader = len(out)
	}
	tail[""] = firstHeader

	var missing []ConfigOption
	for _, o := range GetConfigOptions() {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	var appended []section
	type insertion struct {
		at    int
		lines []string
	}
	var inserts []insertion
	for _, s := range splitSections(missing) {
		at, ok := tail[s.name]
		if !ok {
			appended = append(appended, s)
			continue
		}
		body := writeSections(nil, []section{{opts: s.opts}})
		inserts = append(inserts, insertion{at: at, lines: body})
	}
	// Insert from the bottom up so earlier indexes stay valid.
	sort.Slice(inserts, func(i, j int) bool { return inserts[i].at > inserts[j].at })
	for _, ins := range inserts {
		rest := append([]string(nil), out[ins.at:]...)
		out = append(append(out[:ins.at], ins.lines...), rest...)
	}
	if len(appended) > 0 {
		out = append(out, "", "# Added by config update")
		out = writeSections(out, appended)
	}
	return strings.Join(out, "\n"), true
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx <= 0 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.ContainsAny(key, `"'[`) {
		return "", false
	}
	return key, true
}
