package util

import "github.com/sahilm/fuzzy"

// ScoreCompletions returns up to n distinct candidates fuzzy-matching input,
// best first. An empty input keeps candidate order. n <= 0 means no limit.
func ScoreCompletions(input string, candidates []string, n int) []string {
	uniq := dedupe(candidates)
	var out []string
	if input == "" {
		out = uniq
	} else {
		for _, m := range fuzzy.Find(input, uniq) {
			out = append(out, m.Str)
		}
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
