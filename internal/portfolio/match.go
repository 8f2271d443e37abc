package portfolio

import (
	"sort"
	"strings"
	"unicode"
)

// Rank orders items by how many skill tokens their techstack shares and
// returns up to limit links. Items sharing nothing are left out; ties keep
// catalog order.
func Rank(items []Item, skills []string, limit int) []string {
	wanted := make(map[string]bool)
	for _, s := range skills {
		for _, tok := range tokenize(s) {
			wanted[tok] = true
		}
	}
	if len(wanted) == 0 || limit <= 0 {
		return nil
	}

	type scored struct {
		link  string
		score int
	}
	var ranked []scored
	for _, it := range items {
		score := 0
		seen := make(map[string]bool)
		for _, tok := range tokenize(it.Techstack) {
			if wanted[tok] && !seen[tok] {
				seen[tok] = true
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{link: it.Link, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked {
		if len(out) == limit {
			break
		}
		out = append(out, r.link)
	}
	return out
}

// tokenize lowercases s and splits it into words, keeping symbols that are
// part of technology names (c++, c#, node.js).
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '.'
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
