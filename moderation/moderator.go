// Package moderation censors blacklisted terms in project messages before
// they are propagated to subscribers and persisted to the activity journal.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator masks blacklisted patterns with a replacement rune. Matching is
// case-insensitive, skips punctuation and spacing, and folds common leet
// substitutions, so "s c 4 m" still matches "scam". Original spacing is
// preserved in the output.
type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
}

// mapping links the normalized search text back to rune positions in the
// original string so only the matched characters get masked.
type mapping struct {
	normalized []rune
	origIdx    []int
}

func NewModerator(blacklist []string, replacement rune) (Moderator, error) {
	patterns := make([][]rune, len(blacklist))
	for i, word := range blacklist {
		patterns[i] = foldRunes([]rune(word))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Moderator{}, err
	}
	return Moderator{matcher: m, replacement: replacement}, nil
}

// Censor returns the input with every blacklisted span masked.
func (m *Moderator) Censor(body string) string {
	idx := m.fold(body)
	if len(idx.normalized) == 0 {
		return body
	}

	runes := []rune(body)
	spans := m.matcher.MultiPatternSearch(idx.normalized, false)
	if len(spans) == 0 {
		return body
	}

	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(idx.origIdx) {
			continue
		}
		for i := idx.origIdx[start]; i <= idx.origIdx[end-1]; i++ {
			runes[i] = m.replacement
		}
	}
	return string(runes)
}

func (m *Moderator) fold(input string) mapping {
	orig := []rune(input)
	out := mapping{
		normalized: make([]rune, 0, len(orig)),
		origIdx:    make([]int, 0, len(orig)),
	}
	for i, r := range orig {
		folded := foldRune(r)
		if isNoise(folded) {
			continue
		}
		out.normalized = append(out.normalized, unicode.ToLower(folded))
		out.origIdx = append(out.origIdx, i)
	}
	return out
}

func foldRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		folded := foldRune(r)
		if isNoise(folded) {
			continue
		}
		out = append(out, unicode.ToLower(folded))
	}
	return out
}

// foldRune maps common leet substitutions back to the plain alphabet.
func foldRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
