package analytics

import (
	"regexp"
	"sort"
	"unicode/utf8"

	"bookdash/pkg/contracts/domain"
)

// tokenPattern matches contiguous runs of Korean syllables, Latin letters and
// digits; everything else is a separator.
var tokenPattern = regexp.MustCompile(`[가-힣a-zA-Z0-9]+`)

// stopWords are boilerplate tokens from title/subtitle text that say nothing
// about the topic. Matching is exact, so case handling is not required.
var stopWords = map[string]struct{}{
	"부제": {}, "없음": {}, "Guide": {}, "가이드": {}, "완벽": {},
	"실전": {}, "입문": {}, "기초": {}, "활용": {}, "저자": {},
	"옮김": {}, "지음": {}, "코딩": {},
}

// WordFrequency tokenizes text and counts qualifying tokens. Tokens of one
// rune or less and stop words are discarded. An empty result means the input
// had no usable text, which the word-cloud view reports as a warning.
func WordFrequency(text string) map[string]int {
	freq := make(map[string]int)
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		freq[tok]++
	}
	return freq
}

// TopWords converts a frequency map to weights sorted by count descending,
// word ascending on ties, truncated to n entries (n <= 0 keeps all).
func TopWords(freq map[string]int, n int) []domain.WordWeight {
	out := make([]domain.WordWeight, 0, len(freq))
	for text, count := range freq {
		out = append(out, domain.WordWeight{Text: text, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
