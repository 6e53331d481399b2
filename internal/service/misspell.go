package service

import "strings"

// The transformation passes stop collecting once these many candidates
// exist, mirroring the tuning of the original distractor generator.
const (
	misspellSwapCap   = 5
	misspellVowelCap  = 8
	misspellDoubleCap = 12
)

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func isLowerLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// Misspellings generates plausible wrong spellings of a word by swapping
// adjacent letter pairs, deleting vowels and doubling consonants, in that
// order. Candidates are deduplicated, never empty and never equal to the
// lowercased word itself. The order is deterministic.
func Misspellings(word string) []string {
	lower := strings.ToLower(word)
	seen := map[string]bool{lower: true, "": true}
	var outs []string

	add := func(candidate string) {
		if !seen[candidate] {
			seen[candidate] = true
			outs = append(outs, candidate)
		}
	}

	// swap neighbors
	for i := 0; i+1 < len(lower) && len(outs) < misspellSwapCap; i++ {
		add(lower[:i] + string(lower[i+1]) + string(lower[i]) + lower[i+2:])
	}
	// drop a vowel
	for i := 0; i < len(lower) && len(outs) < misspellVowelCap; i++ {
		if isVowel(lower[i]) {
			add(lower[:i] + lower[i+1:])
		}
	}
	// double a consonant
	for i := 0; i < len(lower) && len(outs) < misspellDoubleCap; i++ {
		c := lower[i]
		if !isVowel(c) && isLowerLetter(c) {
			add(lower[:i+1] + string(c) + lower[i+1:])
		}
	}

	return outs
}

// SpellingDistractors returns exactly n distinct distractors for a word,
// preferring the earliest Misspellings candidates. Very short words may
// not yield enough transformed candidates; the deterministic fallback
// pads with doubled-letter and case-flipped variants.
func SpellingDistractors(word string, n int) []string {
	lower := strings.ToLower(word)
	outs := Misspellings(word)
	if len(outs) >= n {
		return outs[:n]
	}

	seen := map[string]bool{lower: true, "": true}
	for _, o := range outs {
		seen[o] = true
	}
	add := func(candidate string) {
		if len(outs) < n && !seen[candidate] {
			seen[candidate] = true
			outs = append(outs, candidate)
		}
	}

	// double any letter, vowels included
	for i := 0; i < len(lower) && len(outs) < n; i++ {
		add(lower[:i+1] + string(lower[i]) + lower[i+1:])
	}
	// case-flipped variants of the word and the candidates so far
	pool := append([]string{lower}, outs...)
	for _, c := range pool {
		if len(outs) >= n {
			break
		}
		if c == "" {
			continue
		}
		add(strings.ToUpper(c[:1]) + c[1:])
		add(strings.ToUpper(c))
	}

	return outs
}
