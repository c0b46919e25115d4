package namematch

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// sharedTokenFloor is the minimum similarity granted when two names
// share a whitespace-delimited token. Reordered middle names would
// otherwise suppress the raw character ratio.
const sharedTokenFloor = 0.7

// Similarity scores how likely two raw name strings denote the same
// text, in [0, 1]. Identical normalized forms score 1; otherwise a
// length-normalized edit ratio over the normalized forms, floored at
// sharedTokenFloor when the forms have a token in common.
func Similarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	sim := levenshtein.RatioForStrings([]rune(na), []rune(nb), levenshtein.DefaultOptions)
	if sim < sharedTokenFloor && sharesToken(na, nb) {
		sim = sharedTokenFloor
	}
	return sim
}

func sharesToken(a, b string) bool {
	tokens := make(map[string]bool)
	for _, t := range strings.Fields(a) {
		tokens[t] = true
	}
	for _, t := range strings.Fields(b) {
		if tokens[t] {
			return true
		}
	}
	return false
}
