package namematch

// Candidate is one professor in the catalog the matcher scans. Fields
// may be empty; candidates without both names are never matched.
type Candidate struct {
	First string
	Last  string
}

// Rule records which rule produced a match.
type Rule int

const (
	RuleNone Rule = iota
	RuleExact
	RuleNickname
	RuleFuzzy
)

func (r Rule) String() string {
	switch r {
	case RuleExact:
		return "exact"
	case RuleNickname:
		return "nickname"
	case RuleFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Match is the outcome of a catalog scan. Index is -1 when no candidate
// qualified.
type Match struct {
	Index      int
	Confidence float64
	Rule       Rule
}

// Matched reports whether a candidate was selected.
func (m Match) Matched() bool { return m.Index >= 0 }

const (
	firstNameWeight = 0.4
	lastNameWeight  = 0.6

	// AcceptThreshold is the minimum combined similarity for a fuzzy
	// match to be recorded at all.
	AcceptThreshold = 0.75

	// strongSimilarity / strongPairFloor: when first and last name each
	// clear strongSimilarity, the pair is trusted and the combined score
	// is raised to at least strongPairFloor.
	strongSimilarity = 0.7
	strongPairFloor  = 0.85
)

// BestMatch selects at most one candidate for a raw instructor name.
//
// The scan runs in three passes over the candidates, each pass in
// catalog order so ties break toward the earliest-listed candidate:
// exact normalized first+last equality, then nickname-equivalent first
// with exact last, then weighted fuzzy scoring. An exact match anywhere
// in the catalog beats a nickname match earlier in it. Pure function;
// callers cache per raw string.
func BestMatch(raw string, candidates []Candidate) Match {
	parsed := ParseName(raw)
	if parsed.First == "" || parsed.Last == "" {
		return Match{Index: -1}
	}

	type normCandidate struct {
		first string
		last  string
	}
	norm := make([]normCandidate, len(candidates))
	for i, c := range candidates {
		norm[i] = normCandidate{first: Normalize(c.First), last: Normalize(c.Last)}
	}

	for i, c := range norm {
		if c.first == "" || c.last == "" {
			continue
		}
		if c.first == parsed.First && c.last == parsed.Last {
			return Match{Index: i, Confidence: 1, Rule: RuleExact}
		}
	}

	variants := make(map[string]bool)
	for _, v := range Expand(parsed.First) {
		variants[v] = true
	}
	for i, c := range norm {
		if c.first == "" || c.last == "" || c.last != parsed.Last {
			continue
		}
		for _, v := range Expand(c.first) {
			if variants[v] {
				return Match{Index: i, Confidence: 1, Rule: RuleNickname}
			}
		}
	}

	best := Match{Index: -1}
	for i, c := range norm {
		if c.first == "" || c.last == "" {
			continue
		}
		firstSim := Similarity(parsed.First, c.first)
		lastSim := Similarity(parsed.Last, c.last)
		combined := firstNameWeight*firstSim + lastNameWeight*lastSim
		if firstSim > strongSimilarity && lastSim > strongSimilarity && combined < strongPairFloor {
			combined = strongPairFloor
		}
		if combined >= AcceptThreshold && combined > best.Confidence {
			best = Match{Index: i, Confidence: combined, Rule: RuleFuzzy}
		}
	}
	return best
}
