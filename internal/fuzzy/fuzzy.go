// Package fuzzy implements the nearest-name matcher behind every
// "did you mean" suggestion in drift findings. Identifiers are compared as
// bags of camelCase words with an edit-distance tiebreaker; the trailing
// word gets extra weight because API names usually disambiguate by suffix
// (getUserById vs getPostById).
package fuzzy

import (
	"math"
	"strings"
	"unicode"
)

// ClosestMatch is the result of fuzzy matching. Distance is a relative
// score (lower is better), not a true edit distance.
type ClosestMatch struct {
	Value    string
	Distance int
}

const scoreThreshold = 0.5

// FindClosestMatch returns the candidate most similar to source, or nil
// when no candidate clears the similarity threshold. The source itself is
// never suggested.
func FindClosestMatch(source string, candidates []string) *ClosestMatch {
	sourceWords := splitWords(source)
	if len(sourceWords) == 0 {
		return nil
	}

	best := ""
	bestScore := 0.0

	for _, candidate := range candidates {
		if candidate == source {
			continue
		}
		candidateWords := splitWords(candidate)
		if len(candidateWords) == 0 {
			continue
		}

		suffixMatch := sourceWords[len(sourceWords)-1] == candidateWords[len(candidateWords)-1]

		matchingWords := 0.0
		if suffixMatch {
			matchingWords = 1.5
		}
		matchingWords += float64(sharedWords(sourceWords, candidateWords, suffixMatch))

		// Pure suffix overlap alone is not sufficient signal.
		if matchingWords < 2 {
			continue
		}

		wordScore := matchingWords / float64(max(len(sourceWords), len(candidateWords)))

		dist := levenshtein(strings.ToLower(source), strings.ToLower(candidate))
		levScore := 1 - float64(dist)/float64(max(len(source), len(candidate)))

		var totalScore float64
		if suffixMatch {
			totalScore = wordScore*1.5 + levScore
		} else {
			totalScore = wordScore + levScore*0.5
		}

		if totalScore > bestScore {
			bestScore = totalScore
			best = candidate
		}
	}

	if best == "" || bestScore < scoreThreshold {
		return nil
	}

	return &ClosestMatch{
		Value:    best,
		Distance: int(math.Round((1 - bestScore) * 10)),
	}
}

// sharedWords counts words present in both identifiers, excluding the
// shared suffix word when it already contributed its own weight.
func sharedWords(source, candidate []string, excludeSuffix bool) int {
	suffix := source[len(source)-1]

	candidateSet := make(map[string]struct{}, len(candidate))
	for _, w := range candidate {
		candidateSet[w] = struct{}{}
	}

	seen := make(map[string]struct{}, len(source))
	count := 0
	for _, w := range source {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if excludeSuffix && w == suffix {
			continue
		}
		if _, ok := candidateSet[w]; ok {
			count++
		}
	}
	return count
}

// splitWords breaks an identifier into lowercase words at camelCase and
// PascalCase boundaries: before an uppercase letter following a lowercase
// letter, and before a capitalized word following an uppercase run
// (HTTPServer -> http, server). Separators like "_" and "." also split.
func splitWords(s string) []string {
	var words []string
	var current strings.Builder

	runes := []rune(s)
	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current.WriteRune(r)
	}
	flush()

	return words
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming form.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
