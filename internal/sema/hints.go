package sema

import (
	"golang.org/x/text/unicode/norm"

	"github.com/alir-lang/alirc/internal/types"
)

// alirKeywords is the keyword set "did you mean" hints check an unknown
// identifier against, alongside every name visible in the current scope
// chain.
var alirKeywords = []string{
	"let", "mut", "if", "else", "while", "once", "loop", "for", "in",
	"switch", "case", "default", "leak", "break", "continue", "return",
	"class", "enum", "namespace", "flux", "emit", "new", "this", "trait",
}

// didYouMean normalizes name and every candidate with Unicode NFC, so
// "café" spelled in NFC vs NFD form compares equal, before running bounded
// Levenshtein distance: threshold 1 for names of length <= 3, else 2.
func didYouMean(name string, candidates []string) (string, bool) {
	threshold := 2
	if len([]rune(name)) <= 3 {
		threshold = 1
	}
	normName := nfc(name)

	best := ""
	bestDist := threshold + 1
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein(normName, nfc(c))
		if d <= threshold && d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

func nfc(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// levenshtein computes classic edit distance between two strings (rune-wise).
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
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// visibleNames collects every symbol name visible from scope (its own
// chain) plus the keyword set, for did-you-mean suggestions.
func visibleNames(scope *types.Scope) []string {
	var names []string
	for cur := scope; cur != nil; cur = cur.Parent {
		names = append(names, cur.Names()...)
	}
	names = append(names, alirKeywords...)
	return names
}
