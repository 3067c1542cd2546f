package errors

import (
	"fmt"
	"strings"
)

// SuggestKeyword suggests a keyword when token looks like a misspelling of
// one of the candidates. Candidates may be quoted ('accept'); comparison is
// case-insensitive. It returns "" when nothing is close enough.
func SuggestKeyword(token string, candidates []string) string {
	token = strings.ToLower(token)
	if len(token) < 3 || len(candidates) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, c := range candidates {
		kw := strings.ToLower(strings.Trim(c, "'"))
		if kw == token {
			return ""
		}
		dist := levenshteinDistance(token, kw)
		if dist < minDistance {
			minDistance = dist
			bestMatch = kw
		}
	}

	// Keywords are short; more than two edits is a different word.
	if minDistance <= 2 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// SuggestForKind returns a generic hint for an error kind.
func SuggestForKind(kind ErrorKind) string {
	switch kind {
	case KindPrematureKeyword:
		return "Add an AS expression after 'from', e.g. 'from AS65000 accept ANY'"
	case KindUnterminatedBlock:
		return "Separate import factors with ';' and close the list with '}'"
	case KindEmptyAfiList:
		return "List at least one address family after 'afi', e.g. 'afi ipv6.unicast'"
	case KindTrailingInput:
		return "Terminate the filter with ';' before 'except' or 'refine', or remove the extra text"
	case KindNestingTooDeep:
		return "Split the policy into fewer except/refine operators"
	default:
		return ""
	}
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
