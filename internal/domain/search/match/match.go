// Package match implements the approximate string scoring shared by every
// entity pipeline: normalized containment with an edit-distance fallback.
package match

import "strings"

// Normalize lowercases text and trims surrounding whitespace. Queries and
// candidate vectors both pass through here before comparison.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// Score rates how well candidate matches query, always within [0,1].
//
// Both sides are normalized first; if either comes out empty the score is 0.
// A candidate containing the query as a substring scores exactly 1.0 and
// skips the distance computation. Otherwise:
//
//	score = 1 - distance/max(len(candidate), len(query))
//
// where distance is the unit-cost edit distance between the normalized
// strings. Comparison is byte-wise; the platform corpus is ASCII
// identifiers and English titles.
func Score(candidate, query string) float64 {
	c := Normalize(candidate)
	q := Normalize(query)

	if c == "" || q == "" {
		return 0
	}
	if strings.Contains(c, q) {
		return 1.0
	}

	longest := max(len(c), len(q))
	score := 1.0 - float64(editDistance(c, q))/float64(longest)

	// Callers depend on the [0,1] bound.
	return min(1.0, max(0.0, score))
}

// editDistance is the classic Levenshtein distance with unit-cost
// insertions, deletions and substitutions, over the full DP table.
func editDistance(a, b string) int {
	m, n := len(a), len(b)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = 1 + min(dp[i-1][j], dp[i][j-1], dp[i-1][j-1])
		}
	}

	return dp[m][n]
}
