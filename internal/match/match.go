// package match scores catalog search results against the entry that produced them.
//
// Real-world metadata rarely matches exactly: remaster tags, punctuation,
// capitalization and "feat." credits all shift the strings. Score therefore
// computes a normalized alignment ratio, and Evaluate gates a candidate on
// both its artist and title clearing a caller-supplied threshold.
package match

import (
	"unicode/utf8"

	edlib "github.com/hbollon/go-edlib"
)

// DefaultThreshold is the minimum similarity both fields must reach for a
// candidate to be accepted when no threshold is configured.
const DefaultThreshold = 0.95

// Decision records the outcome of gating one candidate.
type Decision struct {
	ArtistScore float64 `json:"artist_score"`
	TitleScore  float64 `json:"title_score"`
	Accepted    bool    `json:"accepted"`
}

// Score returns a normalized similarity between a and b in [0, 1].
//
// 1.0 means identical, 0.0 means disjoint. The ratio is 2*LCS/(|a|+|b|),
// a longest-common-subsequence alignment ratio, so reorderings and
// insertions degrade the score gradually rather than zeroing it.
func Score(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1.0
	}
	return 2 * float64(edlib.LCS(a, b)) / float64(total)
}

// Evaluate gates a candidate's artist and title against the wanted pair.
//
// A threshold of 0.0 disables scoring and accepts unconditionally. Otherwise
// both fields must score at or above the threshold; one failing gate rejects
// the candidate.
func Evaluate(candArtist, candTitle, wantArtist, wantTitle string, threshold float64) Decision {
	if threshold == 0.0 {
		return Decision{Accepted: true}
	}

	dec := Decision{
		ArtistScore: Score(candArtist, wantArtist),
		TitleScore:  Score(candTitle, wantTitle),
	}
	dec.Accepted = dec.ArtistScore >= threshold && dec.TitleScore >= threshold
	return dec
}
