package match

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	t.Run("Identical Strings", func(t *testing.T) {
		for _, s := range []string{"Abbey Road", "OK Computer", "x", ""} {
			if got := Score(s, s); got != 1.0 {
				t.Errorf("Score(%q, %q) = %v, want 1.0", s, s, got)
			}
		}
	})

	t.Run("Range", func(t *testing.T) {
		pairs := [][2]string{
			{"Abbey Road", "xyz123"},
			{"Radiohead", "Radio head"},
			{"", "something"},
			{"The Beatles", "Beatles, The"},
		}
		for _, pair := range pairs {
			got := Score(pair[0], pair[1])
			if got < 0.0 || got > 1.0 {
				t.Errorf("Score(%q, %q) = %v, out of [0,1]", pair[0], pair[1], got)
			}
		}
	})

	t.Run("Empty Versus Non-Empty", func(t *testing.T) {
		if got := Score("", "something"); got != 0.0 {
			t.Errorf("Score(\"\", %q) = %v, want 0.0", "something", got)
		}
	})

	t.Run("Approximate Symmetry", func(t *testing.T) {
		a, b := "In Rainbows", "In Rainbows (Remastered)"
		forward := Score(a, b)
		backward := Score(b, a)
		if math.Abs(forward-backward) > 0.05 {
			t.Errorf("Score not approximately symmetric: %v vs %v", forward, backward)
		}
	})

	t.Run("Dissimilar Strings Score Low", func(t *testing.T) {
		if got := Score("Abbey Road", "xyz123"); got > 0.3 {
			t.Errorf("expected low score for dissimilar strings, got %v", got)
		}
	})

	t.Run("Near Match Scores High", func(t *testing.T) {
		if got := Score("Kid A", "Kid A"); got != 1.0 {
			t.Errorf("expected 1.0, got %v", got)
		}
		if got := Score("OK Computer", "OK Computer "); got < 0.9 {
			t.Errorf("expected near-identical strings to score high, got %v", got)
		}
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("Zero Threshold Accepts Unconditionally", func(t *testing.T) {
		dec := Evaluate("Completely Different", "Nothing Alike", "Radiohead", "Kid A", 0.0)
		if !dec.Accepted {
			t.Error("expected unconditional acceptance at threshold 0.0")
		}
	})

	t.Run("Both Gates Must Pass", func(t *testing.T) {
		// Artist identical, title far off: one failing gate rejects.
		dec := Evaluate("Radiohead", "totally wrong record", "Radiohead", "Kid A", 0.95)
		if dec.Accepted {
			t.Errorf("expected rejection when title gate fails, scores %v/%v", dec.ArtistScore, dec.TitleScore)
		}
		if dec.ArtistScore != 1.0 {
			t.Errorf("expected artist score 1.0, got %v", dec.ArtistScore)
		}
	})

	t.Run("Exact Match Accepted", func(t *testing.T) {
		dec := Evaluate("Radiohead", "Kid A", "Radiohead", "Kid A", 0.95)
		if !dec.Accepted {
			t.Errorf("expected acceptance for exact match, scores %v/%v", dec.ArtistScore, dec.TitleScore)
		}
	})

	t.Run("Threshold Boundary", func(t *testing.T) {
		// Scores exactly at the threshold pass (gate is >=).
		dec := Evaluate("Radiohead", "Kid A", "Radiohead", "Kid A", 1.0)
		if !dec.Accepted {
			t.Error("expected acceptance when scores equal the threshold")
		}
	})
}
