package highlights

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

// makeTranscript lays sentences out back to back, 0.5s per word.
func makeTranscript(sentences []string) []types.Word {
	var words []types.Word
	t := 0.0
	for _, s := range sentences {
		for _, w := range strings.Fields(s) {
			words = append(words, types.Word{Text: w, Start: t, End: t + 0.5})
			t += 0.5
		}
	}
	return words
}

func rankFixture() []types.Word {
	sentences := make([]string, 60)
	for i := range sentences {
		sentences[i] = "We discussed the quarterly planning details."
	}
	// High-value moments spread far enough apart to seed separate clips.
	sentences[2] = "Here is why this amazing secret."
	sentences[25] = "The proven science behind incredible results."
	sentences[50] = "Studies show the best shocking outcome."
	return makeTranscript(sentences)
}

func TestRank_EmptyInput(t *testing.T) {
	if got := Rank(nil, nil, 5, Options{}); got != nil {
		t.Fatalf("expected nil for no words, got %v", got)
	}
	if got := Rank(rankFixture(), nil, 0, Options{}); got != nil {
		t.Fatalf("expected nil for zero clips, got %v", got)
	}
}

func TestRank_Properties(t *testing.T) {
	words := rankFixture()
	clips := Rank(words, nil, 3, Options{})

	if len(clips) != 3 {
		t.Fatalf("expected 3 clips, got %d", len(clips))
	}
	for i, c := range clips {
		if c.Duration < 20 || c.Duration > 90 {
			t.Fatalf("clip %d duration %v outside [20,90]", i, c.Duration)
		}
		if c.Duration != c.End-c.Start {
			t.Fatalf("clip %d duration mismatch", i)
		}
		if c.Text == "" {
			t.Fatalf("clip %d has empty text", i)
		}
		if c.Reason == "" {
			t.Fatalf("clip %d has empty reason", i)
		}
		if len(c.Segments) == 0 {
			t.Fatalf("clip %d has no provenance segments", i)
		}
	}

	// Sorted by score descending.
	for i := 0; i+1 < len(clips); i++ {
		if clips[i].Score < clips[i+1].Score {
			t.Fatalf("clips not sorted by score: %v then %v", clips[i].Score, clips[i+1].Score)
		}
	}

	// Returned clips never overlap each other.
	for i := range clips {
		for j := i + 1; j < len(clips); j++ {
			if clips[i].Start < clips[j].End && clips[i].End > clips[j].Start {
				t.Fatalf("clips %d and %d overlap", i, j)
			}
		}
	}
}

func TestRank_Deterministic(t *testing.T) {
	words := rankFixture()
	a := Rank(words, nil, 3, Options{})
	b := Rank(words, nil, 3, Options{})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("ranking is not deterministic")
	}
}

func TestRank_RespectsNumClips(t *testing.T) {
	words := rankFixture()
	clips := Rank(words, nil, 1, Options{})
	if len(clips) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(clips))
	}
}

func TestSelectSeeds_MinGap(t *testing.T) {
	scored := []scoredSegment{
		{seg: types.Segment{Start: 0, End: 3}, score: 0.9},
		{seg: types.Segment{Start: 10, End: 13}, score: 0.8}, // within 30s of the first
		{seg: types.Segment{Start: 50, End: 53}, score: 0.7},
	}
	seeds := selectSeeds(scored, 3)
	if len(seeds) != 2 {
		t.Fatalf("expected 2 seeds, got %d", len(seeds))
	}
	if seeds[0].seg.Start != 0 || seeds[1].seg.Start != 50 {
		t.Fatalf("unexpected seeds: %v", seeds)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 100); got != "short" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("x", 150)
	if got := truncateText(long, 100); len([]rune(got)) != 100 {
		t.Fatalf("expected 100 runes, got %d", len([]rune(got)))
	}
}
