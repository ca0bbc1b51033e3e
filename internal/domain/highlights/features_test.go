package highlights

import (
	"testing"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

func TestScoreHook_Table(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"howto", "How to build amazing products.", true},
		{"secret-percentage", "The secret is we grew 40% faster.", true},
		{"plain", "And then we went to the store.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreHook(tt.text)
			if tt.want && got <= 0.5 {
				t.Fatalf("expected hook>0.5, got %v", got)
			}
			if !tt.want && got != 0 {
				t.Fatalf("expected hook==0, got %v", got)
			}
		})
	}
}

func TestScoreClarity_FillersLower(t *testing.T) {
	clean := scoreClarity("Build products that users love")
	filled := scoreClarity("Um, like, you know, build products that, like, users love")
	if clean <= filled {
		t.Fatalf("expected clean %v > filled %v", clean, filled)
	}
}

func TestScoreNovelty(t *testing.T) {
	if got := scoreNovelty("anything", nil); got != 0.5 {
		t.Fatalf("expected 0.5 on empty corpus, got %v", got)
	}

	all := []types.Segment{
		{Text: "the cat sat on the mat"},
		{Text: "quantum photosynthesis breakthrough"},
	}
	narrow := scoreNovelty("the cat", all)
	wide := scoreNovelty("the cat sat on the mat", all)
	if wide <= narrow {
		t.Fatalf("expected wide vocabulary %v > narrow %v", wide, narrow)
	}
}

func TestExtractFeatures_Bounds(t *testing.T) {
	texts := []string{
		"",
		"How to win! Why does this work? The secret is 42% better.",
		"Um, like, you know, stuff happened.",
		"First, measure. Second, iterate. It was amazing and shocking.",
	}
	all := []types.Segment{{Text: "baseline words for the corpus"}}
	for _, txt := range texts {
		f := ExtractFeatures(types.Segment{Text: txt, Speaker: "Speaker 1"}, all)
		for _, key := range []string{
			FeatureHook, FeatureNovelty, FeatureStructure,
			FeatureEmotion, FeatureClarity, FeatureQuote, FeatureVisionFocus,
		} {
			v, ok := f[key]
			if !ok {
				t.Fatalf("missing feature %q for %q", key, txt)
			}
			if v < 0 || v > 1 {
				t.Fatalf("feature %q out of [0,1]: %v (text %q)", key, v, txt)
			}
		}
	}
}

func TestCombineScore_Capped(t *testing.T) {
	f := types.Features{FeatureHook: 10}
	if got := CombineScore(f); got != 1.0 {
		t.Fatalf("expected cap at 1.0, got %v", got)
	}
	if got := CombineScore(types.Features{}); got != 0 {
		t.Fatalf("expected 0 for empty features, got %v", got)
	}
}

func TestBuildReason(t *testing.T) {
	tests := []struct {
		name string
		f    types.Features
		want string
	}{
		{"hook", types.Features{FeatureHook: 0.6}, "Strong hook"},
		{"fallback", types.Features{}, "High engagement"},
		{"combined", types.Features{FeatureHook: 0.6, FeatureEmotion: 0.7}, "Strong hook • Emotional"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildReason(tt.f); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
