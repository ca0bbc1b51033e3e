package subtitles

import (
	"strings"
	"testing"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

func TestRenderClipASS_Karaoke(t *testing.T) {
	words := []types.Word{
		{Text: "Hello", Start: 10.0, End: 10.5},
		{Text: "world", Start: 10.5, End: 11.0},
		{Text: "outside", Start: 30.0, End: 30.5}, // beyond the clip window
	}
	got := RenderClipASS(words, "fallback", 10, 12)

	if !strings.Contains(got, "[Script Info]") || !strings.Contains(got, "[Events]") {
		t.Fatalf("missing ASS sections:\n%s", got)
	}
	if !strings.Contains(got, "{\\k50}Hello") {
		t.Fatalf("expected 50cs karaoke tag for Hello:\n%s", got)
	}
	if !strings.Contains(got, "{\\k50}world") {
		t.Fatalf("expected 50cs karaoke tag for world:\n%s", got)
	}
	if strings.Contains(got, "outside") {
		t.Fatalf("word outside the window leaked in:\n%s", got)
	}
	// Event times are clip-local.
	if !strings.Contains(got, "Dialogue: 0,0:00:00.00,0:00:01.00,Clip") {
		t.Fatalf("expected clip-local event timing:\n%s", got)
	}
}

func TestRenderClipASS_PlainFallback(t *testing.T) {
	got := RenderClipASS(nil, "Just the text", 0, 5)
	if !strings.Contains(got, "Just the text") {
		t.Fatalf("fallback text missing:\n%s", got)
	}
	if strings.Contains(got, "{\\k") {
		t.Fatalf("plain fallback must not contain karaoke tags:\n%s", got)
	}
	if !strings.Contains(got, "Dialogue: 0,0:00:00.00,0:00:05.00,Clip") {
		t.Fatalf("expected full-window plain event:\n%s", got)
	}
}

func TestRenderClipASS_SanitizesBraces(t *testing.T) {
	words := []types.Word{{Text: "{evil\\tag}", Start: 0, End: 1}}
	got := RenderClipASS(words, "", 0, 2)
	if strings.Contains(got, "{evil") {
		t.Fatalf("unsanitized braces:\n%s", got)
	}
	if !strings.Contains(got, "(evil\\\\tag)") {
		t.Fatalf("expected escaped text:\n%s", got)
	}
}

func TestPackWords_Budgets(t *testing.T) {
	var words []wword
	for i := 0; i < 20; i++ {
		start := float64(i)
		words = append(words, wword{Start: start, End: start + 1, Text: "word"})
	}
	lines := packWords(words)
	if len(lines) < 2 {
		t.Fatalf("expected word budget to split lines, got %d", len(lines))
	}
	for _, ln := range lines {
		if len(ln.Words) > 9 {
			t.Fatalf("line exceeds word budget: %d", len(ln.Words))
		}
	}
}

func TestAssTime(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "0:00:00.00"},
		{1.5, "0:00:01.50"},
		{61.25, "0:01:01.25"},
		{3661.999, "1:01:02.00"},
		{-5, "0:00:00.00"},
	}
	for _, tt := range tests {
		if got := assTime(tt.sec); got != tt.want {
			t.Fatalf("assTime(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
