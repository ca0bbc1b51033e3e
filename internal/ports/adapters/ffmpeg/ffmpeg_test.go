package ffmpeg

import (
	"context"
	"testing"
)

func TestEscapeFilterPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/subs.ass", "/tmp/subs.ass"},
		{`C:\clips\subs.ass`, `C\:\\clips\\subs.ass`},
		{"a:b", `a\:b`},
	}
	for _, tt := range tests {
		if got := escapeFilterPath(tt.in); got != tt.want {
			t.Fatalf("escapeFilterPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConcatClips_NoInputs(t *testing.T) {
	a := New("", "")
	if err := a.ConcatClips(context.Background(), nil, "out.mp4"); err == nil {
		t.Fatal("expected error for empty input list")
	}
}
