package highlights

import (
	"strings"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

const (
	// Segments close on terminal punctuation or once they hold more than
	// maxSegmentWords words, whichever comes first.
	maxSegmentWords = 20

	// Small pad on both segment edges so boundary words are not clipped.
	segmentPadSec = 0.1
)

// BuildSegments partitions time-ordered words into sentence-like segments
// and resolves each segment's speaker from diarization. Empty input yields
// an empty list, not an error.
func BuildSegments(words []types.Word, diarization []types.DiarizationSpan) []types.Segment {
	if len(words) == 0 {
		return nil
	}

	var segments []types.Segment
	var current []types.Word
	currentStart := words[0].Start

	flush := func(end float64) {
		parts := make([]string, 0, len(current))
		for _, w := range current {
			parts = append(parts, w.Text)
		}
		segments = append(segments, types.Segment{
			Start:   max0(currentStart - segmentPadSec),
			End:     end + segmentPadSec,
			Text:    strings.Join(parts, " "),
			Speaker: speakerAt((currentStart+end)/2, diarization),
		})
	}

	for _, w := range words {
		current = append(current, w)
		if endsSentence(w.Text) || len(current) > maxSegmentWords {
			flush(w.End)
			current = current[:0]
			currentStart = w.End
		}
	}
	if len(current) > 0 {
		flush(current[len(current)-1].End)
	}

	return segments
}

func endsSentence(text string) bool {
	return strings.HasSuffix(text, ".") ||
		strings.HasSuffix(text, "!") ||
		strings.HasSuffix(text, "?")
}

// speakerAt resolves the diarization span containing t, or "" when no span
// matches (or no diarization is available).
func speakerAt(t float64, diarization []types.DiarizationSpan) string {
	for _, d := range diarization {
		if d.Start <= t && t <= d.End {
			return d.Speaker
		}
	}
	return ""
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
