// Package boundary refines a clip's start and end against detected audio
// silences and transcript punctuation so cuts land on natural pauses
// instead of mid-word or mid-sentence.
package boundary

import (
	"context"
	"math"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

// Silence is one detected silent interval in the source media.
type Silence struct {
	Start float64
	End   float64
}

// SilenceDetector runs energy-based silence detection over a window of the
// source media. The ffmpeg adapter implements this.
type SilenceDetector interface {
	DetectSilences(ctx context.Context, mediaPath string, start, end, noiseDB, minDuration float64) ([]Silence, error)
}

const (
	preRollSec  = 0.7
	postRollSec = 0.7

	// Search window around the first/last word for a better edge.
	searchWindowSec = 1.0

	// Words outside the clip window by more than this are not considered
	// part of the clip at all.
	wordSlackSec = 2.0

	silenceNoiseDB     = -40.0
	silenceMinDuration = 0.3

	// Silence detection shells out to ffmpeg; it must never hang the
	// caller.
	detectTimeout = 30 * time.Second
)

var sentenceEndings = regexp.MustCompile(`[.!?;:]`)

type boundaryPoint struct {
	time       float64
	kind       string // "silence", "sentence", "word"
	confidence float64
}

// Detector adjusts clip boundaries using silences and punctuation.
type Detector struct {
	silences SilenceDetector
	log      zerolog.Logger
}

func New(silences SilenceDetector, log zerolog.Logger) *Detector {
	return &Detector{silences: silences, log: log.With().Str("component", "boundary").Logger()}
}

// Adjust returns refined (start, end) for the clip. Refinement is
// best-effort: when no transcript words fall inside the window, or silence
// detection fails or times out, the input boundaries come back untouched.
func (d *Detector) Adjust(
	ctx context.Context,
	mediaPath string,
	start, end float64,
	words []types.Word,
	minDuration, maxDuration float64,
) (float64, float64) {
	var clipWords []types.Word
	for _, w := range words {
		if w.Start >= start-wordSlackSec && w.End <= end+wordSlackSec {
			clipWords = append(clipWords, w)
		}
	}
	if len(clipWords) == 0 {
		d.log.Warn().Float64("start", start).Float64("end", end).
			Msg("no words in clip window, keeping original boundaries")
		return start, end
	}

	detectCtx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()
	raw, err := d.silences.DetectSilences(
		detectCtx, mediaPath,
		start-searchWindowSec, end+searchWindowSec,
		silenceNoiseDB, silenceMinDuration,
	)
	if err != nil {
		d.log.Warn().Err(err).Msg("silence detection failed, keeping original boundaries")
		return start, end
	}

	// Boundary candidates sit at silence midpoints.
	silences := make([]boundaryPoint, 0, len(raw))
	for _, s := range raw {
		silences = append(silences, boundaryPoint{time: (s.Start + s.End) / 2, kind: "silence", confidence: 0.9})
	}

	sentences := sentenceBoundaries(clipWords)

	adjStart := adjustStart(start, clipWords, silences, sentences)
	adjEnd := adjustEnd(end, clipWords, silences, sentences)

	// Clamp duration symmetrically around the current center.
	switch duration := adjEnd - adjStart; {
	case duration < minDuration:
		extension := (minDuration - duration) / 2
		adjStart = math.Max(0, adjStart-extension)
		adjEnd += extension
	case duration > maxDuration:
		reduction := (duration - maxDuration) / 2
		adjStart += reduction
		adjEnd -= reduction
	}

	d.log.Debug().
		Float64("start", adjStart).Float64("end", adjEnd).
		Msg("boundaries adjusted")
	return adjStart, adjEnd
}

func sentenceBoundaries(words []types.Word) []boundaryPoint {
	var out []boundaryPoint
	for _, w := range words {
		if sentenceEndings.MatchString(w.Text) {
			out = append(out, boundaryPoint{time: w.End, kind: "sentence", confidence: 0.8})
		}
	}
	return out
}

// adjustStart prefers a silence near the first word, then a sentence
// boundary, then the raw word edge, and finally applies the pre-roll.
func adjustStart(start float64, words []types.Word, silences, sentences []boundaryPoint) float64 {
	var firstWord *types.Word
	for i := range words {
		if words[i].Start >= start-0.5 {
			firstWord = &words[i]
			break
		}
	}
	if firstWord == nil {
		return start
	}

	searchStart := firstWord.Start - searchWindowSec
	searchEnd := firstWord.Start + 0.5

	adjusted := firstWord.Start
	if b, ok := nearest(silences, searchStart, searchEnd, firstWord.Start); ok {
		adjusted = b.time
	} else if b, ok := nearest(sentences, searchStart, searchEnd, firstWord.Start); ok {
		adjusted = b.time
	}

	return math.Max(0, adjusted-preRollSec)
}

// adjustEnd mirrors adjustStart around the last word and applies the
// post-roll.
func adjustEnd(end float64, words []types.Word, silences, sentences []boundaryPoint) float64 {
	var lastWord *types.Word
	for i := len(words) - 1; i >= 0; i-- {
		if words[i].End <= end+0.5 {
			lastWord = &words[i]
			break
		}
	}
	if lastWord == nil {
		return end
	}

	searchStart := lastWord.End - 0.5
	searchEnd := lastWord.End + searchWindowSec

	adjusted := lastWord.End
	if b, ok := nearest(silences, searchStart, searchEnd, lastWord.End); ok {
		adjusted = b.time
	} else if b, ok := nearest(sentences, searchStart, searchEnd, lastWord.End); ok {
		adjusted = b.time
	}

	return adjusted + postRollSec
}

func nearest(points []boundaryPoint, windowStart, windowEnd, anchor float64) (boundaryPoint, bool) {
	best := boundaryPoint{}
	found := false
	for _, p := range points {
		if p.time < windowStart || p.time > windowEnd {
			continue
		}
		if !found || math.Abs(p.time-anchor) < math.Abs(best.time-anchor) {
			best = p
			found = true
		}
	}
	return best, found
}
