package highlights

import (
	"math"
	"strings"
	"unicode"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

const (
	// Inter-word gaps shorter than this are not viable cut points.
	minCutGapSec = 0.15

	// Candidate gaps farther than this from the target are ignored unless
	// nothing closer exists.
	snapWindowSec = 2.0
)

// Cutting right before or after these words sounds abrupt.
var weakCutWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "to": {}, "of": {},
	"in": {}, "on": {}, "at": {}, "for": {}, "with": {},
}

type cutPoint struct {
	time     float64
	quality  float64
	distance float64
}

// snapToPause moves a boundary time to the best nearby natural pause
// between words. Quality prefers long gaps at sentence boundaries;
// distance from the target is penalized at 3 points per second.
func snapToPause(target float64, words []types.Word) float64 {
	var cuts []cutPoint

	for i := 0; i+1 < len(words); i++ {
		gapStart := words[i].End
		gapEnd := words[i+1].Start
		gap := gapEnd - gapStart
		if gap < minCutGapSec {
			continue
		}

		quality := 0.0
		switch {
		case gap > 0.5:
			quality += 10 // long pause: breath or sentence end
		case gap > 0.3:
			quality += 7
		case gap > 0.2:
			quality += 4
		default:
			quality += 1
		}

		prev := strings.TrimSpace(words[i].Text)
		next := strings.TrimSpace(words[i+1].Text)
		if endsSentence(prev) {
			quality += 15
		} else if strings.HasSuffix(prev, ",") || strings.HasSuffix(prev, ";") || strings.HasSuffix(prev, ":") {
			quality += 8
		}
		if next != "" && unicode.IsUpper([]rune(next)[0]) {
			quality += 5
		}
		if isWeakCutWord(prev) || isWeakCutWord(next) {
			quality -= 5
		}

		cuts = append(cuts, cutPoint{
			time:     gapStart,
			quality:  quality,
			distance: math.Abs(gapStart - target),
		})
	}

	if len(cuts) == 0 {
		return target
	}

	var nearby []cutPoint
	for _, c := range cuts {
		if c.distance <= snapWindowSec {
			nearby = append(nearby, c)
		}
	}
	if len(nearby) == 0 {
		closest := cuts[0]
		for _, c := range cuts[1:] {
			if c.distance < closest.distance {
				closest = c
			}
		}
		return closest.time
	}

	best := nearby[0]
	bestScore := best.quality - best.distance*3
	for _, c := range nearby[1:] {
		if s := c.quality - c.distance*3; s > bestScore {
			best, bestScore = c, s
		}
	}
	return best.time
}

func isWeakCutWord(w string) bool {
	_, ok := weakCutWords[strings.ToLower(w)]
	return ok
}
