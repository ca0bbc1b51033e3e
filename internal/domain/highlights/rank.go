package highlights

import (
	"math"
	"sort"
	"strings"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

// Options bounds the clips the ranker may emit. Zero values take the
// defaults below.
type Options struct {
	MinClipSec float64
	MaxClipSec float64
}

const (
	defaultMinClipSec = 20.0
	defaultMaxClipSec = 90.0

	// Accepted seeds must start at least this far apart so clips do not
	// cluster around one moment.
	minSeedGapSec = 30.0

	// A source segment counts as clip provenance only when it overlaps the
	// final window by at least this much.
	provenanceOverlapSec = 0.5
)

func (o Options) withDefaults() Options {
	if o.MinClipSec <= 0 {
		o.MinClipSec = defaultMinClipSec
	}
	if o.MaxClipSec <= 0 {
		o.MaxClipSec = defaultMaxClipSec
	}
	return o
}

type scoredSegment struct {
	seg      types.Segment
	features types.Features
	score    float64
}

// Rank builds segments from the transcript, scores them, expands the best
// seeds into clips, and returns up to numClips results sorted by score
// descending. Malformed or empty input yields an empty list.
func Rank(words []types.Word, diarization []types.DiarizationSpan, numClips int, opts Options) []types.ClipScore {
	opts = opts.withDefaults()
	if numClips <= 0 || len(words) == 0 {
		return nil
	}

	segments := BuildSegments(words, diarization)
	scored := scoreSegments(segments)
	seeds := selectSeeds(scored, numClips)

	var clips []types.ClipScore
	seen := make(map[[2]int]struct{})

	for _, seed := range seeds {
		clip := expandToClip(seed, words, segments, opts)
		if clip == nil {
			continue
		}
		// Seeds arrive in score order, so on a duplicate or overlap the
		// higher-scored clip has already been kept.
		key := [2]int{int(math.Round(clip.Start)), int(math.Round(clip.End))}
		if _, dup := seen[key]; dup {
			continue
		}
		if overlapsAny(clips, clip.Start, clip.End) {
			continue
		}
		seen[key] = struct{}{}
		clips = append(clips, *clip)
	}

	sort.SliceStable(clips, func(i, j int) bool { return clips[i].Score > clips[j].Score })
	if len(clips) > numClips {
		clips = clips[:numClips]
	}
	return clips
}

func scoreSegments(segments []types.Segment) []scoredSegment {
	out := make([]scoredSegment, 0, len(segments))
	for _, seg := range segments {
		f := ExtractFeatures(seg, segments)
		out = append(out, scoredSegment{seg: seg, features: f, score: CombineScore(f)})
	}
	return out
}

// selectSeeds greedily walks the score-descending list, skipping segments
// that start within minSeedGapSec of an already-accepted seed.
func selectSeeds(scored []scoredSegment, n int) []scoredSegment {
	byScore := make([]scoredSegment, len(scored))
	copy(byScore, scored)
	sort.SliceStable(byScore, func(i, j int) bool { return byScore[i].score > byScore[j].score })

	var seeds []scoredSegment
	for _, cand := range byScore {
		tooClose := false
		for _, s := range seeds {
			if math.Abs(cand.seg.Start-s.seg.Start) < minSeedGapSec {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		seeds = append(seeds, cand)
		if len(seeds) >= n {
			break
		}
	}
	return seeds
}

// expandToClip grows a seed outward along segment boundaries toward the
// midpoint of the duration window, splitting the needed expansion evenly
// between the two directions, then snaps both edges to natural pauses.
// Candidates whose duration lands outside the window are rejected, never
// truncated.
func expandToClip(seed scoredSegment, words []types.Word, segments []types.Segment, opts Options) *types.ClipScore {
	targetDuration := (opts.MinClipSec + opts.MaxClipSec) / 2

	clipStart := seed.seg.Start
	clipEnd := seed.seg.End
	seedIdx := indexOfSegment(segments, seed.seg)
	if seedIdx < 0 {
		return nil
	}

	if needed := targetDuration - (clipEnd - clipStart); needed > 0 {
		expandBefore := needed / 2
		expandAfter := needed / 2

		for i := seedIdx - 1; i >= 0; i-- {
			expansion := clipStart - segments[i].Start
			if expansion > expandBefore {
				break
			}
			clipStart = segments[i].Start
			expandBefore -= expansion
		}
		for i := seedIdx + 1; i < len(segments); i++ {
			expansion := segments[i].End - clipEnd
			if expansion > expandAfter {
				break
			}
			clipEnd = segments[i].End
			expandAfter -= expansion
		}
	}

	if d := clipEnd - clipStart; d < opts.MinClipSec || d > opts.MaxClipSec {
		return nil
	}

	clipStart = snapToPause(clipStart, words)
	clipEnd = snapToPause(clipEnd, words)
	duration := clipEnd - clipStart
	if duration < opts.MinClipSec || duration > opts.MaxClipSec {
		return nil
	}

	var textParts []string
	for _, w := range words {
		if clipStart <= w.Start && w.Start < clipEnd {
			textParts = append(textParts, w.Text)
		}
	}

	var refs []types.SegmentRef
	for _, seg := range segments {
		if seg.End <= clipStart || seg.Start >= clipEnd {
			continue
		}
		overlap := math.Min(seg.End, clipEnd) - math.Max(seg.Start, clipStart)
		if overlap > provenanceOverlapSec {
			refs = append(refs, types.SegmentRef{
				Start:   seg.Start,
				End:     seg.End,
				Text:    truncateText(seg.Text, 100),
				Speaker: seg.Speaker,
			})
		}
	}

	return &types.ClipScore{
		Start:    clipStart,
		End:      clipEnd,
		Duration: duration,
		Score:    seed.score,
		Features: seed.features,
		Segments: refs,
		Reason:   buildReason(seed.features),
		Text:     strings.Join(textParts, " "),
	}
}

func indexOfSegment(segments []types.Segment, seg types.Segment) int {
	for i := range segments {
		if segments[i].Start == seg.Start && segments[i].End == seg.End {
			return i
		}
	}
	return -1
}

func overlapsAny(clips []types.ClipScore, start, end float64) bool {
	for _, c := range clips {
		if start < c.End && end > c.Start {
			return true
		}
	}
	return false
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
