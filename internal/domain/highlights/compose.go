package highlights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

// CoherenceChecker decides whether a time-ordered group of segments reads
// as one coherent story. Implementations must fail open: when the check
// cannot run, answer true so the deterministic core keeps working.
type CoherenceChecker interface {
	CheckCoherent(segments []types.Segment) bool
}

// AllowAll is the default checker: every group passes.
type AllowAll struct{}

func (AllowAll) CheckCoherent([]types.Segment) bool { return true }

const (
	// Duration tolerance is deliberately wide: finding any valid coherent
	// combination beats hitting an exact target.
	composeMinTotalSec = 8.0
	composeMaxTotalSec = 120.0

	// Consecutive pieces must be at least this far apart (no overlap) and
	// at most this far apart (still filmable as one clip).
	composeMinGapSec = 3.0
	composeMaxGapSec = 90.0

	// Only the highest-scoring unused segments are searched.
	composePoolSize = 40

	// Edge pad on each stitched piece so cuts do not land mid-word.
	composePadSec = 0.2
)

// Group sizes tried in order; three-segment stories are the sweet spot.
var composeGroupSizes = []int{3, 2, 4}

// ComposeMultiSegment builds up to numClips composite "pro" clips from
// non-contiguous high-value segments. A segment consumed by one clip is
// excluded from all later clips in the batch. Fewer than numClips results
// (possibly zero) is a normal outcome.
func ComposeMultiSegment(
	words []types.Word,
	diarization []types.DiarizationSpan,
	numClips int,
	targetDuration float64,
	checker CoherenceChecker,
) []types.MultiSegmentClip {
	_ = targetDuration // retained in the signature for callers; tolerance is intentionally wide
	if checker == nil {
		checker = AllowAll{}
	}
	if numClips <= 0 || len(words) == 0 {
		return nil
	}

	segments := BuildSegments(words, diarization)
	scored := scoreSegments(segments)
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	var out []types.MultiSegmentClip
	used := make(map[[2]float64]struct{})

	for i := 0; i < numClips; i++ {
		group := findSegmentCombination(scored, used, checker)
		if len(group) == 0 {
			continue
		}
		for _, g := range group {
			used[[2]float64{g.seg.Start, g.seg.End}] = struct{}{}
		}
		out = append(out, buildMultiSegmentClip(group))
	}
	return out
}

// findSegmentCombination scans contiguous windows of the score-ordered
// candidate pool. Selection adjacency is by score rank, not by time; the
// chosen group is then validated in time order. The windowed scan is a
// deliberate speed/quality trade-off over exhaustive subset search.
func findSegmentCombination(scored []scoredSegment, used map[[2]float64]struct{}, checker CoherenceChecker) []scoredSegment {
	var available []scoredSegment
	for _, s := range scored {
		if _, taken := used[[2]float64{s.seg.Start, s.seg.End}]; !taken {
			available = append(available, s)
		}
	}
	if len(available) == 0 {
		return nil
	}

	pool := available
	if len(pool) > composePoolSize {
		pool = pool[:composePoolSize]
	}

	for _, size := range composeGroupSizes {
		for i := 0; i+size <= len(pool); i++ {
			group := make([]scoredSegment, size)
			copy(group, pool[i:i+size])
			sort.SliceStable(group, func(a, b int) bool { return group[a].seg.Start < group[b].seg.Start })

			if !validGaps(group) || !validTotalDuration(group) {
				continue
			}
			if !checker.CheckCoherent(groupSegments(group)) {
				continue
			}
			return group
		}
	}
	return nil
}

func validGaps(group []scoredSegment) bool {
	for i := 0; i+1 < len(group); i++ {
		gap := group[i+1].seg.Start - group[i].seg.End
		if gap < composeMinGapSec || gap > composeMaxGapSec {
			return false
		}
	}
	return true
}

func validTotalDuration(group []scoredSegment) bool {
	var total float64
	for _, g := range group {
		total += g.seg.Duration()
	}
	return composeMinTotalSec <= total && total <= composeMaxTotalSec
}

func groupSegments(group []scoredSegment) []types.Segment {
	out := make([]types.Segment, len(group))
	for i, g := range group {
		out[i] = g.seg
	}
	return out
}

// buildMultiSegmentClip pads each piece's edges, assigns time order, and
// aggregates the group's score and text.
func buildMultiSegmentClip(group []scoredSegment) types.MultiSegmentClip {
	pieces := make([]types.ClipSegment, 0, len(group))
	var totalDuration, scoreSum float64
	var texts []string

	for i, g := range group {
		start := max0(g.seg.Start - composePadSec)
		end := g.seg.End + composePadSec
		pieces = append(pieces, types.ClipSegment{
			Start:    start,
			End:      end,
			Duration: end - start,
			Score:    g.score,
			Text:     g.seg.Text,
			Order:    i + 1,
		})
		totalDuration += end - start
		scoreSum += g.score
		texts = append(texts, g.seg.Text)
	}

	combined := scoreSum / float64(len(group))

	return types.MultiSegmentClip{
		Segments:      pieces,
		TotalDuration: totalDuration,
		CombinedScore: combined,
		Features: types.Features{
			FeatureHook:     combined / 100,
			"multi_segment": 1.0,
			"segment_count": float64(len(pieces)),
		},
		Reason:   fmt.Sprintf("Multi-segment clip with %d high-value moments", len(pieces)),
		FullText: strings.Join(texts, " [...] "),
	}
}
