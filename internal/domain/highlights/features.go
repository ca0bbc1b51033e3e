package highlights

import (
	"regexp"
	"strings"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

// Feature keys. Every scored segment gets exactly these seven.
const (
	FeatureHook        = "hook"
	FeatureNovelty     = "novelty"
	FeatureStructure   = "structure"
	FeatureEmotion     = "emotion"
	FeatureClarity     = "clarity"
	FeatureQuote       = "quote"
	FeatureVisionFocus = "vision_focus"
)

// Combination weights. These are design constants, not configuration:
// scores must stay comparable across deployments, so they are preserved
// exactly.
var featureWeights = map[string]float64{
	FeatureHook:        0.28,
	FeatureNovelty:     0.16,
	FeatureStructure:   0.14,
	FeatureEmotion:     0.14,
	FeatureClarity:     0.12,
	FeatureQuote:       0.10,
	FeatureVisionFocus: 0.06,
}

var hookPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bhow\s+to\b`),
	regexp.MustCompile(`(?i)\bwhy\b`),
	regexp.MustCompile(`(?i)\bsecret\b`),
	regexp.MustCompile(`(?i)\b\d+%`),
	regexp.MustCompile(`(?i)\bnumber\s+\d+\b`),
	regexp.MustCompile(`(?i)\bbest\b`),
	regexp.MustCompile(`(?i)\bworst\b`),
	regexp.MustCompile(`(?i)\bamazing\b`),
	regexp.MustCompile(`(?i)\bincredible\b`),
	regexp.MustCompile(`(?i)\bshocking\b`),
	regexp.MustCompile(`(?i)\bproven\b`),
	regexp.MustCompile(`(?i)\bscience\b`),
	regexp.MustCompile(`(?i)\bstudies?\b`),
}

var questionPattern = regexp.MustCompile(`(?i)\b(what|when|where|who|why|how)\b`)

var listMarkers = []string{"first", "second", "third", "finally"}

var emotionWords = []string{
	"love", "hate", "amazing", "terrible", "beautiful", "ugly",
	"happy", "sad", "excited", "angry", "shocked", "surprised",
}

var fillerWords = []string{
	"um", "uh", "like", "you know", "basically", "literally",
	"actually", "so", "anyway", "right",
}

// ExtractFeatures computes the seven sub-scores for one segment. Novelty
// needs the full segment corpus; everything else is text-local.
func ExtractFeatures(seg types.Segment, all []types.Segment) types.Features {
	return types.Features{
		FeatureHook:        scoreHook(seg.Text),
		FeatureNovelty:     scoreNovelty(seg.Text, all),
		FeatureStructure:   scoreStructure(seg.Text),
		FeatureEmotion:     scoreEmotion(seg.Text),
		FeatureClarity:     scoreClarity(seg.Text),
		FeatureQuote:       scoreQuote(seg.Text),
		FeatureVisionFocus: scoreVision(seg),
	}
}

// CombineScore folds features into one scalar via the fixed weights.
func CombineScore(f types.Features) float64 {
	var score float64
	for key, w := range featureWeights {
		score += f[key] * w
	}
	return minf(score, 1.0)
}

func scoreHook(text string) float64 {
	lower := strings.ToLower(text)
	matches := 0
	for _, p := range hookPatterns {
		if p.MatchString(lower) {
			matches++
		}
	}
	return minf(float64(matches)*0.3, 1.0)
}

// scoreNovelty is an inverse-frequency proxy: the segment's unique word
// set against the union of all segments' words. An empty corpus scores a
// neutral 0.5 so a lone segment is not penalized.
func scoreNovelty(text string, all []types.Segment) float64 {
	words := uniqueWords(text)
	corpus := make(map[string]struct{})
	for _, seg := range all {
		for w := range uniqueWords(seg.Text) {
			corpus[w] = struct{}{}
		}
	}
	if len(corpus) == 0 {
		return 0.5
	}
	return minf(float64(len(words))/float64(len(corpus)), 1.0)
}

func scoreStructure(text string) float64 {
	score := 0.0
	if questionPattern.MatchString(text) {
		score += 0.5
	}
	lower := strings.ToLower(text)
	for _, marker := range listMarkers {
		if strings.Contains(lower, marker) {
			score += 0.3
			break
		}
	}
	return minf(score, 1.0)
}

func scoreEmotion(text string) float64 {
	lower := strings.ToLower(text)
	matches := 0
	for _, w := range emotionWords {
		if strings.Contains(lower, w) {
			matches++
		}
	}
	return minf(float64(matches)*0.2, 1.0)
}

// scoreClarity is the inverse filler density. Empty text scores a neutral
// 0.5 to avoid dividing by zero.
func scoreClarity(text string) float64 {
	wordCount := len(strings.Fields(text))
	if wordCount == 0 {
		return 0.5
	}
	lower := strings.ToLower(text)
	fillers := 0
	for _, f := range fillerWords {
		if strings.Contains(lower, f) {
			fillers++
		}
	}
	ratio := float64(fillers) / float64(wordCount)
	return 1.0 - minf(ratio, 1.0)
}

// scoreQuote rewards punchy phrasing: mean words-per-sentence in the 5-15
// sweet spot scores highest.
func scoreQuote(text string) float64 {
	sentences := strings.Split(text, ".")
	if len(sentences) == 0 {
		return 0.2
	}
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	avg := float64(total) / float64(len(sentences))
	switch {
	case 5 <= avg && avg <= 15:
		return 0.8
	case 3 <= avg && avg <= 20:
		return 0.5
	default:
		return 0.2
	}
}

// scoreVision has no real vision features to work with; a resolved speaker
// is the proxy for something visually anchored happening on screen.
func scoreVision(seg types.Segment) float64 {
	if seg.Speaker != "" {
		return 0.3
	}
	return 0.0
}

func uniqueWords(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		out[w] = struct{}{}
	}
	return out
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
