// Package reframe decides how a source frame is fitted into a target
// frame: crop when the geometric mismatch is mild, pad when cropping
// would discard too much of the picture. Pure geometry, no I/O.
package reframe

import "fmt"

// Strategy names the two ways to fit a source into a target frame.
type Strategy string

const (
	StrategyCrop Strategy = "crop"
	StrategyPad  Strategy = "pad"
)

// Fixed output presets.
var (
	Vertical   = Target{Width: 1080, Height: 1920}
	Square     = Target{Width: 1080, Height: 1080}
	Horizontal = Target{Width: 1920, Height: 1080}
)

// Target is an output frame size in pixels.
type Target struct {
	Width  int
	Height int
}

// TargetForRatio maps a preset name to its pixel dimensions.
func TargetForRatio(name string) (Target, error) {
	switch name {
	case "9:16", "vertical":
		return Vertical, nil
	case "1:1", "square":
		return Square, nil
	case "16:9", "horizontal":
		return Horizontal, nil
	default:
		return Target{}, fmt.Errorf("unknown aspect ratio %q", name)
	}
}

// Plan is the reframing decision for one source/target pair.
type Plan struct {
	Strategy    Strategy
	Filter      string
	ContentLoss float64
}

// Cropping is acceptable while it discards less than this fraction of the
// source picture; beyond it, padding preserves the content instead.
const maxCropContentLoss = 0.30

// Compute decides crop-vs-pad and builds the exact filter description.
// Same inputs always produce the same plan.
func Compute(sourceW, sourceH, targetW, targetH int) Plan {
	loss := contentLoss(sourceW, sourceH, targetW, targetH)
	if loss < maxCropContentLoss {
		return Plan{
			Strategy:    StrategyCrop,
			Filter:      cropFilter(sourceW, sourceH, targetW, targetH),
			ContentLoss: loss,
		}
	}
	return Plan{
		Strategy:    StrategyPad,
		Filter:      padFilter(targetW, targetH),
		ContentLoss: loss,
	}
}

// contentLoss is the fraction of the source picture a center crop to the
// target aspect would discard.
func contentLoss(sourceW, sourceH, targetW, targetH int) float64 {
	sourceAspect := float64(sourceW) / float64(sourceH)
	targetAspect := float64(targetW) / float64(targetH)
	if sourceAspect > targetAspect {
		return 1 - targetAspect/sourceAspect
	}
	return 1 - sourceAspect/targetAspect
}

// cropFilter scales the source to cover the target (max of the two axis
// ratios), center-crops to exact dimensions, then normalizes frame rate
// and pixel format.
func cropFilter(sourceW, sourceH, targetW, targetH int) string {
	wRatio := float64(targetW) / float64(sourceW)
	hRatio := float64(targetH) / float64(sourceH)
	scale := wRatio
	if hRatio > scale {
		scale = hRatio
	}
	scaledW := roundEven(float64(sourceW) * scale)
	scaledH := roundEven(float64(sourceH) * scale)
	return fmt.Sprintf(
		"scale=%d:%d,crop=%d:%d:(iw-%d)/2:(ih-%d)/2,fps=30,format=yuv420p",
		scaledW, scaledH, targetW, targetH, targetW, targetH,
	)
}

// padFilter scales the source to fit inside the target preserving aspect,
// then centers it over black bars.
func padFilter(targetW, targetH int) string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=black,fps=30,format=yuv420p",
		targetW, targetH, targetW, targetH,
	)
}

// ffmpeg rejects odd dimensions for 4:2:0 output.
func roundEven(v float64) int {
	n := int(v + 0.5)
	if n%2 != 0 {
		n++
	}
	return n
}
