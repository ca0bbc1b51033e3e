package ports

import (
	"context"

	"github.com/Gautamrajanand/clipforge/internal/domain/boundary"
	"github.com/Gautamrajanand/clipforge/internal/types"
)

// VideoTool is the media probe/transform collaborator. The core only
// produces filter descriptions; decoding and encoding happen behind this
// interface.
type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error
	ExtractSubclip(ctx context.Context, inPath string, start, end float64, outPath string, opts RenderOpts) error
	ConcatClips(ctx context.Context, inPaths []string, outPath string) error
	DetectSilences(ctx context.Context, inPath string, start, end, noiseDB, minDuration float64) ([]boundary.Silence, error)
	ProbeDimensions(ctx context.Context, inPath string) (width, height int, err error)
	ProbeDuration(ctx context.Context, inPath string) (float64, error)
}

// RenderOpts carries the per-clip filter parameters for ExtractSubclip.
type RenderOpts struct {
	// VideoFilter is the reframe filter chain from the planner; empty
	// keeps the source geometry.
	VideoFilter string
	// NormalizeAudio applies the loudnorm chain.
	NormalizeAudio bool
	// BurnASS, when set, burns the subtitle file into the frame.
	BurnASS string
}

// ASR is the transcription collaborator: word-level timestamps plus
// optional diarization.
type ASR interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.TranscriptionResult, error)
}

// Coherence is the optional semantic-coherence collaborator for
// multi-segment composition. Implementations must fail open.
type Coherence interface {
	CheckCoherent(segments []types.Segment) bool
}
