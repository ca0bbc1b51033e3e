package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Gautamrajanand/clipforge/internal/domain/boundary"
	"github.com/Gautamrajanand/clipforge/internal/domain/highlights"
	"github.com/Gautamrajanand/clipforge/internal/domain/reframe"
	"github.com/Gautamrajanand/clipforge/internal/domain/subtitles"
	"github.com/Gautamrajanand/clipforge/internal/ports"
	"github.com/Gautamrajanand/clipforge/internal/types"
)

type Deps struct {
	Video     ports.VideoTool
	ASR       ports.ASR
	Coherence ports.Coherence
	Log       zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	InputPath string
	ClipsN    int
	ProClipsN int

	MinClipSec     float64
	MaxClipSec     float64
	ProTargetSec   float64
	Ratio          reframe.Target
	BurnSubtitles  bool
	AdjustBounds   bool
	CacheDir       string
	OutDir         string
}

type Result struct {
	Manifest types.Manifest
}

// Run executes the full pipeline: transcribe, rank, compose, refine
// boundaries, plan reframing, and render every clip. Zero clips found is a
// normal outcome, not an error.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	log := u.d.Log.With().Str("component", "usecase").Logger()

	wav := filepath.Join(in.CacheDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, in.InputPath, wav); err != nil {
		return Result{}, err
	}

	tr, err := u.d.ASR.Transcribe(ctx, wav, in.CacheDir)
	if err != nil {
		return Result{}, err
	}
	log.Info().Int("words", len(tr.Words)).Int("diarization", len(tr.Diarization)).Msg("transcription done")

	opts := highlights.Options{MinClipSec: in.MinClipSec, MaxClipSec: in.MaxClipSec}
	clips := highlights.Rank(tr.Words, tr.Diarization, in.ClipsN, opts)
	log.Info().Int("clips", len(clips)).Msg("highlights ranked")

	var proClips []types.MultiSegmentClip
	if in.ProClipsN > 0 {
		proClips = highlights.ComposeMultiSegment(tr.Words, tr.Diarization, in.ProClipsN, in.ProTargetSec, u.d.Coherence)
		log.Info().Int("pro_clips", len(proClips)).Msg("multi-segment clips composed")
	}

	plan, err := u.reframePlan(ctx, in)
	if err != nil {
		return Result{}, err
	}
	log.Info().Str("strategy", string(plan.Strategy)).Float64("content_loss", plan.ContentLoss).Msg("reframe planned")

	detector := boundary.New(u.d.Video, u.d.Log)

	mediaDur, err := u.d.Video.ProbeDuration(ctx, in.InputPath)
	if err != nil {
		log.Warn().Err(err).Msg("could not probe source duration")
		mediaDur = 0
	}

	m := types.Manifest{Input: in.InputPath}

	for i, c := range clips {
		id := fmt.Sprintf("%03d", i+1)
		start, end := c.Start, c.End
		if in.AdjustBounds {
			start, end = detector.Adjust(ctx, in.InputPath, start, end, tr.Words, in.MinClipSec, in.MaxClipSec)
		}
		// Post-roll can push past the end of the source.
		if mediaDur > 0 && end > mediaDur {
			end = mediaDur
		}

		entry, err := u.renderSingle(ctx, in, plan, tr.Words, id, start, end, c)
		if err != nil {
			return Result{}, err
		}
		m.Clips = append(m.Clips, entry)
	}

	for i, pc := range proClips {
		id := fmt.Sprintf("pro-%02d", i+1)
		entry, err := u.renderComposite(ctx, in, plan, tr.Words, id, pc)
		if err != nil {
			return Result{}, err
		}
		m.Clips = append(m.Clips, entry)
	}

	return Result{Manifest: m}, nil
}

func (u Usecase) reframePlan(ctx context.Context, in Input) (reframe.Plan, error) {
	w, h, err := u.d.Video.ProbeDimensions(ctx, in.InputPath)
	if err != nil {
		return reframe.Plan{}, fmt.Errorf("probe dimensions: %w", err)
	}
	return reframe.Compute(w, h, in.Ratio.Width, in.Ratio.Height), nil
}

func (u Usecase) renderSingle(
	ctx context.Context,
	in Input,
	plan reframe.Plan,
	words []types.Word,
	id string,
	start, end float64,
	c types.ClipScore,
) (types.ManifestClip, error) {
	clipPath := filepath.Join(in.OutDir, "clips", id+".mp4")

	assPath := ""
	if in.BurnSubtitles {
		assPath = filepath.Join(in.OutDir, "subtitles", id+".ass")
		ass := subtitles.RenderClipASS(words, c.Text, start, end)
		if err := writeFile(assPath, []byte(ass)); err != nil {
			return types.ManifestClip{}, err
		}
	}

	err := u.d.Video.ExtractSubclip(ctx, in.InputPath, start, end, clipPath, ports.RenderOpts{
		VideoFilter:    plan.Filter,
		NormalizeAudio: true,
		BurnASS:        assPath,
	})
	if err != nil {
		return types.ManifestClip{}, err
	}

	entry := types.ManifestClip{
		ID:       id,
		Kind:     "highlight",
		StartSec: start,
		EndSec:   end,
		Score:    c.Score,
		Reason:   c.Reason,
		Text:     c.Text,
		Strategy: string(plan.Strategy),
		File:     filepath.ToSlash(filepath.Join("clips", id+".mp4")),
	}
	if assPath != "" {
		entry.Subtitles = filepath.ToSlash(filepath.Join("subtitles", id+".ass"))
	}
	return entry, nil
}

// renderComposite cuts each stitched piece with the shared reframe plan,
// then concatenates them in order into one output clip.
func (u Usecase) renderComposite(
	ctx context.Context,
	in Input,
	plan reframe.Plan,
	words []types.Word,
	id string,
	pc types.MultiSegmentClip,
) (types.ManifestClip, error) {
	clipPath := filepath.Join(in.OutDir, "clips", id+".mp4")

	var piecePaths []string
	var pieces []types.MPiece
	for _, seg := range pc.Segments {
		piecePath := filepath.Join(in.CacheDir, fmt.Sprintf("%s-part%d.mp4", id, seg.Order))

		assPath := ""
		if in.BurnSubtitles {
			assPath = filepath.Join(in.CacheDir, fmt.Sprintf("%s-part%d.ass", id, seg.Order))
			ass := subtitles.RenderClipASS(words, seg.Text, seg.Start, seg.End)
			if err := writeFile(assPath, []byte(ass)); err != nil {
				return types.ManifestClip{}, err
			}
		}

		err := u.d.Video.ExtractSubclip(ctx, in.InputPath, seg.Start, seg.End, piecePath, ports.RenderOpts{
			VideoFilter:    plan.Filter,
			NormalizeAudio: true,
			BurnASS:        assPath,
		})
		if err != nil {
			return types.ManifestClip{}, err
		}
		piecePaths = append(piecePaths, piecePath)
		pieces = append(pieces, types.MPiece{Order: seg.Order, StartSec: seg.Start, EndSec: seg.End})
	}

	if err := u.d.Video.ConcatClips(ctx, piecePaths, clipPath); err != nil {
		return types.ManifestClip{}, err
	}

	first := pc.Segments[0]
	last := pc.Segments[len(pc.Segments)-1]
	return types.ManifestClip{
		ID:       id,
		Kind:     "pro",
		StartSec: first.Start,
		EndSec:   last.End,
		Score:    pc.CombinedScore,
		Reason:   pc.Reason,
		Text:     pc.FullText,
		Strategy: string(plan.Strategy),
		File:     filepath.ToSlash(filepath.Join("clips", id+".mp4")),
		Segments: pieces,
	}, nil
}

func writeFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
