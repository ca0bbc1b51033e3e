package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Gautamrajanand/clipforge/internal/domain/boundary"
	"github.com/Gautamrajanand/clipforge/internal/domain/reframe"
	"github.com/Gautamrajanand/clipforge/internal/ports"
	"github.com/Gautamrajanand/clipforge/internal/types"
)

type fakeVideo struct {
	audioErr    error
	probeW      int
	probeH      int
	subclips    []string
	concats     int
	silenceErr  error
}

func (f *fakeVideo) ExtractAudioMono16k(_ context.Context, _, _ string) error { return f.audioErr }

func (f *fakeVideo) ExtractSubclip(_ context.Context, _ string, start, end float64, outPath string, _ ports.RenderOpts) error {
	f.subclips = append(f.subclips, fmt.Sprintf("%s %.1f-%.1f", outPath, start, end))
	return nil
}

func (f *fakeVideo) ConcatClips(_ context.Context, inPaths []string, _ string) error {
	if len(inPaths) == 0 {
		return errors.New("no inputs")
	}
	f.concats++
	return nil
}

func (f *fakeVideo) DetectSilences(_ context.Context, _ string, _, _, _, _ float64) ([]boundary.Silence, error) {
	return nil, f.silenceErr
}

func (f *fakeVideo) ProbeDimensions(_ context.Context, _ string) (int, int, error) {
	return f.probeW, f.probeH, nil
}

func (f *fakeVideo) ProbeDuration(_ context.Context, _ string) (float64, error) { return 300, nil }

type fakeASR struct {
	result types.TranscriptionResult
	err    error
}

func (f *fakeASR) Transcribe(_ context.Context, _, _ string) (types.TranscriptionResult, error) {
	return f.result, f.err
}

// transcriptWords builds an engaging transcript long enough to rank clips
// from, 0.5s per word.
func transcriptWords() []types.Word {
	sentences := make([]string, 60)
	for i := range sentences {
		sentences[i] = "We discussed the quarterly planning details."
	}
	sentences[2] = "Here is why this amazing secret."
	sentences[25] = "The proven science behind incredible results."
	sentences[50] = "Studies show the best shocking outcome."

	var words []types.Word
	t := 0.0
	for _, s := range sentences {
		for _, w := range strings.Fields(s) {
			words = append(words, types.Word{Text: w, Start: t, End: t + 0.5})
			t += 0.5
		}
	}
	return words
}

func testInput(t *testing.T) Input {
	t.Helper()
	return Input{
		InputPath:    "in.mp4",
		ClipsN:       2,
		ProClipsN:    1,
		MinClipSec:   20,
		MaxClipSec:   90,
		ProTargetSec: 45,
		Ratio:        reframe.Vertical,
		CacheDir:     t.TempDir(),
		OutDir:       t.TempDir(),
	}
}

func TestRun_ProducesManifest(t *testing.T) {
	video := &fakeVideo{probeW: 1920, probeH: 1080}
	asr := &fakeASR{result: types.TranscriptionResult{Words: transcriptWords()}}
	uc := New(Deps{Video: video, ASR: asr, Log: zerolog.Nop()})

	res, err := uc.Run(context.Background(), testInput(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var highlightN, proN int
	for _, c := range res.Manifest.Clips {
		switch c.Kind {
		case "highlight":
			highlightN++
			if c.EndSec <= c.StartSec {
				t.Fatalf("clip %s has invalid window", c.ID)
			}
		case "pro":
			proN++
			if len(c.Segments) < 2 {
				t.Fatalf("pro clip %s has too few pieces", c.ID)
			}
		default:
			t.Fatalf("unexpected kind %q", c.Kind)
		}
		if c.File == "" || c.Strategy == "" {
			t.Fatalf("clip %s missing file or strategy", c.ID)
		}
	}
	if highlightN != 2 {
		t.Fatalf("expected 2 highlight clips, got %d", highlightN)
	}
	if proN != 1 {
		t.Fatalf("expected 1 pro clip, got %d", proN)
	}
	if video.concats != 1 {
		t.Fatalf("expected 1 concat, got %d", video.concats)
	}
}

func TestRun_NoSpeechYieldsEmptyManifest(t *testing.T) {
	video := &fakeVideo{probeW: 1920, probeH: 1080}
	asr := &fakeASR{result: types.TranscriptionResult{}}
	uc := New(Deps{Video: video, ASR: asr, Log: zerolog.Nop()})

	res, err := uc.Run(context.Background(), testInput(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Manifest.Clips) != 0 {
		t.Fatalf("expected empty manifest, got %d clips", len(res.Manifest.Clips))
	}
	if len(video.subclips) != 0 {
		t.Fatalf("no clips should be rendered, got %v", video.subclips)
	}
}

func TestRun_TranscribeErrorPropagates(t *testing.T) {
	video := &fakeVideo{probeW: 1920, probeH: 1080}
	asr := &fakeASR{err: errors.New("model missing")}
	uc := New(Deps{Video: video, ASR: asr, Log: zerolog.Nop()})

	if _, err := uc.Run(context.Background(), testInput(t)); err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_AudioExtractionErrorPropagates(t *testing.T) {
	video := &fakeVideo{audioErr: errors.New("no audio stream")}
	asr := &fakeASR{}
	uc := New(Deps{Video: video, ASR: asr, Log: zerolog.Nop()})

	if _, err := uc.Run(context.Background(), testInput(t)); err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_BurnSubtitlesWritesSidecars(t *testing.T) {
	video := &fakeVideo{probeW: 1920, probeH: 1080}
	asr := &fakeASR{result: types.TranscriptionResult{Words: transcriptWords()}}
	uc := New(Deps{Video: video, ASR: asr, Log: zerolog.Nop()})

	in := testInput(t)
	in.BurnSubtitles = true
	in.ProClipsN = 0

	res, err := uc.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, c := range res.Manifest.Clips {
		if c.Subtitles == "" {
			t.Fatalf("clip %s missing subtitle reference", c.ID)
		}
	}
}
