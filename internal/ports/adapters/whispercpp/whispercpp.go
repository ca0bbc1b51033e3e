package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// whisperOutput mirrors the -oj JSON file layout.
type whisperOutput struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
		Words []struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
			Word  string  `json:"word"`
			P     float64 `json:"p"`
		} `json:"words,omitempty"`
	} `json:"segments"`
	Language string `json:"language,omitempty"`
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, cacheDir string) (types.TranscriptionResult, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
		"-owts",
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.TranscriptionResult{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.TranscriptionResult{}, err
	}

	var raw whisperOutput
	if err := json.Unmarshal(jb, &raw); err != nil {
		return types.TranscriptionResult{}, err
	}

	return flatten(raw), nil
}

// flatten turns whisper segments into the word list the ranker consumes
// and synthesizes diarization spans. whisper.cpp does not diarize, so
// speakers alternate on long inter-segment gaps; the heuristic is crude
// but gives the scorer a usable vision-focus signal.
func flatten(raw whisperOutput) types.TranscriptionResult {
	const speakerGapSec = 1.5

	var res types.TranscriptionResult
	res.Language = raw.Language

	speaker := 1
	var allText []string

	for i, seg := range raw.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		allText = append(allText, text)

		if i > 0 && seg.Start-raw.Segments[i-1].End > speakerGapSec {
			if speaker == 1 {
				speaker = 2
			} else {
				speaker = 1
			}
		}
		name := fmt.Sprintf("Speaker %d", speaker)

		res.Diarization = append(res.Diarization, types.DiarizationSpan{
			Speaker: name,
			Start:   seg.Start,
			End:     seg.End,
			Text:    text,
		})

		if len(seg.Words) > 0 {
			for _, w := range seg.Words {
				word := strings.TrimSpace(w.Word)
				if word == "" || w.End <= w.Start {
					continue
				}
				res.Words = append(res.Words, types.Word{
					Text:       word,
					Start:      w.Start,
					End:        w.End,
					Confidence: w.P,
					Speaker:    name,
				})
			}
			continue
		}

		// No word timestamps: spread the segment's words evenly so the
		// ranker still has a word-level timeline to work with.
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		step := (seg.End - seg.Start) / float64(len(fields))
		for j, f := range fields {
			ws := seg.Start + float64(j)*step
			res.Words = append(res.Words, types.Word{
				Text:       f,
				Start:      ws,
				End:        ws + step,
				Confidence: 1.0,
				Speaker:    name,
			})
		}
	}

	res.Text = strings.Join(allText, " ")
	return res
}
