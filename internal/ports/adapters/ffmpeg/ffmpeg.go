package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Gautamrajanand/clipforge/internal/ports"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

// ExtractSubclip cuts [start, end] out of the source, applying the reframe
// filter, audio normalization, and optional caption burn-in in one encode.
func (a *Adapter) ExtractSubclip(ctx context.Context, inPath string, start, end float64, outPath string, opts ports.RenderOpts) error {
	args := []string{
		"-y",
		"-ss", fmtSeconds(start),
		"-to", fmtSeconds(end),
		"-i", inPath,
	}

	var vf []string
	if opts.VideoFilter != "" {
		vf = append(vf, opts.VideoFilter)
	}
	if opts.BurnASS != "" {
		vf = append(vf, "subtitles="+escapeFilterPath(opts.BurnASS))
	}
	if len(vf) > 0 {
		args = append(args, "-vf", strings.Join(vf, ","))
	}

	if opts.NormalizeAudio {
		args = append(args, "-af", loudnormChain())
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		"-movflags", "+faststart",
		outPath,
	)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract subclip: %w\n%s", err, string(b))
	}
	return nil
}

// ConcatClips stitches already-encoded pieces into one output via the
// concat demuxer. Inputs share codec settings, so streams are copied.
func (a *Adapter) ConcatClips(ctx context.Context, inPaths []string, outPath string) error {
	if len(inPaths) == 0 {
		return fmt.Errorf("concat: no input clips")
	}

	listPath := outPath + ".concat.txt"
	var b strings.Builder
	for _, p := range inPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("concat: resolve %s: %w", p, err)
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("concat: write list: %w", err)
	}
	defer os.Remove(listPath)

	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg concat: %w\n%s", err, string(out))
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, inPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return sec, nil
}

// loudnormChain is the fixed audio normalization applied to every rendered
// clip: EBU R128 two-constant loudness plus a standard output sample rate.
func loudnormChain() string {
	return "loudnorm=I=-16:TP=-1.5:LRA=11,aresample=48000"
}

func fmtSeconds(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
