package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/Gautamrajanand/clipforge/internal/domain/boundary"
)

var (
	silenceStartRe = regexp.MustCompile(`silence_start: ([\d.]+)`)
	silenceEndRe   = regexp.MustCompile(`silence_end: ([\d.]+)`)
)

// DetectSilences runs silencedetect over [start, end] of the source and
// returns the detected intervals in source-time coordinates. The decode is
// discarded (-f null); only the stderr log matters.
func (a *Adapter) DetectSilences(ctx context.Context, inPath string, start, end, noiseDB, minDuration float64) ([]boundary.Silence, error) {
	if start < 0 {
		start = 0
	}
	duration := end - start
	if duration <= 0 {
		return nil, nil
	}

	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-ss", fmtSeconds(start),
		"-t", fmtSeconds(duration),
		"-i", inPath,
		"-af", fmt.Sprintf("silencedetect=noise=%gdB:d=%g", noiseDB, minDuration),
		"-f", "null",
		"-",
	)
	// silencedetect logs to stderr; ffmpeg exits zero on a clean null run.
	b, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ffmpeg silencedetect: %w\n%s", err, string(b))
	}

	return parseSilences(string(b), start), nil
}

// parseSilences pairs silence_start/silence_end log lines and offsets them
// back into source time (silencedetect reports relative to the seek
// point).
func parseSilences(output string, offset float64) []boundary.Silence {
	var silences []boundary.Silence
	pendingStart := -1.0

	for _, line := range strings.Split(output, "\n") {
		if m := silenceStartRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				pendingStart = v + offset
			}
			continue
		}
		if m := silenceEndRe.FindStringSubmatch(line); m != nil && pendingStart >= 0 {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				silences = append(silences, boundary.Silence{Start: pendingStart, End: v + offset})
			}
			pendingStart = -1
		}
	}
	return silences
}
