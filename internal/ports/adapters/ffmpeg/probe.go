package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// ProbeDimensions reads the first video stream's pixel dimensions.
func (a *Adapter) ProbeDimensions(ctx context.Context, inPath string) (int, int, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		inPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe dimensions: %w\n%s", err, string(b))
	}

	var probe struct {
		Streams []struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return 0, 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 || probe.Streams[0].Width <= 0 || probe.Streams[0].Height <= 0 {
		return 0, 0, fmt.Errorf("no video stream in %s", inPath)
	}
	return probe.Streams[0].Width, probe.Streams[0].Height, nil
}
