package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Gautamrajanand/clipforge/internal/domain/boundary"
	"github.com/Gautamrajanand/clipforge/internal/domain/reframe"
	"github.com/Gautamrajanand/clipforge/internal/ports"
	"github.com/Gautamrajanand/clipforge/internal/ports/adapters/ffmpeg"
	"github.com/Gautamrajanand/clipforge/internal/ports/adapters/openai"
	"github.com/Gautamrajanand/clipforge/internal/ports/adapters/whispercpp"
	"github.com/Gautamrajanand/clipforge/internal/usecase"
)

type Config struct {
	InputMP4 string
	OutDir   string

	ClipsN        int
	ProClipsN     int
	MinClipSec    float64
	MaxClipSec    float64
	ProTargetSec  float64
	Ratio         string
	BurnSubtitles bool
	AdjustBounds  bool

	Log zerolog.Logger

	// CacheDir is the base directory for local artifacts (audio, transcripts,
	// intermediate pieces). If empty, defaults to ".cache".
	CacheDir string

	FFmpegPath  string
	FFprobePath string

	WhisperBin   string
	WhisperModel string

	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	OpenAIAllowedHosts []string
}

func (c Config) Validate() error {
	if c.InputMP4 == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputMP4); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.ClipsN <= 0 {
		return fmt.Errorf("clips must be > 0")
	}
	if c.ProClipsN < 0 {
		return fmt.Errorf("pro clips must be >= 0")
	}
	if c.MaxClipSec <= 0 {
		return fmt.Errorf("max clip must be > 0")
	}
	if c.MinClipSec <= 0 {
		return fmt.Errorf("min clip must be > 0")
	}
	if c.MinClipSec > c.MaxClipSec {
		return fmt.Errorf("min clip must be <= max clip")
	}
	if c.WhisperModel == "" {
		return fmt.Errorf("whisper model path is required")
	}
	if _, err := reframe.TargetForRatio(c.Ratio); err != nil {
		return err
	}
	return openai.ValidateBaseURL(c.OpenAIBaseURL, c.OpenAIAllowedHosts)
}

func Run(ctx context.Context, cfg Config) error {
	log := cfg.Log

	// adapters
	v := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	asr := whispercpp.New(cfg.WhisperBin, cfg.WhisperModel)
	coh := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, log)

	target, err := reframe.TargetForRatio(cfg.Ratio)
	if err != nil {
		return err
	}

	deps := usecase.Deps{
		Video:     v,
		ASR:       asr,
		Coherence: coh,
		Log:       log,
	}

	uc := usecase.New(deps)

	jobID := hash(cfg.InputMP4)
	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "runs", jobID)
	log.Debug().Msg("preparing workspace")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	log.Debug().Str("cache", cacheDir).Msg("cache ready")

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.InputMP4)
	clipsDir := filepath.Join(runOutDir, "clips")
	if err := os.MkdirAll(clipsDir, 0o755); err != nil {
		return err
	}
	if cfg.BurnSubtitles {
		if err := os.MkdirAll(filepath.Join(runOutDir, "subtitles"), 0o755); err != nil {
			return err
		}
	}
	log.Info().Str("out", runOutDir).Msg("output run dir")

	res, err := uc.Run(ctx, usecase.Input{
		InputPath:     cfg.InputMP4,
		ClipsN:        cfg.ClipsN,
		ProClipsN:     cfg.ProClipsN,
		MinClipSec:    cfg.MinClipSec,
		MaxClipSec:    cfg.MaxClipSec,
		ProTargetSec:  cfg.ProTargetSec,
		Ratio:         target,
		BurnSubtitles: cfg.BurnSubtitles,
		AdjustBounds:  cfg.AdjustBounds,
		CacheDir:      cacheDir,
		OutDir:        runOutDir,
	})
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return err
	}
	log.Info().Int("clips", len(res.Manifest.Clips)).Str("manifest", manifestPath).Msg("manifest written")
	return nil
}

func buildRunOutDir(outRoot, inputMP4 string) string {
	name := strings.TrimSuffix(filepath.Base(inputMP4), filepath.Ext(inputMP4))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := time.Now().UTC().Format("20060102-150405Z")
	suffix := uuid.NewString()[:8]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
var _ ports.Coherence = (*openai.Adapter)(nil)
var _ boundary.SilenceDetector = (*ffmpeg.Adapter)(nil)
