package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gautamrajanand/clipforge/internal/config"
	"github.com/Gautamrajanand/clipforge/internal/logging"
	"github.com/Gautamrajanand/clipforge/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logging.Init(verbose)
	log := logging.WithComponent("cli")

	configPath, _ := cmd.Flags().GetString("config")
	cfgFile, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags override file values only when set explicitly.
	if cmd.Flags().Changed("out") {
		cfgFile.OutDir, _ = cmd.Flags().GetString("out")
	}
	if cmd.Flags().Changed("clips") {
		cfgFile.Clips.Count, _ = cmd.Flags().GetInt("clips")
	}
	if cmd.Flags().Changed("pro-clips") {
		cfgFile.Clips.ProCount, _ = cmd.Flags().GetInt("pro-clips")
	}
	if cmd.Flags().Changed("ratio") {
		cfgFile.Render.Ratio, _ = cmd.Flags().GetString("ratio")
	}
	if cmd.Flags().Changed("burn-subs") {
		cfgFile.Render.BurnSubtitles, _ = cmd.Flags().GetBool("burn-subs")
	}
	if cmd.Flags().Changed("min") {
		cfgFile.Clips.MinSec, _ = cmd.Flags().GetFloat64("min")
	}
	if cmd.Flags().Changed("max") {
		cfgFile.Clips.MaxSec, _ = cmd.Flags().GetFloat64("max")
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		InputMP4: absIn,
		OutDir:   cfgFile.OutDir,

		ClipsN:        cfgFile.Clips.Count,
		ProClipsN:     cfgFile.Clips.ProCount,
		MinClipSec:    cfgFile.Clips.MinSec,
		MaxClipSec:    cfgFile.Clips.MaxSec,
		ProTargetSec:  cfgFile.Clips.ProTargetSec,
		Ratio:         cfgFile.Render.Ratio,
		BurnSubtitles: cfgFile.Render.BurnSubtitles,
		AdjustBounds:  cfgFile.Clips.AdjustBounds,

		Log:      logging.WithComponent("pipeline"),
		CacheDir: cfgFile.CacheDir,

		FFmpegPath:  cfgFile.Tools.FFmpegPath,
		FFprobePath: cfgFile.Tools.FFprobePath,

		WhisperBin:   getenvDefault("WHISPER_BIN", cfgFile.Tools.WhisperBin),
		WhisperModel: getenvDefault("WHISPER_MODEL", cfgFile.Tools.WhisperModel),

		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getenvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:      getenvDefault("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAllowedHosts: splitHosts(os.Getenv("OPENAI_ALLOWED_HOSTS")),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log.Info().Str("input", absIn).Int("clips", cfg.ClipsN).Int("pro_clips", cfg.ProClipsN).Msg("starting run")
	return pipeline.Run(ctx, cfg)
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func splitHosts(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
