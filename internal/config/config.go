package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// Core settings
	OutDir   string `yaml:"out_dir"`
	CacheDir string `yaml:"cache_dir"`

	// Clip extraction settings
	Clips ClipConfig `yaml:"clips"`

	// Rendering settings
	Render RenderConfig `yaml:"render"`

	// Tool and model settings
	Tools ToolConfig `yaml:"tools"`
}

type ClipConfig struct {
	Count        int     `yaml:"count"`
	ProCount     int     `yaml:"pro_count"`
	MinSec       float64 `yaml:"min_sec"`
	MaxSec       float64 `yaml:"max_sec"`
	ProTargetSec float64 `yaml:"pro_target_sec"`
	AdjustBounds bool    `yaml:"adjust_bounds"`
}

type RenderConfig struct {
	Ratio         string `yaml:"ratio"`
	BurnSubtitles bool   `yaml:"burn_subtitles"`
}

type ToolConfig struct {
	FFmpegPath   string `yaml:"ffmpeg_path"`
	FFprobePath  string `yaml:"ffprobe_path"`
	WhisperBin   string `yaml:"whisper_bin"`
	WhisperModel string `yaml:"whisper_model"`
}

// Load reads configuration from file or returns defaults. A missing file is
// not an error; explicit paths that fail to parse are.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		OutDir:   "out",
		CacheDir: "",
		Clips: ClipConfig{
			Count:        5,
			ProCount:     2,
			MinSec:       20,
			MaxSec:       90,
			ProTargetSec: 60,
			AdjustBounds: true,
		},
		Render: RenderConfig{
			Ratio:         "9:16",
			BurnSubtitles: false,
		},
		Tools: ToolConfig{
			FFmpegPath:   "ffmpeg",
			FFprobePath:  "ffprobe",
			WhisperBin:   "whisper-cli",
			WhisperModel: "",
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./clipforge.yaml",
		"./clipforge.yml",
		filepath.Join(os.Getenv("HOME"), ".clipforge", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
