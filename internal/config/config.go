// Package config loads aura's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/aura/internal/breath"
	"github.com/abhisek/aura/internal/llm"
	"github.com/abhisek/aura/internal/logging"
	"github.com/abhisek/aura/internal/synth"
)

// Config is the root configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Audio  AudioConfig  `yaml:"audio"`
	Store  StoreConfig  `yaml:"store"`
	LLM    LLMConfig    `yaml:"llm"`
	Breath BreathConfig `yaml:"breath"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// AudioConfig configures synthesis and output.
type AudioConfig struct {
	SampleRate int      `yaml:"sample_rate"`
	BufferMS   int      `yaml:"buffer_ms"`
	Player     string   `yaml:"player"`
	PlayerArgs []string `yaml:"player_args,omitempty"`
	Mode       string   `yaml:"mode"`
	Volume     float64  `yaml:"volume"`

	AttackSeconds     float64 `yaml:"attack_seconds"`
	ReleaseSeconds    float64 `yaml:"release_seconds"`
	VolumeRampSeconds float64 `yaml:"volume_ramp_seconds"`
	BeatHz            float64 `yaml:"beat_hz"`
}

// StoreConfig configures persistence.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ProviderConfig holds one LLM provider's credentials.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// LLMConfig configures reflections.
type LLMConfig struct {
	Provider       string         `yaml:"provider"`
	Anthropic      ProviderConfig `yaml:"anthropic"`
	OpenAI         ProviderConfig `yaml:"openai"`
	Gemini         ProviderConfig `yaml:"gemini"`
	OpenRouter     ProviderConfig `yaml:"openrouter"`
	MaxAttempts    int            `yaml:"max_attempts"`
	TimeoutSeconds float64        `yaml:"timeout_seconds"`
}

// BreathConfig sets the pacer's phase lengths in seconds.
type BreathConfig struct {
	Inhale float64 `yaml:"inhale"`
	Hold   float64 `yaml:"hold"`
	Exhale float64 `yaml:"exhale"`
	Rest   float64 `yaml:"rest"`
}

// Default returns the built-in configuration.
func Default() *Config {
	env := synth.DefaultConfig()
	bp := breath.DefaultPattern()
	lc := llm.DefaultConfig()
	return &Config{
		Log: LogConfig{Level: "info", Format: "json"},
		Audio: AudioConfig{
			SampleRate:        48000,
			BufferMS:          20,
			Mode:              string(synth.ModePure),
			Volume:            0.6,
			AttackSeconds:     env.Attack.Seconds(),
			ReleaseSeconds:    env.Release.Seconds(),
			VolumeRampSeconds: env.VolumeRamp.Seconds(),
			BeatHz:            env.BeatHz,
		},
		LLM: LLMConfig{
			Anthropic:      ProviderConfig{Model: lc.Anthropic.Model},
			OpenAI:         ProviderConfig{Model: lc.OpenAI.Model},
			Gemini:         ProviderConfig{Model: lc.Gemini.Model},
			OpenRouter:     ProviderConfig{Model: lc.OpenRouter.Model},
			MaxAttempts:    lc.Retry.MaxAttempts,
			TimeoutSeconds: lc.Timeout.Seconds(),
		},
		Breath: BreathConfig{
			Inhale: bp.Inhale.Seconds(),
			Hold:   bp.Hold.Seconds(),
			Exhale: bp.Exhale.Seconds(),
			Rest:   bp.Rest.Seconds(),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/aura/config.yaml, falling back to
// ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(dir, "aura", "config.yaml")
}

// Load reads the file at path over the defaults. A missing file is not an
// error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	str := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str(&c.Log.Level, "AURA_LOG_LEVEL")
	str(&c.Log.File, "AURA_LOG_FILE")
	str(&c.Audio.Player, "AURA_AUDIO_PLAYER")
	str(&c.Audio.Mode, "AURA_AUDIO_MODE")
	if v, err := strconv.ParseFloat(os.Getenv("AURA_AUDIO_VOLUME"), 64); err == nil {
		c.Audio.Volume = v
	}

	str(&c.LLM.Provider, "AURA_LLM_PROVIDER")
	str(&c.LLM.Anthropic.APIKey, "AURA_ANTHROPIC_API_KEY")
	str(&c.LLM.Anthropic.Model, "AURA_ANTHROPIC_MODEL")
	str(&c.LLM.OpenAI.APIKey, "AURA_OPENAI_API_KEY")
	str(&c.LLM.OpenAI.Model, "AURA_OPENAI_MODEL")
	str(&c.LLM.OpenAI.BaseURL, "AURA_OPENAI_BASE_URL")
	str(&c.LLM.Gemini.APIKey, "AURA_GEMINI_API_KEY")
	str(&c.LLM.Gemini.Model, "AURA_GEMINI_MODEL")
	str(&c.LLM.OpenRouter.APIKey, "AURA_OPENROUTER_API_KEY")
	str(&c.LLM.OpenRouter.Model, "AURA_OPENROUTER_MODEL")
}

// Logging returns logger options.
func (c *Config) Logging() logging.Options {
	return logging.Options{Level: c.Log.Level, Format: c.Log.Format, File: c.Log.File}
}

// Engine returns the synthesis envelope.
func (c *Config) Engine() synth.Config {
	def := synth.DefaultConfig()
	return synth.Config{
		Attack:     secondsOr(c.Audio.AttackSeconds, def.Attack),
		Release:    secondsOr(c.Audio.ReleaseSeconds, def.Release),
		VolumeRamp: secondsOr(c.Audio.VolumeRampSeconds, def.VolumeRamp),
		BeatHz:     c.Audio.BeatHz,
	}
}

// Mode returns the default synthesis mode, or pure when unset or invalid.
func (c *Config) Mode() synth.Mode {
	m, err := synth.ParseMode(c.Audio.Mode)
	if err != nil {
		return synth.ModePure
	}
	return m
}

// Buffer returns the output render period.
func (c *Config) Buffer() time.Duration {
	if c.Audio.BufferMS <= 0 {
		return 20 * time.Millisecond
	}
	return time.Duration(c.Audio.BufferMS) * time.Millisecond
}

// BreathPattern returns the pacer pattern.
func (c *Config) BreathPattern() breath.Pattern {
	return breath.Pattern{
		Inhale: seconds(c.Breath.Inhale),
		Hold:   seconds(c.Breath.Hold),
		Exhale: seconds(c.Breath.Exhale),
		Rest:   seconds(c.Breath.Rest),
	}
}

// LLMConfig returns the provider configuration. With no provider named,
// the first API key found in the standard environment variables is used;
// ok is false when nothing is configured at all.
func (c *Config) LLMConfig() (cfg llm.Config, ok bool) {
	if c.LLM.Provider == "" {
		return llm.DiscoverConfig()
	}
	cfg = llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	cfg.Anthropic = llm.AnthropicConfig{APIKey: c.LLM.Anthropic.APIKey, Model: c.LLM.Anthropic.Model}
	cfg.OpenAI = llm.OpenAIConfig{APIKey: c.LLM.OpenAI.APIKey, Model: c.LLM.OpenAI.Model, BaseURL: c.LLM.OpenAI.BaseURL}
	cfg.Gemini = llm.GeminiConfig{APIKey: c.LLM.Gemini.APIKey, Model: c.LLM.Gemini.Model}
	cfg.OpenRouter = llm.OpenRouterConfig{APIKey: c.LLM.OpenRouter.APIKey, Model: c.LLM.OpenRouter.Model, BaseURL: c.LLM.OpenRouter.BaseURL}
	if c.LLM.MaxAttempts > 0 {
		cfg.Retry.MaxAttempts = c.LLM.MaxAttempts
	}
	if c.LLM.TimeoutSeconds > 0 {
		cfg.Timeout = seconds(c.LLM.TimeoutSeconds)
	}
	return cfg, true
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

func secondsOr(s float64, def time.Duration) time.Duration {
	if s < 0 {
		return def
	}
	return seconds(s)
}
