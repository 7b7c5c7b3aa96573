package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderCloudflare = "cloudflare"
	ProviderOpenAI     = "openai"
	ProviderDeepgram   = "deepgram"

	// ProviderElevenLabs can only synthesize.
	ProviderElevenLabs = "elevenlabs"
)

type Cloudflare struct {
	AccountID string `yaml:"account_id"`
	APIToken  string `yaml:"api_token"`
	BaseURL   string `yaml:"base_url"`
	STTModel  string `yaml:"stt_model"`
	TTSModel  string `yaml:"tts_model"`
}

type OpenAI struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	STTModel string `yaml:"stt_model"`
	TTSModel string `yaml:"tts_model"`
	TTSVoice string `yaml:"tts_voice"`
}

type Deepgram struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	STTModel string `yaml:"stt_model"`
	TTSModel string `yaml:"tts_model"`
}

type ElevenLabs struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	VoiceID string `yaml:"voice_id"`
	Model   string `yaml:"model"`
}

type Telegram struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type Config struct {
	Port           string        `yaml:"port"`
	STTPath        string        `yaml:"stt_path"`
	TTSPath        string        `yaml:"tts_path"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Provider       string        `yaml:"provider"`
	TTSProvider    string        `yaml:"tts_provider"`

	Cloudflare Cloudflare `yaml:"cloudflare"`
	OpenAI     OpenAI     `yaml:"openai"`
	Deepgram   Deepgram   `yaml:"deepgram"`
	ElevenLabs ElevenLabs `yaml:"elevenlabs"`
	Telegram   Telegram   `yaml:"telegram"`
}

func Default() Config {
	return Config{
		Port:           "8080",
		STTPath:        "/stt",
		TTSPath:        "/tts",
		RequestTimeout: 30 * time.Second,
		Provider:       ProviderCloudflare,
		Cloudflare: Cloudflare{
			BaseURL:  "https://api.cloudflare.com/client/v4",
			STTModel: "@cf/openai/whisper",
			TTSModel: "@cf/deepgram/aura-2-en",
		},
		OpenAI: OpenAI{
			STTModel: "whisper-1",
			TTSModel: "tts-1",
			TTSVoice: "alloy",
		},
		Deepgram: Deepgram{
			BaseURL:  "https://api.deepgram.com",
			STTModel: "nova-2",
			TTSModel: "aura-2-thalia-en",
		},
		ElevenLabs: ElevenLabs{
			BaseURL: "https://api.elevenlabs.io",
			VoiceID: "EXAVITQu4vr4xnSDxMaL", // Rachel
			Model:   "eleven_multilingual_v2",
		},
	}
}

// Load reads .env (if any), then the YAML file named by SPEECH_PROXY_CONFIG,
// then applies environment overrides.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("SPEECH_PROXY_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Port)
	str("STT_PATH", &c.STTPath)
	str("TTS_PATH", &c.TTSPath)
	str("INFERENCE_PROVIDER", &c.Provider)
	str("TTS_PROVIDER", &c.TTSProvider)

	str("CF_ACCOUNT_ID", &c.Cloudflare.AccountID)
	str("CF_API_TOKEN", &c.Cloudflare.APIToken)
	str("CF_API_BASE_URL", &c.Cloudflare.BaseURL)
	str("CF_STT_MODEL", &c.Cloudflare.STTModel)
	str("CF_TTS_MODEL", &c.Cloudflare.TTSModel)

	str("OPENAI_API_KEY", &c.OpenAI.APIKey)
	str("OPENAI_BASE_URL", &c.OpenAI.BaseURL)
	str("OPENAI_STT_MODEL", &c.OpenAI.STTModel)
	str("OPENAI_TTS_MODEL", &c.OpenAI.TTSModel)
	str("OPENAI_TTS_VOICE", &c.OpenAI.TTSVoice)

	str("DEEPGRAM_API_KEY", &c.Deepgram.APIKey)
	str("DEEPGRAM_BASE_URL", &c.Deepgram.BaseURL)
	str("DEEPGRAM_STT_MODEL", &c.Deepgram.STTModel)
	str("DEEPGRAM_TTS_MODEL", &c.Deepgram.TTSModel)

	str("ELEVENLABS_API_KEY", &c.ElevenLabs.APIKey)
	str("ELEVENLABS_BASE_URL", &c.ElevenLabs.BaseURL)
	str("ELEVENLABS_VOICE_ID", &c.ElevenLabs.VoiceID)
	str("ELEVENLABS_MODEL", &c.ElevenLabs.Model)

	str("TELEGRAM_ALERT_TOKEN", &c.Telegram.Token)

	if v, ok := lookup("TELEGRAM_ALERT_CHAT_ID"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_ALERT_CHAT_ID %q: %w", v, err)
		}
		c.Telegram.ChatID = id
	}

	if v, ok := lookup("REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", v, err)
		}
		c.RequestTimeout = d
	}

	return nil
}

func (c Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}

	if err := c.validateProvider(c.Provider); err != nil {
		return err
	}

	if c.TTSProvider == ProviderElevenLabs {
		if c.ElevenLabs.APIKey == "" {
			return fmt.Errorf("ELEVENLABS_API_KEY must be set for tts provider %q", c.TTSProvider)
		}
		return nil
	}
	if c.TTSProvider != "" && c.TTSProvider != c.Provider {
		return c.validateProvider(c.TTSProvider)
	}
	return nil
}

func (c Config) validateProvider(provider string) error {
	switch provider {
	case ProviderCloudflare:
		if c.Cloudflare.AccountID == "" || c.Cloudflare.APIToken == "" {
			return fmt.Errorf("CF_ACCOUNT_ID and CF_API_TOKEN must be set for provider %q", provider)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY must be set for provider %q", provider)
		}
	case ProviderDeepgram:
		if c.Deepgram.APIKey == "" {
			return fmt.Errorf("DEEPGRAM_API_KEY must be set for provider %q", provider)
		}
	default:
		return fmt.Errorf("unknown inference provider %q", provider)
	}

	return nil
}

// AlertsEnabled reports whether Telegram failure alerts are configured.
func (c Config) AlertsEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}
