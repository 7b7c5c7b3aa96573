package speech

import (
	"fmt"

	"github.com/Vovarama1992/speech_proxy/internal/config"
)

// NewClients builds the upstream transcriber and synthesizer. Synthesis
// follows the main provider unless a separate TTS provider is configured.
func NewClients(cfg config.Config) (Transcriber, Synthesizer, error) {
	primary, err := newCapability(cfg)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.TTSProvider {
	case "", cfg.Provider:
		return primary, primary, nil
	case config.ProviderElevenLabs:
		el := cfg.ElevenLabs
		return primary, NewElevenLabsClient(el.APIKey, el.BaseURL, el.VoiceID, el.Model), nil
	default:
		override := cfg
		override.Provider = cfg.TTSProvider
		tts, err := newCapability(override)
		if err != nil {
			return nil, nil, err
		}
		return primary, tts, nil
	}
}

func newCapability(cfg config.Config) (Capability, error) {
	switch cfg.Provider {
	case config.ProviderCloudflare:
		cf := cfg.Cloudflare
		return NewCloudflareClient(cf.BaseURL, cf.AccountID, cf.APIToken, cf.STTModel, cf.TTSModel), nil
	case config.ProviderOpenAI:
		oa := cfg.OpenAI
		return NewOpenAIClient(oa.APIKey, oa.BaseURL, oa.STTModel, oa.TTSModel, oa.TTSVoice), nil
	case config.ProviderDeepgram:
		dg := cfg.Deepgram
		return NewDeepgramClient(dg.APIKey, dg.BaseURL, dg.STTModel, dg.TTSModel), nil
	default:
		return nil, fmt.Errorf("unknown inference provider %q", cfg.Provider)
	}
}
