package speech

import (
	"testing"

	"github.com/Vovarama1992/speech_proxy/internal/config"
)

func TestNewClients(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantSTT any
		wantTTS any
		wantErr bool
	}{
		{
			name:    "cloudflare for both",
			mutate:  func(c *config.Config) {},
			wantSTT: &CloudflareClient{},
			wantTTS: &CloudflareClient{},
		},
		{
			name:    "openai for both",
			mutate:  func(c *config.Config) { c.Provider = config.ProviderOpenAI },
			wantSTT: &OpenAIClient{},
			wantTTS: &OpenAIClient{},
		},
		{
			name: "deepgram stt with elevenlabs tts",
			mutate: func(c *config.Config) {
				c.Provider = config.ProviderDeepgram
				c.TTSProvider = config.ProviderElevenLabs
			},
			wantSTT: &DeepgramClient{},
			wantTTS: &ElevenLabsClient{},
		},
		{
			name: "cloudflare stt with openai tts",
			mutate: func(c *config.Config) {
				c.TTSProvider = config.ProviderOpenAI
			},
			wantSTT: &CloudflareClient{},
			wantTTS: &OpenAIClient{},
		},
		{
			name:    "unknown provider",
			mutate:  func(c *config.Config) { c.Provider = "azure" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			stt, tts, err := NewClients(cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClients: %v", err)
			}
			if !sameType(stt, tt.wantSTT) {
				t.Errorf("stt: got %T, want %T", stt, tt.wantSTT)
			}
			if !sameType(tts, tt.wantTTS) {
				t.Errorf("tts: got %T, want %T", tts, tt.wantTTS)
			}
		})
	}
}

func sameType(got, want any) bool {
	switch want.(type) {
	case *CloudflareClient:
		_, ok := got.(*CloudflareClient)
		return ok
	case *OpenAIClient:
		_, ok := got.(*OpenAIClient)
		return ok
	case *DeepgramClient:
		_, ok := got.(*DeepgramClient)
		return ok
	case *ElevenLabsClient:
		_, ok := got.(*ElevenLabsClient)
		return ok
	}
	return false
}
