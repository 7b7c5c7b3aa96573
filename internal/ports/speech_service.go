package ports

import (
	"context"

	"github.com/Vovarama1992/speech_proxy/internal/speech"
)

type SpeechService interface {
	Transcribe(ctx context.Context, data []byte) (speech.TranscriptionResult, error)
	Synthesize(ctx context.Context, req speech.SynthesisRequest) ([]byte, error)
}
