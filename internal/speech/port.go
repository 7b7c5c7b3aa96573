package speech

import "context"

type Transcriber interface {
	Transcribe(ctx context.Context, audio AudioPayload) (TranscriptionResult, error) // голос → текст
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error) // текст → голос
}

// Capability is the upstream inference service.
type Capability interface {
	Transcriber
	Synthesizer
}
