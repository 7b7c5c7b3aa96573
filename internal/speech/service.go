package speech

import (
	"context"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
)

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt     Transcriber
	tts     Synthesizer
	timeout time.Duration
	log     *logger.ZapLogger
}

func NewService(stt Transcriber, tts Synthesizer, timeout time.Duration, log *logger.ZapLogger) *Service {
	return &Service{
		stt:     stt,
		tts:     tts,
		timeout: timeout,
		log:     log,
	}
}

// Transcribe sends the clip upstream and fills in the default language.
// Upstream errors are returned as is.
func (s *Service) Transcribe(ctx context.Context, data []byte) (TranscriptionResult, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "transcribing " + humanize.Bytes(uint64(len(data))) + " of audio",
		Service: "speech",
	})

	res, err := s.stt.Transcribe(ctx, NewAudioPayload(data))
	if err != nil {
		return TranscriptionResult{}, err
	}

	if res.Language == "" {
		res.Language = DefaultLanguage
	}
	return res, nil
}

// Synthesize returns the upstream audio untouched. Voice is accepted but
// not forwarded yet.
func (s *Service) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	voice := req.VoiceOrDefault()

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "synthesizing " + humanize.Comma(int64(len(req.Text))) + " chars, voice=" + voice,
		Service: "speech",
	})

	audio, err := s.tts.Synthesize(ctx, req.Text)
	if err != nil {
		return nil, err
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "synthesized " + humanize.Bytes(uint64(len(audio))) + " of audio",
		Service: "speech",
	})
	return audio, nil
}

func (s *Service) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
