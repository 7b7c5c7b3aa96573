package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client   *openai.Client
	sttModel string
	ttsModel string
	voice    string
}

// NewOpenAIClient talks to api.openai.com unless baseURL is set.
func NewOpenAIClient(apiKey, baseURL, sttModel, ttsModel, voice string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(cfg),
		sttModel: sttModel,
		ttsModel: ttsModel,
		voice:    voice,
	}
}

func (c *OpenAIClient) Transcribe(ctx context.Context, audio AudioPayload) (TranscriptionResult, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.sttModel,
		FilePath: audio.Filename,
		Reader:   bytes.NewReader(audio.Data),
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return TranscriptionResult{}, err
	}
	return TranscriptionResult{Text: resp.Text, Language: resp.Language}, nil
}

func (c *OpenAIClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.ttsModel),
		Input:          text,
		Voice:          openai.SpeechVoice(c.voice),
		ResponseFormat: openai.SpeechResponseFormatWav,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read openai speech: %w", err)
	}
	return audio, nil
}
