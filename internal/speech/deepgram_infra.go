package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

type DeepgramClient struct {
	apiKey   string
	baseURL  string
	sttModel string
	ttsModel string
	client   *http.Client
}

func NewDeepgramClient(apiKey, baseURL, sttModel, ttsModel string) *DeepgramClient {
	return &DeepgramClient{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		sttModel: sttModel,
		ttsModel: ttsModel,
		client:   &http.Client{},
	}
}

func (c *DeepgramClient) Transcribe(ctx context.Context, audio AudioPayload) (TranscriptionResult, error) {
	q := url.Values{}
	q.Set("model", c.sttModel)
	q.Set("smart_format", "true")
	q.Set("detect_language", "true")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/listen?"+q.Encode(),
		bytes.NewReader(audio.Data),
	)
	if err != nil {
		return TranscriptionResult{}, err
	}

	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", audio.ContentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("read deepgram response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return TranscriptionResult{}, fmt.Errorf("deepgram error: %s", body)
	}

	var parsed struct {
		Results struct {
			Channels []struct {
				DetectedLanguage string `json:"detected_language"`
				Alternatives     []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return TranscriptionResult{}, fmt.Errorf("decode deepgram: %w", err)
	}

	// пустой ответ — не ошибка, текст просто пустой
	if len(parsed.Results.Channels) == 0 {
		return TranscriptionResult{}, nil
	}

	ch := parsed.Results.Channels[0]
	res := TranscriptionResult{Language: ch.DetectedLanguage}
	if len(ch.Alternatives) > 0 {
		res.Text = ch.Alternatives[0].Transcript
	}
	return res, nil
}

func (c *DeepgramClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	q := url.Values{}
	q.Set("model", c.ttsModel)
	q.Set("encoding", "linear16")
	q.Set("container", "wav")

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/speak?"+q.Encode(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("deepgram tts failed: %s", string(b))
	}

	return io.ReadAll(resp.Body)
}
