package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// CloudflareClient runs models on Workers AI through the REST API.
type CloudflareClient struct {
	baseURL   string
	accountID string
	token     string
	sttModel  string
	ttsModel  string
	client    *http.Client
}

func NewCloudflareClient(baseURL, accountID, token, sttModel, ttsModel string) *CloudflareClient {
	return &CloudflareClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accountID: accountID,
		token:     token,
		sttModel:  sttModel,
		ttsModel:  ttsModel,
		client:    &http.Client{},
	}
}

type cloudflareEnvelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e cloudflareEnvelope) err() error {
	if len(e.Errors) == 0 {
		return fmt.Errorf("workers ai: request failed")
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, er := range e.Errors {
		msgs = append(msgs, er.Message)
	}
	return fmt.Errorf("workers ai: %s", strings.Join(msgs, "; "))
}

func (c *CloudflareClient) Transcribe(ctx context.Context, audio AudioPayload) (TranscriptionResult, error) {
	resp, err := c.run(ctx, c.sttModel, audio.ContentType, bytes.NewReader(audio.Data))
	if err != nil {
		return TranscriptionResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("read workers ai response: %w", err)
	}

	var env cloudflareEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return TranscriptionResult{}, fmt.Errorf("decode workers ai (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return TranscriptionResult{}, env.err()
	}

	var parsed struct {
		Text              string `json:"text"`
		Language          string `json:"language"`
		TranscriptionInfo struct {
			Language string `json:"language"`
		} `json:"transcription_info"`
	}
	if err := json.Unmarshal(env.Result, &parsed); err != nil {
		return TranscriptionResult{}, fmt.Errorf("decode whisper result: %w", err)
	}

	lang := parsed.Language
	if lang == "" {
		lang = parsed.TranscriptionInfo.Language
	}
	return TranscriptionResult{Text: parsed.Text, Language: lang}, nil
}

func (c *CloudflareClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	resp, err := c.run(ctx, c.ttsModel, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read workers ai audio: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var env cloudflareEnvelope
		if json.Unmarshal(body, &env) == nil && len(env.Errors) > 0 {
			return nil, env.err()
		}
		return nil, fmt.Errorf("workers ai error: %s", body)
	}

	// ошибки приходят JSON-ом даже со статусом 200
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var env cloudflareEnvelope
		if err := json.Unmarshal(body, &env); err == nil && !env.Success {
			return nil, env.err()
		}
	}

	return body, nil
}

func (c *CloudflareClient) run(ctx context.Context, model, contentType string, body io.Reader) (*http.Response, error) {
	url := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.baseURL, c.accountID, model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("workers ai request: %w", err)
	}
	return resp, nil
}
