// Package client calls the speech-to-text and text-to-speech endpoints
// over HTTP.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/Vovarama1992/speech_proxy/internal/speech"
)

const DefaultTimeout = 30 * time.Second

type Client struct {
	sttURL  string
	ttsURL  string
	httpCli *http.Client
}

func New(sttURL, ttsURL string) *Client {
	return &Client{
		sttURL:  sttURL,
		ttsURL:  ttsURL,
		httpCli: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpCli = hc
	return c
}

func (c *Client) Transcribe(ctx context.Context, audio []byte) (speech.TranscriptionResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sttURL, bytes.NewReader(audio))
	if err != nil {
		return speech.TranscriptionResult{}, err
	}
	req.Header.Set("Content-Type", speech.AttachmentContentType)

	body, err := c.do(req, "stt")
	if err != nil {
		return speech.TranscriptionResult{}, err
	}

	var res speech.TranscriptionResult
	if err := json.Unmarshal(body, &res); err != nil {
		return speech.TranscriptionResult{}, fmt.Errorf("decode stt response: %w", err)
	}
	return res, nil
}

func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(speech.SynthesisRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ttsURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, "tts")
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s failed with status %d: %s", op, resp.StatusCode, body)
	}
	return body, nil
}
