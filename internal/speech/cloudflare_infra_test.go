package speech_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/speech_proxy/internal/speech"
)

func TestCloudflareClient_Transcribe(t *testing.T) {
	var gotPath, gotAuth, gotType string
	var gotBody []byte

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"errors":[],"result":{"text":"bonjour","word_count":1,"transcription_info":{"language":"fr"}}}`))
	}))
	defer ts.Close()

	c := speech.NewCloudflareClient(ts.URL, "acc", "tok", "@cf/openai/whisper", "@cf/deepgram/aura-2-en")

	res, err := c.Transcribe(context.Background(), speech.NewAudioPayload([]byte("RIFF")))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}

	if res.Text != "bonjour" || res.Language != "fr" {
		t.Errorf("result: got %+v", res)
	}
	if gotPath != "/accounts/acc/ai/run/@cf/openai/whisper" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("auth: got %q", gotAuth)
	}
	if gotType != "audio/wav" {
		t.Errorf("content type: got %q", gotType)
	}
	if string(gotBody) != "RIFF" {
		t.Errorf("body: got %q", gotBody)
	}
}

func TestCloudflareClient_TranscribeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"errors":[{"code":5006,"message":"invalid audio"}],"result":null}`))
	}))
	defer ts.Close()

	c := speech.NewCloudflareClient(ts.URL, "acc", "tok", "stt", "tts")

	_, err := c.Transcribe(context.Background(), speech.NewAudioPayload([]byte("x")))
	if err == nil || !strings.Contains(err.Error(), "invalid audio") {
		t.Fatalf("error: got %v", err)
	}
}

func TestCloudflareClient_Synthesize(t *testing.T) {
	var gotBody string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte{1, 2, 3})
	}))
	defer ts.Close()

	c := speech.NewCloudflareClient(ts.URL+"/", "acc", "tok", "stt", "tts")

	audio, err := c.Synthesize(context.Background(), "hi")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !bytes.Equal(audio, []byte{1, 2, 3}) {
		t.Errorf("audio: got %v", audio)
	}
	if gotBody != `{"text":"hi"}` {
		t.Errorf("payload: got %s", gotBody)
	}
}

func TestCloudflareClient_SynthesizeJSONFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"errors":[{"code":3040,"message":"capacity exceeded"}]}`))
	}))
	defer ts.Close()

	c := speech.NewCloudflareClient(ts.URL, "acc", "tok", "stt", "tts")

	_, err := c.Synthesize(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "capacity exceeded") {
		t.Fatalf("error: got %v", err)
	}
}
