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

func TestElevenLabsClient_Synthesize(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/text-to-speech/voice-1" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "el" {
			t.Errorf("api key: got %q", r.Header.Get("xi-api-key"))
		}
		b, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(b), `"text":"hi"`) {
			t.Errorf("payload: got %s", b)
		}
		w.Write([]byte{7, 7, 7})
	}))
	defer ts.Close()

	c := speech.NewElevenLabsClient("el", ts.URL, "voice-1", "eleven_multilingual_v2")

	audio, err := c.Synthesize(context.Background(), "hi")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !bytes.Equal(audio, []byte{7, 7, 7}) {
		t.Errorf("audio: got %v", audio)
	}
}

func TestElevenLabsClient_Error(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte("quota exceeded"))
	}))
	defer ts.Close()

	c := speech.NewElevenLabsClient("el", ts.URL, "voice-1", "m")

	_, err := c.Synthesize(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error: got %v", err)
	}
}
