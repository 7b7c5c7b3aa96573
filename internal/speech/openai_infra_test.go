package speech_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/speech_proxy/internal/speech"
)

func TestOpenAIClient_RoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/audio/transcriptions"):
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("multipart: %v", err)
			}
			_, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("file field: %v", err)
			} else if header.Filename != "audio.wav" {
				t.Errorf("filename: got %q", header.Filename)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"task":"transcribe","language":"english","duration":1.2,"text":"hello"}`))
		case strings.HasSuffix(r.URL.Path, "/audio/speech"):
			w.Header().Set("Content-Type", "audio/wav")
			w.Write([]byte{4, 5, 6})
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := speech.NewOpenAIClient("sk-test", ts.URL+"/v1", "whisper-1", "tts-1", "alloy")

	res, err := c.Transcribe(context.Background(), speech.NewAudioPayload([]byte("RIFF")))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if res.Text != "hello" || res.Language != "english" {
		t.Errorf("result: got %+v", res)
	}

	audio, err := c.Synthesize(context.Background(), "hi")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !bytes.Equal(audio, []byte{4, 5, 6}) {
		t.Errorf("audio: got %v", audio)
	}
}
