package speech_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/speech_proxy/internal/speech"
)

// truncatedServer promises a longer body than it sends, then hangs up.
func truncatedServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Fatal("hijacking not supported")
		}
		conn, buf, err := hj.Hijack()
		if err != nil {
			t.Fatalf("hijack: %v", err)
		}
		defer conn.Close()
		buf.WriteString("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 500\r\n\r\n{\"result\":")
		buf.Flush()
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestTranscribe_TruncatedBodyReportsRead(t *testing.T) {
	ts := truncatedServer(t)

	clients := map[string]speech.Transcriber{
		"cloudflare": speech.NewCloudflareClient(ts.URL, "acc", "tok", "stt", "tts"),
		"deepgram":   speech.NewDeepgramClient("dg", ts.URL, "nova-2", "aura"),
	}

	for name, c := range clients {
		t.Run(name, func(t *testing.T) {
			_, err := c.Transcribe(context.Background(), speech.NewAudioPayload([]byte("x")))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "read ") || strings.Contains(err.Error(), "decode") {
				t.Errorf("error should name the read failure: %v", err)
			}
		})
	}
}
