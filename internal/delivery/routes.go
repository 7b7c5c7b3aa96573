package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts both handlers for every method; they answer 405
// themselves so the JSON error body stays uniform.
func RegisterRoutes(r chi.Router, h *SpeechHandler, sttPath, ttsPath string) {
	r.Group(func(sr chi.Router) {
		sr.Use(
			CORSHeaders,
			RequestID,
			httputil.RecoverMiddleware,
		)

		sr.HandleFunc(sttPath, h.recovering("stt", msgSTTFailed, h.SpeechToText))
		sr.HandleFunc(ttsPath, h.recovering("tts", msgTTSFailed, h.TextToSpeech))
	})

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
}
