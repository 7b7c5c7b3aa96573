package delivery

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/goccy/go-json"

	"github.com/Vovarama1992/speech_proxy/internal/ports"
	"github.com/Vovarama1992/speech_proxy/internal/speech"
)

const (
	msgMethodNotAllowed = "Method not allowed"
	msgNoAudio          = "No audio data provided"
	msgNoText           = "No text provided"
	msgSTTFailed        = "Transcription failed"
	msgTTSFailed        = "Text-to-speech failed"
)

var (
	errEmptyJSON  = errors.New("unexpected end of JSON input")
	errNullBody   = errors.New("cannot read properties of null (reading 'text')")
	errTextNotStr = errors.New("text must be a string")
)

type SpeechHandler struct {
	svc      ports.SpeechService
	notifier ports.ErrorNotifier
	log      *logger.ZapLogger
}

func NewSpeechHandler(svc ports.SpeechService, notifier ports.ErrorNotifier, log *logger.ZapLogger) *SpeechHandler {
	return &SpeechHandler{
		svc:      svc,
		notifier: notifier,
		log:      log,
	}
}

// allowPost answers OPTIONS and non-POST methods; it reports whether the
// request should go on.
func allowPost(w http.ResponseWriter, r *http.Request) bool {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return false
	case http.MethodPost:
		return true
	default:
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed, "")
		return false
	}
}

// SpeechToText: raw audio in, {text, language} out.
func (h *SpeechHandler) SpeechToText(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	audio, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, r, "stt", msgSTTFailed, err)
		return
	}

	if len(audio) == 0 {
		writeError(w, http.StatusBadRequest, msgNoAudio, "")
		return
	}

	res, err := h.svc.Transcribe(r.Context(), audio)
	if err != nil {
		h.fail(w, r, "stt", msgSTTFailed, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// TextToSpeech: {"text", "voice"?} in, audio/wav bytes out.
func (h *SpeechHandler) TextToSpeech(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, r, "tts", msgTTSFailed, err)
		return
	}

	if len(bytes.TrimSpace(body)) == 0 {
		h.fail(w, r, "tts", msgTTSFailed, errEmptyJSON)
		return
	}

	req, err := decodeSynthesisRequest(body)
	if err != nil {
		h.fail(w, r, "tts", msgTTSFailed, err)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, msgNoText, "")
		return
	}

	audio, err := h.svc.Synthesize(r.Context(), req)
	if err != nil {
		h.fail(w, r, "tts", msgTTSFailed, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// decodeSynthesisRequest accepts any JSON document. A body that is not an
// object, or a falsy text (null, false, 0, ""), yields an empty text;
// a literal null body and a truthy non-string text are errors. Voice is
// kept only when it is a string.
func decodeSynthesisRequest(body []byte) (speech.SynthesisRequest, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return speech.SynthesisRequest{}, err
	}
	if doc == nil {
		return speech.SynthesisRequest{}, errNullBody
	}

	obj, _ := doc.(map[string]any)

	var req speech.SynthesisRequest
	switch v := obj["text"].(type) {
	case nil:
	case string:
		req.Text = v
	case bool:
		if v {
			return speech.SynthesisRequest{}, errTextNotStr
		}
	case float64:
		if v != 0 {
			return speech.SynthesisRequest{}, errTextNotStr
		}
	default:
		return speech.SynthesisRequest{}, errTextNotStr
	}

	req.Voice, _ = obj["voice"].(string)
	return req, nil
}

// recovering turns a handler panic into the usual JSON 500.
func (h *SpeechHandler) recovering(op, msg string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.fail(w, r, op, msg, fmt.Errorf("%v", rec))
			}
		}()
		next(w, r)
	}
}

func (h *SpeechHandler) fail(w http.ResponseWriter, r *http.Request, op, msg string, err error) {
	reqID := RequestIDFrom(r.Context())

	h.log.Log(logger.LogEntry{
		Level:   "error",
		Message: strings.ToUpper(op) + " Error, request_id=" + reqID,
		Error:   err,
		Service: "speech_proxy",
	})

	if h.notifier != nil {
		_ = h.notifier.Notify(r.Context(), op, err, "request_id="+reqID)
	}

	writeError(w, http.StatusInternalServerError, msg, err.Error())
}
