package speech

const (
	AttachmentField       = "file"
	AttachmentFilename    = "audio.wav"
	AttachmentContentType = "audio/wav"

	DefaultLanguage = "en"
	DefaultVoice    = "default"
)

// AudioPayload is one audio clip plus the attachment metadata it is sent
// upstream with. The bytes are never inspected.
type AudioPayload struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// NewAudioPayload packages raw bytes as the "file" attachment "audio.wav".
func NewAudioPayload(data []byte) AudioPayload {
	return AudioPayload{
		Field:       AttachmentField,
		Filename:    AttachmentFilename,
		ContentType: AttachmentContentType,
		Data:        data,
	}
}

type TranscriptionResult struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type SynthesisRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// VoiceOrDefault is the requested voice, or "default" when none was given.
func (r SynthesisRequest) VoiceOrDefault() string {
	if r.Voice == "" {
		return DefaultVoice
	}
	return r.Voice
}
