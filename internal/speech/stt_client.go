package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/antonvrn/animegirl-backend/internal/chat"
)

// STTClient — клиент к микросервису распознавания речи.
// POST {base}/api/audio (multipart, поле file) → {"text": "..."}
type STTClient struct {
	baseURL string
	client  *http.Client
}

func NewSTTClient() *STTClient {
	base := os.Getenv("STT_URL")
	if base == "" {
		base = "http://localhost:8020"
	}
	return &STTClient{
		baseURL: base,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *STTClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", chat.NewError(chat.KindTranscription, "speech.Transcribe", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", chat.NewError(chat.KindTranscription, "speech.Transcribe", err)
	}
	if err := mw.Close(); err != nil {
		return "", chat.NewError(chat.KindTranscription, "speech.Transcribe", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/audio", &buf)
	if err != nil {
		return "", chat.NewError(chat.KindTranscription, "speech.Transcribe", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", chat.NewError(chat.KindTranscription, "speech.Transcribe", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", chat.NewError(chat.KindTranscription, "speech.Transcribe",
			fmt.Errorf("stt status %d: %s", resp.StatusCode, body))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", chat.NewError(chat.KindTranscription, "speech.Transcribe", err)
	}
	return parsed.Text, nil
}
