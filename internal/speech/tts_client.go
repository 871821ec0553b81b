package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/antonvrn/animegirl-backend/internal/chat"
)

// TTSClient — клиент к микросервису синтеза речи.
// POST {base}/api/text?text=... → {"audio_base64": "..."}
type TTSClient struct {
	baseURL string
	client  *http.Client
}

func NewTTSClient() *TTSClient {
	base := os.Getenv("TTS_URL")
	if base == "" {
		base = "http://localhost:8010"
	}
	return &TTSClient{
		baseURL: base,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *TTSClient) Synthesize(ctx context.Context, text string) (string, error) {
	u := fmt.Sprintf("%s/api/text?%s", c.baseURL, url.Values{"text": {text}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return "", chat.NewError(chat.KindSynthesis, "speech.Synthesize", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", chat.NewError(chat.KindSynthesis, "speech.Synthesize", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", chat.NewError(chat.KindSynthesis, "speech.Synthesize",
			fmt.Errorf("tts status %d: %s", resp.StatusCode, body))
	}

	var parsed struct {
		AudioBase64 string `json:"audio_base64"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", chat.NewError(chat.KindSynthesis, "speech.Synthesize", err)
	}
	return parsed.AudioBase64, nil
}
