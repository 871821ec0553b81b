package delivery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/antonvrn/animegirl-backend/internal/audio"
	"github.com/antonvrn/animegirl-backend/internal/chat"
	"github.com/antonvrn/animegirl-backend/internal/speech"
	"github.com/antonvrn/animegirl-backend/internal/user"
)

// === mocks ===

type mockChatService struct {
	reply string
	err   error

	gotKey  string
	gotTier chat.Tier
	gotText string
}

func (m *mockChatService) Handle(_ context.Context, sessionKey string, tier chat.Tier, userText string) (string, error) {
	m.gotKey = sessionKey
	m.gotTier = tier
	m.gotText = userText
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

type mockHistoryStore struct {
	turns []chat.Turn
	err   error
}

func (m *mockHistoryStore) GetTurns(context.Context, string) ([]chat.Turn, error) {
	return m.turns, m.err
}
func (m *mockHistoryStore) AppendUser(context.Context, string, string) (int64, error) {
	return 0, nil
}
func (m *mockHistoryStore) AppendAssistant(context.Context, string, string) (int64, error) {
	return 0, nil
}

type mockResolver struct {
	store   *mockHistoryStore
	gotTier chat.Tier
}

func (m *mockResolver) Resolve(tier chat.Tier) chat.HistoryStore {
	m.gotTier = tier
	return m.store
}

type mockAudioService struct {
	records  []audio.Record
	attached []string
}

func (m *mockAudioService) AttachToLastReply(_ context.Context, _ string, audioB64 string) error {
	m.attached = append(m.attached, audioB64)
	return nil
}

func (m *mockAudioService) ListBySession(context.Context, string) ([]audio.Record, error) {
	return m.records, nil
}

type mockUserService struct {
	status  string
	err     error
	known   bool
	created int
}

func (m *mockUserService) Get(_ context.Context, id int64) (*user.User, error) {
	if !m.known {
		return nil, nil
	}
	return &user.User{ID: id, Status: m.status}, nil
}

func (m *mockUserService) GetOrCreate(_ context.Context, id int64, username string) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if !m.known {
		m.created++
		m.known = true
	}
	status := m.status
	if status == "" {
		status = user.StatusFree
	}
	return &user.User{ID: id, Username: username, Status: status}, nil
}

func (m *mockUserService) Update(_ context.Context, in user.UpdateInput) (*user.User, error) {
	return &user.User{ID: in.ID}, nil
}

func (m *mockUserService) ToggleStatus(context.Context, int64) (string, error) {
	if m.status == user.StatusPremium {
		m.status = user.StatusFree
	} else {
		m.status = user.StatusPremium
	}
	return m.status, nil
}

type mockSynthesizer struct {
	audio string
	err   error
}

func (m *mockSynthesizer) Synthesize(context.Context, string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.audio, nil
}

type mockTranscriber struct {
	text string
	err  error
}

func (m *mockTranscriber) Transcribe(context.Context, string, io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// === харнес ===

type handlerEnv struct {
	chatSvc  *mockChatService
	resolver *mockResolver
	audioSvc *mockAudioService
	userSvc  *mockUserService
	tts      *mockSynthesizer
	stt      *mockTranscriber
	router   chi.Router
}

func newHandlerEnv() *handlerEnv {
	env := &handlerEnv{
		chatSvc:  &mockChatService{reply: "ответ"},
		resolver: &mockResolver{store: &mockHistoryStore{}},
		audioSvc: &mockAudioService{},
		userSvc:  &mockUserService{status: user.StatusFree, known: true},
		tts:      &mockSynthesizer{audio: "QUJD"},
		stt:      &mockTranscriber{text: "расшифровка"},
	}

	zl := logger.NewZapLogger(zap.NewNop().Sugar())
	speechSvc := speech.NewService(env.stt, env.tts)

	r := chi.NewRouter()
	RegisterRoutes(
		r,
		NewMessageHandler(env.chatSvc, env.resolver, speechSvc, env.audioSvc, env.userSvc, zl),
		NewUserHandler(env.userSvc, zl),
	)
	env.router = r
	return env
}

func (env *handlerEnv) do(t *testing.T, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// === тесты ===

func TestGenerateMessage(t *testing.T) {
	env := newHandlerEnv()

	rec := env.do(t, http.MethodPost, "/api/messages/42?message=привет", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message     string `json:"message"`
		AudioBase64 string `json:"audio_base64"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ответ", resp.Message)
	require.Equal(t, "QUJD", resp.AudioBase64)

	require.Equal(t, "42", env.chatSvc.gotKey)
	require.Equal(t, chat.TierEphemeral, env.chatSvc.gotTier)
	require.Equal(t, "привет", env.chatSvc.gotText)
}

func TestGenerateMessagePremiumStoresAudio(t *testing.T) {
	env := newHandlerEnv()
	env.userSvc.status = user.StatusPremium

	rec := env.do(t, http.MethodPost, "/api/messages/42?message=привет", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, chat.TierDurable, env.chatSvc.gotTier)
	require.Equal(t, []string{"QUJD"}, env.audioSvc.attached)
}

func TestGenerateMessageGenerationFailure(t *testing.T) {
	env := newHandlerEnv()
	env.chatSvc.err = chat.NewError(chat.KindGeneration, "chat.Handle", errors.New("status code: 500"))

	rec := env.do(t, http.MethodPost, "/api/messages/42?message=привет", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, string(chat.KindGeneration), resp["error"])
	require.NotEmpty(t, resp["message"])
}

func TestGenerateMessageSynthesisFailureStillReplies(t *testing.T) {
	env := newHandlerEnv()
	env.tts.err = chat.NewError(chat.KindSynthesis, "speech.Synthesize", errors.New("tts down"))

	rec := env.do(t, http.MethodPost, "/api/messages/42?message=привет", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message     string `json:"message"`
		AudioBase64 string `json:"audio_base64"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ответ", resp.Message)
	require.Empty(t, resp.AudioBase64)
	require.Empty(t, env.audioSvc.attached)
}

func TestGenerateMessageValidation(t *testing.T) {
	env := newHandlerEnv()

	rec := env.do(t, http.MethodPost, "/api/messages/abc?message=привет", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/messages/42", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHistoryAttachesAudio(t *testing.T) {
	env := newHandlerEnv()
	env.userSvc.status = user.StatusPremium
	env.resolver.store.turns = []chat.Turn{
		{ID: 1, Role: chat.RoleUser, Content: "привет", CreatedAt: time.Now()},
		{ID: 2, Role: chat.RoleAssistant, Content: "привет)", CreatedAt: time.Now()},
	}
	env.audioSvc.records = []audio.Record{
		{MessageID: 2, SessionKey: "42", Audio: "QUJD"},
	}

	rec := env.do(t, http.MethodGet, "/api/messages/42", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		Role        string `json:"role"`
		Content     string `json:"content"`
		AudioBase64 string `json:"audio_base64"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, chat.RoleUser, items[0].Role)
	require.Empty(t, items[0].AudioBase64)
	require.Equal(t, "QUJD", items[1].AudioBase64)
}

func TestGetHistoryUnknownUserReadsEphemeral(t *testing.T) {
	env := newHandlerEnv()
	env.userSvc.known = false
	env.resolver.store.turns = []chat.Turn{
		{ID: 1, Role: chat.RoleUser, Content: "привет", CreatedAt: time.Now()},
	}

	rec := env.do(t, http.MethodGet, "/api/messages/42", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// чтение истории не регистрирует пользователя
	require.Zero(t, env.userSvc.created)
	require.False(t, env.userSvc.known)
	require.Equal(t, chat.TierEphemeral, env.resolver.gotTier)
}

func TestGetHistoryStoreUnavailable(t *testing.T) {
	env := newHandlerEnv()
	env.resolver.store.err = chat.NewError(chat.KindStoreUnavailable, "chat.redis.GetTurns", errors.New("conn refused"))

	rec := env.do(t, http.MethodGet, "/api/messages/42", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetOrCreateUserByPath(t *testing.T) {
	env := newHandlerEnv()

	rec := env.do(t, http.MethodPost, "/api/users/42", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var u user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, user.StatusFree, u.Status)
}

func TestCreateUserByBody(t *testing.T) {
	env := newHandlerEnv()

	body := strings.NewReader(`{"id": 7, "username": "alice_fan"}`)
	rec := env.do(t, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var u user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, "alice_fan", u.Username)
}

func TestToggleStatusUnknownUser(t *testing.T) {
	env := newHandlerEnv()
	env.userSvc.known = false

	rec := env.do(t, http.MethodPost, "/api/users/status/42", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleStatusKnownUser(t *testing.T) {
	env := newHandlerEnv()

	rec := env.do(t, http.MethodPost, "/api/users/status/42", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "updated", resp["status"])
	require.Equal(t, user.StatusPremium, resp["new_status"])
}

func TestTranscribeEndpoint(t *testing.T) {
	env := newHandlerEnv()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "voice.ogg")
	require.NoError(t, err)
	_, err = part.Write([]byte("OGGDATA"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/audio", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "расшифровка", resp["text"])
}

func TestTranscribeMissingFile(t *testing.T) {
	env := newHandlerEnv()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/audio", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
