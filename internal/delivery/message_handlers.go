package delivery

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/antonvrn/animegirl-backend/internal/audio"
	"github.com/antonvrn/animegirl-backend/internal/chat"
	"github.com/antonvrn/animegirl-backend/internal/speech"
	"github.com/antonvrn/animegirl-backend/internal/user"
)

type MessageHandler struct {
	chatService  chat.Service
	stores       chat.StoreResolver
	speechSvc    *speech.Service
	audioService audio.Service
	userService  user.Service
	log          *logger.ZapLogger
}

func NewMessageHandler(
	chatService chat.Service,
	stores chat.StoreResolver,
	speechSvc *speech.Service,
	audioService audio.Service,
	userService user.Service,
	zl *logger.ZapLogger,
) *MessageHandler {
	return &MessageHandler{
		chatService:  chatService,
		stores:       stores,
		speechSvc:    speechSvc,
		audioService: audioService,
		userService:  userService,
		log:          zl,
	}
}

type messageResponse struct {
	Message     string `json:"message"`
	AudioBase64 string `json:"audio_base64"`
}

type historyItem struct {
	Role        string `json:"role"`
	Content     string `json:"content"`
	AudioBase64 string `json:"audio_base64,omitempty"`
}

// POST /api/messages/{user_id}?message=...
func (h *MessageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "user_id")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	message := strings.TrimSpace(r.URL.Query().Get("message"))
	if message == "" {
		http.Error(w, "missing message", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	u, err := h.userService.GetOrCreate(ctx, userID, "")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "get-or-create user fail", Error: err})
		renderError(w, err)
		return
	}
	tier := chat.TierForStatus(u.Status)

	reply, err := h.chatService.Handle(ctx, userIDStr, tier, message)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "chat handle fail", Error: err})
		renderError(w, err)
		return
	}

	// озвучка опциональна: упавший синтез не роняет текстовый ответ
	audioB64, err := h.speechSvc.Synthesize(ctx, reply)
	if err != nil {
		log.Printf("[api] tts fail user=%d: %v", userID, err)
		audioB64 = ""
	}

	if audioB64 != "" && tier == chat.TierDurable {
		if err := h.audioService.AttachToLastReply(ctx, userIDStr, audioB64); err != nil {
			log.Printf("[api] attach audio fail user=%d: %v", userID, err)
		}
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message:     reply,
		AudioBase64: audioB64,
	})
}

// GET /api/messages/{user_id}
func (h *MessageHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "user_id")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// чтение истории не заводит пользователя; незнакомый id читает
	// короткоживущую историю
	u, err := h.userService.Get(ctx, userID)
	if err != nil {
		renderError(w, err)
		return
	}
	tier := chat.TierEphemeral
	if u != nil {
		tier = chat.TierForStatus(u.Status)
	}

	turns, err := h.stores.Resolve(tier).GetTurns(ctx, userIDStr)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "get history fail", Error: err})
		renderError(w, err)
		return
	}

	// для долговременной истории подкладываем аудио к репликам ассистента
	audioByMessage := map[int64]string{}
	if tier == chat.TierDurable {
		records, err := h.audioService.ListBySession(ctx, userIDStr)
		if err != nil {
			log.Printf("[api] audio history fail user=%d: %v", userID, err)
		} else {
			for _, rec := range records {
				audioByMessage[rec.MessageID] = rec.Audio
			}
		}
	}

	items := make([]historyItem, 0, len(turns))
	for _, t := range turns {
		item := historyItem{Role: t.Role, Content: t.Content}
		if t.Role == chat.RoleAssistant {
			item.AudioBase64 = audioByMessage[t.ID]
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, items)
}

// POST /api/audio — multipart файл → текст
func (h *MessageHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "missing file", Error: err})
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	text, err := h.speechSvc.Transcribe(r.Context(), header.Filename, file)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "transcribe fail", Error: err})
		renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}
