package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/antonvrn/animegirl-backend/internal/ai"
	"github.com/antonvrn/animegirl-backend/internal/audio"
	"github.com/antonvrn/animegirl-backend/internal/chat"
	"github.com/antonvrn/animegirl-backend/internal/delivery"
	"github.com/antonvrn/animegirl-backend/internal/notify"
	"github.com/antonvrn/animegirl-backend/internal/speech"
	"github.com/antonvrn/animegirl-backend/internal/telegram"
	"github.com/antonvrn/animegirl-backend/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / DB INIT
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping failed: %v", err)
	}
	defer db.Close()

	if err := chat.EnsureMessagesSchema(ctx, db); err != nil {
		log.Fatalf("messages schema: %v", err)
	}
	if err := user.EnsureUsersSchema(ctx, db); err != nil {
		log.Fatalf("users schema: %v", err)
	}
	if err := audio.EnsureAudiosSchema(ctx, db); err != nil {
		log.Fatalf("audios schema: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis ping failed: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// STORES
	// =========================================================================

	historyTTL := time.Duration(getenvInt("HISTORY_TTL", 3600)) * time.Second

	ephemeralStore := chat.NewRedisStore(rdb, historyTTL)
	durableStore := chat.NewPostgresStore(db)
	stores := chat.NewResolver(ephemeralStore, durableStore)

	userRepo := user.NewRepo(db)
	audioRepo := audio.NewRepo(db)

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	errInfra := notify.NewInfra()

	// =========================================================================
	// CLIENTS (AI / TTS / STT)
	// =========================================================================

	openAIClient := ai.NewOpenAIClient()
	ttsClient := speech.NewTTSClient()
	sttClient := speech.NewSTTClient()

	// =========================================================================
	// SERVICES
	// =========================================================================

	userService := user.NewService(userRepo)
	audioService := audio.NewService(audioRepo)
	speechService := speech.NewService(sttClient, ttsClient)

	chatService := chat.NewService(
		stores,
		openAIClient,
		chat.PersonaFromEnv(),
		time.Duration(getenvInt("GEN_TIMEOUT", 90))*time.Second,
	)

	// =========================================================================
	// TELEGRAM BOT
	// =========================================================================

	botApp := telegram.NewBotApp(
		chatService,
		speechService,
		userService,
		errInfra,
	)

	if err := botApp.InitBot(); err != nil {
		log.Fatalf("failed to init telegram bot: %v", err)
	}

	errInfra.SetBot(botApp.GetBot())

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(delivery.RequestLogMiddleware(zl))

	msgHandler := delivery.NewMessageHandler(
		chatService,
		stores,
		speechService,
		audioService,
		userService,
		zl,
	)
	userHandler := delivery.NewUserHandler(userService, zl)

	delivery.RegisterRoutes(r, msgHandler, userHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "animegirl",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[env] invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return v
}
