package delivery

import (
	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(
	r chi.Router,
	hMsg *MessageHandler,
	hUser *UserHandler,
) {
	r.Route("/api", func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- диалог ---
		pr.Post("/messages/{user_id}", hMsg.Generate)
		pr.Get("/messages/{user_id}", hMsg.GetHistory)
		pr.Post("/audio", hMsg.Transcribe)

		// --- пользователи ---
		pr.Post("/users", hUser.Create)
		pr.Post("/users/{user_id}", hUser.GetOrCreate)
		pr.Post("/users/status/{user_id}", hUser.ToggleStatus)
		pr.Post("/users/username/{user_id}", hUser.UpdateUsername)
	})
}
