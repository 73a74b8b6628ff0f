package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/vocabvoyage-backend/internal/config"
	"github.com/heartmarshall/vocabvoyage-backend/internal/transport/middleware"
)

// Router wires handlers and middleware into an http.Handler.
type Router struct {
	Quiz        *QuizHandler
	History     *HistoryHandler
	Health      *HealthHandler
	CORS        config.CORSConfig
	UploadLimit middleware.Middleware
	Logger      *slog.Logger
}

// Handler builds the chi router. CORS runs before routing so preflight
// requests are answered for every path.
func (rt Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		middleware.Recovery(rt.Logger),
		middleware.RequestID,
		middleware.Logger(rt.Logger),
		middleware.CORS(rt.CORS),
	))

	r.Get("/live", rt.Health.Live)
	r.Get("/ready", rt.Health.Ready)
	r.Get("/health", rt.Health.Health)

	r.Post("/set_mode/", rt.Quiz.SetMode)
	r.Post("/start_quiz/", rt.Quiz.StartQuiz)
	r.Post("/end_quiz/", rt.Quiz.EndQuiz)
	r.Get("/words/next", rt.Quiz.NextWord)
	r.Post("/check/", rt.Quiz.Check)
	r.Post("/repeat/", rt.Quiz.Repeat)
	r.Get("/results/", rt.Quiz.Results)
	r.Get("/history/", rt.History.List)

	r.With(middleware.Chain(rt.UploadLimit)).Post("/upload_words/", rt.Quiz.UploadWords)

	return r
}
