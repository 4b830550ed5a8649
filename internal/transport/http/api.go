package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quizmaster-service/internal/app"
	"quizmaster-service/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

// API exposes the quiz and attempt use cases over REST and a websocket.
type API struct {
	quizzes  *app.QuizService
	attempts *app.AttemptService
	identity Identity
	validate *validator.Validate
}

func NewAPI(quizzes *app.QuizService, attempts *app.AttemptService, identity Identity) *API {
	if identity == nil {
		identity = HeaderIdentity{}
	}
	return &API{
		quizzes:  quizzes,
		attempts: attempts,
		identity: identity,
		validate: validator.New(),
	}
}

// Router builds the HTTP routing table.
func (a *API) Router(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID"},
		AllowCredentials: false,
	}))
	r.Use(withIdentity(a.identity))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/quizzes", a.listQuizzes)
		r.Post("/quizzes", a.createQuiz)
		r.Get("/quizzes/{quizID}", a.getQuiz)
		r.Put("/quizzes/{quizID}", a.updateQuiz)
		r.Delete("/quizzes/{quizID}", a.deleteQuiz)
		r.Get("/quizzes/{quizID}/results", a.listResults)
		r.Get("/quizzes/{quizID}/export", a.exportResults)

		r.Post("/quizzes/{quizID}/attempts", a.startAttempt)
		r.Get("/attempts/{attemptID}", a.getAttempt)
		r.Post("/attempts/{attemptID}/answers", a.recordAnswer)
		r.Post("/attempts/{attemptID}/advance", a.advanceAttempt)
		r.Post("/attempts/{attemptID}/finish", a.finishAttempt)
		r.Delete("/attempts/{attemptID}", a.abandonAttempt)
	})

	r.Get("/ws/attempts", a.serveAttemptWS)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Index *int   `json:"questionIndex,omitempty"`
}

// writeError maps core errors onto HTTP statuses. Validation failures carry
// their rule code so the editor can point at the offending question.
func writeError(w http.ResponseWriter, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		resp := errorResponse{Error: ve.Error(), Code: string(ve.Code)}
		if ve.QuestionIndex >= 0 {
			idx := ve.QuestionIndex
			resp.Index = &idx
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrQuizNotFound), errors.Is(err, domain.ErrAttemptNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotAuthor):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrQuizNotPublished):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnknownOption), errors.Is(err, domain.ErrQuestionOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyQuiz):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
