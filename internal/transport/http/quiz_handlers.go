package http

import (
	"net/http"
	"strconv"

	"quizmaster-service/internal/domain"

	"github.com/go-chi/chi/v5"
)

// quizPayload is the authoring request body. Structural quiz rules (titles,
// option counts, correct markers) belong to the domain validator; the tags
// here only reject malformed payloads before they reach it.
type quizPayload struct {
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Category         string            `json:"category"`
	Status           string            `json:"status" validate:"omitempty,oneof=draft published"`
	TimeLimitMinutes int               `json:"timeLimit" validate:"min=0"`
	ShuffleQuestions bool              `json:"shuffleQuestions"`
	ShowResults      bool              `json:"showResults"`
	AllowRetake      bool              `json:"allowRetake"`
	Questions        []questionPayload `json:"questions" validate:"dive"`
}

type questionPayload struct {
	ID            int64           `json:"id"`
	Type          string          `json:"type" validate:"required,oneof=single multiple text"`
	Text          string          `json:"text"`
	Options       []optionPayload `json:"options"`
	CorrectAnswer string          `json:"correctAnswer"`
}

type optionPayload struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

func (p quizPayload) toDomain() domain.Quiz {
	quiz := domain.Quiz{
		Title:            p.Title,
		Description:      p.Description,
		Category:         p.Category,
		Status:           domain.QuizStatus(p.Status),
		TimeLimitMinutes: p.TimeLimitMinutes,
		ShuffleQuestions: p.ShuffleQuestions,
		ShowResults:      p.ShowResults,
		AllowRetake:      p.AllowRetake,
	}
	for _, q := range p.Questions {
		question := domain.Question{
			ID:            q.ID,
			Type:          domain.QuestionType(q.Type),
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, domain.Option{ID: o.ID, Text: o.Text, Correct: o.Correct})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz
}

func (a *API) createQuiz(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authoring requires an identified caller"})
		return
	}

	var payload quizPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := a.validate.Struct(payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	quiz, err := a.quizzes.CreateQuiz(r.Context(), caller, payload.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

func (a *API) updateQuiz(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authoring requires an identified caller"})
		return
	}
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}

	var payload quizPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := a.validate.Struct(payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	quiz, err := a.quizzes.UpdateQuiz(r.Context(), caller, quizID, payload.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (a *API) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authoring requires an identified caller"})
		return
	}
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}
	if err := a.quizzes.DeleteQuiz(r.Context(), caller, quizID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}
	caller, _ := callerID(r.Context())
	quiz, err := a.quizzes.GetQuiz(r.Context(), caller, quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (a *API) listQuizzes(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("mine") != "" {
		caller, ok := callerID(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "listing own quizzes requires an identified caller"})
			return
		}
		quizzes, err := a.quizzes.ListByAuthor(r.Context(), caller)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, quizzes)
		return
	}

	quizzes, err := a.quizzes.ListPublished(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (a *API) listResults(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "results are visible to the quiz author only"})
		return
	}
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}
	results, err := a.quizzes.ListResults(r.Context(), caller, quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + param})
		return 0, false
	}
	return id, true
}
