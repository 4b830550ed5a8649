package http

import (
	"net/http"

	"quizmaster-service/internal/domain"

	"github.com/go-chi/chi/v5"
)

type answerRequest struct {
	Index    int     `json:"index" validate:"min=0"`
	Selected []int64 `json:"selected"`
	Text     string  `json:"text"`
	// Toggle applies one option click instead of replacing the whole
	// answer; single-choice replaces, multiple-choice toggles membership.
	Toggle *int64 `json:"toggle,omitempty"`
}

type advanceRequest struct {
	Direction int `json:"direction" validate:"required,oneof=-1 1"`
}

func (a *API) startAttempt(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}

	var userID *int64
	if caller, ok := callerID(r.Context()); ok {
		userID = &caller
	}

	view, err := a.attempts.Start(r.Context(), quizID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (a *API) getAttempt(w http.ResponseWriter, r *http.Request) {
	view, err := a.attempts.Get(r.Context(), chi.URLParam(r, "attemptID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) recordAnswer(w http.ResponseWriter, r *http.Request) {
	attemptID := chi.URLParam(r, "attemptID")

	var payload answerRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := a.validate.Struct(payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var (
		view interface{}
		err  error
	)
	if payload.Toggle != nil {
		view, err = a.attempts.Toggle(r.Context(), attemptID, payload.Index, *payload.Toggle)
	} else {
		answer := domain.Answer{Selected: payload.Selected, Text: payload.Text}
		view, err = a.attempts.Answer(r.Context(), attemptID, payload.Index, answer)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) advanceAttempt(w http.ResponseWriter, r *http.Request) {
	attemptID := chi.URLParam(r, "attemptID")

	var payload advanceRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := a.validate.Struct(payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	view, err := a.attempts.Advance(r.Context(), attemptID, payload.Direction)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) finishAttempt(w http.ResponseWriter, r *http.Request) {
	result, err := a.attempts.Finish(r.Context(), chi.URLParam(r, "attemptID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// abandonAttempt drops the attempt without recording a result. Idempotent;
// deleting an unknown attempt still returns 204.
func (a *API) abandonAttempt(w http.ResponseWriter, r *http.Request) {
	a.attempts.Abandon(r.Context(), chi.URLParam(r, "attemptID"))
	w.WriteHeader(http.StatusNoContent)
}
