package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// exportResults streams a quiz's results as CSV, one row per finished
// attempt. The UTF-8 BOM keeps spreadsheet imports from mangling non-ASCII
// question text.
func (a *API) exportResults(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "export is available to the quiz author only"})
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

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="results_%d.csv"`, quizID))
	w.Write([]byte("\ufeff"))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"user_id", "score", "correct_answers", "total_questions", "completed_at"})
	for _, result := range results {
		user := ""
		if result.UserID != nil {
			user = strconv.FormatInt(*result.UserID, 10)
		}
		_ = cw.Write([]string{
			user,
			strconv.Itoa(result.Score),
			strconv.Itoa(result.CorrectCount),
			strconv.Itoa(result.TotalQuestions),
			result.CompletedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
}
