package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quizmaster-service/internal/app"
	"quizmaster-service/internal/domain"
	"quizmaster-service/internal/infra/memory"
)

func newWSFixture(t *testing.T) (*httptest.Server, *app.AttemptService, int64) {
	t.Helper()

	quizStore := memory.NewQuizStore()
	resultStore := memory.NewResultStore()
	cache := memory.NewQuizCache(quizStore, time.Minute)

	quizzes := app.NewQuizService(quizStore, resultStore)
	quizzes.SetCache(cache)
	attempts := app.NewAttemptService(memory.NewAttemptStore(time.Hour), cache, resultStore)

	authorID := int64(1)
	quiz, err := quizzes.CreateQuiz(context.Background(), authorID, domain.Quiz{
		Title:    "Networking",
		Category: "technology",
		Status:   domain.StatusPublished,
		Questions: []domain.Question{
			{
				ID:   1,
				Type: domain.QuestionSingle,
				Text: "Default HTTP port?",
				Options: []domain.Option{
					{ID: 1, Text: "80", Correct: true},
					{ID: 2, Text: "22"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	api := NewAPI(quizzes, attempts, nil)
	server := httptest.NewServer(api.Router(nil))
	t.Cleanup(server.Close)
	return server, attempts, quiz.ID
}

func dialAttempt(t *testing.T, server *httptest.Server, attemptID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/attempts?attemptId=" + attemptID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, payload any) string {
	t.Helper()

	var envelope struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := conn.ReadJSON(&envelope); err != nil {
		t.Fatalf("read message: %v", err)
	}
	if payload != nil {
		if err := json.Unmarshal(envelope.Payload, payload); err != nil {
			t.Fatalf("decode %s payload: %v", envelope.Type, err)
		}
	}
	return envelope.Type
}

func TestAttemptOverWebsocket(t *testing.T) {
	server, attempts, quizID := newWSFixture(t)

	started, err := attempts.Start(context.Background(), quizID, nil)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	conn := dialAttempt(t, server, started.AttemptID)

	var view app.AttemptView
	if typ := readMessage(t, conn, &view); typ != "view" {
		t.Fatalf("expected initial view, got %s", typ)
	}
	if view.Question.Text != "Default HTTP port?" {
		t.Fatalf("unexpected question: %q", view.Question.Text)
	}

	if err := conn.WriteJSON(map[string]any{
		"type":    "answer",
		"payload": map[string]any{"index": 0, "selected": []int64{1}},
	}); err != nil {
		t.Fatalf("send answer: %v", err)
	}
	if typ := readMessage(t, conn, &view); typ != "view" {
		t.Fatalf("expected refreshed view, got %s", typ)
	}
	if view.Answer == nil || len(view.Answer.Selected) != 1 || view.Answer.Selected[0] != 1 {
		t.Fatalf("answer not reflected in view: %+v", view.Answer)
	}

	if err := conn.WriteJSON(map[string]any{"type": "finish"}); err != nil {
		t.Fatalf("send finish: %v", err)
	}
	var result domain.Result
	if typ := readMessage(t, conn, &result); typ != "result" {
		t.Fatalf("expected result, got %s", typ)
	}
	if result.Score != 100 {
		t.Fatalf("expected 100, got %d", result.Score)
	}
}

func TestWebsocketRejectsBadMessages(t *testing.T) {
	server, attempts, quizID := newWSFixture(t)

	started, err := attempts.Start(context.Background(), quizID, nil)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	conn := dialAttempt(t, server, started.AttemptID)
	readMessage(t, conn, nil)

	if err := conn.WriteJSON(map[string]any{"type": "restart"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	var errMsg struct {
		Message string `json:"message"`
	}
	if typ := readMessage(t, conn, &errMsg); typ != "error" {
		t.Fatalf("expected error, got %s", typ)
	}

	if err := conn.WriteJSON(map[string]any{
		"type":    "answer",
		"payload": map[string]any{"index": 0, "selected": []int64{42}},
	}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if typ := readMessage(t, conn, &errMsg); typ != "error" {
		t.Fatalf("expected unknown option error, got %s", typ)
	}
}

func TestWebsocketUnknownAttempt(t *testing.T) {
	server, _, _ := newWSFixture(t)

	conn := dialAttempt(t, server, "no-such-attempt")
	var errMsg struct {
		Message string `json:"message"`
	}
	if typ := readMessage(t, conn, &errMsg); typ != "error" {
		t.Fatalf("expected error for unknown attempt, got %s", typ)
	}
	if errMsg.Message == "" {
		t.Fatalf("expected error message")
	}
}

func TestWebsocketRequiresAttemptID(t *testing.T) {
	server, _, _ := newWSFixture(t)

	resp, err := http.Get(server.URL + "/ws/attempts")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
