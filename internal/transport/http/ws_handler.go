package http

import (
	"encoding/json"
	"log"
	"net/http"

	"quizmaster-service/internal/domain"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wsAnswerPayload struct {
	Index    int     `json:"index"`
	Selected []int64 `json:"selected"`
	Text     string  `json:"text"`
	Toggle   *int64  `json:"toggle,omitempty"`
}

type wsAdvancePayload struct {
	Direction int `json:"direction"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// serveAttemptWS drives one attempt over a websocket: the client sends
// answer/advance/finish messages and receives the refreshed question view
// after every action. All writes happen from this goroutine, so no write
// pump is needed for a single-respondent connection.
func (a *API) serveAttemptWS(w http.ResponseWriter, r *http.Request) {
	attemptID := r.URL.Query().Get("attemptId")
	if attemptID == "" {
		http.Error(w, "missing attemptId", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	view, err := a.attempts.Get(r.Context(), attemptID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	_ = conn.WriteJSON(outboundMessage[any]{Type: "view", Payload: view})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "answer":
			var payload wsAnswerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			if payload.Toggle != nil {
				view, err = a.attempts.Toggle(r.Context(), attemptID, payload.Index, *payload.Toggle)
			} else {
				view, err = a.attempts.Answer(r.Context(), attemptID, payload.Index, domain.Answer{Selected: payload.Selected, Text: payload.Text})
			}
			if err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			_ = conn.WriteJSON(outboundMessage[any]{Type: "view", Payload: view})
		case "advance":
			var payload wsAdvancePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid advance payload"}})
				continue
			}
			view, err = a.attempts.Advance(r.Context(), attemptID, payload.Direction)
			if err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			_ = conn.WriteJSON(outboundMessage[any]{Type: "view", Payload: view})
		case "finish":
			result, err := a.attempts.Finish(r.Context(), attemptID)
			if err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			_ = conn.WriteJSON(outboundMessage[any]{Type: "result", Payload: result})
			return
		default:
			_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}
}
