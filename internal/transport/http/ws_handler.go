package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"yuwelongo/internal/app"
)

// TokenContext attaches a caller's bearer token to the request context so the
// backend collaborators can forward it. It may be nil.
type TokenContext func(ctx context.Context, token string) context.Context

type WSHandler struct {
	games     *app.GameFactory
	withToken TokenContext
	upgrader  websocket.Upgrader
}

func NewWSHandler(games *app.GameFactory, withToken TokenContext) *WSHandler {
	return &WSHandler{
		games:     games,
		withToken: withToken,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

var errUnsupportedMessage = errors.New("unsupported message type")

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Option string `json:"option"`
}

type exitPayload struct {
	ClearSession bool `json:"clearSession"`
}

type outboundMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs one game session for the connection.
// Every inbound event is answered with the resulting state snapshot; rejected
// events are additionally reported as an error message.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	clientID := q.Get("clientId")
	if clientID == "" {
		http.Error(w, "missing clientId", http.StatusBadRequest)
		return
	}
	player := app.Player{Name: q.Get("name")}
	if raw := q.Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}
		player.ID = id
	}

	ctx := requestContext(r, h.withToken)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	game := h.games.NewGame(clientID, player)
	// let level results submitted before the disconnect reach the score service
	defer game.Wait()

	if err := conn.WriteJSON(outboundMessage{Type: "state", Payload: game.Snapshot()}); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				log.Printf("ws read error client=%s: %v", clientID, err)
			}
			return
		}

		ev, err := decodeEvent(inbound)
		if err != nil {
			if werr := conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}); werr != nil {
				return
			}
			continue
		}

		snap, err := game.Dispatch(ctx, ev)
		if err != nil && snap.State != app.StateError {
			if werr := conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}); werr != nil {
				return
			}
		}
		if err := conn.WriteJSON(outboundMessage{Type: "state", Payload: snap}); err != nil {
			log.Printf("ws write error client=%s: %v", clientID, err)
			return
		}
	}
}

func decodeEvent(msg inboundMessage) (app.Event, error) {
	switch msg.Type {
	case "start":
		return app.StartGame{}, nil
	case "select":
		var p selectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, errors.New("invalid select payload")
		}
		return app.SelectOption{Option: p.Option}, nil
	case "confirm":
		return app.ConfirmAnswer{}, nil
	case "advance":
		return app.NextQuestion{}, nil
	case "continue":
		return app.ContinueGame{}, nil
	case "exit":
		var p exitPayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				return nil, errors.New("invalid exit payload")
			}
		}
		return app.ExitGame{ClearSession: p.ClearSession}, nil
	default:
		return nil, errUnsupportedMessage
	}
}

func bearerToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return r.URL.Query().Get("token")
}
