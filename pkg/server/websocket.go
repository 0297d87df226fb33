package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raymyers/golite/pkg/ast"
)

const wsReadTimeout = 120 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // editors connect from arbitrary local origins
	},
}

// WSMessage is a client message. Type is "parse" or "ping".
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// WSResponse is a server message. Type is "result", "pong" or "error".
type WSResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wsHandler reparses the source on every message, for live editor
// feedback over one connection.
type wsHandler struct {
	h *handler
}

func (ws *wsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		ws.h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	id := requestID(r)
	ws.h.logger.Info("WebSocket connection established", "request_id", id, "remote", conn.RemoteAddr().String())
	if ws.h.config.MaxBodyBytes > 0 {
		conn.SetReadLimit(ws.h.config.MaxBodyBytes)
	}

	for {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ws.h.logger.Error("WebSocket read error", "request_id", id, "error", err)
			} else {
				ws.h.logger.Info("WebSocket connection closed", "request_id", id)
			}
			return
		}

		switch msg.Type {
		case "ping":
			ws.send(conn, WSResponse{Type: "pong"})

		case "parse":
			var req ParseRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				ws.sendError(conn, "invalid_payload", "Invalid parse payload")
				continue
			}
			prog, diags := ws.h.parse(req.Source)
			ws.send(conn, WSResponse{
				Type: "result",
				Payload: ParseResponse{
					RequestID:   id,
					OK:          len(diags) == 0,
					Decls:       len(prog.Decls),
					Nodes:       ast.Count(prog),
					Diagnostics: diags,
					AST:         ast.Dump(prog, req.Positions),
				},
			})

		default:
			ws.sendError(conn, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

func (ws *wsHandler) send(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		ws.h.logger.Error("WebSocket send error", "error", err)
	}
}

func (ws *wsHandler) sendError(conn *websocket.Conn, code, message string) {
	ws.send(conn, WSResponse{
		Type:    "error",
		Payload: WSErrorPayload{Code: code, Message: message},
	})
}
