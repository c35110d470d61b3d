package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type uGame interface {
	HandleConnect(ctx context.Context, playerID string) error
	HandleDisconnect(playerID string)
	RequestMatch(ctx context.Context, playerID string) error
}

// connection wraps one live socket. gorilla allows a single concurrent
// writer, so every write goes through the connection's own mutex.
type connection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *connection) send(msg Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Server is the push channel: it owns the playerID to connection mapping,
// delivers targeted and broadcast messages, and relays inbound messages to
// the game layer. It implements the coordinator's Notifier.
type Server struct {
	logger *slog.Logger
	uGame  uGame

	upgrader websocket.Upgrader

	connectionsMutex sync.RWMutex
	connections      map[string]*connection

	handlers map[string]func(ctx context.Context, playerID string, message *Message) error
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger,
		uGame:  uGame,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},

		connections: make(map[string]*connection),
		handlers:    make(map[string]func(context.Context, string, *Message) error),
	}

	server.handlers["matchmakingRequest"] = server.handleMatchmakingRequest

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS upgrades the request and runs the connection's read loop until
// the peer goes away.
func (that *Server) serveWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	playerID := req.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(writer, "playerId is required", http.StatusBadRequest)
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log = log.With("playerID", playerID)

	current := that.register(playerID, conn)
	that.broadcastOnlineUsers()

	if err = current.send(newMessage("welcome", fmt.Sprintf("welcome, your id is %s", playerID))); err != nil {
		log.Error("failed to send welcome", "error", err)
	}

	if err = that.uGame.HandleConnect(ctx, playerID); err != nil {
		log.Error("failed to handle connect", "error", err)
	}

	log.Info("websocket connection established")

	that.readLoop(ctx, playerID, current)

	// a reconnect displaces the old handle; only the connection that still
	// owns the registration reports the player as gone
	if that.unregister(playerID, current) {
		that.uGame.HandleDisconnect(playerID)
		that.broadcastOnlineUsers()
	}

	log.Info("websocket connection closed")
}

// readLoop dispatches inbound messages by type. A malformed message is
// logged and skipped; anything without a dedicated handler is relayed to
// everyone, which is the minimal chat the original protocol allowed.
func (that *Server) readLoop(ctx context.Context, playerID string, current *connection) {
	log := that.logger.With("method", "readLoop", "playerID", playerID)

	for {
		var message Message
		if err := current.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Type]
		if !ok {
			that.Broadcast("broadcast", fmt.Sprintf("player %s says: %s", playerID, message.Payload))
			continue
		}

		if err := handler(ctx, playerID, &message); err != nil {
			log.Error("error processing message", "type", message.Type, "error", err)
		}
	}
}

// register stores the connection handle, displacing a previous one from the
// same player (reconnect overwrites).
func (that *Server) register(playerID string, conn *websocket.Conn) *connection {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	if old, ok := that.connections[playerID]; ok {
		_ = old.conn.Close()
	}

	current := &connection{conn: conn}
	that.connections[playerID] = current

	return current
}

// unregister drops the handle and reports whether it was still the
// registered one. It returns false when the player already reconnected and
// the map holds a newer connection.
func (that *Server) unregister(playerID string, current *connection) bool {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	_ = current.conn.Close()

	if actual, ok := that.connections[playerID]; ok && actual == current {
		delete(that.connections, playerID)
		return true
	}

	return false
}

// SendTo delivers one message to one player. A missing or dead connection
// is a logged no-op so one bad recipient never poisons the caller.
func (that *Server) SendTo(playerID, msgType string, payload any) {
	log := that.logger.With("method", "SendTo", "playerID", playerID)

	that.connectionsMutex.RLock()
	current, ok := that.connections[playerID]
	that.connectionsMutex.RUnlock()

	if !ok {
		log.Info("player is not connected, message dropped", "type", msgType)
		return
	}

	if err := current.send(newMessage(msgType, payload)); err != nil {
		log.Error("failed to send message", "type", msgType, "error", err)
	}
}

// Broadcast delivers a message to every current connection. Per-recipient
// failures are isolated.
func (that *Server) Broadcast(msgType string, payload any) {
	log := that.logger.With("method", "Broadcast")

	message := newMessage(msgType, payload)

	that.connectionsMutex.RLock()
	targets := make(map[string]*connection, len(that.connections))
	for id, current := range that.connections {
		targets[id] = current
	}
	that.connectionsMutex.RUnlock()

	for id, current := range targets {
		if err := current.send(message); err != nil {
			log.Error("failed to send broadcast", "playerID", id, "error", err)
		}
	}
}

// broadcastOnlineUsers pushes the current presence list to everyone.
func (that *Server) broadcastOnlineUsers() {
	that.connectionsMutex.RLock()
	online := make([]string, 0, len(that.connections))
	for id := range that.connections {
		online = append(online, id)
	}
	that.connectionsMutex.RUnlock()

	that.Broadcast("onlineUsers", online)
}

func (that *Server) handleMatchmakingRequest(ctx context.Context, playerID string, _ *Message) error {
	if err := that.uGame.RequestMatch(ctx, playerID); err != nil {
		return fmt.Errorf("failed to request match: %w", err)
	}

	return nil
}
