package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/stratego-backend/internal/apperror"
)

type placePieceRequest struct {
	PlayerID   string `json:"player_id"`
	PieceIndex int    `json:"piece_index"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
}

type movePieceRequest struct {
	FromRow int `json:"from_row"`
	FromCol int `json:"from_col"`
	ToRow   int `json:"to_row"`
	ToCol   int `json:"to_col"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

// handleMatchmaking acks the search immediately; the match notification
// arrives asynchronously over the socket.
func (that *Server) handleMatchmaking(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "playerId is required", http.StatusBadRequest)
		return
	}

	if err := that.uGame.RequestMatch(r.Context(), playerID); err != nil {
		that.logger.Error("failed to request match", "playerID", playerID, "error", err)
		http.Error(w, "failed to request match", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]string{"message": "searching"})
}

func (that *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	snapshot, err := that.uGame.GetState(sessionID, r.URL.Query().Get("playerId"))
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		that.logger.Error("failed to get game state", "sessionID", sessionID, "error", err)
		http.Error(w, "failed to get game state", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) handlePlacePiece(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	var req placePieceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ok, err := that.uGame.PlacePiece(sessionID, req.PlayerID, req.PieceIndex, req.Row, req.Col)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, apperror.ErrNotParticipant) {
		http.Error(w, "player is not part of this session", http.StatusForbidden)
		return
	}
	if err != nil {
		that.logger.Error("failed to place piece", "sessionID", sessionID, "error", err)
		http.Error(w, "failed to place piece", http.StatusInternalServerError)
		return
	}

	if !ok {
		http.Error(w, "piece cannot be placed there", http.StatusBadRequest)
		return
	}

	that.writeJSON(w, http.StatusOK, map[string]string{"message": "piece placed"})
}

func (that *Server) handleMovePiece(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	var req movePieceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	code, err := that.uGame.MovePiece(r.Context(), sessionID, req.FromRow, req.FromCol, req.ToRow, req.ToCol)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		that.logger.Error("failed to move piece", "sessionID", sessionID, "error", err)
		http.Error(w, "failed to move piece", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if !code.Accepted() {
		status = http.StatusBadRequest
	}

	that.writeJSON(w, status, map[string]int{"result": int(code)})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
