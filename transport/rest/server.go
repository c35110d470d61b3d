package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/stratego-backend/internal/entity"
	"github.com/rocketscienceinc/stratego-backend/internal/stratego"
)

type uGame interface {
	RequestMatch(ctx context.Context, playerID string) error
	GetState(sessionID, viewerID string) (*entity.GameSnapshot, error)
	PlacePiece(sessionID, playerID string, pieceIndex, row, col int) (bool, error)
	MovePiece(ctx context.Context, sessionID string, fromRow, fromCol, toRow, toCol int) (stratego.ResultCode, error)
}

// Server is the request/response binding of the game API. It calls the
// same coordinator methods as the socket layer; state pushes still travel
// over the socket.
type Server struct {
	logger *slog.Logger
	uGame  uGame
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger,
		uGame:  uGame,
	}
}

// Start - starts the HTTP server.
func (that *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.handlePing)
	mux.HandleFunc("POST /api/game/matchmaking", that.handleMatchmaking)
	mux.HandleFunc("GET /api/game/game-state", that.handleGameState)
	mux.HandleFunc("POST /api/game/place-piece", that.handlePlacePiece)
	mux.HandleFunc("POST /api/game/move-piece", that.handleMovePiece)

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
