package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/stratego-backend/internal/apperror"
	"github.com/rocketscienceinc/stratego-backend/internal/entity"
	"github.com/rocketscienceinc/stratego-backend/internal/stratego"
)

type stubGame struct {
	stateErr error
	placeOK  bool
	placeErr error
	moveCode stratego.ResultCode
	moveErr  error
}

func (that *stubGame) RequestMatch(_ context.Context, _ string) error { return nil }

func (that *stubGame) GetState(sessionID, _ string) (*entity.GameSnapshot, error) {
	if that.stateErr != nil {
		return nil, that.stateErr
	}
	return &entity.GameSnapshot{SessionID: sessionID, Phase: entity.PhaseSetup}, nil
}

func (that *stubGame) PlacePiece(_, _ string, _, _, _ int) (bool, error) {
	return that.placeOK, that.placeErr
}

func (that *stubGame) MovePiece(_ context.Context, _ string, _, _, _, _ int) (stratego.ResultCode, error) {
	return that.moveCode, that.moveErr
}

func newTestHandler(game *stubGame) http.Handler {
	server := New(slog.New(slog.NewTextHandler(io.Discard, nil)), game)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", server.handlePing)
	mux.HandleFunc("POST /api/game/matchmaking", server.handleMatchmaking)
	mux.HandleFunc("GET /api/game/game-state", server.handleGameState)
	mux.HandleFunc("POST /api/game/place-piece", server.handlePlacePiece)
	mux.HandleFunc("POST /api/game/move-piece", server.handleMovePiece)

	return mux
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, reader))

	return rec
}

func TestHandlePing(t *testing.T) {
	handler := newTestHandler(&stubGame{})

	rec := doRequest(t, handler, http.MethodGet, "/ping", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestHandleMatchmaking(t *testing.T) {
	handler := newTestHandler(&stubGame{})

	t.Run("missing playerId", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/api/game/matchmaking", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("accepted", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/api/game/matchmaking?playerId=alice", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "searching")
	})
}

func TestHandleGameState(t *testing.T) {
	t.Run("unknown session", func(t *testing.T) {
		handler := newTestHandler(&stubGame{stateErr: apperror.ErrSessionNotFound})

		rec := doRequest(t, handler, http.MethodGet, "/api/game/game-state?sessionId=nope&playerId=alice", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns snapshot", func(t *testing.T) {
		handler := newTestHandler(&stubGame{})

		rec := doRequest(t, handler, http.MethodGet, "/api/game/game-state?sessionId=s1&playerId=alice", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "s1")
		assert.Contains(t, rec.Body.String(), entity.PhaseSetup)
	})
}

func TestHandlePlacePiece(t *testing.T) {
	body := `{"player_id":"alice","piece_index":0,"row":9,"col":0}`

	t.Run("invalid body", func(t *testing.T) {
		handler := newTestHandler(&stubGame{placeOK: true})
		rec := doRequest(t, handler, http.MethodPost, "/api/game/place-piece?sessionId=s1", "{broken")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		handler := newTestHandler(&stubGame{placeErr: apperror.ErrNotParticipant})
		rec := doRequest(t, handler, http.MethodPost, "/api/game/place-piece?sessionId=s1", body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("illegal placement", func(t *testing.T) {
		handler := newTestHandler(&stubGame{placeOK: false})
		rec := doRequest(t, handler, http.MethodPost, "/api/game/place-piece?sessionId=s1", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("accepted", func(t *testing.T) {
		handler := newTestHandler(&stubGame{placeOK: true})
		rec := doRequest(t, handler, http.MethodPost, "/api/game/place-piece?sessionId=s1", body)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandleMovePiece(t *testing.T) {
	body := `{"from_row":6,"from_col":0,"to_row":5,"to_col":0}`

	t.Run("unknown session", func(t *testing.T) {
		handler := newTestHandler(&stubGame{moveErr: apperror.ErrSessionNotFound})
		rec := doRequest(t, handler, http.MethodPost, "/api/game/move-piece?sessionId=nope", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("accepted move reports its result code", func(t *testing.T) {
		handler := newTestHandler(&stubGame{moveCode: stratego.ResultMove})
		rec := doRequest(t, handler, http.MethodPost, "/api/game/move-piece?sessionId=s1", body)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"result":1`)
	})

	t.Run("rejected move is a 400 with the code", func(t *testing.T) {
		handler := newTestHandler(&stubGame{moveCode: stratego.ResultNotYourTurn})
		rec := doRequest(t, handler, http.MethodPost, "/api/game/move-piece?sessionId=s1", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"result":5`)
	})
}
