package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/stratego-backend/internal/apperror"
	"github.com/rocketscienceinc/stratego-backend/internal/entity"
	"github.com/rocketscienceinc/stratego-backend/internal/repository"
	"github.com/rocketscienceinc/stratego-backend/internal/stratego"
)

// Push message vocabulary shared by both transports.
const (
	MsgWaitingForMatch = "waitingForMatch"
	MsgMatchFound      = "matchFound"
	MsgGameUpdate      = "gameUpdate"
	MsgGameEnd         = "gameEnd"
)

const (
	reasonFlagCaptured = "flag captured"
	reasonOpponentLeft = "opponent left"
)

// Notifier pushes a tagged message to one connected player. Delivery to an
// absent player is a logged no-op on the transport side.
type Notifier interface {
	SendTo(playerID, msgType string, payload any)
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type MatchFoundPayload struct {
	SessionID  string `json:"session_id"`
	OpponentID string `json:"opponent_id"`
	Role       string `json:"role"`
}

type GameEndPayload struct {
	SessionID string `json:"session_id"`
	Winner    string `json:"winner"`
	Reason    string `json:"reason"`
}

// GameManager glues matchmaking, the session registry and the rules engine
// together and fans resulting state out through the notifier. Mutations of
// one session are serialized on the session's own lock; the lock is never
// held across a send.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	registry   *SessionRegistry
	queue      *MatchQueue
	notifier   Notifier

	grace time.Duration

	disconnectedMu sync.Mutex
	disconnected   map[string]time.Time
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, registry *SessionRegistry, queue *MatchQueue, grace time.Duration) *GameManager {
	return &GameManager{
		logger:       logger,
		playerRepo:   playerRepo,
		registry:     registry,
		queue:        queue,
		grace:        grace,
		disconnected: make(map[string]time.Time),
	}
}

// SetNotifier wires the push channel in. Must happen before any traffic;
// the transports are started after the wiring in the application setup.
func (that *GameManager) SetNotifier(notifier Notifier) {
	that.notifier = notifier
}

func (that *GameManager) sendTo(playerID, msgType string, payload any) {
	if that.notifier == nil {
		return
	}
	that.notifier.SendTo(playerID, msgType, payload)
}

// HandleConnect registers a (re)connecting player. A player bound to a
// still-running session gets the current snapshot replayed.
func (that *GameManager) HandleConnect(ctx context.Context, playerID string) error {
	log := that.logger.With("method", "HandleConnect", "playerID", playerID)

	that.disconnectedMu.Lock()
	delete(that.disconnected, playerID)
	that.disconnectedMu.Unlock()

	player, err := that.getOrCreatePlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	if !player.InSession() {
		return nil
	}

	session, err := that.registry.Get(player.SessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		// the game ended while the player was away
		if err = that.unbindPlayer(ctx, playerID); err != nil {
			log.Error("failed to unbind player from stale session", "error", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}

	session.Lock()
	snapshot := session.SnapshotFor(playerID)
	session.Unlock()

	that.sendTo(playerID, MsgGameUpdate, snapshot)
	log.Info("replayed session state after reconnect", "sessionID", session.ID)

	return nil
}

// HandleDisconnect evicts the player from matchmaking and starts the
// forfeiture clock. The session itself stays untouched until the grace
// period lapses.
func (that *GameManager) HandleDisconnect(playerID string) {
	that.queue.Remove(playerID)

	that.disconnectedMu.Lock()
	that.disconnected[playerID] = time.Now()
	that.disconnectedMu.Unlock()

	that.logger.Info("player disconnected", "playerID", playerID)
}

// RequestMatch pairs the player with the longest-waiting opponent or parks
// them in the queue. Both members of a fresh pair are notified with the
// session id and their role assignment.
func (that *GameManager) RequestMatch(ctx context.Context, playerID string) error {
	log := that.logger.With("method", "RequestMatch", "playerID", playerID)

	// a player already in a game gets its match notification replayed
	if player, err := that.playerRepo.GetByID(ctx, playerID); err == nil && player.InSession() {
		session, sessionErr := that.registry.Get(player.SessionID)
		if sessionErr == nil {
			that.sendTo(playerID, MsgMatchFound, MatchFoundPayload{
				SessionID:  session.ID,
				OpponentID: session.OpponentID(playerID),
				Role:       session.Role(playerID),
			})
			return nil
		}

		if errors.Is(sessionErr, apperror.ErrSessionNotFound) {
			// the game ended while the binding lingered; clear it and
			// let the player queue again
			if unbindErr := that.unbindPlayer(ctx, playerID); unbindErr != nil {
				log.Error("failed to unbind player from stale session", "error", unbindErr)
			}
		}
	}

	opponentID, outcome := that.queue.Request(playerID)

	switch outcome {
	case MatchWaiting, MatchAlreadyWaiting:
		that.sendTo(playerID, MsgWaitingForMatch, "waiting for an opponent")
		log.Info("player queued for matchmaking")
		return nil
	case MatchPaired:
	}

	session := that.registry.Create(opponentID, playerID)

	for _, id := range []string{session.Player1ID, session.Player2ID} {
		if err := that.bindPlayer(ctx, id, session); err != nil {
			log.Error("failed to bind player to session", "boundPlayerID", id, "error", err)
		}

		that.sendTo(id, MsgMatchFound, MatchFoundPayload{
			SessionID:  session.ID,
			OpponentID: session.OpponentID(id),
			Role:       session.Role(id),
		})
	}

	log.Info("match created", "sessionID", session.ID, "opponentID", opponentID)

	return nil
}

// GetState returns the board as seen by viewerID, or ErrSessionNotFound.
func (that *GameManager) GetState(sessionID, viewerID string) (*entity.GameSnapshot, error) {
	session, err := that.registry.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Lock()
	defer session.Unlock()

	return session.SnapshotFor(viewerID), nil
}

// PlacePiece validates and applies one setup placement. When the placement
// completes both rosters, both players are pushed the opening state.
func (that *GameManager) PlacePiece(sessionID, playerID string, pieceIndex, row, col int) (bool, error) {
	session, err := that.registry.Get(sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to get session: %w", err)
	}

	role := session.Role(playerID)
	if role == "" {
		return false, apperror.ErrNotParticipant
	}

	session.Lock()
	ok := stratego.PlacePiece(session.Game, role, pieceIndex, entity.NewPosition(row, col))
	started := ok && session.Game.Phase == entity.PhasePlay

	var snapshots map[string]*entity.GameSnapshot
	if started {
		snapshots = that.snapshotBoth(session)
	}
	session.Unlock()

	if started {
		that.pushBoth(session, MsgGameUpdate, snapshots)
		that.logger.Info("all pieces placed, game started", "sessionID", session.ID)
	}

	return ok, nil
}

// MovePiece applies one move and pushes the resulting state to both
// participants. A flag capture additionally emits the end-of-game notice
// and retires the session.
func (that *GameManager) MovePiece(ctx context.Context, sessionID string, fromRow, fromCol, toRow, toCol int) (stratego.ResultCode, error) {
	log := that.logger.With("method", "MovePiece", "sessionID", sessionID)

	session, err := that.registry.Get(sessionID)
	if err != nil {
		return stratego.ResultSessionNotFound, fmt.Errorf("failed to get session: %w", err)
	}

	from := entity.NewPosition(fromRow, fromCol)
	to := entity.NewPosition(toRow, toCol)

	session.Lock()
	code := stratego.Move(session.Game, from, to)

	var snapshots map[string]*entity.GameSnapshot
	var winner string
	if code.Accepted() {
		snapshots = that.snapshotBoth(session)
		winner = session.Game.Winner
	}
	session.Unlock()

	if !code.Accepted() {
		log.Debug("move rejected", "code", int(code))
		return code, nil
	}

	that.pushBoth(session, MsgGameUpdate, snapshots)

	if code == stratego.ResultFlagCaptured {
		that.endSession(ctx, session, winner, reasonFlagCaptured)
	}

	log.Info("move applied", "code", int(code))

	return code, nil
}

// WatchDisconnects forfeits sessions whose player stayed away longer than
// the grace period. Runs until the context is canceled.
func (that *GameManager) WatchDisconnects(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.sweepDisconnected(ctx)
		}
	}
}

func (that *GameManager) sweepDisconnected(ctx context.Context) {
	now := time.Now()

	that.disconnectedMu.Lock()
	var expired []string
	for playerID, since := range that.disconnected {
		if now.Sub(since) >= that.grace {
			expired = append(expired, playerID)
			delete(that.disconnected, playerID)
		}
	}
	that.disconnectedMu.Unlock()

	for _, playerID := range expired {
		that.forfeit(ctx, playerID)
	}
}

// forfeit ends the session of a player who never came back; the opponent
// wins.
func (that *GameManager) forfeit(ctx context.Context, playerID string) {
	log := that.logger.With("method", "forfeit", "playerID", playerID)

	session, err := that.registry.FindByPlayer(playerID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return
	}
	if err != nil {
		log.Error("failed to find session", "error", err)
		return
	}

	winner := entity.Opponent(session.Role(playerID))

	session.Lock()
	session.Game.Phase = entity.PhaseEnded
	session.Game.Winner = winner
	session.Game.Turn = ""
	snapshots := that.snapshotBoth(session)
	session.Unlock()

	that.pushBoth(session, MsgGameUpdate, snapshots)
	that.endSession(ctx, session, winner, reasonOpponentLeft)

	log.Info("session forfeited", "sessionID", session.ID, "winner", winner)
}

// endSession notifies both sides, unbinds the player records and removes
// the session from the registry.
func (that *GameManager) endSession(ctx context.Context, session *entity.GameSession, winner, reason string) {
	log := that.logger.With("method", "endSession", "sessionID", session.ID)

	payload := GameEndPayload{
		SessionID: session.ID,
		Winner:    winner,
		Reason:    reason,
	}

	for _, id := range []string{session.Player1ID, session.Player2ID} {
		that.sendTo(id, MsgGameEnd, payload)

		if err := that.unbindPlayer(ctx, id); err != nil {
			log.Error("failed to unbind player", "unboundPlayerID", id, "error", err)
		}
	}

	that.registry.Remove(session.ID)

	log.Info("session ended", "winner", winner, "reason", reason)
}

// snapshotBoth must be called with the session lock held.
func (that *GameManager) snapshotBoth(session *entity.GameSession) map[string]*entity.GameSnapshot {
	return map[string]*entity.GameSnapshot{
		session.Player1ID: session.SnapshotFor(session.Player1ID),
		session.Player2ID: session.SnapshotFor(session.Player2ID),
	}
}

func (that *GameManager) pushBoth(session *entity.GameSession, msgType string, snapshots map[string]*entity.GameSnapshot) {
	for _, id := range []string{session.Player1ID, session.Player2ID} {
		that.sendTo(id, msgType, snapshots[id])
	}
}

func (that *GameManager) getOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err == nil {
		return player, nil
	}

	if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	player = &entity.Player{ID: playerID}
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) bindPlayer(ctx context.Context, playerID string, session *entity.GameSession) error {
	player, err := that.getOrCreatePlayer(ctx, playerID)
	if err != nil {
		return err
	}

	player.SessionID = session.ID
	player.Role = session.Role(playerID)

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *GameManager) unbindPlayer(ctx context.Context, playerID string) error {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get player by id: %w", err)
	}

	player.SessionID = ""
	player.Role = ""

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
