package usecase

import "sync"

// MatchOutcome is what a matchmaking request resulted in.
type MatchOutcome int

const (
	// MatchPaired - an opponent was waiting, a game can start.
	MatchPaired MatchOutcome = iota
	// MatchWaiting - the requester was enqueued.
	MatchWaiting
	// MatchAlreadyWaiting - the requester was enqueued earlier and stays put.
	MatchAlreadyWaiting
)

// MatchQueue pairs waiting players first-come-first-served. The dedupe
// check and the queue mutation happen under one lock, so two racing
// requests can never double-match the same player or pair a player with
// themselves.
type MatchQueue struct {
	mu      sync.Mutex
	waiting []string
}

func NewMatchQueue() *MatchQueue {
	return &MatchQueue{}
}

// Request either pairs playerID with the longest-waiting player, returning
// the opponent id, or parks playerID in the queue.
func (that *MatchQueue) Request(playerID string) (string, MatchOutcome) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, id := range that.waiting {
		if id == playerID {
			return "", MatchAlreadyWaiting
		}
	}

	if len(that.waiting) > 0 {
		opponentID := that.waiting[0]
		that.waiting = that.waiting[1:]
		return opponentID, MatchPaired
	}

	that.waiting = append(that.waiting, playerID)
	return "", MatchWaiting
}

// Remove evicts playerID from the queue if present, e.g. on disconnect.
func (that *MatchQueue) Remove(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, id := range that.waiting {
		if id == playerID {
			that.waiting = append(that.waiting[:i], that.waiting[i+1:]...)
			return
		}
	}
}

// Len reports how many players are currently waiting.
func (that *MatchQueue) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.waiting)
}
