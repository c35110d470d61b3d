package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotParticipant  = errors.New("player is not part of this session")
)
