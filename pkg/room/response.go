package room

import (
	"ratscrew/pkg/playable"
)

// response keys sent to clients
const (
	KeyGame      = "game"
	KeyLogs      = "logs"
	KeyError     = "error"
	KeyGameEnded = "gameEnded"
)

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     KeyError,
		Value:   err.Error(),
		Context: ctx,
	}
}

func newLogResponse(messages []*playable.LogMessage) *playable.Response {
	return &playable.Response{
		Key:  KeyLogs,
		Data: messages,
	}
}

func newGameEndedResponse(details *playable.GameOverDetails) *playable.Response {
	return &playable.Response{
		Key:  KeyGameEnded,
		Data: details,
	}
}
