package playable

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"ratscrew/pkg/deck"
)

// Playable is a game that can be played
type Playable interface {
	// Action performs the event on behalf of the event's player
	// If updateState is true, it will trigger a state update for all connected clients
	Action(event Event) (updateState bool, err error)

	// GetState returns the current state of the game
	// The state is public, both players and any spectator see the same thing
	GetState() (*Response, error)

	// GetEndOfGameDetails returns the details after a game is over
	// If the game is still in progress, nil will be returned and the second param will be false
	GetEndOfGameDetails() (gameOverDetails *GameOverDetails, isGameOver bool)

	// Name returns the name of the game
	Name() string

	// LogChan should return a channel that a game will send log messages to
	LogChan() <-chan []*LogMessage
}

// LogMessage is the format a game should send log messages in
// If PlayerID is null, assume it's a general statement, otherwise the message will be sent like "{player} did X, Y, Z"
type LogMessage struct {
	UUID      string       `json:"uuid"`
	PlayerIDs []int64      `json:"playerIds"`
	Cards     []*deck.Card `json:"cards"`
	Message   string       `json:"message"`
	Time      time.Time    `json:"time"`
}

// String replaces each {} placeholder with the player it refers to
func (l *LogMessage) String() string {
	msg := l.Message
	for _, id := range l.PlayerIDs {
		msg = strings.Replace(msg, "{}", fmt.Sprintf("Player %d", id), 1)
	}

	return msg
}

// Response is a message for connected clients
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse wraps an error for connected clients
func ErrorResponse(err error) *Response {
	return &Response{
		Key:   "error",
		Value: err.Error(),
	}
}

// GameOverDetails provides details on how the game ended
type GameOverDetails struct {
	WinnerID int64       `json:"winnerId"`
	Log      interface{} `json:"log"`
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerID int64, format string, a ...interface{}) *LogMessage {
	var playerIDs []int64
	if playerID > 0 {
		playerIDs = []int64{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

// CardLogMessage returns a new LogMessage about the given cards
func CardLogMessage(playerID int64, cards []*deck.Card, format string, a ...interface{}) *LogMessage {
	msg := SimpleLogMessage(playerID, format, a...)
	msg.Cards = cards
	return msg
}
